package piece

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a CSS hex color such as "#00F" or "#0000FF".
type Color string

// RGBA implements color.Color. Unparseable values render as opaque black.
func (c Color) RGBA() (r, g, b, a uint32) {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return 0, 0, 0, 0xffff
	}
	return parsed.RGBA()
}

// RGB255 returns the 8-bit channels of c.
func (c Color) RGB255() (r, g, b uint8) {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return 0, 0, 0
	}
	return parsed.RGB255()
}

// Palette is the color set of one level.
type Palette struct {
	Primary    Color
	Secondary  Color
	Background Color
}

// DefaultBackground is the background shown before the first level-up.
const DefaultBackground Color = "#FFF"

var palettes = [10]Palette{
	{Primary: "#00F", Secondary: "#009", Background: "#00F"},
	{Primary: "#F00", Secondary: "#900", Background: "#F00"},
	{Primary: "#0F0", Secondary: "#090", Background: "#0F0"},
	{Primary: "#F0F", Secondary: "#909", Background: "#F0F"},
	{Primary: "#FF0", Secondary: "#990", Background: "#FF0"},
	{Primary: "#0FF", Secondary: "#099", Background: "#0FF"},
	{Primary: "#009", Secondary: "#003", Background: "#009"},
	{Primary: "#900", Secondary: "#300", Background: "#900"},
	{Primary: "#090", Secondary: "#030", Background: "#090"},
	{Primary: "#999", Secondary: "#333", Background: "#999"},
}

// PaletteFor returns the palette of a level. Levels are one-indexed: level 1 uses the
// first entry and level 9 the ninth. The index is level%10-1, so multiples of ten
// land on -1 and wrap around to the last entry.
func PaletteFor(level int) Palette {
	i := level%len(palettes) - 1
	if i < 0 {
		i += len(palettes)
	}
	return palettes[i]
}
