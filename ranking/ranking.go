// Package ranking orders finished games and keeps the best of them.
package ranking

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// MaxEntries is the size of a leaderboard.
const MaxEntries = 20

// TimeLayout formats Entry.Time. Lexicographic order of such strings is chronological,
// also against older entries stamped to the second.
const TimeLayout = "2006-01-02 15:04:05.000"

// DefaultDuration is assumed for stored entries that predate duration tracking (99:59).
const DefaultDuration uint32 = (99*60 + 59) * 1000

// Entry is the result of one finished game.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Lines int    `json:"lines"`
	Level int    `json:"level"`
	// Duration is the unpaused play time in milliseconds.
	Duration uint32 `json:"duration"`
	// Time is when the game finished, in TimeLayout. It identifies the entry, and a Store
	// never stamps two entries with the same time.
	Time string `json:"time"`
}

// UnmarshalJSON decodes an entry and fills in DefaultDuration when the field is absent.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	decoded := plain{Duration: DefaultDuration}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*e = Entry(decoded)
	return nil
}

// Compare orders entries from best to worst: higher score, then more lines, then higher
// level, then shorter duration, then the later time. It returns a negative number when a
// ranks ahead of b.
func Compare(a, b Entry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Lines, a.Lines); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Level, a.Level); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Duration, b.Duration); c != 0 {
		return c
	}
	return strings.Compare(b.Time, a.Time)
}

// Sort orders entries in place from best to worst.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, Compare)
}

// Insert adds e to entries, sorts them and drops everything ranked below MaxEntries.
func Insert(entries []Entry, e Entry) []Entry {
	entries = append(entries, e)
	Sort(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// Rank returns the one-based position of the entry with the given time, or 0.
func Rank(entries []Entry, time string) int {
	if time == "" {
		return 0
	}
	for i, e := range entries {
		if e.Time == time {
			return i + 1
		}
	}
	return 0
}

// FormatDuration renders milliseconds as mm:ss.
func FormatDuration(ms uint32) string {
	seconds := ms / 1000
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
