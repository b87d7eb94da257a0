package ranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// ErrCorrupt is returned by Load when the leaderboard file cannot be decoded.
var ErrCorrupt = errors.New("ranking: corrupt leaderboard file")

// Store is a leaderboard persisted as a JSON array. It is safe for concurrent use.
// A Store with an empty path keeps its entries in memory only.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	now     func() time.Time
}

// NewStore creates an empty store backed by path. Call Load to read existing entries.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// DefaultPath is the leaderboard file in the user's config directory, or
// leaderboard.json in the working directory when there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "leaderboard.json"
	}
	return filepath.Join(dir, "blockstack", "leaderboard.json")
}

// OpenStore creates a store and loads the file at path.
func OpenStore(path string) (*Store, error) {
	s := NewStore(path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetClock replaces the clock used to stamp new entries.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Path returns the backing file, or "" for a memory-only store.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the entries with the contents of the backing file. A missing file
// yields an empty leaderboard.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.entries = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("ranking: read %s: %w", s.path, err)
	}

	var entries []Entry
	if len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
		}
	}

	Sort(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	s.entries = entries
	return nil
}

// Entries returns a copy of the leaderboard, best first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Add inserts e, stamping its Time when empty, and persists the leaderboard.
// It returns the entry's time, which identifies it for highlighting. The entry stays
// on the in-memory leaderboard even if persisting fails.
func (s *Store) Add(e Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Time == "" {
		e.Time = s.stampLocked()
	}
	s.entries = Insert(s.entries, e)

	if err := s.saveLocked(); err != nil {
		return e.Time, err
	}
	return e.Time, nil
}

// stampLocked formats the current time, moving it forward a millisecond at a time past
// any entry that already holds it.
func (s *Store) stampLocked() string {
	t := s.now()
	for {
		stamp := t.Format(TimeLayout)
		taken := slices.ContainsFunc(s.entries, func(e Entry) bool { return e.Time == stamp })
		if !taken {
			return stamp
		}
		t = t.Add(time.Millisecond)
	}
}

// Record stores a finished game. It lets a Store act as the engine's recorder.
func (s *Store) Record(e Entry) (string, error) {
	return s.Add(e)
}

func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("ranking: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ranking: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".leaderboard-*")
	if err != nil {
		return fmt.Errorf("ranking: save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("ranking: save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ranking: save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("ranking: save: %w", err)
	}
	return nil
}
