package ranking

// Board is a leaderboard that finished games are recorded to and read back from.
// *Store implements it; rankhttp provides a remote one.
type Board interface {
	Record(e Entry) (string, error)
	Entries() []Entry
}

var _ Board = (*Store)(nil)
