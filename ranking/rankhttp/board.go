package rankhttp

import (
	"context"
	"log"
	"net/http"

	"github.com/plus3/blockstack/ranking"
)

// RemoteBoard adapts a Client to ranking.Board. Failed reads are logged and yield an
// empty list so a display can keep drawing.
type RemoteBoard struct {
	client *Client
	log    *log.Logger
}

var _ ranking.Board = (*RemoteBoard)(nil)

// NewRemoteBoard wraps client. A nil logger uses the standard logger.
func NewRemoteBoard(client *Client, logger *log.Logger) *RemoteBoard {
	if logger == nil {
		logger = log.Default()
	}
	return &RemoteBoard{client: client, log: logger}
}

func (b *RemoteBoard) Record(e ranking.Entry) (string, error) {
	return b.client.Record(e)
}

func (b *RemoteBoard) Entries() []ranking.Entry {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	entries, err := b.client.Entries(ctx)
	if err != nil {
		b.log.Printf("fetching leaderboard failed: %v", err)
		return nil
	}
	return entries
}

// OpenBoard returns the leaderboard service at url when url is set, and the local file
// at path otherwise.
func OpenBoard(path, url string, logger *log.Logger) (ranking.Board, error) {
	if url != "" {
		return NewRemoteBoard(NewClient(url, &http.Client{Timeout: DefaultTimeout}), logger), nil
	}
	return ranking.OpenStore(path)
}
