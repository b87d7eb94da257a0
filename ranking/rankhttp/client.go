package rankhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/plus3/blockstack/ranking"
)

// DefaultTimeout bounds Record, which has no context of its own.
const DefaultTimeout = 5 * time.Second

// Client talks to a leaderboard served by Handler. It implements the engine's recorder.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the service at baseURL. A nil httpClient uses
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Record posts e and returns the id the server assigned to it.
func (c *Client) Record(e ranking.Entry) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	resp, err := c.Post(ctx, e)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Post sends e to POST /scores.
func (c *Client) Post(ctx context.Context, e ranking.Entry) (RecordResponse, error) {
	var out RecordResponse

	body, err := json.Marshal(e)
	if err != nil {
		return out, fmt.Errorf("rankhttp: encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("rankhttp: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, http.StatusCreated, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Entries fetches the leaderboard, best first.
func (c *Client) Entries(ctx context.Context) ([]ranking.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/scores", nil)
	if err != nil {
		return nil, fmt.Errorf("rankhttp: %w", err)
	}

	var entries []ranking.Entry
	if err := c.do(req, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rankhttp: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("rankhttp: %s %s: %s: %s", req.Method, req.URL.Path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rankhttp: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
