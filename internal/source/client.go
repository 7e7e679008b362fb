// Package source fetches tactics from a tactics server.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gmkornilov/tactics-trainer/pkg/tactic"
	"github.com/rs/zerolog"
)

const (
	TacticPath = "/api/v1/tactic"
	userAgent  = "tactics-trainer-cli"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a client for the server at baseURL. A nil httpClient
// means http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + TacticPath,
		httpClient: httpClient,
		log:        log,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetNewPuzzle asks the server for one puzzle matching req. It makes a
// single attempt.
func (c *Client) GetNewPuzzle(ctx context.Context, req tactic.Request) (tactic.Puzzle, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return tactic.Puzzle{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return tactic.Puzzle{}, err
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("endpoint", c.endpoint).RawJSON("request", body).Msg("requesting tactic")
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return tactic.Puzzle{}, fmt.Errorf("request tactic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return tactic.Puzzle{}, fmt.Errorf("tactics server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var puzzle tactic.Puzzle
	if err := json.NewDecoder(resp.Body).Decode(&puzzle); err != nil {
		return tactic.Puzzle{}, fmt.Errorf("decode tactic: %w", err)
	}
	c.log.Debug().Str("id", puzzle.ID).Int("rating", puzzle.Rating).Msg("received tactic")
	return puzzle, nil
}
