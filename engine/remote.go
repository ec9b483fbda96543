package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"github.com/DaiCC-Aurora/SigmaGo/searcher/agent"
	"github.com/rs/zerolog/log"
)

// RemoteAgent plays through an agent server (see agent.NewHandler).
type RemoteAgent struct {
	url    string
	client *http.Client
}

func NewRemoteAgent(baseURL string, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{
		url:    strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (r *RemoteAgent) FindMove(ctx context.Context, board *game.Board) (game.Action, searcher.Distribution, error) {
	var resp agent.MoveResponse
	if err := r.post(ctx, "/move", agent.MoveRequest{Board: board.Snapshot()}, &resp); err != nil {
		return game.NoAction, searcher.Distribution{}, err
	}
	return resp.Action, resp.Distribution, nil
}

func (r *RemoteAgent) Observe(action game.Action) {
	if err := r.post(context.Background(), "/observe", agent.ObserveRequest{Action: action}, nil); err != nil {
		log.Error().Err(err).Int("action", int(action)).Msg("failed to notify remote agent")
	}
}

func (r *RemoteAgent) Reset() {
	if err := r.post(context.Background(), "/reset", struct{}{}, nil); err != nil {
		log.Error().Err(err).Msg("failed to reset remote agent")
	}
}

// post encodes payload as JSON and decodes the answer into out unless out is
// nil.
func (r *RemoteAgent) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("agent returned status %d for %s: %s", resp.StatusCode, path, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
