package evaluator

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
)

const DefaultTimeout = 10 * time.Second

// Request is the body posted to an evaluation service.
type Request struct {
	Board    game.Snapshot `json:"board"`
	Features []float32     `json:"features"`
	Legal    []game.Action `json:"legal"`
}

// Remote asks an HTTP service for evaluations. The call blocks until the
// service answers, the timeout passes or ctx is done.
type Remote struct {
	url    string
	client *http.Client
}

// NewRemote returns a client for the service at baseURL, which must serve
// POST /evaluate. A non-positive timeout uses DefaultTimeout.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Remote{
		url:    strings.TrimRight(baseURL, "/") + "/evaluate",
		client: &http.Client{Timeout: timeout},
	}
}

func (r *Remote) Evaluate(ctx context.Context, board *game.Board) (searcher.Evaluation, error) {
	body, err := json.Marshal(Request{
		Board:    board.Snapshot(),
		Features: board.Features(),
		Legal:    board.LegalActions(),
	})
	if err != nil {
		return searcher.Evaluation{}, fmt.Errorf("encoding evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return searcher.Evaluation{}, fmt.Errorf("building evaluation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return searcher.Evaluation{}, fmt.Errorf("requesting evaluation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return searcher.Evaluation{}, fmt.Errorf("evaluator returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var e searcher.Evaluation
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		return searcher.Evaluation{}, fmt.Errorf("decoding evaluation: %w", err)
	}
	return e, nil
}
