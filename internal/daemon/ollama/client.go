// Package ollama implements the HTTP client for the local Ollama daemon API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

// ErrorKind categorizes client failures so callers can map them to
// degraded placeholder values instead of propagating them.
type ErrorKind int

// Failure categories for daemon API calls.
const (
	KindUnreachable ErrorKind = iota
	KindTimeout
	KindHTTPStatus
	KindBadPayload
)

// String returns the error kind as a string for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	case KindBadPayload:
		return "bad_payload"
	default:
		return "unknown"
	}
}

// Error is a typed failure from a daemon API call.
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ollama %s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("ollama %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Client talks to the Ollama HTTP API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL with a bounded request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured daemon URL.
func (c *Client) BaseURL() string { return c.baseURL }

// tagsResponse is the response from GET /api/tags.
type tagsResponse struct {
	Models []tagEntry `json:"models"`
}

type tagEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ListModels returns the models currently held by the daemon via /api/tags.
func (c *Client) ListModels(ctx context.Context) ([]models.ModelSummary, error) {
	var resp tagsResponse
	if err := c.get(ctx, "list models", "/api/tags", &resp); err != nil {
		return nil, err
	}

	out := make([]models.ModelSummary, 0, len(resp.Models))
	for _, m := range resp.Models {
		name, tags := splitTag(m.Name)
		out = append(out, models.ModelSummary{
			Name:      name,
			SizeBytes: m.Size,
			Tags:      tags,
		})
	}
	return out, nil
}

// ShowModel returns the raw detail object for one model via POST /api/show.
func (c *Client) ShowModel(ctx context.Context, name string) (map[string]any, error) {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, &Error{Kind: KindBadPayload, Op: "show model", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/show", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Op: "show model", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var detail map[string]any
	if err := c.do(req, "show model", &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// DeleteModel removes a model via DELETE /api/delete.
func (c *Client) DeleteModel(ctx context.Context, name string) error {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return &Error{Kind: KindBadPayload, Op: "delete model", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/delete", bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindUnreachable, Op: "delete model", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, "delete model", nil)
}

// ContextUsage reports used/total context tokens via GET /api/generate/status.
// The endpoint is not present on all daemon versions; callers must treat any
// error as "no data", not as a fault.
func (c *Client) ContextUsage(ctx context.Context) (used, size int, err error) {
	var resp struct {
		ContextSize int `json:"context_size"`
		ContextUsed int `json:"context_used"`
	}
	if err := c.get(ctx, "context usage", "/api/generate/status", &resp); err != nil {
		return 0, 0, err
	}
	return resp.ContextUsed, resp.ContextSize, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Kind: KindUnreachable, Op: op, Err: err}
	}
	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: classifyTransport(err), Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindHTTPStatus, Op: op, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindBadPayload, Op: op, Err: err}
	}
	return nil
}

func classifyTransport(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return KindTimeout
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindUnreachable
}

// splitTag splits "llama2:latest" into the bare name and its tag list.
// Names without a tag yield an empty tag list.
func splitTag(full string) (string, []string) {
	if i := strings.IndexByte(full, ':'); i >= 0 {
		return full[:i], []string{full[i+1:]}
	}
	return full, nil
}
