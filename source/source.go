package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shruggr/glyphcache/models"
)

// DefaultTimeout is the hard per-fetch deadline
const DefaultTimeout = 8 * time.Second

// TimeoutError indicates the fetch exceeded its deadline and was aborted
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch of %s timed out after %s", e.URL, e.Timeout)
}

// HTTPError indicates a non-2xx response
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch of %s returned HTTP %d", e.URL, e.StatusCode)
}

// MalformedDataError indicates the payload decoded but its records field
// is missing or not an array
type MalformedDataError struct {
	Kind   models.Kind
	Reason string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed %s payload: %s", e.Kind, e.Reason)
}

// Client fetches dataset payloads from the remote JSON endpoints
// It never retries; retry policy belongs to the cache coordinator
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a dataset fetch client with the given per-request timeout
// A zero timeout selects DefaultTimeout
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// FetchDataset performs a single timeout-bounded GET against url and returns
// the decoded, normalized payload for the given kind
func (c *Client) FetchDataset(ctx context.Context, kind models.Kind, url string) (*models.DatasetPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{URL: url, Timeout: c.timeout}
		}
		return nil, fmt.Errorf("failed to fetch %s dataset: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{URL: url, Timeout: c.timeout}
		}
		return nil, fmt.Errorf("failed to read %s response body: %w", kind, err)
	}

	return decodePayload(kind, body)
}

// decodePayload decodes the raw upstream JSON for the kind and normalizes it
// into the common record shape
func decodePayload(kind models.Kind, body []byte) (*models.DatasetPayload, error) {
	switch kind {
	case models.KindEmoji:
		var payload models.EmojiPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &MalformedDataError{Kind: kind, Reason: err.Error()}
		}
		if payload.Emojis == nil {
			return nil, &MalformedDataError{Kind: kind, Reason: "missing emojis array"}
		}
		records := make([]models.SymbolRecord, 0, len(*payload.Emojis))
		for _, emoji := range *payload.Emojis {
			records = append(records, emoji.Normalize())
		}
		return &models.DatasetPayload{
			Kind:    kind,
			Version: payload.Version,
			Records: models.FilterValid(records),
		}, nil

	default:
		var payload models.SymbolPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &MalformedDataError{Kind: kind, Reason: err.Error()}
		}
		if payload.Symbols == nil {
			return nil, &MalformedDataError{Kind: kind, Reason: "missing symbols array"}
		}
		return &models.DatasetPayload{
			Kind:    kind,
			Version: payload.Version,
			Records: models.FilterValid(*payload.Symbols),
		}, nil
	}
}
