package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const httpTimeout = 30 * time.Second

// NewHTTPClient returns a client with its own transport, so tunnels never
// share pooled connections with anything else in the process.
func NewHTTPClient() *http.Client {
	c := cleanhttp.DefaultClient()
	c.Timeout = httpTimeout
	return c
}

// HTTPError is a non-2xx response from Loki or Tempo.
type HTTPError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.Status, e.StatusText, e.Body)
}

// GetJSON fetches url and decodes the body. A body that is not JSON is
// returned as {"raw": body}.
func GetJSON(ctx context.Context, client *http.Client, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), Body: string(body)}
	}

	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		return map[string]any{"raw": string(body)}, nil
	}
	return out, nil
}
