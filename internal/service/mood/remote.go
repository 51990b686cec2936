package mood

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/DevGolamSever/mind-ease/internal/model/mood"
)

// HTTPRemote fetches mood entries from a remote sync endpoint. The endpoint
// serves a JSON array of entries keyed by a user query parameter.
type HTTPRemote struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRemote builds a remote source against baseURL.
func NewHTTPRemote(baseURL string, timeout time.Duration) *HTTPRemote {
	return &HTTPRemote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch performs the live read.
func (r *HTTPRemote) Fetch(ctx context.Context, userID string) ([]mood.Entry, error) {
	endpoint := fmt.Sprintf("%s/moods?user=%s", r.baseURL, url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote mood source returned status %d", resp.StatusCode)
	}

	var entries []mood.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode remote mood payload: %w", err)
	}
	return entries, nil
}
