// Remote research engine adapter.
//
// Information Hiding:
// - HTTP transport details hidden
// - Request/response encoding for the research service

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Remote calls a research service over HTTP.
// Deadlines come from the caller's context; the client itself sets none.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a remote engine client for the given base URL.
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Research posts the payload to the service's /research endpoint and
// decodes the response body into a result mapping.
func (r *Remote) Research(ctx context.Context, payload Payload) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/research", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("research request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("research service returned %s: %s", resp.Status, strings.TrimSpace(string(preview)))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode research result: %w", err)
	}

	return result, nil
}

// Verify Remote implements Engine
var _ Engine = (*Remote)(nil)
