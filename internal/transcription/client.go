package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/codebuildervaibhav/segment-scripter/internal/types"
)

// ErrBackendStatus marks a failure reported by the backend itself, either
// through a non-2xx status or an error field in the body.
var ErrBackendStatus = errors.New("transcription backend reported failure")

// BackendError carries the server-supplied message, if any
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("transcription backend returned status %d", e.StatusCode)
}

func (e *BackendError) Unwrap() error {
	return ErrBackendStatus
}

// Client sends transcription requests to the remote backend
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the given transcribe endpoint. The request
// has no client-side timeout; callers bound it through the context.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
	}
}

// Endpoint returns the backend URL requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Transcribe performs a single round trip. A 2xx response with neither an
// error nor a transcripts field yields an empty, successful result.
func (c *Client) Transcribe(ctx context.Context, req types.TranscribeRequest) ([]types.TranscriptSegment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	var payload *types.TranscribeResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		if !ok {
			log.Printf("Transcription backend returned status %d with a non-JSON body", resp.StatusCode)
			return nil, &BackendError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("invalid response from transcription backend: %w", err)
	}

	if payload == nil {
		if !ok {
			return nil, &BackendError{StatusCode: resp.StatusCode}
		}
		return nil, errors.New("invalid response from transcription backend: null JSON body")
	}

	if !ok || payload.Error != "" {
		return nil, &BackendError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if payload.Transcripts == nil {
		return []types.TranscriptSegment{}, nil
	}
	return payload.Transcripts, nil
}
