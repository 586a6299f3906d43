package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

// ContentClient talks to the external content provider. Collections are
// always fetched whole; the provider exposes no incremental contract.
type ContentClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewContentClient(baseURL string) *ContentClient {
	return &ContentClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

type collectionResponse struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
}

// FetchCourseData returns the provider's current course collection.
// success=false or an empty collection means nothing to do, not an error.
func (c *ContentClient) FetchCourseData(ctx context.Context) ([]json.RawMessage, error) {
	return c.fetchCollection(ctx, "courses")
}

// FetchQuestionSetData returns the provider's current question-set collection.
func (c *ContentClient) FetchQuestionSetData(ctx context.Context) ([]json.RawMessage, error) {
	return c.fetchCollection(ctx, "question-sets")
}

func (c *ContentClient) fetchCollection(ctx context.Context, resource string) ([]json.RawMessage, error) {
	url := fmt.Sprintf("%s/api/v1/%s", c.baseURL, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.TransportError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &domain.TransportError{
			Resource: resource,
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body),
		}
	}

	var parsed collectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &domain.TransportError{Resource: resource, Err: err}
	}

	if !parsed.Success {
		return nil, nil
	}

	return parsed.Data, nil
}

// TestConnection probes provider reachability for health checks.
func (c *ContentClient) TestConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
