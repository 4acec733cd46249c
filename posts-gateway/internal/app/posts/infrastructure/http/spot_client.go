package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mello-felipe/travel-map-social-app/pkg/metrics"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/entity"
)

// SpotClient talks to the spot-discovery server over HTTP.
// It performs no retries; every call maps to exactly one request.
type SpotClient struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// NewSpotClient creates a client for the spot API.
func NewSpotClient(baseURL string, timeout time.Duration) *SpotClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &SpotClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetAuthToken sets the bearer token sent on every request.
func (c *SpotClient) SetAuthToken(token string) {
	c.authToken = token
}

// CreateList creates a list. The community-post flow uses it with
// is_public=false to build the hidden container list.
func (c *SpotClient) CreateList(ctx context.Context, req *entity.ListCreateRequest) (*entity.ListCreateResponse, error) {
	var resp entity.ListCreateResponse
	if err := c.postJSON(ctx, "/v1/lists", metrics.SpotAPIOpCreateList, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// AddSpotToList attaches one spot to an existing list.
func (c *SpotClient) AddSpotToList(ctx context.Context, listID int64, req *entity.AddSpotRequest) error {
	var resp entity.StatusResponse
	path := fmt.Sprintf("/v1/lists/%d/spots", listID)
	if err := c.postJSON(ctx, path, metrics.SpotAPIOpAddSpot, req, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("spot api refused attach: %s", resp.Error.Or("no error reported"))
	}

	return nil
}

// CreateCommunityPost creates the post referencing a populated hidden
// list. The payload carries the list id, not the spot ids — those were
// attached in the previous step.
func (c *SpotClient) CreateCommunityPost(ctx context.Context, listID int64, req *entity.CommunityPostRequest) (*entity.CommunityPostResponse, error) {
	var resp entity.CommunityPostResponse
	payload := entity.NewCommunityPostCreate(req, listID)
	if err := c.postJSON(ctx, "/v1/posts/community", metrics.SpotAPIOpCreateCommunityPost, payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CreateReviewPost creates a review post for a single spot.
func (c *SpotClient) CreateReviewPost(ctx context.Context, req *entity.ReviewPostRequest) (*entity.ReviewPostResponse, error) {
	var resp entity.ReviewPostResponse
	if err := c.postJSON(ctx, "/v1/posts/review", metrics.SpotAPIOpCreateReviewPost, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CreateListPost creates a post about an existing list. It goes to the
// generic posts endpoint, which dispatches on the "type" discriminator the
// request injects during encoding.
func (c *SpotClient) CreateListPost(ctx context.Context, req *entity.ListPostRequest) (*entity.ListPostResponse, error) {
	var resp entity.ListPostResponse
	if err := c.postJSON(ctx, "/v1/posts", metrics.SpotAPIOpCreateListPost, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// postJSON issues one POST and decodes the response envelope into out.
// Non-2xx responses that still carry a decodable envelope surface the
// envelope's error string; anything else is reported as a transport error.
func (c *SpotClient) postJSON(ctx context.Context, path string, op metrics.SpotAPIOperation, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	timer := metrics.NewSpotAPITimer(op)
	resp, err := c.httpClient.Do(req)
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordSpotAPIError(op)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordSpotAPIError(op)
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordSpotAPIError(op)

		// Error responses usually still carry the envelope with a
		// message; surface it unmodified when present.
		var status entity.StatusResponse
		if jsonErr := json.Unmarshal(respBody, &status); jsonErr == nil && status.Error.Set {
			return fmt.Errorf("spot api error: %s", status.Error.Value)
		}

		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		metrics.RecordSpotAPIError(op)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
