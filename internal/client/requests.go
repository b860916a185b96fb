package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/vra-io/catalog-client/internal/constants"
	"github.com/vra-io/catalog-client/internal/http"
	"github.com/vra-io/catalog-client/pkg/vra"
)

// RequestsClient implements vra.RequestsClient.
type RequestsClient struct {
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewRequestsClient creates a new requests client.
func NewRequestsClient(httpClient *http.Client) *RequestsClient {
	return &RequestsClient{
		httpClient:   httpClient,
		pollInterval: constants.DefaultPollInterval,
		pollTimeout:  constants.DefaultRequestPollTimeout,
	}
}

// Get implements vra.RequestsClient.Get.
func (c *RequestsClient) Get(ctx context.Context, requestID string) (*vra.Request, error) {
	path := requestsPath + "/" + requestID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting request: %w", err)
	}

	var request vra.Request

	err = json.Unmarshal(resp.Body, &request)
	if err != nil {
		return nil, fmt.Errorf("parsing request: %w", err)
	}

	return &request, nil
}

// List implements vra.RequestsClient.List.
func (c *RequestsClient) List(ctx context.Context, params *vra.QueryParams) (*vra.PagedResponse[vra.Request], error) {
	return c.ListWithPath(ctx, requestsPath, params)
}

// ListWithPath implements vra.RequestsClient.ListWithPath.
func (c *RequestsClient) ListWithPath(ctx context.Context, path string, params *vra.QueryParams) (*vra.PagedResponse[vra.Request], error) {
	if path == "" {
		path = requestsPath
	}

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	var page vra.PagedResponse[vra.Request]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing requests list: %w", err)
	}

	return &page, nil
}

// PollUntilComplete implements vra.RequestsClient.PollUntilComplete.
// It polls the request until it reaches a terminal state.
func (c *RequestsClient) PollUntilComplete(ctx context.Context, requestID string) (*vra.Request, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	// First check immediately
	request, err := c.Get(pollCtx, requestID)
	if err != nil {
		return nil, fmt.Errorf("getting request status: %w", err)
	}

	if request.Completed() {
		return finishedRequest(request)
	}

	for {
		select {
		case <-pollCtx.Done():
			// Return the last known state on timeout
			return request, fmt.Errorf("timeout waiting for request to complete: %w", pollCtx.Err())
		case <-ticker.C:
			request, err = c.Get(pollCtx, requestID)
			if err != nil {
				return nil, fmt.Errorf("getting request status: %w", err)
			}

			if request.Completed() {
				return finishedRequest(request)
			}
		}
	}
}

func finishedRequest(request *vra.Request) (*vra.Request, error) {
	if request.Failed() {
		return request, fmt.Errorf("%w: %s", vra.ErrRequestFailed, request.CompletionDetails())
	}

	return request, nil
}
