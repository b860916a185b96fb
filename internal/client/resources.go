package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/vra-io/catalog-client/internal/http"
	"github.com/vra-io/catalog-client/pkg/vra"
)

const (
	resourcesPath = "/catalog-service/api/consumer/resources"
	requestsPath  = "/catalog-service/api/consumer/requests"
)

// ResourcesClient implements vra.ResourcesClient.
type ResourcesClient struct {
	httpClient *http.Client
}

// NewResourcesClient creates a new resources client.
func NewResourcesClient(httpClient *http.Client) *ResourcesClient {
	return &ResourcesClient{httpClient: httpClient}
}

// GetResourceData implements vra.ResourceOperations.GetResourceData.
func (c *ResourcesClient) GetResourceData(ctx context.Context, resourceID string) (*vra.ResourcePayload, error) {
	path := resourcesPath + "/" + resourceID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting resource: %w", err)
	}

	var payload vra.ResourcePayload

	err = json.Unmarshal(resp.Body, &payload)
	if err != nil {
		return nil, fmt.Errorf("parsing resource: %w", err)
	}

	return &payload, nil
}

// SubmitRequest implements vra.ResourceOperations.SubmitRequest.
// The service responds 201 with no body; the created request ID is the
// last segment of the Location header.
func (c *ResourcesClient) SubmitRequest(ctx context.Context, request *vra.ResourceActionRequest) (*vra.Request, error) {
	resp, err := c.httpClient.Post(ctx, requestsPath, request)
	if err != nil {
		return nil, fmt.Errorf("submitting resource action request: %w", err)
	}

	requestID, err := requestIDFromLocation(resp)
	if err != nil {
		return nil, err
	}

	return &vra.Request{
		ID:    requestID,
		State: vra.RequestStateSubmitted,
	}, nil
}

// Get implements vra.ResourcesClient.Get.
func (c *ResourcesClient) Get(ctx context.Context, resourceID string) (*vra.Resource, error) {
	return vra.NewResource(ctx, c, vra.ResourceOptions{ID: resourceID})
}

// FromData implements vra.ResourcesClient.FromData.
func (c *ResourcesClient) FromData(data *vra.ResourcePayload) (*vra.Resource, error) {
	return vra.NewResource(context.Background(), c, vra.ResourceOptions{Data: data})
}

// GetByName implements vra.ResourcesClient.GetByName. The match is exact.
func (c *ResourcesClient) GetByName(ctx context.Context, name string) (*vra.Resource, error) {
	params := vra.NewQueryParams().WithNameFilter(name)

	page, err := c.List(ctx, params)
	if err != nil {
		return nil, err
	}

	for i := range page.Content {
		if page.Content[i].Name == name {
			return vra.NewResource(ctx, c, vra.ResourceOptions{Data: &page.Content[i]})
		}
	}

	return nil, fmt.Errorf("%w: %s", vra.ErrResourceNotFound, name)
}

// List implements vra.ResourcesClient.List.
func (c *ResourcesClient) List(ctx context.Context, params *vra.QueryParams) (*vra.PagedResponse[vra.ResourcePayload], error) {
	return c.ListWithPath(ctx, resourcesPath, params)
}

// ListWithPath implements vra.ResourcesClient.ListWithPath.
func (c *ResourcesClient) ListWithPath(ctx context.Context, path string, params *vra.QueryParams) (*vra.PagedResponse[vra.ResourcePayload], error) {
	if path == "" {
		path = resourcesPath
	}

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}

	var page vra.PagedResponse[vra.ResourcePayload]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing resources list: %w", err)
	}

	return &page, nil
}

// requestIDFromLocation extracts the created request ID from a 201
// response's Location header.
func requestIDFromLocation(resp *http.Response) (string, error) {
	location := resp.Headers.Get("Location")
	if location == "" {
		return "", vra.ErrMissingLocationHeader
	}

	location = strings.TrimSuffix(location, "/")

	idx := strings.LastIndex(location, "/")
	if idx < 0 || idx == len(location)-1 {
		return "", fmt.Errorf("%w: malformed location %q", vra.ErrMissingLocationHeader, location)
	}

	return location[idx+1:], nil
}
