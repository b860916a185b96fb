package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/vra-io/catalog-client/internal/http"
	"github.com/vra-io/catalog-client/pkg/vra"
)

const (
	catalogItemsPath         = "/catalog-service/api/consumer/catalogItems"
	entitledCatalogItemsPath = "/catalog-service/api/consumer/entitledCatalogItems"
)

// CatalogItemsClient implements vra.CatalogItemsClient.
type CatalogItemsClient struct {
	httpClient *http.Client
}

// NewCatalogItemsClient creates a new catalog items client.
func NewCatalogItemsClient(httpClient *http.Client) *CatalogItemsClient {
	return &CatalogItemsClient{httpClient: httpClient}
}

// Get implements vra.CatalogItemsClient.Get.
func (c *CatalogItemsClient) Get(ctx context.Context, catalogItemID string) (*vra.CatalogItem, error) {
	path := catalogItemsPath + "/" + catalogItemID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting catalog item: %w", err)
	}

	var item vra.CatalogItem

	err = json.Unmarshal(resp.Body, &item)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog item: %w", err)
	}

	return &item, nil
}

// List implements vra.CatalogItemsClient.List. Only items the caller is
// entitled to request are returned.
func (c *CatalogItemsClient) List(ctx context.Context, params *vra.QueryParams) (*vra.PagedResponse[vra.EntitledCatalogItem], error) {
	return c.ListWithPath(ctx, entitledCatalogItemsPath, params)
}

// ListWithPath implements vra.CatalogItemsClient.ListWithPath.
func (c *CatalogItemsClient) ListWithPath(ctx context.Context, path string, params *vra.QueryParams) (*vra.PagedResponse[vra.EntitledCatalogItem], error) {
	if path == "" {
		path = entitledCatalogItemsPath
	}

	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing entitled catalog items: %w", err)
	}

	var page vra.PagedResponse[vra.EntitledCatalogItem]

	err = json.Unmarshal(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing entitled catalog items list: %w", err)
	}

	return &page, nil
}

// Request implements vra.CatalogItemsClient.Request. The created request
// ID is read from the Location header of the 201 response.
func (c *CatalogItemsClient) Request(ctx context.Context, request *vra.CatalogItemRequest) (*vra.Request, error) {
	resp, err := c.httpClient.Post(ctx, requestsPath, request)
	if err != nil {
		return nil, fmt.Errorf("submitting catalog item request: %w", err)
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
