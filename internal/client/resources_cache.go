package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vra-io/catalog-client/pkg/vra"
)

// CachedResourcesClient decorates a ResourcesClient with payload caching.
// Only single-resource fetches are cached; lists always hit the API.
// Submitting an action invalidates the cached payload for that resource.
type CachedResourcesClient struct {
	delegate *ResourcesClient
	manager  *vra.CacheManager
}

// NewCachedResourcesClient creates a caching layer over a resources client.
func NewCachedResourcesClient(delegate *ResourcesClient, manager *vra.CacheManager) *CachedResourcesClient {
	return &CachedResourcesClient{
		delegate: delegate,
		manager:  manager,
	}
}

// GetResourceData returns a cached payload when fresh, fetching and
// storing it otherwise.
func (c *CachedResourcesClient) GetResourceData(ctx context.Context, resourceID string) (*vra.ResourcePayload, error) {
	key := resourceCacheKey(resourceID)

	if data, err := c.manager.Get(ctx, key); err == nil {
		var payload vra.ResourcePayload

		err = json.Unmarshal(data, &payload)
		if err == nil {
			return &payload, nil
		}

		// Unreadable entry, drop it and refetch.
		_ = c.manager.Delete(ctx, key)
	}

	payload, err := c.delegate.GetResourceData(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding resource for cache: %w", err)
	}

	// Cache write failures must not fail the fetch.
	_ = c.manager.Set(ctx, key, data, 0)

	return payload, nil
}

// SubmitRequest submits the action and invalidates the cached payload,
// since the action will change the resource's state.
func (c *CachedResourcesClient) SubmitRequest(ctx context.Context, request *vra.ResourceActionRequest) (*vra.Request, error) {
	submitted, err := c.delegate.SubmitRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	if request.ResourceRef.ID != "" {
		_ = c.manager.Delete(ctx, resourceCacheKey(request.ResourceRef.ID))
	}

	return submitted, nil
}

// Get fetches a resource by ID through the cache.
func (c *CachedResourcesClient) Get(ctx context.Context, resourceID string) (*vra.Resource, error) {
	return vra.NewResource(ctx, c, vra.ResourceOptions{ID: resourceID})
}

// FromData wraps an already-fetched payload in a Resource.
func (c *CachedResourcesClient) FromData(data *vra.ResourcePayload) (*vra.Resource, error) {
	return vra.NewResource(context.Background(), c, vra.ResourceOptions{Data: data})
}

// GetByName delegates to the underlying client.
func (c *CachedResourcesClient) GetByName(ctx context.Context, name string) (*vra.Resource, error) {
	return c.delegate.GetByName(ctx, name)
}

// List delegates to the underlying client.
func (c *CachedResourcesClient) List(ctx context.Context, params *vra.QueryParams) (*vra.PagedResponse[vra.ResourcePayload], error) {
	return c.delegate.List(ctx, params)
}

// ListWithPath delegates to the underlying client.
func (c *CachedResourcesClient) ListWithPath(ctx context.Context, path string, params *vra.QueryParams) (*vra.PagedResponse[vra.ResourcePayload], error) {
	return c.delegate.ListWithPath(ctx, path, params)
}

// Stats returns cache effectiveness counters.
func (c *CachedResourcesClient) Stats() vra.CacheStats {
	return c.manager.GetStats()
}

func resourceCacheKey(resourceID string) string {
	return "resource:" + resourceID
}
