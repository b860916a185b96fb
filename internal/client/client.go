// Package client provides the concrete implementation of the catalog API
// client interfaces.
package client

import (
	"time"

	"github.com/vra-io/catalog-client/internal/auth"
	"github.com/vra-io/catalog-client/internal/constants"
	"github.com/vra-io/catalog-client/internal/http"
	"github.com/vra-io/catalog-client/pkg/vra"
)

// Client implements the vra.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       vra.Logger

	// Resource clients
	resources    vra.ResourcesClient
	requests     vra.RequestsClient
	catalogItems vra.CatalogItemsClient
}

// New creates a new catalog API client.
func New(config *vra.Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, vra.ErrBaseURLRequired
	}

	tokenManager := createTokenManager(config)
	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.BaseURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.BaseURL,
		logger:       config.Logger,
	}

	err := client.initializeResourceClients(config)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// createTokenManager creates appropriate token manager based on config.
func createTokenManager(config *vra.Config) auth.TokenManager {
	if config.BearerToken != "" {
		return auth.NewStaticTokenManager(config.BearerToken)
	}

	if config.Username != "" && config.Password != "" {
		return auth.NewIdentityTokenManager(&auth.IdentityConfig{
			TokenURL:      config.BaseURL + "/identity/api/tokens",
			Tenant:        config.Tenant,
			Username:      config.Username,
			Password:      config.Password,
			SkipTLSVerify: config.SkipTLSVerify,
		})
	}

	return nil // No authentication
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *vra.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, http.WithSkipTLSVerify(true))
	}

	if config.RetryMax > 0 {
		retryWaitMin := 1 * time.Second
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// initializeResourceClients wires the per-resource clients, layering a
// cache over resource fetches when configured.
func (c *Client) initializeResourceClients(config *vra.Config) error {
	resources := NewResourcesClient(c.httpClient)

	if config != nil && config.Cache != nil && config.Cache.Type != vra.CacheTypeNone {
		cache, err := vra.NewCacheFromConfig(config.Cache)
		if err != nil {
			return err
		}

		c.resources = NewCachedResourcesClient(resources, vra.NewCacheManager(cache, config.Cache.Options))
	} else {
		c.resources = resources
	}

	c.requests = NewRequestsClient(c.httpClient)
	c.catalogItems = NewCatalogItemsClient(c.httpClient)

	return nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Resources implements vra.Client.Resources.
func (c *Client) Resources() vra.ResourcesClient {
	return c.resources
}

// Requests implements vra.Client.Requests.
func (c *Client) Requests() vra.RequestsClient {
	return c.requests
}

// CatalogItems implements vra.Client.CatalogItems.
func (c *Client) CatalogItems() vra.CatalogItemsClient {
	return c.catalogItems
}
