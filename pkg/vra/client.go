package vra

import (
	"context"
	"time"
)

// ResourcesClient provides access to provisioned catalog resources.
type ResourcesClient interface {
	ResourceOperations

	// Get fetches a resource by ID and wraps it in a Resource
	Get(ctx context.Context, resourceID string) (*Resource, error)

	// GetByName fetches the resource whose name matches exactly
	GetByName(ctx context.Context, name string) (*Resource, error)

	// FromData wraps an already-fetched payload in a Resource
	FromData(data *ResourcePayload) (*Resource, error)

	// List returns a page of resources visible to the caller
	List(ctx context.Context, params *QueryParams) (*PagedResponse[ResourcePayload], error)

	// ListWithPath supports pagination helpers; an empty path uses the
	// default listing endpoint
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*PagedResponse[ResourcePayload], error)
}

// RequestsClient provides access to catalog requests.
type RequestsClient interface {
	// Get fetches a request by ID
	Get(ctx context.Context, requestID string) (*Request, error)

	// List returns a page of requests visible to the caller
	List(ctx context.Context, params *QueryParams) (*PagedResponse[Request], error)

	// ListWithPath supports pagination helpers; an empty path uses the
	// default listing endpoint
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*PagedResponse[Request], error)

	// PollUntilComplete polls a request until it reaches a terminal state
	// or the context is cancelled
	PollUntilComplete(ctx context.Context, requestID string) (*Request, error)
}

// CatalogItemsClient provides access to the catalog items the caller is
// entitled to request.
type CatalogItemsClient interface {
	// Get fetches a catalog item by ID
	Get(ctx context.Context, catalogItemID string) (*CatalogItem, error)

	// List returns a page of entitled catalog items
	List(ctx context.Context, params *QueryParams) (*PagedResponse[EntitledCatalogItem], error)

	// ListWithPath supports pagination helpers; an empty path uses the
	// default listing endpoint
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*PagedResponse[EntitledCatalogItem], error)

	// Request submits a provisioning request for a catalog item
	Request(ctx context.Context, request *CatalogItemRequest) (*Request, error)
}

// Client is the top-level catalog API client.
type Client interface {
	Resources() ResourcesClient
	Requests() RequestsClient
	CatalogItems() CatalogItemsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a vra.Client.
//
// # Authentication precedence
//
// The following precedence is applied by the concrete client implementation
// (see pkg/vraclient and internal/client):
//  1. BearerToken: if set, it is used directly as a static Bearer token and
//     never refreshed.
//  2. Username/Password: the client obtains identity tokens from the
//     "/identity/api/tokens" endpoint for the configured Tenant and renews
//     them shortly before they expire.
//  3. No credentials: requests are sent without authentication.
type Config struct {
	// BaseURL: base URL of the appliance (e.g., "https://vra.example.com").
	// vraclient.New normalizes this value by trimming a trailing slash and
	// adding "https://" if no scheme is present.
	BaseURL string

	// Tenant: identity tenant requests are issued against. Defaults to
	// "vsphere.local" when empty.
	Tenant string

	// Authentication options (provide one)
	// Username: account username for the identity token grant.
	Username string
	// Password: account password for the identity token grant.
	Password string
	// BearerToken: if set, used directly as a Bearer token.
	BearerToken string

	// Optional configurations
	// HTTPTimeout: optional default HTTP timeout where supported. Most client
	// calls should rely on context timeouts; this may be used by helpers.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures (>=500, 429,
	// and connection errors). If 0, a sensible default is used by the client.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and helpers.
	Logger Logger
	// SkipTLSVerify: if true, TLS certificate verification is skipped.
	// Appliances commonly ship self-signed certificates; do not use in
	// production.
	SkipTLSVerify bool
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// Cache: optional response cache configuration. When set, resource
	// payload fetches are served from the configured backend.
	Cache *CacheConfig
}
