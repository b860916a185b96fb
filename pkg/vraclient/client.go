// Package vraclient provides the main entry point for creating vRealize
// Automation catalog API clients.
package vraclient

import (
	"context"
	"strings"

	"github.com/vra-io/catalog-client/internal/client"
	"github.com/vra-io/catalog-client/pkg/vra"
)

// DefaultTenant is used when the configuration does not name a tenant.
const DefaultTenant = "vsphere.local"

// New creates a new catalog API client from the configuration.
func New(ctx context.Context, config *vra.Config) (vra.Client, error) {
	if config == nil {
		return nil, vra.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, vra.ErrBaseURLRequired
	}

	// Normalize the base URL
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL

	if config.Tenant == "" {
		config.Tenant = DefaultTenant
	}

	return client.New(config)
}

// NewWithToken creates a new client with a base URL and bearer token.
func NewWithToken(ctx context.Context, baseURL, token string) (vra.Client, error) {
	return New(ctx, &vra.Config{
		BaseURL:     baseURL,
		BearerToken: token,
	})
}

// NewWithPassword creates a new client using username/password authentication
// against the given identity tenant.
func NewWithPassword(ctx context.Context, baseURL, tenant, username, password string) (vra.Client, error) {
	return New(ctx, &vra.Config{
		BaseURL:  baseURL,
		Tenant:   tenant,
		Username: username,
		Password: password,
	})
}
