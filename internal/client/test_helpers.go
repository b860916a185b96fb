package client

import (
	internalhttp "github.com/vra-io/catalog-client/internal/http"
)

// NewTestClient creates an unauthenticated client for tests.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	_ = client.initializeResourceClients(nil)

	return client
}
