package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/vra-io/catalog-client/internal/http"
	"github.com/vra-io/catalog-client/pkg/vra"
)

func newCachedClient(baseURL string) *CachedResourcesClient {
	resources := NewResourcesClient(internalhttp.NewClient(baseURL, nil))
	manager := vra.NewCacheManager(vra.NewMemoryCache(10), nil)

	return NewCachedResourcesClient(resources, manager)
}

func TestCachedResourcesClient_GetResourceData(t *testing.T) {
	var fetches atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_ = json.NewEncoder(w).Encode(vra.ResourcePayload{
			ID:     "resource-id",
			Name:   "hol-dev-11",
			Status: "ACTIVE",
		})
	}))
	defer server.Close()

	cached := newCachedClient(server.URL)

	for n := 0; n < 3; n++ {
		payload, err := cached.GetResourceData(context.Background(), "resource-id")
		require.NoError(t, err)
		assert.Equal(t, "hol-dev-11", payload.Name)
	}

	assert.Equal(t, int32(1), fetches.Load())

	stats := cached.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestCachedResourcesClient_SubmitRequestInvalidates(t *testing.T) {
	var fetches atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Location", "http://"+r.Host+"/catalog-service/api/consumer/requests/request-id")
			w.WriteHeader(http.StatusCreated)

			return
		}

		fetches.Add(1)
		_ = json.NewEncoder(w).Encode(vra.ResourcePayload{ID: "resource-id", Name: "hol-dev-11"})
	}))
	defer server.Close()

	cached := newCachedClient(server.URL)

	_, err := cached.GetResourceData(context.Background(), "resource-id")
	require.NoError(t, err)

	_, err = cached.SubmitRequest(context.Background(), &vra.ResourceActionRequest{
		Type:              "ResourceActionRequest",
		ResourceRef:       vra.IDRef{ID: "resource-id"},
		ResourceActionRef: vra.IDRef{ID: "action-id"},
		State:             vra.RequestStateSubmitted,
	})
	require.NoError(t, err)

	// Next fetch must go back to the API.
	_, err = cached.GetResourceData(context.Background(), "resource-id")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetches.Load())
}

func TestCachedResourcesClient_ErrorsNotCached(t *testing.T) {
	var fetches atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"code":10101,"message":"Resource not found"}]}`))
	}))
	defer server.Close()

	cached := newCachedClient(server.URL)

	for n := 0; n < 2; n++ {
		_, err := cached.GetResourceData(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, vra.IsNotFound(err))
	}

	assert.Equal(t, int32(2), fetches.Load())
}
