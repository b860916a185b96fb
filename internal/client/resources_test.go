package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/vra-io/catalog-client/internal/http"
	"github.com/vra-io/catalog-client/pkg/vra"
)

func TestResourcesClient_GetResourceData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog-service/api/consumer/resources/31a7badc-6562-458d-84f3-ec58d74a6953", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		payload := vra.ResourcePayload{
			ID:     "31a7badc-6562-458d-84f3-ec58d74a6953",
			Name:   "hol-dev-11",
			Status: "ACTIVE",
		}

		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	payload, err := client.Resources().GetResourceData(context.Background(), "31a7badc-6562-458d-84f3-ec58d74a6953")
	require.NoError(t, err)
	assert.Equal(t, "hol-dev-11", payload.Name)
	assert.Equal(t, "ACTIVE", payload.Status)
}

func TestResourcesClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog-service/api/consumer/resources/resource-id", r.URL.Path)

		_ = json.NewEncoder(w).Encode(vra.ResourcePayload{
			ID:   "resource-id",
			Name: "hol-dev-11",
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	resource, err := client.Resources().Get(context.Background(), "resource-id")
	require.NoError(t, err)
	assert.Equal(t, "resource-id", resource.ID())
	assert.Equal(t, "hol-dev-11", resource.Name())
}

func TestResourcesClient_Get_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"code":10101,"message":"Resource not found"}]}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Resources().Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, vra.IsNotFound(err))
}

func TestResourcesClient_GetByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog-service/api/consumer/resources", r.URL.Path)
		assert.Equal(t, "name eq 'hol-dev-11'", r.URL.Query().Get("$filter"))

		page := vra.PagedResponse[vra.ResourcePayload]{
			Content: []vra.ResourcePayload{
				{ID: "other-id", Name: "hol-dev-11-copy"},
				{ID: "resource-id", Name: "hol-dev-11"},
			},
			Metadata: vra.PageMetadata{TotalElements: 2, TotalPages: 1, Number: 1},
		}

		_ = json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	resource, err := client.Resources().GetByName(context.Background(), "hol-dev-11")
	require.NoError(t, err)
	assert.Equal(t, "resource-id", resource.ID())
}

func TestResourcesClient_GetByName_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := vra.PagedResponse[vra.ResourcePayload]{
			Content: []vra.ResourcePayload{
				{ID: "other-id", Name: "hol-dev-11-copy"},
			},
		}

		_ = json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Resources().GetByName(context.Background(), "hol-dev-11")
	require.ErrorIs(t, err, vra.ErrResourceNotFound)
}

func TestResourcesClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog-service/api/consumer/resources", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		page := vra.PagedResponse[vra.ResourcePayload]{
			Content: []vra.ResourcePayload{
				{ID: "resource-1", Name: "vm-1"},
				{ID: "resource-2", Name: "vm-2"},
			},
			Metadata: vra.PageMetadata{TotalElements: 2, TotalPages: 1, Number: 2},
		}

		_ = json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	page, err := client.Resources().List(context.Background(), vra.NewQueryParams().WithPage(2).WithLimit(50))
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, "vm-1", page.Content[0].Name)
}

func TestResourcesClient_SubmitRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog-service/api/consumer/requests", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var body vra.ResourceActionRequest

		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "ResourceActionRequest", body.Type)
		assert.Equal(t, "resource-id", body.ResourceRef.ID)
		assert.Equal(t, "action-id", body.ResourceActionRef.ID)

		w.Header().Set("Location", "http://"+r.Host+"/catalog-service/api/consumer/requests/7aaf9baf-aa4e-47c4-997b-edd7c7983a5b")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	request, err := client.Resources().SubmitRequest(context.Background(), &vra.ResourceActionRequest{
		Type:              "ResourceActionRequest",
		ResourceRef:       vra.IDRef{ID: "resource-id"},
		ResourceActionRef: vra.IDRef{ID: "action-id"},
		State:             vra.RequestStateSubmitted,
	})
	require.NoError(t, err)
	assert.Equal(t, "7aaf9baf-aa4e-47c4-997b-edd7c7983a5b", request.ID)
	assert.Equal(t, vra.RequestStateSubmitted, request.State)
}

func TestResourcesClient_SubmitRequest_MissingLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Resources().SubmitRequest(context.Background(), &vra.ResourceActionRequest{
		Type:              "ResourceActionRequest",
		ResourceRef:       vra.IDRef{ID: "resource-id"},
		ResourceActionRef: vra.IDRef{ID: "action-id"},
	})
	require.ErrorIs(t, err, vra.ErrMissingLocationHeader)
}

func TestRequestIDFromLocation_TrailingSlash(t *testing.T) {
	resp := &internalhttp.Response{Headers: http.Header{}}
	resp.Headers.Set("Location", "https://vra.example.com/catalog-service/api/consumer/requests/request-id/")

	id, err := requestIDFromLocation(resp)
	require.NoError(t, err)
	assert.Equal(t, "request-id", id)
}
