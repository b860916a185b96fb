// Package vra provides types, interfaces, and helpers for working with the
// vRealize Automation catalog consumer API.
//
// # Overview
//
// The vra package defines the domain types (e.g., Resource, Request,
// CatalogItem) and the interfaces for resource-oriented clients
// (ResourcesClient, RequestsClient, CatalogItemsClient). A concrete
// implementation of these clients is provided by the vraclient package,
// which wires configuration, transport, and identity authentication. Most
// consumers should import vraclient to construct a client and then interact
// with the client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/vra-io/catalog-client/pkg/vra"
//	  "github.com/vra-io/catalog-client/pkg/vraclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := vraclient.New(ctx, &vra.Config{
//	    BaseURL:  "https://vra.example.com",
//	    Tenant:   "vsphere.local",
//	    Username: "user",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  res, err := cli.Resources().Get(ctx, "31a7badc-6562-458d-84f3-ec58d74a6953")
//	  if err != nil { log.Fatal(err) }
//	  _ = res
//	}
//
// # Resources and actions
//
// Resource is the central type: it wraps a provisioned catalog resource's
// payload and exposes accessors for identity, ownership, machine state and
// network interfaces. Day-two actions are discovered lazily via
// Resource.Actions and submitted with Resource.SubmitActionRequest or the
// Destroy shortcut, both of which return a Request handle that can be polled
// until completion.
//
// # Queries and pagination
//
// Use QueryParams to express common list options (page, limit, $filter,
// $orderby). PaginationIterator and FetchAllPages help iterate or collect
// paginated results.
//
// # Errors
//
// API errors are represented by APIError and ResponseError. Helpers such as
// IsNotFound, IsUnauthorized, and IsForbidden make it easy to branch on
// common error cases.
//
// # Caching
//
// A pluggable Cache abstraction is included with in-memory and NATS KV
// backends. The vraclient package composes a caching layer over resource
// fetches when Config.Cache is set.
package vra
