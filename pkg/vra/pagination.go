package vra

import (
	"context"
	"errors"
	"fmt"
)

// PaginationClient is implemented by list-capable clients so iteration
// helpers can walk any paged endpoint.
type PaginationClient[T any] interface {
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*PagedResponse[T], error)
}

// PaginationIterator walks a paged endpoint item by item, fetching pages on
// demand.
type PaginationIterator[T any] struct {
	ctx     context.Context
	client  PaginationClient[T]
	path    string
	params  *QueryParams
	current *PagedResponse[T]
	index   int
}

// NewPaginationIterator creates an iterator over the given path.
func NewPaginationIterator[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams) *PaginationIterator[T] {
	if params == nil {
		params = NewQueryParams()
	}

	if params.Page == 0 {
		params.Page = 1
	}

	return &PaginationIterator[T]{
		ctx:    ctx,
		client: client,
		path:   path,
		params: params,
	}
}

// HasNext reports whether another item is available. Before the first fetch
// it optimistically returns true; Next reports the empty result.
func (it *PaginationIterator[T]) HasNext() bool {
	if it.current == nil {
		return true
	}

	if it.index < len(it.current.Content) {
		return true
	}

	return it.current.Metadata.Number < it.current.Metadata.TotalPages
}

// Next returns the next item, fetching the next page when the current one
// is exhausted. It returns ErrNoMoreItems past the end.
func (it *PaginationIterator[T]) Next() (*T, error) {
	if it.current == nil || (it.index >= len(it.current.Content) && it.current.Metadata.Number < it.current.Metadata.TotalPages) {
		err := it.fetchNextPage()
		if err != nil {
			return nil, err
		}
	}

	if it.index >= len(it.current.Content) {
		return nil, ErrNoMoreItems
	}

	item := it.current.Content[it.index]
	it.index++

	return &item, nil
}

// All drains the iterator and returns the remaining items.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				break
			}

			return nil, err
		}

		items = append(items, *item)
	}

	return items, nil
}

func (it *PaginationIterator[T]) fetchNextPage() error {
	if it.current != nil {
		it.params.Page = it.current.Metadata.Number + 1
	}

	page, err := it.client.ListWithPath(it.ctx, it.path, it.params)
	if err != nil {
		return fmt.Errorf("fetching page %d: %w", it.params.Page, err)
	}

	it.current = page
	it.index = 0

	return nil
}

// FetchAllPages collects every item of a paged endpoint.
func FetchAllPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams) ([]T, error) {
	return NewPaginationIterator(ctx, client, path, params).All()
}
