package driftpay

import (
	"context"
	"net/url"
	"strconv"
)

// Cursors are the opaque positions of a result page within its collection.
type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// ListMeta is the pagination metadata attached to every list response.
type ListMeta struct {
	Cursors Cursors `json:"cursors"`
	Limit   int     `json:"limit"`
}

// ListParams are the pagination and creation-time filters shared by all list
// operations. Resource-specific list params embed it.
type ListParams struct {
	// Limit is the page size, 1 to 500. Zero means the API default of 50.
	Limit int
	// Before and After are cursors from a previous page's ListMeta.
	Before string
	After  string
	// CreatedAt filters by creation timestamp, RFC3339 formatted.
	CreatedAt CreatedAtFilter
}

type CreatedAtFilter struct {
	Gt  string
	Gte string
	Lt  string
	Lte string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Before != "" {
		v.Set("before", p.Before)
	}
	if p.After != "" {
		v.Set("after", p.After)
	}
	if p.CreatedAt.Gt != "" {
		v.Set("created_at[gt]", p.CreatedAt.Gt)
	}
	if p.CreatedAt.Gte != "" {
		v.Set("created_at[gte]", p.CreatedAt.Gte)
	}
	if p.CreatedAt.Lt != "" {
		v.Set("created_at[lt]", p.CreatedAt.Lt)
	}
	if p.CreatedAt.Lte != "" {
		v.Set("created_at[lte]", p.CreatedAt.Lte)
	}
	return v
}

type pageFunc[T any] func(ctx context.Context, after string) ([]T, ListMeta, error)

// Iterator lazily walks a paginated collection, fetching the next page only
// when the current one is exhausted. It is not safe for concurrent use.
type Iterator[T any] struct {
	fetch pageFunc[T]
	items []T
	pos   int
	after string
	done  bool
	err   error
}

func newIterator[T any](after string, fetch pageFunc[T]) *Iterator[T] {
	return &Iterator[T]{
		fetch: fetch,
		pos:   -1,
		after: after,
	}
}

// Next advances to the next element, fetching a page from the API when
// needed. It returns false once the collection is exhausted or a fetch
// failed; check Err to tell the two apart.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	for {
		if it.err != nil {
			return false
		}
		if it.pos+1 < len(it.items) {
			it.pos++
			return true
		}
		if it.done {
			return false
		}

		items, meta, err := it.fetch(ctx, it.after)
		if err != nil {
			it.err = err
			return false
		}
		it.items = items
		it.pos = -1
		it.after = meta.Cursors.After
		if it.after == "" || len(items) == 0 {
			it.done = true
		}
		if len(items) == 0 {
			return false
		}
	}
}

// Value returns the current element. Only valid after Next returned true.
func (it *Iterator[T]) Value() T {
	if it.pos >= 0 && it.pos < len(it.items) {
		return it.items[it.pos]
	}
	var zero T
	return zero
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}
