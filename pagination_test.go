package driftpay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIteratorWalksAllPages(t *testing.T) {
	pages := [][]string{
		{"a", "b"},
		{"c"},
		{"d", "e"},
	}
	cursors := []string{"cur1", "cur2", ""}

	var requested []string
	it := newIterator("", func(ctx context.Context, after string) ([]string, ListMeta, error) {
		requested = append(requested, after)
		page := len(requested) - 1
		return pages[page], ListMeta{Cursors: Cursors{After: cursors[page]}}, nil
	})

	ctx := context.Background()
	var got []string
	for it.Next(ctx) {
		got = append(got, it.Value())
	}

	require.NoError(t, it.Err())
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
	require.Equal(t, []string{"", "cur1", "cur2"}, requested)
}

func TestIteratorEmptyCollection(t *testing.T) {
	calls := 0
	it := newIterator("", func(ctx context.Context, after string) ([]string, ListMeta, error) {
		calls++
		return nil, ListMeta{}, nil
	})

	require.False(t, it.Next(context.Background()))
	require.NoError(t, it.Err())
	require.Equal(t, 1, calls)

	// exhausted iterators stay exhausted
	require.False(t, it.Next(context.Background()))
	require.Equal(t, 1, calls)
}

func TestIteratorStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	it := newIterator("", func(ctx context.Context, after string) ([]string, ListMeta, error) {
		calls++
		if calls == 2 {
			return nil, ListMeta{}, boom
		}
		return []string{"a"}, ListMeta{Cursors: Cursors{After: "cur1"}}, nil
	})

	ctx := context.Background()
	require.True(t, it.Next(ctx))
	require.Equal(t, "a", it.Value())

	require.False(t, it.Next(ctx))
	require.ErrorIs(t, it.Err(), boom)

	// a failed iterator does not fetch again
	require.False(t, it.Next(ctx))
	require.Equal(t, 2, calls)
}

func TestIteratorStartsFromGivenCursor(t *testing.T) {
	var requested []string
	it := newIterator("start", func(ctx context.Context, after string) ([]string, ListMeta, error) {
		requested = append(requested, after)
		return []string{"x"}, ListMeta{}, nil
	})

	require.True(t, it.Next(context.Background()))
	require.Equal(t, []string{"start"}, requested)
}

func TestIteratorStopsWhenCursorEnds(t *testing.T) {
	calls := 0
	it := newIterator("", func(ctx context.Context, after string) ([]string, ListMeta, error) {
		calls++
		return []string{"only"}, ListMeta{Cursors: Cursors{After: ""}}, nil
	})

	ctx := context.Background()
	require.True(t, it.Next(ctx))
	require.False(t, it.Next(ctx))
	require.NoError(t, it.Err())
	require.Equal(t, 1, calls)
}

func TestListParamsValues(t *testing.T) {
	p := ListParams{
		Limit:  25,
		After:  "cur1",
		Before: "cur0",
		CreatedAt: CreatedAtFilter{
			Gt:  "2024-01-01T00:00:00Z",
			Lte: "2024-02-01T00:00:00Z",
		},
	}

	v := p.values()
	require.Equal(t, "25", v.Get("limit"))
	require.Equal(t, "cur1", v.Get("after"))
	require.Equal(t, "cur0", v.Get("before"))
	require.Equal(t, "2024-01-01T00:00:00Z", v.Get("created_at[gt]"))
	require.Equal(t, "2024-02-01T00:00:00Z", v.Get("created_at[lte]"))
	require.Empty(t, v.Get("created_at[gte]"))

	require.Empty(t, ListParams{}.values())
}
