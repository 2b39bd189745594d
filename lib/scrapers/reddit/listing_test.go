package reddit

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCollectPages(t *testing.T) {
	ctx := context.Background()
	pages := [][]int{{1, 2, 3}, {4, 5}, {6}}

	newWalker := func() (func(context.Context) ([]int, error), func(context.Context) (bool, error)) {
		current := 0
		collect := func(context.Context) ([]int, error) {
			return pages[current], nil
		}
		advance := func(context.Context) (bool, error) {
			if current == len(pages)-1 {
				return false, nil
			}
			current++
			return true, nil
		}
		return collect, advance
	}

	{
		collect, advance := newWalker()
		got, err := collectPages(ctx, 0, collect, advance)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff([]int{1, 2, 3, 4, 5, 6}, got))
	}
	{
		collect, advance := newWalker()
		got, err := collectPages(ctx, 2, collect, advance)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff([]int{1, 2, 3, 4, 5}, got))
	}
	{
		collect, advance := newWalker()
		got, err := collectPages(ctx, 1, collect, advance)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff([]int{1, 2, 3}, got))
	}
}
