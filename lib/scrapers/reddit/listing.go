package reddit

import "context"

// collectPages drives a paginated listing: collect the current page's
// records, then advance, until advance reports the listing is exhausted or
// maxPages pages have been read. maxPages <= 0 means no page limit. Output
// order is page order, document order within a page; no page is ever
// visited twice.
func collectPages[T any](
	ctx context.Context,
	maxPages int,
	collect func(ctx context.Context) ([]T, error),
	advance func(ctx context.Context) (bool, error),
) ([]T, error) {
	var out []T
	for page := 1; ; page++ {
		items, err := collect(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)

		if maxPages > 0 && page >= maxPages {
			return out, nil
		}
		more, err := advance(ctx)
		if err != nil {
			return nil, err
		}
		if !more {
			return out, nil
		}
	}
}
