package app

import "context"

// PageFunc fetches page with given zero-based index.
type PageFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// FetchAll walks paginated listing starting from page `start` until the page without next page is reached.
// Pages are fetched one by one, in order. First error aborts the listing and no items are returned.
func FetchAll[T any](ctx context.Context, start int, fetch PageFunc[T]) ([]T, error) {
	results := make([]T, 0)
	for page := start; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		results = append(results, p.Items...)

		if !p.HasNext {
			return results, nil
		}
	}
}
