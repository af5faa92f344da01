package paging

import (
	"context"
	"time"

	"github.com/friendsofgo/errors"
)

// StrategyOffset is the Metadata.Strategy of pages built by Paginate.
const StrategyOffset = "offset"

// Paginate counts the items, clamps the requested page into range and fetches it.
//
// The page size is checked against the maximum first; an oversized request
// returns a *PageSizeError without touching the database. When there are no
// items, Fetch is not called.
//
// Example:
//
//	plan, err := componentOrder.Plan(values)
//	if err != nil {
//	    return nil, err
//	}
//	page, err := paging.Paginate(ctx, fetcher, opts, plan, paging.WithMaxItemsPerPage(100))
func Paginate[T any](
	ctx context.Context,
	fetcher Fetcher[T],
	opts PaginationOptions,
	plan Plan,
	options ...PaginateOption,
) (*Page[T], error) {
	cfg := ApplyPaginateOptions(options...)
	if err := cfg.Validate(opts); err != nil {
		return nil, err
	}

	start := time.Now()
	params := FetchParams{
		Joins:   plan.Joins,
		OrderBy: plan.OrderBy,
	}

	total, err := fetcher.Count(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "counting items")
	}

	pagination := NewPagination().
		WithItemsPerPage(cfg.EffectiveItemsPerPage(opts)).
		WithTotalItems(int(total)).
		WithPage(opts.Page)

	var nodes []T
	if total > 0 {
		params.Limit = pagination.ItemsPerPage()
		params.Offset = pagination.Offset()

		nodes, err = fetcher.Fetch(ctx, params)
		if err != nil {
			return nil, errors.Wrap(err, "fetching page")
		}
	}
	if nodes == nil {
		nodes = []T{}
	}

	return &Page[T]{
		Nodes:      nodes,
		Pagination: pagination,
		Metadata: Metadata{
			Strategy:      StrategyOffset,
			QueryTimeMs:   time.Since(start).Milliseconds(),
			ItemsExamined: len(nodes),
		},
	}, nil
}
