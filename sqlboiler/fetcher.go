// Package sqlboiler adapts SQLBoiler queries to paging.Fetcher.
//
// The planner output of a request travels in paging.FetchParams and is turned
// into query mods by ToQueryMods, so generated models can be paged without
// hand-written SQL:
//
//	fetcher := sqlboiler.NewFetcher(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Component, error) {
//	        return models.Components(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Components(mods...).Count(ctx, db)
//	    },
//	    sqlboiler.ToQueryMods(dialect.Postgres{}),
//	)
//	page, err := paging.Paginate(ctx, fetcher, opts, plan)
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	paging "github.com/nrfta/rdb-paging-go"
)

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the SQLBoiler model type (e.g., *models.Component).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Fetcher implements paging.Fetcher[T] for SQLBoiler queries.
type Fetcher[T any] struct {
	queryFunc   QueryFunc[T]
	countFunc   CountFunc
	queryModsFn func(paging.FetchParams) []qm.QueryMod
	baseMods    []qm.QueryMod
}

// NewFetcher creates a new SQLBoiler fetcher.
//
// Parameters:
//   - queryFunc: Function that executes SQLBoiler queries with query mods
//   - countFunc: Function that counts total records with query mods
//   - queryModsFn: Function converting FetchParams to query mods, usually ToQueryMods
//   - baseMods: Mods applied to both queries, such as WHERE filters
func NewFetcher[T any](
	queryFunc QueryFunc[T],
	countFunc CountFunc,
	queryModsFn func(paging.FetchParams) []qm.QueryMod,
	baseMods ...qm.QueryMod,
) *Fetcher[T] {
	return &Fetcher[T]{
		queryFunc:   queryFunc,
		countFunc:   countFunc,
		queryModsFn: queryModsFn,
		baseMods:    baseMods,
	}
}

var _ paging.Fetcher[struct{}] = (*Fetcher[struct{}])(nil)

// Fetch retrieves one page using the base mods followed by the page mods.
func (f *Fetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	mods := make([]qm.QueryMod, 0, len(f.baseMods)+len(params.Joins)+3)
	mods = append(mods, f.baseMods...)
	mods = append(mods, f.queryModsFn(params)...)
	return f.queryFunc(ctx, mods...)
}

// Count counts with the base mods only. The planned joins are LEFT JOINs to
// single parents, so they never change the number of rows.
func (f *Fetcher[T]) Count(ctx context.Context, _ paging.FetchParams) (int64, error) {
	return f.countFunc(ctx, f.baseMods...)
}
