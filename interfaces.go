package paging

import "context"

// Page represents a single page of paginated results.
//
// Type parameter T is the item type being paginated.
type Page[T any] struct {
	// Nodes contains the items for this page.
	Nodes []T

	// Pagination is the page position after clamping against the item count.
	Pagination Pagination

	// Metadata provides observability and debugging information.
	Metadata Metadata
}

// Metadata provides observability and debugging information about pagination execution.
type Metadata struct {
	// Strategy identifies which pagination strategy was used. Always "offset".
	Strategy string

	// QueryTimeMs is the total time spent executing database queries.
	QueryTimeMs int64

	// ItemsExamined is the number of items fetched from the database.
	ItemsExamined int
}

// Plan is the planner output for one request: the joins that make every order
// column reachable and the order terms in sort order.
type Plan struct {
	Joins   []Join
	OrderBy []OrderTerm
}

// Empty reports whether the plan neither joins nor orders.
func (p Plan) Empty() bool {
	return len(p.Joins) == 0 && len(p.OrderBy) == 0
}

// Fetcher abstracts database queries for any ORM or database layer.
// This interface allows Paginate to work with SQLBoiler or plain database/sql
// without being tightly coupled to either.
//
// Type parameter T is the database model type (e.g., *models.Component from SQLBoiler).
type Fetcher[T any] interface {
	// Fetch retrieves one page of items. It must apply the joins, the order
	// terms, and the limit and offset of params.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)

	// Count returns the total number of items without pagination.
	Count(ctx context.Context, params FetchParams) (int64, error)
}

// FetchParams contains all parameters needed to fetch a page of data.
type FetchParams struct {
	// Limit is the maximum number of items to fetch; 0 means no limit.
	Limit int

	// Offset is the number of items to skip.
	Offset int64

	// Joins are the LEFT JOINs needed by OrderBy, in dependency order.
	Joins []Join

	// OrderBy specifies the sort order for results.
	OrderBy []OrderTerm
}
