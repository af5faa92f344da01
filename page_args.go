package paging

const (
	// DefaultItemsPerPage is the number of items per page when a request does not specify one.
	DefaultItemsPerPage = 50

	// DefaultMaxItemsPerPage is the default maximum number of items per page.
	// This protects against resource exhaustion from unreasonably large page requests.
	DefaultMaxItemsPerPage = 1000
)

// PaginationOptions are the page-number pagination parameters of a request.
//
// Page is 1-based; values below 2 select the first page. ItemsPerPage of 0
// means no limit.
type PaginationOptions struct {
	Page         int    `json:"page,omitempty"`
	ItemsPerPage int    `json:"items_per_page,omitempty"`
	SortBy       []Sort `json:"sort_by,omitempty"`
}

// Sort is a requested sort on a named field. Field is a key of an order-by
// schema, not a SQL column.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// Offset returns the number of rows to skip: ItemsPerPage*(Page-1) when Page is
// above 1 and ItemsPerPage is set, otherwise 0.
//
// Example:
//
//	paging.PaginationOptions{Page: 3, ItemsPerPage: 20}.Offset() // 40
func (o PaginationOptions) Offset() int64 {
	if o.Page > 1 && o.ItemsPerPage > 0 {
		return int64(o.ItemsPerPage) * int64(o.Page-1)
	}
	return 0
}

// Limit returns the maximum number of rows of a page. The second result is false
// when there is no limit.
func (o PaginationOptions) Limit() (int, bool) {
	if o.ItemsPerPage <= 0 {
		return 0, false
	}
	return o.ItemsPerPage, true
}

// WithPage returns a copy of o for the given page.
func (o PaginationOptions) WithPage(page int) PaginationOptions {
	o.Page = page
	return o
}

// WithItemsPerPage returns a copy of o with the given page size.
func (o PaginationOptions) WithItemsPerPage(n int) PaginationOptions {
	o.ItemsPerPage = n
	return o
}

// WithSortBy returns a copy of o sorted by the given fields, in order.
//
// Example:
//
//	opts := paging.PaginationOptions{}.WithSortBy(
//	    paging.Sort{Field: "type_order"},
//	    paging.Sort{Field: "id", Desc: true},
//	)
func (o PaginationOptions) WithSortBy(sorts ...Sort) PaginationOptions {
	o.SortBy = sorts
	return o
}

// PageConfig holds pagination configuration options.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := paging.NewPageConfig().WithMaxItemsPerPage(500)
//	perPage := config.EffectiveItemsPerPage(opts)
type PageConfig struct {
	// DefaultItemsPerPage is used when the request does not specify a page size.
	// Zero means such requests are not limited.
	DefaultItemsPerPage int

	// MaxItemsPerPage is the maximum allowed page size.
	MaxItemsPerPage int
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultItemsPerPage: 50
// - MaxItemsPerPage: 1000
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultItemsPerPage: DefaultItemsPerPage,
		MaxItemsPerPage:     DefaultMaxItemsPerPage,
	}
}

// WithDefaultItemsPerPage sets the default page size and returns the config for chaining.
// Zero makes requests without a page size unlimited; negative values are ignored.
func (c *PageConfig) WithDefaultItemsPerPage(n int) *PageConfig {
	if n >= 0 {
		c.DefaultItemsPerPage = n
	}
	return c
}

// WithMaxItemsPerPage sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxItemsPerPage(n int) *PageConfig {
	if n > 0 {
		c.MaxItemsPerPage = n
	}
	return c
}

func (c *PageConfig) maxItemsPerPage() int {
	if c.MaxItemsPerPage <= 0 {
		return DefaultMaxItemsPerPage
	}
	return c.MaxItemsPerPage
}

// EffectiveItemsPerPage returns the page size to use, applying defaults and caps.
// - If ItemsPerPage is zero or negative, returns DefaultItemsPerPage
// - If ItemsPerPage exceeds MaxItemsPerPage, returns MaxItemsPerPage
// - Otherwise returns ItemsPerPage
func (c *PageConfig) EffectiveItemsPerPage(opts PaginationOptions) int {
	if c == nil {
		c = NewPageConfig()
	}

	if opts.ItemsPerPage <= 0 {
		if c.DefaultItemsPerPage > c.maxItemsPerPage() {
			return c.maxItemsPerPage()
		}
		return c.DefaultItemsPerPage
	}

	if opts.ItemsPerPage > c.maxItemsPerPage() {
		return c.maxItemsPerPage()
	}

	return opts.ItemsPerPage
}

// Validate checks if the page size exceeds MaxItemsPerPage and returns a
// *PageSizeError if so. Unlike EffectiveItemsPerPage which caps silently,
// Validate rejects the request.
func (c *PageConfig) Validate(opts PaginationOptions) error {
	if c == nil {
		c = NewPageConfig()
	}

	if opts.ItemsPerPage > c.maxItemsPerPage() {
		return &PageSizeError{
			Requested: opts.ItemsPerPage,
			Maximum:   c.maxItemsPerPage(),
		}
	}

	return nil
}

// PaginateOption configures page size limits for a pagination request.
//
// Example:
//
//	page, err := paging.Paginate(ctx, fetcher, opts, plan,
//	    paging.WithMaxItemsPerPage(100),
//	    paging.WithDefaultItemsPerPage(25),
//	)
type PaginateOption func(*PageConfig)

// WithMaxItemsPerPage sets the maximum page size for this request.
func WithMaxItemsPerPage(n int) PaginateOption {
	return func(c *PageConfig) {
		c.WithMaxItemsPerPage(n)
	}
}

// WithDefaultItemsPerPage sets the page size used when the request has none.
func WithDefaultItemsPerPage(n int) PaginateOption {
	return func(c *PageConfig) {
		c.WithDefaultItemsPerPage(n)
	}
}

// ApplyPaginateOptions applies functional options to a default PageConfig.
func ApplyPaginateOptions(opts ...PaginateOption) *PageConfig {
	cfg := NewPageConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
