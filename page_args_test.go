package paging_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paging "github.com/nrfta/rdb-paging-go"
)

var _ = Describe("PaginationOptions", func() {
	Describe("Offset", func() {
		It("should skip the rows of previous pages", func() {
			opts := paging.PaginationOptions{Page: 3, ItemsPerPage: 20}
			Expect(opts.Offset()).To(Equal(int64(40)))
		})

		It("should be zero on the first page", func() {
			Expect(paging.PaginationOptions{Page: 1, ItemsPerPage: 20}.Offset()).To(BeZero())
			Expect(paging.PaginationOptions{Page: 0, ItemsPerPage: 20}.Offset()).To(BeZero())
			Expect(paging.PaginationOptions{Page: -4, ItemsPerPage: 20}.Offset()).To(BeZero())
		})

		It("should be zero without a page size", func() {
			Expect(paging.PaginationOptions{Page: 7}.Offset()).To(BeZero())
		})
	})

	Describe("Limit", func() {
		It("should return the page size", func() {
			limit, ok := paging.PaginationOptions{ItemsPerPage: 20}.Limit()
			Expect(ok).To(BeTrue())
			Expect(limit).To(Equal(20))
		})

		It("should be absent without a page size", func() {
			_, ok := paging.PaginationOptions{Page: 2}.Limit()
			Expect(ok).To(BeFalse())
		})
	})

	It("should chain With methods without changing the receiver", func() {
		base := paging.PaginationOptions{}
		opts := base.WithPage(2).WithItemsPerPage(10).WithSortBy(
			paging.Sort{Field: "type_order"},
			paging.Sort{Field: "id", Desc: true},
		)

		Expect(base).To(Equal(paging.PaginationOptions{}))
		Expect(opts.Page).To(Equal(2))
		Expect(opts.ItemsPerPage).To(Equal(10))
		Expect(opts.SortBy).To(HaveLen(2))
		Expect(opts.SortBy[1].Desc).To(BeTrue())
	})

	It("should decode request JSON", func() {
		var opts paging.PaginationOptions
		err := json.Unmarshal([]byte(`{"page":2,"items_per_page":15,"sort_by":[{"field":"vendor_order","desc":true}]}`), &opts)
		Expect(err).ToNot(HaveOccurred())
		Expect(opts).To(Equal(paging.PaginationOptions{
			Page:         2,
			ItemsPerPage: 15,
			SortBy:       []paging.Sort{{Field: "vendor_order", Desc: true}},
		}))
	})
})

var _ = Describe("PageConfig", func() {
	Describe("NewPageConfig", func() {
		It("should create config with default values", func() {
			config := paging.NewPageConfig()
			Expect(config.DefaultItemsPerPage).To(Equal(paging.DefaultItemsPerPage))
			Expect(config.MaxItemsPerPage).To(Equal(paging.DefaultMaxItemsPerPage))
		})
	})

	Describe("WithDefaultItemsPerPage", func() {
		It("should set the default", func() {
			config := paging.NewPageConfig().WithDefaultItemsPerPage(25)
			Expect(config.DefaultItemsPerPage).To(Equal(25))
		})

		It("should accept zero as unlimited", func() {
			config := paging.NewPageConfig().WithDefaultItemsPerPage(0)
			Expect(config.EffectiveItemsPerPage(paging.PaginationOptions{})).To(BeZero())
		})

		It("should ignore negative values", func() {
			config := paging.NewPageConfig().WithDefaultItemsPerPage(-1)
			Expect(config.DefaultItemsPerPage).To(Equal(paging.DefaultItemsPerPage))
		})
	})

	Describe("WithMaxItemsPerPage", func() {
		It("should set the max", func() {
			config := paging.NewPageConfig().WithMaxItemsPerPage(500)
			Expect(config.MaxItemsPerPage).To(Equal(500))
		})

		It("should ignore zero or negative values", func() {
			config := paging.NewPageConfig().WithMaxItemsPerPage(0).WithMaxItemsPerPage(-5)
			Expect(config.MaxItemsPerPage).To(Equal(paging.DefaultMaxItemsPerPage))
		})
	})

	Describe("EffectiveItemsPerPage", func() {
		var config *paging.PageConfig

		BeforeEach(func() {
			config = paging.NewPageConfig().WithDefaultItemsPerPage(25).WithMaxItemsPerPage(100)
		})

		It("should return the default when not requested", func() {
			Expect(config.EffectiveItemsPerPage(paging.PaginationOptions{})).To(Equal(25))
			Expect(config.EffectiveItemsPerPage(paging.PaginationOptions{ItemsPerPage: -3})).To(Equal(25))
		})

		It("should return the request when within limits", func() {
			Expect(config.EffectiveItemsPerPage(paging.PaginationOptions{ItemsPerPage: 40})).To(Equal(40))
		})

		It("should cap the request to the max", func() {
			Expect(config.EffectiveItemsPerPage(paging.PaginationOptions{ItemsPerPage: 400})).To(Equal(100))
		})

		It("should handle nil config gracefully", func() {
			var nilConfig *paging.PageConfig
			Expect(nilConfig.EffectiveItemsPerPage(paging.PaginationOptions{})).To(Equal(paging.DefaultItemsPerPage))
		})
	})

	Describe("Validate", func() {
		It("should accept page sizes up to the max", func() {
			config := paging.NewPageConfig().WithMaxItemsPerPage(100)
			Expect(config.Validate(paging.PaginationOptions{ItemsPerPage: 100})).To(Succeed())
			Expect(config.Validate(paging.PaginationOptions{})).To(Succeed())
		})

		It("should reject page sizes exceeding the max", func() {
			config := paging.NewPageConfig().WithMaxItemsPerPage(100)
			err := config.Validate(paging.PaginationOptions{ItemsPerPage: 101})

			var sizeErr *paging.PageSizeError
			Expect(err).To(BeAssignableToTypeOf(sizeErr))
			sizeErr = err.(*paging.PageSizeError)
			Expect(sizeErr.Requested).To(Equal(101))
			Expect(sizeErr.Maximum).To(Equal(100))
			Expect(err.Error()).To(Equal("requested 101 items per page exceeds maximum allowed of 100"))
		})

		It("should handle nil config gracefully", func() {
			var nilConfig *paging.PageConfig
			Expect(nilConfig.Validate(paging.PaginationOptions{ItemsPerPage: 2000})).ToNot(Succeed())
		})
	})

	Describe("ApplyPaginateOptions", func() {
		It("should apply options over the defaults", func() {
			config := paging.ApplyPaginateOptions(
				paging.WithMaxItemsPerPage(200),
				paging.WithDefaultItemsPerPage(10),
			)
			Expect(config.MaxItemsPerPage).To(Equal(200))
			Expect(config.DefaultItemsPerPage).To(Equal(10))
		})
	})
})
