package sqlquery_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	_ "modernc.org/sqlite"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/dialect"
	"github.com/nrfta/rdb-paging-go/sqlquery"
)

var _ = Describe("SQLite", func() {
	var (
		ctx     context.Context
		db      *sql.DB
		fetcher *sqlquery.Fetcher[component]
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = sql.Open("sqlite", ":memory:")
		Expect(err).ToNot(HaveOccurred())
		db.SetMaxOpenConns(1)

		for _, stmt := range componentFixture(func(s string) string { return "`" + s + "`" }) {
			_, err := db.ExecContext(ctx, stmt)
			Expect(err).ToNot(HaveOccurred(), stmt)
		}

		fetcher = sqlquery.NewFetcher(db, dialect.SQLite{}, sqlquery.Query{
			Select: "`component`.`id`, `component`.`name`",
			From:   "component",
			Where:  "`component`.`retired` = ?",
			Args:   []any{false},
		}, scanComponent)
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	It("should order by the default keys", func() {
		plan, err := componentOrder.Plan(componentOrder.Defaults())
		Expect(err).ToNot(HaveOccurred())

		page, err := paging.Paginate(ctx, fetcher, paging.PaginationOptions{}, plan)
		Expect(err).ToNot(HaveOccurred())
		Expect(componentIDs(page.Nodes)).To(Equal([]int64{2, 5, 1, 4, 3}))
		Expect(page.Pagination.TotalItems()).To(Equal(5))
		Expect(page.Pagination.TotalPages()).To(Equal(1))
	})

	It("should return the requested page", func() {
		plan, err := componentOrder.Plan(componentOrder.Defaults())
		Expect(err).ToNot(HaveOccurred())

		page, err := paging.Paginate(ctx, fetcher, paging.PaginationOptions{Page: 2, ItemsPerPage: 2}, plan)
		Expect(err).ToNot(HaveOccurred())
		Expect(componentIDs(page.Nodes)).To(Equal([]int64{1, 4}))
		Expect(page.Pagination.Page()).To(Equal(2))
		Expect(page.Pagination.TotalPages()).To(Equal(3))
		Expect(page.Pagination.HasNextPage()).To(BeTrue())
		Expect(page.Metadata.ItemsExamined).To(Equal(2))
	})

	It("should clamp pages past the end", func() {
		plan, err := componentOrder.Plan(componentOrder.Defaults())
		Expect(err).ToNot(HaveOccurred())

		page, err := paging.Paginate(ctx, fetcher, paging.PaginationOptions{Page: 9, ItemsPerPage: 2}, plan)
		Expect(err).ToNot(HaveOccurred())
		Expect(componentIDs(page.Nodes)).To(Equal([]int64{3}))
		Expect(page.Pagination.Page()).To(Equal(3))
	})

	It("should put requested sorts first", func() {
		values, err := componentOrder.Sorted(paging.Sort{Field: "vendor_order", Desc: true})
		Expect(err).ToNot(HaveOccurred())
		plan, err := componentOrder.Plan(values)
		Expect(err).ToNot(HaveOccurred())

		page, err := paging.Paginate(ctx, fetcher, paging.PaginationOptions{}, plan)
		Expect(err).ToNot(HaveOccurred())
		Expect(componentIDs(page.Nodes)).To(Equal([]int64{1, 4, 3, 2, 5}))
	})

	It("should order by the base key alone without joins", func() {
		plan, err := componentOrder.Plan(map[string]paging.Priority{"id": -1})
		Expect(err).ToNot(HaveOccurred())
		Expect(plan.Joins).To(BeEmpty())

		page, err := paging.Paginate(ctx, fetcher, paging.PaginationOptions{}, plan)
		Expect(err).ToNot(HaveOccurred())
		Expect(componentIDs(page.Nodes)).To(Equal([]int64{5, 4, 3, 2, 1}))
	})

	It("should return an empty page when nothing matches", func() {
		empty := sqlquery.NewFetcher(db, dialect.SQLite{}, sqlquery.Query{
			Select: "`component`.`id`, `component`.`name`",
			From:   "component",
			Where:  "`component`.`name` = ?",
			Args:   []any{"missing"},
		}, scanComponent)

		page, err := paging.Paginate(ctx, empty, paging.PaginationOptions{Page: 3}, paging.Plan{})
		Expect(err).ToNot(HaveOccurred())
		Expect(page.Nodes).To(BeEmpty())
		Expect(page.Pagination.Page()).To(Equal(1))
		Expect(page.Pagination.TotalItems()).To(Equal(0))
	})
})
