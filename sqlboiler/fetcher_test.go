package sqlboiler_test

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/dialect"
	"github.com/nrfta/rdb-paging-go/sqlboiler"
)

type component struct {
	ID   int
	Name string
}

var _ = Describe("Fetcher", func() {
	var (
		ctx       context.Context
		gotQuery  []qm.QueryMod
		gotCount  []qm.QueryMod
		fetcher   *sqlboiler.Fetcher[*component]
		whereMod  qm.QueryMod
		allModels []*component
	)

	BeforeEach(func() {
		ctx = context.Background()
		gotQuery, gotCount = nil, nil
		whereMod = qm.Where("component.retired = ?", false)
		allModels = []*component{{ID: 1, Name: "bolt"}, {ID: 2, Name: "nut"}, {ID: 3, Name: "washer"}}

		fetcher = sqlboiler.NewFetcher(
			func(_ context.Context, mods ...qm.QueryMod) ([]*component, error) {
				gotQuery = mods
				return allModels[:2], nil
			},
			func(_ context.Context, mods ...qm.QueryMod) (int64, error) {
				gotCount = mods
				return int64(len(allModels)), nil
			},
			sqlboiler.ToQueryMods(dialect.MySQL{}),
			whereMod,
		)
	})

	It("should prepend base mods to the page mods", func() {
		items, err := fetcher.Fetch(ctx, paging.FetchParams{
			Limit:   2,
			Joins:   []paging.Join{typeJoin},
			OrderBy: []paging.OrderTerm{typeOrder},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(items).To(HaveLen(2))

		Expect(gotQuery).To(HaveLen(4))
		Expect(gotQuery[0]).To(Equal(whereMod))
		Expect(modTypeName(gotQuery[1])).To(Equal("qm.leftOuterJoinQueryMod"))
		Expect(modTypeName(gotQuery[2])).To(Equal("qm.limitQueryMod"))
		Expect(modTypeName(gotQuery[3])).To(Equal("qm.orderByQueryMod"))
	})

	It("should count with base mods only", func() {
		total, err := fetcher.Count(ctx, paging.FetchParams{Limit: 2, Joins: []paging.Join{typeJoin}})
		Expect(err).ToNot(HaveOccurred())
		Expect(total).To(Equal(int64(3)))
		Expect(gotCount).To(Equal([]qm.QueryMod{whereMod}))
	})

	It("should page through Paginate", func() {
		plan := paging.Plan{Joins: []paging.Join{typeJoin}, OrderBy: []paging.OrderTerm{typeOrder, idDesc}}

		page, err := paging.Paginate[*component](ctx, fetcher, paging.PaginationOptions{Page: 1, ItemsPerPage: 2}, plan)
		Expect(err).ToNot(HaveOccurred())
		Expect(page.Nodes).To(HaveLen(2))
		Expect(page.Pagination.TotalPages()).To(Equal(2))
		Expect(page.Pagination.HasNextPage()).To(BeTrue())

		sql := buildMySQL("component", gotQuery...)
		Expect(sql).To(ContainSubstring("component.retired = ?"))
		Expect(sql).To(ContainSubstring("LIMIT 2"))
		Expect(sql).ToNot(ContainSubstring("OFFSET"))
	})
})
