package sqlboiler_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/dialect"
	"github.com/nrfta/rdb-paging-go/sqlboiler"
)

var (
	typeJoin = paging.Join{
		OtherTable:  "component_type",
		OtherColumn: "id",
		UsingTable:  "component",
		UsingColumn: "component_type_id",
	}
	vendorJoin = paging.Join{
		OtherTable:  "component_vendor",
		OtherColumn: "id",
		UsingTable:  "component_type",
		UsingColumn: "component_vendor_id",
	}
	typeOrder = paging.OrderTerm{Table: "component_type", Column: "order"}
	idDesc    = paging.OrderTerm{Table: "component", Column: "id", Direction: paging.Desc}
)

var _ = Describe("ToQueryMods", func() {
	toMods := sqlboiler.ToQueryMods(dialect.MySQL{})

	Describe("Basic Functionality", func() {
		It("should return empty mods for empty params", func() {
			Expect(toMods(paging.FetchParams{})).To(HaveLen(0))
		})

		It("should add OFFSET mod", func() {
			mods := toMods(paging.FetchParams{Offset: 20})

			Expect(mods).To(HaveLen(1))
			Expect(modTypeName(mods[0])).To(Equal("qm.offsetQueryMod"))
		})

		It("should add LIMIT mod", func() {
			mods := toMods(paging.FetchParams{Limit: 10})

			Expect(mods).To(HaveLen(1))
			Expect(modTypeName(mods[0])).To(Equal("qm.limitQueryMod"))
		})

		It("should add a single ORDER BY mod for all terms", func() {
			mods := toMods(paging.FetchParams{OrderBy: []paging.OrderTerm{typeOrder, idDesc}})

			Expect(mods).To(HaveLen(1))
			Expect(modTypeName(mods[0])).To(Equal("qm.orderByQueryMod"))
		})

		It("should add one LEFT JOIN mod per join before the others", func() {
			mods := toMods(paging.FetchParams{
				Offset:  20,
				Limit:   10,
				Joins:   []paging.Join{typeJoin, vendorJoin},
				OrderBy: []paging.OrderTerm{typeOrder},
			})

			Expect(mods).To(HaveLen(5))
			Expect(modTypeName(mods[0])).To(Equal("qm.leftOuterJoinQueryMod"))
			Expect(modTypeName(mods[1])).To(Equal("qm.leftOuterJoinQueryMod"))
			Expect(modTypeName(mods[2])).To(Equal("qm.offsetQueryMod"))
			Expect(modTypeName(mods[3])).To(Equal("qm.limitQueryMod"))
			Expect(modTypeName(mods[4])).To(Equal("qm.orderByQueryMod"))
		})
	})

	Describe("Rendered SQL", func() {
		It("should render the planned query", func() {
			sql := buildMySQL("component", toMods(paging.FetchParams{
				Offset:  40,
				Limit:   20,
				Joins:   []paging.Join{typeJoin},
				OrderBy: []paging.OrderTerm{typeOrder, idDesc},
			})...)

			Expect(sql).To(ContainSubstring(
				"LEFT JOIN `component_type` ON `component_type`.`id` = `component`.`component_type_id`"))
			Expect(sql).To(ContainSubstring("ORDER BY `component_type`.`order` ASC, `component`.`id` DESC"))
			Expect(sql).To(ContainSubstring("LIMIT 20"))
			Expect(sql).To(ContainSubstring("OFFSET 40"))
		})

		It("should keep the null placement terms", func() {
			nullsFirst := paging.OrderTerm{Table: "component_type", Column: "component_vendor_id", Nulls: paging.NullsFirst}
			sql := buildMySQL("component", toMods(paging.FetchParams{OrderBy: []paging.OrderTerm{nullsFirst}})...)

			Expect(sql).To(ContainSubstring(
				"ORDER BY `component_type`.`component_vendor_id` IS NOT NULL, `component_type`.`component_vendor_id` ASC"))
		})

		It("should quote for the given dialect", func() {
			mods := sqlboiler.ToQueryMods(dialect.Postgres{})(paging.FetchParams{
				Joins:   []paging.Join{typeJoin},
				OrderBy: []paging.OrderTerm{typeOrder},
			})
			sql := buildMySQL("component", mods...)

			Expect(sql).To(ContainSubstring(`LEFT JOIN "component_type" ON "component_type"."id" = "component"."component_type_id"`))
			Expect(sql).To(ContainSubstring(`ORDER BY "component_type"."order" ASC`))
		})
	})

	Describe("Edge Cases", func() {
		It("should skip OFFSET on the first page", func() {
			mods := toMods(paging.FetchParams{Offset: 0, Limit: 10})

			Expect(mods).To(HaveLen(1))
			Expect(modTypeName(mods[0])).To(Equal("qm.limitQueryMod"))
		})

		It("should skip LIMIT when unlimited", func() {
			mods := toMods(paging.FetchParams{Offset: 20, Limit: 0})

			Expect(mods).To(HaveLen(1))
			Expect(modTypeName(mods[0])).To(Equal("qm.offsetQueryMod"))
		})

		It("should handle an empty OrderBy slice", func() {
			mods := toMods(paging.FetchParams{Offset: 20, Limit: 10, OrderBy: []paging.OrderTerm{}})
			Expect(mods).To(HaveLen(2))
		})
	})
})
