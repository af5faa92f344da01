package sqlboiler

import (
	"github.com/aarondl/sqlboiler/v4/queries/qm"

	paging "github.com/nrfta/rdb-paging-go"
	"github.com/nrfta/rdb-paging-go/dialect"
)

// ToQueryMods returns a function converting FetchParams into SQLBoiler query
// mods, quoting and ordering the way d does.
//
// The conversion follows these rules:
//   - each Join → qm.LeftOuterJoin("`t` ON `t`.`id` = `b`.`t_id`")
//   - Offset → qm.Offset(n), skipped when 0
//   - Limit → qm.Limit(n), skipped when 0
//   - OrderBy → a single qm.OrderBy with every rendered term
//
// LIMIT and OFFSET themselves are written by SQLBoiler for its own driver, so
// d only affects quoting and NULL placement.
func ToQueryMods(d dialect.Dialect) func(paging.FetchParams) []qm.QueryMod {
	return func(params paging.FetchParams) []qm.QueryMod {
		mods := make([]qm.QueryMod, 0, len(params.Joins)+3)

		for _, j := range params.Joins {
			mods = append(mods, qm.LeftOuterJoin(dialect.JoinTarget(d, j)))
		}

		if params.Offset > 0 {
			mods = append(mods, qm.Offset(int(params.Offset)))
		}

		if params.Limit > 0 {
			mods = append(mods, qm.Limit(params.Limit))
		}

		if len(params.OrderBy) > 0 {
			mods = append(mods, qm.OrderBy(dialect.OrderByComponents(d, params.OrderBy)))
		}

		return mods
	}
}
