package paging

import (
	"log/slog"
	"sort"

	"github.com/friendsofgo/errors"
)

// orderKey is a single ordering request held by the planner.
type orderKey struct {
	tc       TableColumn
	unique   bool
	nulls    NullStrategy
	priority Priority
}

// Planner turns order-key requests into the joins and order terms of a query.
//
// A planner reads its Relationship but never modifies it, so one relationship may
// back many planners. A planner itself is not safe for concurrent use.
//
// Example:
//
//	p := paging.NewPlanner(rel, 4)
//	p.AddKey(paging.TC("component_type", "order"), false, paging.NullsDefault, 1)
//	p.AddKey(paging.TC("component", "id"), true, paging.NullsDefault, 2)
//	joins, terms, err := p.Build()
type Planner struct {
	rel    *Relationship
	keys   []orderKey
	seen   map[TableColumn]struct{}
	logger *slog.Logger
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithLogger sets the logger used to report keys dropped while planning.
// Messages are emitted at debug level.
func WithLogger(logger *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlanner returns a planner over rel with room for capacity keys.
func NewPlanner(rel *Relationship, capacity int, opts ...PlannerOption) *Planner {
	if capacity < 0 {
		capacity = 0
	}

	p := &Planner{
		rel:    rel,
		keys:   make([]orderKey, 0, capacity),
		seen:   make(map[TableColumn]struct{}, capacity),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// AddKeyChecked validates an order key and records it with priority 1.
//
// A reference to the primary side of an edge is checked as the foreign column it
// equals, so component_type.id and component.component_type_id count as the
// same key. It returns ErrTableNotRecognized when the table is neither the base
// table nor joined, and ErrTableColumnDuplicate when the resolved reference was
// already added.
func (p *Planner) AddKeyChecked(tc TableColumn, unique bool) error {
	resolved := tc
	if e, ok := p.rel.Edge(tc.Table); ok {
		if e.Column == tc.Column {
			resolved = e.Foreign()
		}
	} else if tc.Table != p.rel.Base() {
		return errors.Wrapf(ErrTableNotRecognized, "table %s", tc.Table)
	}

	if _, ok := p.seen[resolved]; ok {
		return errors.Wrapf(ErrTableColumnDuplicate, "%s", resolved)
	}
	p.seen[resolved] = struct{}{}

	p.keys = append(p.keys, orderKey{
		tc:       resolved,
		unique:   unique,
		nulls:    NullsDefault,
		priority: 1,
	})

	return nil
}

// AddKey records an order key without validation.
//
// A zero priority means the key was not requested and it is dropped. The
// primary side of an edge is always treated as unique.
func (p *Planner) AddKey(tc TableColumn, unique bool, nulls NullStrategy, priority Priority) {
	if !priority.Enabled() {
		p.logger.Debug("order key skipped", slog.String("key", tc.String()), slog.String("reason", "zero priority"))
		return
	}

	p.keys = append(p.keys, orderKey{
		tc:       tc,
		unique:   unique || p.rel.IsPrimaryKey(tc),
		nulls:    nulls,
		priority: priority,
	})
}

// Len returns the number of recorded keys.
func (p *Planner) Len() int {
	return len(p.keys)
}

// Build returns the joins and order terms for the recorded keys.
//
// Keys are ordered by the absolute value of their priority, keeping insertion
// order for equal ranks. Once a unique key of a table is ordered on, later keys
// of that table or of any table reached through it cannot change the result
// and are dropped. Each join appears once, before the first term that needs it.
//
// Build does not change the recorded keys and may be called more than once. It
// fails only when a key refers to a table that does not reach the base table.
func (p *Planner) Build() ([]Join, []OrderTerm, error) {
	keys := make([]orderKey, len(p.keys))
	copy(keys, p.keys)
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].priority.Abs() < keys[j].priority.Abs()
	})

	pinned := make(map[Name]struct{})
	kept := keys[:0]
	for _, k := range keys {
		chain, err := p.rel.RelatedChain(k.tc.Table)
		if err != nil {
			return nil, nil, err
		}

		if blocker, ok := firstPinned(pinned, k.tc.Table, chain); ok {
			p.logger.Debug("order key pruned",
				slog.String("key", k.tc.String()),
				slog.String("unique_table", blocker.String()))
			continue
		}

		kept = append(kept, k)
		if k.unique {
			pinned[k.tc.Table] = struct{}{}
		}
	}

	joined := make(map[Name]struct{})
	joins := make([]Join, 0, p.rel.Len())
	terms := make([]OrderTerm, 0, len(kept))
	for _, k := range kept {
		tc := p.rel.Resolve(k.tc)

		chain, err := p.rel.RelatedChain(tc.Table)
		if err != nil {
			return nil, nil, err
		}

		for i := len(chain) - 1; i >= -1; i-- {
			table := tc.Table
			if i >= 0 {
				table = chain[i]
			}

			if _, ok := joined[table]; ok {
				continue
			}
			joined[table] = struct{}{}

			if e, ok := p.rel.Edge(table); ok {
				joins = append(joins, JoinFromEdge(e))
			}
		}

		terms = append(terms, OrderTerm{
			Table:     tc.Table,
			Column:    tc.Column,
			Direction: k.priority.Direction(),
			Nulls:     k.nulls,
		})
	}

	return joins, terms, nil
}

func firstPinned(pinned map[Name]struct{}, table Name, chain []Name) (Name, bool) {
	if _, ok := pinned[table]; ok {
		return table, true
	}
	for _, t := range chain {
		if _, ok := pinned[t]; ok {
			return t, true
		}
	}
	return "", false
}
