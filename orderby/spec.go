package orderby

import (
	"math"

	"github.com/friendsofgo/errors"

	paging "github.com/nrfta/rdb-paging-go"
)

// Values maps field keys to priorities. Missing keys are not ordered on.
type Values map[string]paging.Priority

// Spec is a compiled schema. It is immutable and safe for concurrent use.
type Spec struct {
	rel    *paging.Relationship
	fields []Field
	index  map[string]int
}

// Base returns the base table.
func (s *Spec) Base() paging.Name {
	return s.rel.Base()
}

// Relationship returns a copy of the compiled relationship.
func (s *Spec) Relationship() *paging.Relationship {
	return s.rel.Clone()
}

// Fields returns the fields in declaration order.
func (s *Spec) Fields() []Field {
	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)
	return fields
}

// Field returns the field declared under key.
func (s *Spec) Field(key string) (Field, bool) {
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Defaults returns the default priority of every field.
func (s *Spec) Defaults() Values {
	values := make(Values, len(s.fields))
	for _, f := range s.fields {
		values[f.Key] = f.Default
	}
	return values
}

// Sorted returns values that order by the requested sorts first, in the given
// order, followed by the fields with a default priority in their default order.
//
// Example:
//
//	values, err := spec.Sorted(paging.Sort{Field: "vendor_order", Desc: true})
func (s *Spec) Sorted(sorts ...paging.Sort) (Values, error) {
	values := make(Values, len(s.fields))
	for i, sort := range sorts {
		if _, ok := s.index[sort.Field]; !ok {
			return nil, errors.Wrapf(ErrUnknownField, "%q", sort.Field)
		}
		if _, ok := values[sort.Field]; ok {
			return nil, errors.Wrapf(ErrFieldDuplicate, "sorting by %q", sort.Field)
		}

		p := paging.Priority(i + 1)
		if sort.Desc {
			p = -p
		}
		values[sort.Field] = p
	}

	for _, f := range s.fields {
		if _, ok := values[f.Key]; ok || !f.Default.Enabled() {
			continue
		}
		values[f.Key] = shifted(f.Default, len(sorts))
	}

	return values, nil
}

// shifted moves p n ranks further from zero, keeping its direction. Defaults
// already near the limit saturate at ±math.MaxInt16.
func shifted(p paging.Priority, n int) paging.Priority {
	v := int(p)
	if p.Direction() == paging.Desc {
		v -= n
	} else {
		v += n
	}
	return paging.Priority(max(-math.MaxInt16, min(math.MaxInt16, v)))
}

// Plan returns the joins and order terms for values.
func (s *Spec) Plan(values Values, opts ...paging.PlannerOption) (paging.Plan, error) {
	for key := range values {
		if _, ok := s.index[key]; !ok {
			return paging.Plan{}, errors.Wrapf(ErrUnknownField, "%q", key)
		}
	}

	p := paging.NewPlanner(s.rel, len(s.fields), opts...)
	for _, f := range s.fields {
		p.AddKey(f.Column, f.Unique, f.Nulls, values[f.Key])
	}

	joins, terms, err := p.Build()
	if err != nil {
		return paging.Plan{}, err
	}

	return paging.Plan{Joins: joins, OrderBy: terms}, nil
}

// PlanOptions plans the sorts of a pagination request on top of the defaults.
func (s *Spec) PlanOptions(opts paging.PaginationOptions, plannerOpts ...paging.PlannerOption) (paging.Plan, error) {
	values, err := s.Sorted(opts.SortBy...)
	if err != nil {
		return paging.Plan{}, err
	}
	return s.Plan(values, plannerOpts...)
}
