package orderby

import (
	"reflect"

	"github.com/ettle/strcase"
	"github.com/friendsofgo/errors"

	paging "github.com/nrfta/rdb-paging-go"
)

var priorityType = reflect.TypeOf(paging.Priority(0))

// Bind reads the paging.Priority fields of a struct into Values.
//
// The key of a field is its `orderby` tag, or its name in snake case. A tag of
// "-" skips the field. Fields of other types are ignored.
//
// Example:
//
//	type ComponentOrder struct {
//	    TypeOrder paging.Priority                  // "type_order"
//	    VendorID  paging.Priority `orderby:"vendor"` // "vendor"
//	}
//	values, err := orderby.Bind(ComponentOrder{TypeOrder: 1, VendorID: -2})
func Bind(v any) (Values, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.Wrap(ErrInvalidBinding, "nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrInvalidBinding, "got %T", v)
	}

	rt := rv.Type()
	values := make(Values, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() || sf.Type != priorityType {
			continue
		}

		key := sf.Tag.Get("orderby")
		if key == "-" {
			continue
		}
		if key == "" {
			key = strcase.ToSnake(sf.Name)
		}

		if _, ok := values[key]; ok {
			return nil, errors.Wrapf(ErrFieldDuplicate, "%q bound by %s", key, sf.Name)
		}
		values[key] = paging.Priority(rv.Field(i).Int())
	}

	return values, nil
}

// PlanStruct binds v and plans it.
func (s *Spec) PlanStruct(v any, opts ...paging.PlannerOption) (paging.Plan, error) {
	values, err := Bind(v)
	if err != nil {
		return paging.Plan{}, err
	}
	return s.Plan(values, opts...)
}
