package orderby

import (
	"github.com/friendsofgo/errors"
)

var (
	// ErrUnknownField is returned when values or sorts name a field the schema does not declare.
	ErrUnknownField = errors.New("unknown order by field")

	// ErrFieldDuplicate is returned when a field key is declared or requested twice.
	ErrFieldDuplicate = errors.New("order by field declared twice")

	// ErrInvalidBinding is returned by Bind for values that are not structs.
	ErrInvalidBinding = errors.New("order by values must be a struct or a pointer to a struct")
)
