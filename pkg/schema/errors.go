package schema

import (
	"fmt"

	"github.com/mesh-intelligence/dirschema/pkg/types"
)

// TypeMismatchError reports a value whose runtime type does not match the
// data type of the property it was assigned to. It matches
// types.ErrTypeMismatch under errors.Is.
type TypeMismatchError struct {
	Property string // Property name.
	Got      string // Data type of the rejected value.
	Want     string // Data type of the property.
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property %q: %s is not of type %s", e.Property, e.Got, e.Want)
}

// Unwrap returns types.ErrTypeMismatch.
func (e *TypeMismatchError) Unwrap() error {
	return types.ErrTypeMismatch
}
