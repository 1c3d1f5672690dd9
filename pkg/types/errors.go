package types

import "errors"

// Schema errors.
var (
	ErrUnknownType      = errors.New("unknown entity type")
	ErrInvalidDataType  = errors.New("invalid data type")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrNotMultiValued   = errors.New("property is not multi-valued")
	ErrMandatoryMissing = errors.New("mandatory property not set")
	ErrDuplicateType    = errors.New("entity type declared twice")
	ErrUnknownSuperType = errors.New("unknown super type")
	ErrInheritanceCycle = errors.New("inheritance cycle")
	ErrUnknownProperty  = errors.New("unknown property")
)

// Store errors.
var (
	ErrCupboardDetached = errors.New("cupboard is detached")
	ErrAlreadyAttached  = errors.New("cupboard is already attached")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidID        = errors.New("invalid record ID")
	ErrInvalidData      = errors.New("invalid record data")
)
