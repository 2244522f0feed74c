package domain

import (
	"errors"
	"fmt"
)

// ErrIdentityBound is returned when rebinding a bound domain to another name.
var ErrIdentityBound = errors.New("domain identity already bound")

// ErrInvalidIdentity is returned when binding an empty or sentinel name.
var ErrInvalidIdentity = errors.New("invalid domain identity")

// UnmappedTypeError is returned when a descriptor cannot be mapped to a SQL type.
type UnmappedTypeError struct {
	TypeName string
	Identity string
}

func (e *UnmappedTypeError) Error() string {
	return fmt.Sprintf("unable to map %s type %s to SQL domain", e.Identity, e.TypeName)
}
