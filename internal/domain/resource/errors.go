package resource

import (
	"errors"
)

// Sentinel kinds for validation errors. Callers use errors.Is to decide
// the wire message.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrMissingField = errors.New("missing field")
	ErrBadValue     = errors.New("bad value")
)
