package oasgen

import "errors"

// ErrEmptyRequestShape is returned when a request shape has no publicly
// settable fields. It aborts the whole document build unless the shape is the
// EmptyRequest marker or DocumentOptions.AllowEmptyRequest is set.
var ErrEmptyRequestShape = errors.New("request shape has no publicly settable fields")
