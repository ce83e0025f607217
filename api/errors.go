// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values for peuck.

package api

import "errors"

// Common errors used across the library. None of them escapes the
// affinity controller or the trace section; they surface from parsers,
// backends' logs and the CLI.
var (
	ErrNotSupported    = errors.New("operation not supported")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)
