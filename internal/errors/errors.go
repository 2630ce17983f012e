// Package errors provides error handling for commviz.
//
// This package re-exports github.com/cockroachdb/errors and declares the
// error taxonomy shared by every computation package. Sentinels are wrapped
// with context at the call site and matched with Is:
//
//	if errors.Is(err, errors.ErrInvalidRange) {
//	    // show a message and skip rendering
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	IsAny        = crdb.IsAny
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error taxonomy. Every request either produces a full result or fails with
// one of these (wrapped with context).
var (
	// ErrInvalidRange is returned when t_min >= t_max, or when a sample count
	// or spacing is not positive. Nothing is sampled.
	ErrInvalidRange = crdb.New("commviz: invalid time range")

	// ErrDivisionByZero is returned when a constructor would divide by a zero
	// width, e.g. a triangular wave with end == start.
	ErrDivisionByZero = crdb.New("commviz: division by zero")

	// ErrInvalidParameter is returned for a kernel length <= 0 or a system
	// parameter outside its declared domain.
	ErrInvalidParameter = crdb.New("commviz: invalid parameter")

	// ErrUnknownKey is returned when a registry lookup misses.
	ErrUnknownKey = crdb.New("commviz: unknown key")

	// ErrShapeMismatch is returned when operands that must have equal length
	// don't, or when an input vector is empty.
	ErrShapeMismatch = crdb.New("commviz: shape mismatch")
)
