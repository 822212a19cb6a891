package ocl

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Categories of errors reported by the package. Use errors.Is to check for them, e.g.:
//
//	if errors.Is(err, ocl.ErrCompilation) { ... }
//
// A cache miss is not an error: KernelPool.Lookup reports it with its boolean return.
var (
	// ErrCompilation is returned when a program unit fails to compile: missing source, build failure
	// reported by the toolchain or an invalid context.
	ErrCompilation = errors.New("kernel compilation failed")

	// ErrCacheConflict is returned when inserting a kernel into a KernelPool under a key already in use.
	ErrCacheConflict = errors.New("kernel already in pool")

	// ErrBinding is returned when binding an argument to a kernel parameter slot fails.
	ErrBinding = errors.New("kernel argument binding failed")

	// ErrGeometry is returned for an invalid launch geometry (NDRange).
	ErrGeometry = errors.New("invalid launch geometry")

	// ErrDispatch is returned when the toolchain rejects the submission of a kernel.
	ErrDispatch = errors.New("kernel dispatch failed")

	// ErrKernelNotFound is returned when no kernel with the requested name is available after compilation
	// of the program unit.
	ErrKernelNotFound = errors.New("no valid kernel to run")
)

// Error holds the details of a failure: its category (Kind), the operation that failed,
// the native status code and, for argument binding, the index of the failing argument.
//
// Error unwraps to its Kind, so errors.Is(err, ErrBinding) works on it.
type Error struct {
	Kind error
	Op   string
	Code Status

	// Index of the argument that failed to bind, or -1 if not applicable.
	Index int

	// Detail holds extra information, e.g. the build log of a failed compilation.
	Detail string
}

// Error implements error.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Op != "" {
		fmt.Fprintf(&sb, ": %s", e.Op)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&sb, " (argument index %d)", e.Index)
	}
	if e.Code != Success {
		fmt.Fprintf(&sb, " failed with code %s (%d)", e.Code, int32(e.Code))
	}
	if e.Detail != "" {
		fmt.Fprintf(&sb, ": %s", e.Detail)
	}
	return sb.String()
}

// Unwrap returns the category of the error.
func (e *Error) Unwrap() error {
	return e.Kind
}

// toError converts a native status to an error of the given category, with a stack trace (see github.com/pkg/errors).
// It returns nil if status is Success.
func toError(kind error, op string, status Status) error {
	if status == Success {
		return nil
	}
	return errors.WithStack(&Error{Kind: kind, Op: op, Code: status, Index: -1})
}

// newError creates an error of the given category without a native status code, with a stack trace.
func newError(kind error, format string, args ...any) error {
	return errors.WithStack(&Error{Kind: kind, Index: -1, Detail: fmt.Sprintf(format, args...)})
}

// StatusOf returns the native status code carried by err, or Success if err doesn't carry one.
func StatusOf(err error) Status {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Success
}

// ArgIndexOf returns the index of the argument that failed binding, or -1 if err is not a binding error.
func ArgIndexOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Index
	}
	return -1
}
