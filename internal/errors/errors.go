// Package errors re-exports github.com/pkg/errors so that errors carry a
// stack trace, plus the standard library helpers for inspecting them.
package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Constructors and wrappers record the stack at the call site. They are
// variables so that this package does not show up in the trace.
var (
	New       = errors.New
	Errorf    = errors.Errorf
	Wrap      = errors.Wrap
	Wrapf     = errors.Wrapf
	WithStack = errors.WithStack
)

// ErrUnsupported is returned on systems without extended attributes.
var ErrUnsupported = stderrors.ErrUnsupported

// Is reports whether any error in err's tree matches target, for example a
// syscall.Errno inside an *xattr.Error.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Join returns an error that wraps all non-nil errs.
func Join(errs ...error) error { return stderrors.Join(errs...) }

// Unwrap returns the error wrapped by err, or nil.
func Unwrap(err error) error { return stderrors.Unwrap(err) }
