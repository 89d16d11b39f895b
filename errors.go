package extattr

import (
	"syscall"

	"github.com/extattr/extattr/internal/errors"
	"github.com/extattr/extattr/internal/namespace"
)

// ErrOutOfMemory is returned when the namespace-qualified name of an
// attribute can not be built. No system call is made in that case. It
// matches syscall.ENOMEM.
var ErrOutOfMemory = namespace.ErrQualify

// Errno returns the error number reported by the operating system, if err
// carries one.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	ok := errors.As(err, &errno)
	return errno, ok
}

// IsExist reports whether err says that the attribute already exists.
func IsExist(err error) bool {
	return errors.Is(err, syscall.EEXIST)
}

// IsNotExist reports whether err says that the attribute or the file does
// not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, errNoAttr) || errors.Is(err, syscall.ENOENT)
}

// IsRange reports whether err says that the destination buffer is too small.
func IsRange(err error) bool {
	return errors.Is(err, syscall.ERANGE)
}

// IsOutOfMemory reports whether err is ErrOutOfMemory.
func IsOutOfMemory(err error) bool {
	return errors.Is(err, ErrOutOfMemory)
}

// IsNotSupported reports whether extended attributes are unavailable for
// the file or on this system.
func IsNotSupported(err error) bool {
	if errors.Is(err, errors.ErrUnsupported) {
		return true
	}
	for _, e := range unsupportedErrnos {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
