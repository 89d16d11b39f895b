//go:build !linux && !solaris && !freebsd && !netbsd && !darwin

package extattr

import (
	"syscall"

	"github.com/extattr/extattr/internal/errors"
)

var errNoAttr error = syscall.ENOENT

var unsupportedErrnos []error

// native reports every operation as unsupported.
type native struct{}

func newNative(Config) native {
	return native{}
}

func (native) set(path, name string, _ []byte, _ Options) error {
	return wrapErr(opSet, path, name, errors.ErrUnsupported)
}

func (native) fset(fd int, name string, _ []byte, _ Options) error {
	return wrapErr(opSet, fdPath(fd), name, errors.ErrUnsupported)
}

func (native) get(path, name string, _ Buffer, _ Options) (int, error) {
	return 0, wrapErr(opGet, path, name, errors.ErrUnsupported)
}

func (native) fget(fd int, name string, _ Buffer, _ Options) (int, error) {
	return 0, wrapErr(opGet, fdPath(fd), name, errors.ErrUnsupported)
}

func (native) remove(path, name string, _ Options) error {
	return wrapErr(opRemove, path, name, errors.ErrUnsupported)
}

func (native) fremove(fd int, name string, _ Options) error {
	return wrapErr(opRemove, fdPath(fd), name, errors.ErrUnsupported)
}

func (native) list(path string, _ Buffer) (int, error) {
	return 0, wrapErr(opList, path, "", errors.ErrUnsupported)
}

func (native) flist(fd int, _ Buffer) (int, error) {
	return 0, wrapErr(opList, fdPath(fd), "", errors.ErrUnsupported)
}
