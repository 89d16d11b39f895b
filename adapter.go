package extattr

import (
	"strconv"
	"syscall"

	"github.com/extattr/extattr/internal/errors"

	"github.com/pkg/xattr"
)

// adapter is implemented once per operating system by the type native. Only
// the implementation for the target system is compiled in.
//
// Buffers passed to get and list are either probes or have room for at
// least one byte.
type adapter interface {
	set(path, name string, value []byte, opts Options) error
	fset(fd int, name string, value []byte, opts Options) error
	get(path, name string, dst Buffer, opts Options) (int, error)
	fget(fd int, name string, dst Buffer, opts Options) (int, error)
	remove(path, name string, opts Options) error
	fremove(fd int, name string, opts Options) error
	list(path string, dst Buffer) (int, error)
	flist(fd int, dst Buffer) (int, error)
}

var _ adapter = native{}

const (
	opGet    = "xattr.get"
	opSet    = "xattr.set"
	opRemove = "xattr.remove"
	opList   = "xattr.list"
)

// fdPath names a descriptor in error messages.
func fdPath(fd int) string {
	return "fd " + strconv.Itoa(fd)
}

// wrapErr annotates err with the operation and its arguments. Errors of
// system calls are kept as the bare syscall.Errno inside the *xattr.Error.
func wrapErr(op, path, name string, err error) error {
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		err = errno
	}
	return errors.WithStack(&xattr.Error{Op: op, Path: path, Name: name, Err: err})
}

// emptyFill finishes a fill request without room for data, which was sent to
// the system as a probe returning size.
func emptyFill(op, path, name string, size int, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if size > 0 {
		return 0, wrapErr(op, path, name, syscall.ERANGE)
	}
	return 0, nil
}
