//go:build solaris

package extattr

import (
	"os"
	"syscall"

	"github.com/extattr/extattr/internal/attrdir"

	"github.com/pkg/xattr"
	"golang.org/x/sys/unix"
)

var errNoAttr error = xattr.ENOATTR

var unsupportedErrnos = []error{syscall.ENOTSUP, syscall.EOPNOTSUPP}

// native stores every attribute as a file in the attribute directory of the
// target, reached with openat(2) and O_XATTR. Names are directory entries
// and namespaces do not exist.
type native struct{}

func newNative(Config) native {
	return native{}
}

// openXattr opens name relative to the attribute directory of dirfd.
func openXattr(dirfd int, name string, flag int, perm uint32) (*os.File, error) {
	fd, err := unix.Openat(dirfd, name, flag|unix.O_XATTR|unix.O_CLOEXEC, perm)
	if err != nil {
		return nil, &os.PathError{Op: "openat", Path: name, Err: err}
	}
	return os.NewFile(uintptr(fd), name), nil
}

// pathOpener opens attributes of the file at a path, like attropen(3C):
// the file itself is only held open until the attribute is opened.
type pathOpener string

func (p pathOpener) open(name string, flag int, perm uint32) (*os.File, error) {
	base, err := attrdir.OpenTarget(string(p))
	if err != nil {
		return nil, err
	}
	defer func() { _ = unix.Close(base) }()

	return openXattr(base, name, flag, perm)
}

func (p pathOpener) OpenAttr(name string, flag int, perm uint32) (*os.File, error) {
	return p.open(name, flag, perm)
}

func (p pathOpener) OpenDir() (*os.File, error) {
	return p.open(".", unix.O_RDONLY, 0)
}

// fdOpener opens attributes of an open file. The descriptor stays owned by
// the caller.
type fdOpener int

func (fd fdOpener) OpenAttr(name string, flag int, perm uint32) (*os.File, error) {
	return openXattr(int(fd), name, flag, perm)
}

func (fd fdOpener) OpenDir() (*os.File, error) {
	return openXattr(int(fd), ".", unix.O_RDONLY, 0)
}

func (native) set(path, name string, value []byte, opts Options) error {
	return wrapErr(opSet, path, name, attrdir.Set(pathOpener(path), name, value, opts.Create))
}

func (native) fset(fd int, name string, value []byte, opts Options) error {
	return wrapErr(opSet, fdPath(fd), name, attrdir.Set(fdOpener(fd), name, value, opts.Create))
}

func (native) get(path, name string, dst Buffer, _ Options) (int, error) {
	n, err := attrdir.Get(pathOpener(path), name, dst.b, dst.probe)
	return n, wrapErr(opGet, path, name, err)
}

func (native) fget(fd int, name string, dst Buffer, _ Options) (int, error) {
	n, err := attrdir.Get(fdOpener(fd), name, dst.b, dst.probe)
	return n, wrapErr(opGet, fdPath(fd), name, err)
}

func (native) remove(path, name string, _ Options) error {
	return wrapErr(opRemove, path, name, attrdir.Remove(pathOpener(path), name))
}

func (native) fremove(fd int, name string, _ Options) error {
	return wrapErr(opRemove, fdPath(fd), name, attrdir.Remove(fdOpener(fd), name))
}

func (native) list(path string, dst Buffer) (int, error) {
	n, err := attrdir.Names(pathOpener(path), dst.b, dst.probe)
	return n, wrapErr(opList, path, "", err)
}

func (native) flist(fd int, dst Buffer) (int, error) {
	n, err := attrdir.Names(fdOpener(fd), dst.b, dst.probe)
	return n, wrapErr(opList, fdPath(fd), "", err)
}
