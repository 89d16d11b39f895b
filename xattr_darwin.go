//go:build darwin

package extattr

import (
	"syscall"

	"github.com/extattr/extattr/internal/namespace"

	"github.com/pkg/xattr"
	"golang.org/x/sys/unix"
)

var errNoAttr error = xattr.ENOATTR

var unsupportedErrnos = []error{syscall.ENOTSUP, syscall.EOPNOTSUPP}

// native calls the xattr family with position and options left at zero.
// macOS has no attribute namespaces, names are used as given.
type native struct {
	res namespace.Resolver
}

func newNative(cfg Config) native {
	return native{res: namespace.Resolver{
		DefaultNamespace: cfg.DefaultNamespace,
		CreateFlag:       xattr.XATTR_CREATE,
		ReplaceFlag:      xattr.XATTR_REPLACE,
	}}
}

func (n native) set(path, name string, value []byte, opts Options) error {
	flags, err := n.res.Flags(opts.Create)
	if err == nil {
		err = unix.Setxattr(path, name, value, flags)
	}
	return wrapErr(opSet, path, name, err)
}

func (n native) fset(fd int, name string, value []byte, opts Options) error {
	flags, err := n.res.Flags(opts.Create)
	if err == nil {
		err = unix.Fsetxattr(fd, name, value, flags)
	}
	return wrapErr(opSet, fdPath(fd), name, err)
}

func (n native) get(path, name string, dst Buffer, _ Options) (int, error) {
	sz, err := unix.Getxattr(path, name, dst.b)
	if err != nil {
		return 0, wrapErr(opGet, path, name, err)
	}
	return sz, nil
}

func (n native) fget(fd int, name string, dst Buffer, _ Options) (int, error) {
	sz, err := unix.Fgetxattr(fd, name, dst.b)
	if err != nil {
		return 0, wrapErr(opGet, fdPath(fd), name, err)
	}
	return sz, nil
}

func (n native) remove(path, name string, _ Options) error {
	return wrapErr(opRemove, path, name, unix.Removexattr(path, name))
}

func (n native) fremove(fd int, name string, _ Options) error {
	return wrapErr(opRemove, fdPath(fd), name, unix.Fremovexattr(fd, name))
}

func (n native) list(path string, dst Buffer) (int, error) {
	sz, err := unix.Listxattr(path, dst.b)
	if err != nil {
		return 0, wrapErr(opList, path, "", err)
	}
	return sz, nil
}

func (n native) flist(fd int, dst Buffer) (int, error) {
	sz, err := unix.Flistxattr(fd, dst.b)
	if err != nil {
		return 0, wrapErr(opList, fdPath(fd), "", err)
	}
	return sz, nil
}
