//go:build linux

package extattr

import (
	"syscall"

	"github.com/extattr/extattr/internal/namespace"

	"github.com/pkg/xattr"
	"golang.org/x/sys/unix"
)

var errNoAttr error = xattr.ENOATTR

var unsupportedErrnos = []error{syscall.ENOTSUP, syscall.EOPNOTSUPP}

// native qualifies every name with a namespace and calls the xattr family of
// system calls. Listing is not qualified: the kernel returns the names of
// all namespaces the caller may see, with their prefix.
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

// prepare resolves the creation flags and the qualified name.
func (n native) prepare(name string, opts Options) (flags int, qualified string, err error) {
	flags, err = n.res.Flags(opts.Create)
	if err != nil {
		return 0, "", err
	}
	qualified, err = n.res.Qualify(name, opts.Namespace)
	return flags, qualified, err
}

func (n native) set(path, name string, value []byte, opts Options) error {
	flags, q, err := n.prepare(name, opts)
	if err != nil {
		return wrapErr(opSet, path, name, err)
	}
	return wrapErr(opSet, path, q, unix.Setxattr(path, q, value, flags))
}

func (n native) fset(fd int, name string, value []byte, opts Options) error {
	flags, q, err := n.prepare(name, opts)
	if err != nil {
		return wrapErr(opSet, fdPath(fd), name, err)
	}
	return wrapErr(opSet, fdPath(fd), q, unix.Fsetxattr(fd, q, value, flags))
}

func (n native) get(path, name string, dst Buffer, opts Options) (int, error) {
	q, err := n.res.Qualify(name, opts.Namespace)
	if err != nil {
		return 0, wrapErr(opGet, path, name, err)
	}

	sz, err := unix.Getxattr(path, q, dst.b)
	if err != nil {
		return 0, wrapErr(opGet, path, q, err)
	}
	return sz, nil
}

func (n native) fget(fd int, name string, dst Buffer, opts Options) (int, error) {
	q, err := n.res.Qualify(name, opts.Namespace)
	if err != nil {
		return 0, wrapErr(opGet, fdPath(fd), name, err)
	}

	sz, err := unix.Fgetxattr(fd, q, dst.b)
	if err != nil {
		return 0, wrapErr(opGet, fdPath(fd), q, err)
	}
	return sz, nil
}

func (n native) remove(path, name string, opts Options) error {
	q, err := n.res.Qualify(name, opts.Namespace)
	if err != nil {
		return wrapErr(opRemove, path, name, err)
	}
	return wrapErr(opRemove, path, q, unix.Removexattr(path, q))
}

func (n native) fremove(fd int, name string, opts Options) error {
	q, err := n.res.Qualify(name, opts.Namespace)
	if err != nil {
		return wrapErr(opRemove, fdPath(fd), name, err)
	}
	return wrapErr(opRemove, fdPath(fd), q, unix.Fremovexattr(fd, q))
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
