//go:build freebsd || netbsd

package extattr

import (
	"runtime"
	"syscall"
	"unsafe"

	"github.com/extattr/extattr/internal/namespace"

	"github.com/pkg/xattr"
	"golang.org/x/sys/unix"
)

var errNoAttr error = xattr.ENOATTR

var unsupportedErrnos = []error{syscall.EOPNOTSUPP}

// native calls the extattr_* family. The namespace is passed as a number
// next to the bare name, so only "user" and "system" can be used. The
// system calls have no creation flags; Set always creates or replaces.
type native struct {
	res namespace.Resolver
}

func newNative(cfg Config) native {
	return native{res: namespace.Resolver{DefaultNamespace: cfg.DefaultNamespace}}
}

func (n native) namespaceID(ns string) (int, error) {
	switch n.res.Namespace(ns) {
	case "user":
		return unix.EXTATTR_NAMESPACE_USER, nil
	case "system":
		return unix.EXTATTR_NAMESPACE_SYSTEM, nil
	default:
		return 0, syscall.EINVAL
	}
}

// prepareSet validates the creation mode and resolves the namespace.
func (n native) prepareSet(opts Options) (int, error) {
	if _, err := n.res.Flags(opts.Create); err != nil {
		return 0, err
	}
	return n.namespaceID(opts.Namespace)
}

// bufPtr returns the address of b, 0 for an empty b.
func bufPtr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

func (n native) set(path, name string, value []byte, opts Options) error {
	ns, err := n.prepareSet(opts)
	if err == nil {
		_, err = unix.ExtattrSetFile(path, ns, name, bufPtr(value), len(value))
		runtime.KeepAlive(value)
	}
	return wrapErr(opSet, path, name, err)
}

func (n native) fset(fd int, name string, value []byte, opts Options) error {
	ns, err := n.prepareSet(opts)
	if err == nil {
		_, err = unix.ExtattrSetFd(fd, ns, name, bufPtr(value), len(value))
		runtime.KeepAlive(value)
	}
	return wrapErr(opSet, fdPath(fd), name, err)
}

func (n native) get(path, name string, dst Buffer, opts Options) (int, error) {
	ns, err := n.namespaceID(opts.Namespace)
	if err != nil {
		return 0, wrapErr(opGet, path, name, err)
	}

	sz, err := unix.ExtattrGetFile(path, ns, name, bufPtr(dst.b), len(dst.b))
	runtime.KeepAlive(dst.b)
	if err != nil {
		return 0, wrapErr(opGet, path, name, err)
	}
	return sz, nil
}

func (n native) fget(fd int, name string, dst Buffer, opts Options) (int, error) {
	ns, err := n.namespaceID(opts.Namespace)
	if err != nil {
		return 0, wrapErr(opGet, fdPath(fd), name, err)
	}

	sz, err := unix.ExtattrGetFd(fd, ns, name, bufPtr(dst.b), len(dst.b))
	runtime.KeepAlive(dst.b)
	if err != nil {
		return 0, wrapErr(opGet, fdPath(fd), name, err)
	}
	return sz, nil
}

func (n native) remove(path, name string, opts Options) error {
	ns, err := n.namespaceID(opts.Namespace)
	if err == nil {
		err = unix.ExtattrDeleteFile(path, ns, name)
	}
	return wrapErr(opRemove, path, name, err)
}

func (n native) fremove(fd int, name string, opts Options) error {
	ns, err := n.namespaceID(opts.Namespace)
	if err == nil {
		err = unix.ExtattrDeleteFd(fd, ns, name)
	}
	return wrapErr(opRemove, fdPath(fd), name, err)
}

// The list calls use the default namespace. Their length-prefixed records
// are converted to nul-terminated names, which take the same space.

func (n native) list(path string, dst Buffer) (int, error) {
	ns, err := n.namespaceID("")
	if err != nil {
		return 0, wrapErr(opList, path, "", err)
	}

	sz, err := unix.ExtattrListFile(path, ns, bufPtr(dst.b), len(dst.b))
	runtime.KeepAlive(dst.b)
	if err != nil {
		return 0, wrapErr(opList, path, "", err)
	}
	if dst.probe {
		return sz, nil
	}
	return len(recordsToList(dst.b[:sz])), nil
}

func (n native) flist(fd int, dst Buffer) (int, error) {
	ns, err := n.namespaceID("")
	if err != nil {
		return 0, wrapErr(opList, fdPath(fd), "", err)
	}

	sz, err := unix.ExtattrListFd(fd, ns, bufPtr(dst.b), len(dst.b))
	runtime.KeepAlive(dst.b)
	if err != nil {
		return 0, wrapErr(opList, fdPath(fd), "", err)
	}
	if dst.probe {
		return sz, nil
	}
	return len(recordsToList(dst.b[:sz])), nil
}
