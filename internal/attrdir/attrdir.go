//go:build unix

// Package attrdir implements extended attributes stored as files in a
// per-target attribute directory, the model used by Solaris and illumos.
//
// Every operation opens exactly one descriptor through an Opener, acts on
// it and closes it again before returning. When both the action and the
// close fail, the error of the action is returned.
package attrdir

import (
	"io"
	"os"
	"syscall"

	"github.com/extattr/extattr/internal/debug"
	"github.com/extattr/extattr/internal/errors"
	"github.com/extattr/extattr/internal/namespace"

	"golang.org/x/sys/unix"
)

// Mode is the permission used for newly created attribute files.
const Mode = 0o660

// Opener opens the attribute files and the attribute directory of a single
// target. The returned file is owned by the caller.
type Opener interface {
	OpenAttr(name string, flag int, perm uint32) (*os.File, error)
	OpenDir() (*os.File, error)
}

// firstErr keeps the first non-nil error it is handed.
type firstErr struct {
	err error
}

func (f *firstErr) keep(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// use runs act on the file returned by open and closes it afterwards. If
// open fails there is nothing to act on or close.
func use(open func() (*os.File, error), act func(f *os.File) error) error {
	f, err := open()
	if err != nil {
		return errno(err)
	}

	var res firstErr
	res.keep(act(f))
	res.keep(errno(f.Close()))
	return res.err
}

// errno strips the *os.PathError and *os.SyscallError wrappers added by
// package os, so that callers see the error of the system call itself.
func errno(err error) error {
	if err == nil {
		return nil
	}

	var e syscall.Errno
	if errors.As(err, &e) {
		return errors.WithStack(e)
	}
	return errors.WithStack(err)
}

// OpenTarget opens the file at path so that its attribute directory can be
// reached with openat. O_NONBLOCK keeps the open of a FIFO or a device from
// waiting for a peer.
func OpenTarget(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, errors.WithStack(&os.PathError{Op: "open", Path: path, Err: err})
	}
	return fd, nil
}

// WriteFlags maps a creation mode to open flags: O_EXCL refuses an existing
// attribute, leaving out O_CREAT refuses a missing one.
func WriteFlags(m namespace.Mode) (int, error) {
	switch m {
	case namespace.CreateIfNeeded:
		return unix.O_RDWR | unix.O_CREAT, nil
	case namespace.CreateOnly:
		return unix.O_RDWR | unix.O_CREAT | unix.O_EXCL, nil
	case namespace.ReplaceOnly:
		return unix.O_RDWR, nil
	default:
		return 0, errors.WithStack(syscall.EINVAL)
	}
}

// Set writes value to attribute name as allowed by the creation mode m.
func Set(o Opener, name string, value []byte, m namespace.Mode) error {
	flag, err := WriteFlags(m)
	if err != nil {
		return err
	}
	return Write(o, name, value, flag)
}

// Get returns the size of attribute name if probe is set, otherwise it
// reads the value into dst.
func Get(o Opener, name string, dst []byte, probe bool) (int, error) {
	if probe {
		return Size(o, name)
	}
	return Read(o, name, dst)
}

// Names returns the size of the name list if probe is set, otherwise it
// stores the list in dst.
func Names(o Opener, dst []byte, probe bool) (int, error) {
	if probe {
		return ListSize(o)
	}
	return List(o, dst)
}

// Write replaces the value of attribute name. flag holds the open flags,
// which decide whether the attribute may or must be created.
func Write(o Opener, name string, value []byte, flag int) error {
	open := func() (*os.File, error) { return o.OpenAttr(name, flag, Mode) }

	return use(open, func(f *os.File) error {
		if err := f.Truncate(0); err != nil {
			return errno(err)
		}

		n, err := f.Write(value)
		if err != nil {
			return errno(err)
		}
		if n != len(value) {
			return errors.WithStack(syscall.EIO)
		}
		return nil
	})
}

// Read reads the value of attribute name into dst and returns the number of
// bytes read. Values longer than dst are cut off.
func Read(o Opener, name string, dst []byte) (int, error) {
	var n int
	open := func() (*os.File, error) { return o.OpenAttr(name, os.O_RDONLY, 0) }

	err := use(open, func(f *os.File) error {
		var err error
		n, err = io.ReadFull(f, dst)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = nil
		}
		return errno(err)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Size returns the length of the value of attribute name.
func Size(o Opener, name string) (int, error) {
	var size int
	open := func() (*os.File, error) { return o.OpenAttr(name, os.O_RDONLY, 0) }

	err := use(open, func(f *os.File) error {
		fi, err := f.Stat()
		if err != nil {
			return errno(err)
		}
		size = int(fi.Size())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}

// Remove unlinks attribute name from the attribute directory.
func Remove(o Opener, name string) error {
	return use(o.OpenDir, func(dir *os.File) error {
		return errno(unix.Unlinkat(int(dir.Fd()), name, 0))
	})
}

// dirNames returns the entries of the attribute directory.
func dirNames(dir *os.File) ([]string, error) {
	entries, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, errno(err)
	}

	list := entries[:0]
	for _, name := range entries {
		if name == "." || name == ".." {
			continue
		}
		list = append(list, name)
	}
	return list, nil
}

// ListSize returns the number of bytes List needs to store all attribute
// names, each followed by a nul byte.
func ListSize(o Opener) (int, error) {
	var size int

	err := use(o.OpenDir, func(dir *os.File) error {
		list, err := dirNames(dir)
		if err != nil {
			return err
		}
		for _, name := range list {
			size += len(name) + 1
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}

// List stores the nul-terminated attribute names in dst. If the next name
// does not fit, List stops with ERANGE and returns the number of bytes
// written so far; names are never split.
func List(o Opener, dst []byte) (int, error) {
	var n int

	err := use(o.OpenDir, func(dir *os.File) error {
		list, err := dirNames(dir)
		if err != nil {
			return err
		}

		for _, name := range list {
			if n+len(name)+1 > len(dst) {
				debug.Log("attribute list needs more than %d bytes", len(dst))
				return errors.WithStack(syscall.ERANGE)
			}
			n += copy(dst[n:], name)
			dst[n] = 0
			n++
		}
		return nil
	})
	return n, err
}
