//go:build unix

package attrdir

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"testing"
	"time"

	"github.com/extattr/extattr/internal/errors"
	"github.com/extattr/extattr/internal/namespace"
	rtest "github.com/extattr/extattr/internal/test"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"
)

// dirOpener uses an ordinary directory as the attribute directory.
type dirOpener struct {
	dir   string
	opens int
}

func (d *dirOpener) OpenAttr(name string, flag int, perm uint32) (*os.File, error) {
	d.opens++
	fn := filepath.Join(d.dir, name)
	fd, err := unix.Open(fn, flag|unix.O_CLOEXEC, perm)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: fn, Err: err}
	}
	return os.NewFile(uintptr(fd), fn), nil
}

func (d *dirOpener) OpenDir() (*os.File, error) {
	d.opens++
	fd, err := unix.Open(d.dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: d.dir, Err: err}
	}
	return os.NewFile(uintptr(fd), d.dir), nil
}

func newOpener(t testing.TB) *dirOpener {
	return &dirOpener{dir: rtest.TempDir(t)}
}

const createIfNeeded = os.O_RDWR | os.O_CREATE

func TestWriteRead(t *testing.T) {
	o := newOpener(t)

	rtest.OK(t, Write(o, "comment", []byte("hello"), createIfNeeded))

	size, err := Size(o, "comment")
	rtest.OK(t, err)
	rtest.Equals(t, 5, size)

	buf := make([]byte, size)
	n, err := Read(o, "comment", buf)
	rtest.OK(t, err)
	rtest.Equals(t, "hello", string(buf[:n]))

	// a shorter value must not leave the tail of the old one behind
	rtest.OK(t, Write(o, "comment", []byte("v2"), createIfNeeded))
	size, err = Size(o, "comment")
	rtest.OK(t, err)
	rtest.Equals(t, 2, size)

	n, err = Read(o, "comment", make([]byte, 10))
	rtest.OK(t, err)
	rtest.Equals(t, 2, n)
}

func TestReadShortBuffer(t *testing.T) {
	o := newOpener(t)
	value := rtest.Random(23, 300)
	rtest.OK(t, Write(o, "blob", value, createIfNeeded))

	buf := make([]byte, 100)
	n, err := Read(o, "blob", buf)
	rtest.OK(t, err)
	rtest.Equals(t, 100, n)
	rtest.Assert(t, bytes.Equal(value[:100], buf), "wrong prefix read")
}

func TestEmptyValue(t *testing.T) {
	o := newOpener(t)
	rtest.OK(t, Write(o, "empty", nil, createIfNeeded))

	size, err := Size(o, "empty")
	rtest.OK(t, err)
	rtest.Equals(t, 0, size)

	n, err := Read(o, "empty", make([]byte, 4))
	rtest.OK(t, err)
	rtest.Equals(t, 0, n)
}

func TestCreateFlags(t *testing.T) {
	o := newOpener(t)

	err := Write(o, "comment", []byte("v1"), os.O_RDWR)
	rtest.ErrorIs(t, err, syscall.ENOENT)

	rtest.OK(t, Write(o, "comment", []byte("v1"), os.O_RDWR|os.O_CREATE|os.O_EXCL))

	err = Write(o, "comment", []byte("v2"), os.O_RDWR|os.O_CREATE|os.O_EXCL)
	rtest.ErrorIs(t, err, syscall.EEXIST)

	rtest.OK(t, Write(o, "comment", []byte("v2"), os.O_RDWR))

	buf := make([]byte, 2)
	_, err = Read(o, "comment", buf)
	rtest.OK(t, err)
	rtest.Equals(t, "v2", string(buf))
}

func TestRemove(t *testing.T) {
	o := newOpener(t)
	rtest.OK(t, Write(o, "comment", []byte("v1"), createIfNeeded))
	rtest.OK(t, Remove(o, "comment"))

	_, err := Size(o, "comment")
	rtest.ErrorIs(t, err, syscall.ENOENT)

	err = Remove(o, "comment")
	rtest.ErrorIs(t, err, syscall.ENOENT)

	size, err := ListSize(o)
	rtest.OK(t, err)
	rtest.Equals(t, 0, size)
}

func splitNames(buf []byte) []string {
	var list []string
	for _, b := range bytes.Split(buf, []byte{0}) {
		if len(b) > 0 {
			list = append(list, string(b))
		}
	}
	sort.Strings(list)
	return list
}

func TestList(t *testing.T) {
	o := newOpener(t)
	want := []string{"a", "comment", "mime_type"}
	for _, name := range want {
		rtest.OK(t, Write(o, name, []byte(name), createIfNeeded))
	}

	size, err := ListSize(o)
	rtest.OK(t, err)
	rtest.Equals(t, 2+8+10, size)

	buf := make([]byte, size)
	n, err := List(o, buf)
	rtest.OK(t, err)
	rtest.Equals(t, size, n)

	if diff := cmp.Diff(want, splitNames(buf[:n])); diff != "" {
		t.Errorf("wrong names (-want +got):\n%s", diff)
	}
}

func TestListRange(t *testing.T) {
	o := newOpener(t)
	all := []string{"aaaa", "bbbbbbbb", "cccccccccccc"}
	for _, name := range all {
		rtest.OK(t, Write(o, name, nil, createIfNeeded))
	}

	size, err := ListSize(o)
	rtest.OK(t, err)

	for _, short := range []int{1, 6, size - 1} {
		buf := bytes.Repeat([]byte{0xff}, short)
		n, err := List(o, buf)
		rtest.ErrorIs(t, err, syscall.ERANGE)
		rtest.Assert(t, n < short || n == 0, "returned length %d for buffer of %d bytes", n, short)

		// everything after the returned length is untouched
		rtest.Assert(t, bytes.Count(buf[n:], []byte{0xff}) == short-n, "partial name written: %q", buf)

		// everything before it consists of complete names
		if n > 0 {
			rtest.Equals(t, byte(0), buf[n-1])
		}
		for _, name := range splitNames(buf[:n]) {
			found := false
			for _, want := range all {
				found = found || name == want
			}
			rtest.Assert(t, found, "unexpected name %q", name)
		}
	}
}

func TestOpenFailure(t *testing.T) {
	o := &dirOpener{dir: filepath.Join(rtest.TempDir(t), "missing")}

	_, err := ListSize(o)
	rtest.ErrorIs(t, err, syscall.ENOENT)

	_, err = List(o, make([]byte, 10))
	rtest.ErrorIs(t, err, syscall.ENOENT)

	err = Remove(o, "comment")
	rtest.ErrorIs(t, err, syscall.ENOENT)

	err = Write(o, "comment", []byte("x"), createIfNeeded)
	rtest.ErrorIs(t, err, syscall.ENOENT)

	rtest.Equals(t, 4, o.opens)
}

func TestReadDirectory(t *testing.T) {
	o := newOpener(t)
	rtest.OK(t, os.Mkdir(filepath.Join(o.dir, "subdir"), 0o700))

	// reading a directory fails after a successful open
	_, err := Read(o, "subdir", make([]byte, 10))
	rtest.ErrorIs(t, err, syscall.EISDIR)
}

func TestFirstErr(t *testing.T) {
	var res firstErr
	res.keep(nil)
	rtest.Assert(t, res.err == nil, "nil error recorded")

	res.keep(syscall.ERANGE)
	res.keep(syscall.EBADF)
	rtest.Assert(t, errors.Is(res.err, syscall.ERANGE), "wrong error kept: %v", res.err)
}

func TestSetModes(t *testing.T) {
	o := newOpener(t)

	for i, test := range []struct {
		mode  namespace.Mode
		value string
		err   error
		want  string
	}{
		{namespace.ReplaceOnly, "v0", syscall.ENOENT, ""},
		{namespace.CreateOnly, "v1", nil, "v1"},
		{namespace.CreateOnly, "v2", syscall.EEXIST, "v1"},
		{namespace.ReplaceOnly, "v3", nil, "v3"},
		{namespace.CreateIfNeeded, "v4", nil, "v4"},
		{namespace.Mode(7), "v5", syscall.EINVAL, "v4"},
	} {
		opens := o.opens
		err := Set(o, "comment", []byte(test.value), test.mode)
		if test.err != nil {
			rtest.ErrorIs(t, err, test.err)
		} else {
			rtest.OK(t, err)
		}

		if test.err == syscall.EINVAL {
			rtest.Equals(t, opens, o.opens, "test %d: opened with invalid mode", i)
		}

		if test.want == "" {
			continue
		}
		buf := make([]byte, 10)
		n, err := Get(o, "comment", buf, false)
		rtest.OK(t, err)
		rtest.Equals(t, test.want, string(buf[:n]), "test %d", i)
	}
}

func TestWriteFlags(t *testing.T) {
	for _, test := range []struct {
		mode namespace.Mode
		flag int
	}{
		{namespace.CreateIfNeeded, unix.O_RDWR | unix.O_CREAT},
		{namespace.CreateOnly, unix.O_RDWR | unix.O_CREAT | unix.O_EXCL},
		{namespace.ReplaceOnly, unix.O_RDWR},
	} {
		flag, err := WriteFlags(test.mode)
		rtest.OK(t, err)
		rtest.Equals(t, test.flag, flag, "flags for %v", test.mode)
	}

	_, err := WriteFlags(namespace.Mode(-1))
	rtest.ErrorIs(t, err, syscall.EINVAL)
}

func TestGetNamesProbe(t *testing.T) {
	o := newOpener(t)
	rtest.OK(t, Set(o, "comment", []byte("hello"), namespace.CreateIfNeeded))

	size, err := Get(o, "comment", nil, true)
	rtest.OK(t, err)
	rtest.Equals(t, 5, size)

	size, err = Names(o, nil, true)
	rtest.OK(t, err)
	rtest.Equals(t, len("comment")+1, size)

	buf := make([]byte, size)
	n, err := Names(o, buf, false)
	rtest.OK(t, err)
	rtest.Equals(t, "comment\x00", string(buf[:n]))
}

func TestOpenTargetFIFO(t *testing.T) {
	fifo := filepath.Join(rtest.TempDir(t), "fifo")
	rtest.OK(t, unix.Mkfifo(fifo, 0o600))

	done := make(chan error, 1)
	go func() {
		fd, err := OpenTarget(fifo)
		if err == nil {
			err = unix.Close(fd)
		}
		done <- err
	}()

	select {
	case err := <-done:
		rtest.OK(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("opening a FIFO without a writer blocked")
	}
}

func TestOpenTargetMissing(t *testing.T) {
	_, err := OpenTarget(filepath.Join(rtest.TempDir(t), "missing"))
	rtest.ErrorIs(t, err, syscall.ENOENT)
}

func TestUseCloseError(t *testing.T) {
	o := newOpener(t)

	// closing the descriptor behind the file's back makes Close fail
	err := use(o.OpenDir, func(f *os.File) error {
		return unix.Close(int(f.Fd()))
	})
	rtest.ErrorIs(t, err, syscall.EBADF)

	// an error of the action wins over the close error
	err = use(o.OpenDir, func(f *os.File) error {
		_ = unix.Close(int(f.Fd()))
		return errors.WithStack(syscall.ERANGE)
	})
	rtest.ErrorIs(t, err, syscall.ERANGE)
	rtest.Assert(t, !errors.Is(err, syscall.EBADF), "close error reported: %v", err)
}
