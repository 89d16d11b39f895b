package extattr

import (
	"bytes"

	"github.com/extattr/extattr/internal/namespace"
)

// Len returns the size of the value of attribute name.
func (a *Attrs) Len(path, name string, opts Options) (int, error) {
	return a.Get(path, name, Probe(), opts)
}

// FLen returns the size of the value of attribute name of the open file fd.
func (a *Attrs) FLen(fd int, name string, opts Options) (int, error) {
	return a.FGet(fd, name, Probe(), opts)
}

// GetAll returns the complete value of attribute name. A value that
// changes while it is read is read again.
func (a *Attrs) GetAll(path, name string, opts Options) ([]byte, error) {
	return readAll(func(dst Buffer) (int, error) {
		return a.Get(path, name, dst, opts)
	})
}

// FGetAll returns the complete value of attribute name of the open file fd.
func (a *Attrs) FGetAll(fd int, name string, opts Options) ([]byte, error) {
	return readAll(func(dst Buffer) (int, error) {
		return a.FGet(fd, name, dst, opts)
	})
}

// ListNames returns the names of all attributes of the file at path.
func (a *Attrs) ListNames(path string) ([]string, error) {
	buf, err := readAll(func(dst Buffer) (int, error) {
		return a.List(path, dst)
	})
	if err != nil {
		return nil, err
	}
	return SplitList(buf), nil
}

// FListNames returns the names of all attributes of the open file fd.
func (a *Attrs) FListNames(fd int) ([]string, error) {
	buf, err := readAll(func(dst Buffer) (int, error) {
		return a.FList(fd, dst)
	})
	if err != nil {
		return nil, err
	}
	return SplitList(buf), nil
}

// readAll asks read for the size, then for the data. A value that grows
// between both calls fails with ERANGE, in which case it starts over.
// Systems that cut a value off at the end of the buffer instead (Solaris,
// BSD) are caught by asking for the size again when the buffer was filled
// completely.
func readAll(read func(Buffer) (int, error)) ([]byte, error) {
	for {
		size, err := read(Probe())
		if err != nil {
			return nil, err
		}

		buf := make([]byte, size)
		n, err := read(Into(buf))
		if IsRange(err) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if size > 0 && n == size {
			now, err := read(Probe())
			if err != nil {
				return nil, err
			}
			if now > size {
				continue
			}
		}
		return buf[:n], nil
	}
}

// SplitList splits a nul-separated list of names as returned by List.
// Empty names are skipped.
func SplitList(buf []byte) []string {
	var names []string
	for _, b := range bytes.Split(buf, []byte{0}) {
		if len(b) > 0 {
			names = append(names, string(b))
		}
	}
	return names
}

// SplitName separates a name as listed on Linux ("user.comment") into its
// namespace and the bare name.
func SplitName(qualified string) (ns, name string) {
	return namespace.Split(qualified)
}

// recordsToList rewrites a list of length-prefixed names, as returned by the
// BSD extattr_list calls, into nul-terminated names. Both formats need the
// same number of bytes. A record running past the end of buf is cut off.
func recordsToList(buf []byte) []byte {
	i := 0
	for i < len(buf) {
		l := int(buf[i])
		if i+1+l > len(buf) {
			return buf[:i]
		}
		copy(buf[i:], buf[i+1:i+1+l])
		buf[i+l] = 0
		i += l + 1
	}
	return buf
}

// Len returns the size of the value of attribute name.
func Len(path, name string, opts Options) (int, error) {
	return std.Len(path, name, opts)
}

// FLen returns the size of the value of attribute name of the open file fd.
func FLen(fd int, name string, opts Options) (int, error) {
	return std.FLen(fd, name, opts)
}

// GetAll returns the complete value of attribute name. A value that
// changes while it is read is read again.
func GetAll(path, name string, opts Options) ([]byte, error) {
	return std.GetAll(path, name, opts)
}

// FGetAll returns the complete value of attribute name of the open file fd.
func FGetAll(fd int, name string, opts Options) ([]byte, error) {
	return std.FGetAll(fd, name, opts)
}

// ListNames returns the names of all attributes of the file at path.
func ListNames(path string) ([]string, error) {
	return std.ListNames(path)
}

// FListNames returns the names of all attributes of the open file fd.
func FListNames(fd int) ([]string, error) {
	return std.FListNames(fd)
}
