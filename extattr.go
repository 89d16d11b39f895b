package extattr

import (
	"github.com/extattr/extattr/internal/debug"
	"github.com/extattr/extattr/internal/namespace"
	"github.com/extattr/extattr/internal/options"
)

// CreateMode governs whether Set may create an attribute.
type CreateMode = namespace.Mode

const (
	// CreateIfNeeded creates the attribute or replaces its value.
	CreateIfNeeded = namespace.CreateIfNeeded
	// CreateOnly fails if the attribute already exists.
	CreateOnly = namespace.CreateOnly
	// ReplaceOnly fails if the attribute does not exist.
	ReplaceOnly = namespace.ReplaceOnly
)

// DefaultNamespace is used for names given without a namespace.
const DefaultNamespace = namespace.Default

// Options modify a single operation.
type Options struct {
	// Create is only used by Set and FSet.
	Create CreateMode

	// Namespace overrides Config.DefaultNamespace for this call. It is
	// ignored on systems without attribute namespaces (Solaris, macOS).
	Namespace string
}

// Config holds the settings shared by all operations of an Attrs.
type Config struct {
	DefaultNamespace string `option:"namespace" help:"namespace for attribute names given without one (default: user)"`
}

func init() {
	options.Register("xattr", Config{})
}

// DefaultConfig returns the configuration used by the package level
// functions.
func DefaultConfig() Config {
	return Config{DefaultNamespace: namespace.Default}
}

// ParseConfig returns the default configuration with the options in the
// "xattr" namespace applied, e.g. "xattr.namespace=trusted".
func ParseConfig(opts options.Options) (Config, error) {
	cfg := DefaultConfig()
	err := opts.Extract("xattr").Apply("xattr", &cfg)
	return cfg, err
}

// Buffer is the destination of Get and List. A Buffer either asks for the
// number of bytes needed (Probe) or receives data (Into).
type Buffer struct {
	b     []byte
	probe bool
}

// Probe returns a Buffer that asks for the size of the data instead of the
// data itself.
func Probe() Buffer {
	return Buffer{probe: true}
}

// Into returns a Buffer that stores data in b. An empty b only accepts an
// empty result, anything larger fails with ERANGE.
func Into(b []byte) Buffer {
	return Buffer{b: b}
}

// IsProbe reports whether the buffer asks for a size.
func (b Buffer) IsProbe() bool {
	return b.probe
}

// Bytes returns the underlying slice, nil for a probe.
func (b Buffer) Bytes() []byte {
	return b.b
}

// fillsNothing reports whether b is a fill request without room for data.
// The native calls treat a zero length as a size request, so such a request
// is turned into a probe by the caller.
func (b Buffer) fillsNothing() bool {
	return !b.probe && len(b.b) == 0
}

// Attrs performs attribute operations with a fixed configuration.
type Attrs struct {
	sys native
}

// New returns an Attrs using cfg.
func New(cfg Config) *Attrs {
	return &Attrs{sys: newNative(cfg)}
}

var std = New(DefaultConfig())

// Set stores value as attribute name of the file at path.
func (a *Attrs) Set(path, name string, value []byte, opts Options) error {
	err := a.sys.set(path, name, value, opts)
	debug.Log("set %v %v (%d bytes, %v): %v", path, name, len(value), opts.Create, err)
	return err
}

// FSet stores value as attribute name of the open file fd.
func (a *Attrs) FSet(fd int, name string, value []byte, opts Options) error {
	err := a.sys.fset(fd, name, value, opts)
	debug.Log("fset %d %v (%d bytes, %v): %v", fd, name, len(value), opts.Create, err)
	return err
}

// Get reads attribute name of the file at path into dst and returns the
// number of bytes stored. For a probe, the size of the value is returned.
func (a *Attrs) Get(path, name string, dst Buffer, opts Options) (int, error) {
	if dst.fillsNothing() {
		n, err := a.sys.get(path, name, Probe(), opts)
		return emptyFill(opGet, path, name, n, err)
	}
	n, err := a.sys.get(path, name, dst, opts)
	debug.Log("get %v %v (probe %v): %d %v", path, name, dst.probe, n, err)
	return n, err
}

// FGet is Get for the open file fd.
func (a *Attrs) FGet(fd int, name string, dst Buffer, opts Options) (int, error) {
	if dst.fillsNothing() {
		n, err := a.sys.fget(fd, name, Probe(), opts)
		return emptyFill(opGet, fdPath(fd), name, n, err)
	}
	n, err := a.sys.fget(fd, name, dst, opts)
	debug.Log("fget %d %v (probe %v): %d %v", fd, name, dst.probe, n, err)
	return n, err
}

// Remove deletes attribute name from the file at path.
func (a *Attrs) Remove(path, name string, opts Options) error {
	err := a.sys.remove(path, name, opts)
	debug.Log("remove %v %v: %v", path, name, err)
	return err
}

// FRemove deletes attribute name from the open file fd.
func (a *Attrs) FRemove(fd int, name string, opts Options) error {
	err := a.sys.fremove(fd, name, opts)
	debug.Log("fremove %d %v: %v", fd, name, err)
	return err
}

// List stores the names of all attributes of the file at path in dst, each
// terminated by a nul byte, and returns the number of bytes stored. For a
// probe, the number of bytes needed is returned.
//
// On Linux the names are returned as stored by the kernel, including their
// namespace prefix and regardless of the configured default namespace.
func (a *Attrs) List(path string, dst Buffer) (int, error) {
	if dst.fillsNothing() {
		n, err := a.sys.list(path, Probe())
		return emptyFill(opList, path, "", n, err)
	}
	n, err := a.sys.list(path, dst)
	debug.Log("list %v (probe %v): %d %v", path, dst.probe, n, err)
	return n, err
}

// FList is List for the open file fd.
func (a *Attrs) FList(fd int, dst Buffer) (int, error) {
	if dst.fillsNothing() {
		n, err := a.sys.flist(fd, Probe())
		return emptyFill(opList, fdPath(fd), "", n, err)
	}
	n, err := a.sys.flist(fd, dst)
	debug.Log("flist %d (probe %v): %d %v", fd, dst.probe, n, err)
	return n, err
}

// Set stores value as attribute name of the file at path.
func Set(path, name string, value []byte, opts Options) error {
	return std.Set(path, name, value, opts)
}

// FSet stores value as attribute name of the open file fd.
func FSet(fd int, name string, value []byte, opts Options) error {
	return std.FSet(fd, name, value, opts)
}

// Get reads attribute name of the file at path, see Attrs.Get.
func Get(path, name string, dst Buffer, opts Options) (int, error) {
	return std.Get(path, name, dst, opts)
}

// FGet reads attribute name of the open file fd, see Attrs.Get.
func FGet(fd int, name string, dst Buffer, opts Options) (int, error) {
	return std.FGet(fd, name, dst, opts)
}

// Remove deletes attribute name from the file at path.
func Remove(path, name string, opts Options) error {
	return std.Remove(path, name, opts)
}

// FRemove deletes attribute name from the open file fd.
func FRemove(fd int, name string, opts Options) error {
	return std.FRemove(fd, name, opts)
}

// List lists the attribute names of the file at path, see Attrs.List.
func List(path string, dst Buffer) (int, error) {
	return std.List(path, dst)
}

// FList lists the attribute names of the open file fd, see Attrs.List.
func FList(fd int, dst Buffer) (int, error) {
	return std.FList(fd, dst)
}
