// Package extattr reads, writes, removes and lists extended attributes with
// one API on every supported operating system.
//
// Linux keeps attributes in a flat list of "namespace.name" entries, so names
// passed to this package are qualified with a namespace first ("user" unless
// configured otherwise). Solaris and illumos store each attribute as a file
// in a hidden attribute directory of the target. FreeBSD and NetBSD take the
// namespace as a separate argument, and macOS uses names verbatim.
//
// Which implementation is used is decided when the package is compiled.
// Every call maps to a small, fixed number of system calls and returns before
// control is handed back to the caller. Nothing is retried and no state is
// kept between calls.
//
// Get and List write into a caller supplied Buffer. Use Probe to ask for the
// number of bytes needed and Into to have the data stored:
//
//	size, err := extattr.Get(path, "comment", extattr.Probe(), extattr.Options{})
//	buf := make([]byte, size)
//	n, err := extattr.Get(path, "comment", extattr.Into(buf), extattr.Options{})
//
// GetAll and ListNames wrap this two-step sequence.
package extattr
