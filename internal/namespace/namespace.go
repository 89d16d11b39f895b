// Package namespace turns the caller's view of an attribute (creation mode,
// optional namespace, bare name) into what a flat-namespace system call
// expects: creation flags and a "namespace.name" string.
package namespace

import (
	"strings"
	"syscall"

	"github.com/extattr/extattr/internal/errors"
)

// Default is the namespace used when neither the caller nor the
// configuration names one.
const Default = "user"

// Mode selects whether a set operation may create an attribute, must create
// it, or must only replace an existing one.
type Mode int

const (
	// CreateIfNeeded creates the attribute or replaces its value.
	CreateIfNeeded Mode = iota
	// CreateOnly fails if the attribute already exists.
	CreateOnly
	// ReplaceOnly fails if the attribute does not exist yet.
	ReplaceOnly
)

func (m Mode) String() string {
	switch m {
	case CreateIfNeeded:
		return "create-if-needed"
	case CreateOnly:
		return "create-only"
	case ReplaceOnly:
		return "replace-only"
	default:
		return "invalid"
	}
}

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	return m >= CreateIfNeeded && m <= ReplaceOnly
}

// ErrQualify is returned when a qualified attribute name can not be built.
// It matches syscall.ENOMEM, the condition reported by C implementations
// that fail to allocate the qualified name.
var ErrQualify error = qualifyError{}

type qualifyError struct{}

func (qualifyError) Error() string { return "cannot allocate qualified attribute name" }

func (qualifyError) Is(target error) bool { return target == syscall.ENOMEM }

// Resolver maps modes and namespaces to the encoding of one operating
// system. The zero value uses Default and sets no creation flags.
type Resolver struct {
	DefaultNamespace string

	// CreateFlag and ReplaceFlag are the native flag values for CreateOnly
	// and ReplaceOnly.
	CreateFlag  int
	ReplaceFlag int
}

// Namespace returns ns, or the configured default if ns is empty.
func (r Resolver) Namespace(ns string) string {
	if ns != "" {
		return ns
	}
	if r.DefaultNamespace != "" {
		return r.DefaultNamespace
	}
	return Default
}

// Qualify returns "namespace.name". Names and namespaces that can not be
// passed to the operating system as a C string yield ErrQualify.
func (r Resolver) Qualify(name, ns string) (string, error) {
	ns = r.Namespace(ns)
	if strings.IndexByte(ns, 0) >= 0 || strings.IndexByte(name, 0) >= 0 {
		return "", errors.WithStack(ErrQualify)
	}

	var sb strings.Builder
	sb.Grow(len(ns) + 1 + len(name))
	sb.WriteString(ns)
	sb.WriteByte('.')
	sb.WriteString(name)
	return sb.String(), nil
}

// Flags returns the native creation flags for m.
func (r Resolver) Flags(m Mode) (int, error) {
	switch m {
	case CreateIfNeeded:
		return 0, nil
	case CreateOnly:
		return r.CreateFlag, nil
	case ReplaceOnly:
		return r.ReplaceFlag, nil
	default:
		return 0, errors.WithStack(syscall.EINVAL)
	}
}

// Split separates a qualified name at its first dot. Names without a dot are
// returned with an empty namespace.
func Split(qualified string) (ns, name string) {
	ns, name, ok := strings.Cut(qualified, ".")
	if !ok {
		return "", qualified
	}
	return ns, name
}
