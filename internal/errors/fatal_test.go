package errors_test

import (
	"syscall"
	"testing"

	"github.com/extattr/extattr/internal/errors"
)

func TestFatal(t *testing.T) {
	for _, v := range []struct {
		err      error
		expected bool
	}{
		{errors.Fatal("no attribute name given"), true},
		{errors.Fatalf("unable to read %v: %v", "user.comment", syscall.ENOENT), true},
		{errors.New("error"), false},
		{errors.WithStack(syscall.ERANGE), false},
	} {
		if errors.IsFatal(v.err) != v.expected {
			t.Fatalf("IsFatal for %q, expected: %v, got: %v", v.err, v.expected, errors.IsFatal(v.err))
		}
	}
}

func TestFatalKeepsErrno(t *testing.T) {
	fatal := errors.Fatalf("set %v failed: %v", "user.comment", syscall.EEXIST)

	if fatal.Error() != "Fatal: set user.comment failed: file exists" {
		t.Errorf("unexpected error message: %v", fatal.Error())
	}

	if !errors.Is(fatal, syscall.EEXIST) {
		t.Error("fatal error should wrap the errno")
	}

	var errno syscall.Errno
	if !errors.As(fatal, &errno) || errno != syscall.EEXIST {
		t.Errorf("errors.As returned %v", errno)
	}
}
