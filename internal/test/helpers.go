package test

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/extattr/extattr/internal/errors"

	mrand "math/rand"
)

// Assert fails the test if the condition is false.
func Assert(tb testing.TB, condition bool, msg string, v ...interface{}) {
	tb.Helper()
	if !condition {
		tb.Fatalf(msg, v...)
	}
}

// OK fails the test if an err is not nil.
func OK(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatalf("unexpected error: %+v", err)
	}
}

// ErrorIs fails the test if err does not match target.
func ErrorIs(tb testing.TB, err, target error) {
	tb.Helper()
	if !errors.Is(err, target) {
		tb.Fatalf("expected error %v, got %+v", target, err)
	}
}

// Equals fails the test if exp is not equal to act. The optional msg is a
// format string followed by its arguments.
func Equals(tb testing.TB, exp, act interface{}, msg ...interface{}) {
	tb.Helper()
	if reflect.DeepEqual(exp, act) {
		return
	}

	var prefix string
	if len(msg) > 0 {
		if format, ok := msg[0].(string); ok {
			prefix = fmt.Sprintf(format, msg[1:]...) + ": "
		}
	}
	tb.Fatalf("%sexp: %#v\n\tgot: %#v", prefix, exp, act)
}

// Random returns count bytes of pseudo-random data derived from the seed.
func Random(seed, count int) []byte {
	p := make([]byte, count)

	rnd := mrand.New(mrand.NewSource(int64(seed)))

	for i := 0; i < len(p); i += 8 {
		val := rnd.Int63()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(val >> (8 * j))
		}
	}

	return p
}

// TempDir returns a temporary directory that is removed by t.Cleanup,
// except if TestCleanupTempDirs is set to false.
func TempDir(t testing.TB) string {
	tempdir, err := os.MkdirTemp(TestTempDir, "extattr-test-")
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if !TestCleanupTempDirs {
			t.Logf("leaving temporary directory %v used for test", tempdir)
			return
		}

		OK(t, os.RemoveAll(tempdir))
	})
	return tempdir
}

// TempFile creates a file with the given content in a fresh temporary
// directory and returns its path.
func TempFile(t testing.TB, name string, content []byte) string {
	t.Helper()

	fn := filepath.Join(TempDir(t), name)
	OK(t, os.WriteFile(fn, content, 0o600))
	return fn
}
