package debug

import (
	"log"
	"os"
	"testing"
)

// TestLogToStderr sends debug output to stderr unless a debug log is already
// configured. It returns whether logging was switched on by this call.
func TestLogToStderr(t testing.TB) bool {
	t.Helper()
	if state.enabled {
		return false
	}
	state.logger = log.New(os.Stderr, "", log.LstdFlags)
	state.enabled = true
	return true
}

// TestDisableLog switches debug output off again.
func TestDisableLog(t testing.TB) {
	t.Helper()
	state.logger = nil
	state.enabled = false
}
