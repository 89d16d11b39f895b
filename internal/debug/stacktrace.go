package debug

import "runtime"

// DumpStacktrace returns the stack traces of all goroutines.
func DumpStacktrace() string {
	buf := make([]byte, 64*1024)

	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return string(buf[:n])
		}
		buf = make([]byte, 2*len(buf))
	}
}
