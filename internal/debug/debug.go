// Package debug writes a trace of attribute operations when enabled through
// the environment:
//
//	DEBUG_LOG=file     append all messages to file
//	DEBUG_FUNCS=list   print messages of matching functions to stderr
//	DEBUG_FILES=list   print messages of matching dir/file.go:line to stderr
//
// Lists are comma separated glob patterns, "all" matches everything and a
// leading '-' excludes matches.
package debug

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// filter maps glob patterns to whether matching keys are printed.
type filter map[string]bool

func parseFilter(list string, normalize func(string) string) (filter, error) {
	f := make(filter)
	for _, item := range strings.Split(list, ",") {
		pattern := strings.TrimSpace(item)
		if pattern == "" {
			continue
		}

		enable := true
		switch pattern[0] {
		case '-':
			enable = false
			pattern = pattern[1:]
		case '+':
			pattern = pattern[1:]
		}
		pattern = normalize(pattern)

		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		f[pattern] = enable
	}
	return f, nil
}

func (f filter) match(key string) bool {
	if v, ok := f[key]; ok {
		return v
	}
	for pattern, v := range f {
		if ok, _ := path.Match(pattern, key); ok {
			return v
		}
	}
	return f["all"]
}

// filePattern completes "file.go" to "*/file.go:*".
func filePattern(s string) string {
	if s == "all" {
		return s
	}
	if !strings.Contains(s, "/") {
		s = "*/" + s
	}
	if !strings.Contains(s, ":") {
		s += ":*"
	}
	return s
}

func keep(s string) string { return s }

var state struct {
	enabled bool
	logger  *log.Logger
	funcs   filter
	files   filter
}

// runs before any init() so that messages logged there are not lost
var _ = setup()

func setup() bool {
	if name := os.Getenv("DEBUG_LOG"); name != "" {
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to open debug log file: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "debug log file %v\n", name)
		state.logger = log.New(f, "", log.LstdFlags)
	}

	var err error
	if state.funcs, err = parseFilter(os.Getenv("DEBUG_FUNCS"), keep); err == nil {
		state.files, err = parseFilter(os.Getenv("DEBUG_FILES"), filePattern)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(5)
	}

	state.enabled = state.logger != nil || len(state.funcs) > 0 || len(state.files) > 0
	if state.enabled {
		fmt.Fprintf(os.Stderr, "debug enabled\n")
	}
	return state.enabled
}

// caller describes the function that called Log.
type caller struct {
	fn  string // package.Function
	pos string // dir/file.go:line
}

func callerOf(skip int) caller {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return caller{}
	}

	var fn string
	if f := runtime.FuncForPC(pc); f != nil {
		fn = path.Base(f.Name())
	}
	dir := filepath.Base(filepath.Dir(file))
	return caller{
		fn:  fn,
		pos: fmt.Sprintf("%s/%s:%d", dir, filepath.Base(file), line),
	}
}

// goroutineID parses the id from the header of the current stack trace.
func goroutineID() int {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)

	var id int
	_, _ = fmt.Sscanf(string(buf[:n]), "goroutine %d ", &id)
	return id
}

// Enabled reports whether debug output is configured.
func Enabled() bool {
	return state.enabled
}

// Log prints a message to the debug log (if debug is enabled).
func Log(format string, args ...interface{}) {
	if !state.enabled {
		return
	}

	c := callerOf(1)
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	msg := fmt.Sprintf("%s\t%s\t%d\t", c.pos, c.fn, goroutineID()) + fmt.Sprintf(format, args...)

	if state.logger != nil {
		state.logger.Print(msg)
	}
	if state.files.match(c.pos) || state.funcs.match(c.fn) {
		_, _ = os.Stderr.WriteString(msg)
	}
}
