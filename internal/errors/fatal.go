package errors

import (
	"errors"
	"fmt"
)

// fatalError is an error that is printed to the user as is, after which the
// program exits with a non-zero status.
type fatalError struct {
	msg   string
	cause error
}

func (e *fatalError) Error() string {
	return e.msg
}

func (e *fatalError) Unwrap() error {
	return e.cause
}

// IsFatal returns true if err is a fatal message that should be printed to the
// user. Then, the program should exit.
func IsFatal(err error) bool {
	var fatal *fatalError
	return errors.As(err, &fatal)
}

// Fatal returns an error that is marked fatal.
func Fatal(s string) error {
	return Wrap(&fatalError{msg: s}, "Fatal")
}

// Fatalf returns an error that is marked fatal. The last error found in data
// stays reachable through errors.Is and errors.As, so that an errno returned
// by the operating system still decides the exit code.
func Fatalf(s string, data ...interface{}) error {
	var cause error
	for i := len(data) - 1; i >= 0; i-- {
		if err, ok := data[i].(error); ok {
			cause = err
			break
		}
	}

	return Wrap(&fatalError{
		msg:   fmt.Sprintf(s, data...),
		cause: cause,
	}, "Fatal")
}
