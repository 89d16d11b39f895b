package main

import (
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

func stdoutIsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// printable reports whether value can be written to a terminal unchanged.
func printable(value []byte) bool {
	if !utf8.Valid(value) {
		return false
	}
	for _, r := range string(value) {
		if !unicode.IsPrint(r) && r != '\t' {
			return false
		}
	}
	return true
}

// formatValue returns value as text for a terminal. Values with control
// characters or invalid UTF-8 are quoted.
func formatValue(value []byte) string {
	if printable(value) {
		return string(value)
	}
	return strconv.Quote(string(value))
}
