//go:build !linux

package main

import "github.com/extattr/extattr"

func attrRef(name string) (string, extattr.Options) {
	return name, extattr.Options{}
}
