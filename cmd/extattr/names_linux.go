package main

import "github.com/extattr/extattr"

// namespaces the kernel knows; names starting with one of them are already
// qualified, as printed by ls.
var namespaces = map[string]bool{
	"security": true,
	"system":   true,
	"trusted":  true,
	"user":     true,
}

// attrRef splits a qualified name like "user.comment" into the bare name and
// options selecting its namespace. Other names are returned unchanged and
// use the default namespace.
func attrRef(name string) (string, extattr.Options) {
	ns, bare := extattr.SplitName(name)
	if !namespaces[ns] {
		return name, extattr.Options{}
	}
	return bare, extattr.Options{Namespace: ns}
}
