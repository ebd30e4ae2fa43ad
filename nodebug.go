//go:build !debugNargs
// +build !debugNargs

package nargs

const debugging = false

func debugf(string, ...interface{}) {}
func debug(...interface{})          {}
