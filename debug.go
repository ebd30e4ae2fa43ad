//go:build debugNargs
// +build debugNargs

package nargs

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
)

var debugging = true

func debugf(format string, args ...interface{}) {
	log.Printf("nargs "+format+" (%s)", append(args, caller())...)
}

func debug(args ...interface{}) {
	log.Println(append([]interface{}{"nargs"}, args...)...)
}

func caller() string {
	pc := make([]uintptr, 1)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return "?"
	}
	frame, _ := runtime.CallersFrames(pc[:n]).Next()
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
