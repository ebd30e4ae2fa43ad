package nargs

import "regexp"

// A token starts a new flag region only if it is one or two dashes
// followed by letters.  "-1" and "-3.5" are values.
var flagTokenRE = regexp.MustCompile(`^--?[A-Za-z]+$`)

// Option names are restricted so that every option renders as a
// flag token.
var optionNameRE = regexp.MustCompile(`^[A-Za-z]+$`)

// IsFlagToken reports whether token begins a new flag region
func IsFlagToken(token string) bool {
	return flagTokenRE.MatchString(token)
}

// valueRuns finds every occurrence of flag in args and returns the
// concatenation of their value runs, left to right.  Each run starts
// just after an occurrence and stops before the next flag token (any
// flag token, known or not) or at the end of args.  present is false
// only when flag never appears.
//
// args is never modified and the returned slice never aliases it.
func valueRuns(args []string, flag string) (run []string, present bool) {
	for i := 0; i < len(args); i++ {
		if args[i] != flag {
			continue
		}
		present = true
		end := nextFlagToken(args, i+1)
		debugf("scan: %s at %d, values %d..%d", flag, i, i+1, end)
		run = append(run, args[i+1:end]...)
		i = end - 1
	}
	if present && run == nil {
		run = []string{}
	}
	return run, present
}

// nextFlagToken returns the index of the first flag token at or
// after start, or len(args)
func nextFlagToken(args []string, start int) int {
	for j := start; j < len(args); j++ {
		if IsFlagToken(args[j]) {
			return j
		}
	}
	return len(args)
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
