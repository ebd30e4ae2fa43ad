package nargs

import (
	"fmt"

	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
)

// ErrorKind classifies an OptionError
type ErrorKind int

const (
	_ ErrorKind = iota
	// IllegalOption: a descriptor (or struct field) is malformed
	IllegalOption
	// UnsupportedShape: no parser is registered for the declared type
	UnsupportedShape
	// InsufficientArguments: fewer values than the shape requires
	InsufficientArguments
	// TooManyArguments: more values than the shape allows
	TooManyArguments
	// IllegalValue: an elementary parser rejected a token
	IllegalValue
)

func (k ErrorKind) String() string {
	switch k {
	case IllegalOption:
		return "illegal option"
	case UnsupportedShape:
		return "unsupported shape"
	case InsufficientArguments:
		return "insufficient arguments"
	case TooManyArguments:
		return "too many arguments"
	case IllegalValue:
		return "illegal value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels for use with errors.Is.  Matching is by Kind only so
//
//	errors.Is(err, nargs.ErrTooManyArguments)
//
// is true for any TooManyArguments failure regardless of option.
var (
	ErrIllegalOption         = &OptionError{Kind: IllegalOption}
	ErrUnsupportedShape      = &OptionError{Kind: UnsupportedShape}
	ErrInsufficientArguments = &OptionError{Kind: InsufficientArguments}
	ErrTooManyArguments      = &OptionError{Kind: TooManyArguments}
	ErrIllegalValue          = &OptionError{Kind: IllegalValue}
)

// OptionError is returned for every failure attributable to a
// single option.  Option is the bare option name (no dashes).  Value
// is the offending token and is only set for IllegalValue.
type OptionError struct {
	Kind   ErrorKind
	Option string
	Value  string
	detail error
	cause  error
}

func (e *OptionError) Error() string {
	var msg string
	switch e.Kind {
	case IllegalValue:
		msg = fmt.Sprintf("illegal value %q for option %s", e.Value, e.Option)
	default:
		msg = fmt.Sprintf("%s: %s", e.Kind, e.Option)
	}
	if e.detail != nil {
		return msg + ": " + e.detail.Error()
	}
	return msg
}

func (e *OptionError) Unwrap() error { return e.cause }

func (e *OptionError) Is(target error) bool {
	t, ok := target.(*OptionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// newOptionError attaches a stack and a commonerrors classification.
// The classification lives in the cause chain so that errors.As for
// *OptionError still finds the outer value.
func newOptionError(kind ErrorKind, option string, value string, cause error) error {
	var classified error
	switch kind {
	case IllegalOption, UnsupportedShape:
		classified = commonerrors.ProgrammerError(withDetail(cause, kind))
	default:
		classified = commonerrors.UsageError(withDetail(cause, kind))
	}
	return errors.WithStack(&OptionError{
		Kind:   kind,
		Option: option,
		Value:  value,
		detail: cause,
		cause:  classified,
	})
}

func withDetail(cause error, kind ErrorKind) error {
	if cause == nil {
		return errors.New(kind.String())
	}
	return cause
}

func illegalOption(option string, reason string) error {
	return newOptionError(IllegalOption, option, "", errors.New(reason))
}

func unsupportedShape(option string, reason string) error {
	return newOptionError(UnsupportedShape, option, "", errors.New(reason))
}

func insufficientArguments(option string) error {
	return newOptionError(InsufficientArguments, option, "", nil)
}

func tooManyArguments(option string) error {
	return newOptionError(TooManyArguments, option, "", nil)
}

func illegalValue(option string, value string, cause error) error {
	return newOptionError(IllegalValue, option, value, cause)
}

// AsOptionError extracts the *OptionError from err, if any
func AsOptionError(err error) (*OptionError, bool) {
	var oe *OptionError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// IsUsageError reports if err was caused by the command line itself
// (as opposed to a bad schema).  When you have a usage error, you
// should display the program usage help text.
func IsUsageError(err error) bool {
	oe, ok := AsOptionError(err)
	if !ok {
		var ve validationError
		return errors.As(err, &ve)
	}
	switch oe.Kind {
	case InsufficientArguments, TooManyArguments, IllegalValue:
		return true
	default:
		return false
	}
}

type validationError struct {
	cause error
}

func (v validationError) Error() string { return v.cause.Error() }
func (v validationError) Unwrap() error { return v.cause }
func (v validationError) Cause() error  { return v.cause }
