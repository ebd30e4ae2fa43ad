package nargs

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsIs(t *testing.T) {
	_, err := ParseOptions([]OptionDescriptor{ScalarOption("p", Int, nil)}, []string{"-p", "1", "2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyArguments))
	assert.False(t, errors.Is(err, ErrInsufficientArguments))
	assert.False(t, errors.Is(err, ErrIllegalValue))

	wrapped := fmt.Errorf("startup: %w", err)
	assert.True(t, errors.Is(wrapped, ErrTooManyArguments), "through fmt wrapping")
	assert.True(t, IsUsageError(wrapped))
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		args   []string
		schema []OptionDescriptor
		want   string
		usage  bool
	}{
		{
			schema: []OptionDescriptor{ScalarOption("p", Int, nil)},
			args:   []string{"-p", "8080", "8081"},
			want:   "too many arguments: p",
			usage:  true,
		},
		{
			schema: []OptionDescriptor{ScalarOption("p", Int, nil)},
			args:   []string{"-p"},
			want:   "insufficient arguments: p",
			usage:  true,
		},
		{
			schema: []OptionDescriptor{ListOption("g", Int)},
			args:   []string{"-g", "this"},
			want:   `illegal value "this" for option g`,
			usage:  true,
		},
		{
			schema: []OptionDescriptor{ScalarOption("c", "complex128", nil)},
			want:   "unsupported shape: c: no parser for value kind 'complex128'",
		},
		{
			schema: []OptionDescriptor{BoolOption("l"), BoolOption("l")},
			want:   "illegal option: l: option defined more than once",
		},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			_, err := ParseOptions(tc.schema, tc.args)
			require.Error(t, err)
			if tc.usage {
				assert.Contains(t, err.Error(), tc.want)
			} else {
				assert.Equal(t, tc.want, err.Error())
			}
			assert.Equal(t, tc.usage, IsUsageError(err), "usage error")
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "illegal value", IllegalValue.String())
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

func TestIsUsageErrorUnrelated(t *testing.T) {
	assert.False(t, IsUsageError(nil))
	assert.False(t, IsUsageError(errors.New("something else")))
}
