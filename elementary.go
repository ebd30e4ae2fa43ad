package nargs

import (
	"reflect"

	"github.com/muir/commonerrors"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// ValueKind names an elementary value kind.  Kinds are keys into
// a Parsers table.
type ValueKind string

const (
	Int     ValueKind = "int"
	String  ValueKind = "string"
	Int64   ValueKind = "int64"
	Uint    ValueKind = "uint"
	Float64 ValueKind = "float64"
	Bool    ValueKind = "bool"
)

// Elementary converts a single token into a value of Type.  Parse must
// return a value assignable to Type.
type Elementary struct {
	Type  reflect.Type
	Parse func(string) (interface{}, error)
}

// Parsers maps value kinds to elementary parsers.  A Parsers table is
// handed to a Resolver; there is no global registry.
type Parsers map[ValueKind]Elementary

// DefaultParsers returns a new table with the built-in kinds
func DefaultParsers() Parsers {
	p := make(Parsers)
	for kind, v := range map[ValueKind]interface{}{
		Int:     int(0),
		Int64:   int64(0),
		Uint:    uint(0),
		Float64: float64(0),
		Bool:    false,
	} {
		e, err := ElementaryFor(reflect.TypeOf(v))
		if err != nil {
			// reflectutils supports all numeric kinds
			panic(commonerrors.LibraryError(errors.Wrap(err, string(kind))))
		}
		p[kind] = e
	}
	p[String] = Elementary{
		Type: reflect.TypeOf(""),
		Parse: func(s string) (interface{}, error) {
			return s, nil
		},
	}
	return p
}

// With returns a copy of the table with kind added or replaced
func (p Parsers) With(kind ValueKind, e Elementary) Parsers {
	n := p.clone()
	n[kind] = e
	return n
}

func (p Parsers) clone() Parsers {
	n := make(Parsers, len(p)+1)
	for k, v := range p {
		n[k] = v
	}
	return n
}

// ElementaryFor builds an elementary parser for any type that
// reflectutils.MakeStringSetter can handle: numbers, strings, bools,
// and types implementing encoding.TextUnmarshaler.
func ElementaryFor(t reflect.Type) (Elementary, error) {
	setter, err := reflectutils.MakeStringSetter(t)
	if err != nil {
		return Elementary{}, errors.Wrap(err, t.String())
	}
	return Elementary{
		Type: t,
		Parse: func(s string) (interface{}, error) {
			v := reflect.New(t).Elem()
			err := setter(v, s)
			if err != nil {
				return nil, err
			}
			return v.Interface(), nil
		},
	}, nil
}

// Func adapts a plain conversion function into an Elementary
func Func[T any](parse func(string) (T, error)) Elementary {
	var zero T
	return Elementary{
		Type: reflect.TypeOf(&zero).Elem(),
		Parse: func(s string) (interface{}, error) {
			v, err := parse(s)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}
