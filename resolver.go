package nargs

import (
	"reflect"

	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
)

// Resolver binds option descriptors to parsers.  A Resolver is
// immutable after construction and may be shared between goroutines.
type Resolver struct {
	parsers Parsers
}

type ResolverOpt func(*Resolver)

// WithParsers replaces the whole elementary parser table
func WithParsers(p Parsers) ResolverOpt {
	return func(r *Resolver) {
		r.parsers = p.clone()
	}
}

// WithParser adds (or replaces) one elementary parser
func WithParser(kind ValueKind, e Elementary) ResolverOpt {
	return func(r *Resolver) {
		r.parsers = r.parsers.With(kind, e)
	}
}

func NewResolver(opts ...ResolverOpt) *Resolver {
	r := &Resolver{
		parsers: DefaultParsers(),
	}
	for _, f := range opts {
		f(r)
	}
	return r
}

// Schema is a compiled, ordered set of options.  Compile once
// and Parse as often as needed.
type Schema struct {
	options []*boundOption
}

// Compile checks the descriptors and looks up their parsers.  Problems
// with the schema itself are reported as IllegalOption or
// UnsupportedShape errors; the first one found is returned.
func (r *Resolver) Compile(descriptors []OptionDescriptor) (*Schema, error) {
	s := &Schema{
		options: make([]*boundOption, 0, len(descriptors)),
	}
	seen := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		o, err := r.bind(d)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[d.Name]; dup {
			return nil, illegalOption(d.Name, "option defined more than once")
		}
		seen[d.Name] = struct{}{}
		s.options = append(s.options, o)
	}
	return s, nil
}

func (r *Resolver) bind(d OptionDescriptor) (*boundOption, error) {
	prefix, ok := d.Format.prefix()
	if !ok {
		return nil, illegalOption(d.Name, "unknown format "+d.Format.String())
	}
	if d.Name == "" {
		return nil, illegalOption(d.Name, "option name is empty")
	}
	if !optionNameRE.MatchString(d.Name) {
		return nil, illegalOption(d.Name, "option names must be letters only")
	}
	flag := prefix + d.Name
	parse, ok := shapeParsers[d.Shape.Kind]
	if !ok {
		return nil, unsupportedShape(d.Name, "unknown shape "+d.Shape.Kind.String())
	}
	o := &boundOption{
		OptionDescriptor: d,
		flag:             flag,
		parse:            parse,
	}
	lookup := func(kind ValueKind) (Elementary, error) {
		e, ok := r.parsers[kind]
		if !ok || e.Type == nil || e.Parse == nil {
			return Elementary{}, unsupportedShape(d.Name, "no parser for value kind '"+string(kind)+"'")
		}
		return e, nil
	}
	var err error
	switch d.Shape.Kind {
	case BoolShape:
		return o, nil
	case MapShape:
		o.key, err = lookup(d.Shape.Key)
		if err != nil {
			return nil, err
		}
		if !o.key.Type.Comparable() {
			return nil, unsupportedShape(d.Name, "map key type "+o.key.Type.String()+" is not comparable")
		}
	}
	o.elem, err = lookup(d.Shape.Elem)
	if err != nil {
		return nil, err
	}
	if d.Shape.Default != nil && d.Shape.Kind != ListShape {
		want := o.elem.Type
		if d.Shape.Kind == MapShape {
			want = reflect.MapOf(o.key.Type, o.elem.Type)
		}
		if got := reflect.TypeOf(d.Shape.Default); !got.AssignableTo(want) {
			return nil, unsupportedShape(d.Name, "default is "+got.String()+", expected "+want.String())
		}
	}
	debugf("compile: %s", d)
	return o, nil
}

// Parse resolves every option against args, in declaration order.
// The first failure aborts the parse and no partial result is returned.
func (s *Schema) Parse(args []string) (*Result, error) {
	res := newResult(len(s.options))
	for _, o := range s.options {
		v, err := o.parse(o, args)
		if err != nil {
			debugf("parse: %s failed: %s", o.flag, err)
			return nil, err
		}
		res.add(o.Name, v, containsFlag(args, o.flag))
	}
	return res, nil
}

// Descriptors returns the options in declaration order
func (s *Schema) Descriptors() []OptionDescriptor {
	d := make([]OptionDescriptor, len(s.options))
	for i, o := range s.options {
		d[i] = o.OptionDescriptor
	}
	return d
}

// Parse compiles and then parses in one step
func (r *Resolver) Parse(descriptors []OptionDescriptor, args []string) (*Result, error) {
	s, err := r.Compile(descriptors)
	if err != nil {
		return nil, err
	}
	return s.Parse(args)
}

var defaultResolver = NewResolver()

// ParseOptions parses args against schema using the default
// elementary parsers.
func ParseOptions(schema []OptionDescriptor, args []string) (*Result, error) {
	return defaultResolver.Parse(schema, args)
}

// MustCompile is like Compile but panics on error.  It is meant for
// schemas declared as package-level variables.
func (r *Resolver) MustCompile(descriptors []OptionDescriptor) *Schema {
	s, err := r.Compile(descriptors)
	if err != nil {
		panic(commonerrors.ProgrammerError(errors.Wrap(err, "compile schema")))
	}
	return s
}
