// Package schemafile reads option schemas written in YAML:
//
//	options:
//	  - name: l
//	    shape: bool
//	  - name: port
//	    double: true
//	    shape: scalar
//	    elem: int
//	    default: "8080"
//	  - name: D
//	    shape: map
//	    key: string
//	    elem: int
//	    default:
//	      a: "1"
//
// Defaults are written as strings and converted with the same
// elementary parsers that convert command line tokens.
package schemafile

import (
	"io"
	"reflect"

	"github.com/muir/commonerrors"
	"github.com/muir/nargs"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type File struct {
	Options []Option `yaml:"options"`
}

type Option struct {
	Name    string    `yaml:"name"`
	Double  bool      `yaml:"double"`
	Shape   string    `yaml:"shape"`
	Elem    string    `yaml:"elem"`
	Key     string    `yaml:"key"`
	Default yaml.Node `yaml:"default"`
}

var shapes = map[string]nargs.ShapeKind{
	"bool":   nargs.BoolShape,
	"scalar": nargs.ScalarShape,
	"list":   nargs.ListShape,
	"map":    nargs.MapShape,
}

// Load decodes a schema file and converts it to descriptors.  Value
// kinds are looked up in parsers.
func Load(r io.Reader, parsers nargs.Parsers) ([]nargs.OptionDescriptor, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, commonerrors.ConfigurationError(errors.Wrap(err, "decode schema"))
	}
	descriptors := make([]nargs.OptionDescriptor, 0, len(f.Options))
	for i, o := range f.Options {
		d, err := o.descriptor(parsers)
		if err != nil {
			return nil, commonerrors.ConfigurationError(errors.Wrapf(err, "option %d (%s)", i+1, o.Name))
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func (o Option) descriptor(parsers nargs.Parsers) (nargs.OptionDescriptor, error) {
	kind, ok := shapes[o.Shape]
	if !ok {
		return nargs.OptionDescriptor{}, errors.Errorf("unknown shape '%s'", o.Shape)
	}
	d := nargs.OptionDescriptor{
		Name: o.Name,
		Shape: nargs.Shape{
			Kind: kind,
			Elem: nargs.ValueKind(o.Elem),
			Key:  nargs.ValueKind(o.Key),
		},
	}
	if o.Double {
		d.Format = nargs.DoubleDash
	}
	// elem and key default to string
	if o.Elem == "" && kind != nargs.BoolShape {
		d.Shape.Elem = nargs.String
	}
	if o.Key == "" && kind == nargs.MapShape {
		d.Shape.Key = nargs.String
	}
	if o.Default.Kind == 0 {
		return d, nil
	}
	var err error
	switch kind {
	case nargs.ScalarShape:
		d.Shape.Default, err = scalarDefault(&o.Default, parsers, d.Shape.Elem)
	case nargs.MapShape:
		d.Shape.Default, err = mapDefault(&o.Default, parsers, d.Shape.Key, d.Shape.Elem)
	default:
		err = errors.Errorf("%s options do not take a default", o.Shape)
	}
	return d, err
}

func lookup(parsers nargs.Parsers, kind nargs.ValueKind) (nargs.Elementary, error) {
	e, ok := parsers[kind]
	if !ok || e.Type == nil || e.Parse == nil {
		return e, errors.Errorf("no parser for value kind '%s'", kind)
	}
	return e, nil
}

// parse runs an elementary parser and converts the result to e.Type
func parse(e nargs.Elementary, token string) (reflect.Value, error) {
	raw, err := e.Parse(token)
	if err != nil {
		return reflect.Value{}, err
	}
	if raw == nil {
		return reflect.Zero(e.Type), nil
	}
	v := reflect.ValueOf(raw)
	if !v.Type().AssignableTo(e.Type) {
		return reflect.Value{}, errors.Errorf("parser returned %s, expected %s", v.Type(), e.Type)
	}
	n := reflect.New(e.Type).Elem()
	n.Set(v)
	return n, nil
}

func scalarDefault(node *yaml.Node, parsers nargs.Parsers, kind nargs.ValueKind) (interface{}, error) {
	e, err := lookup(parsers, kind)
	if err != nil {
		return nil, err
	}
	var s string
	err = node.Decode(&s)
	if err != nil {
		return nil, errors.Wrap(err, "default")
	}
	v, err := parse(e, s)
	if err != nil {
		return nil, errors.Wrapf(err, "default %q", s)
	}
	return v.Interface(), nil
}

func mapDefault(node *yaml.Node, parsers nargs.Parsers, keyKind, valueKind nargs.ValueKind) (interface{}, error) {
	ke, err := lookup(parsers, keyKind)
	if err != nil {
		return nil, err
	}
	ve, err := lookup(parsers, valueKind)
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	err = node.Decode(&raw)
	if err != nil {
		return nil, errors.Wrap(err, "default")
	}
	m := reflect.MakeMapWithSize(reflect.MapOf(ke.Type, ve.Type), len(raw))
	for k, v := range raw {
		key, err := parse(ke, k)
		if err != nil {
			return nil, errors.Wrapf(err, "default key %q", k)
		}
		value, err := parse(ve, v)
		if err != nil {
			return nil, errors.Wrapf(err, "default value %q", v)
		}
		m.SetMapIndex(key, value)
	}
	return m.Interface(), nil
}
