package nargs

import (
	"reflect"
	"strings"

	"github.com/AlekSi/pointer"
	"github.com/muir/commonerrors"
	"github.com/muir/nject"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Validate is a subset of the Validate provided by
// https://github.com/go-playground/validator, allowing
// other implementations to be provided if desired
type Validate interface {
	Struct(s interface{}) error
}

// Binder fills structs from the command line.  The options are found
// in struct tags, by default with the "arg" prefix:
//
//	type Options struct {
//		Logging   bool           `arg:"l"`
//		Port      int            `arg:"port,double"` // --port 8080
//		Directory string         `arg:"d"`
//		Groups    []string       `arg:"g"`           // -g this is a list
//		Defines   map[string]int `arg:"D"`           // -D a=1 b=2
//		internal  string
//	}
//
// The first tag value is the option name.  When empty, the lowercased
// field name is used.  "double" selects the --name format and "single"
// (or "!double") the -name format.  A tag of "-" skips the field.
//
// Every exported field must have a tag: an untagged exported field is
// an IllegalOption error.  The current value of each field is its
// default, so set defaults before calling Bind.
type Binder struct {
	tagName    string
	resolver   *Resolver
	validator  Validate
	doubleDash bool
	onBound    func(*Binder, *Result) error
	delayedErr error
}

type BinderOpt func(*Binder) error

// WithTagName overrides the struct tag used to find options
func WithTagName(tag string) BinderOpt {
	return func(b *Binder) error {
		if tag == "" {
			return commonerrors.ProgrammerError(errors.New("tag name cannot be empty"))
		}
		b.tagName = tag
		return nil
	}
}

// WithResolver supplies the resolver (and thus the elementary parser
// table) used by the binder.  Field types that are not in the table
// get parsers from reflectutils.
func WithResolver(r *Resolver) BinderOpt {
	return func(b *Binder) error {
		b.resolver = r
		return nil
	}
}

// WithValidate runs a validator over the struct once it is filled
func WithValidate(v Validate) BinderOpt {
	return func(b *Binder) error {
		b.validator = v
		return nil
	}
}

// WithDoubleDash makes --name the default format for all fields.
// Fields can still opt out with "single".
func WithDoubleDash() BinderOpt {
	return func(b *Binder) error {
		b.doubleDash = true
		return nil
	}
}

// OnBound is called after a successful Bind (and validation).  The
// chain is an nject chain and may take *Binder and *Result as inputs.
func OnBound(chain ...interface{}) BinderOpt {
	return func(b *Binder) error {
		return nject.Sequence("default-error-responder",
			nject.Provide("default-error", func() nject.TerminalError {
				return nil
			})).Append("on-bound", chain...).Bind(&b.onBound, nil)
	}
}

func NewBinder(opts ...BinderOpt) *Binder {
	b := &Binder{
		tagName: "arg",
	}
	for _, f := range opts {
		err := f(b)
		if err != nil {
			b.delayedErr = err
			break
		}
	}
	if b.resolver == nil {
		b.resolver = defaultResolver
	}
	return b
}

type argTag struct {
	Name   string `pt:"0"`
	Double *bool  `pt:"double,!single"`
}

// boundField ties an option back to the struct field it fills
type boundField struct {
	option string
	index  []int
}

// Schema derives the option descriptors for a model.  model must be
// a non-nil pointer to a struct.
func (b *Binder) Schema(model interface{}) ([]OptionDescriptor, error) {
	d, _, _, err := b.walk(model)
	return d, err
}

func (b *Binder) walk(model interface{}) ([]OptionDescriptor, []boundField, *Resolver, error) {
	if b.delayedErr != nil {
		return nil, nil, nil, b.delayedErr
	}
	v := reflect.ValueOf(model)
	if !v.IsValid() || v.Type().Kind() != reflect.Ptr || v.IsNil() || v.Type().Elem().Kind() != reflect.Struct {
		return nil, nil, nil, commonerrors.ProgrammerError(errors.Errorf(
			"model must be a non-nil pointer to a struct, not %T", model))
	}
	elem := v.Elem()
	parsers := b.resolver.parsers.clone()
	var descriptors []OptionDescriptor
	var fields []boundField
	var walkErr error
	debug("bind: walking", v.Type())
	reflectutils.WalkStructElements(v.Type(), func(f reflect.StructField) bool {
		if walkErr != nil {
			return false
		}
		if f.PkgPath != "" {
			return false
		}
		tag := reflectutils.SplitTag(f.Tag).Set().Get(b.tagName)
		if tag.Tag == "" {
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				return true
			}
			walkErr = illegalOption(f.Name, "exported field has no "+b.tagName+" tag")
			return false
		}
		if tag.Value == "-" {
			return false
		}
		at := argTag{
			Double: pointer.ToBool(b.doubleDash),
		}
		err := tag.Fill(&at)
		if err != nil {
			walkErr = commonerrors.ProgrammerError(errors.Wrap(err, f.Name))
			return false
		}
		if at.Name == "" {
			at.Name = strings.ToLower(f.Name)
		}
		d, err := describeField(at, f, elem.FieldByIndex(f.Index), parsers)
		if err != nil {
			walkErr = err
			return false
		}
		debugf("bind: field %s -> %s", f.Name, d)
		descriptors = append(descriptors, d)
		fields = append(fields, boundField{
			option: d.Name,
			index:  f.Index,
		})
		return false
	})
	if walkErr != nil {
		return nil, nil, nil, walkErr
	}
	return descriptors, fields, &Resolver{parsers: parsers}, nil
}

func describeField(at argTag, f reflect.StructField, current reflect.Value, parsers Parsers) (OptionDescriptor, error) {
	d := OptionDescriptor{
		Name: at.Name,
	}
	if pointer.GetBool(at.Double) {
		d.Format = DoubleDash
	}
	register := func(t reflect.Type) (ValueKind, error) {
		kind := kindFor(t)
		if e, ok := parsers[kind]; ok && e.Type == t {
			return kind, nil
		}
		e, err := ElementaryFor(t)
		if err != nil {
			return "", unsupportedShape(at.Name, "cannot parse "+t.String()+" for field "+f.Name)
		}
		parsers[kind] = e
		return kind, nil
	}
	var err error
	t := f.Type
	switch t.Kind() {
	case reflect.Bool:
		d.Shape.Kind = BoolShape
		return d, nil
	case reflect.Slice, reflect.Array:
		d.Shape.Kind = ListShape
		d.Shape.Elem, err = register(t.Elem())
		return d, err
	case reflect.Map:
		d.Shape.Kind = MapShape
		d.Shape.Key, err = register(t.Key())
		if err != nil {
			return d, err
		}
		d.Shape.Elem, err = register(t.Elem())
	default:
		d.Shape.Kind = ScalarShape
		d.Shape.Elem, err = register(t)
	}
	if err == nil && !current.IsZero() {
		d.Shape.Default = current.Interface()
	}
	return d, err
}

// kindFor names the value kind for a type.  Builtin types use their
// plain names so that they share the default table entries.
func kindFor(t reflect.Type) ValueKind {
	if t.PkgPath() == "" {
		return ValueKind(t.String())
	}
	return ValueKind(t.PkgPath() + "." + t.Name())
}

// Bind parses args into model.  Fields whose flags do not appear keep
// their current values.  The fields are filled and validated on a copy
// of the model so that model is only written when Bind succeeds.
func (b *Binder) Bind(model interface{}, args []string) (*Result, error) {
	descriptors, fields, resolver, err := b.walk(model)
	if err != nil {
		return nil, err
	}
	res, err := resolver.Parse(descriptors, args)
	if err != nil {
		return nil, err
	}
	if debugging {
		debug("bind: parsed", res.Map())
	}
	elem := reflect.ValueOf(model).Elem()
	work := reflect.New(elem.Type())
	work.Elem().Set(elem)
	for _, f := range fields {
		if !res.Present(f.option) {
			continue
		}
		raw, _ := res.Get(f.option)
		err := assign(work.Elem().FieldByIndex(f.index), raw, f.option)
		if err != nil {
			return nil, err
		}
	}
	if b.validator != nil {
		err := b.validator.Struct(work.Interface())
		if err != nil {
			return nil, validationError{
				cause: commonerrors.UsageError(errors.Wrap(err, elem.Type().String())),
			}
		}
	}
	elem.Set(work.Elem())
	if b.onBound != nil {
		err := b.onBound(b, res)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func assign(field reflect.Value, raw interface{}, option string) error {
	if raw == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	v := reflect.ValueOf(raw)
	if field.Kind() == reflect.Array {
		switch {
		case v.Len() < field.Len():
			return insufficientArguments(option)
		case v.Len() > field.Len():
			return tooManyArguments(option)
		}
		a := reflect.New(field.Type()).Elem()
		reflect.Copy(a, v)
		field.Set(a)
		return nil
	}
	if v.Type() != field.Type() {
		if !v.Type().ConvertibleTo(field.Type()) {
			return commonerrors.LibraryError(errors.Errorf(
				"internal error: cannot assign %s to %s for %s", v.Type(), field.Type(), option))
		}
		v = v.Convert(field.Type())
	}
	field.Set(v)
	return nil
}

// Bind fills model from args using a default Binder
func Bind(model interface{}, args []string) error {
	_, err := NewBinder().Bind(model, args)
	return err
}
