package nargs

import (
	"reflect"
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

// boundOption is a descriptor with its elementary parsers already
// looked up.  It is built once by Compile.
type boundOption struct {
	OptionDescriptor
	flag  string
	elem  Elementary
	key   Elementary
	parse valueParser
}

// valueParser turns the argument vector into the value for one option
type valueParser func(o *boundOption, args []string) (interface{}, error)

var shapeParsers = map[ShapeKind]valueParser{
	BoolShape:   parseBool,
	ScalarShape: parseScalar,
	ListShape:   parseList,
	MapShape:    parseMap,
}

func parseBool(o *boundOption, args []string) (interface{}, error) {
	run, present := valueRuns(args, o.flag)
	if !present {
		return false, nil
	}
	if len(run) > 0 {
		return nil, tooManyArguments(o.Name)
	}
	return true, nil
}

func parseScalar(o *boundOption, args []string) (interface{}, error) {
	run, present := valueRuns(args, o.flag)
	if !present {
		if o.Shape.Default == nil {
			return reflect.Zero(o.elem.Type).Interface(), nil
		}
		return deepcopy.Copy(o.Shape.Default), nil
	}
	switch {
	case len(run) < 1:
		return nil, insufficientArguments(o.Name)
	case len(run) > 1:
		return nil, tooManyArguments(o.Name)
	}
	v, err := convert(o.Name, o.elem, run[0])
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func parseList(o *boundOption, args []string) (interface{}, error) {
	run, _ := valueRuns(args, o.flag)
	list := reflect.MakeSlice(reflect.SliceOf(o.elem.Type), len(run), len(run))
	for i, token := range run {
		v, err := convert(o.Name, o.elem, token)
		if err != nil {
			return nil, err
		}
		list.Index(i).Set(v)
	}
	return list.Interface(), nil
}

func parseMap(o *boundOption, args []string) (interface{}, error) {
	run, present := valueRuns(args, o.flag)
	if !present && o.Shape.Default != nil {
		return deepcopy.Copy(o.Shape.Default), nil
	}
	m := reflect.MakeMapWithSize(reflect.MapOf(o.key.Type, o.elem.Type), len(run))
	for _, token := range run {
		i := strings.IndexByte(token, '=')
		if i == -1 {
			return nil, illegalValue(o.Name, token, errors.New("expecting key=value"))
		}
		k, err := apply(o.key, token[:i])
		if err != nil {
			return nil, illegalValue(o.Name, token, errors.Wrap(err, "key"))
		}
		v, err := apply(o.elem, token[i+1:])
		if err != nil {
			return nil, illegalValue(o.Name, token, errors.Wrap(err, "value"))
		}
		debugf("parse map %s: %s = %s", o.Name, token[:i], token[i+1:])
		m.SetMapIndex(k, v)
	}
	return m.Interface(), nil
}

// convert applies an elementary parser to one token
func convert(option string, e Elementary, token string) (reflect.Value, error) {
	v, err := apply(e, token)
	if err != nil {
		return reflect.Value{}, illegalValue(option, token, err)
	}
	return v, nil
}

// apply runs the parser and checks the type of what comes back.
// A panic from a caller-supplied parser becomes an error.
func apply(e Elementary, token string) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("parser panic: %v", r)
		}
	}()
	raw, err := e.Parse(token)
	if err != nil {
		return reflect.Value{}, err
	}
	if raw == nil {
		return reflect.Zero(e.Type), nil
	}
	v = reflect.ValueOf(raw)
	if !v.Type().AssignableTo(e.Type) {
		return reflect.Value{}, errors.Errorf("parser returned %s, expected %s", v.Type(), e.Type)
	}
	if v.Type() != e.Type {
		n := reflect.New(e.Type).Elem()
		n.Set(v)
		v = n
	}
	return v, nil
}
