package nargs

import (
	"github.com/pkg/errors"
)

// Result holds the parsed value of every option in a schema.  Values
// are keyed by option name; Names and Values iterate in declaration
// order.
type Result struct {
	names   []string
	values  map[string]interface{}
	present map[string]bool
}

func newResult(n int) *Result {
	return &Result{
		names:   make([]string, 0, n),
		values:  make(map[string]interface{}, n),
		present: make(map[string]bool, n),
	}
}

func (r *Result) add(name string, v interface{}, present bool) {
	r.names = append(r.names, name)
	r.values[name] = v
	r.present[name] = present
}

// Present reports whether the option's flag appeared in the
// argument vector.  It is false for options that got their default.
func (r *Result) Present(name string) bool {
	return r.present[name]
}

// Get returns the value for name.  Options that were not given on
// the command line still have a value: their default.
func (r *Result) Get(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *Result) Len() int { return len(r.names) }

// Names returns option names in declaration order
func (r *Result) Names() []string {
	n := make([]string, len(r.names))
	copy(n, r.names)
	return n
}

// Values returns option values in declaration order
func (r *Result) Values() []interface{} {
	v := make([]interface{}, len(r.names))
	for i, name := range r.names {
		v[i] = r.values[name]
	}
	return v
}

// Map returns a copy of the name to value mapping
func (r *Result) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Value fetches a typed value from a Result
//
//	port, err := nargs.Value[int](res, "port")
func Value[T any](r *Result, name string) (T, error) {
	var zero T
	v, ok := r.values[name]
	if !ok {
		return zero, errors.Errorf("no option named %s", name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Errorf("option %s is %T, not %T", name, v, zero)
	}
	return t, nil
}
