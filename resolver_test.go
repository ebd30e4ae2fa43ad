package nargs

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMultiOptions(t *testing.T) {
	schema := []OptionDescriptor{
		BoolOption("l"),
		ScalarOption("p", Int, nil),
		ScalarOption("d", String, nil),
	}
	res, err := ParseOptions(schema, strings.Fields("-l -p 8080 -d /usr/logs"))
	require.NoError(t, err)
	assert.Equal(t, []string{"l", "p", "d"}, res.Names())
	assert.Equal(t, []interface{}{true, 8080, "/usr/logs"}, res.Values())
	assert.Equal(t, 3, res.Len())
}

func TestParseListOptions(t *testing.T) {
	schema := []OptionDescriptor{
		ListOption("g", String),
		ListOption("d", Int),
	}
	res, err := ParseOptions(schema, strings.Fields("-g this is a list -d 1 2 -3 5"))
	require.NoError(t, err)
	g, err := Value[[]string](res, "g")
	require.NoError(t, err)
	assert.Equal(t, []string{"this", "is", "a", "list"}, g)
	d, err := Value[[]int](res, "d")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, -3, 5}, d)
}

func TestParseDefaults(t *testing.T) {
	schema := []OptionDescriptor{
		BoolOption("l"),
		ScalarOption("p", Int, 8080),
		ScalarOption("d", String, "/var/log"),
		ListOption("g", String),
		MapOption("D", String, String, map[string]string{"mode": "fast"}),
	}
	res, err := ParseOptions(schema, nil)
	require.NoError(t, err)
	want := map[string]interface{}{
		"l": false,
		"p": 8080,
		"d": "/var/log",
		"g": []string{},
		"D": map[string]string{"mode": "fast"},
	}
	if diff := cmp.Diff(want, res.Map()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	for _, name := range res.Names() {
		assert.Falsef(t, res.Present(name), "%s present", name)
	}
}

func TestParseMixedFormats(t *testing.T) {
	schema := []OptionDescriptor{
		BoolOption("verbose").DoubleDash(),
		ScalarOption("port", Int, nil).DoubleDash(),
		ListOption("g", Int),
	}
	res, err := ParseOptions(schema, strings.Fields("-g 1 -2 --port 8080 --verbose"))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{true, 8080, []int{1, -2}}, res.Values())
	assert.True(t, res.Present("port"))
}

func TestParseFailFast(t *testing.T) {
	schema := []OptionDescriptor{
		ScalarOption("p", Int, nil),
		ScalarOption("q", Int, nil),
	}
	res, err := ParseOptions(schema, strings.Fields("-q 1 2 -p x"))
	assert.Nil(t, res)
	oe := requireOptionError(t, err, IllegalValue, "p")
	assert.Equal(t, "x", oe.Value)
}

func TestParseIdempotent(t *testing.T) {
	s, err := NewResolver().Compile([]OptionDescriptor{
		BoolOption("l"),
		ListOption("g", Int),
		MapOption("D", String, Int, nil),
	})
	require.NoError(t, err)
	args := strings.Fields("-l -g 3 1 2 -D a=1 b=2")
	first, err := s.Parse(args)
	require.NoError(t, err)
	second, err := s.Parse(args)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseConcurrent(t *testing.T) {
	s, err := NewResolver().Compile([]OptionDescriptor{
		ScalarOption("p", Int, nil),
		ListOption("g", String),
	})
	require.NoError(t, err)
	var wg sync.WaitGroup
	results := make([]*Result, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.Parse([]string{"-p", "80", "-g", "a", "b"})
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
}

func TestCompileErrors(t *testing.T) {
	r := NewResolver(WithParser("strs", Elementary{
		Type: reflect.TypeOf([]string{}),
		Parse: func(s string) (interface{}, error) {
			return strings.Split(s, ","), nil
		},
	}))
	cases := []struct {
		name   string
		schema []OptionDescriptor
		kind   ErrorKind
		option string
	}{
		{
			name:   "empty name",
			schema: []OptionDescriptor{BoolOption("")},
			kind:   IllegalOption,
		},
		{
			name:   "name with dash",
			schema: []OptionDescriptor{BoolOption("dry-run")},
			kind:   IllegalOption,
			option: "dry-run",
		},
		{
			name:   "name with leading dash",
			schema: []OptionDescriptor{BoolOption("-l")},
			kind:   IllegalOption,
			option: "-l",
		},
		{
			name:   "duplicate",
			schema: []OptionDescriptor{BoolOption("l"), ScalarOption("l", Int, nil).DoubleDash()},
			kind:   IllegalOption,
			option: "l",
		},
		{
			name:   "bad format",
			schema: []OptionDescriptor{{Name: "l", Format: Format(7), Shape: Shape{Kind: BoolShape}}},
			kind:   IllegalOption,
			option: "l",
		},
		{
			name:   "unknown shape",
			schema: []OptionDescriptor{{Name: "l"}},
			kind:   UnsupportedShape,
			option: "l",
		},
		{
			name:   "unknown value kind",
			schema: []OptionDescriptor{ScalarOption("c", "complex128", nil)},
			kind:   UnsupportedShape,
			option: "c",
		},
		{
			name:   "unknown map key kind",
			schema: []OptionDescriptor{MapOption("m", "nope", Int, nil)},
			kind:   UnsupportedShape,
			option: "m",
		},
		{
			name:   "incomparable map key",
			schema: []OptionDescriptor{MapOption("m", "strs", Int, nil)},
			kind:   UnsupportedShape,
			option: "m",
		},
		{
			name:   "default of wrong type",
			schema: []OptionDescriptor{ScalarOption("p", Int, "8080")},
			kind:   UnsupportedShape,
			option: "p",
		},
		{
			name:   "map default of wrong type",
			schema: []OptionDescriptor{MapOption("D", String, Int, map[string]string{})},
			kind:   UnsupportedShape,
			option: "D",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := r.Compile(tc.schema)
			assert.Nil(t, s)
			requireOptionError(t, err, tc.kind, tc.option)
			assert.False(t, IsUsageError(err), "schema errors are not usage errors")
		})
	}
}

func TestSchemaDescriptors(t *testing.T) {
	schema := []OptionDescriptor{
		BoolOption("l"),
		ScalarOption("port", Int, 80).DoubleDash(),
	}
	assert.Equal(t, "-l", schema[0].Flag())
	assert.Equal(t, "--port Scalar<int>", schema[1].String())
	s := NewResolver().MustCompile(schema)
	if diff := cmp.Diff(schema, s.Descriptors()); diff != "" {
		t.Errorf("descriptors (-want +got):\n%s", diff)
	}
	assert.Panics(t, func() {
		NewResolver().MustCompile([]OptionDescriptor{BoolOption("")})
	})
}

func TestWithParsersReplacesTable(t *testing.T) {
	r := NewResolver(WithParsers(Parsers{
		String: DefaultParsers()[String],
	}))
	_, err := r.Compile([]OptionDescriptor{ScalarOption("p", Int, nil)})
	requireOptionError(t, err, UnsupportedShape, "p")
	_, err = r.Compile([]OptionDescriptor{ScalarOption("d", String, nil)})
	assert.NoError(t, err)
}

func TestResultAccessors(t *testing.T) {
	res, err := ParseOptions([]OptionDescriptor{
		ScalarOption("p", Int, nil),
	}, []string{"-p", "1"})
	require.NoError(t, err)

	_, err = Value[string](res, "p")
	assert.Error(t, err, "wrong type")
	_, err = Value[int](res, "missing")
	assert.Error(t, err, "missing option")

	m := res.Map()
	m["p"] = 2
	v, ok := res.Get("p")
	require.True(t, ok)
	assert.Equal(t, 1, v, "Map returns a copy")

	_, ok = res.Get("missing")
	assert.False(t, ok)
}
