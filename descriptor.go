package nargs

import "fmt"

// Format selects how a flag is written on the command line
type Format int

const (
	// SingleDash flags look like -name
	SingleDash Format = iota
	// DoubleDash flags look like --name
	DoubleDash
)

func (f Format) prefix() (string, bool) {
	switch f {
	case SingleDash:
		return "-", true
	case DoubleDash:
		return "--", true
	default:
		return "", false
	}
}

func (f Format) String() string {
	switch f {
	case SingleDash:
		return "single-dash"
	case DoubleDash:
		return "double-dash"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ShapeKind is the tag of the Shape variant
type ShapeKind int

const (
	_ ShapeKind = iota
	BoolShape
	ScalarShape
	ListShape
	MapShape
)

func (k ShapeKind) String() string {
	switch k {
	case BoolShape:
		return "bool"
	case ScalarShape:
		return "scalar"
	case ListShape:
		return "list"
	case MapShape:
		return "map"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape describes how an option's values are counted and converted.
//
// Elem is the value kind for scalars, list elements, and map values.
// Key is only used for maps.  Default is the caller-supplied default
// for scalars and maps; when nil the zero value (or an empty map) is
// used.  Bool and List shapes ignore Default: absent booleans are
// false and absent lists are empty.
type Shape struct {
	Kind    ShapeKind
	Elem    ValueKind
	Key     ValueKind
	Default interface{}
}

func (s Shape) String() string {
	switch s.Kind {
	case BoolShape:
		return "Bool"
	case ScalarShape:
		return "Scalar<" + string(s.Elem) + ">"
	case ListShape:
		return "List<" + string(s.Elem) + ">"
	case MapShape:
		return "Map<" + string(s.Key) + "," + string(s.Elem) + ">"
	default:
		return s.Kind.String()
	}
}

// OptionDescriptor is the static description of one option.  Name
// is the bare flag name, without leading dashes.
type OptionDescriptor struct {
	Name   string
	Format Format
	Shape  Shape
}

// BoolOption describes a presence flag: -name
func BoolOption(name string) OptionDescriptor {
	return OptionDescriptor{
		Name:  name,
		Shape: Shape{Kind: BoolShape},
	}
}

// ScalarOption describes a flag that takes exactly one value.
// defaultValue may be nil.
func ScalarOption(name string, kind ValueKind, defaultValue interface{}) OptionDescriptor {
	return OptionDescriptor{
		Name: name,
		Shape: Shape{
			Kind:    ScalarShape,
			Elem:    kind,
			Default: defaultValue,
		},
	}
}

// ListOption describes a flag that takes any number of values
func ListOption(name string, kind ValueKind) OptionDescriptor {
	return OptionDescriptor{
		Name: name,
		Shape: Shape{
			Kind: ListShape,
			Elem: kind,
		},
	}
}

// MapOption describes a flag whose values are key=value pairs.
// defaultValue may be nil.
func MapOption(name string, key ValueKind, value ValueKind, defaultValue interface{}) OptionDescriptor {
	return OptionDescriptor{
		Name: name,
		Shape: Shape{
			Kind:    MapShape,
			Key:     key,
			Elem:    value,
			Default: defaultValue,
		},
	}
}

// DoubleDash returns a copy of the descriptor that uses --name
func (d OptionDescriptor) DoubleDash() OptionDescriptor {
	d.Format = DoubleDash
	return d
}

// Flag renders the token that introduces this option, eg "-p" or "--port"
func (d OptionDescriptor) Flag() string {
	p, _ := d.Format.prefix()
	return p + d.Name
}

func (d OptionDescriptor) String() string {
	return d.Flag() + " " + d.Shape.String()
}
