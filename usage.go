package nargs

import (
	"fmt"
	"strings"
)

// Usage renders a one-line synopsis followed by one line per option.
// Presenting it is up to the caller; nothing here writes output.
//
//	Usage: server [-l] [-p int] [-g string...]
//
//	Options:
//	    -l                  Bool
//	    -p int              Scalar<int> (default 8080)
//	    -g string...        List<string>
func (s *Schema) Usage(program string) string {
	synopsis := make([]string, 0, len(s.options)+1)
	synopsis = append(synopsis, "Usage:", program)
	lines := make([]string, 0, len(s.options)+3)
	for _, o := range s.options {
		f := o.format()
		synopsis = append(synopsis, "["+f+"]")
		lines = append(lines, fmt.Sprintf("    %-20s %s", f, strings.Join(notEmpty(
			o.Shape.String(),
			describeDefault(o),
		), " ")))
	}
	usage := strings.Join(synopsis, " ") + "\n"
	if len(lines) > 0 {
		usage += "\nOptions:\n" + strings.Join(lines, "\n") + "\n"
	}
	return usage
}

func (o *boundOption) format() string {
	switch o.Shape.Kind {
	case BoolShape:
		return o.flag
	case ScalarShape:
		return o.flag + " " + describeArg(o.elem, o.Shape.Elem)
	case ListShape:
		return o.flag + " " + describeArg(o.elem, o.Shape.Elem) + "..."
	case MapShape:
		return o.flag + " " + describeArg(o.key, o.Shape.Key) + "=" + describeArg(o.elem, o.Shape.Elem) + "..."
	default:
		return o.flag
	}
}

func describeArg(e Elementary, kind ValueKind) string {
	if e.Type == nil {
		return string(kind)
	}
	return e.Type.String()
}

func describeDefault(o *boundOption) string {
	if o.Shape.Default == nil {
		return ""
	}
	switch o.Shape.Kind {
	case ScalarShape, MapShape:
		return fmt.Sprintf("(default %v)", o.Shape.Default)
	default:
		return ""
	}
}
