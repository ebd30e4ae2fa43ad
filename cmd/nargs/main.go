// Command nargs parses an argument vector against a schema file and
// prints the resulting values as YAML.  It is useful for checking how a
// schema treats a given command line:
//
//	nargs --schema server.yaml -- -l --port 9000 -g a b
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/muir/nargs"
	"github.com/muir/nargs/internal/schemafile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type app struct {
	schemaPath string
	program    string
	usage      bool
	noColor    bool
	out        io.Writer
	errOut     io.Writer
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nargs --schema FILE [--] [args...]",
		Short:         "Parse arguments against an option schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(args)
		},
	}
	cmd.Flags().StringVar(&a.schemaPath, "schema", "", "YAML schema file")
	cmd.Flags().StringVar(&a.program, "program", "program", "program name for usage output")
	cmd.Flags().BoolVar(&a.usage, "usage", false, "print usage for the schema and exit")
	cmd.Flags().BoolVar(&a.noColor, "no-color", false, "disable colored error output")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (a *app) run(args []string) error {
	if a.noColor {
		color.NoColor = true
	}
	f, err := os.Open(a.schemaPath)
	if err != nil {
		return errors.Wrap(err, "open schema")
	}
	defer f.Close()
	parsers := nargs.DefaultParsers()
	descriptors, err := schemafile.Load(f, parsers)
	if err != nil {
		return errors.Wrap(err, a.schemaPath)
	}
	schema, err := nargs.NewResolver(nargs.WithParsers(parsers)).Compile(descriptors)
	if err != nil {
		return errors.Wrap(err, a.schemaPath)
	}
	if a.usage {
		_, err := fmt.Fprint(a.out, schema.Usage(a.program))
		return err
	}
	res, err := schema.Parse(args)
	if err != nil {
		if nargs.IsUsageError(err) {
			fmt.Fprint(a.errOut, color.RedString("%s\n\n", err))
			fmt.Fprint(a.errOut, schema.Usage(a.program))
		}
		return err
	}
	return a.print(schema, res)
}

// print writes one YAML mapping in declaration order.  Scalar options
// that took their default are marked with a comment.
func (a *app) print(schema *nargs.Schema, res *nargs.Result) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, d := range schema.Descriptors() {
		v, _ := res.Get(d.Name)
		var value yaml.Node
		err := value.Encode(v)
		if err != nil {
			return errors.Wrap(err, d.Name)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: d.Name}
		if !res.Present(d.Name) && value.Kind == yaml.ScalarNode {
			value.LineComment = "default"
		}
		doc.Content = append(doc.Content, key, &value)
	}
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	err := enc.Encode(doc)
	if err != nil {
		return err
	}
	return enc.Close()
}

func main() {
	a := &app{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	err := newRootCommand(a).Execute()
	if err != nil {
		if !nargs.IsUsageError(err) {
			fmt.Fprintln(os.Stderr, color.RedString("nargs: %s", err))
		}
		os.Exit(1)
	}
}
