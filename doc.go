/*
Package nargs parses command line arguments into typed values using a
declared, ordered schema of options.

Each option has a name, a format (-name or --name), and a shape:

	Bool          -l                  presence means true, no values allowed
	Scalar<T>     -p 8080             exactly one value
	List<T>       -g this is a list   zero or more values, order kept
	Map<K,V>      -D a=1 b=2          zero or more key=value pairs

The values of a flag are the tokens that follow it, up to the next
token that looks like a flag: one or two dashes followed by letters.
Negative numbers ("-3") are values, not flags.  When a flag is given
more than once, the values from every occurrence are combined, left to
right, for every shape.  So "-l -l" is still true but "-p 1 -p 2" is
too many arguments for a scalar.

Options that do not appear get their default: false for Bool, an empty
slice for List, and the caller's default (or zero value / empty map)
for Scalar and Map.

	schema := []nargs.OptionDescriptor{
		nargs.BoolOption("l"),
		nargs.ScalarOption("port", nargs.Int, 8080).DoubleDash(),
		nargs.ListOption("g", nargs.String),
	}
	res, err := nargs.ParseOptions(schema, os.Args[1:])

Elementary parsers (string to value) live in a Parsers table that is
passed explicitly to NewResolver.  DefaultParsers covers int, int64,
uint, float64, bool, and string; ElementaryFor builds one for any type
that github.com/muir/reflectutils can set from a string.

Failures are *OptionError values carrying the option name and, for
IllegalValue, the offending token.  The first failure aborts the parse.
Use errors.Is with the Err* sentinels to check the kind and IsUsageError
to decide whether to print usage text.

For struct-shaped configuration, Binder derives the schema from struct
tags and assigns the parsed values:

	var opts struct {
		Logging bool   `arg:"l"`
		Port    int    `arg:"port,double"`
		Dir     string `arg:"d"`
	}
	opts.Port = 8080 // default
	err := nargs.Bind(&opts, os.Args[1:])

Debug tracing is compiled in with the "debugNargs" build tag.
*/
package nargs
