// Command eventfilter builds event notification filters from field specs.
//
// A field spec names the event fields a subscriber wants. Each field is a
// token such as "SourceName" or "2:Tank.3:Level"; lists, segment arrays and
// {namespaceIndex, name} objects can be given as JSON with -json or in a
// YAML definition file.
//
// Usage:
//
//	eventfilter <command> [flags] [args]
//
// Commands:
//
//	build    Build a filter from field specs on the command line
//	file     Build the named filters of a YAML definition file
//	decode   Decode a CBOR filter or field spec document
//	repl     Compose filters interactively
//
// Examples:
//
//	# Two fields plus a condition type restriction
//	eventfilter build -type i=2915 SourceName 2:Tank.3:Level
//
//	# Field specs as JSON
//	eventfilter build -json '[["2:Component1","3:Property1"],{"name":"Severity"}]'
//
//	# Encode the filters of a definition file as a CBOR sequence
//	eventfilter file -format cbor -o filters.cbor filters.yaml
//
//	# Print stored filters
//	eventfilter decode filters.cbor
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mash-protocol/eventfilter-go/cmd/eventfilter/commands"
	"github.com/mash-protocol/eventfilter-go/cmd/eventfilter/interactive"
)

const usage = `eventfilter - Event Filter Builder

Usage:
  eventfilter <command> [flags] [args]

Commands:
  build    Build a filter from field specs on the command line
  file     Build the named filters of a YAML definition file
  decode   Decode a CBOR filter or field spec document
  repl     Compose filters interactively

Use "eventfilter <command> -help" for more information about a command.
`

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "build":
		err = runBuild(args)
	case "file":
		err = runFile(args)
	case "decode":
		err = runDecode(args)
	case "repl":
		err = runRepl()
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// writeOutput runs fn against the output file, or stdout when path is
// empty. The file is closed before returning.
func writeOutput(path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	err = fn(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output: %w", cerr)
	}
	return err
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `eventfilter build - Build a filter from field specs

Usage:
  eventfilter build [flags] [spec...]

Each spec argument is one field. Use -json for nested shapes.

Flags:
`)
		fs.PrintDefaults()
	}

	var types stringList
	fs.Var(&types, "type", "Condition type id, e.g. i=2915 (repeatable)")
	jsonDoc := fs.String("json", "", "Field specs as a JSON document")
	format := fs.String("format", "text", "Output format (text, json, cbor)")
	output := fs.String("o", "", "Output file (default: stdout)")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := commands.ParseFormat(*format)
	if err != nil {
		return err
	}

	opts := commands.BuildOptions{
		Fields: fs.Args(),
		JSON:   *jsonDoc,
		Types:  types,
		Format: f,
		Logger: newLogger(*verbose),
	}
	return writeOutput(*output, func(w io.Writer) error {
		return commands.RunBuild(opts, w)
	})
}

func runFile(args []string) error {
	fs := flag.NewFlagSet("file", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `eventfilter file - Build the filters of a definition file

Usage:
  eventfilter file [flags] <filters.yaml>

CBOR output writes one document per filter as a CBOR sequence.

Flags:
`)
		fs.PrintDefaults()
	}

	name := fs.String("name", "", "Only build the named filter")
	format := fs.String("format", "text", "Output format (text, json, cbor)")
	output := fs.String("o", "", "Output file (default: stdout)")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("definition file path required")
	}

	f, err := commands.ParseFormat(*format)
	if err != nil {
		return err
	}

	opts := commands.FileOptions{
		Path:   fs.Arg(0),
		Name:   *name,
		Format: f,
		Logger: newLogger(*verbose),
	}
	return writeOutput(*output, func(w io.Writer) error {
		return commands.RunFile(opts, w)
	})
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `eventfilter decode - Decode a CBOR document or sequence

Usage:
  eventfilter decode [flags] <file.cbor>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "text", "Output format (text, json, cbor)")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("document path required")
	}

	f, err := commands.ParseFormat(*format)
	if err != nil {
		return err
	}

	return commands.RunDecode(fs.Arg(0), f, newLogger(*verbose), os.Stdout)
}

func runRepl() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	sh, err := interactive.NewShell()
	if err != nil {
		return err
	}
	sh.Run(ctx)
	return nil
}
