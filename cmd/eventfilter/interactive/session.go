// Package interactive provides the interactive command-line interface
// for composing event filters.
package interactive

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mash-protocol/eventfilter-go/cmd/eventfilter/commands"
	"github.com/mash-protocol/eventfilter-go/pkg/wire"
)

// Session holds the field specs and condition types being edited.
// It does no terminal handling so it can be driven from tests.
type Session struct {
	fields []string
	json   string
	types  []string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Execute runs one command line and reports whether the session should end.
func (s *Session) Execute(line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printHelp(w)

	case "fields", "f":
		s.fields = append([]string(nil), args...)
		s.json = ""
		fmt.Fprintf(w, "%d field(s) set\n", len(s.fields))

	case "add", "a":
		if len(args) == 0 {
			fmt.Fprintln(w, "Usage: add <spec>...")
			return false
		}
		if s.json != "" {
			fmt.Fprintln(w, "Error: fields were set from JSON; use 'fields' or 'clear' first")
			return false
		}
		s.fields = append(s.fields, args...)
		fmt.Fprintf(w, "%d field(s) set\n", len(s.fields))

	case "json", "j":
		// The document may contain spaces, so take the raw remainder.
		doc := strings.TrimSpace(input[len(parts[0]):])
		if doc == "" {
			fmt.Fprintln(w, "Usage: json <document>")
			return false
		}
		s.json = doc
		s.fields = nil
		fmt.Fprintln(w, "JSON field specs set")

	case "type", "t":
		s.types = append([]string(nil), args...)
		fmt.Fprintf(w, "%d condition type(s) set\n", len(s.types))

	case "show", "s":
		s.cmdShow(args, w)

	case "clear", "c":
		s.fields, s.json, s.types = nil, "", nil
		fmt.Fprintln(w, "Cleared")

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Session) cmdShow(args []string, w io.Writer) {
	format := commands.FormatText
	if len(args) > 0 {
		f, err := commands.ParseFormat(args[0])
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		format = f
	}

	ef, err := commands.BuildFilter(s.fields, s.json, s.types)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	if format == commands.FormatCBOR {
		data, err := wire.EncodeEventFilter(ef)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		fmt.Fprintln(w, hex.EncodeToString(data))
		return
	}

	if err := commands.WriteFilter(w, "", ef, format); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `
Commands:
  fields, f <spec>...     Set field specs (tokens like SourceName or 2:Tank.3:Level)
  add, a <spec>...        Append field specs
  json, j <document>      Set field specs from a JSON document
  type, t <id>...         Set condition type ids (e.g. i=2915 ns=2;s=PumpAlarm)
  show, s [format]        Build and print the filter (text, json, cbor)
  clear, c                Reset fields and condition types
  help, ?                 Show this help
  quit, exit, q           Leave

`)
}
