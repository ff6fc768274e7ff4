package commands

import (
	"io"
	"log/slog"

	"github.com/mash-protocol/eventfilter-go/pkg/config"
)

// FileOptions specifies the input of the file command.
type FileOptions struct {
	Path string
	// Name selects one filter; empty means all.
	Name   string
	Format Format

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// RunFile builds the filters of a definition file and writes them to w.
func RunFile(opts FileOptions, w io.Writer) error {
	raw, err := config.Load(opts.Path)
	if err != nil {
		return err
	}

	filters, err := raw.Resolve()
	if err != nil {
		return err
	}
	debug(opts.Logger, "loaded filter definitions", "path", opts.Path, "count", len(filters))

	if opts.Name != "" {
		nf, err := config.Find(filters, opts.Name)
		if err != nil {
			return err
		}
		filters = []config.NamedFilter{nf}
	}

	for _, nf := range filters {
		debug(opts.Logger, "writing filter", "name", nf.Name, "clauses", nf.Filter.Len())
		if err := WriteFilter(w, nf.Name, nf.Filter, opts.Format); err != nil {
			return err
		}
	}
	return nil
}
