package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mash-protocol/eventfilter-go/pkg/filter"
	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
)

// BuildOptions specifies the input of the build command.
type BuildOptions struct {
	// Fields are field spec tokens, one field each.
	Fields []string
	// JSON is a field spec document in JSON; exclusive with Fields.
	JSON string
	// Types are condition type ids in text form.
	Types  []string
	Format Format

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// RunBuild builds one filter from command line input and writes it to w.
func RunBuild(opts BuildOptions, w io.Writer) error {
	ef, err := BuildFilter(opts.Fields, opts.JSON, opts.Types)
	if err != nil {
		return err
	}
	debug(opts.Logger, "built event filter", "clauses", ef.Len(), "where", ef.HasWhereClause())
	return WriteFilter(w, "", ef, opts.Format)
}

// BuildFilter builds a filter from field tokens or a JSON field spec
// document, plus condition type ids in text form.
func BuildFilter(fields []string, jsonDoc string, types []string) (filter.EventFilter, error) {
	if len(fields) > 0 && jsonDoc != "" {
		return filter.EventFilter{}, errors.New("field arguments and -json are mutually exclusive")
	}

	var raw any
	if jsonDoc != "" {
		if err := json.UnmarshalFromString(jsonDoc, &raw); err != nil {
			return filter.EventFilter{}, fmt.Errorf("invalid JSON field specs: %w", err)
		}
	} else if len(fields) > 0 {
		raw = fields
	}

	ids := make([]nodeid.NodeID, 0, len(types))
	for _, t := range types {
		id, err := nodeid.Parse(t)
		if err != nil {
			return filter.EventFilter{}, err
		}
		ids = append(ids, id)
	}

	return filter.BuildEventFilter(raw, ids...)
}
