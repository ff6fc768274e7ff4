package commands

import (
	"fmt"
	"io"
	"log/slog"

	jsoniter "github.com/json-iterator/go"

	"github.com/mash-protocol/eventfilter-go/pkg/filter"
	"github.com/mash-protocol/eventfilter-go/pkg/wire"
)

var json = jsoniter.ConfigFastest

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a -format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (valid: text, json, cbor)", s)
	}
}

type jsonFilter struct {
	Name          string             `json:"name,omitempty"`
	SelectClauses []jsonSelectClause `json:"selectClauses"`
	WhereClause   []jsonElement      `json:"whereClause,omitempty"`
}

type jsonSelectClause struct {
	TypeDefinitionID string              `json:"typeDefinitionId"`
	BrowsePath       []jsonQualifiedName `json:"browsePath"`
	AttributeID      string              `json:"attributeId"`
}

type jsonQualifiedName struct {
	NamespaceIndex uint16 `json:"namespaceIndex"`
	Name           string `json:"name"`
}

type jsonElement struct {
	Operator string   `json:"operator"`
	Operands []string `json:"operands"`
}

func toJSON(name string, ef filter.EventFilter) jsonFilter {
	out := jsonFilter{Name: name, SelectClauses: []jsonSelectClause{}}
	for _, c := range ef.SelectClauses() {
		path := make([]jsonQualifiedName, len(c.BrowsePath))
		for i, q := range c.BrowsePath {
			path[i] = jsonQualifiedName{NamespaceIndex: q.NamespaceIndex, Name: q.Name}
		}
		out.SelectClauses = append(out.SelectClauses, jsonSelectClause{
			TypeDefinitionID: c.TypeDefinitionID.String(),
			BrowsePath:       path,
			AttributeID:      c.AttributeID.String(),
		})
	}
	if where := ef.WhereClause(); where != nil {
		for _, e := range where.Elements {
			ops := make([]string, len(e.Operands))
			for i, op := range e.Operands {
				ops[i] = op.String()
			}
			out.WhereClause = append(out.WhereClause, jsonElement{Operator: e.Operator.String(), Operands: ops})
		}
	}
	return out
}

// WriteFilter writes one filter in the given format. name is optional;
// text output prints it as a header and JSON output as a field.
func WriteFilter(w io.Writer, name string, ef filter.EventFilter, format Format) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(toJSON(name, ef), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err

	case FormatCBOR:
		if err := wire.WriteEventFilter(w, ef); err != nil {
			return fmt.Errorf("failed to encode CBOR: %w", err)
		}
		return nil

	default:
		if name != "" {
			if _, err := fmt.Fprintf(w, "== %s ==\n", name); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, ef.String())
		return err
	}
}

// debug logs through logger if one is configured.
func debug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}
