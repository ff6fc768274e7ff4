package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mash-protocol/eventfilter-go/pkg/browsepath"
	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
)

// ErrFieldCountMismatch is returned by Fields when the number of values
// differs from the number of select clauses.
var ErrFieldCountMismatch = errors.New("field count does not match select clauses")

// SelectClause selects one attribute, reached via BrowsePath, of events
// of type TypeDefinitionID.
type SelectClause struct {
	TypeDefinitionID nodeid.NodeID
	BrowsePath       browsepath.Path
	AttributeID      AttributeID
}

// Clone returns a copy that shares no storage with c.
func (c SelectClause) Clone() SelectClause {
	c.BrowsePath = c.BrowsePath.Clone()
	return c
}

// Equal reports whether both clauses select the same thing.
func (c SelectClause) Equal(other SelectClause) bool {
	return c.TypeDefinitionID == other.TypeDefinitionID &&
		c.AttributeID == other.AttributeID &&
		c.BrowsePath.Equal(other.BrowsePath)
}

// String returns "<type> <path> <attribute>"; an empty path is shown as (event).
func (c SelectClause) String() string {
	path := c.BrowsePath.String()
	if path == "" {
		path = "(event)"
	}
	return c.TypeDefinitionID.ShortString() + " " + path + " " + c.AttributeID.String()
}

// EventFilter is the canonical filter: select clauses in positional
// order plus an optional where clause. It is immutable; accessors
// return copies.
type EventFilter struct {
	selectClauses []SelectClause
	whereClause   *ContentFilter
}

// NewEventFilter assembles a filter from parts. Both are copied.
func NewEventFilter(clauses []SelectClause, where *ContentFilter) EventFilter {
	return EventFilter{
		selectClauses: cloneClauses(clauses),
		whereClause:   where.Clone(),
	}
}

func cloneClauses(clauses []SelectClause) []SelectClause {
	out := make([]SelectClause, len(clauses))
	for i, c := range clauses {
		out[i] = c.Clone()
	}
	return out
}

// SelectClauses returns a copy of the select clauses.
func (f EventFilter) SelectClauses() []SelectClause {
	return cloneClauses(f.selectClauses)
}

// Len returns the number of select clauses.
func (f EventFilter) Len() int {
	return len(f.selectClauses)
}

// Clause returns a copy of select clause i.
func (f EventFilter) Clause(i int) SelectClause {
	return f.selectClauses[i].Clone()
}

// WhereClause returns a copy of the where clause, or nil if there is none.
func (f EventFilter) WhereClause() *ContentFilter {
	return f.whereClause.Clone()
}

// HasWhereClause reports whether the filter restricts event types.
func (f EventFilter) HasWhereClause() bool {
	return f.whereClause != nil
}

// Equal reports whether both filters are structurally identical.
func (f EventFilter) Equal(other EventFilter) bool {
	return slices.EqualFunc(f.selectClauses, other.selectClauses, SelectClause.Equal) &&
		f.whereClause.Equal(other.whereClause)
}

// String renders one clause per line followed by the where clause.
func (f EventFilter) String() string {
	var b strings.Builder
	for i, c := range f.selectClauses {
		fmt.Fprintf(&b, "[%d] %s\n", i, c)
	}
	if f.whereClause != nil {
		b.WriteString("where:\n")
		b.WriteString(f.whereClause.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// FieldIndex returns the position of the first value clause whose path
// matches the dotted path. Duplicates are not merged, so later clauses
// with the same path are not reported.
func (f EventFilter) FieldIndex(path string) (int, bool) {
	p, err := browsepath.Parse(path)
	if err != nil {
		return 0, false
	}
	for i, c := range f.selectClauses {
		if c.AttributeID == DefaultAttributeID && c.BrowsePath.Equal(p) {
			return i, true
		}
	}
	return 0, false
}

// EventField pairs a notification value with the clause that selected it.
type EventField struct {
	Clause SelectClause
	Value  any
}

// Fields pairs the positional values of an event notification with the
// select clauses that produced them.
func (f EventFilter) Fields(values []any) ([]EventField, error) {
	if len(values) != len(f.selectClauses) {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrFieldCountMismatch, len(values), len(f.selectClauses))
	}
	fields := make([]EventField, len(values))
	for i, v := range values {
		fields[i] = EventField{Clause: f.selectClauses[i].Clone(), Value: v}
	}
	return fields, nil
}
