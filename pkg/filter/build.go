package filter

import (
	"fmt"

	"github.com/mash-protocol/eventfilter-go/pkg/browsepath"
	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
)

// Defaults applied to clauses built from field specs.
const (
	// DefaultAttributeID is selected by field clauses.
	DefaultAttributeID = AttributeValue

	// ConditionTypeAttributeID is selected by condition type clauses.
	ConditionTypeAttributeID = AttributeNodeID
)

// DefaultTypeDefinitionID returns the type field clauses are relative to.
func DefaultTypeDefinitionID() nodeid.NodeID {
	return nodeid.BaseEventType()
}

// BuildEventFilter classifies fieldSpecs and builds the filter. See
// Classify for the accepted shapes; nil means no field clauses.
func BuildEventFilter(fieldSpecs any, conditionTypeIDs ...nodeid.NodeID) (EventFilter, error) {
	spec, err := Classify(fieldSpecs)
	if err != nil {
		return EventFilter{}, err
	}
	return Build(spec, conditionTypeIDs...)
}

// Build builds the filter for an already-classified spec: the field
// clauses in order, then one clause per condition type, plus the
// matching where clause.
func Build(spec FieldSpec, conditionTypeIDs ...nodeid.NodeID) (EventFilter, error) {
	fields, err := SelectClauses(spec)
	if err != nil {
		return EventFilter{}, err
	}

	typeClauses, where := ConditionTypeClauses(conditionTypeIDs...)

	return EventFilter{
		selectClauses: append(fields, typeClauses...),
		whereClause:   where,
	}, nil
}

// SelectClauses normalizes every field of spec, preserving order. A
// single spec yields one clause.
func SelectClauses(spec FieldSpec) ([]SelectClause, error) {
	fields := spec.Fields()
	clauses := make([]SelectClause, 0, len(fields))
	for i, f := range fields {
		c, err := NormalizeField(f)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}

// NormalizeField turns one field spec into a value clause relative to
// the base event type.
func NormalizeField(spec FieldSpec) (SelectClause, error) {
	path, err := spec.path()
	if err != nil {
		return SelectClause{}, err
	}
	return SelectClause{
		TypeDefinitionID: DefaultTypeDefinitionID(),
		BrowsePath:       path,
		AttributeID:      DefaultAttributeID,
	}, nil
}

// ConditionTypeClauses returns one NodeId clause per type id, with the
// id copied verbatim, and the where clause matching any of them. No ids
// yields no clauses and a nil where clause.
func ConditionTypeClauses(ids ...nodeid.NodeID) ([]SelectClause, *ContentFilter) {
	clauses := make([]SelectClause, 0, len(ids))
	for _, id := range ids {
		clauses = append(clauses, SelectClause{
			TypeDefinitionID: id,
			BrowsePath:       browsepath.Path{},
			AttributeID:      ConditionTypeAttributeID,
		})
	}
	return clauses, OfTypeFilter(ids...)
}
