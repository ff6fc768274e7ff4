// Package filter builds canonical event filters from terse field specs.
//
// Callers of an event subscription describe the fields they want
// reported in whatever shape is convenient:
//
//	"SourceName"                                 // one field, namespace 0
//	"2:Component1.3:Property1"                   // one field, two-level path
//	qname.New(2, "SourceName")                   // one field, already parsed
//	[]any{"SourceName", "Time"}                  // two fields
//	[]any{[]any{"2:Component1", "3:Property1"}}  // one field, path as a list
//
// BuildEventFilter classifies the input once into a FieldSpec, turns
// every field into a SelectClause and appends one NodeId-selecting
// clause per condition type, followed by an "is of type" where clause:
//
//	ef, err := filter.BuildEventFilter([]any{"SourceName", "Time"}, nodeid.AlarmConditionType())
//	// ef.SelectClauses():
//	//   [0] i=2041 SourceName Value
//	//   [1] i=2041 Time       Value
//	//   [2] i=2915 (event)    NodeId
//	// ef.WhereClause(): [0] OfType(i=2915)
//
// # Shapes
//
// The top-level value is either one field spec or a list of them. An
// array at the top level is always a list of fields; an array inside
// that list is the segment list of one field's path. A third level of
// nesting is rejected with InvalidSpecShapeError.
//
// # Defaults
//
// Field clauses select DefaultAttributeID relative to
// DefaultTypeDefinitionID. Condition type clauses select
// ConditionTypeAttributeID of the event itself, relative to the given
// type id, which is copied through verbatim.
//
// # Ordering
//
// Field clauses come first in input order, then condition type clauses
// in input order. Nothing is deduplicated: the clause order is the
// positional order of fields in every event notification.
package filter
