package filter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/eventfilter-go/pkg/browsepath"
	"github.com/mash-protocol/eventfilter-go/pkg/filter"
	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
	"github.com/mash-protocol/eventfilter-go/pkg/qname"
)

func assertFieldClause(t *testing.T, c filter.SelectClause, want ...qname.QualifiedName) {
	t.Helper()
	assert.Equal(t, filter.AttributeValue, c.AttributeID)
	assert.Equal(t, "ns=0;i=2041", c.TypeDefinitionID.String())
	assert.Equal(t, browsepath.Path(want), c.BrowsePath)
}

func TestBuildEventFilter_SingleStringWithNamespace(t *testing.T) {
	ef, err := filter.BuildEventFilter("2:SourceName")
	require.NoError(t, err)

	require.Equal(t, 1, ef.Len())
	assertFieldClause(t, ef.Clause(0), qname.New(2, "SourceName"))
	assert.False(t, ef.HasWhereClause())
	assert.Nil(t, ef.WhereClause())
}

func TestBuildEventFilter_SingleElementList(t *testing.T) {
	ef, err := filter.BuildEventFilter([]string{"SourceName"})
	require.NoError(t, err)

	require.Equal(t, 1, ef.Len())
	assertFieldClause(t, ef.Clause(0), qname.New(0, "SourceName"))
}

func TestBuildEventFilter_TwoClausesInOrder(t *testing.T) {
	ef, err := filter.BuildEventFilter([]any{"SourceName", "Time"})
	require.NoError(t, err)

	clauses := ef.SelectClauses()
	require.Len(t, clauses, 2)
	assertFieldClause(t, clauses[0], qname.New(0, "SourceName"))
	assertFieldClause(t, clauses[1], qname.New(0, "Time"))
}

func TestBuildEventFilter_QualifiedNameForms(t *testing.T) {
	forms := map[string]any{
		"object":          map[string]any{"namespaceIndex": 2, "name": "SourceName"},
		"object in list":  []any{map[string]any{"namespaceIndex": 2, "name": "SourceName"}},
		"native name":     qname.New(2, "SourceName"),
		"native list":     []qname.QualifiedName{qname.New(2, "SourceName")},
		"token":           "2:SourceName",
		"token in list":   []any{"2:SourceName"},
		"cbor-style keys": map[any]any{"namespaceIndex": uint64(2), "name": "SourceName"},
		"json-style":      map[string]any{"namespaceIndex": float64(2), "name": "SourceName"},
	}

	want, err := filter.BuildEventFilter("2:SourceName")
	require.NoError(t, err)

	for name, input := range forms {
		t.Run(name, func(t *testing.T) {
			ef, err := filter.BuildEventFilter(input)
			require.NoError(t, err)
			require.Equal(t, 1, ef.Len())
			assertFieldClause(t, ef.Clause(0), qname.New(2, "SourceName"))
			assert.True(t, ef.Equal(want))
		})
	}
}

func TestBuildEventFilter_TwoLevelPathForms(t *testing.T) {
	dotted, err := filter.BuildEventFilter("2:Component1.3:Property1")
	require.NoError(t, err)

	nested, err := filter.BuildEventFilter([]any{[]any{"2:Component1", "3:Property1"}})
	require.NoError(t, err)

	typed, err := filter.Build(filter.PathOf(
		browsepath.TokenSegment("2:Component1"),
		browsepath.NameSegment(qname.New(3, "Property1")),
	))
	require.NoError(t, err)

	for _, ef := range []filter.EventFilter{dotted, nested, typed} {
		require.Equal(t, 1, ef.Len())
		assertFieldClause(t, ef.Clause(0), qname.New(2, "Component1"), qname.New(3, "Property1"))
	}
	assert.True(t, dotted.Equal(nested))
	assert.True(t, dotted.Equal(typed))
}

func TestBuildEventFilter_ConditionType(t *testing.T) {
	typeID := nodeid.MustParse("i=9999")

	ef, err := filter.BuildEventFilter([]any{}, typeID)
	require.NoError(t, err)

	require.Equal(t, 1, ef.Len())
	c := ef.Clause(0)
	assert.Empty(t, c.BrowsePath)
	assert.Equal(t, filter.AttributeNodeID, c.AttributeID)
	assert.Equal(t, "ns=0;i=9999", c.TypeDefinitionID.String())

	require.True(t, ef.HasWhereClause())
	assert.Equal(t, []nodeid.NodeID{typeID}, ef.WhereClause().OfTypes())
}

func TestBuildEventFilter_ConditionTypeIDVerbatim(t *testing.T) {
	custom := nodeid.String(3, "MyAlarmType")

	ef, err := filter.BuildEventFilter(nil, custom)
	require.NoError(t, err)

	require.Equal(t, 1, ef.Len())
	assert.Equal(t, custom, ef.Clause(0).TypeDefinitionID)
}

func TestBuildEventFilter_FieldsBeforeTypes(t *testing.T) {
	types := []nodeid.NodeID{nodeid.AlarmConditionType(), nodeid.Numeric(2, 1000)}

	ef, err := filter.BuildEventFilter([]any{"EventId", "Severity", "2:A.3:B", "Message"}, types...)
	require.NoError(t, err)

	clauses := ef.SelectClauses()
	require.Len(t, clauses, 6)

	wantPaths := []string{"EventId", "Severity", "2:A.3:B", "Message"}
	for i, want := range wantPaths {
		assert.Equal(t, want, clauses[i].BrowsePath.String(), "clause %d", i)
		assert.Equal(t, filter.DefaultAttributeID, clauses[i].AttributeID)
	}
	for i, id := range types {
		c := clauses[len(wantPaths)+i]
		assert.Equal(t, id, c.TypeDefinitionID)
		assert.Equal(t, filter.ConditionTypeAttributeID, c.AttributeID)
		assert.Empty(t, c.BrowsePath)
	}
	assert.Equal(t, types, ef.WhereClause().OfTypes())
}

func TestBuildEventFilter_NoDeduplication(t *testing.T) {
	ef, err := filter.BuildEventFilter([]any{"Time", "Time", map[string]any{"name": "Time"}})
	require.NoError(t, err)

	require.Equal(t, 3, ef.Len())
	for i := 0; i < 3; i++ {
		assertFieldClause(t, ef.Clause(i), qname.New(0, "Time"))
	}
}

func TestBuildEventFilter_Empty(t *testing.T) {
	for name, input := range map[string]any{
		"nil":         nil,
		"empty list":  []any{},
		"empty typed": []string{},
		"empty spec":  filter.List(),
	} {
		t.Run(name, func(t *testing.T) {
			ef, err := filter.BuildEventFilter(input)
			require.NoError(t, err)
			assert.Equal(t, 0, ef.Len())
			assert.False(t, ef.HasWhereClause())
		})
	}
}

func TestBuildEventFilter_Idempotent(t *testing.T) {
	first, err := filter.BuildEventFilter([]any{"2:SourceName", "Time"})
	require.NoError(t, err)

	// Feed the parsed names back in.
	var names []qname.QualifiedName
	for _, c := range first.SelectClauses() {
		names = append(names, c.BrowsePath...)
	}

	second, err := filter.BuildEventFilter(names)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestBuildEventFilter_IdempotentPaths(t *testing.T) {
	first, err := filter.BuildEventFilter([]any{"2:A.3:B", "Time", []any{"1:C", "D"}})
	require.NoError(t, err)

	// The built paths, as they come out of the builder.
	var paths []browsepath.Path
	for _, c := range first.SelectClauses() {
		paths = append(paths, c.BrowsePath)
	}

	second, err := filter.BuildEventFilter(paths)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	third, err := filter.BuildEventFilter([][]any{{"2:A", "3:B"}, {"Time"}, {"1:C", "D"}})
	require.NoError(t, err)
	assert.True(t, first.Equal(third))
}

func TestBuildEventFilter_Malformed(t *testing.T) {
	for _, input := range []any{
		"1:2:name",
		"",
		":",
		[]any{"SourceName", "1:2:name"},
		[]any{[]any{}},
		[]any{[]any{"2:A", ""}},
		"2:A..B",
		map[string]any{"namespaceIndex": 2, "name": ""},
	} {
		_, err := filter.BuildEventFilter(input)
		require.Error(t, err, "input %#v", input)
		assert.ErrorIs(t, err, qname.ErrMalformedToken, "input %#v", input)

		var mte *qname.MalformedTokenError
		assert.True(t, errors.As(err, &mte), "input %#v", input)
	}
}

func TestBuildEventFilter_MalformedReportsPosition(t *testing.T) {
	_, err := filter.BuildEventFilter([]any{"A", "B", "x:C"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 2")
}

func TestBuildEventFilter_InvalidShape(t *testing.T) {
	for name, input := range map[string]any{
		"number":              42,
		"bool":                true,
		"nil element":         []any{"A", nil},
		"number element":      []any{"A", 3.5},
		"three levels":        []any{[]any{[]any{"2:A"}}},
		"unknown key":         map[string]any{"name": "A", "browseName": "B"},
		"name not string":     map[string]any{"name": 7},
		"negative namespace":  map[string]any{"name": "A", "namespaceIndex": -1},
		"namespace too large": map[string]any{"name": "A", "namespaceIndex": 70000},
		"fractional ns":       map[string]any{"name": "A", "namespaceIndex": 1.5},
		"non-string key":      map[any]any{1: "A"},
		"list inside list":    []filter.FieldSpec{filter.List(filter.Token("A"))},
		"zero spec":           filter.FieldSpec{},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := filter.BuildEventFilter(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, filter.ErrInvalidSpecShape)

			var ise *filter.InvalidSpecShapeError
			assert.True(t, errors.As(err, &ise))
		})
	}
}

func TestBuild_NestedListSpec(t *testing.T) {
	_, err := filter.Build(filter.List(filter.Token("A"), filter.List(filter.Token("B"))))
	assert.ErrorIs(t, err, filter.ErrInvalidSpecShape)
}

func TestEventFilter_Immutable(t *testing.T) {
	ef, err := filter.BuildEventFilter("2:A.3:B", nodeid.AlarmConditionType())
	require.NoError(t, err)

	clauses := ef.SelectClauses()
	clauses[0].BrowsePath[0].Name = "Changed"
	clauses[0].AttributeID = filter.AttributeDisplayName

	where := ef.WhereClause()
	where.Elements[0].Operator = filter.OperatorAnd

	assert.Equal(t, "2:A.3:B", ef.Clause(0).BrowsePath.String())
	assert.Equal(t, filter.AttributeValue, ef.Clause(0).AttributeID)
	assert.Equal(t, filter.OperatorOfType, ef.WhereClause().Elements[0].Operator)
}

func TestNewEventFilter_CopiesInput(t *testing.T) {
	clauses := []filter.SelectClause{{
		TypeDefinitionID: nodeid.BaseEventType(),
		BrowsePath:       browsepath.Path{qname.New(0, "Time")},
		AttributeID:      filter.AttributeValue,
	}}
	ef := filter.NewEventFilter(clauses, nil)
	clauses[0].BrowsePath[0].Name = "Changed"

	assert.Equal(t, "Time", ef.Clause(0).BrowsePath.String())
}

func TestEventFilter_FieldIndexAndFields(t *testing.T) {
	ef, err := filter.BuildEventFilter([]any{"SourceName", "2:A.3:B", "SourceName"}, nodeid.ConditionType())
	require.NoError(t, err)

	idx, ok := ef.FieldIndex("2:A.3:B")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = ef.FieldIndex("SourceName")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = ef.FieldIndex("Missing")
	assert.False(t, ok)
	_, ok = ef.FieldIndex("1:2:x")
	assert.False(t, ok)

	fields, err := ef.Fields([]any{"pump", 42, "valve", nodeid.Numeric(2, 77)})
	require.NoError(t, err)
	require.Len(t, fields, 4)
	assert.Equal(t, "valve", fields[2].Value)
	assert.Equal(t, "SourceName", fields[2].Clause.BrowsePath.String())
	assert.Equal(t, filter.AttributeNodeID, fields[3].Clause.AttributeID)

	_, err = ef.Fields([]any{"too", "few"})
	assert.ErrorIs(t, err, filter.ErrFieldCountMismatch)
}

func TestEventFilter_String(t *testing.T) {
	ef, err := filter.BuildEventFilter([]any{"SourceName"}, nodeid.AlarmConditionType())
	require.NoError(t, err)

	want := "[0] i=2041 SourceName Value\n" +
		"[1] i=2915 (event) NodeId\n" +
		"where:\n" +
		"[0] OfType(i=2915)\n"
	assert.Equal(t, want, ef.String())
}
