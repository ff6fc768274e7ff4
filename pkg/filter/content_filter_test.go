package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/eventfilter-go/pkg/filter"
	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
)

func TestOfTypeFilter_None(t *testing.T) {
	assert.Nil(t, filter.OfTypeFilter())

	clauses, where := filter.ConditionTypeClauses()
	assert.Empty(t, clauses)
	assert.Nil(t, where)
}

func TestOfTypeFilter_Single(t *testing.T) {
	cf := filter.OfTypeFilter(nodeid.AlarmConditionType())
	require.NotNil(t, cf)
	require.Len(t, cf.Elements, 1)

	e := cf.Elements[0]
	assert.Equal(t, filter.OperatorOfType, e.Operator)
	require.Len(t, e.Operands, 1)
	lit, ok := e.Operands[0].Literal()
	assert.True(t, ok)
	assert.Equal(t, nodeid.AlarmConditionType(), lit)
	assert.NoError(t, cf.Validate())
}

func TestOfTypeFilter_OrChain(t *testing.T) {
	ids := []nodeid.NodeID{nodeid.Numeric(0, 1), nodeid.Numeric(0, 2), nodeid.Numeric(0, 3)}
	cf := filter.OfTypeFilter(ids...)
	require.NotNil(t, cf)

	want := "[0] Or(#1, #2)\n" +
		"[1] OfType(i=1)\n" +
		"[2] Or(#3, #4)\n" +
		"[3] OfType(i=2)\n" +
		"[4] OfType(i=3)"
	assert.Equal(t, want, cf.String())
	assert.Len(t, cf.Elements, 2*len(ids)-1)
	assert.Equal(t, ids, cf.OfTypes())
	assert.NoError(t, cf.Validate())
}

func TestOfTypeFilter_Two(t *testing.T) {
	cf := filter.OfTypeFilter(nodeid.ConditionType(), nodeid.AlarmConditionType())

	assert.Equal(t, "[0] Or(#1, #2)\n[1] OfType(i=2782)\n[2] OfType(i=2915)", cf.String())
	idx, ok := cf.Elements[0].Operands[1].Index()
	assert.True(t, ok)
	assert.Equal(t, uint32(2), idx)
}

func TestContentFilter_Validate(t *testing.T) {
	tests := []struct {
		name string
		cf   *filter.ContentFilter
		ok   bool
	}{
		{"nil", nil, true},
		{"backward reference", &filter.ContentFilter{Elements: []filter.ContentFilterElement{
			{Operator: filter.OperatorNot, Operands: []filter.Operand{filter.ElementOperand(0)}},
		}}, false},
		{"out of range", &filter.ContentFilter{Elements: []filter.ContentFilterElement{
			{Operator: filter.OperatorNot, Operands: []filter.Operand{filter.ElementOperand(5)}},
		}}, false},
		{"unknown operator", &filter.ContentFilter{Elements: []filter.ContentFilterElement{
			{Operator: filter.FilterOperator(99)},
		}}, false},
		{"oftype without literal", &filter.ContentFilter{Elements: []filter.ContentFilterElement{
			{Operator: filter.OperatorOfType},
		}}, false},
		{"zero operand", &filter.ContentFilter{Elements: []filter.ContentFilterElement{
			{Operator: filter.OperatorIsNull, Operands: []filter.Operand{{}}},
		}}, false},
		{"not of oftype", &filter.ContentFilter{Elements: []filter.ContentFilterElement{
			{Operator: filter.OperatorNot, Operands: []filter.Operand{filter.ElementOperand(1)}},
			{Operator: filter.OperatorOfType, Operands: []filter.Operand{filter.LiteralOperand(nodeid.ConditionType())}},
		}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cf.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestContentFilter_EqualAndClone(t *testing.T) {
	a := filter.OfTypeFilter(nodeid.ConditionType(), nodeid.AlarmConditionType())
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Elements[1].Operands[0] = filter.LiteralOperand(nodeid.BaseEventType())
	assert.False(t, a.Equal(b))

	var none *filter.ContentFilter
	assert.True(t, none.Equal(nil))
	assert.False(t, none.Equal(a))
	assert.Nil(t, none.Clone())
	assert.Empty(t, none.OfTypes())
}

func TestAttributeAndOperatorNames(t *testing.T) {
	assert.Equal(t, "Value", filter.AttributeValue.String())
	assert.Equal(t, "NodeId", filter.AttributeNodeID.String())
	assert.Equal(t, "Unknown", filter.AttributeID(0).String())
	assert.Equal(t, "Unknown", filter.AttributeID(28).String())

	id, ok := filter.ParseAttributeID("EventNotifier")
	assert.True(t, ok)
	assert.Equal(t, filter.AttributeEventNotifier, id)
	_, ok = filter.ParseAttributeID("")
	assert.False(t, ok)

	assert.Equal(t, "OfType", filter.OperatorOfType.String())
	assert.Equal(t, "Or", filter.OperatorOr.String())
	assert.False(t, filter.FilterOperator(18).IsValid())
}
