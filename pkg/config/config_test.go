package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/eventfilter-go/pkg/filter"
	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
	"github.com/mash-protocol/eventfilter-go/pkg/qname"
)

const sampleYAML = `
filters:
  - name: alarms
    description: Alarm fields for the plant overview
    fields:
      - SourceName
      - Time
      - ["2:Component1", "3:Property1"]
      - {namespaceIndex: 2, name: Severity}
      - 2:Tank.3:Level
    conditionTypes: ["i=2915", "ns=2;s=PumpAlarm", 9999]
  - name: single
    fields: 2:SourceName
  - name: types-only
    conditionTypes: ["i=2782"]
`

func TestParseAndResolve(t *testing.T) {
	raw, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, raw.Filters, 3)

	filters, err := raw.Resolve()
	require.NoError(t, err)
	require.Len(t, filters, 3)

	alarms := filters[0]
	assert.Equal(t, "alarms", alarms.Name)
	assert.Equal(t, "Alarm fields for the plant overview", alarms.Description)

	clauses := alarms.Filter.SelectClauses()
	require.Len(t, clauses, 8)

	wantPaths := []string{"SourceName", "Time", "2:Component1.3:Property1", "2:Severity", "2:Tank.3:Level"}
	for i, want := range wantPaths {
		assert.Equal(t, want, clauses[i].BrowsePath.String(), "clause %d", i)
		assert.Equal(t, filter.AttributeValue, clauses[i].AttributeID)
	}

	wantTypes := []nodeid.NodeID{nodeid.AlarmConditionType(), nodeid.String(2, "PumpAlarm"), nodeid.Numeric(0, 9999)}
	for i, want := range wantTypes {
		assert.Equal(t, want, clauses[5+i].TypeDefinitionID)
		assert.Equal(t, filter.AttributeNodeID, clauses[5+i].AttributeID)
	}
	assert.Equal(t, wantTypes, alarms.Filter.WhereClause().OfTypes())

	single := filters[1]
	require.Equal(t, 1, single.Filter.Len())
	assert.Equal(t, qname.New(2, "SourceName"), single.Filter.Clause(0).BrowsePath[0])
	assert.False(t, single.Filter.HasWhereClause())

	typesOnly := filters[2]
	require.Equal(t, 1, typesOnly.Filter.Len())
	assert.Empty(t, typesOnly.Filter.Clause(0).BrowsePath)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no filters", "filters: []", ErrNoFilters},
		{"missing name", "filters:\n  - fields: [A]", ErrMissingName},
		{"duplicate name", "filters:\n  - name: a\n  - name: a", ErrDuplicateName},
		{"malformed token", "filters:\n  - name: a\n    fields: ['1:2:x']", qname.ErrMalformedToken},
		{"bad shape", "filters:\n  - name: a\n    fields: [42]", filter.ErrInvalidSpecShape},
		{"three levels", "filters:\n  - name: a\n    fields: [[[A]]]", filter.ErrInvalidSpecShape},
		{"bad condition type", "filters:\n  - name: a\n    conditionTypes: [x]", nodeid.ErrInvalidNodeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = raw.Resolve()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("filters: [unterminated"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	raw, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, raw.Filters, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	raw, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	filters, err := raw.Resolve()
	require.NoError(t, err)

	nf, err := Find(filters, "single")
	require.NoError(t, err)
	assert.Equal(t, "single", nf.Name)

	_, err = Find(filters, "nope")
	assert.ErrorIs(t, err, ErrFilterUnknown)
}
