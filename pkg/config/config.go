package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/eventfilter-go/pkg/filter"
	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
)

// Resolve errors.
var (
	ErrNoFilters     = errors.New("no filters defined")
	ErrMissingName   = errors.New("filter name is required")
	ErrDuplicateName = errors.New("duplicate filter name")
	ErrFilterUnknown = errors.New("filter not found")
)

// RawFile is the YAML-level representation before building.
type RawFile struct {
	Filters []RawFilterDef `yaml:"filters"`
}

// RawFilterDef is one filter definition before building.
type RawFilterDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Fields keeps the decoded shape so Classify can dispatch on it.
	Fields         any   `yaml:"fields"`
	ConditionTypes []any `yaml:"conditionTypes"`
}

// NamedFilter is a built filter with its definition name.
type NamedFilter struct {
	Name        string
	Description string
	Filter      filter.EventFilter
}

// Parse parses YAML bytes into a RawFile.
func Parse(data []byte) (*RawFile, error) {
	var raw RawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing filter definitions: %w", err)
	}
	return &raw, nil
}

// Load reads and parses a definition file.
func Load(path string) (*RawFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter definitions: %w", err)
	}
	return Parse(data)
}

// Resolve builds every filter in file order.
func (f *RawFile) Resolve() ([]NamedFilter, error) {
	if len(f.Filters) == 0 {
		return nil, ErrNoFilters
	}

	seen := make(map[string]bool, len(f.Filters))
	out := make([]NamedFilter, 0, len(f.Filters))
	for i, def := range f.Filters {
		if def.Name == "" {
			return nil, fmt.Errorf("filter %d: %w", i, ErrMissingName)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("filter %q: %w", def.Name, ErrDuplicateName)
		}
		seen[def.Name] = true

		ef, err := def.Build()
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", def.Name, err)
		}
		out = append(out, NamedFilter{Name: def.Name, Description: def.Description, Filter: ef})
	}
	return out, nil
}

// Build builds the filter for one definition.
func (d RawFilterDef) Build() (filter.EventFilter, error) {
	types, err := nodeid.CoerceAll(d.ConditionTypes)
	if err != nil {
		return filter.EventFilter{}, fmt.Errorf("conditionTypes: %w", err)
	}
	return filter.BuildEventFilter(d.Fields, types...)
}

// Find returns the filter with the given name.
func Find(filters []NamedFilter, name string) (NamedFilter, error) {
	for _, nf := range filters {
		if nf.Name == name {
			return nf, nil
		}
	}
	return NamedFilter{}, fmt.Errorf("%w: %q", ErrFilterUnknown, name)
}
