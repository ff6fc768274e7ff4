package filter

import (
	"slices"
	"strings"

	"github.com/mash-protocol/eventfilter-go/pkg/browsepath"
	"github.com/mash-protocol/eventfilter-go/pkg/qname"
)

// SpecKind is the variant held by a FieldSpec.
type SpecKind uint8

const (
	// SpecInvalid is the zero value; it never normalizes.
	SpecInvalid SpecKind = iota

	// SpecSingleToken is a dotted or single-segment token string.
	SpecSingleToken

	// SpecQualifiedName is one already-parsed qualified name.
	SpecQualifiedName

	// SpecTokenArrayPath is the segment list of one multi-segment path.
	SpecTokenArrayPath

	// SpecList is a list of independent field specs.
	SpecList
)

// String returns the kind name.
func (k SpecKind) String() string {
	switch k {
	case SpecSingleToken:
		return "SingleToken"
	case SpecQualifiedName:
		return "QualifiedName"
	case SpecTokenArrayPath:
		return "TokenArrayPath"
	case SpecList:
		return "List"
	default:
		return "Invalid"
	}
}

// FieldSpec is a classified field spec. Build one with Token, Name,
// PathOf or List, or from raw input with Classify.
type FieldSpec struct {
	kind     SpecKind
	token    string
	name     qname.QualifiedName
	segments []browsepath.Segment
	list     []FieldSpec
}

// Token returns a spec for a "<ns>:<name>" token or a dotted path of them.
func Token(s string) FieldSpec {
	return FieldSpec{kind: SpecSingleToken, token: s}
}

// Name returns a spec for one already-parsed qualified name.
func Name(q qname.QualifiedName) FieldSpec {
	return FieldSpec{kind: SpecQualifiedName, name: q}
}

// PathOf returns a spec for one path given as a segment list.
func PathOf(segs ...browsepath.Segment) FieldSpec {
	return FieldSpec{kind: SpecTokenArrayPath, segments: slices.Clone(segs)}
}

// List returns a spec for several independent fields.
func List(specs ...FieldSpec) FieldSpec {
	return FieldSpec{kind: SpecList, list: slices.Clone(specs)}
}

// Kind returns the variant.
func (s FieldSpec) Kind() SpecKind {
	return s.kind
}

// Fields returns the specs that each become one select clause: the
// elements of a list, or s itself.
func (s FieldSpec) Fields() []FieldSpec {
	if s.kind == SpecList {
		return slices.Clone(s.list)
	}
	return []FieldSpec{s}
}

// String returns a readable form of the spec.
func (s FieldSpec) String() string {
	switch s.kind {
	case SpecSingleToken:
		return s.token
	case SpecQualifiedName:
		return s.name.String()
	case SpecTokenArrayPath:
		parts := make([]string, len(s.segments))
		for i, seg := range s.segments {
			parts[i] = seg.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case SpecList:
		parts := make([]string, len(s.list))
		for i, f := range s.list {
			parts[i] = f.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

// path tokenizes a single field spec.
func (s FieldSpec) path() (browsepath.Path, error) {
	switch s.kind {
	case SpecSingleToken:
		return browsepath.Parse(s.token)
	case SpecQualifiedName:
		return browsepath.FromNames(s.name)
	case SpecTokenArrayPath:
		return browsepath.FromSegments(s.segments...)
	case SpecList:
		return nil, &InvalidSpecShapeError{Value: s.String(), Where: "field spec", Reason: "list nested inside a field list"}
	default:
		return nil, &InvalidSpecShapeError{Value: s.String(), Where: "field spec", Reason: "unclassified"}
	}
}

// segment converts a token or name spec into a path segment.
func (s FieldSpec) segment() (browsepath.Segment, bool) {
	switch s.kind {
	case SpecSingleToken:
		return browsepath.TokenSegment(s.token), true
	case SpecQualifiedName:
		return browsepath.NameSegment(s.name), true
	default:
		return browsepath.Segment{}, false
	}
}

// Raw returns the spec in the generic shape decoders produce. Classify
// of the result builds the same select clauses as s.
func (s FieldSpec) Raw() any {
	switch s.kind {
	case SpecTokenArrayPath:
		return []any{s.rawElement()}
	case SpecList:
		out := make([]any, len(s.list))
		for i, f := range s.list {
			out[i] = f.rawElement()
		}
		return out
	default:
		return s.rawElement()
	}
}

// rawElement returns the shape of s as an element of a field list.
func (s FieldSpec) rawElement() any {
	switch s.kind {
	case SpecSingleToken:
		return s.token
	case SpecQualifiedName:
		return map[string]any{
			keyNamespaceIndex: int(s.name.NamespaceIndex),
			keyName:           s.name.Name,
		}
	case SpecTokenArrayPath:
		out := make([]any, len(s.segments))
		for i, seg := range s.segments {
			if q, ok := seg.Name(); ok {
				out[i] = Name(q).rawElement()
			} else {
				out[i] = seg.String()
			}
		}
		return out
	case SpecList:
		return s.Raw()
	default:
		return nil
	}
}
