package browsepath

import (
	"errors"
	"slices"
	"strings"

	"github.com/mash-protocol/eventfilter-go/pkg/qname"
)

// ErrEmptyPath is the cause of a MalformedTokenError for a segment list
// that should have produced a non-empty path.
var ErrEmptyPath = errors.New("empty browse path")

// Path is an ordered root-to-leaf sequence of qualified names.
type Path []qname.QualifiedName

// String returns the dotted form of the path.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, q := range p {
		parts[i] = q.String()
	}
	return strings.Join(parts, qname.PathSeparator)
}

// Equal reports whether both paths have the same segments in the same order.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

// Clone returns a copy that shares no storage with p.
// The clone of an empty path is an empty, non-nil path.
func (p Path) Clone() Path {
	return append(Path{}, p...)
}

// Parse splits a dotted path spec into segments and parses each one.
// A spec without '.' yields a single-segment path.
func Parse(spec string) (Path, error) {
	tokens := strings.Split(spec, qname.PathSeparator)

	path := make(Path, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" && len(tokens) > 1 {
			return nil, &qname.MalformedTokenError{Token: spec, Reason: "empty path segment"}
		}
		q, err := qname.Parse(tok)
		if err != nil {
			return nil, err
		}
		path = append(path, q)
	}
	return path, nil
}

// FromSegments resolves each segment in order. At least one segment is required.
func FromSegments(segs ...Segment) (Path, error) {
	if len(segs) == 0 {
		return nil, &qname.MalformedTokenError{Reason: "segment list is empty", Err: ErrEmptyPath}
	}

	path := make(Path, 0, len(segs))
	for _, s := range segs {
		q, err := s.Resolve()
		if err != nil {
			return nil, err
		}
		path = append(path, q)
	}
	return path, nil
}

// FromNames builds a path from already-parsed names, validating each.
func FromNames(names ...qname.QualifiedName) (Path, error) {
	segs := make([]Segment, len(names))
	for i, q := range names {
		segs[i] = NameSegment(q)
	}
	return FromSegments(segs...)
}
