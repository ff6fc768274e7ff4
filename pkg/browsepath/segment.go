package browsepath

import "github.com/mash-protocol/eventfilter-go/pkg/qname"

// Segment is one step of a browse path as the caller wrote it: either a
// "<ns>:<name>" token or an already-parsed qualified name.
type Segment struct {
	token  string
	name   qname.QualifiedName
	parsed bool
}

// TokenSegment returns a segment that is parsed on Resolve.
func TokenSegment(token string) Segment {
	return Segment{token: token}
}

// NameSegment returns a segment holding an already-parsed name.
func NameSegment(q qname.QualifiedName) Segment {
	return Segment{name: q, parsed: true}
}

// Name returns the held name without validating it; ok is false for tokens.
func (s Segment) Name() (qname.QualifiedName, bool) {
	return s.name, s.parsed
}

// Resolve returns the qualified name for the segment. Already-parsed
// names are validated and passed through unchanged.
func (s Segment) Resolve() (qname.QualifiedName, error) {
	if s.parsed {
		return qname.Validate(s.name)
	}
	return qname.Parse(s.token)
}

// String returns the token form of the segment.
func (s Segment) String() string {
	if s.parsed {
		return s.name.String()
	}
	return s.token
}
