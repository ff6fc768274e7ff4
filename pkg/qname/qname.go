package qname

import (
	"strconv"
	"strings"
)

// DefaultNamespaceIndex is used when a token carries no namespace prefix.
const DefaultNamespaceIndex uint16 = 0

const (
	// NamespaceSeparator separates the namespace prefix from the name.
	NamespaceSeparator = ":"

	// PathSeparator separates the segments of a dotted browse path.
	PathSeparator = "."
)

// QualifiedName is a name qualified by a namespace index.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// New returns a QualifiedName in the given namespace.
func New(ns uint16, name string) QualifiedName {
	return QualifiedName{NamespaceIndex: ns, Name: name}
}

// String returns the token form. Namespace 0 is written without prefix,
// so Parse(q.String()) == q for every valid q.
func (q QualifiedName) String() string {
	if q.NamespaceIndex == DefaultNamespaceIndex {
		return q.Name
	}
	return strconv.FormatUint(uint64(q.NamespaceIndex), 10) + NamespaceSeparator + q.Name
}

// Parse parses a "<ns>:<name>" or "<name>" token.
func Parse(token string) (QualifiedName, error) {
	prefix, name, found := strings.Cut(token, NamespaceSeparator)
	if !found {
		return checkName(token, DefaultNamespaceIndex, token)
	}

	if strings.Contains(name, NamespaceSeparator) {
		return QualifiedName{}, malformed(token, "more than one namespace separator")
	}
	if prefix == "" {
		return QualifiedName{}, malformed(token, "empty namespace prefix")
	}

	// ParseUint rejects signs and whitespace.
	ns, err := strconv.ParseUint(prefix, 10, 16)
	if err != nil {
		return QualifiedName{}, malformed(token, "namespace prefix "+strconv.Quote(prefix)+" is not an index")
	}

	return checkName(token, uint16(ns), name)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(token string) QualifiedName {
	q, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return q
}

// Validate checks an already-structured name and returns it unchanged.
// Validating a valid name is the identity.
func Validate(q QualifiedName) (QualifiedName, error) {
	return checkName(q.String(), q.NamespaceIndex, q.Name)
}

func checkName(token string, ns uint16, name string) (QualifiedName, error) {
	switch {
	case name == "":
		return QualifiedName{}, malformed(token, "empty name")
	case strings.Contains(name, NamespaceSeparator):
		return QualifiedName{}, malformed(token, "name contains "+strconv.Quote(NamespaceSeparator))
	case strings.Contains(name, PathSeparator):
		return QualifiedName{}, malformed(token, "name contains "+strconv.Quote(PathSeparator))
	}
	return QualifiedName{NamespaceIndex: ns, Name: name}, nil
}
