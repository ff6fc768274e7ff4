// Package qname implements namespace-qualified names.
//
// A QualifiedName identifies one step of a browse path within a given
// namespace. The text form is "<ns>:<name>", or just "<name>" for
// namespace 0:
//
//	"SourceName"   -> {0, "SourceName"}
//	"2:Component1" -> {2, "Component1"}
//
// The characters '.' and ':' are syntax in browse path specs and are
// never accepted as part of a name.
package qname
