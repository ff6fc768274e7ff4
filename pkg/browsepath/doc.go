// Package browsepath tokenizes browse path specs into ordered sequences
// of qualified names.
//
// A browse path can be written as a dotted string or as a list of
// segments; both surface syntaxes produce the same Path:
//
//	Parse("2:Component1.3:Property1")
//	FromSegments(TokenSegment("2:Component1"), TokenSegment("3:Property1"))
//	// both: [{2 Component1} {3 Property1}]
//
// An empty Path is legal and addresses the event itself.
package browsepath
