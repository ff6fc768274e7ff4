// Package wire defines the CBOR interchange format for event filters.
//
// This is the format the eventfilter tooling reads and writes: it is
// not the binary encoding a server expects on the wire. Documents use
// CBOR (RFC 8949) with canonical encoding, so two structurally equal
// filters always encode to the same bytes.
//
// # Document Types
//
// There are two document types:
//   - EventFilter: a built filter, integer-keyed maps (see EventFilterWire)
//   - Field specs: raw field specs in the generic shape (strings, arrays
//     and {namespaceIndex, name} maps with text keys), classified on decode
//
// PeekDocumentType tells them apart without fully decoding.
//
// # CBOR Integer Keys
//
// EventFilter documents use integer keys for compactness:
//
//	{
//	  1: [ {1: typeDefinitionId, 2: [{1: ns, 2: name}, ...], 3: attributeId}, ... ],
//	  2: {1: [ {1: operator, 2: [{1: kind, 2: index, 3: literal}, ...]}, ... ]}
//	}
//
// Node ids are carried in their text form. Key 2 is absent when the
// filter has no where clause.
package wire
