// Package nodeid implements the NodeId value type.
//
// A NodeID identifies a node in a server's address space. This package
// treats it as an opaque, immutable value: it can be parsed from and
// formatted to the standard text form, compared with ==, and copied
// through unchanged. Nothing here interprets what a NodeID refers to.
//
// # Text Form
//
//	ns=<namespace>;<type>=<value>
//
// where type is one of:
//   - i: numeric (uint32)
//   - s: string
//   - g: GUID
//   - b: opaque bytes, base64 encoded
//
// The "ns=<namespace>;" prefix may be omitted for namespace 0.
package nodeid
