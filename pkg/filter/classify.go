package filter

import (
	"fmt"
	"math"
	"reflect"

	"github.com/mash-protocol/eventfilter-go/pkg/browsepath"
	"github.com/mash-protocol/eventfilter-go/pkg/qname"
)

// Keys of a qualified name written as an object.
const (
	keyNamespaceIndex = "namespaceIndex"
	keyName           = "name"
)

// nesting is the level a raw value was found at.
type nesting int

const (
	atTop  nesting = iota // the caller's whole input
	inList                // one element of the field list
	inPath                // one segment of a field's path
)

func (n nesting) String() string {
	switch n {
	case atTop:
		return "field spec"
	case inList:
		return "field list element"
	default:
		return "path segment"
	}
}

// Classify turns raw input into a FieldSpec. It accepts the native
// types of this module and the generic shapes produced by YAML, JSON
// and CBOR decoders. nil means no fields.
//
// An array at the top level is a list of fields. An array inside that
// list is the segment list of one field. Arrays nested deeper are
// rejected.
func Classify(raw any) (FieldSpec, error) {
	if raw == nil {
		return List(), nil
	}
	return classifyShape(raw, atTop)
}

// classifyShape is the only place that inspects raw shapes.
func classifyShape(raw any, at nesting) (FieldSpec, error) {
	switch v := raw.(type) {
	case string:
		return Token(v), nil

	case qname.QualifiedName:
		return Name(v), nil

	case *qname.QualifiedName:
		if v != nil {
			return Name(*v), nil
		}

	case map[string]any:
		q, err := nameFromObject(v, at)
		if err != nil {
			return FieldSpec{}, err
		}
		return Name(q), nil

	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			key, ok := k.(string)
			if !ok {
				return FieldSpec{}, &InvalidSpecShapeError{Value: raw, Where: at.String(), Reason: "non-string object key"}
			}
			m[key] = val
		}
		q, err := nameFromObject(m, at)
		if err != nil {
			return FieldSpec{}, err
		}
		return Name(q), nil

	case FieldSpec:
		return checkSpec(v, at)

	case browsepath.Segment:
		if at == inPath {
			if q, ok := v.Name(); ok {
				return Name(q), nil
			}
			return Token(v.String()), nil
		}
		return PathOf(v), nil

	case browsepath.Path:
		if at == inPath {
			break
		}
		segs := make([]browsepath.Segment, len(v))
		for i, q := range v {
			segs[i] = browsepath.NameSegment(q)
		}
		return PathOf(segs...), nil

	case []browsepath.Segment:
		if at == inPath {
			break
		}
		return PathOf(v...), nil
	}

	elems, ok := listElements(raw)
	if !ok {
		return FieldSpec{}, &InvalidSpecShapeError{Value: raw, Where: at.String()}
	}

	switch at {
	case atTop:
		specs := make([]FieldSpec, 0, len(elems))
		for i, e := range elems {
			spec, err := classifyShape(e, inList)
			if err != nil {
				return FieldSpec{}, fmt.Errorf("field %d: %w", i, err)
			}
			specs = append(specs, spec)
		}
		return List(specs...), nil

	case inList:
		segs := make([]browsepath.Segment, 0, len(elems))
		for i, e := range elems {
			spec, err := classifyShape(e, inPath)
			if err != nil {
				return FieldSpec{}, fmt.Errorf("segment %d: %w", i, err)
			}
			seg, err := segmentOf(spec)
			if err != nil {
				return FieldSpec{}, fmt.Errorf("segment %d: %w", i, err)
			}
			segs = append(segs, seg)
		}
		return PathOf(segs...), nil

	default:
		return FieldSpec{}, &InvalidSpecShapeError{Value: raw, Where: at.String(), Reason: "arrays nest at most two levels"}
	}
}

// checkSpec accepts an already-classified spec where its kind fits the level.
func checkSpec(s FieldSpec, at nesting) (FieldSpec, error) {
	switch {
	case s.kind == SpecInvalid:
		return FieldSpec{}, &InvalidSpecShapeError{Value: s.String(), Where: at.String(), Reason: "unclassified"}
	case at == inList && s.kind == SpecList:
		return FieldSpec{}, &InvalidSpecShapeError{Value: s.String(), Where: at.String(), Reason: "list nested inside a field list"}
	case at == inPath && s.kind != SpecSingleToken && s.kind != SpecQualifiedName:
		return FieldSpec{}, &InvalidSpecShapeError{Value: s.String(), Where: at.String(), Reason: "segment must be a token or a name"}
	}
	return s, nil
}

// segmentOf converts a classified path segment, rejecting any spec
// that is not a token or a name.
func segmentOf(spec FieldSpec) (browsepath.Segment, error) {
	seg, ok := spec.segment()
	if !ok {
		return browsepath.Segment{}, &InvalidSpecShapeError{Value: spec.String(), Where: inPath.String(), Reason: "segment must be a token or a name"}
	}
	return seg, nil
}

// listElements returns the elements of any slice. Decoders produce
// []any, callers pass typed slices such as []string or []browsepath.Path.
func listElements(raw any) ([]any, bool) {
	if v, ok := raw.([]any); ok {
		return v, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// nameFromObject reads a {namespaceIndex, name} object. A missing
// namespaceIndex defaults to qname.DefaultNamespaceIndex.
func nameFromObject(m map[string]any, at nesting) (qname.QualifiedName, error) {
	bad := func(reason string) error {
		return &InvalidSpecShapeError{Value: m, Where: at.String(), Reason: reason}
	}

	for k := range m {
		if k != keyName && k != keyNamespaceIndex {
			return qname.QualifiedName{}, bad(fmt.Sprintf("unknown key %q", k))
		}
	}

	name, ok := m[keyName].(string)
	if !ok {
		return qname.QualifiedName{}, bad("name must be a string")
	}

	ns := qname.DefaultNamespaceIndex
	if raw, present := m[keyNamespaceIndex]; present {
		v, ok := namespaceIndex(raw)
		if !ok {
			return qname.QualifiedName{}, bad("namespaceIndex must be an integer in [0, 65535]")
		}
		ns = v
	}

	return qname.New(ns, name), nil
}

// namespaceIndex converts the integer types decoders produce.
func namespaceIndex(raw any) (uint16, bool) {
	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case uint64:
		if v > math.MaxUint16 {
			return 0, false
		}
		n = int64(v)
	case uint16:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		n = int64(v)
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxUint16 {
		return 0, false
	}
	return uint16(n), true
}
