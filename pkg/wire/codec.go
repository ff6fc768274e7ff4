package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for interchange documents.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for interchange documents.
var decMode cbor.DecMode

func init() {
	var err error

	// Configure encoder for deterministic output
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsEmpty,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Duplicate keys would make a field spec object ambiguous.
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder creates a new CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a new CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// DocumentType is the type of an interchange document.
type DocumentType int

const (
	DocumentUnknown DocumentType = iota
	DocumentEventFilter
	DocumentFieldSpecs
)

// String returns the document type name.
func (d DocumentType) String() string {
	switch d {
	case DocumentEventFilter:
		return "event-filter"
	case DocumentFieldSpecs:
		return "field-specs"
	default:
		return "unknown"
	}
}

// PeekDocumentType examines CBOR data to determine the document type.
//
// Detection logic:
// - EventFilter: a map with integer key 1
// - Field specs: a text string, an array, or a map with text keys
func PeekDocumentType(data []byte) (DocumentType, error) {
	var raw any
	if err := Unmarshal(data, &raw); err != nil {
		return DocumentUnknown, fmt.Errorf("failed to peek document: %w", err)
	}

	switch v := raw.(type) {
	case map[any]any:
		if _, ok := v[uint64(KeySelectClauses)]; ok {
			return DocumentEventFilter, nil
		}
		return DocumentFieldSpecs, nil
	case string, []any:
		return DocumentFieldSpecs, nil
	default:
		return DocumentUnknown, nil
	}
}

// Equal compares two values by their CBOR encoding.
func Equal(a, b any) bool {
	dataA, errA := Marshal(a)
	dataB, errB := Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(dataA, dataB)
}
