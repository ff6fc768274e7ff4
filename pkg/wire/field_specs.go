package wire

import (
	"fmt"

	"github.com/mash-protocol/eventfilter-go/pkg/filter"
)

// EncodeFieldSpecs encodes a field spec in its generic shape.
func EncodeFieldSpecs(spec filter.FieldSpec) ([]byte, error) {
	return Marshal(spec.Raw())
}

// DecodeFieldSpecs decodes a field spec document and classifies it.
func DecodeFieldSpecs(data []byte) (filter.FieldSpec, error) {
	var raw any
	if err := Unmarshal(data, &raw); err != nil {
		return filter.FieldSpec{}, fmt.Errorf("failed to decode field specs: %w", err)
	}
	return filter.Classify(raw)
}
