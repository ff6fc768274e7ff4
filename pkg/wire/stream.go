package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/mash-protocol/eventfilter-go/pkg/filter"
)

// WriteEventFilter writes one filter document to w. Writing several
// filters to the same stream produces a CBOR sequence.
func WriteEventFilter(w io.Writer, ef filter.EventFilter) error {
	return NewEncoder(w).Encode(ToWire(ef))
}

// ReadDocuments reads a CBOR sequence from r and calls fn with the raw
// bytes of each document in order. It stops at the first error.
func ReadDocuments(r io.Reader, fn func(data []byte) error) error {
	dec := NewDecoder(r)
	for i := 0; ; i++ {
		var doc cbor.RawMessage
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read document %d: %w", i, err)
		}
		if err := fn(doc); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
}
