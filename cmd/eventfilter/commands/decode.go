package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mash-protocol/eventfilter-go/pkg/filter"
	"github.com/mash-protocol/eventfilter-go/pkg/wire"
)

// RunDecode reads a CBOR sequence of interchange documents and writes
// the filter each one describes. Field spec documents are built first.
func RunDecode(path string, format Format, logger *slog.Logger, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	count := 0
	err = wire.ReadDocuments(f, func(data []byte) error {
		ef, err := decodeDocument(data, logger)
		if err != nil {
			return err
		}
		count++
		return WriteFilter(w, "", ef, format)
	})
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no documents in %s", path)
	}
	return nil
}

func decodeDocument(data []byte, logger *slog.Logger) (filter.EventFilter, error) {
	kind, err := wire.PeekDocumentType(data)
	if err != nil {
		return filter.EventFilter{}, err
	}
	debug(logger, "decoding document", "type", kind.String(), "bytes", len(data))

	switch kind {
	case wire.DocumentEventFilter:
		return wire.DecodeEventFilter(data)
	case wire.DocumentFieldSpecs:
		spec, err := wire.DecodeFieldSpecs(data)
		if err != nil {
			return filter.EventFilter{}, err
		}
		return filter.Build(spec)
	default:
		return filter.EventFilter{}, errors.New("unrecognised document")
	}
}
