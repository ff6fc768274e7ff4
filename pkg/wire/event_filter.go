package wire

import (
	"errors"
	"fmt"

	"github.com/mash-protocol/eventfilter-go/pkg/browsepath"
	"github.com/mash-protocol/eventfilter-go/pkg/filter"
	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
	"github.com/mash-protocol/eventfilter-go/pkg/qname"
)

// ErrInvalidEventFilter is returned when a decoded EventFilter document
// does not describe a valid filter.
var ErrInvalidEventFilter = errors.New("invalid event filter")

// CBOR map keys for EventFilter documents.
const (
	KeySelectClauses = 1
	KeyWhereClause   = 2
)

// EventFilterWire is the CBOR form of a filter.EventFilter.
type EventFilterWire struct {
	SelectClauses []SelectClauseWire `cbor:"1,keyasint"`
	WhereClause   *ContentFilterWire `cbor:"2,keyasint,omitempty"`
}

// SelectClauseWire is the CBOR form of a filter.SelectClause.
type SelectClauseWire struct {
	TypeDefinitionID string              `cbor:"1,keyasint"`
	BrowsePath       []QualifiedNameWire `cbor:"2,keyasint"`
	AttributeID      uint32              `cbor:"3,keyasint"`
}

// QualifiedNameWire is the CBOR form of a qname.QualifiedName.
type QualifiedNameWire struct {
	NamespaceIndex uint16 `cbor:"1,keyasint"`
	Name           string `cbor:"2,keyasint"`
}

// ContentFilterWire is the CBOR form of a filter.ContentFilter.
type ContentFilterWire struct {
	Elements []ElementWire `cbor:"1,keyasint"`
}

// ElementWire is the CBOR form of a filter.ContentFilterElement.
type ElementWire struct {
	Operator uint32        `cbor:"1,keyasint"`
	Operands []OperandWire `cbor:"2,keyasint,omitempty"`
}

// OperandWire is the CBOR form of a filter.Operand.
type OperandWire struct {
	Kind    uint8  `cbor:"1,keyasint"`
	Index   uint32 `cbor:"2,keyasint,omitempty"`
	Literal string `cbor:"3,keyasint,omitempty"`
}

// ToWire converts a filter to its CBOR form.
func ToWire(ef filter.EventFilter) EventFilterWire {
	clauses := ef.SelectClauses()
	w := EventFilterWire{SelectClauses: make([]SelectClauseWire, len(clauses))}

	for i, c := range clauses {
		path := make([]QualifiedNameWire, len(c.BrowsePath))
		for j, q := range c.BrowsePath {
			path[j] = QualifiedNameWire{NamespaceIndex: q.NamespaceIndex, Name: q.Name}
		}
		w.SelectClauses[i] = SelectClauseWire{
			TypeDefinitionID: c.TypeDefinitionID.String(),
			BrowsePath:       path,
			AttributeID:      uint32(c.AttributeID),
		}
	}

	if where := ef.WhereClause(); where != nil {
		cf := &ContentFilterWire{Elements: make([]ElementWire, len(where.Elements))}
		for i, e := range where.Elements {
			ops := make([]OperandWire, len(e.Operands))
			for j, op := range e.Operands {
				ops[j] = OperandWire{Kind: uint8(op.Kind())}
				if idx, ok := op.Index(); ok {
					ops[j].Index = idx
				}
				if lit, ok := op.Literal(); ok {
					ops[j].Literal = lit.String()
				}
			}
			cf.Elements[i] = ElementWire{Operator: uint32(e.Operator), Operands: ops}
		}
		w.WhereClause = cf
	}

	return w
}

// FromWire converts and validates a decoded filter.
func FromWire(w EventFilterWire) (filter.EventFilter, error) {
	clauses := make([]filter.SelectClause, len(w.SelectClauses))
	for i, sc := range w.SelectClauses {
		c, err := selectClauseFromWire(sc)
		if err != nil {
			return filter.EventFilter{}, fmt.Errorf("%w: select clause %d: %w", ErrInvalidEventFilter, i, err)
		}
		clauses[i] = c
	}

	var where *filter.ContentFilter
	if w.WhereClause != nil {
		cf, err := contentFilterFromWire(*w.WhereClause)
		if err != nil {
			return filter.EventFilter{}, fmt.Errorf("%w: where clause: %w", ErrInvalidEventFilter, err)
		}
		where = cf
	}

	return filter.NewEventFilter(clauses, where), nil
}

func selectClauseFromWire(sc SelectClauseWire) (filter.SelectClause, error) {
	typeID, err := nodeid.Parse(sc.TypeDefinitionID)
	if err != nil {
		return filter.SelectClause{}, err
	}

	attr := filter.AttributeID(sc.AttributeID)
	if !attr.IsValid() {
		return filter.SelectClause{}, fmt.Errorf("unknown attribute id %d", sc.AttributeID)
	}

	path := make(browsepath.Path, len(sc.BrowsePath))
	for i, q := range sc.BrowsePath {
		name, err := qname.Validate(qname.New(q.NamespaceIndex, q.Name))
		if err != nil {
			return filter.SelectClause{}, err
		}
		path[i] = name
	}

	return filter.SelectClause{TypeDefinitionID: typeID, BrowsePath: path, AttributeID: attr}, nil
}

func contentFilterFromWire(w ContentFilterWire) (*filter.ContentFilter, error) {
	cf := &filter.ContentFilter{Elements: make([]filter.ContentFilterElement, len(w.Elements))}
	for i, e := range w.Elements {
		ops := make([]filter.Operand, len(e.Operands))
		for j, op := range e.Operands {
			switch filter.OperandKind(op.Kind) {
			case filter.OperandElement:
				ops[j] = filter.ElementOperand(op.Index)
			case filter.OperandLiteral:
				id, err := nodeid.Parse(op.Literal)
				if err != nil {
					return nil, fmt.Errorf("element %d operand %d: %w", i, j, err)
				}
				ops[j] = filter.LiteralOperand(id)
			default:
				return nil, fmt.Errorf("element %d operand %d: %w: kind %d", i, j, filter.ErrInvalidOperand, op.Kind)
			}
		}
		cf.Elements[i] = filter.ContentFilterElement{Operator: filter.FilterOperator(e.Operator), Operands: ops}
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

// EncodeEventFilter encodes a filter to CBOR bytes.
func EncodeEventFilter(ef filter.EventFilter) ([]byte, error) {
	return Marshal(ToWire(ef))
}

// DecodeEventFilter decodes CBOR bytes into a validated filter.
func DecodeEventFilter(data []byte) (filter.EventFilter, error) {
	var w EventFilterWire
	if err := Unmarshal(data, &w); err != nil {
		return filter.EventFilter{}, fmt.Errorf("failed to decode event filter: %w", err)
	}
	return FromWire(w)
}

// EqualEventFilters compares two filters by their canonical encoding.
func EqualEventFilters(a, b filter.EventFilter) bool {
	return Equal(ToWire(a), ToWire(b))
}
