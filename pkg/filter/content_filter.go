package filter

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mash-protocol/eventfilter-go/pkg/nodeid"
)

// Content filter validation errors.
var (
	ErrInvalidOperator = errors.New("invalid filter operator")
	ErrInvalidOperand  = errors.New("invalid filter operand")
)

// OperandKind distinguishes the operand variants.
type OperandKind uint8

const (
	// OperandElement references another element of the same filter by index.
	OperandElement OperandKind = 1

	// OperandLiteral carries a NodeID literal.
	OperandLiteral OperandKind = 2
)

// Operand is one operand of a content filter element.
type Operand struct {
	kind    OperandKind
	index   uint32
	literal nodeid.NodeID
}

// ElementOperand returns an operand referencing element i.
func ElementOperand(i uint32) Operand {
	return Operand{kind: OperandElement, index: i}
}

// LiteralOperand returns an operand carrying id.
func LiteralOperand(id nodeid.NodeID) Operand {
	return Operand{kind: OperandLiteral, literal: id}
}

// Kind returns the operand variant.
func (o Operand) Kind() OperandKind { return o.kind }

// Index returns the referenced element; ok is false for literals.
func (o Operand) Index() (uint32, bool) {
	return o.index, o.kind == OperandElement
}

// Literal returns the literal value; ok is false for element references.
func (o Operand) Literal() (nodeid.NodeID, bool) {
	return o.literal, o.kind == OperandLiteral
}

func (o Operand) String() string {
	if o.kind == OperandElement {
		return "#" + strconv.FormatUint(uint64(o.index), 10)
	}
	return o.literal.ShortString()
}

// ContentFilterElement is one operator applied to its operands.
type ContentFilterElement struct {
	Operator FilterOperator
	Operands []Operand
}

// ContentFilter is a predicate tree stored as a flat element list.
// Element 0 is the root; element operands always point forward.
type ContentFilter struct {
	Elements []ContentFilterElement
}

// OfTypeFilter returns a filter matching events whose type is any of
// ids. A single id is one OfType element; more ids form a right-nested
// Or chain rooted at element 0:
//
//	[0] Or(#1, #2)
//	[1] OfType(t0)
//	[2] Or(#3, #4)
//	[3] OfType(t1)
//	[4] OfType(t2)
//
// No ids yields nil: no where clause at all.
func OfTypeFilter(ids ...nodeid.NodeID) *ContentFilter {
	if len(ids) == 0 {
		return nil
	}

	elems := make([]ContentFilterElement, 0, 2*len(ids)-1)
	last := len(ids) - 1
	for i, id := range ids[:last] {
		next := uint32(2*i + 1)
		elems = append(elems,
			ContentFilterElement{
				Operator: OperatorOr,
				Operands: []Operand{ElementOperand(next), ElementOperand(next + 1)},
			},
			ofType(id),
		)
	}
	elems = append(elems, ofType(ids[last]))

	return &ContentFilter{Elements: elems}
}

func ofType(id nodeid.NodeID) ContentFilterElement {
	return ContentFilterElement{
		Operator: OperatorOfType,
		Operands: []Operand{LiteralOperand(id)},
	}
}

// OfTypes returns the type ids of all OfType elements in element order.
func (c *ContentFilter) OfTypes() []nodeid.NodeID {
	if c == nil {
		return nil
	}
	var ids []nodeid.NodeID
	for _, e := range c.Elements {
		if e.Operator != OperatorOfType {
			continue
		}
		for _, op := range e.Operands {
			if id, ok := op.Literal(); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Clone returns a deep copy. The clone of nil is nil.
func (c *ContentFilter) Clone() *ContentFilter {
	if c == nil {
		return nil
	}
	elems := make([]ContentFilterElement, len(c.Elements))
	for i, e := range c.Elements {
		elems[i] = ContentFilterElement{Operator: e.Operator, Operands: slices.Clone(e.Operands)}
	}
	return &ContentFilter{Elements: elems}
}

// Equal reports whether both filters have identical elements.
func (c *ContentFilter) Equal(other *ContentFilter) bool {
	if c == nil || other == nil {
		return c == other
	}
	return slices.EqualFunc(c.Elements, other.Elements, func(a, b ContentFilterElement) bool {
		return a.Operator == b.Operator && slices.Equal(a.Operands, b.Operands)
	})
}

// Validate checks operators and operand references.
func (c *ContentFilter) Validate() error {
	if c == nil {
		return nil
	}
	for i, e := range c.Elements {
		if !e.Operator.IsValid() {
			return fmt.Errorf("element %d: %w: %d", i, ErrInvalidOperator, e.Operator)
		}
		for _, op := range e.Operands {
			switch op.kind {
			case OperandElement:
				if int(op.index) <= i || int(op.index) >= len(c.Elements) {
					return fmt.Errorf("element %d: %w: reference to #%d", i, ErrInvalidOperand, op.index)
				}
			case OperandLiteral:
			default:
				return fmt.Errorf("element %d: %w: kind %d", i, ErrInvalidOperand, op.kind)
			}
		}
		if e.Operator == OperatorOfType && (len(e.Operands) != 1 || e.Operands[0].kind != OperandLiteral) {
			return fmt.Errorf("element %d: %w: OfType takes one literal", i, ErrInvalidOperand)
		}
	}
	return nil
}

// String renders one element per line.
func (c *ContentFilter) String() string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	for i, e := range c.Elements {
		if i > 0 {
			b.WriteByte('\n')
		}
		ops := make([]string, len(e.Operands))
		for j, op := range e.Operands {
			ops[j] = op.String()
		}
		fmt.Fprintf(&b, "[%d] %s(%s)", i, e.Operator, strings.Join(ops, ", "))
	}
	return b.String()
}
