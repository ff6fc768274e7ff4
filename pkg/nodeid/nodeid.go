package nodeid

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Parse errors.
var (
	ErrInvalidNodeID     = errors.New("invalid node id")
	ErrUnsupportedNodeID = errors.New("unsupported node id value")
)

// IDType is the kind of identifier a NodeID carries.
type IDType uint8

const (
	// TypeNumeric is a uint32 identifier.
	TypeNumeric IDType = 0

	// TypeString is a string identifier.
	TypeString IDType = 1

	// TypeGUID is a GUID identifier.
	TypeGUID IDType = 2

	// TypeOpaque is an opaque byte string identifier.
	TypeOpaque IDType = 3
)

// String returns the text form prefix for the type.
func (t IDType) String() string {
	switch t {
	case TypeNumeric:
		return "i"
	case TypeString:
		return "s"
	case TypeGUID:
		return "g"
	case TypeOpaque:
		return "b"
	default:
		return "?"
	}
}

// NodeID is an immutable node identifier. The zero value is ns=0;i=0.
type NodeID struct {
	ns      uint16
	idType  IDType
	numeric uint32
	// str holds the string identifier, or the raw bytes of an opaque one.
	str  string
	guid uuid.UUID
}

// Numeric identifiers of well-known types in namespace 0.
const (
	BaseEventTypeID      uint32 = 2041
	ConditionTypeID      uint32 = 2782
	AlarmConditionTypeID uint32 = 2915
)

// BaseEventType returns the id of the supertype of all event types.
func BaseEventType() NodeID { return Numeric(0, BaseEventTypeID) }

// ConditionType returns the id of the base type of all conditions.
func ConditionType() NodeID { return Numeric(0, ConditionTypeID) }

// AlarmConditionType returns the id of the base type of all alarms.
func AlarmConditionType() NodeID { return Numeric(0, AlarmConditionTypeID) }

// Numeric returns a numeric NodeID.
func Numeric(ns uint16, id uint32) NodeID {
	return NodeID{ns: ns, idType: TypeNumeric, numeric: id}
}

// String returns a string NodeID.
func String(ns uint16, id string) NodeID {
	return NodeID{ns: ns, idType: TypeString, str: id}
}

// GUID returns a GUID NodeID.
func GUID(ns uint16, id uuid.UUID) NodeID {
	return NodeID{ns: ns, idType: TypeGUID, guid: id}
}

// Opaque returns an opaque NodeID. The bytes are copied.
func Opaque(ns uint16, id []byte) NodeID {
	return NodeID{ns: ns, idType: TypeOpaque, str: string(id)}
}

// Namespace returns the namespace index.
func (n NodeID) Namespace() uint16 { return n.ns }

// Type returns the identifier type.
func (n NodeID) Type() IDType { return n.idType }

// NumericID returns the numeric identifier; ok is false for other types.
func (n NodeID) NumericID() (uint32, bool) {
	return n.numeric, n.idType == TypeNumeric
}

// StringID returns the string identifier; ok is false for other types.
func (n NodeID) StringID() (string, bool) {
	if n.idType != TypeString {
		return "", false
	}
	return n.str, true
}

// GUIDID returns the GUID identifier; ok is false for other types.
func (n NodeID) GUIDID() (uuid.UUID, bool) {
	return n.guid, n.idType == TypeGUID
}

// OpaqueID returns a copy of the opaque identifier; ok is false for other types.
func (n NodeID) OpaqueID() ([]byte, bool) {
	if n.idType != TypeOpaque {
		return nil, false
	}
	return []byte(n.str), true
}

// IsZero reports whether n is the null NodeID (ns=0;i=0).
func (n NodeID) IsZero() bool {
	return n == NodeID{}
}

// String returns the full text form, always including the namespace.
func (n NodeID) String() string {
	return "ns=" + strconv.FormatUint(uint64(n.ns), 10) + ";" + n.identifier()
}

// ShortString returns the text form, omitting "ns=0;" for namespace 0.
func (n NodeID) ShortString() string {
	if n.ns == 0 {
		return n.identifier()
	}
	return n.String()
}

func (n NodeID) identifier() string {
	switch n.idType {
	case TypeString:
		return "s=" + n.str
	case TypeGUID:
		return "g=" + n.guid.String()
	case TypeOpaque:
		return "b=" + base64.StdEncoding.EncodeToString([]byte(n.str))
	default:
		return "i=" + strconv.FormatUint(uint64(n.numeric), 10)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n NodeID) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NodeID) UnmarshalText(text []byte) error {
	id, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = id
	return nil
}

// Parse parses the text form of a NodeID.
func Parse(s string) (NodeID, error) {
	rest := s
	var ns uint16

	if strings.HasPrefix(rest, "ns=") {
		prefix, tail, found := strings.Cut(rest[len("ns="):], ";")
		if !found {
			return NodeID{}, fmt.Errorf("%w %q: missing ';' after namespace", ErrInvalidNodeID, s)
		}
		v, err := strconv.ParseUint(prefix, 10, 16)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w %q: bad namespace %q", ErrInvalidNodeID, s, prefix)
		}
		ns = uint16(v)
		rest = tail
	}

	kind, value, found := strings.Cut(rest, "=")
	if !found {
		return NodeID{}, fmt.Errorf("%w %q: missing identifier type", ErrInvalidNodeID, s)
	}

	switch kind {
	case "i":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w %q: bad numeric identifier", ErrInvalidNodeID, s)
		}
		return Numeric(ns, uint32(v)), nil
	case "s":
		// An empty string identifier is legal and round-trips as "s=".
		return String(ns, value), nil
	case "g":
		g, err := uuid.Parse(value)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w %q: %w", ErrInvalidNodeID, s, err)
		}
		return GUID(ns, g), nil
	case "b":
		b, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w %q: %w", ErrInvalidNodeID, s, err)
		}
		return Opaque(ns, b), nil
	default:
		return NodeID{}, fmt.Errorf("%w %q: unknown identifier type %q", ErrInvalidNodeID, s, kind)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(s string) NodeID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Coerce converts a loosely typed value into a NodeID. It accepts a
// NodeID, its text form, or a non-negative integer which is taken as a
// numeric identifier in namespace 0. Decoded YAML, JSON and CBOR
// numbers are all handled.
func Coerce(v any) (NodeID, error) {
	switch x := v.(type) {
	case NodeID:
		return x, nil
	case *NodeID:
		if x == nil {
			break
		}
		return *x, nil
	case string:
		return Parse(x)
	case int:
		return coerceInt(int64(x))
	case int64:
		return coerceInt(x)
	case uint64:
		if x > 0xFFFFFFFF {
			break
		}
		return Numeric(0, uint32(x)), nil
	case uint32:
		return Numeric(0, x), nil
	case float64:
		if x != float64(int64(x)) {
			break
		}
		return coerceInt(int64(x))
	}
	return NodeID{}, fmt.Errorf("%w: %v (%T)", ErrUnsupportedNodeID, v, v)
}

func coerceInt(v int64) (NodeID, error) {
	if v < 0 || v > 0xFFFFFFFF {
		return NodeID{}, fmt.Errorf("%w: %d out of range", ErrUnsupportedNodeID, v)
	}
	return Numeric(0, uint32(v)), nil
}

// CoerceAll converts each value with Coerce, preserving order.
func CoerceAll(vs []any) ([]NodeID, error) {
	ids := make([]NodeID, 0, len(vs))
	for i, v := range vs {
		id, err := Coerce(v)
		if err != nil {
			return nil, fmt.Errorf("node id %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
