package ua

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NodeID parse errors.
var (
	ErrEmptyNodeID      = errors.New("empty node id")
	ErrInvalidNodeID    = errors.New("invalid node id")
	ErrInvalidNamespace = errors.New("invalid namespace")
)

// IDType is the type of a NodeID identifier.
type IDType uint8

const (
	// IDTypeNumeric is a 32-bit unsigned integer identifier.
	IDTypeNumeric IDType = iota

	// IDTypeString is a string identifier.
	IDTypeString

	// IDTypeGUID is a GUID identifier.
	IDTypeGUID

	// IDTypeOpaque is a byte string identifier.
	IDTypeOpaque
)

// String returns the identifier type prefix used in the text form.
func (t IDType) String() string {
	switch t {
	case IDTypeNumeric:
		return "i"
	case IDTypeString:
		return "s"
	case IDTypeGUID:
		return "g"
	case IDTypeOpaque:
		return "b"
	default:
		return "?"
	}
}

// NodeID identifies a node within one server.
//
// The namespace is given by an index into the server's namespace array,
// by a namespace URI, or both. NodeID is comparable and can be used as a
// map key. The zero value has neither namespace index nor URI and is not
// a usable identifier; use NewNumericNodeID(0, 0) for the null node.
type NodeID struct {
	nsIndex uint16
	nsURI   string
	nsKnown bool

	idType IDType
	num    uint32
	str    string // string identifier, or raw bytes of an opaque identifier
	guid   uuid.UUID
}

// NewNumericNodeID creates a numeric NodeID in namespace ns.
func NewNumericNodeID(ns uint16, id uint32) NodeID {
	return NodeID{nsIndex: ns, nsKnown: true, idType: IDTypeNumeric, num: id}
}

// NewStringNodeID creates a string NodeID in namespace ns.
func NewStringNodeID(ns uint16, id string) NodeID {
	return NodeID{nsIndex: ns, nsKnown: true, idType: IDTypeString, str: id}
}

// NewGUIDNodeID creates a GUID NodeID in namespace ns.
func NewGUIDNodeID(ns uint16, id uuid.UUID) NodeID {
	return NodeID{nsIndex: ns, nsKnown: true, idType: IDTypeGUID, guid: id}
}

// NewOpaqueNodeID creates an opaque NodeID in namespace ns.
func NewOpaqueNodeID(ns uint16, id []byte) NodeID {
	return NodeID{nsIndex: ns, nsKnown: true, idType: IDTypeOpaque, str: string(id)}
}

// WithNamespaceURI returns a copy of n whose namespace is identified by uri.
// The namespace index is dropped; servers map the URI to their own index.
func (n NodeID) WithNamespaceURI(uri string) NodeID {
	n.nsURI = uri
	n.nsIndex = 0
	n.nsKnown = false
	return n
}

// WithNamespaceIndex returns a copy of n with an explicit namespace index.
// A namespace URI, if any, is kept.
func (n NodeID) WithNamespaceIndex(ns uint16) NodeID {
	n.nsIndex = ns
	n.nsKnown = true
	return n
}

// NamespaceIndex returns the namespace index and whether it is known.
func (n NodeID) NamespaceIndex() (uint16, bool) {
	return n.nsIndex, n.nsKnown
}

// NamespaceURI returns the namespace URI, or "" if none was given.
func (n NodeID) NamespaceURI() string {
	return n.nsURI
}

// HasNamespace reports whether the namespace is identified by index or URI.
func (n NodeID) HasNamespace() bool {
	return n.nsKnown || n.nsURI != ""
}

// Type returns the identifier type.
func (n NodeID) Type() IDType {
	return n.idType
}

// IntID returns the numeric identifier (0 for other types).
func (n NodeID) IntID() uint32 {
	return n.num
}

// StringID returns the string identifier ("" for other types).
func (n NodeID) StringID() string {
	if n.idType != IDTypeString {
		return ""
	}
	return n.str
}

// GUID returns the GUID identifier (zero UUID for other types).
func (n NodeID) GUID() uuid.UUID {
	return n.guid
}

// Opaque returns a copy of the opaque identifier (nil for other types).
func (n NodeID) Opaque() []byte {
	if n.idType != IDTypeOpaque {
		return nil
	}
	return []byte(n.str)
}

// IsNull returns true for the null node (numeric 0 in namespace 0) and the
// zero value.
func (n NodeID) IsNull() bool {
	return n.idType == IDTypeNumeric && n.num == 0 && n.nsIndex == 0 && n.nsURI == ""
}

// String returns the text form, e.g. "ns=2;i=5" or "nsu=urn:x;s=Foo".
func (n NodeID) String() string {
	var b strings.Builder
	if n.nsURI != "" {
		b.WriteString("nsu=")
		b.WriteString(n.nsURI)
		b.WriteByte(';')
	}
	if n.nsKnown && (n.nsIndex != 0 || n.nsURI != "") {
		b.WriteString("ns=")
		b.WriteString(strconv.FormatUint(uint64(n.nsIndex), 10))
		b.WriteByte(';')
	}
	b.WriteString(n.identifierString())
	return b.String()
}

func (n NodeID) identifierString() string {
	switch n.idType {
	case IDTypeString:
		return "s=" + n.str
	case IDTypeGUID:
		return "g=" + n.guid.String()
	case IDTypeOpaque:
		return "b=" + base64.StdEncoding.EncodeToString([]byte(n.str))
	default:
		return "i=" + strconv.FormatUint(uint64(n.num), 10)
	}
}

// Key returns an unambiguous structural key. Unlike String, it
// distinguishes a known namespace index 0 from an unknown index.
func (n NodeID) Key() string {
	known := "?"
	if n.nsKnown {
		known = strconv.FormatUint(uint64(n.nsIndex), 10)
	}
	return fmt.Sprintf("%s|%q|%s", known, n.nsURI, n.identifierString())
}

// ParseNodeID parses the text form of a NodeID.
//
// Supported forms: "i=85", "ns=2;s=Foo", "nsu=urn:x;i=5",
// "nsu=urn:x;ns=3;i=5", "ns=1;g=<uuid>", "ns=1;b=<base64>".
// A NodeID without "ns=" or "nsu=" is in namespace 0.
func ParseNodeID(input string) (NodeID, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return NodeID{}, ErrEmptyNodeID
	}

	var (
		n       NodeID
		rest    = input
		sawNsu  bool
		sawNsID bool
	)

	for {
		switch {
		case strings.HasPrefix(rest, "nsu="):
			if sawNsu {
				return NodeID{}, fmt.Errorf("%w: duplicate nsu in %q", ErrInvalidNodeID, input)
			}
			end := strings.IndexByte(rest, ';')
			if end < 0 {
				return NodeID{}, fmt.Errorf("%w: missing identifier in %q", ErrInvalidNodeID, input)
			}
			n.nsURI = rest[len("nsu="):end]
			if n.nsURI == "" {
				return NodeID{}, fmt.Errorf("%w: empty namespace uri", ErrInvalidNamespace)
			}
			sawNsu = true
			rest = rest[end+1:]
			continue

		case strings.HasPrefix(rest, "ns="):
			if sawNsID {
				return NodeID{}, fmt.Errorf("%w: duplicate ns in %q", ErrInvalidNodeID, input)
			}
			end := strings.IndexByte(rest, ';')
			if end < 0 {
				return NodeID{}, fmt.Errorf("%w: missing identifier in %q", ErrInvalidNodeID, input)
			}
			ns, err := strconv.ParseUint(rest[len("ns="):end], 10, 16)
			if err != nil {
				return NodeID{}, fmt.Errorf("%w: %v", ErrInvalidNamespace, err)
			}
			n.nsIndex = uint16(ns)
			n.nsKnown = true
			sawNsID = true
			rest = rest[end+1:]
			continue
		}
		break
	}

	if !sawNsu && !sawNsID {
		n.nsKnown = true
	}

	if len(rest) < 2 || rest[1] != '=' {
		return NodeID{}, fmt.Errorf("%w: %q", ErrInvalidNodeID, input)
	}
	value := rest[2:]

	switch rest[0] {
	case 'i':
		id, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w: numeric identifier: %v", ErrInvalidNodeID, err)
		}
		n.idType = IDTypeNumeric
		n.num = uint32(id)
	case 's':
		if value == "" {
			return NodeID{}, fmt.Errorf("%w: empty string identifier", ErrInvalidNodeID)
		}
		n.idType = IDTypeString
		n.str = value
	case 'g':
		id, err := uuid.Parse(value)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w: guid identifier: %v", ErrInvalidNodeID, err)
		}
		n.idType = IDTypeGUID
		n.guid = id
	case 'b':
		raw, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w: opaque identifier: %v", ErrInvalidNodeID, err)
		}
		if len(raw) == 0 {
			return NodeID{}, fmt.Errorf("%w: empty opaque identifier", ErrInvalidNodeID)
		}
		n.idType = IDTypeOpaque
		n.str = string(raw)
	default:
		return NodeID{}, fmt.Errorf("%w: unknown identifier type %q", ErrInvalidNodeID, rest[0])
	}

	return n, nil
}

// MustParseNodeID is like ParseNodeID but panics on error.
// Intended for constants and tests.
func MustParseNodeID(input string) NodeID {
	n, err := ParseNodeID(input)
	if err != nil {
		panic(err)
	}
	return n
}
