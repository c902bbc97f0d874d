// Package address provides the Address model used by the resolution core.
//
// An Address is a tagged union. An absolute Address wraps an ExpandedNodeID:
// a node identifier bound to its owning server. A relative Address is a
// starting Address plus a relative path to walk from it. Relative Addresses
// can be chained arbitrarily deep; every chain ends in an absolute Address.
//
// Addresses are immutable values. A relative Address shares its starting
// Address instead of borrowing it, so the start lives as long as any
// Address anchored on it. Because the start must exist before the Address
// that embeds it, chains cannot form cycles.
//
// Equality and ordering are structural: first by variant, then by the
// contents of the variant, through the canonical Key.
package address

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Kind is the variant tag of an Address.
type Kind uint8

const (
	// KindInvalid is the zero Address: neither absolute nor relative.
	KindInvalid Kind = iota

	// KindAbsolute is an Address holding an ExpandedNodeID.
	KindAbsolute

	// KindRelative is an Address holding a starting Address and a path.
	KindRelative
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsolute:
		return "ABSOLUTE"
	case KindRelative:
		return "RELATIVE"
	default:
		return "INVALID"
	}
}

// Address identifies a node either directly or through a relative path.
// The zero value is invalid.
type Address struct {
	kind  Kind
	node  ua.ExpandedNodeID
	start *Address
	path  ua.RelativePath
	key   string
}

// Absolute creates an absolute Address.
func Absolute(node ua.ExpandedNodeID) Address {
	a := Address{kind: KindAbsolute, node: node}
	a.key = "A(" + node.Key() + ")"
	return a
}

// FromNodeID creates an absolute Address from a NodeID and the URI of the
// server that owns it.
func FromNodeID(id ua.NodeID, serverURI string) Address {
	return Absolute(ua.NewExpandedNodeID(id, serverURI))
}

// Relative creates a relative Address anchored on start. The path is copied.
func Relative(start Address, path ua.RelativePath) Address {
	s := start
	a := Address{kind: KindRelative, start: &s, path: path.Clone()}
	a.key = "R(" + s.key + "," + pathKey(path) + ")"
	return a
}

func pathKey(path ua.RelativePath) string {
	var b strings.Builder
	for i, e := range path {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(e.ReferenceTypeID.Key())
		if e.IsInverse {
			b.WriteString("!")
		}
		if e.IncludeSubtypes {
			b.WriteString("+")
		}
		fmt.Fprintf(&b, ">%d:%q", e.TargetName.NamespaceIndex, e.TargetName.Name)
	}
	return b.String()
}

// Kind returns the variant tag.
func (a Address) Kind() Kind {
	return a.kind
}

// IsAbsolute reports whether a is an absolute Address.
func (a Address) IsAbsolute() bool {
	return a.kind == KindAbsolute
}

// IsRelative reports whether a is a relative Address.
func (a Address) IsRelative() bool {
	return a.kind == KindRelative
}

// IsValid reports whether a is either absolute or relative.
func (a Address) IsValid() bool {
	return a.kind == KindAbsolute || a.kind == KindRelative
}

// ExpandedNodeID returns the identifier of an absolute Address.
// It panics if a is not absolute.
func (a Address) ExpandedNodeID() ua.ExpandedNodeID {
	if a.kind != KindAbsolute {
		panic("address: ExpandedNodeID called on " + a.kind.String() + " address")
	}
	return a.node
}

// StartingAddress returns the anchor of a relative Address.
// It panics if a is not relative.
func (a Address) StartingAddress() Address {
	if a.kind != KindRelative {
		panic("address: StartingAddress called on " + a.kind.String() + " address")
	}
	return *a.start
}

// RelativePath returns a copy of the path of a relative Address.
// It panics if a is not relative.
func (a Address) RelativePath() ua.RelativePath {
	if a.kind != KindRelative {
		panic("address: RelativePath called on " + a.kind.String() + " address")
	}
	return a.path.Clone()
}

// Depth returns the number of relative links between a and the absolute
// Address its chain ends in (0 for absolute and invalid Addresses).
func (a Address) Depth() int {
	depth := 0
	for cur := a; cur.kind == KindRelative; cur = *cur.start {
		depth++
	}
	return depth
}

// Root returns the absolute Address that a's chain ends in.
func (a Address) Root() Address {
	cur := a
	for cur.kind == KindRelative {
		cur = *cur.start
	}
	return cur
}

// Key returns the canonical structural key. Two Addresses have the same key
// iff they are structurally equal.
func (a Address) Key() string {
	return a.key
}

// Equal reports structural equality.
func (a Address) Equal(other Address) bool {
	return a.kind == other.kind && a.key == other.key
}

// Compare orders Addresses by kind, then by contents.
func (a Address) Compare(other Address) int {
	if c := cmp.Compare(a.kind, other.kind); c != 0 {
		return c
	}
	return strings.Compare(a.key, other.key)
}

// String returns the text form accepted by Parse.
func (a Address) String() string {
	switch a.kind {
	case KindAbsolute:
		return a.node.String()
	case KindRelative:
		start := a.start.String()
		if a.start.kind == KindRelative {
			return start + " | " + a.path.String()
		}
		return start + " " + a.path.String()
	default:
		return "<invalid>"
	}
}

// IsWellFormed reports whether a is valid and its chain ends in an
// absolute Address.
func (a Address) IsWellFormed() bool {
	return a.IsValid() && a.Root().IsAbsolute()
}
