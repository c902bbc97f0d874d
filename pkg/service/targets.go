package service

import (
	"github.com/mash-protocol/mash-ua/pkg/address"
	"github.com/mash-protocol/mash-ua/pkg/resolve"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// ReadTarget reads one attribute of the node at Address.
type ReadTarget struct {
	Address   address.Address
	Attribute ua.AttributeID

	node ua.ExpandedNodeID
}

// NewReadTarget creates a ReadTarget.
func NewReadTarget(a address.Address, attr ua.AttributeID) *ReadTarget {
	return &ReadTarget{Address: a, Attribute: attr}
}

// Node returns the resolved identifier.
func (t *ReadTarget) Node() ua.ExpandedNodeID { return t.node }

func (t *ReadTarget) ResolvableItemsCount() int { return 1 }

func (t *ReadTarget) ResolvableItems() []address.Address {
	return []address.Address{t.Address}
}

func (t *ReadTarget) SetResolvedItems(nodes []ua.ExpandedNodeID, _ []ua.StatusCode) ua.StatusCode {
	t.node = nodes[0]
	if !t.Attribute.IsValid() {
		return ua.StatusBadAttributeIDInvalid
	}
	return ua.StatusGood
}

// WriteTarget writes Value to one attribute of the node at Address.
type WriteTarget struct {
	Address   address.Address
	Attribute ua.AttributeID
	Value     any

	node ua.ExpandedNodeID
}

// NewWriteTarget creates a WriteTarget for the Value attribute.
func NewWriteTarget(a address.Address, value any) *WriteTarget {
	return &WriteTarget{Address: a, Attribute: ua.AttributeValue, Value: value}
}

// Node returns the resolved identifier.
func (t *WriteTarget) Node() ua.ExpandedNodeID { return t.node }

func (t *WriteTarget) ResolvableItemsCount() int { return 1 }

func (t *WriteTarget) ResolvableItems() []address.Address {
	return []address.Address{t.Address}
}

func (t *WriteTarget) SetResolvedItems(nodes []ua.ExpandedNodeID, _ []ua.StatusCode) ua.StatusCode {
	t.node = nodes[0]
	if !t.Attribute.IsValid() {
		return ua.StatusBadAttributeIDInvalid
	}
	return ua.StatusGood
}

// CallTarget invokes Method on Object. Both are Addresses, so a call
// resolves two items.
type CallTarget struct {
	Object    address.Address
	Method    address.Address
	Arguments []any

	object ua.ExpandedNodeID
	method ua.ExpandedNodeID
}

// NewCallTarget creates a CallTarget.
func NewCallTarget(object, method address.Address, args ...any) *CallTarget {
	return &CallTarget{Object: object, Method: method, Arguments: args}
}

// ObjectNode returns the resolved object identifier.
func (t *CallTarget) ObjectNode() ua.ExpandedNodeID { return t.object }

// MethodNode returns the resolved method identifier.
func (t *CallTarget) MethodNode() ua.ExpandedNodeID { return t.method }

func (t *CallTarget) ResolvableItemsCount() int { return 2 }

func (t *CallTarget) ResolvableItems() []address.Address {
	return []address.Address{t.Object, t.Method}
}

func (t *CallTarget) SetResolvedItems(nodes []ua.ExpandedNodeID, statuses []ua.StatusCode) ua.StatusCode {
	t.object, t.method = nodes[0], nodes[1]
	// The call is sent to the object's server, which must own the method.
	if statuses[0].IsGood() && statuses[1].IsGood() && t.object.ServerURI != t.method.ServerURI {
		return ua.StatusBadMethodInvalid
	}
	return ua.StatusGood
}

// BrowseTarget browses the references of the node at Address.
type BrowseTarget struct {
	Address         address.Address
	Direction       ua.BrowseDirection
	ReferenceType   ua.NodeID
	IncludeSubtypes bool
	NodeClassMask   uint32

	node ua.ExpandedNodeID
}

// NewBrowseTarget creates a BrowseTarget that follows forward hierarchical
// references.
func NewBrowseTarget(a address.Address) *BrowseTarget {
	return &BrowseTarget{
		Address:         a,
		Direction:       ua.BrowseDirectionForward,
		ReferenceType:   ua.HierarchicalReferences,
		IncludeSubtypes: true,
	}
}

// Node returns the resolved identifier.
func (t *BrowseTarget) Node() ua.ExpandedNodeID { return t.node }

func (t *BrowseTarget) ResolvableItemsCount() int { return 1 }

func (t *BrowseTarget) ResolvableItems() []address.Address {
	return []address.Address{t.Address}
}

func (t *BrowseTarget) SetResolvedItems(nodes []ua.ExpandedNodeID, _ []ua.StatusCode) ua.StatusCode {
	t.node = nodes[0]
	if t.Direction > ua.BrowseDirectionBoth {
		return ua.StatusBadBrowseDirectionInvalid
	}
	return ua.StatusGood
}

func (t *BrowseTarget) description() ua.BrowseDescription {
	return ua.BrowseDescription{
		NodeID:          t.node,
		Direction:       t.Direction,
		ReferenceTypeID: t.ReferenceType,
		IncludeSubtypes: t.IncludeSubtypes,
		NodeClassMask:   t.NodeClassMask,
	}
}

// Compile-time interface satisfaction checks.
var (
	_ resolve.Resolvable = (*ReadTarget)(nil)
	_ resolve.Resolvable = (*WriteTarget)(nil)
	_ resolve.Resolvable = (*CallTarget)(nil)
	_ resolve.Resolvable = (*BrowseTarget)(nil)
)
