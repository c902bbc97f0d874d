package ua

import "math"

// RemainingPathIndexFull marks a browse path target that consumed every
// element of its relative path.
const RemainingPathIndexFull uint32 = math.MaxUint32

// BrowsePath is a starting node plus the relative path to follow from it.
type BrowsePath struct {
	StartingNode ExpandedNodeID
	RelativePath RelativePath
}

// String returns "<start> <path>".
func (b BrowsePath) String() string {
	return b.StartingNode.String() + " " + b.RelativePath.String()
}

// BrowsePathTarget is one node matched by a browse path.
//
// When the path crosses into another server, TargetID identifies the node
// on that server and RemainingPathIndex is the index of the first path
// element that was not processed.
type BrowsePathTarget struct {
	TargetID           ExpandedNodeID
	RemainingPathIndex uint32
}

// IsFullyResolved reports whether every path element was consumed.
func (t BrowsePathTarget) IsFullyResolved() bool {
	return t.RemainingPathIndex == RemainingPathIndexFull
}

// BrowsePathResult is the translation result of one BrowsePath.
type BrowsePathResult struct {
	StatusCode StatusCode
	Targets    []BrowsePathTarget
}

// BrowseDirection selects which references are followed.
type BrowseDirection uint8

const (
	BrowseDirectionForward BrowseDirection = 0
	BrowseDirectionInverse BrowseDirection = 1
	BrowseDirectionBoth    BrowseDirection = 2
)

// String returns the direction name.
func (d BrowseDirection) String() string {
	switch d {
	case BrowseDirectionForward:
		return "Forward"
	case BrowseDirectionInverse:
		return "Inverse"
	case BrowseDirectionBoth:
		return "Both"
	default:
		return "Invalid"
	}
}

// BrowseDescription describes which references of one node to return.
// A null ReferenceTypeID returns references of every type.
type BrowseDescription struct {
	NodeID          ExpandedNodeID
	Direction       BrowseDirection
	ReferenceTypeID NodeID
	IncludeSubtypes bool
	NodeClassMask   uint32
}

// ReferenceDescription describes one reference returned by Browse.
type ReferenceDescription struct {
	ReferenceTypeID NodeID
	IsForward       bool
	NodeID          ExpandedNodeID
	BrowseName      QualifiedName
	DisplayName     string
	NodeClass       NodeClass
	TypeDefinition  ExpandedNodeID
}

// BrowseResult is one page of references for a browsed node. A non-empty
// ContinuationPoint means more references remain.
type BrowseResult struct {
	StatusCode        StatusCode
	ContinuationPoint []byte
	References        []ReferenceDescription
}

// ReadValueID identifies an attribute to read.
type ReadValueID struct {
	NodeID      ExpandedNodeID
	AttributeID AttributeID
}

// DataValue is an attribute value with its status.
type DataValue struct {
	Value      any
	StatusCode StatusCode
}

// WriteValue is an attribute value to write.
type WriteValue struct {
	NodeID      ExpandedNodeID
	AttributeID AttributeID
	Value       any
}

// CallMethodRequest invokes a method on an object.
type CallMethodRequest struct {
	ObjectID       ExpandedNodeID
	MethodID       ExpandedNodeID
	InputArguments []any
}

// CallMethodResult is the outcome of one method call.
type CallMethodResult struct {
	StatusCode      StatusCode
	OutputArguments []any
}
