package ua

// Well-known nodes of namespace 0.
var (
	RootFolder    = NewNumericNodeID(0, 84)
	ObjectsFolder = NewNumericNodeID(0, 85)
	TypesFolder   = NewNumericNodeID(0, 86)
	ViewsFolder   = NewNumericNodeID(0, 87)
	ServerObject  = NewNumericNodeID(0, 2253)
)

// Well-known reference types of namespace 0.
var (
	References                = NewNumericNodeID(0, 31)
	NonHierarchicalReferences = NewNumericNodeID(0, 32)
	HierarchicalReferences    = NewNumericNodeID(0, 33)
	HasChild                  = NewNumericNodeID(0, 34)
	Organizes                 = NewNumericNodeID(0, 35)
	HasEventSource            = NewNumericNodeID(0, 36)
	HasModellingRule          = NewNumericNodeID(0, 37)
	HasTypeDefinition         = NewNumericNodeID(0, 40)
	Aggregates                = NewNumericNodeID(0, 44)
	HasSubtype                = NewNumericNodeID(0, 45)
	HasProperty               = NewNumericNodeID(0, 46)
	HasComponent              = NewNumericNodeID(0, 47)
	HasNotifier               = NewNumericNodeID(0, 48)
	HasOrderedComponent       = NewNumericNodeID(0, 49)
)

var referenceTypeNames = map[string]NodeID{
	"References":                References,
	"NonHierarchicalReferences": NonHierarchicalReferences,
	"HierarchicalReferences":    HierarchicalReferences,
	"HasChild":                  HasChild,
	"Organizes":                 Organizes,
	"HasEventSource":            HasEventSource,
	"HasModellingRule":          HasModellingRule,
	"HasTypeDefinition":         HasTypeDefinition,
	"Aggregates":                Aggregates,
	"HasSubtype":                HasSubtype,
	"HasProperty":               HasProperty,
	"HasComponent":              HasComponent,
	"HasNotifier":               HasNotifier,
	"HasOrderedComponent":       HasOrderedComponent,
}

// ReferenceTypeByName returns the well-known reference type with the given
// browse name.
func ReferenceTypeByName(name string) (NodeID, bool) {
	id, ok := referenceTypeNames[name]
	return id, ok
}

// ReferenceTypeName returns the browse name of a well-known reference type,
// or "" if id is not one.
func ReferenceTypeName(id NodeID) string {
	for name, ref := range referenceTypeNames {
		if ref == id {
			return name
		}
	}
	return ""
}

// AttributeID identifies a node attribute.
type AttributeID uint32

const (
	AttributeNodeID      AttributeID = 1
	AttributeNodeClass   AttributeID = 2
	AttributeBrowseName  AttributeID = 3
	AttributeDisplayName AttributeID = 4
	AttributeDescription AttributeID = 5
	AttributeValue       AttributeID = 13
)

// String returns the attribute name.
func (a AttributeID) String() string {
	switch a {
	case AttributeNodeID:
		return "NodeId"
	case AttributeNodeClass:
		return "NodeClass"
	case AttributeBrowseName:
		return "BrowseName"
	case AttributeDisplayName:
		return "DisplayName"
	case AttributeDescription:
		return "Description"
	case AttributeValue:
		return "Value"
	default:
		return "UNKNOWN"
	}
}

// IsValid reports whether a is one of the supported attributes.
func (a AttributeID) IsValid() bool {
	return a.String() != "UNKNOWN"
}

// ParseAttributeID parses an attribute name such as "Value".
func ParseAttributeID(name string) (AttributeID, bool) {
	for _, a := range []AttributeID{
		AttributeNodeID, AttributeNodeClass, AttributeBrowseName,
		AttributeDisplayName, AttributeDescription, AttributeValue,
	} {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// NodeClass is the class of a node.
type NodeClass uint32

const (
	NodeClassUnspecified   NodeClass = 0
	NodeClassObject        NodeClass = 1
	NodeClassVariable      NodeClass = 2
	NodeClassMethod        NodeClass = 4
	NodeClassObjectType    NodeClass = 8
	NodeClassVariableType  NodeClass = 16
	NodeClassReferenceType NodeClass = 32
	NodeClassDataType      NodeClass = 64
	NodeClassView          NodeClass = 128
)

// String returns the node class name.
func (c NodeClass) String() string {
	switch c {
	case NodeClassObject:
		return "Object"
	case NodeClassVariable:
		return "Variable"
	case NodeClassMethod:
		return "Method"
	case NodeClassObjectType:
		return "ObjectType"
	case NodeClassVariableType:
		return "VariableType"
	case NodeClassReferenceType:
		return "ReferenceType"
	case NodeClassDataType:
		return "DataType"
	case NodeClassView:
		return "View"
	default:
		return "Unspecified"
	}
}

// ParseNodeClass parses a node class name.
func ParseNodeClass(name string) (NodeClass, bool) {
	for _, c := range []NodeClass{
		NodeClassObject, NodeClassVariable, NodeClassMethod, NodeClassObjectType,
		NodeClassVariableType, NodeClassReferenceType, NodeClassDataType, NodeClassView,
	} {
		if c.String() == name {
			return c, true
		}
	}
	return NodeClassUnspecified, false
}
