package addrspace

import "github.com/mash-protocol/mash-ua/pkg/ua"

// supertypes maps each well-known reference type to its direct supertype.
var supertypes = map[ua.NodeID]ua.NodeID{
	ua.HierarchicalReferences:    ua.References,
	ua.NonHierarchicalReferences: ua.References,
	ua.HasChild:                  ua.HierarchicalReferences,
	ua.Organizes:                 ua.HierarchicalReferences,
	ua.HasEventSource:            ua.HierarchicalReferences,
	ua.HasNotifier:               ua.HasEventSource,
	ua.Aggregates:                ua.HasChild,
	ua.HasSubtype:                ua.HasChild,
	ua.HasComponent:              ua.Aggregates,
	ua.HasProperty:               ua.Aggregates,
	ua.HasOrderedComponent:       ua.HasComponent,
	ua.HasTypeDefinition:         ua.NonHierarchicalReferences,
	ua.HasModellingRule:          ua.NonHierarchicalReferences,
}

// isSubtype reports whether t is super or one of its subtypes.
func isSubtype(t, super ua.NodeID) bool {
	for {
		if t == super {
			return true
		}
		parent, ok := supertypes[t]
		if !ok {
			return false
		}
		t = parent
	}
}

// knownReferenceType reports whether t is a well-known reference type.
func knownReferenceType(t ua.NodeID) bool {
	if t == ua.References {
		return true
	}
	_, ok := supertypes[t]
	return ok
}

// matchesType reports whether a reference of type t is selected by wanted.
// A null wanted type selects every reference.
func matchesType(t, wanted ua.NodeID, includeSubtypes bool) bool {
	if wanted.IsNull() {
		return true
	}
	if includeSubtypes {
		return isSubtype(t, wanted)
	}
	return t == wanted
}
