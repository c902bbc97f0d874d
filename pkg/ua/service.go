package ua

// ServiceKind names a network service invoked on behalf of a batch.
type ServiceKind uint8

const (
	ServiceUnknown ServiceKind = iota
	ServiceTranslateBrowsePaths
	ServiceBrowse
	ServiceBrowseNext
	ServiceRead
	ServiceWrite
	ServiceCall
)

// String returns the service name.
func (k ServiceKind) String() string {
	switch k {
	case ServiceTranslateBrowsePaths:
		return "TranslateBrowsePathsToNodeIds"
	case ServiceBrowse:
		return "Browse"
	case ServiceBrowseNext:
		return "BrowseNext"
	case ServiceRead:
		return "Read"
	case ServiceWrite:
		return "Write"
	case ServiceCall:
		return "Call"
	default:
		return "Unknown"
	}
}
