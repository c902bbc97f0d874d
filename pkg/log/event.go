package log

import (
	"time"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ClientID identifies the client instance that produced the event (UUID).
	ClientID string `cbor:"2,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Resolve *ResolveEvent   `cbor:"10,keyasint,omitempty"` // Resolve layer
	Service *ServiceEvent   `cbor:"11,keyasint,omitempty"` // Service layer
	Page    *PageEvent      `cbor:"12,keyasint,omitempty"` // Paging layer
	Error   *ErrorEventData `cbor:"13,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerResolve is the address-resolution engine.
	LayerResolve Layer = 0
	// LayerPaging is the paged-browse state machine.
	LayerPaging Layer = 1
	// LayerService is the service-invocation layer.
	LayerService Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerResolve:
		return "RESOLVE"
	case LayerPaging:
		return "PAGING"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCache indicates the outcome of a cache phase.
	CategoryCache Category = 0
	// CategoryTranslate indicates a relative-path translation pass.
	CategoryTranslate Category = 1
	// CategoryInvoke indicates a service invocation.
	CategoryInvoke Category = 2
	// CategoryPage indicates a browse continuation round.
	CategoryPage Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCache:
		return "CACHE"
	case CategoryTranslate:
		return "TRANSLATE"
	case CategoryInvoke:
		return "INVOKE"
	case CategoryPage:
		return "PAGE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ResolveEvent captures one step of a Resolve call.
type ResolveEvent struct {
	// Depth is the recursion depth (0 for the caller's batch).
	Depth int `cbor:"1,keyasint"`

	// BatchSize is the number of Addresses in the batch.
	BatchSize int `cbor:"2,keyasint"`

	// CacheHits is the number of Addresses answered from the cache.
	CacheHits int `cbor:"3,keyasint,omitempty"`

	// Absolute and Relative count the cache misses per variant.
	Absolute int `cbor:"4,keyasint,omitempty"`
	Relative int `cbor:"5,keyasint,omitempty"`

	// Pass is the translation pass number (1-based; 0 for the cache phase).
	Pass int `cbor:"6,keyasint,omitempty"`

	// Pending is the number of browse paths sent in this pass.
	Pending int `cbor:"7,keyasint,omitempty"`

	// Resolved, Failed and Continued count the pass outcomes. Continued
	// paths crossed a server boundary and are sent again.
	Resolved  int `cbor:"8,keyasint,omitempty"`
	Failed    int `cbor:"9,keyasint,omitempty"`
	Continued int `cbor:"10,keyasint,omitempty"`
}

// ServiceEvent captures one call to the service collaborator.
type ServiceEvent struct {
	// Service is the invoked service.
	Service ua.ServiceKind `cbor:"1,keyasint"`

	// Targets is the number of request targets.
	Targets int `cbor:"2,keyasint"`

	// Duration of the call. Stored as nanoseconds.
	Duration time.Duration `cbor:"3,keyasint"`

	// Failed counts results with a bad status.
	Failed int `cbor:"4,keyasint,omitempty"`

	// Err is the batch-level error message, if the call failed.
	Err string `cbor:"5,keyasint,omitempty"`
}

// PageEvent captures one round of a paged browse.
type PageEvent struct {
	// Round is the round number (0 for the initial request).
	Round int `cbor:"1,keyasint"`

	// Pending is the number of targets included in the round.
	Pending int `cbor:"2,keyasint"`

	// References is the number of references received in the round.
	References int `cbor:"3,keyasint"`

	// Remaining is the number of targets still holding a continuation
	// point after the round.
	Remaining int `cbor:"4,keyasint"`

	// CeilingReached is set when follow-ups stopped at the round ceiling.
	CeilingReached bool `cbor:"5,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the status code (if applicable).
	Code *ua.StatusCode `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
