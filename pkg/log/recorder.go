package log

import (
	"time"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Recorder stamps events with the current time and a client ID before
// passing them to a Logger. The zero value discards events.
type Recorder struct {
	logger   Logger
	clientID string
}

// NewRecorder creates a Recorder. A nil logger discards events.
func NewRecorder(logger Logger, clientID string) Recorder {
	return Recorder{logger: OrNoop(logger), clientID: clientID}
}

// ClientID returns the client ID stamped on events.
func (r Recorder) ClientID() string {
	return r.clientID
}

func (r Recorder) emit(event Event) {
	if r.logger == nil {
		return
	}
	event.Timestamp = time.Now()
	event.ClientID = r.clientID
	r.logger.Log(event)
}

// Resolve records a resolution step.
func (r Recorder) Resolve(category Category, ev ResolveEvent) {
	r.emit(Event{Layer: LayerResolve, Category: category, Resolve: &ev})
}

// Service records a service invocation.
func (r Recorder) Service(ev ServiceEvent) {
	r.emit(Event{Layer: LayerService, Category: CategoryInvoke, Service: &ev})
}

// Page records a browse continuation round.
func (r Recorder) Page(ev PageEvent) {
	r.emit(Event{Layer: LayerPaging, Category: CategoryPage, Page: &ev})
}

// Error records an error at layer. A zero code is omitted.
func (r Recorder) Error(layer Layer, context string, err error, code ua.StatusCode) {
	data := &ErrorEventData{Layer: layer, Message: err.Error(), Context: context}
	if code != ua.StatusGood {
		data.Code = &code
	}
	r.emit(Event{Layer: layer, Category: CategoryError, Error: data})
}
