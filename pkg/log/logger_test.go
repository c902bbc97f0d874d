package log

import (
	"errors"
	"testing"
	"time"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// mockLogger records events for testing
type mockLogger struct {
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		ClientID:  "client-1",
		Layer:     LayerResolve,
		Category:  CategoryCache,
	}
	logger.Log(event)

	event.Resolve = &ResolveEvent{BatchSize: 3}
	logger.Log(event)

	event.Resolve = nil
	event.Error = &ErrorEventData{Message: "test error"}
	logger.Log(event)
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	m := &mockLogger{}
	if OrNoop(m) != Logger(m) {
		t.Error("OrNoop should return a non-nil logger unchanged")
	}
}

func TestMultiLoggerCallsAll(t *testing.T) {
	mock1 := &mockLogger{}
	mock2 := &mockLogger{}

	multi := NewMultiLogger(mock1, nil, mock2)
	multi.Log(Event{ClientID: "client-1", Layer: LayerService, Category: CategoryInvoke})

	for i, mock := range []*mockLogger{mock1, mock2} {
		if len(mock.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(mock.events))
			continue
		}
		if mock.events[0].ClientID != "client-1" {
			t.Errorf("logger %d: ClientID = %q", i, mock.events[0].ClientID)
		}
	}
}

func TestRecorderStampsEvents(t *testing.T) {
	m := &mockLogger{}
	rec := NewRecorder(m, "client-7")

	before := time.Now()
	rec.Resolve(CategoryTranslate, ResolveEvent{Pass: 1, Pending: 2})
	rec.Service(ServiceEvent{Service: ua.ServiceBrowse, Targets: 4})
	rec.Page(PageEvent{Round: 1, Pending: 1})
	rec.Error(LayerResolve, "verify", errors.New("boom"), ua.StatusBadNodeIDInvalid)

	if len(m.events) != 4 {
		t.Fatalf("got %d events, want 4", len(m.events))
	}
	for i, ev := range m.events {
		if ev.ClientID != "client-7" {
			t.Errorf("event %d: ClientID = %q", i, ev.ClientID)
		}
		if ev.Timestamp.Before(before) {
			t.Errorf("event %d: timestamp not set", i)
		}
	}
	if m.events[0].Layer != LayerResolve || m.events[0].Resolve == nil {
		t.Error("resolve event malformed")
	}
	if m.events[1].Category != CategoryInvoke || m.events[1].Service.Service != ua.ServiceBrowse {
		t.Error("service event malformed")
	}
	if m.events[2].Layer != LayerPaging || m.events[2].Page == nil {
		t.Error("page event malformed")
	}
	if m.events[3].Error == nil || *m.events[3].Error.Code != ua.StatusBadNodeIDInvalid {
		t.Error("error event malformed")
	}

	var zero Recorder
	zero.Page(PageEvent{}) // must not panic
}
