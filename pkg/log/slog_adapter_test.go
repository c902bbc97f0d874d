package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

func newJSONAdapter(buf *bytes.Buffer) *SlogAdapter {
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterLogsResolveEvent(t *testing.T) {
	var buf bytes.Buffer
	NewRecorder(newJSONAdapter(&buf), "client-1").Resolve(CategoryTranslate, ResolveEvent{
		Depth: 1, BatchSize: 4, Pass: 2, Pending: 3, Resolved: 2, Continued: 1,
	})

	entry := decodeEntry(t, &buf)
	if entry["layer"] != "RESOLVE" {
		t.Errorf("layer: got %v", entry["layer"])
	}
	if entry["pass"] != float64(2) {
		t.Errorf("pass: got %v", entry["pass"])
	}
	if entry["continued"] != float64(1) {
		t.Errorf("continued: got %v", entry["continued"])
	}
	if entry["client_id"] != "client-1" {
		t.Errorf("client_id: got %v", entry["client_id"])
	}
}

func TestSlogAdapterLogsServiceEvent(t *testing.T) {
	var buf bytes.Buffer
	NewRecorder(newJSONAdapter(&buf), "").Service(ServiceEvent{
		Service: ua.ServiceBrowseNext, Targets: 2, Err: "closed",
	})

	entry := decodeEntry(t, &buf)
	if entry["service"] != "BrowseNext" {
		t.Errorf("service: got %v", entry["service"])
	}
	if entry["error"] != "closed" {
		t.Errorf("error: got %v", entry["error"])
	}
	if _, ok := entry["client_id"]; ok {
		t.Error("empty client_id should be omitted")
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{Layer: LayerPaging, Page: &PageEvent{Round: 1}})
	if buf.Len() != 0 {
		t.Error("debug events should be filtered at info level")
	}

	adapter.WithLevel(slog.LevelInfo).Log(Event{Layer: LayerPaging, Page: &PageEvent{Round: 1}})
	if buf.Len() == 0 {
		t.Error("info events should pass at info level")
	}
}
