package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

func TestFormatResolveEvents(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	events := sampleEvents(ts)

	var buf bytes.Buffer
	formatEvent(&buf, events[0])
	out := buf.String()

	if !strings.Contains(out, "2026-01-28T10:15:32.123456Z") {
		t.Errorf("missing timestamp in %q", out)
	}
	if !strings.Contains(out, "[client:3f2a9c1e]") {
		t.Errorf("missing shortened client ID in %q", out)
	}
	if !strings.Contains(out, "RESOLVE") || !strings.Contains(out, "CACHE") {
		t.Errorf("missing layer or category in %q", out)
	}
	if !strings.Contains(out, "Cache hits: 1") || !strings.Contains(out, "0 absolute, 2 relative") {
		t.Errorf("missing cache details in %q", out)
	}

	buf.Reset()
	formatEvent(&buf, events[1])
	out = buf.String()
	if !strings.Contains(out, "Pass 1") || !strings.Contains(out, "Continued: 1") {
		t.Errorf("missing pass details in %q", out)
	}
}

func TestFormatServiceEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		ClientID:  "short",
		Layer:     log.LayerService,
		Category:  log.CategoryInvoke,
		Service: &log.ServiceEvent{
			Service:  ua.ServiceCall,
			Targets:  2,
			Duration: 250 * time.Microsecond,
			Err:      "connection reset",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	out := buf.String()

	for _, want := range []string{"[client:short]", "Call", "Targets: 2", "250.000us", "Error: connection reset"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestFormatErrorEvent(t *testing.T) {
	code := ua.StatusBadTooManyOperations
	event := log.Event{
		Timestamp: time.Now(),
		ClientID:  testClient,
		Layer:     log.LayerService,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerService,
			Message: "batch too large",
			Code:    &code,
			Context: "Read",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	out := buf.String()

	for _, want := range []string{"Message: batch too large", "Code: " + code.String(), "Context: Read"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestFormatPageCeiling(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerPaging,
		Category:  log.CategoryPage,
		Page:      &log.PageEvent{Round: 4, Pending: 1, Remaining: 1, CeilingReached: true},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	out := buf.String()

	if !strings.Contains(out, "Round 4") || !strings.Contains(out, "Round ceiling reached") {
		t.Errorf("missing ceiling details in %q", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0.500us"},
		{1500 * time.Microsecond, "1.500ms"},
		{2 * time.Second, "2.000s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	layer, err := ParseLayerFlag("Paging")
	if err != nil || layer != log.LayerPaging {
		t.Errorf("ParseLayerFlag(Paging) = %v, %v", layer, err)
	}
	if _, err := ParseLayerFlag("wire"); err == nil {
		t.Error("expected error for unknown layer")
	}

	cat, err := ParseCategoryFlag("TRANSLATE")
	if err != nil || cat != log.CategoryTranslate {
		t.Errorf("ParseCategoryFlag(TRANSLATE) = %v, %v", cat, err)
	}
	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("expected error for unknown category")
	}

	svc, err := ParseServiceFlag("translate")
	if err != nil || svc != ua.ServiceTranslateBrowsePaths {
		t.Errorf("ParseServiceFlag(translate) = %v, %v", svc, err)
	}
	svc, err = ParseServiceFlag("browsenext")
	if err != nil || svc != ua.ServiceBrowseNext {
		t.Errorf("ParseServiceFlag(browsenext) = %v, %v", svc, err)
	}
	if _, err := ParseServiceFlag("subscribe"); err == nil {
		t.Error("expected error for unknown service")
	}
}

func TestRunViewFiltered(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, sampleEvents(ts))

	layer := log.LayerService
	var buf bytes.Buffer
	if err := RunView(path, log.Filter{Layer: &layer}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	out := buf.String()
	if strings.Count(out, "[client:") != 1 {
		t.Errorf("expected exactly one event, got %q", out)
	}
	if !strings.Contains(out, "Read") {
		t.Errorf("expected Read event in %q", out)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := RunView("/nonexistent/test.mlog", log.Filter{}, &buf)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
