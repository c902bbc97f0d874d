package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

func TestFilterOptionsBuild(t *testing.T) {
	opts := FilterOptions{
		ClientID:  testClient,
		TimeStart: "2026-01-28T10:00:00Z",
		TimeEnd:   "2026-01-28T11:00:00Z",
		Layer:     "service",
		Category:  "invoke",
		Service:   "Write",
	}

	filter, err := opts.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if filter.ClientID != testClient {
		t.Errorf("unexpected client ID %q", filter.ClientID)
	}
	if filter.Layer == nil || *filter.Layer != log.LayerService {
		t.Errorf("unexpected layer %v", filter.Layer)
	}
	if filter.Category == nil || *filter.Category != log.CategoryInvoke {
		t.Errorf("unexpected category %v", filter.Category)
	}
	if filter.Service == nil || *filter.Service != ua.ServiceWrite {
		t.Errorf("unexpected service %v", filter.Service)
	}
	if filter.TimeStart == nil || filter.TimeStart.Hour() != 10 {
		t.Errorf("unexpected time start %v", filter.TimeStart)
	}
	if filter.TimeEnd == nil || filter.TimeEnd.Hour() != 11 {
		t.Errorf("unexpected time end %v", filter.TimeEnd)
	}
}

func TestFilterOptionsBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
	}{
		{"bad time start", FilterOptions{TimeStart: "yesterday"}},
		{"bad time end", FilterOptions{TimeEnd: "10:00"}},
		{"bad layer", FilterOptions{Layer: "wire"}},
		{"bad category", FilterOptions{Category: "message"}},
		{"bad service", FilterOptions{Service: "subscribe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.opts.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunFilter(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, sampleEvents(ts))
	outPath := filepath.Join(t.TempDir(), "filtered.mlog")

	count, err := RunFilter(path, outPath, FilterOptions{Layer: "resolve"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}

	reader, err := log.NewReader(outPath)
	if err != nil {
		t.Fatalf("failed to open filtered file: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events in output, got %d", len(events))
	}
	for _, e := range events {
		if e.Layer != log.LayerResolve {
			t.Errorf("unexpected layer %s", e.Layer)
		}
	}
	if events[1].Resolve == nil || events[1].Resolve.Pass != 1 {
		t.Errorf("expected translate pass, got %+v", events[1].Resolve)
	}
}

func TestRunFilterByService(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, sampleEvents(ts))
	outPath := filepath.Join(t.TempDir(), "filtered.mlog")

	count, err := RunFilter(path, outPath, FilterOptions{Service: "read"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 event, got %d", count)
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, nil)

	_, err := RunFilter(path, filepath.Join(t.TempDir(), "out.mlog"), FilterOptions{Layer: "bogus"})
	if err == nil {
		t.Fatal("expected error for invalid layer")
	}
}
