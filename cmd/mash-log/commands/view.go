// Package commands implements the mash-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// timeFormat is the timestamp layout of every human-readable line.
const timeFormat = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [client:id] LAYER CATEGORY label
	ts := event.Timestamp.UTC().Format(timeFormat)
	fmt.Fprintf(w, "%s [client:%s] %-7s %-9s %s\n",
		ts, shortenID(event.ClientID), event.Layer.String(), event.Category.String(), eventLabel(event))

	switch {
	case event.Resolve != nil:
		formatResolveDetails(w, event.Category, event.Resolve)
	case event.Service != nil:
		formatServiceDetails(w, event.Service)
	case event.Page != nil:
		formatPageDetails(w, event.Page)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// eventLabel names the payload of an event.
func eventLabel(event log.Event) string {
	switch {
	case event.Resolve != nil:
		if event.Category == log.CategoryTranslate {
			return fmt.Sprintf("Pass %d", event.Resolve.Pass)
		}
		return fmt.Sprintf("Depth %d", event.Resolve.Depth)
	case event.Service != nil:
		return event.Service.Service.String()
	case event.Page != nil:
		return fmt.Sprintf("Round %d", event.Page.Round)
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenID returns the first 8 characters of a client ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatResolveDetails(w io.Writer, category log.Category, ev *log.ResolveEvent) {
	if category == log.CategoryTranslate {
		fmt.Fprintf(w, "  Depth: %d  Paths: %d\n", ev.Depth, ev.Pending)
		fmt.Fprintf(w, "  Resolved: %d  Failed: %d  Continued: %d\n", ev.Resolved, ev.Failed, ev.Continued)
		return
	}
	fmt.Fprintf(w, "  Batch: %d  Cache hits: %d\n", ev.BatchSize, ev.CacheHits)
	if ev.Absolute > 0 || ev.Relative > 0 {
		fmt.Fprintf(w, "  Misses: %d absolute, %d relative\n", ev.Absolute, ev.Relative)
	}
}

func formatServiceDetails(w io.Writer, ev *log.ServiceEvent) {
	fmt.Fprintf(w, "  Targets: %d  Failed: %d\n", ev.Targets, ev.Failed)
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(ev.Duration))
	if ev.Err != "" {
		fmt.Fprintf(w, "  Error: %s\n", ev.Err)
	}
}

func formatPageDetails(w io.Writer, ev *log.PageEvent) {
	fmt.Fprintf(w, "  Targets: %d  References: %d  Remaining: %d\n", ev.Pending, ev.References, ev.Remaining)
	if ev.CeilingReached {
		fmt.Fprintln(w, "  Round ceiling reached")
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %s\n", err.Code.String())
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "resolve":
		return log.LayerResolve, nil
	case "paging":
		return log.LayerPaging, nil
	case "service":
		return log.LayerService, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be resolve, paging, or service)", s)
	}
}

// ParseCategoryFlag parses a category string (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "cache":
		return log.CategoryCache, nil
	case "translate":
		return log.CategoryTranslate, nil
	case "invoke":
		return log.CategoryInvoke, nil
	case "page":
		return log.CategoryPage, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be cache, translate, invoke, page, or error)", s)
	}
}

// ParseServiceFlag parses a service name such as "Read" (case-insensitive).
// "translate" is accepted for TranslateBrowsePathsToNodeIds.
func ParseServiceFlag(s string) (ua.ServiceKind, error) {
	if strings.EqualFold(s, "translate") {
		return ua.ServiceTranslateBrowsePaths, nil
	}
	for _, k := range []ua.ServiceKind{
		ua.ServiceTranslateBrowsePaths, ua.ServiceBrowse, ua.ServiceBrowseNext,
		ua.ServiceRead, ua.ServiceWrite, ua.ServiceCall,
	} {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("invalid service: %s", s)
}

// RunView writes every event that matches filter to output.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
