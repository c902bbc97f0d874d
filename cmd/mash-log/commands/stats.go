package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	Services         map[ua.ServiceKind]*ServiceStats
	Clients          map[string]*ClientStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}

	// Resolution totals over all cache phases and translation passes.
	CacheHits   int
	CacheMisses int
	Passes      int
	Continued   int

	// Paging totals.
	Rounds   int
	Ceilings int
}

// ServiceStats holds statistics for one service kind.
type ServiceStats struct {
	Calls    int
	Targets  int
	Failed   int
	Errors   int
	Duration time.Duration
}

// ClientStats holds statistics for a single client.
type ClientStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		Services:         make(map[ua.ServiceKind]*ServiceStats),
		Clients:          make(map[string]*ClientStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	client, ok := s.Clients[event.ClientID]
	if !ok {
		client = &ClientStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Clients[event.ClientID] = client
	}
	client.Events++
	if event.Timestamp.After(client.LastSeen) {
		client.LastSeen = event.Timestamp
	}

	switch {
	case event.Resolve != nil && event.Category == log.CategoryTranslate:
		s.Passes++
		s.Continued += event.Resolve.Continued
	case event.Resolve != nil:
		s.CacheHits += event.Resolve.CacheHits
		s.CacheMisses += event.Resolve.Absolute + event.Resolve.Relative
	case event.Service != nil:
		svc, ok := s.Services[event.Service.Service]
		if !ok {
			svc = &ServiceStats{}
			s.Services[event.Service.Service] = svc
		}
		svc.Calls++
		svc.Targets += event.Service.Targets
		svc.Failed += event.Service.Failed
		svc.Duration += event.Service.Duration
		if event.Service.Err != "" {
			svc.Errors++
		}
	case event.Page != nil:
		s.Rounds++
		if event.Page.CeilingReached {
			s.Ceilings++
		}
	case event.Error != nil:
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerResolve, log.LayerPaging, log.LayerService} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryCache, log.CategoryTranslate, log.CategoryInvoke, log.CategoryPage, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Resolution:")
	fmt.Fprintf(w, "  Cache hits:   %d\n", stats.CacheHits)
	fmt.Fprintf(w, "  Cache misses: %d\n", stats.CacheMisses)
	fmt.Fprintf(w, "  Passes:       %d (%d continued across servers)\n", stats.Passes, stats.Continued)
	fmt.Fprintln(w)

	if len(stats.Services) > 0 {
		kinds := make([]ua.ServiceKind, 0, len(stats.Services))
		for k := range stats.Services {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

		fmt.Fprintln(w, "Services:")
		for _, k := range kinds {
			svc := stats.Services[k]
			fmt.Fprintf(w, "  %-30s %d calls, %d targets, %d failed, total %s\n",
				k.String()+":", svc.Calls, svc.Targets, svc.Failed, formatDuration(svc.Duration))
			if svc.Errors > 0 {
				fmt.Fprintf(w, "  %-30s %d batch errors\n", "", svc.Errors)
			}
		}
		fmt.Fprintln(w)
	}

	if stats.Rounds > 0 {
		fmt.Fprintf(w, "Paging: %d rounds, ceiling reached %d times\n", stats.Rounds, stats.Ceilings)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Clients: %d\n", len(stats.Clients))
	if len(stats.Clients) > 0 {
		type clientInfo struct {
			id    string
			stats *ClientStats
		}
		clients := make([]clientInfo, 0, len(stats.Clients))
		for id, cs := range stats.Clients {
			clients = append(clients, clientInfo{id, cs})
		}
		sort.Slice(clients, func(i, j int) bool {
			return clients[i].stats.FirstSeen.Before(clients[j].stats.FirstSeen)
		})

		for _, c := range clients {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenID(c.id), c.stats.Events, duration)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
