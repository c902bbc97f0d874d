package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter that logs at level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.ClientID != "" {
		attrs = append(attrs, slog.String("client_id", event.ClientID))
	}

	switch {
	case event.Resolve != nil:
		r := event.Resolve
		attrs = append(attrs,
			slog.Int("depth", r.Depth),
			slog.Int("batch", r.BatchSize),
		)
		if r.Pass == 0 {
			attrs = append(attrs,
				slog.Int("cache_hits", r.CacheHits),
				slog.Int("absolute", r.Absolute),
				slog.Int("relative", r.Relative),
			)
		} else {
			attrs = append(attrs,
				slog.Int("pass", r.Pass),
				slog.Int("pending", r.Pending),
				slog.Int("resolved", r.Resolved),
				slog.Int("failed", r.Failed),
				slog.Int("continued", r.Continued),
			)
		}
	case event.Service != nil:
		s := event.Service
		attrs = append(attrs,
			slog.String("service", s.Service.String()),
			slog.Int("targets", s.Targets),
			slog.Duration("duration", s.Duration),
		)
		if s.Failed > 0 {
			attrs = append(attrs, slog.Int("failed", s.Failed))
		}
		if s.Err != "" {
			attrs = append(attrs, slog.String("error", s.Err))
		}
	case event.Page != nil:
		p := event.Page
		attrs = append(attrs,
			slog.Int("round", p.Round),
			slog.Int("pending", p.Pending),
			slog.Int("references", p.References),
			slog.Int("remaining", p.Remaining),
		)
		if p.CeilingReached {
			attrs = append(attrs, slog.Bool("ceiling_reached", true))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
		if event.Error.Code != nil {
			attrs = append(attrs, slog.String("error_code", event.Error.Code.String()))
		}
	}

	a.logger.LogAttrs(context.Background(), a.level, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
