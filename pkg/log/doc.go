// Package log provides structured protocol logging for the resolution core.
//
// This package defines the Logger interface and Event types for capturing
// what the core does on the wire-facing side: cache lookups, translation
// passes, service invocations and browse continuation rounds. It is separate
// from operational logging (slog) - protocol capture provides a complete
// machine-readable event trace for debugging and analysis.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/mash-ua/client.mlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at three layers:
//   - Resolve: cache phase and translation passes (ResolveEvent)
//   - Paging: continuation rounds of paged browse (PageEvent)
//   - Service: each call to the service collaborator (ServiceEvent)
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Log files are a sequence of CBOR-encoded events with the .mlog extension.
// Reader streams them back with optional filtering.
package log
