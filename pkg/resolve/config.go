package resolve

import (
	"log/slog"

	"github.com/mash-protocol/mash-ua/pkg/log"
)

// Config configures a Resolver.
type Config struct {
	// StrictAbsoluteVerification fails the whole batch when one absolute
	// Address lacks a server URI or namespace. When false, only that
	// entry fails.
	StrictAbsoluteVerification bool

	// MaxTranslatePasses bounds the translation passes per batch. Entries
	// still pending afterwards fail with BadUnexpectedError.
	MaxTranslatePasses int

	// ClientID is stamped on protocol log events.
	ClientID string

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives resolution events. Nil disables them.
	ProtocolLogger log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTranslatePasses: 32,
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.MaxTranslatePasses < 1 {
		return ErrInvalidConfig
	}
	return nil
}
