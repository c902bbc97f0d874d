package service

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mash-protocol/mash-ua/pkg/cache"
	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Service errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNothingToDo is returned for an empty batch.
	ErrNothingToDo = ua.NewStatusError(ua.StatusBadNothingToDo, "empty request")

	// ErrTooManyOperations is returned for a batch above
	// ClientConfig.MaxOperationsPerCall.
	ErrTooManyOperations = ua.NewStatusError(ua.StatusBadTooManyOperations, "too many operations")

	// ErrUnexpected reports a result count that does not match the request.
	ErrUnexpected = ua.NewStatusError(ua.StatusBadUnexpectedError, "result count mismatch")
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// ClientID identifies the client in protocol log events.
	// If empty, NewClient generates a random UUID.
	ClientID string

	// Cache is a resolution cache shared with other clients. If nil, the
	// client creates its own from CacheSize.
	Cache *cache.Cache

	// CacheSize bounds the client's own resolution cache (0 = unbounded).
	CacheSize int

	// StrictAbsoluteVerification fails a whole batch when one absolute
	// Address lacks a server URI or namespace.
	StrictAbsoluteVerification bool

	// MaxTranslatePasses bounds the translation passes per resolution.
	MaxTranslatePasses int

	// MaxBrowseRounds bounds the automatic BrowseNext rounds of Browse.
	// Zero disables automatic continuation.
	MaxBrowseRounds int

	// MaxOperationsPerCall bounds the batch size (0 = unlimited).
	MaxOperationsPerCall int

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives resolution, paging and service events.
	// Nil disables them.
	ProtocolLogger log.Logger
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ClientID:           uuid.NewString(),
		MaxTranslatePasses: 32,
		MaxBrowseRounds:    10,
	}
}

// Validate checks if the client config is valid.
func (c *ClientConfig) Validate() error {
	if c.CacheSize < 0 || c.MaxBrowseRounds < 0 || c.MaxOperationsPerCall < 0 {
		return ErrInvalidConfig
	}
	if c.MaxTranslatePasses < 1 {
		return ErrInvalidConfig
	}
	return nil
}
