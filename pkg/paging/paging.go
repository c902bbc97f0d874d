package paging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Paging errors.
var (
	// ErrUnexpected reports a result count that does not match the request.
	ErrUnexpected = ua.NewStatusError(ua.StatusBadUnexpectedError, "browse result count mismatch")

	// ErrInvalidConfig reports an invalid Config.
	ErrInvalidConfig = errors.New("invalid paging configuration")

	// ErrNothingToRelease is returned by Release when no target holds a
	// continuation point.
	ErrNothingToRelease = ua.NewStatusError(ua.StatusBadNothingToDo, "no continuation points")
)

// Browser is the service collaborator used for paged browsing. Both
// methods must return one result per request entry, in request order.
type Browser interface {
	Browse(ctx context.Context, descriptions []ua.BrowseDescription) ([]ua.BrowseResult, error)
	BrowseNext(ctx context.Context, release bool, points [][]byte) ([]ua.BrowseResult, error)
}

// State is the state of an Invocation.
type State uint8

const (
	// StateInitial means no request was sent yet.
	StateInitial State = iota
	// StateAwaitingFirstPage means the initial Browse is in flight.
	StateAwaitingFirstPage
	// StateAwaitingNextPage means a BrowseNext round is in flight.
	StateAwaitingNextPage
	// StateDone means no further automatic rounds will be made.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitial:
		return "INITIAL"
	case StateAwaitingFirstPage:
		return "AWAITING_FIRST_PAGE"
	case StateAwaitingNextPage:
		return "AWAITING_NEXT_PAGE"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Config configures paged browsing.
type Config struct {
	// MaxRounds bounds the automatic BrowseNext rounds after the initial
	// Browse. Zero disables automatic follow-ups.
	MaxRounds int

	// ClientID is stamped on protocol log events.
	ClientID string

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives page events. Nil disables them.
	ProtocolLogger log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRounds: 10,
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.MaxRounds < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Result is the merged outcome for one browse description.
type Result struct {
	// Status is the status of the latest page.
	Status ua.StatusCode

	// References accumulates the references of every page.
	References []ua.ReferenceDescription

	// ContinuationPoint is the latest continuation point; nil when the
	// browse is complete or was released.
	ContinuationPoint []byte

	// Pages counts the follow-up rounds the target took part in.
	Pages int
}

// HasMore reports whether the target can be continued.
func (r *Result) HasMore() bool {
	return r.Status.IsGood() && len(r.ContinuationPoint) > 0
}

func (r *Result) merge(br ua.BrowseResult) {
	r.References = append(r.References, br.References...)
	r.Status = br.StatusCode
	r.ContinuationPoint = br.ContinuationPoint
}

// Invocation is one paged browse. It is not safe for concurrent use.
type Invocation struct {
	// State is the current state.
	State State

	// Rounds counts the BrowseNext rounds made so far, automatic and
	// manual.
	Rounds int

	// Results holds one entry per browse description.
	Results []Result

	browser Browser
	config  Config
	rec     log.Recorder
}

// Browse runs the initial Browse for descriptions and then follows up on
// continuation points until none remain or cfg.MaxRounds rounds were made.
//
// A collaborator error or a result count mismatch stops the invocation and
// is returned together with the results merged so far.
func Browse(ctx context.Context, browser Browser, descriptions []ua.BrowseDescription, cfg Config) (*Invocation, error) {
	if browser == nil {
		return nil, fmt.Errorf("%w: nil browser", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	inv := &Invocation{
		State:   StateInitial,
		Results: make([]Result, len(descriptions)),
		browser: browser,
		config:  cfg,
		rec:     log.NewRecorder(cfg.ProtocolLogger, cfg.ClientID),
	}
	if len(descriptions) == 0 {
		inv.State = StateDone
		return inv, nil
	}

	inv.State = StateAwaitingFirstPage
	started := time.Now()
	results, err := browser.Browse(ctx, descriptions)
	inv.recordService(ua.ServiceBrowse, len(descriptions), started, results, err)
	if err != nil {
		inv.fail(err)
		return inv, err
	}
	if len(results) != len(descriptions) {
		err = fmt.Errorf("%w: %d results for %d descriptions", ErrUnexpected, len(results), len(descriptions))
		inv.fail(err)
		return inv, err
	}

	refs := 0
	for i, br := range results {
		inv.Results[i].merge(br)
		refs += len(br.References)
	}
	inv.recordPage(0, len(descriptions), refs, false)

	for inv.Rounds < cfg.MaxRounds && len(inv.Pending()) > 0 {
		if err := inv.round(ctx); err != nil {
			return inv, err
		}
	}

	if remaining := len(inv.Pending()); remaining > 0 {
		inv.debugLog("paging: round ceiling reached",
			"rounds", inv.Rounds, "remaining", remaining)
		inv.recordPage(inv.Rounds, 0, 0, true)
	}
	inv.State = StateDone
	return inv, nil
}

// Pending returns the indices of targets that can be continued.
func (inv *Invocation) Pending() []int {
	var pending []int
	for i := range inv.Results {
		if inv.Results[i].HasMore() {
			pending = append(pending, i)
		}
	}
	return pending
}

// Continue makes one more BrowseNext round for the pending targets,
// regardless of the round ceiling. It is a no-op if nothing is pending.
func (inv *Invocation) Continue(ctx context.Context) error {
	if len(inv.Pending()) == 0 {
		return nil
	}
	err := inv.round(ctx)
	if err == nil {
		inv.State = StateDone
	}
	return err
}

// Release frees the server side state of every pending continuation point
// and clears them from the results.
func (inv *Invocation) Release(ctx context.Context) error {
	pending := inv.Pending()
	if len(pending) == 0 {
		return ErrNothingToRelease
	}

	points := make([][]byte, len(pending))
	for k, i := range pending {
		points[k] = inv.Results[i].ContinuationPoint
	}

	started := time.Now()
	results, err := inv.browser.BrowseNext(ctx, true, points)
	inv.recordService(ua.ServiceBrowseNext, len(points), started, results, err)
	if err != nil {
		inv.rec.Error(log.LayerPaging, "release", err, ua.StatusOf(err))
		return err
	}
	if len(results) != len(points) {
		return fmt.Errorf("%w: %d results for %d continuation points", ErrUnexpected, len(results), len(points))
	}
	for _, i := range pending {
		inv.Results[i].ContinuationPoint = nil
	}
	inv.debugLog("paging: released continuation points", "count", len(pending))
	return nil
}

// round sends one BrowseNext with exactly the pending continuation points.
func (inv *Invocation) round(ctx context.Context) error {
	pending := inv.Pending()
	points := make([][]byte, len(pending))
	for k, i := range pending {
		points[k] = inv.Results[i].ContinuationPoint
	}

	inv.State = StateAwaitingNextPage
	inv.Rounds++

	started := time.Now()
	results, err := inv.browser.BrowseNext(ctx, false, points)
	inv.recordService(ua.ServiceBrowseNext, len(points), started, results, err)
	if err != nil {
		inv.failPending(pending, err)
		return err
	}
	if len(results) != len(points) {
		err = fmt.Errorf("%w: %d results for %d continuation points", ErrUnexpected, len(results), len(points))
		inv.failPending(pending, err)
		return err
	}

	refs := 0
	for k, i := range pending {
		inv.Results[i].merge(results[k])
		inv.Results[i].Pages++
		refs += len(results[k].References)
	}
	inv.recordPage(inv.Rounds, len(pending), refs, false)
	inv.debugLog("paging: round complete",
		"round", inv.Rounds, "pending", len(pending), "references", refs)
	return nil
}

// fail marks every target with the status of err.
func (inv *Invocation) fail(err error) {
	status := ua.StatusOf(err)
	for i := range inv.Results {
		inv.Results[i].Status = status
		inv.Results[i].ContinuationPoint = nil
	}
	inv.State = StateDone
	inv.rec.Error(log.LayerPaging, "browse", err, status)
}

// failPending marks the targets of a failed round. Their references so
// far are kept.
func (inv *Invocation) failPending(pending []int, err error) {
	status := ua.StatusOf(err)
	for _, i := range pending {
		inv.Results[i].Status = status
		inv.Results[i].ContinuationPoint = nil
	}
	inv.State = StateDone
	inv.rec.Error(log.LayerPaging, "browse next", err, status)
}

func (inv *Invocation) recordService(kind ua.ServiceKind, targets int, started time.Time, results []ua.BrowseResult, err error) {
	ev := log.ServiceEvent{
		Service:  kind,
		Targets:  targets,
		Duration: time.Since(started),
	}
	for _, br := range results {
		if !br.StatusCode.IsGood() {
			ev.Failed++
		}
	}
	if err != nil {
		ev.Err = err.Error()
	}
	inv.rec.Service(ev)
}

func (inv *Invocation) recordPage(round, pending, refs int, ceiling bool) {
	inv.rec.Page(log.PageEvent{
		Round:          round,
		Pending:        pending,
		References:     refs,
		Remaining:      len(inv.Pending()),
		CeilingReached: ceiling,
	})
}

// debugLog logs a debug message if logging is enabled.
func (inv *Invocation) debugLog(msg string, args ...any) {
	if inv.config.Logger != nil {
		inv.config.Logger.Debug(msg, args...)
	}
}
