package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mash-protocol/mash-ua/pkg/address"
	"github.com/mash-protocol/mash-ua/pkg/cache"
	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/mask"
	"github.com/mash-protocol/mash-ua/pkg/paging"
	"github.com/mash-protocol/mash-ua/pkg/resolve"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Client executes batched service requests whose targets are Addresses.
//
// A Client is safe for concurrent use if its Invoker is.
type Client struct {
	invoker  Invoker
	resolver *resolve.Resolver
	config   ClientConfig

	logger *slog.Logger
	rec    log.Recorder
}

// NewClient creates a Client on top of invoker.
func NewClient(invoker Invoker, config ClientConfig) (*Client, error) {
	if invoker == nil {
		return nil, fmt.Errorf("%w: nil invoker", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.ClientID == "" {
		config.ClientID = uuid.NewString()
	}

	c := config.Cache
	if c == nil {
		var err error
		c, err = cache.New(cache.Config{MaxEntries: config.CacheSize})
		if err != nil {
			return nil, err
		}
	}

	resolver, err := resolve.New(invoker, c, resolve.Config{
		StrictAbsoluteVerification: config.StrictAbsoluteVerification,
		MaxTranslatePasses:         config.MaxTranslatePasses,
		ClientID:                   config.ClientID,
		Logger:                     config.Logger,
		ProtocolLogger:             config.ProtocolLogger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		invoker:  invoker,
		resolver: resolver,
		config:   config,
		logger:   config.Logger,
		rec:      log.NewRecorder(config.ProtocolLogger, config.ClientID),
	}, nil
}

// ClientID returns the client ID stamped on protocol log events.
func (c *Client) ClientID() string {
	return c.config.ClientID
}

// Cache returns the resolution cache.
func (c *Client) Cache() *cache.Cache {
	return c.resolver.Cache()
}

// Resolve resolves a batch of Addresses without invoking any other service.
func (c *Client) Resolve(ctx context.Context, addrs []address.Address) (resolve.Results, error) {
	return c.resolver.Resolve(ctx, addrs)
}

// TranslateBrowsePaths passes browse paths straight to the Invoker. It
// neither consults nor fills the resolution cache.
func (c *Client) TranslateBrowsePaths(ctx context.Context, paths []ua.BrowsePath) ([]ua.BrowsePathResult, error) {
	if err := c.checkBatch(len(paths)); err != nil {
		return nil, err
	}
	started := time.Now()
	results, err := c.invoker.TranslateBrowsePaths(ctx, paths)
	failed := 0
	for _, r := range results {
		if !r.StatusCode.IsGood() {
			failed++
		}
	}
	c.record(ua.ServiceTranslateBrowsePaths, len(paths), started, failed, err)
	if err != nil {
		return nil, fmt.Errorf("translate browse paths: %w", err)
	}
	if len(results) != len(paths) {
		return nil, fmt.Errorf("translate browse paths: %w: %d results for %d paths", ErrUnexpected, len(results), len(paths))
	}
	return results, nil
}

// Read reads the attributes named by targets. The result for a target
// that did not resolve carries its resolution status.
func (c *Client) Read(ctx context.Context, targets []*ReadTarget) ([]ua.DataValue, error) {
	statuses, live, err := prepare(ctx, c, targets)
	out := make([]ua.DataValue, len(statuses))
	for i, s := range statuses {
		out[i].StatusCode = s
	}
	if err != nil || len(live) == 0 {
		return out, err
	}

	reqs := make([]ua.ReadValueID, len(live))
	for k, i := range live {
		reqs[k] = ua.ReadValueID{NodeID: targets[i].Node(), AttributeID: targets[i].Attribute}
	}

	started := time.Now()
	values, err := c.invoker.Read(ctx, reqs)
	failed := 0
	for _, v := range values {
		if !v.StatusCode.IsGood() {
			failed++
		}
	}
	c.record(ua.ServiceRead, len(reqs), started, failed, err)
	if err = checkResults(ua.ServiceRead, len(values), len(reqs), err); err != nil {
		for _, i := range live {
			out[i].StatusCode = ua.StatusOf(err)
		}
		return out, err
	}

	for k, i := range live {
		out[i] = values[k]
	}
	return out, nil
}

// Write writes the values of targets. The result for a target that did
// not resolve is its resolution status.
func (c *Client) Write(ctx context.Context, targets []*WriteTarget) ([]ua.StatusCode, error) {
	out, live, err := prepare(ctx, c, targets)
	if err != nil || len(live) == 0 {
		return out, err
	}

	reqs := make([]ua.WriteValue, len(live))
	for k, i := range live {
		reqs[k] = ua.WriteValue{
			NodeID:      targets[i].Node(),
			AttributeID: targets[i].Attribute,
			Value:       targets[i].Value,
		}
	}

	started := time.Now()
	results, err := c.invoker.Write(ctx, reqs)
	failed := 0
	for _, s := range results {
		if !s.IsGood() {
			failed++
		}
	}
	c.record(ua.ServiceWrite, len(reqs), started, failed, err)
	if err = checkResults(ua.ServiceWrite, len(results), len(reqs), err); err != nil {
		for _, i := range live {
			out[i] = ua.StatusOf(err)
		}
		return out, err
	}

	for k, i := range live {
		out[i] = results[k]
	}
	return out, nil
}

// Call invokes the methods named by targets. The call is sent to the
// server that owns the object.
func (c *Client) Call(ctx context.Context, targets []*CallTarget) ([]ua.CallMethodResult, error) {
	statuses, live, err := prepare(ctx, c, targets)
	out := make([]ua.CallMethodResult, len(statuses))
	for i, s := range statuses {
		out[i].StatusCode = s
	}
	if err != nil || len(live) == 0 {
		return out, err
	}

	reqs := make([]ua.CallMethodRequest, len(live))
	for k, i := range live {
		reqs[k] = ua.CallMethodRequest{
			ObjectID:       targets[i].ObjectNode(),
			MethodID:       targets[i].MethodNode(),
			InputArguments: targets[i].Arguments,
		}
	}

	started := time.Now()
	results, err := c.invoker.Call(ctx, reqs)
	failed := 0
	for _, r := range results {
		if !r.StatusCode.IsGood() {
			failed++
		}
	}
	c.record(ua.ServiceCall, len(reqs), started, failed, err)
	if err = checkResults(ua.ServiceCall, len(results), len(reqs), err); err != nil {
		for _, i := range live {
			out[i].StatusCode = ua.StatusOf(err)
		}
		return out, err
	}

	for k, i := range live {
		out[i] = results[k]
	}
	return out, nil
}

// Browse browses the nodes named by targets, following continuation
// points for up to MaxBrowseRounds rounds. The returned session holds one
// merged result per target; continuation points left by the round ceiling
// are continued or released through it.
func (c *Client) Browse(ctx context.Context, targets []*BrowseTarget) (*BrowseSession, error) {
	statuses, live, err := prepare(ctx, c, targets)
	sess := &BrowseSession{Results: make([]paging.Result, len(statuses))}
	for i, s := range statuses {
		sess.Results[i].Status = s
	}
	if err != nil || len(live) == 0 {
		return sess, err
	}

	descs := make([]ua.BrowseDescription, len(live))
	for k, i := range live {
		descs[k] = targets[i].description()
	}

	inv, err := paging.Browse(ctx, c.invoker, descs, paging.Config{
		MaxRounds:      c.config.MaxBrowseRounds,
		ClientID:       c.config.ClientID,
		Logger:         c.config.Logger,
		ProtocolLogger: c.config.ProtocolLogger,
	})
	if inv == nil {
		return sess, err
	}
	sess.inv = inv
	sess.live = live
	sess.sync()
	if err != nil {
		return sess, fmt.Errorf("browse: %w", err)
	}
	return sess, nil
}

// BrowseNext continues (or, with release set, releases) continuation
// points returned by Browse.
func (c *Client) BrowseNext(ctx context.Context, release bool, points [][]byte) ([]ua.BrowseResult, error) {
	if err := c.checkBatch(len(points)); err != nil {
		return nil, err
	}
	started := time.Now()
	results, err := c.invoker.BrowseNext(ctx, release, points)
	failed := 0
	for _, r := range results {
		if !r.StatusCode.IsGood() {
			failed++
		}
	}
	c.record(ua.ServiceBrowseNext, len(points), started, failed, err)
	if err = checkResults(ua.ServiceBrowseNext, len(results), len(points), err); err != nil {
		return nil, err
	}
	return results, nil
}

// prepare resolves every target and returns the per-target statuses and
// the indices of the targets that resolved.
func prepare[T resolve.Resolvable](ctx context.Context, c *Client, targets []T) ([]ua.StatusCode, []int, error) {
	if err := c.checkBatch(len(targets)); err != nil {
		statuses := make([]ua.StatusCode, len(targets))
		for i := range statuses {
			statuses[i] = ua.StatusOf(err)
		}
		return statuses, nil, err
	}

	statuses, err := resolve.Targets(ctx, c.resolver, targets, mask.New(len(targets), true))
	if err != nil {
		c.debugLog("service: resolution failed", "targets", len(targets), "error", err)
		return statuses, nil, err
	}

	live := make([]int, 0, len(targets))
	for i, s := range statuses {
		if s.IsGood() {
			live = append(live, i)
		}
	}
	c.debugLog("service: targets resolved", "targets", len(targets), "resolved", len(live))
	return statuses, live, nil
}

func (c *Client) checkBatch(n int) error {
	if n == 0 {
		return ErrNothingToDo
	}
	if c.config.MaxOperationsPerCall > 0 && n > c.config.MaxOperationsPerCall {
		return fmt.Errorf("%w: %d > %d", ErrTooManyOperations, n, c.config.MaxOperationsPerCall)
	}
	return nil
}

func checkResults(kind ua.ServiceKind, got, want int, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	if got != want {
		return fmt.Errorf("%s: %w: %d results for %d requests", kind, ErrUnexpected, got, want)
	}
	return nil
}

func (c *Client) record(kind ua.ServiceKind, targets int, started time.Time, failed int, err error) {
	ev := log.ServiceEvent{
		Service:  kind,
		Targets:  targets,
		Duration: time.Since(started),
		Failed:   failed,
	}
	if err != nil {
		ev.Err = err.Error()
		c.rec.Error(log.LayerService, kind.String(), err, ua.StatusOf(err))
	}
	c.rec.Service(ev)
}

// debugLog logs a debug message if logging is enabled.
func (c *Client) debugLog(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
