package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mash-protocol/mash-ua/pkg/address"
	"github.com/mash-protocol/mash-ua/pkg/cache"
	"github.com/mash-protocol/mash-ua/pkg/log"
	"github.com/mash-protocol/mash-ua/pkg/mask"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Translator is the service collaborator used by the relative phase. It
// must return one result per browse path, in request order.
type Translator interface {
	TranslateBrowsePaths(ctx context.Context, paths []ua.BrowsePath) ([]ua.BrowsePathResult, error)
}

// Results holds the outcome of a Resolve call. Both slices have the length
// of the input batch. Nodes[i] is meaningful only if Statuses[i] is good.
type Results struct {
	Nodes    []ua.ExpandedNodeID
	Statuses []ua.StatusCode
}

func newResults(n int) Results {
	res := Results{
		Nodes:    make([]ua.ExpandedNodeID, n),
		Statuses: make([]ua.StatusCode, n),
	}
	for i := range res.Statuses {
		res.Statuses[i] = ua.StatusBadUnexpectedError
	}
	return res
}

// Len returns the batch size.
func (r Results) Len() int {
	return len(r.Statuses)
}

// AllGood reports whether every entry resolved.
func (r Results) AllGood() bool {
	for _, s := range r.Statuses {
		if !s.IsGood() {
			return false
		}
	}
	return true
}

func (r Results) resolved(i int, node ua.ExpandedNodeID) {
	r.Nodes[i] = node
	r.Statuses[i] = ua.StatusGood
}

func (r Results) failed(i int, status ua.StatusCode) {
	r.Nodes[i] = ua.ExpandedNodeID{}
	r.Statuses[i] = status
}

func (r Results) failAll(status ua.StatusCode) {
	for i := range r.Statuses {
		r.failed(i, status)
	}
}

// Resolver resolves Addresses to absolute identifiers.
//
// A Resolver is safe for concurrent use if its cache is; the default cache
// is. Each Resolve call is synchronous and blocks on the collaborator.
type Resolver struct {
	translator Translator
	cache      *cache.Cache
	config     Config

	logger *slog.Logger
	rec    log.Recorder
}

// New creates a Resolver. A nil cache is replaced by an unbounded one.
func New(translator Translator, c *cache.Cache, config Config) (*Resolver, error) {
	if translator == nil {
		return nil, fmt.Errorf("%w: nil translator", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		c = cache.NewUnbounded()
	}
	return &Resolver{
		translator: translator,
		cache:      c,
		config:     config,
		logger:     config.Logger,
		rec:        log.NewRecorder(config.ProtocolLogger, config.ClientID),
	}, nil
}

// Cache returns the resolution cache.
func (r *Resolver) Cache() *cache.Cache {
	return r.cache
}

// debugLog logs a debug message if logging is enabled.
func (r *Resolver) debugLog(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

// Resolve resolves a batch of Addresses.
//
// The returned Results always have the length of addrs. A non-nil error
// reports a batch-level failure: an ill-formed Address (ErrInvalidRequest,
// every entry fails), a malformed absolute Address in strict mode
// (ErrResolution, every entry fails), a collaborator error or a result
// count mismatch (ErrUnexpected); the last two fail only the entries that
// were still pending.
func (r *Resolver) Resolve(ctx context.Context, addrs []address.Address) (Results, error) {
	return r.resolve(ctx, addrs, 0)
}

func (r *Resolver) resolve(ctx context.Context, addrs []address.Address, depth int) (Results, error) {
	n := len(addrs)
	res := newResults(n)
	if n == 0 {
		return res, nil
	}

	// Cache phase.
	absolute := mask.New(n, false)
	relative := mask.New(n, false)
	hits := 0
	for i, a := range addrs {
		if !a.IsWellFormed() {
			res.failAll(ua.StatusBadInvalidArgument)
			err := &Error{Op: "classify", Index: i, Status: ua.StatusBadInvalidArgument, Err: ErrInvalidRequest}
			r.rec.Error(log.LayerResolve, "classify", err, err.Status)
			return res, err
		}
		if node, ok := r.cache.Find(a); ok {
			res.resolved(i, node)
			hits++
			continue
		}
		if a.IsAbsolute() {
			absolute.Set(i)
		} else {
			relative.Set(i)
		}
	}

	r.rec.Resolve(log.CategoryCache, log.ResolveEvent{
		Depth:     depth,
		BatchSize: n,
		CacheHits: hits,
		Absolute:  absolute.SetCount(),
		Relative:  relative.SetCount(),
	})
	r.debugLog("resolve: cache phase",
		"depth", depth, "batch", n, "hits", hits,
		"absolute", absolute.SetCount(), "relative", relative.SetCount())

	if absolute.Any() {
		if err := r.verifyAbsolute(addrs, absolute, res); err != nil {
			return res, err
		}
	}

	if relative.Any() {
		if err := r.resolveRelative(ctx, addrs, relative, res, depth); err != nil {
			return res, err
		}
	}

	return res, nil
}

// verifyAbsolute copies absolute Addresses through to the results. An
// absolute Address must name its owning server and its namespace.
func (r *Resolver) verifyAbsolute(addrs []address.Address, m mask.Mask, res Results) error {
	for _, i := range m.Indices() {
		node := addrs[i].ExpandedNodeID()
		if !node.HasServer() || !node.NodeID.HasNamespace() {
			if r.config.StrictAbsoluteVerification {
				res.failAll(ua.StatusBadNodeIDInvalid)
				err := &Error{
					Op:     "verify",
					Index:  i,
					Status: ua.StatusBadNodeIDInvalid,
					Err:    fmt.Errorf("%w: %s lacks server or namespace", ErrResolution, node),
				}
				r.rec.Error(log.LayerResolve, "verify", err, err.Status)
				return err
			}
			r.debugLog("resolve: malformed absolute address", "index", i, "node", node.String())
			res.failed(i, ua.StatusBadNodeIDInvalid)
			continue
		}
		res.resolved(i, node)
		r.cache.Add(addrs[i], node, false)
	}
	return nil
}

// resolveRelative resolves the starting Addresses of the masked entries,
// then translates the resulting browse paths.
func (r *Resolver) resolveRelative(ctx context.Context, addrs []address.Address, m mask.Mask, res Results, depth int) error {
	indices := m.Indices()

	// Deduplicate starts so that siblings anchored on the same Address cost
	// one entry in the recursive batch.
	var (
		starts   []address.Address
		startPos = make(map[string]int)
		startOf  = make([]int, len(indices))
	)
	for k, i := range indices {
		s := addrs[i].StartingAddress()
		pos, ok := startPos[s.Key()]
		if !ok {
			pos = len(starts)
			starts = append(starts, s)
			startPos[s.Key()] = pos
		}
		startOf[k] = pos
	}

	startRes, err := r.resolve(ctx, starts, depth+1)
	if err != nil {
		status := StatusOf(err)
		for _, i := range indices {
			res.failed(i, status)
		}
		return err
	}

	// An entry that is also a start of a sibling was resolved and cached
	// by the recursion above.
	survivors := mask.New(len(addrs), false)
	paths := make([]ua.BrowsePath, len(addrs))
	reused := 0
	for k, i := range indices {
		pos := startOf[k]
		if !startRes.Statuses[pos].IsGood() {
			res.failed(i, startRes.Statuses[pos])
			continue
		}
		if node, ok := r.cache.Find(addrs[i]); ok {
			res.resolved(i, node)
			reused++
			continue
		}
		survivors.Set(i)
		paths[i] = ua.BrowsePath{
			StartingNode: startRes.Nodes[pos],
			RelativePath: addrs[i].RelativePath(),
		}
	}
	if reused > 0 {
		r.debugLog("resolve: entries resolved as starts", "depth", depth, "count", reused)
	}

	return r.translate(ctx, addrs, m.And(survivors), paths, res, depth)
}

// translate sends the pending browse paths in passes until none remain.
func (r *Resolver) translate(ctx context.Context, addrs []address.Address, pending mask.Mask, paths []ua.BrowsePath, res Results, depth int) error {
	for pass := 1; pending.Any(); pass++ {
		indices := pending.Indices()

		if pass > r.config.MaxTranslatePasses {
			for _, i := range indices {
				res.failed(i, ua.StatusBadUnexpectedError)
			}
			r.debugLog("resolve: pass limit reached", "depth", depth, "pending", len(indices))
			r.rec.Error(log.LayerResolve, "translate",
				fmt.Errorf("%w: %d paths pending after %d passes", ErrUnexpected, len(indices), r.config.MaxTranslatePasses),
				ua.StatusBadUnexpectedError)
			return nil
		}

		if err := ctx.Err(); err != nil {
			return r.failPending(indices, res, "translate", err)
		}

		batch := make([]ua.BrowsePath, len(indices))
		for k, i := range indices {
			batch[k] = paths[i]
		}

		started := time.Now()
		results, err := r.translator.TranslateBrowsePaths(ctx, batch)
		ev := log.ServiceEvent{
			Service:  ua.ServiceTranslateBrowsePaths,
			Targets:  len(batch),
			Duration: time.Since(started),
		}
		if err != nil {
			ev.Err = err.Error()
			r.rec.Service(ev)
			return r.failPending(indices, res, "translate", err)
		}
		if len(results) != len(batch) {
			ev.Err = "result count mismatch"
			r.rec.Service(ev)
			return r.failPending(indices, res, "translate",
				fmt.Errorf("%w: %d results for %d browse paths", ErrUnexpected, len(results), len(batch)))
		}
		for _, br := range results {
			if !br.StatusCode.IsGood() {
				ev.Failed++
			}
		}
		r.rec.Service(ev)

		var resolved, failed, continued int
		for k, i := range indices {
			switch r.classify(addrs[i], &paths[i], results[k], res, i) {
			case outcomeResolved:
				resolved++
				pending.Unset(i)
			case outcomeFailed:
				failed++
				pending.Unset(i)
			case outcomeContinue:
				continued++
			}
		}

		r.rec.Resolve(log.CategoryTranslate, log.ResolveEvent{
			Depth:     depth,
			BatchSize: len(addrs),
			Pass:      pass,
			Pending:   len(indices),
			Resolved:  resolved,
			Failed:    failed,
			Continued: continued,
		})
		r.debugLog("resolve: translate pass",
			"depth", depth, "pass", pass, "pending", len(indices),
			"resolved", resolved, "failed", failed, "continued", continued)
	}
	return nil
}

type outcome uint8

const (
	outcomeResolved outcome = iota
	outcomeFailed
	outcomeContinue
)

// classify applies one translation result to entry i. A path that crossed
// into another server is rewritten in place to start at the returned node.
func (r *Resolver) classify(a address.Address, path *ua.BrowsePath, br ua.BrowsePathResult, res Results, i int) outcome {
	if !br.StatusCode.IsGood() {
		res.failed(i, br.StatusCode)
		return outcomeFailed
	}

	switch len(br.Targets) {
	case 0:
		// Good without a match breaks the service contract.
		res.failed(i, ua.StatusBadUnexpectedError)
		return outcomeFailed
	case 1:
	default:
		r.debugLog("resolve: ambiguous browse path",
			"index", i, "path", path.String(), "matches", len(br.Targets))
		res.failed(i, ua.StatusBadTooManyMatches)
		return outcomeFailed
	}

	target := br.Targets[0]
	node := target.TargetID
	if node.IsLocal() {
		node.ServerURI = path.StartingNode.ServerURI
	}

	if target.IsFullyResolved() {
		res.resolved(i, node)
		r.cache.Add(a, node, true)
		return outcomeResolved
	}

	remaining := int(target.RemainingPathIndex)
	if remaining <= 0 || remaining >= len(path.RelativePath) {
		res.failed(i, ua.StatusBadUnexpectedError)
		return outcomeFailed
	}

	*path = ua.BrowsePath{
		StartingNode: node,
		RelativePath: path.RelativePath[remaining:].Clone(),
	}
	return outcomeContinue
}

func (r *Resolver) failPending(indices []int, res Results, op string, cause error) error {
	status := StatusOf(cause)
	for _, i := range indices {
		res.failed(i, status)
	}
	err := &Error{Op: op, Index: -1, Status: status, Err: cause}
	r.rec.Error(log.LayerResolve, op, err, status)
	return err
}
