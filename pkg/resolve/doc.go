// Package resolve implements the recursive address-resolution engine.
//
// A Resolver turns a batch of Addresses into absolute identifiers:
//
//  1. Cache phase: every Address is looked up in the resolution cache.
//     Misses are split into absolute and relative entries.
//  2. Absolute phase: absolute Addresses that name their server and
//     namespace are copied through and cached.
//  3. Relative phase: the starting Addresses are resolved recursively, the
//     survivors become browse paths, and the paths are translated in passes
//     until every entry resolved or failed. A path that crosses into another
//     server comes back with a remaining-path index; it is rewritten to start
//     at the returned node and sent again in the next pass.
//
// # Usage
//
//	r, err := resolve.New(invoker, cache.NewUnbounded(), resolve.DefaultConfig())
//	res, err := r.Resolve(ctx, []address.Address{a1, a2})
//	for i := range res.Nodes {
//	    if res.Statuses[i].IsGood() {
//	        use(res.Nodes[i])
//	    }
//	}
//
// Request types whose targets embed Addresses implement Resolvable and are
// resolved in one batch with Targets.
//
// # Failure Granularity
//
// A failed relative entry never affects its siblings. A malformed absolute
// Address fails only its own entry unless Config.StrictAbsoluteVerification
// is set, in which case the whole batch fails with ErrResolution.
package resolve
