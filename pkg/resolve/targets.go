package resolve

import (
	"context"
	"fmt"

	"github.com/mash-protocol/mash-ua/pkg/address"
	"github.com/mash-protocol/mash-ua/pkg/mask"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Resolvable is implemented by service targets that carry one or more
// Addresses. A read target has one; a call target has two (object and
// method).
type Resolvable interface {
	// ResolvableItemsCount returns the number of Addresses the target
	// carries.
	ResolvableItemsCount() int

	// ResolvableItems returns the Addresses, in a fixed order.
	ResolvableItems() []address.Address

	// SetResolvedItems receives the resolved identifiers and statuses, in
	// the order of ResolvableItems. It returns the target's own verdict on
	// the result, which is usually StatusGood.
	SetResolvedItems(nodes []ua.ExpandedNodeID, statuses []ua.StatusCode) ua.StatusCode
}

// Targets resolves the Addresses of every target selected by m with a
// single Resolve call and hands the results back to each target.
//
// The returned slice has one status per target. Targets not selected by m
// are left untouched and reported as StatusGood. A selected target is good
// only if all of its Addresses resolved; otherwise it carries the first bad
// sub-status. The error is the one returned by Resolve, or ErrUnexpected
// if m does not have one entry per target.
func Targets[T Resolvable](ctx context.Context, r *Resolver, targets []T, m mask.Mask) ([]ua.StatusCode, error) {
	statuses := make([]ua.StatusCode, len(targets))
	if m.Len() != len(targets) {
		for i := range statuses {
			statuses[i] = ua.StatusBadUnexpectedError
		}
		return statuses, &Error{
			Op:     "targets",
			Index:  -1,
			Status: ua.StatusBadUnexpectedError,
			Err:    fmt.Errorf("%w: mask of %d entries for %d targets", ErrUnexpected, m.Len(), len(targets)),
		}
	}

	var (
		addrs  []address.Address
		offset = make([]int, len(targets))
		count  = make([]int, len(targets))
	)
	for i, t := range targets {
		if !m.IsSet(i) {
			continue
		}
		items := t.ResolvableItems()
		if len(items) != t.ResolvableItemsCount() {
			statuses[i] = ua.StatusBadUnexpectedError
			r.debugLog("resolve: item count mismatch",
				"target", i, "declared", t.ResolvableItemsCount(), "items", len(items))
			count[i] = -1
			continue
		}
		offset[i] = len(addrs)
		count[i] = len(items)
		addrs = append(addrs, items...)
	}

	res, err := r.Resolve(ctx, addrs)

	for i, t := range targets {
		if !m.IsSet(i) || count[i] < 0 {
			continue
		}
		lo, hi := offset[i], offset[i]+count[i]
		nodes := append([]ua.ExpandedNodeID(nil), res.Nodes[lo:hi]...)
		subs := append([]ua.StatusCode(nil), res.Statuses[lo:hi]...)

		status := ua.StatusGood
		for _, s := range subs {
			if !s.IsGood() {
				status = s
				break
			}
		}
		if own := t.SetResolvedItems(nodes, subs); status.IsGood() {
			status = own
		}
		statuses[i] = status
	}

	return statuses, err
}
