package service

import (
	"context"
	"fmt"

	"github.com/mash-protocol/mash-ua/pkg/paging"
)

// BrowseSession is a paged browse started by Client.Browse. It is not
// safe for concurrent use.
type BrowseSession struct {
	// Results holds one merged result per browse target. Targets that did
	// not resolve carry their resolution status.
	Results []paging.Result

	inv  *paging.Invocation
	live []int
}

// Rounds returns the number of BrowseNext rounds made so far.
func (s *BrowseSession) Rounds() int {
	if s.inv == nil {
		return 0
	}
	return s.inv.Rounds
}

// Pending returns the indices of the targets that still hold a
// continuation point.
func (s *BrowseSession) Pending() []int {
	var pending []int
	for i := range s.Results {
		if s.Results[i].HasMore() {
			pending = append(pending, i)
		}
	}
	return pending
}

// Continue makes one more BrowseNext round for the pending targets and
// merges the returned references into Results. It is a no-op if nothing
// is pending.
func (s *BrowseSession) Continue(ctx context.Context) error {
	if s.inv == nil {
		return nil
	}
	err := s.inv.Continue(ctx)
	s.sync()
	if err != nil {
		return fmt.Errorf("browse next: %w", err)
	}
	return nil
}

// Release frees the pending continuation points. It returns
// paging.ErrNothingToRelease if none are left.
func (s *BrowseSession) Release(ctx context.Context) error {
	if s.inv == nil {
		return paging.ErrNothingToRelease
	}
	err := s.inv.Release(ctx)
	s.sync()
	if err != nil {
		return fmt.Errorf("browse release: %w", err)
	}
	return nil
}

// sync copies the invocation results back to the target positions.
func (s *BrowseSession) sync() {
	for k, i := range s.live {
		s.Results[i] = s.inv.Results[k]
	}
}
