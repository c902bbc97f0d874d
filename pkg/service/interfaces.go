package service

import (
	"context"

	"github.com/mash-protocol/mash-ua/pkg/paging"
	"github.com/mash-protocol/mash-ua/pkg/resolve"
	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Invoker is the service collaborator: the network client (or an
// in-memory address space) that executes batched service requests.
//
// Every method returns one result per request entry, in request order, or
// an error for the whole batch.
type Invoker interface {
	TranslateBrowsePaths(ctx context.Context, paths []ua.BrowsePath) ([]ua.BrowsePathResult, error)
	Browse(ctx context.Context, descriptions []ua.BrowseDescription) ([]ua.BrowseResult, error)
	BrowseNext(ctx context.Context, release bool, points [][]byte) ([]ua.BrowseResult, error)
	Read(ctx context.Context, nodes []ua.ReadValueID) ([]ua.DataValue, error)
	Write(ctx context.Context, values []ua.WriteValue) ([]ua.StatusCode, error)
	Call(ctx context.Context, requests []ua.CallMethodRequest) ([]ua.CallMethodResult, error)
}

// Compile-time checks: an Invoker serves both the resolver and the pager.
var (
	_ resolve.Translator = (Invoker)(nil)
	_ paging.Browser     = (Invoker)(nil)
)
