// Package paging runs a browse with automatic continuation.
//
// Browse issues the initial request for every description, then follows
// up with BrowseNext for each target that came back good with a
// continuation point. Pages are merged into one Result per original
// target: references are appended in arrival order, while status and
// continuation point always hold the latest values.
//
// The number of follow-up rounds is bounded by Config.MaxRounds. Targets
// that still hold a continuation point when the bound is reached keep it,
// so the caller can resume with Invocation.Continue or free the server
// side state with Invocation.Release.
//
// State machine:
//
//	Initial -> AwaitingFirstPage -> (AwaitingNextPage)* -> Done
package paging
