// Package service provides the client-side service layer: every request
// target is addressed by an address.Address, which may be absolute or a
// relative path from another Address.
//
// A Client resolves the Addresses of a batch with one resolution pass,
// invokes the service only for the targets that resolved, and merges the
// resolution statuses into the per-target results. Targets that failed to
// resolve carry their resolution status and are never sent.
//
// Example usage:
//
//	space, _ := addrspace.Load("plant.yaml")
//	config := service.DefaultClientConfig()
//
//	client, err := service.NewClient(space, config)
//	values, err := client.Read(ctx, []*service.ReadTarget{
//		service.NewReadTarget(address.MustParse("i=85@urn:plant /2:Boiler.2:Temperature"), ua.AttributeValue),
//	})
//
// # Browsing
//
// Browse follows continuation points automatically, up to
// ClientConfig.MaxBrowseRounds rounds (see package paging). The returned
// BrowseSession merges every page into one result per target; its Continue
// and Release methods handle continuation points left by the round
// ceiling. BrowseNext passes raw continuation points straight through.
//
// # Errors
//
// A returned error is a batch-level failure: an empty batch
// (ErrNothingToDo), a batch above MaxOperationsPerCall
// (ErrTooManyOperations), a resolution failure (see resolve.Error), a
// collaborator error, or a result count mismatch (ErrUnexpected). The
// results are filled in either way; use ua.StatusOf to map an error to the
// status the affected targets carry.
package service
