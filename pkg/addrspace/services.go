package addrspace

import (
	"context"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// enter counts a request. It fails if ctx is already done.
func (s *Space) enter(ctx context.Context, kind ua.ServiceKind, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.stats[kind]++
	s.debugLog("addrspace: request", "service", kind.String(), "entries", n)
	return nil
}

// TranslateBrowsePaths follows each browse path from its starting node.
func (s *Space) TranslateBrowsePaths(ctx context.Context, paths []ua.BrowsePath) ([]ua.BrowsePathResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, ua.ServiceTranslateBrowsePaths, len(paths)); err != nil {
		return nil, err
	}

	out := make([]ua.BrowsePathResult, len(paths))
	for i, p := range paths {
		out[i] = s.translate(p)
	}
	return out, nil
}

func (s *Space) translate(p ua.BrowsePath) ua.BrowsePathResult {
	if len(p.RelativePath) == 0 {
		return ua.BrowsePathResult{StatusCode: ua.StatusBadNothingToDo}
	}
	srv, start, status := s.lookup(p.StartingNode)
	if !status.IsGood() {
		return ua.BrowsePathResult{StatusCode: status}
	}

	var targets []ua.BrowsePathTarget
	current := []*Node{start}
	for idx, elem := range p.RelativePath {
		if elem.TargetName.IsEmpty() {
			return ua.BrowsePathResult{StatusCode: ua.StatusBadBrowseNameInvalid}
		}

		var next []*Node
		seen := make(map[ua.NodeID]bool)
		for _, n := range current {
			for _, ref := range n.References {
				if ref.IsForward == elem.IsInverse {
					continue
				}
				if !matchesType(ref.Type, elem.ReferenceTypeID, elem.IncludeSubtypes) {
					continue
				}

				if isRemote(srv, ref) {
					// The other server continues from the remote node.
					if ref.TargetName != elem.TargetName {
						continue
					}
					remaining := uint32(idx + 1)
					if idx+1 == len(p.RelativePath) {
						remaining = ua.RemainingPathIndexFull
					}
					targets = append(targets, ua.BrowsePathTarget{
						TargetID:           ref.Target,
						RemainingPathIndex: remaining,
					})
					continue
				}

				dst, ok := srv.nodes[ref.Target.NodeID]
				if !ok || dst.BrowseName != elem.TargetName || seen[dst.ID] {
					continue
				}
				seen[dst.ID] = true
				next = append(next, dst)
			}
		}
		current = next
		if len(current) == 0 {
			break
		}
	}

	// Local targets are returned without a server URI, as a server does
	// for its own nodes.
	for _, n := range current {
		targets = append(targets, ua.BrowsePathTarget{
			TargetID:           ua.ExpandedNodeID{NodeID: n.ID},
			RemainingPathIndex: ua.RemainingPathIndexFull,
		})
	}

	if len(targets) == 0 {
		return ua.BrowsePathResult{StatusCode: ua.StatusBadNoMatch}
	}
	return ua.BrowsePathResult{StatusCode: ua.StatusGood, Targets: targets}
}

func isRemote(srv *Server, ref Reference) bool {
	return ref.Target.HasServer() && ref.Target.ServerURI != srv.URI
}

// Browse returns the references of each described node. Results with more
// than MaxReferencesPerNode references carry a continuation point.
func (s *Space) Browse(ctx context.Context, descriptions []ua.BrowseDescription) ([]ua.BrowseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, ua.ServiceBrowse, len(descriptions)); err != nil {
		return nil, err
	}

	out := make([]ua.BrowseResult, len(descriptions))
	for i, d := range descriptions {
		out[i] = s.browse(d)
	}
	return out, nil
}

func (s *Space) browse(d ua.BrowseDescription) ua.BrowseResult {
	if d.Direction > ua.BrowseDirectionBoth {
		return ua.BrowseResult{StatusCode: ua.StatusBadBrowseDirectionInvalid}
	}
	if !d.ReferenceTypeID.IsNull() && !knownReferenceType(d.ReferenceTypeID) {
		return ua.BrowseResult{StatusCode: ua.StatusBadReferenceTypeIDInvalid}
	}
	srv, n, status := s.lookup(d.NodeID)
	if !status.IsGood() {
		return ua.BrowseResult{StatusCode: status}
	}

	var refs []ua.ReferenceDescription
	for _, ref := range n.References {
		switch d.Direction {
		case ua.BrowseDirectionForward:
			if !ref.IsForward {
				continue
			}
		case ua.BrowseDirectionInverse:
			if ref.IsForward {
				continue
			}
		}
		if !matchesType(ref.Type, d.ReferenceTypeID, d.IncludeSubtypes) {
			continue
		}
		rd := describe(srv, ref)
		if d.NodeClassMask != 0 && uint32(rd.NodeClass)&d.NodeClassMask == 0 {
			continue
		}
		refs = append(refs, rd)
	}
	return s.page(refs, "", 0)
}

func describe(srv *Server, ref Reference) ua.ReferenceDescription {
	rd := ua.ReferenceDescription{
		ReferenceTypeID: ref.Type,
		IsForward:       ref.IsForward,
		NodeID:          ref.Target,
	}
	if isRemote(srv, ref) {
		rd.BrowseName = ref.TargetName
		rd.DisplayName = ref.TargetName.Name
		rd.NodeClass = ref.TargetClass
		return rd
	}
	if n, ok := srv.nodes[ref.Target.NodeID]; ok {
		rd.BrowseName = n.BrowseName
		rd.DisplayName = n.DisplayName
		rd.NodeClass = n.Class
	}
	return rd
}

// BrowseNext continues browses from their continuation points. With
// release set, the points are freed and no references are returned.
func (s *Space) BrowseNext(ctx context.Context, release bool, points [][]byte) ([]ua.BrowseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, ua.ServiceBrowseNext, len(points)); err != nil {
		return nil, err
	}

	out := make([]ua.BrowseResult, len(points))
	for i, p := range points {
		id, st, status := s.resume(p)
		switch {
		case !status.IsGood():
			out[i] = ua.BrowseResult{StatusCode: status}
		case release:
			delete(s.points, id)
			out[i] = ua.BrowseResult{StatusCode: ua.StatusGood}
		default:
			out[i] = s.page(st.refs, id, st.offset)
		}
	}
	return out, nil
}

// Read returns attribute values.
func (s *Space) Read(ctx context.Context, nodes []ua.ReadValueID) ([]ua.DataValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, ua.ServiceRead, len(nodes)); err != nil {
		return nil, err
	}

	out := make([]ua.DataValue, len(nodes))
	for i, r := range nodes {
		out[i] = s.read(r)
	}
	return out, nil
}

func (s *Space) read(r ua.ReadValueID) ua.DataValue {
	_, n, status := s.lookup(r.NodeID)
	if !status.IsGood() {
		return ua.DataValue{StatusCode: status}
	}
	switch r.AttributeID {
	case ua.AttributeNodeID:
		return ua.DataValue{Value: n.ID}
	case ua.AttributeNodeClass:
		return ua.DataValue{Value: n.Class}
	case ua.AttributeBrowseName:
		return ua.DataValue{Value: n.BrowseName}
	case ua.AttributeDisplayName:
		return ua.DataValue{Value: n.DisplayName}
	case ua.AttributeDescription:
		return ua.DataValue{Value: n.Description}
	case ua.AttributeValue:
		if n.Class != ua.NodeClassVariable {
			return ua.DataValue{StatusCode: ua.StatusBadAttributeIDInvalid}
		}
		return ua.DataValue{Value: n.Value}
	default:
		return ua.DataValue{StatusCode: ua.StatusBadAttributeIDInvalid}
	}
}

// Write sets attribute values. Only the Value attribute of writable
// variables can be written.
func (s *Space) Write(ctx context.Context, values []ua.WriteValue) ([]ua.StatusCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, ua.ServiceWrite, len(values)); err != nil {
		return nil, err
	}

	out := make([]ua.StatusCode, len(values))
	for i, w := range values {
		_, n, status := s.lookup(w.NodeID)
		switch {
		case !status.IsGood():
			out[i] = status
		case !w.AttributeID.IsValid():
			out[i] = ua.StatusBadAttributeIDInvalid
		case w.AttributeID != ua.AttributeValue || n.Class != ua.NodeClassVariable || !n.Writable:
			out[i] = ua.StatusBadNotWritable
		default:
			n.Value = w.Value
			out[i] = ua.StatusGood
		}
	}
	return out, nil
}

// Call invokes methods. The method must be a component of the object and
// have a registered implementation. Implementations run without the space
// lock held.
func (s *Space) Call(ctx context.Context, requests []ua.CallMethodRequest) ([]ua.CallMethodResult, error) {
	type call struct {
		fn     MethodFunc
		object ua.NodeID
	}

	s.mu.Lock()
	if err := s.enter(ctx, ua.ServiceCall, len(requests)); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	out := make([]ua.CallMethodResult, len(requests))
	calls := make([]call, len(requests))
	for i, r := range requests {
		fn, status := s.method(r)
		if !status.IsGood() {
			out[i].StatusCode = status
			continue
		}
		calls[i] = call{fn: fn, object: r.ObjectID.NodeID}
	}
	s.mu.Unlock()

	for i, c := range calls {
		if c.fn == nil {
			continue
		}
		outputs, err := c.fn(ctx, c.object, requests[i].InputArguments)
		if err != nil {
			out[i].StatusCode = ua.StatusOf(err)
			continue
		}
		out[i] = ua.CallMethodResult{StatusCode: ua.StatusGood, OutputArguments: outputs}
	}
	return out, nil
}

// method finds the implementation for r. Must be called with mu held.
func (s *Space) method(r ua.CallMethodRequest) (MethodFunc, ua.StatusCode) {
	srv, object, status := s.lookup(r.ObjectID)
	if !status.IsGood() {
		return nil, status
	}
	if r.MethodID.HasServer() && r.MethodID.ServerURI != srv.URI {
		return nil, ua.StatusBadMethodInvalid
	}
	m, ok := srv.nodes[r.MethodID.NodeID]
	if !ok || m.Class != ua.NodeClassMethod {
		return nil, ua.StatusBadMethodInvalid
	}

	owned := false
	for _, ref := range object.References {
		if ref.IsForward && ref.Target.NodeID == m.ID && isSubtype(ref.Type, ua.HasComponent) {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ua.StatusBadMethodInvalid
	}

	fn, ok := s.methods[m.Method]
	if !ok {
		return nil, ua.StatusBadMethodInvalid
	}
	return fn, ua.StatusGood
}
