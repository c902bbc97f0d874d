package addrspace

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// continuationPoint is the CBOR payload of a Browse continuation point.
// Offset makes every point of a browse distinct, so a point that was
// already consumed is rejected.
type continuationPoint struct {
	ID     string `cbor:"1,keyasint"`
	Offset int    `cbor:"2,keyasint"`
}

// browseState holds the references not yet returned by a browse.
type browseState struct {
	refs   []ua.ReferenceDescription
	offset int
}

// page returns the next page of refs starting at offset. Must be called
// with mu held for writing.
func (s *Space) page(refs []ua.ReferenceDescription, id string, offset int) ua.BrowseResult {
	limit := s.config.MaxReferencesPerNode
	end := len(refs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	res := ua.BrowseResult{
		StatusCode: ua.StatusGood,
		References: append([]ua.ReferenceDescription(nil), refs[offset:end]...),
	}
	if end == len(refs) {
		if id != "" {
			delete(s.points, id)
		}
		return res
	}

	if id == "" {
		id = uuid.NewString()
	}
	data, err := cbor.Marshal(continuationPoint{ID: id, Offset: end})
	if err != nil {
		return ua.BrowseResult{StatusCode: ua.StatusBadInternalError}
	}
	s.points[id] = &browseState{refs: refs, offset: end}
	res.ContinuationPoint = data
	return res
}

// resume decodes a continuation point. Must be called with mu held.
func (s *Space) resume(point []byte) (string, *browseState, ua.StatusCode) {
	var cp continuationPoint
	if err := cbor.Unmarshal(point, &cp); err != nil {
		return "", nil, ua.StatusBadContinuationPointInvalid
	}
	st, ok := s.points[cp.ID]
	if !ok || st.offset != cp.Offset {
		return "", nil, ua.StatusBadContinuationPointInvalid
	}
	return cp.ID, st, ua.StatusGood
}

// OpenContinuationPoints returns the number of browses that can still be
// continued.
func (s *Space) OpenContinuationPoints() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}
