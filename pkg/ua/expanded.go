package ua

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandedNodeID is a NodeID bound to its owning server. It is the absolute
// identifier of a node across all servers known to a client.
type ExpandedNodeID struct {
	NodeID NodeID

	// ServerURI identifies the owning server. Empty means "the server the
	// request is sent to".
	ServerURI string

	// ServerIndex is the index into the server table of the server that
	// produced this identifier (0 = that server itself).
	ServerIndex uint32
}

// NewExpandedNodeID binds a NodeID to a server URI.
func NewExpandedNodeID(id NodeID, serverURI string) ExpandedNodeID {
	return ExpandedNodeID{NodeID: id, ServerURI: serverURI}
}

// HasServer reports whether the owning server is identified.
func (e ExpandedNodeID) HasServer() bool {
	return e.ServerURI != ""
}

// IsLocal reports whether the identifier refers to the server that
// produced it.
func (e ExpandedNodeID) IsLocal() bool {
	return e.ServerURI == "" && e.ServerIndex == 0
}

// String returns the text form "<nodeid>[@<serverURI>]", prefixed with
// "svr=<n>;" when a non-zero server index is set.
func (e ExpandedNodeID) String() string {
	var b strings.Builder
	if e.ServerIndex != 0 {
		b.WriteString("svr=")
		b.WriteString(strconv.FormatUint(uint64(e.ServerIndex), 10))
		b.WriteByte(';')
	}
	b.WriteString(e.NodeID.String())
	if e.ServerURI != "" {
		b.WriteByte('@')
		b.WriteString(e.ServerURI)
	}
	return b.String()
}

// Key returns an unambiguous structural key.
func (e ExpandedNodeID) Key() string {
	return fmt.Sprintf("%s@%q#%d", e.NodeID.Key(), e.ServerURI, e.ServerIndex)
}

// ParseExpandedNodeID parses "<nodeid>[@<serverURI>]" with an optional
// "svr=<n>;" prefix.
func ParseExpandedNodeID(input string) (ExpandedNodeID, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return ExpandedNodeID{}, ErrEmptyNodeID
	}

	var e ExpandedNodeID
	if strings.HasPrefix(input, "svr=") {
		end := strings.IndexByte(input, ';')
		if end < 0 {
			return ExpandedNodeID{}, fmt.Errorf("%w: %q", ErrInvalidNodeID, input)
		}
		idx, err := strconv.ParseUint(input[len("svr="):end], 10, 32)
		if err != nil {
			return ExpandedNodeID{}, fmt.Errorf("%w: server index: %v", ErrInvalidNodeID, err)
		}
		e.ServerIndex = uint32(idx)
		input = input[end+1:]
	}

	if at := strings.LastIndexByte(input, '@'); at >= 0 {
		e.ServerURI = input[at+1:]
		if e.ServerURI == "" {
			return ExpandedNodeID{}, fmt.Errorf("%w: empty server uri", ErrInvalidNodeID)
		}
		input = input[:at]
	}

	id, err := ParseNodeID(input)
	if err != nil {
		return ExpandedNodeID{}, err
	}
	e.NodeID = id
	return e, nil
}

// MustParseExpandedNodeID is like ParseExpandedNodeID but panics on error.
func MustParseExpandedNodeID(input string) ExpandedNodeID {
	e, err := ParseExpandedNodeID(input)
	if err != nil {
		panic(err)
	}
	return e
}
