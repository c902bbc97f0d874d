package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Parse errors.
var (
	ErrEmptyAddress   = errors.New("empty address")
	ErrInvalidAddress = errors.New("invalid address")
)

// segmentSeparator separates chained relative segments. Inside browse
// names it is escaped as "&|".
const segmentSeparator = '|'

// Parse parses the text form of an Address.
//
// Supported formats:
//   - "ns=2;i=5@urn:srv" - absolute
//   - "ns=2;i=5@urn:srv /2:Boiler/2:Temperature" - relative to an absolute start
//   - "i=85@urn:srv /2:Plant | <Organizes>2:Line1" - chained: every segment
//     after the first is anchored on the Address built so far
//
// The node identifier must not contain whitespace or '|'. Browse names
// escape both with '&', as written by String.
func Parse(input string) (Address, error) {
	if strings.TrimSpace(input) == "" {
		return Address{}, ErrEmptyAddress
	}

	segments := splitSegments(input)

	head := strings.TrimLeft(segments[0], whitespace)
	nodeText, pathText := head, ""
	if k := strings.IndexAny(head, whitespace); k >= 0 {
		nodeText, pathText = head[:k], head[k:]
	}
	node, err := ua.ParseExpandedNodeID(nodeText)
	if err != nil {
		return Address{}, fmt.Errorf("%w: start: %w", ErrInvalidAddress, err)
	}

	addr := Absolute(node)
	if strings.TrimSpace(pathText) != "" {
		path, err := ua.ParseRelativePath(pathText)
		if err != nil {
			return Address{}, fmt.Errorf("%w: segment 0: %w", ErrInvalidAddress, err)
		}
		addr = Relative(addr, path)
	}

	for i, seg := range segments[1:] {
		path, err := ua.ParseRelativePath(seg)
		if err != nil {
			return Address{}, fmt.Errorf("%w: segment %d: %w", ErrInvalidAddress, i+1, err)
		}
		addr = Relative(addr, path)
	}

	return addr, nil
}

const whitespace = " \t\r\n"

// splitSegments splits s at every separator that is not escaped.
func splitSegments(s string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			i++
		case segmentSeparator:
			segments = append(segments, s[start:i])
			start = i + 1
		}
	}
	return append(segments, s[start:])
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level variables.
func MustParse(input string) Address {
	a, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return a
}
