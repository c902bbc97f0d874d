package ua

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidBrowseName is returned when a qualified name cannot be parsed.
var ErrInvalidBrowseName = errors.New("invalid browse name")

// QualifiedName is a browse name qualified by a namespace index.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// NewQualifiedName creates a QualifiedName.
func NewQualifiedName(ns uint16, name string) QualifiedName {
	return QualifiedName{NamespaceIndex: ns, Name: name}
}

// IsEmpty returns true if the name is empty.
func (q QualifiedName) IsEmpty() bool {
	return q.Name == ""
}

// String returns "ns:Name", or "Name" in namespace 0.
func (q QualifiedName) String() string {
	if q.NamespaceIndex == 0 {
		return q.Name
	}
	return strconv.FormatUint(uint64(q.NamespaceIndex), 10) + ":" + q.Name
}

// ParseQualifiedName parses "ns:Name" or "Name".
// A prefix that is not a decimal number is part of the name.
func ParseQualifiedName(input string) (QualifiedName, error) {
	if input == "" {
		return QualifiedName{}, ErrInvalidBrowseName
	}
	if colon := strings.IndexByte(input, ':'); colon > 0 {
		if ns, err := strconv.ParseUint(input[:colon], 10, 16); err == nil {
			name := input[colon+1:]
			if name == "" {
				return QualifiedName{}, fmt.Errorf("%w: %q", ErrInvalidBrowseName, input)
			}
			return QualifiedName{NamespaceIndex: uint16(ns), Name: name}, nil
		}
	}
	return QualifiedName{Name: input}, nil
}
