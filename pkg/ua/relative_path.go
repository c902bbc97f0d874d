package ua

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Relative path errors.
var (
	ErrEmptyPath            = errors.New("empty relative path")
	ErrInvalidPath          = errors.New("invalid relative path")
	ErrUnknownReferenceType = errors.New("unknown reference type")
)

// RelativePathElement is one step of a relative path: follow references of
// ReferenceTypeID (and its subtypes when IncludeSubtypes is set) in the
// given direction to the target whose browse name is TargetName.
type RelativePathElement struct {
	ReferenceTypeID NodeID
	IsInverse       bool
	IncludeSubtypes bool
	TargetName      QualifiedName
}

// String returns the element in relative-path text form.
func (e RelativePathElement) String() string {
	var b strings.Builder
	switch {
	case e.ReferenceTypeID == HierarchicalReferences && e.IncludeSubtypes && !e.IsInverse:
		b.WriteByte('/')
	case e.ReferenceTypeID == Aggregates && e.IncludeSubtypes && !e.IsInverse:
		b.WriteByte('.')
	default:
		b.WriteByte('<')
		if !e.IncludeSubtypes {
			b.WriteByte('#')
		}
		if e.IsInverse {
			b.WriteByte('!')
		}
		if name := ReferenceTypeName(e.ReferenceTypeID); name != "" {
			b.WriteString(name)
		} else {
			b.WriteString(e.ReferenceTypeID.String())
		}
		b.WriteByte('>')
	}
	if e.TargetName.NamespaceIndex != 0 {
		b.WriteString(strconv.FormatUint(uint64(e.TargetName.NamespaceIndex), 10))
		b.WriteByte(':')
	}
	b.WriteString(escapeName(e.TargetName.Name))
	return b.String()
}

// RelativePath is an ordered chain of path elements.
type RelativePath []RelativePathElement

// String returns the path in text form.
func (p RelativePath) String() string {
	var b strings.Builder
	for _, e := range p {
		b.WriteString(e.String())
	}
	return b.String()
}

// Clone returns a copy of p that shares no storage with it.
func (p RelativePath) Clone() RelativePath {
	if p == nil {
		return nil
	}
	out := make(RelativePath, len(p))
	copy(out, p)
	return out
}

// Equal reports whether both paths have identical elements.
func (p RelativePath) Equal(other RelativePath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// ParseRelativePath parses the relative-path text form.
//
//	/Name            HierarchicalReferences, forward, subtypes
//	.Name            Aggregates, forward, subtypes
//	<RefType>Name    explicit reference type (well-known name or NodeID)
//	<#RefType>Name   exclude subtypes
//	<!RefType>Name   inverse direction
//
// Names may carry a namespace prefix ("2:Name"). The characters '/', '.',
// '<', '>', ':', '&', '|' and whitespace are escaped with '&' inside names.
// Unescaped whitespace around the path is ignored.
func ParseRelativePath(input string) (RelativePath, error) {
	input = trimPath(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	var path RelativePath
	pos := 0
	for pos < len(input) {
		var elem RelativePathElement
		switch input[pos] {
		case '/':
			elem.ReferenceTypeID = HierarchicalReferences
			elem.IncludeSubtypes = true
			pos++
		case '.':
			elem.ReferenceTypeID = Aggregates
			elem.IncludeSubtypes = true
			pos++
		case '<':
			end := strings.IndexByte(input[pos:], '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated reference type at %d", ErrInvalidPath, pos)
			}
			ref := input[pos+1 : pos+end]
			pos += end + 1

			elem.IncludeSubtypes = true
			for len(ref) > 0 && (ref[0] == '#' || ref[0] == '!') {
				if ref[0] == '#' {
					elem.IncludeSubtypes = false
				} else {
					elem.IsInverse = true
				}
				ref = ref[1:]
			}
			id, err := parseReferenceType(ref)
			if err != nil {
				return nil, err
			}
			elem.ReferenceTypeID = id
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrInvalidPath, input[pos], pos)
		}

		name, n, err := readName(input[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		elem.TargetName = name
		path = append(path, elem)
	}
	return path, nil
}

// MustParseRelativePath is like ParseRelativePath but panics on error.
func MustParseRelativePath(input string) RelativePath {
	p, err := ParseRelativePath(input)
	if err != nil {
		panic(err)
	}
	return p
}

func parseReferenceType(ref string) (NodeID, error) {
	if ref == "" {
		return NodeID{}, fmt.Errorf("%w: empty reference type", ErrInvalidPath)
	}
	if id, ok := ReferenceTypeByName(ref); ok {
		return id, nil
	}
	if strings.Contains(ref, "=") {
		id, err := ParseNodeID(ref)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w: %v", ErrUnknownReferenceType, err)
		}
		return id, nil
	}
	return NodeID{}, fmt.Errorf("%w: %q", ErrUnknownReferenceType, ref)
}

// readName reads a target name up to the next unescaped element delimiter
// and returns it with the number of bytes consumed.
func readName(input string) (QualifiedName, int, error) {
	var (
		b        strings.Builder
		i        int
		nsPrefix = -1
	)
loop:
	for i < len(input) {
		c := input[i]
		switch c {
		case '&':
			if i+1 >= len(input) {
				return QualifiedName{}, 0, fmt.Errorf("%w: dangling escape", ErrInvalidPath)
			}
			b.WriteByte(input[i+1])
			i += 2
		case '/', '.', '<':
			break loop
		case '>':
			return QualifiedName{}, 0, fmt.Errorf("%w: unexpected '>'", ErrInvalidPath)
		case ':':
			if nsPrefix < 0 && isDigits(b.String()) && b.Len() > 0 {
				ns, err := strconv.ParseUint(b.String(), 10, 16)
				if err != nil {
					return QualifiedName{}, 0, fmt.Errorf("%w: namespace: %v", ErrInvalidPath, err)
				}
				nsPrefix = int(ns)
				b.Reset()
			} else {
				b.WriteByte(c)
			}
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}

	if b.Len() == 0 {
		return QualifiedName{}, 0, fmt.Errorf("%w: empty target name", ErrInvalidBrowseName)
	}
	q := QualifiedName{Name: b.String()}
	if nsPrefix >= 0 {
		q.NamespaceIndex = uint16(nsPrefix)
	}
	return q, i, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// nameSpecials are the characters escaped inside target names.
const nameSpecials = "/.<>:&| \t\r\n"

func escapeName(name string) string {
	if !strings.ContainsAny(name, nameSpecials) {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if strings.IndexByte(nameSpecials, name[i]) >= 0 {
			b.WriteByte('&')
		}
		b.WriteByte(name[i])
	}
	return b.String()
}

// trimPath removes leading whitespace and trailing whitespace that is not
// escaped.
func trimPath(s string) string {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			if i+1 < len(s) {
				i++
			}
			end = i + 1
		case ' ', '\t', '\r', '\n':
		default:
			end = i + 1
		}
	}
	return s[:end]
}
