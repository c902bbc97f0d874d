package ua

import (
	"context"
	"errors"
	"fmt"
)

// StatusCode is a 32-bit operation status. The two most significant bits
// carry the severity (00 good, 01 uncertain, 10 bad).
type StatusCode uint32

const (
	severityMask      StatusCode = 0xC0000000
	severityUncertain StatusCode = 0x40000000
	severityBad       StatusCode = 0x80000000
)

const (
	// StatusGood indicates the operation succeeded.
	StatusGood StatusCode = 0x00000000

	// StatusUncertain indicates the result may not be accurate.
	StatusUncertain StatusCode = 0x40000000

	// StatusBad indicates an unspecified failure.
	StatusBad StatusCode = 0x80000000

	// StatusBadUnexpectedError indicates a contract violation, e.g. a
	// result count that does not match the request.
	StatusBadUnexpectedError StatusCode = 0x80010000

	// StatusBadInternalError indicates an internal failure.
	StatusBadInternalError StatusCode = 0x80020000

	// StatusBadCommunicationError indicates the collaborator could not
	// reach the server.
	StatusBadCommunicationError StatusCode = 0x80050000

	// StatusBadTimeout indicates the operation timed out.
	StatusBadTimeout StatusCode = 0x800A0000

	// StatusBadServiceUnsupported indicates the server does not support
	// the requested service.
	StatusBadServiceUnsupported StatusCode = 0x800B0000

	// StatusBadNothingToDo indicates an empty request.
	StatusBadNothingToDo StatusCode = 0x800F0000

	// StatusBadTooManyOperations indicates the request was too large.
	StatusBadTooManyOperations StatusCode = 0x80100000

	// StatusBadNodeIDInvalid indicates a syntactically invalid node
	// identifier, or an absolute address without server or namespace.
	StatusBadNodeIDInvalid StatusCode = 0x80330000

	// StatusBadNodeIDUnknown indicates the node does not exist.
	StatusBadNodeIDUnknown StatusCode = 0x80340000

	// StatusBadAttributeIDInvalid indicates the attribute is not supported.
	StatusBadAttributeIDInvalid StatusCode = 0x80350000

	// StatusBadNotWritable indicates the attribute cannot be written.
	StatusBadNotWritable StatusCode = 0x803B0000

	// StatusBadContinuationPointInvalid indicates an unknown or released
	// continuation point.
	StatusBadContinuationPointInvalid StatusCode = 0x804A0000

	// StatusBadNoContinuationPoints indicates the server ran out of
	// continuation points.
	StatusBadNoContinuationPoints StatusCode = 0x804B0000

	// StatusBadReferenceTypeIDInvalid indicates an unknown reference type.
	StatusBadReferenceTypeIDInvalid StatusCode = 0x804C0000

	// StatusBadBrowseDirectionInvalid indicates an invalid direction.
	StatusBadBrowseDirectionInvalid StatusCode = 0x804D0000

	// StatusBadServerURIInvalid indicates an unknown server URI.
	StatusBadServerURIInvalid StatusCode = 0x804F0000

	// StatusBadBrowseNameInvalid indicates an empty or invalid browse name.
	StatusBadBrowseNameInvalid StatusCode = 0x80600000

	// StatusBadNoMatch indicates a browse path matched no node.
	StatusBadNoMatch StatusCode = 0x806F0000

	// StatusBadMethodInvalid indicates the method does not exist on the object.
	StatusBadMethodInvalid StatusCode = 0x80750000

	// StatusBadInvalidArgument indicates an invalid (empty or malformed)
	// argument, such as an Address that is neither absolute nor relative.
	StatusBadInvalidArgument StatusCode = 0x80AB0000

	// StatusBadTooManyMatches indicates a browse path matched more than one
	// node where exactly one was required.
	StatusBadTooManyMatches StatusCode = 0x80DB0000
)

var statusNames = map[StatusCode]string{
	StatusGood:                        "Good",
	StatusUncertain:                   "Uncertain",
	StatusBad:                         "Bad",
	StatusBadUnexpectedError:          "BadUnexpectedError",
	StatusBadInternalError:            "BadInternalError",
	StatusBadCommunicationError:       "BadCommunicationError",
	StatusBadTimeout:                  "BadTimeout",
	StatusBadServiceUnsupported:       "BadServiceUnsupported",
	StatusBadNothingToDo:              "BadNothingToDo",
	StatusBadTooManyOperations:        "BadTooManyOperations",
	StatusBadNodeIDInvalid:            "BadNodeIdInvalid",
	StatusBadNodeIDUnknown:            "BadNodeIdUnknown",
	StatusBadAttributeIDInvalid:       "BadAttributeIdInvalid",
	StatusBadNotWritable:              "BadNotWritable",
	StatusBadContinuationPointInvalid: "BadContinuationPointInvalid",
	StatusBadNoContinuationPoints:     "BadNoContinuationPoints",
	StatusBadReferenceTypeIDInvalid:   "BadReferenceTypeIdInvalid",
	StatusBadBrowseDirectionInvalid:   "BadBrowseDirectionInvalid",
	StatusBadServerURIInvalid:         "BadServerUriInvalid",
	StatusBadBrowseNameInvalid:        "BadBrowseNameInvalid",
	StatusBadNoMatch:                  "BadNoMatch",
	StatusBadMethodInvalid:            "BadMethodInvalid",
	StatusBadInvalidArgument:          "BadInvalidArgument",
	StatusBadTooManyMatches:           "BadTooManyMatches",
}

// String returns the status name, or the hex code for unknown statuses.
func (s StatusCode) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(s))
}

// IsGood returns true if the severity is good.
func (s StatusCode) IsGood() bool {
	return s&severityMask == 0
}

// IsUncertain returns true if the severity is uncertain.
func (s StatusCode) IsUncertain() bool {
	return s&severityMask == severityUncertain
}

// IsBad returns true if the severity is bad.
func (s StatusCode) IsBad() bool {
	return s&severityBad != 0
}

// IsNotGood returns true for uncertain and bad statuses.
func (s StatusCode) IsNotGood() bool {
	return !s.IsGood()
}

// StatusError is an error that carries a status code.
type StatusError struct {
	Status  StatusCode
	Message string
}

// NewStatusError creates a StatusError.
func NewStatusError(status StatusCode, msg string) *StatusError {
	return &StatusError{Status: status, Message: msg}
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Status.String() + ": " + e.Message
	}
	return e.Status.String()
}

// StatusCode returns the carried status.
func (e *StatusError) StatusCode() StatusCode {
	return e.Status
}

// StatusOf maps an error to a status code. Errors that carry no status
// map to BadCommunicationError.
func StatusOf(err error) StatusCode {
	if err == nil {
		return StatusGood
	}
	var sc interface{ StatusCode() StatusCode }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusBadTimeout
	}
	return StatusBadCommunicationError
}
