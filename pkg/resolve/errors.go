package resolve

import (
	"errors"
	"fmt"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

// Resolution errors.
var (
	// ErrInvalidRequest reports an Address that is neither absolute nor
	// relative, or whose chain does not end in an absolute Address.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrResolution reports a malformed absolute Address (strict mode), or
	// a browse path with an ambiguous match.
	ErrResolution = errors.New("resolution error")

	// ErrUnexpected reports a collaborator contract violation such as a
	// result count that does not match the request.
	ErrUnexpected = errors.New("unexpected error")

	// ErrInvalidConfig reports an invalid Config.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error is a batch-level resolution failure.
type Error struct {
	// Op is the phase that failed ("verify", "translate", ...).
	Op string

	// Index is the batch entry that caused the failure, or -1.
	Index int

	// Status is the status assigned to the affected entries.
	Status ua.StatusCode

	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("resolve %s: entry %d: %s: %v", e.Op, e.Index, e.Status, e.Err)
	}
	return fmt.Sprintf("resolve %s: %s: %v", e.Op, e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the status assigned to the affected entries.
func (e *Error) StatusCode() ua.StatusCode {
	return e.Status
}

// StatusOf maps an error to the status code reported for the entries it
// affected. Errors from the collaborator that carry no status map to
// BadCommunicationError.
func StatusOf(err error) ua.StatusCode {
	var re *Error
	switch {
	case err == nil:
		return ua.StatusGood
	case errors.As(err, &re):
		return re.Status
	case errors.Is(err, ErrInvalidRequest):
		return ua.StatusBadInvalidArgument
	case errors.Is(err, ErrUnexpected):
		return ua.StatusBadUnexpectedError
	default:
		return ua.StatusOf(err)
	}
}
