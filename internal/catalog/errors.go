package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches any *TransportError.
	ErrTransport = errors.New("catalog transport failure")

	// ErrDecode matches any *DecodeError.
	ErrDecode = errors.New("catalog decode failure")
)

// TransportError reports that the catalog request did not succeed. Error()
// returns only the generic Message; the status code and underlying cause are
// kept for logging but never shown in the listing.
type TransportError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// DecodeError reports a body that is not JSON, or a list whose items do not
// look like catalog entries.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "invalid catalog document"
	}
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDecode reports whether err is a decode failure.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

func newDecodeError(format string, args ...any) *DecodeError {
	return &DecodeError{Err: fmt.Errorf(format, args...)}
}
