package resolution

import "fmt"

// ErrCodeInvalidInput is the only error kind selection produces.
const ErrCodeInvalidInput = "INVALID_INPUT"

// ErrInvalidInput matches any *Error with code INVALID_INPUT under errors.Is.
var ErrInvalidInput = &Error{Code: ErrCodeInvalidInput, Message: "invalid input"}

// Error is returned for rejected selection or parse input.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newInvalidInput(message string) *Error {
	return &Error{Code: ErrCodeInvalidInput, Message: message}
}
