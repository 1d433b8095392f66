package commands

import (
	"errors"
	"fmt"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// NewUserErrorf creates a user-facing error from a format string.
func NewUserErrorf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// GenericErrorText is shown in place of errors that are not UserErrors.
const GenericErrorText = "Something went wrong."

// ErrorText returns the line shown to a player for err and whether err was a
// UserError.
func ErrorText(err error) (string, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message, true
	}
	return GenericErrorText, false
}

var (
	errNotPermitted = NewUserError("You are not permitted to do that.")
	errHuh          = NewUserError("Huh?")
	errCannotGo     = NewUserError("You cannot go that way.")
)
