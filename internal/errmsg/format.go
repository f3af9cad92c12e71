// Package errmsg turns failures into messages for the user.
package errmsg

import "fmt"

// Op names an operation that can fail, as in "Failed to <op>".
type Op string

const (
	OpAlbumLoad  Op = "load album"
	OpCoverLoad  Op = "load cover"
	OpCoverCache Op = "cache cover"

	OpConfigLoad Op = "load config"

	OpStateOpen   Op = "open state database"
	OpStateLoad   Op = "load last album"
	OpRecentsLoad Op = "load recent albums"

	OpLogOpen    Op = "open debug log"
	OpInitialize Op = "initialize application"
)

// Error is a failed operation, optionally on a named subject such as a
// directory. It unwraps to the cause.
type Error struct {
	Op      Op
	Subject string
	Err     error
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("Failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", e.Op, e.Subject, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as a failure of op, or nil for a nil err.
func Wrap(op Op, err error) error {
	return WrapWith(op, "", err)
}

// WrapWith is Wrap naming the subject of the operation.
func WrapWith(op Op, subject string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Subject: subject, Err: err}
}

// Format is the message of Wrap(op, err), or "" for a nil err.
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

// FormatWith is the message of WrapWith(op, subject, err), or "" for a nil err.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	return WrapWith(op, subject, err).Error()
}
