package openerr

import (
	"errors"
	"fmt"
)

const (
	shellNotFoundDescriptionConstant = "Unrecognized shell type"
	commandFailedDescriptionConstant = "Command failed"
	noLauncherDescriptionConstant    = "No launcher worked"
	ioDescriptionConstant            = "IO Error"
	unknownKindDescriptionConstant   = "Unknown error"
	errorWithMessageTemplateConstant = "%s (%s)"
)

// Kind classifies failures surfaced while opening a target.
type Kind int

// Supported error kinds.
const (
	// KindShellNotFound indicates a shell name did not match any known alias.
	KindShellNotFound Kind = iota + 1
	// KindCommandFailed indicates a launched process exited with a non-success status.
	KindCommandFailed
	// KindNoLauncher indicates no candidate invocation was attempted and no error was recorded.
	KindNoLauncher
	// KindIo indicates the operating system refused to start a process or perform the request.
	KindIo
)

// String returns the human-readable description of the kind.
func (kind Kind) String() string {
	switch kind {
	case KindShellNotFound:
		return shellNotFoundDescriptionConstant
	case KindCommandFailed:
		return commandFailedDescriptionConstant
	case KindNoLauncher:
		return noLauncherDescriptionConstant
	case KindIo:
		return ioDescriptionConstant
	default:
		return unknownKindDescriptionConstant
	}
}

// Error reports a failure to open a target. Two errors are considered equal when their kinds match.
type Error struct {
	kind    Kind
	message string
	cause   error
}

// Sentinel errors usable with errors.Is.
var (
	ErrShellNotFound = &Error{kind: KindShellNotFound}
	ErrCommandFailed = &Error{kind: KindCommandFailed}
	ErrNoLauncher    = &Error{kind: KindNoLauncher}
	ErrIo            = &Error{kind: KindIo}
)

// New constructs an Error with an informational message.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Wrap constructs an Io error carrying the underlying cause.
func Wrap(cause error) *Error {
	if cause == nil {
		return New(KindIo, "")
	}
	var existing *Error
	if errors.As(cause, &existing) {
		return existing
	}
	return &Error{kind: KindIo, message: cause.Error(), cause: cause}
}

// Kind returns the error classification.
func (openError *Error) Kind() Kind {
	return openError.kind
}

// Message returns the optional informational message.
func (openError *Error) Message() string {
	return openError.message
}

// Error renders the kind description followed by the message when present.
func (openError *Error) Error() string {
	if len(openError.message) == 0 {
		return openError.kind.String()
	}
	return fmt.Sprintf(errorWithMessageTemplateConstant, openError.kind.String(), openError.message)
}

// Unwrap exposes the underlying operating system failure, if any.
func (openError *Error) Unwrap() error {
	return openError.cause
}

// Is reports whether target is an Error of the same kind.
func (openError *Error) Is(target error) bool {
	targetError, isOpenError := target.(*Error)
	if !isOpenError || targetError == nil {
		return false
	}
	return openError.kind == targetError.kind
}

// KindOf extracts the kind from an error chain, returning false when no Error is present.
func KindOf(err error) (Kind, bool) {
	var openError *Error
	if !errors.As(err, &openError) {
		return 0, false
	}
	return openError.kind, true
}
