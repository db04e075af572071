package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reporting and exit codes.
type Kind int

const (
	KindInternal Kind = iota
	KindUser
	KindConfig
	KindGit
)

// Error is an error tagged with the category it is reported under.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for the error category.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindUser:
		return 1
	case KindConfig:
		return 2
	case KindGit:
		return 3
	default:
		return 10
	}
}

func User(msg string) error {
	return &Error{Kind: KindUser, Message: msg}
}

func Userf(format string, args ...any) error {
	return &Error{Kind: KindUser, Message: fmt.Sprintf(format, args...)}
}

func Config(msg string) error {
	return &Error{Kind: KindConfig, Message: msg}
}

func Configf(format string, args ...any) error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

func Git(msg string) error {
	return &Error{Kind: KindGit, Message: msg}
}

func Gitf(format string, args ...any) error {
	return &Error{Kind: KindGit, Message: fmt.Sprintf(format, args...)}
}

func Internalf(format string, args ...any) error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags err with kind, prefixing msg when non-empty.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the category of err. Untagged errors are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Tagged reports whether err carries a category anywhere in its chain.
func Tagged(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr)
}

// IsKind reports whether err carries the given category.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps err to a process exit code. nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.ExitCode()
	}
	return 10
}
