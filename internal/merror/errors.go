package merror

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks a source or artifact that is missing or unreadable.
	ErrUnavailable = errors.New("resource unavailable")

	// ErrParse marks persisted content that cannot be turned back into data.
	ErrParse = errors.New("malformed content")

	ErrInvalidName = errors.New("invalid model name")
)

// ParseError locates a syntax problem in persisted content.
type ParseError struct {
	Source string
	Offset int
	Msg    string
}

func (err *ParseError) Error() string {
	if err.Source != "" {
		return fmt.Sprintf("parse %s at offset %d: %s", err.Source, err.Offset, err.Msg)
	}
	return fmt.Sprintf("parse at offset %d: %s", err.Offset, err.Msg)
}

func (err *ParseError) Unwrap() error {
	return ErrParse
}

// Unavailable wraps err so that it matches ErrUnavailable.
func Unavailable(what string, err error) error {
	return fmt.Errorf("%s: %w: %w", what, ErrUnavailable, err)
}
