package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMagic       = errors.New("protocol: invalid magic")
	ErrUnsupportedVersion = errors.New("protocol: unsupported version")
	ErrTruncated          = errors.New("protocol: truncated data")
)

// FieldError reports a buffer too short for the named section.
type FieldError struct {
	Section string
	Need    int
	Have    int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("protocol: %s needs %d bytes, have %d", e.Section, e.Need, e.Have)
}

func (e *FieldError) Unwrap() error { return ErrTruncated }

// VersionError carries the rejected protocol version.
type VersionError struct {
	Got uint16
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("protocol: unsupported version %d (want %d)", e.Got, Version)
}

func (e *VersionError) Unwrap() error { return ErrUnsupportedVersion }

// Reason maps a decode error to a stable label for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidMagic):
		return "invalid_magic"
	case errors.Is(err, ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(err, ErrTruncated):
		return "truncated"
	default:
		return "unknown"
	}
}

func need(section string, buf []byte, n int) error {
	if len(buf) < n {
		return &FieldError{Section: section, Need: n, Have: len(buf)}
	}
	return nil
}
