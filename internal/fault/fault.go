// Package fault defines the error kinds shared by every stage of the fetch
// pipeline. Stages wrap one of the sentinels below with %w so callers can
// classify failures with errors.Is.
package fault

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork           = errors.New("network error")
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrCorruptArchive    = errors.New("corrupt archive")
	ErrIO                = errors.New("i/o error")
	ErrUnknownMarkup     = errors.New("unknown markup")
)

// UnsupportedFormatError reports an asset extension that is neither the
// archive nor the executable format.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("extension %s is unsupported", e.Ext)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// UnknownMarkupError reports a markup construct the release-note renderer
// has no translation for.
type UnknownMarkupError struct {
	Construct string
}

func (e *UnknownMarkupError) Error() string {
	return fmt.Sprintf("unknown markup construct: %s", e.Construct)
}

// Is reports whether target is ErrUnknownMarkup.
func (e *UnknownMarkupError) Is(target error) bool {
	return target == ErrUnknownMarkup
}
