package loader

import "errors"

var (
	// ErrNotFound means the requested path does not exist. Surfaced before any
	// extraction I/O is attempted, never retried here.
	ErrNotFound = errors.New("path not found")

	// ErrUnsupportedFormat means the file extension is outside the configured
	// set. Fatal for the file, a skip in directory mode.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrDecodeFailure means no candidate text encoding could decode the file.
	// With the Latin-1 tail in place this is effectively unreachable.
	ErrDecodeFailure = errors.New("could not decode file")
)
