package stream

import (
	"io"
)

// DualModeReader represents a reader that can perform both regular and
// single-byte reads efficiently.
type DualModeReader interface {
	io.ByteReader
	io.Reader
}

// Flusher represents a stream that performs internal buffering that may need
// to be flushed to ensure transmission.
type Flusher interface {
	// Flush forces transmission of any buffered stream data.
	Flush() error
}

// Stream satisfies the standard stream interfaces for both backends.
var (
	_ io.ReadWriteSeeker = (*Stream)(nil)
	_ io.ByteWriter      = (*Stream)(nil)
	_ io.StringWriter    = (*Stream)(nil)
	_ io.Closer          = (*Stream)(nil)
	_ DualModeReader     = (*Stream)(nil)
	_ Flusher            = (*Stream)(nil)
)
