package stream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// renderInto is an snprintf-style primitive: it renders the formatted text
// into dst, truncating to len(dst)-1 bytes, always NUL-terminates the written
// text, and returns the full untruncated length.
func renderInto(dst []byte, format string, args ...interface{}) int {
	text := fmt.Sprintf(format, args...)
	written := copy(dst[:len(dst)-1], text)
	dst[written] = 0
	return len(text)
}

// Printf renders formatted text at the current position and returns the full
// rendered length, even when the write was truncated by the remaining
// capacity (the standard truncation-reporting convention). In buffer mode the
// cursor is NOT advanced: rendering happens at the current position and
// sequential use requires explicit repositioning via Seek or Tell.
//
// The render primitive always terminates its output with a NUL byte. When the
// text fits with margin, the byte at the terminator's position is saved
// before rendering and restored afterward, so no byte beyond the rendered
// text is permanently altered. When the text does not fit, the render is
// given one unit of capacity beyond the usable region — exactly the reserved
// guard byte — so the terminator lands inside the true region. Bytes past the
// region are never written in either case.
func (s *Stream) Printf(format string, args ...interface{}) (int, error) {
	// Delegate for file-backed streams.
	if s.file != nil {
		if err := s.prepareWrite(); err != nil {
			return 0, err
		}
		length, err := fmt.Fprintf(s.writer, format, args...)
		if err != nil {
			return length, errors.Wrap(err, "unable to write formatted text")
		}
		return length, nil
	}

	// Dry-run the render with a discarded target to learn the full length
	// without touching the region.
	length, err := fmt.Fprintf(io.Discard, format, args...)
	if err != nil {
		return length, err
	}
	remaining := s.limit - s.cursor

	// Truncated render: the span runs through the guard byte, giving the
	// terminator room without exceeding the true region.
	if length >= remaining {
		renderInto(s.region[s.cursor:s.limit+1], format, args...)
		return length, nil
	}

	// The text fits with margin: rescue the byte where the terminator will
	// land, render, and put it back.
	saved := s.region[s.cursor+length]
	renderInto(s.region[s.cursor:s.limit+1], format, args...)
	s.region[s.cursor+length] = saved
	return length, nil
}

// Scanf scans formatted input from the bytes at the current position, treated
// as a textual source bounded by the first NUL byte or the end of the usable
// region. In buffer mode the cursor is NOT advanced: scanning happens at the
// current position and sequential use requires explicit repositioning via
// Seek or Tell. It returns the number of items successfully scanned.
func (s *Stream) Scanf(format string, args ...interface{}) (int, error) {
	// Delegate for file-backed streams.
	if s.file != nil {
		if err := s.prepareRead(); err != nil {
			return 0, err
		}
		return fmt.Fscanf(s.reader, format, args...)
	}

	// Bound the textual source at the first NUL, mirroring a
	// terminator-delimited scan, and never past the usable region.
	source := s.region[s.cursor:s.limit]
	if index := bytes.IndexByte(source, 0); index >= 0 {
		source = source[:index]
	}
	return fmt.Sscanf(string(source), format, args...)
}
