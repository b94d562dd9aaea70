package stream

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// ReadLine reads at most len(dst)-1 bytes into dst, stopping after the first
// newline (which is included in the result), and NUL-terminates the copied
// text. It returns the slice of dst holding the line, excluding the
// terminator. A read clamped by the remaining stream bytes raises the
// end-of-stream indicator, and a read at an already-exhausted stream fails
// with io.EOF and no copy, as does a zero-length destination.
func (s *Stream) ReadLine(dst []byte) ([]byte, error) {
	// The destination must have room for the terminator.
	if len(dst) == 0 {
		return nil, errors.New("zero-length line destination")
	}
	budget := len(dst) - 1

	// Delegate for file-backed streams, collecting buffered bytes up to the
	// budget or the first newline.
	if s.file != nil {
		if err := s.prepareRead(); err != nil {
			return nil, err
		}
		var length int
		for length < budget {
			value, err := s.reader.ReadByte()
			if err == io.EOF {
				s.eof = true
				if length == 0 {
					return nil, io.EOF
				}
				break
			} else if err != nil {
				return nil, errors.Wrap(err, "unable to read from backing file")
			}
			dst[length] = value
			length++
			if value == '\n' {
				break
			}
		}
		dst[length] = 0
		return dst[:length], nil
	}

	// Clamp the budget to the remaining bytes, raising the end-of-stream
	// indicator on a short read and failing without a copy when nothing
	// remains.
	remaining := s.limit - s.cursor
	if remaining < budget {
		s.eof = true
		if remaining == 0 {
			return nil, io.EOF
		}
		budget = remaining
	}

	// Shorten the copy to include the first newline, if one lies within the
	// budget.
	window := s.region[s.cursor : s.cursor+budget]
	if index := bytes.IndexByte(window, '\n'); index >= 0 {
		budget = index + 1
	}

	// Copy, terminate, and advance.
	length := copy(dst, s.region[s.cursor:s.cursor+budget])
	dst[length] = 0
	s.cursor += length
	return dst[:length], nil
}

// Puts writes src to the stream, stopping at the first NUL byte in src (the
// terminator is not written) or at the end of src, whichever comes first. In
// buffer mode the write is additionally bounded by the remaining capacity
// and always succeeds, silently truncating if the stream is too full
// (intentionally asymmetric with ReadLine and WriteByte). It returns the
// number of bytes written.
func (s *Stream) Puts(src []byte) (int, error) {
	// Delegate for file-backed streams, honoring the terminator bound.
	if s.file != nil {
		if err := s.prepareWrite(); err != nil {
			return 0, err
		}
		if index := bytes.IndexByte(src, 0); index >= 0 {
			src = src[:index]
		}
		written, err := s.writer.Write(src)
		if err != nil {
			return written, errors.Wrap(err, "unable to write to backing file")
		}
		return written, nil
	}

	// Copy into the remaining capacity and advance.
	written := copyUntilZero(s.region[s.cursor:s.limit], src)
	s.cursor += written
	return written, nil
}

// WriteString implements io.StringWriter with Puts semantics.
func (s *Stream) WriteString(text string) (int, error) {
	return s.Puts([]byte(text))
}
