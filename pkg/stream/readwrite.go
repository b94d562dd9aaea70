package stream

import (
	"io"
	"math/bits"

	"github.com/pkg/errors"
)

// ErrSizeOverflow is returned by ReadItems and WriteItems when the requested
// element size and count overflow the representable transfer size. The stream
// is left untouched and the error is additionally recorded for Err.
var ErrSizeOverflow = errors.New("element size and count overflow the representable transfer size")

// maxInt is the largest value representable by an int on this platform.
const maxInt = int(^uint(0) >> 1)

// transferSize computes size*count with an explicit overflow check. It fails
// with ErrSizeOverflow for negative operands or products exceeding the int
// range, without computing a partial result.
func transferSize(size, count int) (int, error) {
	if size < 0 || count < 0 {
		return 0, ErrSizeOverflow
	}
	high, low := bits.Mul64(uint64(size), uint64(count))
	if high != 0 || low > uint64(maxInt) {
		return 0, ErrSizeOverflow
	}
	return int(low), nil
}

// ReadItems reads up to count elements of size bytes each into dst and
// returns the number of complete elements read. A short read (fewer bytes
// available than requested) sets the end-of-stream indicator and silently
// drops any partially-read trailing element. When the stream is already
// exhausted, it returns zero elements and io.EOF. An unrepresentable
// size*count product fails with ErrSizeOverflow before touching the stream.
func (s *Stream) ReadItems(dst []byte, size, count int) (int, error) {
	// Validate the requested transfer size.
	total, err := transferSize(size, count)
	if err != nil {
		s.err = err
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	// Delegate for file-backed streams, tolerating short reads.
	if s.file != nil {
		if err := s.prepareRead(); err != nil {
			return 0, err
		}
		read, err := io.ReadFull(s.reader, dst[:total])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			s.eof = true
			if read == 0 {
				return 0, io.EOF
			}
			err = nil
		}
		if err != nil {
			return read / size, errors.Wrap(err, "unable to read from backing file")
		}
		return read / size, nil
	}

	// Clamp the transfer to the remaining bytes, raising the end-of-stream
	// indicator on a short read. Returning early when nothing remains avoids
	// both a pointless copy and a zero-length element computation.
	remaining := s.limit - s.cursor
	if remaining < total {
		s.eof = true
		if remaining == 0 {
			return 0, io.EOF
		}
		total = remaining
	}

	// Copy and advance. A partially-copied trailing element is dropped from
	// the element count by the integer division.
	copied := copy(dst, s.region[s.cursor:s.cursor+total])
	s.cursor += copied
	return copied / size, nil
}

// WriteItems writes up to count elements of size bytes each from src and
// returns the number of complete elements written. Writes are clamped to the
// remaining capacity without raising the end-of-stream indicator
// (intentionally asymmetric with ReadItems). An unrepresentable size*count
// product fails with ErrSizeOverflow before touching the stream.
func (s *Stream) WriteItems(src []byte, size, count int) (int, error) {
	// Validate the requested transfer size.
	total, err := transferSize(size, count)
	if err != nil {
		s.err = err
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	// Delegate for file-backed streams.
	if s.file != nil {
		if err := s.prepareWrite(); err != nil {
			return 0, err
		}
		written, err := s.writer.Write(src[:total])
		if err != nil {
			return written / size, errors.Wrap(err, "unable to write to backing file")
		}
		return written / size, nil
	}

	// Clamp the transfer to the remaining capacity. No indicator is raised
	// for a short write.
	remaining := s.limit - s.cursor
	if remaining < total {
		total = remaining
	}

	// Copy and advance.
	copied := copy(s.region[s.cursor:s.cursor+total], src)
	s.cursor += copied
	return copied / size, nil
}

// Read implements io.Reader. It returns io.EOF once the stream is exhausted
// and raises the end-of-stream indicator on any short or empty read.
func (s *Stream) Read(p []byte) (int, error) {
	if s.file != nil {
		if err := s.prepareRead(); err != nil {
			return 0, err
		}
		read, err := s.reader.Read(p)
		if err == io.EOF {
			s.eof = true
		}
		return read, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.cursor == s.limit {
		s.eof = true
		return 0, io.EOF
	}
	read := copy(p, s.region[s.cursor:s.limit])
	s.cursor += read
	if read < len(p) {
		s.eof = true
	}
	return read, nil
}

// Write implements io.Writer. Unlike WriteItems, a write clamped by the
// remaining capacity returns io.ErrShortWrite, as the io.Writer contract
// requires an error whenever fewer bytes are written than provided.
func (s *Stream) Write(p []byte) (int, error) {
	if s.file != nil {
		if err := s.prepareWrite(); err != nil {
			return 0, err
		}
		return s.writer.Write(p)
	}
	written := copy(s.region[s.cursor:s.limit], p)
	s.cursor += written
	if written < len(p) {
		return written, io.ErrShortWrite
	}
	return written, nil
}
