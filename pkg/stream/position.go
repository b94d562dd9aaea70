package stream

import (
	"io"

	"github.com/pkg/errors"
)

// ErrInvalidPosition is returned when a positioning operation targets an
// offset outside the usable region of a buffer-backed stream, or when a
// pushback is attempted at the start of the region. The cursor and the
// end-of-stream indicator are left untouched in that case.
var ErrInvalidPosition = errors.New("position outside stream region")

// Seek sets the cursor relative to the origin indicated by whence
// (io.SeekStart, io.SeekCurrent, or io.SeekEnd, where the end origin is the
// stream's limit) and returns the resulting offset from the start of the
// stream. A successful seek clears the end-of-stream indicator, mirroring
// seek-after-EOF recovery on files. Buffer-mode targets outside [0, limit]
// fail with ErrInvalidPosition without moving the cursor.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.file != nil {
		// Flush pending writes and account for buffered readahead, which
		// leaves the file position ahead of the logical stream position.
		if err := s.prepareRead(); err != nil {
			return 0, err
		}
		if whence == io.SeekCurrent {
			offset -= int64(s.reader.Buffered())
		}
		s.reader.Reset(s.file)
		position, err := s.file.Seek(offset, whence)
		if err != nil {
			return 0, errors.Wrap(err, "unable to seek backing file")
		}
		s.eof = false
		return position, nil
	}

	// Compute the target offset relative to the requested origin.
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(s.cursor) + offset
	case io.SeekEnd:
		target = int64(s.limit) + offset
	default:
		return 0, errors.Errorf("invalid seek origin: %d", whence)
	}

	// Reject targets outside the usable region. The cursor and end-of-stream
	// indicator are preserved on failure.
	if target < 0 || target > int64(s.limit) {
		return 0, ErrInvalidPosition
	}

	// Reposition and clear the end-of-stream indicator.
	s.cursor = int(target)
	s.eof = false
	return target, nil
}

// Tell returns the current offset from the start of the stream.
func (s *Stream) Tell() (int64, error) {
	if s.file != nil {
		// The logical position is the file position minus buffered readahead
		// plus buffered unwritten output.
		position, err := s.file.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, errors.Wrap(err, "unable to query backing file position")
		}
		return position - int64(s.reader.Buffered()) + int64(s.writer.Buffered()), nil
	}
	return int64(s.cursor), nil
}

// Rewind resets the cursor to the start of the stream and clears the
// end-of-stream indicator. File-mode failures are discarded, matching the
// platform rewind convention.
func (s *Stream) Rewind() {
	if s.file != nil {
		s.Seek(0, io.SeekStart)
		return
	}
	s.cursor = 0
	s.eof = false
}

// GetPos returns the current position as a raw byte offset from the start of
// the stream. Buffer-mode positions are plain offsets rather than opaque
// handles, so they are portable and comparable across save and restore.
func (s *Stream) GetPos() (int64, error) {
	return s.Tell()
}

// SetPos restores a position previously obtained from GetPos and clears the
// end-of-stream indicator. Buffer-mode positions outside the usable region
// fail with ErrInvalidPosition without moving the cursor.
func (s *Stream) SetPos(position int64) error {
	_, err := s.Seek(position, io.SeekStart)
	return err
}
