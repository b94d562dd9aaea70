package stream

import (
	"io"

	"github.com/pkg/errors"
)

// ReadByte implements io.ByteReader. Reading at the end of a buffer-backed
// stream raises the end-of-stream indicator and returns io.EOF.
func (s *Stream) ReadByte() (byte, error) {
	if s.file != nil {
		if err := s.prepareRead(); err != nil {
			return 0, err
		}
		value, err := s.reader.ReadByte()
		if err == io.EOF {
			s.eof = true
		}
		return value, err
	}
	if s.cursor == s.limit {
		s.eof = true
		return 0, io.EOF
	}
	value := s.region[s.cursor]
	s.cursor++
	return value, nil
}

// UngetByte pushes a byte back onto the stream and clears the end-of-stream
// indicator. A buffer-backed stream has no side pushback slot (it is itself
// the buffer), so the byte is physically written at the decremented cursor,
// overwriting whatever was read there; pushing back at the start of the
// region fails with ErrInvalidPosition and no mutation. In file mode the
// most recently read byte is returned to the read buffer and the value
// argument is not re-injected.
func (s *Stream) UngetByte(value byte) error {
	if s.file != nil {
		if err := s.reader.UnreadByte(); err != nil {
			return errors.Wrap(err, "unable to unread buffered byte")
		}
		s.eof = false
		return nil
	}
	if s.cursor == 0 {
		return ErrInvalidPosition
	}
	s.eof = false
	s.cursor--
	s.region[s.cursor] = value
	return nil
}

// WriteByte implements io.ByteWriter. Writing at the end of a buffer-backed
// stream raises the end-of-stream indicator and fails with io.EOF.
func (s *Stream) WriteByte(value byte) error {
	if s.file != nil {
		if err := s.prepareWrite(); err != nil {
			return err
		}
		return s.writer.WriteByte(value)
	}
	if s.cursor == s.limit {
		s.eof = true
		return io.EOF
	}
	s.region[s.cursor] = value
	s.cursor++
	return nil
}
