package stream

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Stream is a positionable byte stream backed by either an open file or a
// caller-owned memory region. The backend is fixed at construction time and
// every operation dispatches on it.
type Stream struct {
	// file is the backing handle in file mode and nil in buffer mode.
	file *os.File
	// reader buffers file-mode reads. It is nil in buffer mode.
	reader *bufio.Reader
	// writer buffers file-mode writes. It is nil in buffer mode.
	writer *bufio.Writer
	// region is the caller-supplied backing region in buffer mode,
	// including the reserved guard byte at its end.
	region []byte
	// cursor is the current read/write offset from the start of region.
	cursor int
	// limit is the offset one past the last usable byte. region[limit] is
	// the guard byte.
	limit int
	// eof indicates that a consuming operation exhausted the stream.
	eof bool
	// err holds the sticky transfer-size error for buffer-mode streams.
	err error
}

// NewBuffer creates a buffer-backed stream over the provided region. The
// stream reads from and writes to the region directly, without copying or
// allocating, and the final byte of the region is reserved as the guard byte
// (usable capacity is len(region)-1). The caller retains ownership of the
// region and is responsible for its lifetime.
func NewBuffer(region []byte) (*Stream, error) {
	if len(region) == 0 {
		return nil, errors.New("region must hold at least the reserved guard byte")
	}
	return &Stream{
		region: region,
		limit:  len(region) - 1,
	}, nil
}

// Open creates a file-backed stream by opening the named file with the
// provided stdio-style access mode (e.g. "r", "w+", "ab"). The mode is
// normalized to always request binary access before being translated to open
// flags. The caller must close the stream when finished with it.
func Open(name, mode string) (*Stream, error) {
	// Translate the mode string, forcing binary access.
	flags, err := parseMode(forceBinaryMode(mode))
	if err != nil {
		return nil, err
	}

	// Open the backing file.
	file, err := os.OpenFile(name, flags, 0666)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open backing file")
	}

	// Success.
	return OpenFile(file), nil
}

// OpenFile creates a file-backed stream over an already-open file. The stream
// does not take ownership of the handle beyond Close.
func OpenFile(file *os.File) *Stream {
	return &Stream{
		file:   file,
		reader: bufio.NewReader(file),
		writer: bufio.NewWriter(file),
	}
}

// BufferBacked reports whether the stream operates over a memory region
// rather than a file.
func (s *Stream) BufferBacked() bool {
	return s.file == nil
}

// Size returns the usable capacity of a buffer-backed stream (the region
// length minus the guard byte), or the current size of the backing file.
func (s *Stream) Size() (int64, error) {
	if s.file != nil {
		info, err := s.file.Stat()
		if err != nil {
			return 0, errors.Wrap(err, "unable to stat backing file")
		}
		return info.Size(), nil
	}
	return int64(s.limit), nil
}

// EOF reports whether a consuming operation has exhausted the stream. It is
// cleared by Seek, SetPos, Rewind, UngetByte, and ClearErr.
func (s *Stream) EOF() bool {
	return s.eof
}

// Err returns the sticky transfer-size error, if any. File-mode errors are
// reported by the operations that produce them and are never recorded here.
func (s *Stream) Err() error {
	return s.err
}

// ClearErr resets both the end-of-stream indicator and the sticky error.
func (s *Stream) ClearErr() {
	s.eof = false
	s.err = nil
}

// Flush forces transmission of any buffered file-mode writes. It is a no-op
// for buffer-backed streams, whose writes take effect immediately.
func (s *Stream) Flush() error {
	if s.file != nil {
		if err := s.writer.Flush(); err != nil {
			return errors.Wrap(err, "unable to flush write buffer")
		}
	}
	return nil
}

// Close flushes and closes the backing file. It is a no-op for buffer-backed
// streams, which hold no releasable resources.
func (s *Stream) Close() error {
	if s.file == nil {
		return nil
	}
	if err := s.writer.Flush(); err != nil {
		s.file.Close()
		return errors.Wrap(err, "unable to flush write buffer")
	}
	if err := s.file.Close(); err != nil {
		return errors.Wrap(err, "unable to close backing file")
	}
	return nil
}

// Reopen closes the current backing file and opens the named file in its
// place, preserving the stream instance. It fails for buffer-backed streams.
func (s *Stream) Reopen(name, mode string) error {
	// Reopening only makes sense for file-backed streams.
	if s.file == nil {
		return errors.New("stream is not file-backed")
	}

	// Translate the mode string, forcing binary access.
	flags, err := parseMode(forceBinaryMode(mode))
	if err != nil {
		return err
	}

	// Release the current handle. Closure errors don't prevent the reopen,
	// matching the platform convention for stream reopening.
	s.writer.Flush()
	s.file.Close()

	// Open the replacement file and reset the buffered state.
	file, err := os.OpenFile(name, flags, 0666)
	if err != nil {
		return errors.Wrap(err, "unable to open replacement file")
	}
	s.file = file
	s.reader.Reset(file)
	s.writer.Reset(file)
	s.eof = false
	s.err = nil
	return nil
}

// prepareRead readies a file-backed stream for a read by flushing any
// buffered writes, so reads observe data written through the stream.
func (s *Stream) prepareRead() error {
	if s.writer.Buffered() > 0 {
		if err := s.writer.Flush(); err != nil {
			return errors.Wrap(err, "unable to flush write buffer")
		}
	}
	return nil
}

// prepareWrite readies a file-backed stream for a write by discarding any
// buffered readahead and repositioning the file to the logical read position.
func (s *Stream) prepareWrite() error {
	if buffered := s.reader.Buffered(); buffered > 0 {
		if _, err := s.file.Seek(-int64(buffered), io.SeekCurrent); err != nil {
			return errors.Wrap(err, "unable to reposition after buffered reads")
		}
		s.reader.Reset(s.file)
	}
	return nil
}
