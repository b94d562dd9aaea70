package stream

import (
	"io"
	"testing"
)

// newTestBuffer creates a buffer-backed stream over a fresh region containing
// the provided content, with exactly one extra byte for the guard.
func newTestBuffer(t *testing.T, content string) *Stream {
	t.Helper()
	region := make([]byte, len(content)+1)
	copy(region, content)
	s, err := NewBuffer(region)
	if err != nil {
		t.Fatal("unable to create buffer stream:", err)
	}
	return s
}

func TestSeekOrigins(t *testing.T) {
	// Create a stream with ten usable bytes.
	s := newTestBuffer(t, "0123456789")

	// Seek relative to the start.
	if position, err := s.Seek(4, io.SeekStart); err != nil {
		t.Fatal("seek from start failed:", err)
	} else if position != 4 {
		t.Fatal("unexpected position after seek from start:", position)
	}

	// Seek relative to the current position.
	if position, err := s.Seek(2, io.SeekCurrent); err != nil {
		t.Fatal("seek from current failed:", err)
	} else if position != 6 {
		t.Fatal("unexpected position after seek from current:", position)
	}

	// Seek relative to the end.
	if position, err := s.Seek(-1, io.SeekEnd); err != nil {
		t.Fatal("seek from end failed:", err)
	} else if position != 9 {
		t.Fatal("unexpected position after seek from end:", position)
	}

	// Seeking exactly to the limit is valid.
	if position, err := s.Seek(0, io.SeekEnd); err != nil {
		t.Fatal("seek to limit failed:", err)
	} else if position != 10 {
		t.Fatal("unexpected position after seek to limit:", position)
	}

	// An unknown origin is rejected.
	if _, err := s.Seek(0, 42); err == nil {
		t.Fatal("invalid seek origin unexpectedly accepted")
	}
}

func TestSeekOutOfRange(t *testing.T) {
	// Exhaust the stream so the end-of-stream indicator is set.
	s := newTestBuffer(t, "abc")
	if _, err := s.ReadItems(make([]byte, 8), 1, 8); err != nil {
		t.Fatal("unable to exhaust stream:", err)
	}
	if !s.EOF() {
		t.Fatal("end-of-stream indicator not set after exhausting read")
	}

	// Out-of-range targets fail and leave both the cursor and the indicator
	// untouched.
	for _, offset := range []int64{-1, 4, 100} {
		if _, err := s.Seek(offset, io.SeekStart); err != ErrInvalidPosition {
			t.Fatalf("seek to %d returned %v, expected ErrInvalidPosition", offset, err)
		}
	}
	if position, _ := s.Tell(); position != 3 {
		t.Fatal("cursor moved by failed seek:", position)
	}
	if !s.EOF() {
		t.Fatal("end-of-stream indicator cleared by failed seek")
	}

	// A successful seek clears the indicator.
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		t.Fatal("seek to start failed:", err)
	}
	if s.EOF() {
		t.Fatal("end-of-stream indicator survived successful seek")
	}
}

func TestTellAndRewind(t *testing.T) {
	// Advance and verify the reported offset.
	s := newTestBuffer(t, "abcdef")
	if _, err := s.ReadItems(make([]byte, 4), 1, 4); err != nil {
		t.Fatal("read failed:", err)
	}
	if position, err := s.Tell(); err != nil {
		t.Fatal("tell failed:", err)
	} else if position != 4 {
		t.Fatal("unexpected offset:", position)
	}

	// Exhaust the stream, then rewind.
	if _, err := s.ReadItems(make([]byte, 8), 1, 8); err != nil {
		t.Fatal("read failed:", err)
	}
	s.Rewind()
	if position, _ := s.Tell(); position != 0 {
		t.Fatal("rewind did not reset cursor")
	}
	if s.EOF() {
		t.Fatal("rewind did not clear end-of-stream indicator")
	}
}

func TestPositionRoundTrip(t *testing.T) {
	// Read partway and capture the position.
	s := newTestBuffer(t, "abcdef")
	if _, err := s.ReadItems(make([]byte, 2), 1, 2); err != nil {
		t.Fatal("read failed:", err)
	}
	saved, err := s.GetPos()
	if err != nil {
		t.Fatal("unable to capture position:", err)
	}

	// Read further, then restore.
	if _, err := s.ReadItems(make([]byte, 3), 1, 3); err != nil {
		t.Fatal("read failed:", err)
	}
	if err := s.SetPos(saved); err != nil {
		t.Fatal("unable to restore position:", err)
	}
	if position, _ := s.Tell(); position != saved {
		t.Fatal("restored position mismatch:", position)
	}

	// The same bytes must be readable again.
	if value, err := s.ReadByte(); err != nil {
		t.Fatal("read after restore failed:", err)
	} else if value != 'c' {
		t.Fatal("unexpected byte after restore:", string(value))
	}

	// Out-of-range positions are rejected.
	if err := s.SetPos(-1); err != ErrInvalidPosition {
		t.Fatal("negative position unexpectedly accepted:", err)
	}
}
