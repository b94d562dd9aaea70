// Package stream provides a single stream abstraction that operates
// interchangeably over an operating system file or a fixed-capacity,
// caller-owned memory region. Positioning, byte, line, bulk, and formatted
// operations share one API, so code written against a Stream runs unmodified
// against either backend.
//
// A Stream is backed by exactly one of the two: NewBuffer creates a
// buffer-backed stream over a caller-supplied region, while Open and OpenFile
// create file-backed streams that delegate every operation to buffered file
// I/O. The package never takes ownership of the backing resource: buffer-mode
// streams perform no allocation and nothing needs to be released, and
// file-mode streams must be closed explicitly by the caller.
//
// In buffer mode, the final byte of the supplied region is permanently
// reserved as a guard byte and never treated as data space. Formatted output
// primitives targeting a fixed region always terminate the rendered text with
// a NUL byte, even for truncated writes; reserving a single trailing byte
// guarantees that terminator always has room without the render exceeding the
// true region. Callers that never use Printf on a stream may still rely on
// this reservation being in place (usable capacity is always one less than
// the region length).
//
// Streams perform no internal locking and are not safe for concurrent use.
// Buffer-mode operations are pure memory operations that never block;
// file-mode operations block exactly as the underlying file does.
//
// The end-of-stream indicator (EOF) and the sticky transfer-size error (Err)
// are independent: EOF is set by consuming operations that exhaust the
// stream and cleared by any repositioning operation, while Err is set only by
// a transfer whose element size and count overflow the representable range.
// ClearErr resets both. In file mode, errors surface on the call that
// produced them rather than through Err.
package stream
