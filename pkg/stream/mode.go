package stream

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// maximumModeLength is the length of the longest recognized access mode form:
// r, w, a, rb, wb, ab, rb+, wb+, ab+, wx, wbx, w+x, or wb+x.
const maximumModeLength = 4

// forceBinaryMode rewrites an access mode string into a form that always
// requests binary access. The binary marker is inserted immediately after the
// first (access-type) character if not already present, remaining flags are
// preserved, and modes exceeding the maximum recognized form are truncated.
func forceBinaryMode(mode string) string {
	// An empty mode has no access-type character to key off of; it is left
	// for parseMode to reject.
	if mode == "" {
		return ""
	}

	// Copy the access-type character, then insert the binary marker unless
	// the remaining flags already carry it.
	normalized := make([]byte, 0, maximumModeLength)
	normalized = append(normalized, mode[0])
	rest := mode[1:]
	if !strings.ContainsRune(rest, 'b') {
		normalized = append(normalized, 'b')
	}

	// Copy the remaining flags, truncating at the maximum recognized form.
	for i := 0; i < len(rest) && len(normalized) < maximumModeLength; i++ {
		normalized = append(normalized, rest[i])
	}

	// Done.
	return string(normalized)
}

// parseMode translates a stdio-style access mode string into flags for
// os.OpenFile. The binary marker is accepted and ignored (all access on the
// supported platforms is binary). Parsing follows the standard fopen mode
// table and nothing more.
func parseMode(mode string) (int, error) {
	// Determine the base access type.
	if mode == "" {
		return 0, errors.New("empty access mode")
	}
	var flags int
	switch mode[0] {
	case 'r':
		flags = os.O_RDONLY
	case 'w':
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case 'a':
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return 0, errors.Errorf("invalid access mode: %q", mode)
	}

	// Apply the remaining flags.
	for _, flag := range mode[1:] {
		switch flag {
		case '+':
			flags = (flags &^ os.O_WRONLY) | os.O_RDWR
		case 'b':
			// Binary access is the only kind there is.
		case 'x':
			flags |= os.O_EXCL
		default:
			return 0, errors.Errorf("invalid access mode: %q", mode)
		}
	}

	// Done.
	return flags, nil
}
