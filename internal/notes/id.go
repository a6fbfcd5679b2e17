package notes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxIDLength is the longest accepted id, in characters.
const MaxIDLength = 200

// Extension is appended to ids to form file names.
const Extension = ".txt"

// Errors
var (
	ErrInvalidID = errors.New("invalid note id")
	ErrNotFound  = errors.New("note not found")
	ErrTooLarge  = errors.New("note content too large")
)

// ValidateID checks id against the naming rules: 1-200 characters of ASCII
// letters, digits, '_', '.', '-' or CJK ideographs, not starting with
// '_', '.' or '-', and never containing "..".
func ValidateID(id string) error {
	n := utf8.RuneCountInString(id)
	if n < 1 || n > MaxIDLength {
		return fmt.Errorf("%w: length %d not in 1..%d", ErrInvalidID, n, MaxIDLength)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidID)
	}

	switch id[0] {
	case '_', '.', '-', '/':
		return fmt.Errorf("%w: %q starts with %q", ErrInvalidID, id, id[0])
	}
	if strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q contains \"..\"", ErrInvalidID, id)
	}

	for _, r := range id {
		if !allowedRune(r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidID, id, r)
		}
	}
	return nil
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '.', r == '-':
		return true
	case r >= 0x4e00 && r <= 0x9fff: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4dbf: // Extension A
		return true
	case r >= 0xf900 && r <= 0xfaff: // Compatibility Ideographs
		return true
	}
	return false
}

// FileName returns the stored name for id.
func FileName(id string) string {
	if strings.HasSuffix(strings.ToLower(id), Extension) {
		return id
	}
	return id + Extension
}

// NewID returns a fresh id of the form "<base36 unix millis>-<5 chars>".
func NewID() string {
	return newIDAt(time.Now())
}

func newIDAt(t time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strconv.FormatInt(t.UnixMilli(), 36) + "-" + random[:5]
}
