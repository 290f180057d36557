package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputName validates a diagram output file name taken from an
// option or a documentation tag. It rejects names that could escape the
// output directory.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths unless allowAbsolute is set
//   - No path traversal sequences (..)
//
// The special name "-" (standard output) is always accepted.
func ValidateOutputName(name string, allowAbsolute bool) error {
	if name == "-" {
		return nil
	}
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	const maxPathLength = 500
	if len(name) > maxPathLength {
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxPathLength)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid characters")
		}
	}

	if !allowAbsolute && filepath.IsAbs(name) {
		return New(ErrCodeInvalidPath, "output name must be relative: %s", name)
	}

	for _, part := range strings.FieldsFunc(filepath.ToSlash(name), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "output name cannot contain path traversal sequences (..)")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
