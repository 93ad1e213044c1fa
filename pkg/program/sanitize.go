package program

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxSize bounds documents and REPL lines arriving from untrusted callers.
	DefaultMaxSize = 64 * 1024
	// EnvMaxSize overrides DefaultMaxSize.
	EnvMaxSize = "HEXSIM_MAX_PROGRAM_SIZE"
)

var (
	ErrTooLarge    = errors.New("program exceeds maximum allowed size")
	ErrInvalidUTF8 = errors.New("program contains invalid UTF-8 sequences")
)

// Sanitize rejects oversized or non UTF-8 input and strips control
// characters other than newline, tab and carriage return.
func Sanitize(input string) (string, error) {
	limit := MaxSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if isUnsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

// MaxSize returns the effective size limit in bytes.
func MaxSize() int {
	if val := os.Getenv(EnvMaxSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxSize
}
