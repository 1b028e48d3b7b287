package credential

import (
	"crypto/subtle"
	"errors"
	"strings"
)

var ErrInvalidPassphrase = errors.New("invalid access key")

// CheckPassphrase compares the trimmed input against expected in constant time. An unset
// expected value rejects everything.
func CheckPassphrase(input, expected string) error {
	expected = strings.TrimSpace(expected)
	input = strings.TrimSpace(input)
	if expected == "" || input == "" {
		return ErrInvalidPassphrase
	}
	if subtle.ConstantTimeCompare([]byte(input), []byte(expected)) != 1 {
		return ErrInvalidPassphrase
	}
	return nil
}
