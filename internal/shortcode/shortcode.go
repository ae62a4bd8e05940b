// Package shortcode generates and checks short codes.
package shortcode

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Length is the number of characters in every short code.
	Length = 8
	// Alphabet holds the symbols a short code is drawn from.
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// Generate returns a random short code. It is safe for concurrent use.
func Generate() (string, error) {
	const op = "shortcode.Generate"

	code, err := gonanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}

// Valid reports whether s has the shape of a short code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z') {
			return false
		}
	}

	return true
}
