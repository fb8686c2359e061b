// Package validation holds input checks shared by services and seeders.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"microblog/internal/models"
)

// ValidateTweetContent checks that content is at most models.MaxTweetLength
// characters long. Presence of the field is checked by the decoder.
func ValidateTweetContent(content string) error {
	if n := models.ContentLength(content); n > models.MaxTweetLength {
		//nolint:staticcheck // user-facing message
		return fmt.Errorf("The length of the tweet should not exceed %d characters. Current value: %d", models.MaxTweetLength, n)
	}
	return nil
}

// ValidateUsername checks a display name: 1-60 characters, no control characters.
func ValidateUsername(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("username must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > 60 {
		return fmt.Errorf("username must be at most 60 characters")
	}
	for _, r := range trimmed {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("username contains control characters")
		}
	}
	return nil
}

// ValidateAPIKey checks that a credential is usable as a lookup key.
func ValidateAPIKey(key string) error {
	if key == "" || strings.TrimSpace(key) != key {
		return fmt.Errorf("api key must be non-empty without surrounding whitespace")
	}
	if len(key) > 128 {
		return fmt.Errorf("api key must be at most 128 bytes")
	}
	return nil
}
