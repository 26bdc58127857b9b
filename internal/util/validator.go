package util

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an email address. All storage and
// lookups go through this, so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks basic email shape after normalization.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if len(email) > 255 {
		return fmt.Errorf("email too long")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the configured minimum length.
func ValidatePassword(password string, minLen int) error {
	if minLen <= 0 {
		minLen = 8
	}
	if len(password) < minLen {
		return fmt.Errorf("password must be at least %d characters", minLen)
	}
	if len(password) > 72 {
		// bcrypt ignores input beyond 72 bytes
		return fmt.Errorf("password too long")
	}
	return nil
}

// ValidateCoordinates checks that a reported position is a real lat/lng pair.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude out of range: %f", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude out of range: %f", lng)
	}
	return nil
}
