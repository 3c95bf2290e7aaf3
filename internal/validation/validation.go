// Package validation contains input validators shared by the API handlers
// and services.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	MaxNameLength    = 100
	MaxTitleLength   = 200
	MaxExcerptLength = 500
	MaxDescLength    = 1000
	MaxMessageLength = 2000
	MinPasswordLen   = 6
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	githubRegex = regexp.MustCompile(`^https?://(www\.)?github\.com/.+`)
)

// ValidateEmail checks that the value looks like an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("please provide a valid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// ValidateRequiredString checks presence and a maximum length for a
// trimmed text field.
func ValidateRequiredString(name, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	if len(value) > maxLen {
		return fmt.Errorf("%s must be less than %d characters", name, maxLen)
	}
	return nil
}

// ValidateURL checks that the value, when present, is an absolute
// http(s) URL. Empty values pass; pair with ValidateRequiredString for
// mandatory fields.
func ValidateURL(name, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.ParseRequestURI(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be a valid HTTP/HTTPS URL", name)
	}
	return nil
}

// ValidateGithubURL checks that the value, when present, points at a
// GitHub repository.
func ValidateGithubURL(value string) error {
	if value == "" {
		return nil
	}
	if !githubRegex.MatchString(value) {
		return errors.New("GitHub URL must be a valid GitHub repository URL")
	}
	return nil
}

// ValidateRole checks the role enum.
func ValidateRole(role string) error {
	if role != "admin" && role != "user" {
		return errors.New("invalid role")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeTags lowercases, trims and drops empty tags.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
