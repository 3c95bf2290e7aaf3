// Package repository implements the data access layer for the application.
package repository

import (
	"strings"
)

// isUniqueConstraintError reports whether err is a unique-key violation.
// Covers postgres (23505 / "duplicate key") and the sqlite driver used
// in tests ("UNIQUE constraint failed").
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
