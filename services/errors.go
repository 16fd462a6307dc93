package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP statuses: ErrNotFound 404, ErrUnauthorized 403, ErrConflict 409,
// ErrInvalidInput 400.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// isDuplicateKey reports whether err is a unique-index violation. Covers
// gorm's translated error plus the raw postgres and sqlite messages, so
// races past an existence check still surface as conflicts.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
