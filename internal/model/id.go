package model

import (
	"strings"

	"github.com/google/uuid"
)

// ShortIDLength is the number of trailing ID characters shown in listings.
const ShortIDLength = 8

// NewID returns a fresh task identifier.
//
// IDs are UUIDv7 strings. The generator keeps a monotonic counter within a
// millisecond, so back-to-back calls never collide. If the random source
// fails a v4 UUID is used instead.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ShortID returns the last ShortIDLength characters of id.
// IDs shorter than that are returned unchanged.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[len(id)-ShortIDLength:]
}

// NormalizeText trims surrounding whitespace from task text.
// It returns "" for text that is empty or whitespace-only.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}
