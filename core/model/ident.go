package model

import (
	"errors"
	"strings"
)

// ErrInvalidIdentifier is returned when an identifier is empty or whitespace only.
var ErrInvalidIdentifier = errors.New("identifier must not be empty")

// NormalizeID canonicalizes a vehicle-type identifier: trim surrounding
// whitespace, then lowercase. Every lookup keyed by a type id must go through
// this before comparing; comparisons stay case-sensitive afterwards.
func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidIdentifier
	}
	return strings.ToLower(id), nil
}
