// Package cli provides CLI infrastructure for todo.
package cli

import (
	"strings"

	"github.com/jacksmith/todo/internal/model"
)

// MatchID resolves a task reference against the known IDs.
//
// An exact match wins. Otherwise the reference must be a unique prefix or a
// unique suffix of one ID; listings show suffixes, so both are accepted.
// Matching is case-insensitive.
func MatchID(ref string, ids []string) (string, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return "", &ValidationError{Field: "task reference", Message: "must not be empty"}
	}

	for _, id := range ids {
		if strings.ToLower(id) == ref {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		lower := strings.ToLower(id)
		if strings.HasPrefix(lower, ref) || strings.HasSuffix(lower, ref) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Ref: ref}
	case 1:
		return matches[0], nil
	default:
		short := make([]string, len(matches))
		for i, m := range matches {
			short[i] = model.ShortID(m)
		}
		return "", &AmbiguousIDError{Ref: ref, Matches: short}
	}
}
