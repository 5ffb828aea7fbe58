// Package search implements hybrid note search: short queries are answered
// instantly from the already-loaded note set, longer ones are delegated to
// the full-text backend with a local fallback.
package search

import (
	"strings"

	"github.com/dkellner/daybook/internal/domain"
)

// ServerModeMinQueryLen is the trimmed query length at which search switches
// from the local substring filter to the full-text backend.
const ServerModeMinQueryLen = 5

// Mode identifies which search strategy applies to a query.
type Mode string

const (
	// ModeNone means an empty query: the full note list, no filtering.
	ModeNone Mode = "none"
	// ModeClient means a substring filter over the loaded note set.
	ModeClient Mode = "client"
	// ModeServer means delegation to the full-text backend.
	ModeServer Mode = "server"
)

// ModeFor selects the strategy for a raw query string.
func ModeFor(query string) Mode {
	trimmed := strings.TrimSpace(query)
	switch {
	case trimmed == "":
		return ModeNone
	case len([]rune(trimmed)) < ServerModeMinQueryLen:
		return ModeClient
	default:
		return ModeServer
	}
}

// Filter returns the notes whose content or literal date string contains the
// trimmed query, case-insensitively. Input order is preserved, so a list in
// date-descending order stays that way.
func Filter(notes []domain.Note, query string) []domain.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}

	matched := []domain.Note{}
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Content), q) || strings.Contains(note.Date, q) {
			matched = append(matched, note)
		}
	}
	return matched
}
