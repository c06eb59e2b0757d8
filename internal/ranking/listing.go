package ranking

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode orders the session list for presentation.
type SortMode string

const (
	SortRecency      SortMode = "recency"
	SortAlphabetical SortMode = "name"
	SortSource       SortMode = "source"
)

// ParseSortMode converts a string into a known SortMode.
func ParseSortMode(value string) (SortMode, bool) {
	switch SortMode(strings.ToLower(strings.TrimSpace(value))) {
	case SortRecency:
		return SortRecency, true
	case SortAlphabetical:
		return SortAlphabetical, true
	case SortSource:
		return SortSource, true
	default:
		return "", false
	}
}

var listCollator = collate.New(language.English, collate.IgnoreCase)

// FilterSessions keeps sessions whose title or source name contains the
// query, case-insensitively. An empty query keeps everything. Pure; the input
// slice is not modified.
func FilterSessions(sessions []*Session, query string) []*Session {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]*Session(nil), sessions...)
	}
	filtered := make([]*Session, 0, len(sessions))
	for _, session := range sessions {
		if strings.Contains(strings.ToLower(session.Title), query) ||
			strings.Contains(strings.ToLower(session.Source.DisplayName), query) {
			filtered = append(filtered, session)
		}
	}
	return filtered
}

// SortSessions returns a new slice ordered by the given mode. Recency puts
// the most recently touched session first; the string modes collate
// case-insensitively and break ties by recency.
func SortSessions(sessions []*Session, mode SortMode) []*Session {
	sorted := append([]*Session(nil), sessions...)
	switch mode {
	case SortAlphabetical:
		sort.SliceStable(sorted, func(i, j int) bool {
			if cmp := listCollator.CompareString(sorted[i].Title, sorted[j].Title); cmp != 0 {
				return cmp < 0
			}
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		})
	case SortSource:
		sort.SliceStable(sorted, func(i, j int) bool {
			if cmp := listCollator.CompareString(sorted[i].Source.DisplayName, sorted[j].Source.DisplayName); cmp != 0 {
				return cmp < 0
			}
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		})
	}
	return sorted
}
