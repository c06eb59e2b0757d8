package ranking

import (
	"time"

	"faceoff/internal/library"
)

// Lookup resolves an item id to display metadata, reporting misses.
type Lookup func(id string) (library.Item, bool)

// Resolve maps a session's ranked ids back into ordered items. Ids the
// provider can no longer resolve (e.g. a song removed from the device after
// ranking) are skipped, never errored on; rank order is preserved.
func Resolve(session *Session, lookup Lookup) []library.Item {
	items := make([]library.Item, 0, len(session.RankedIDs))
	for _, id := range session.RankedIDs {
		if item, ok := lookup(id); ok {
			items = append(items, item)
		}
	}
	return items
}

// RankingStats aggregates read-only statistics over resolved items.
type RankingStats struct {
	Resolved      int
	TotalPlays    int64
	TotalDuration time.Duration
}

// Fold computes aggregate statistics by walking the resolved list once.
func Fold(items []library.Item) RankingStats {
	stats := RankingStats{Resolved: len(items)}
	for _, item := range items {
		stats.TotalPlays += item.PlayCount
		stats.TotalDuration += item.Duration
	}
	return stats
}
