package ranking_test

import (
	"testing"
	"time"

	"faceoff/internal/library"
	"faceoff/internal/ranking"
)

func listFixture() []*ranking.Session {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id, title, sourceName string, age time.Duration) *ranking.Session {
		return &ranking.Session{
			ID:        id,
			Title:     title,
			Source:    library.SourceDescriptor{Kind: library.SourceAlbum, DisplayName: sourceName},
			UpdatedAt: base.Add(-age),
		}
	}
	return []*ranking.Session{
		mk("s1", "Road Trip Mix", "Summer Playlist", 48*time.Hour),
		mk("s2", "abbey road ranked", "Abbey Road", 1*time.Hour),
		mk("s3", "Best Jazz Albums", "Library", 24*time.Hour),
	}
}

func TestSortByRecency(t *testing.T) {
	sorted := ranking.SortSessions(listFixture(), ranking.SortRecency)
	if sorted[0].ID != "s2" || sorted[1].ID != "s3" || sorted[2].ID != "s1" {
		t.Fatalf("unexpected recency order: %s %s %s", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestSortAlphabeticalIgnoresCase(t *testing.T) {
	sorted := ranking.SortSessions(listFixture(), ranking.SortAlphabetical)
	if sorted[0].ID != "s2" || sorted[1].ID != "s3" || sorted[2].ID != "s1" {
		t.Fatalf("unexpected alphabetical order: %s %s %s", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestSortBySourceName(t *testing.T) {
	sorted := ranking.SortSessions(listFixture(), ranking.SortSource)
	if sorted[0].Source.DisplayName != "Abbey Road" {
		t.Fatalf("unexpected source order, first = %q", sorted[0].Source.DisplayName)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	sessions := listFixture()
	ranking.SortSessions(sessions, ranking.SortAlphabetical)
	if sessions[0].ID != "s1" {
		t.Fatal("input slice order must be preserved")
	}
}

func TestFilterMatchesTitleAndSource(t *testing.T) {
	sessions := listFixture()

	byTitle := ranking.FilterSessions(sessions, "JAZZ")
	if len(byTitle) != 1 || byTitle[0].ID != "s3" {
		t.Fatalf("unexpected title filter result: %v", byTitle)
	}

	bySource := ranking.FilterSessions(sessions, "playlist")
	if len(bySource) != 1 || bySource[0].ID != "s1" {
		t.Fatalf("unexpected source filter result: %v", bySource)
	}

	all := ranking.FilterSessions(sessions, "  ")
	if len(all) != 3 {
		t.Fatalf("blank filter must keep everything, got %d", len(all))
	}
}

func TestParseSortMode(t *testing.T) {
	if mode, ok := ranking.ParseSortMode(" Name "); !ok || mode != ranking.SortAlphabetical {
		t.Fatalf("unexpected parse result: %v %v", mode, ok)
	}
	if _, ok := ranking.ParseSortMode("color"); ok {
		t.Fatal("unknown sort mode must not parse")
	}
}
