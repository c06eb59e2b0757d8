package testsupport

import (
	"context"
	"fmt"
	"testing"

	"faceoff/internal/config"
	"faceoff/internal/library"
	"faceoff/internal/ranking"
)

// MustOpenStore opens a ranking.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *ranking.Store {
	t.Helper()

	store, err := ranking.Open(cfg, nil)
	if err != nil {
		t.Fatalf("ranking.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Items returns n deterministic song fixtures.
func Items(n int) []library.Item {
	items := make([]library.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, library.Item{
			ID:        fmt.Sprintf("song-%02d", i),
			Title:     fmt.Sprintf("Track %02d", i),
			Subtitle:  "Fixture Artist",
			PlayCount: int64(10 * (i + 1)),
		})
	}
	return items
}

// NewSession creates a persisted session over n fixture items.
func NewSession(t testing.TB, store *ranking.Store, n int) *ranking.Session {
	t.Helper()

	source := library.SourceDescriptor{Kind: library.SourceAlbum, ID: "album:fixture", DisplayName: "Fixture Album"}
	session, err := store.Create(context.Background(), "Fixture Session", library.ContentSong, source, Items(n), nil)
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return session
}
