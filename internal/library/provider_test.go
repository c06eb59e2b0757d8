package library_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"faceoff/internal/library"
)

func sampleTracks() []library.Track {
	return []library.Track{
		{ID: "t1", Title: "Come Together", Artist: "The Beatles", Album: "Abbey Road", Genre: "rock", PlayCount: 40, DurationSec: 260, Playlists: []string{"Favorites"}},
		{ID: "t2", Title: "Something", Artist: "The Beatles", Album: "Abbey Road", Genre: "rock", PlayCount: 25, DurationSec: 182},
		{ID: "t3", Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "jazz", PlayCount: 60, DurationSec: 545, Playlists: []string{"Favorites", "Late Night"}},
		{ID: "t4", Title: "Blue in Green", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz", PlayCount: 10, DurationSec: 337},
	}
}

func TestAlbumAggregationSumsPlaysAndDuration(t *testing.T) {
	p := library.NewFileProvider(sampleTracks())

	albums, err := p.Collection(library.SourceDescriptor{Kind: library.SourceLibrary}, library.ContentAlbum)
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("expected 2 albums, got %d", len(albums))
	}
	// Kind of Blue has 70 plays, Abbey Road 65; order is by plays descending.
	if albums[0].Title != "Kind of Blue" || albums[0].PlayCount != 70 {
		t.Fatalf("unexpected first album: %+v", albums[0])
	}
	if albums[1].Title != "Abbey Road" || albums[1].PlayCount != 65 {
		t.Fatalf("unexpected second album: %+v", albums[1])
	}
	wantDur := time.Duration(545+337) * time.Second
	if albums[0].Duration != wantDur {
		t.Fatalf("expected duration %v, got %v", wantDur, albums[0].Duration)
	}
}

func TestGenreGroupingIsCaseInsensitive(t *testing.T) {
	p := library.NewFileProvider(sampleTracks())

	genres, err := p.Collection(library.SourceDescriptor{Kind: library.SourceLibrary}, library.ContentGenre)
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if len(genres) != 2 {
		t.Fatalf("expected jazz+rock, got %d genres", len(genres))
	}
	if genres[0].Title != "Jazz" || genres[0].PlayCount != 70 {
		t.Fatalf("expected merged Jazz bucket first, got %+v", genres[0])
	}
}

func TestSongsInAlbum(t *testing.T) {
	p := library.NewFileProvider(sampleTracks())
	sources := p.Sources(library.SourceAlbum)
	if len(sources) != 2 {
		t.Fatalf("expected 2 album sources, got %d", len(sources))
	}

	var abbeyRoad library.SourceDescriptor
	for _, src := range sources {
		if src.DisplayName == "Abbey Road" {
			abbeyRoad = src
		}
	}
	if abbeyRoad.ID == "" {
		t.Fatal("Abbey Road source missing")
	}

	songs, err := p.Collection(abbeyRoad, library.ContentSong)
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	for _, song := range songs {
		if song.Subtitle != "The Beatles" {
			t.Fatalf("unexpected song subtitle: %+v", song)
		}
	}
}

func TestPlaylistMembership(t *testing.T) {
	p := library.NewFileProvider(sampleTracks())

	var favorites library.SourceDescriptor
	for _, src := range p.Sources(library.SourcePlaylist) {
		if src.DisplayName == "Favorites" {
			favorites = src
		}
	}
	if favorites.ID == "" {
		t.Fatal("Favorites playlist missing")
	}

	songs, err := p.Collection(favorites, library.ContentSong)
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 playlist songs, got %d", len(songs))
	}
}

func TestLookupCoversSongsAndAggregates(t *testing.T) {
	p := library.NewFileProvider(sampleTracks())

	if _, ok := p.Lookup("t3"); !ok {
		t.Fatal("expected song lookup to succeed")
	}
	albums, _ := p.Collection(library.SourceDescriptor{Kind: library.SourceLibrary}, library.ContentAlbum)
	if _, ok := p.Lookup(albums[0].ID); !ok {
		t.Fatal("expected album lookup to succeed")
	}
	if _, ok := p.Lookup("missing-id"); ok {
		t.Fatal("expected lookup miss for unknown id")
	}
}

func TestTopLimitsAndSorts(t *testing.T) {
	p := library.NewFileProvider(sampleTracks())

	top := p.Top(library.ContentSong, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 items, got %d", len(top))
	}
	if top[0].ID != "t3" || top[1].ID != "t1" {
		t.Fatalf("unexpected top order: %+v", top)
	}
}

func TestLoadExportDropsBlankAndDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	content := `[
		{"id": "a", "title": "One", "playCount": 1},
		{"id": "", "title": "Blank"},
		{"id": "a", "title": "Duplicate"},
		{"id": "b", "title": "Two", "playCount": 2}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}

	tracks, err := library.LoadExport(path)
	if err != nil {
		t.Fatalf("LoadExport failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].Title != "One" {
		t.Fatalf("duplicate id should keep first record, got %+v", tracks[0])
	}
}

func TestLoadExportWrapperObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	content := `{"tracks": [{"id": "x", "title": "Wrapped", "playCount": 5}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}

	tracks, err := library.LoadExport(path)
	if err != nil {
		t.Fatalf("LoadExport failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].ID != "x" {
		t.Fatalf("unexpected tracks: %+v", tracks)
	}
}
