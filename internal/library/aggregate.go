package library

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var genreCaser = cases.Title(language.English)

// itemBuilder accumulates counters for one aggregate while tracks stream by.
// Builders are mutable only inside aggregate; freeze produces the immutable
// result slice.
type itemBuilder struct {
	id         string
	title      string
	subtitle   string
	artworkRef string
	playCount  int64
	duration   int64 // nanoseconds
	tracks     int
}

type trackKey struct {
	id       string
	title    string
	subtitle string
}

// aggregate groups tracks by the keys keyFn yields (a track may belong to
// several playlists, hence the slice) and sums play counts and durations.
func aggregate(tracks []Track, keyFn func(Track) []trackKey) []Item {
	builders := make(map[string]*itemBuilder)
	order := make([]string, 0)

	for _, track := range tracks {
		for _, key := range keyFn(track) {
			if key.id == "" {
				continue
			}
			builder, ok := builders[key.id]
			if !ok {
				builder = &itemBuilder{id: key.id, title: key.title, subtitle: key.subtitle}
				builders[key.id] = builder
				order = append(order, key.id)
			}
			builder.playCount += track.PlayCount
			builder.duration += int64(track.Duration())
			builder.tracks++
			if builder.artworkRef == "" && track.ArtworkRef != "" {
				builder.artworkRef = track.ArtworkRef
			}
		}
	}

	items := make([]Item, 0, len(order))
	for _, id := range order {
		items = append(items, builders[id].freeze())
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PlayCount != items[j].PlayCount {
			return items[i].PlayCount > items[j].PlayCount
		}
		return items[i].Title < items[j].Title
	})
	return items
}

func durationFromNanos(n int64) time.Duration {
	return time.Duration(n)
}

func (b *itemBuilder) freeze() Item {
	return Item{
		ID:         b.id,
		Title:      b.title,
		Subtitle:   b.subtitle,
		ArtworkRef: b.artworkRef,
		PlayCount:  b.playCount,
		Duration:   durationFromNanos(b.duration),
	}
}

func albumKeys(track Track) []trackKey {
	name := strings.TrimSpace(track.Album)
	if name == "" {
		return nil
	}
	return []trackKey{{
		id:       aggregateID(SourceAlbum, name),
		title:    name,
		subtitle: strings.TrimSpace(track.Artist),
	}}
}

func artistKeys(track Track) []trackKey {
	name := strings.TrimSpace(track.Artist)
	if name == "" {
		return nil
	}
	return []trackKey{{id: aggregateID(SourceArtist, name), title: name}}
}

func genreKeys(track Track) []trackKey {
	name := strings.TrimSpace(track.Genre)
	if name == "" {
		return nil
	}
	display := genreCaser.String(strings.ToLower(name))
	return []trackKey{{id: aggregateID(SourceGenre, name), title: display}}
}

func playlistKeys(track Track) []trackKey {
	keys := make([]trackKey, 0, len(track.Playlists))
	for _, playlist := range track.Playlists {
		name := strings.TrimSpace(playlist)
		if name == "" {
			continue
		}
		keys = append(keys, trackKey{id: aggregateID(SourcePlaylist, name), title: name})
	}
	return keys
}

// aggregateID derives a stable opaque id for an aggregate unit. Grouping is
// case-insensitive so "Rock" and "rock" land in the same bucket.
func aggregateID(kind SourceKind, name string) string {
	return string(kind) + ":" + strings.ToLower(strings.TrimSpace(name))
}
