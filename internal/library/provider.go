package library

import (
	"fmt"
	"sort"
	"strings"
)

// Provider supplies rankable collections and resolves item ids back to
// display metadata. The ranking core only ever sees this interface.
type Provider interface {
	// Collection returns the candidate items for a source and content type.
	Collection(src SourceDescriptor, contentType ContentType) ([]Item, error)
	// Lookup resolves an item id to its cached metadata.
	Lookup(id string) (Item, bool)
	// Sources lists the known collections of a kind, sorted by play count.
	Sources(kind SourceKind) []SourceDescriptor
}

// FileProvider serves a loaded library export. All aggregation happens once
// at construction; the provider is immutable and read-only afterward.
type FileProvider struct {
	songs     []Item
	albums    []Item
	artists   []Item
	genres    []Item
	playlists []Item
	byID      map[string]Item
	tracks    []Track
}

// NewFileProvider builds a provider over export tracks.
func NewFileProvider(tracks []Track) *FileProvider {
	songs := make([]Item, 0, len(tracks))
	for _, track := range tracks {
		songs = append(songs, Item{
			ID:         track.ID,
			Title:      track.Title,
			Subtitle:   strings.TrimSpace(track.Artist),
			ArtworkRef: track.ArtworkRef,
			PlayCount:  track.PlayCount,
			Duration:   track.Duration(),
		})
	}

	p := &FileProvider{
		songs:     songs,
		albums:    aggregate(tracks, albumKeys),
		artists:   aggregate(tracks, artistKeys),
		genres:    aggregate(tracks, genreKeys),
		playlists: aggregate(tracks, playlistKeys),
		tracks:    tracks,
	}

	p.byID = make(map[string]Item, len(songs)+len(p.albums)+len(p.artists)+len(p.genres)+len(p.playlists))
	for _, group := range [][]Item{songs, p.albums, p.artists, p.genres, p.playlists} {
		for _, item := range group {
			if _, exists := p.byID[item.ID]; !exists {
				p.byID[item.ID] = item
			}
		}
	}
	return p
}

// LoadFileProvider reads an export file and builds a provider over it.
func LoadFileProvider(path string) (*FileProvider, error) {
	tracks, err := LoadExport(path)
	if err != nil {
		return nil, err
	}
	return NewFileProvider(tracks), nil
}

// Collection implements Provider.
func (p *FileProvider) Collection(src SourceDescriptor, contentType ContentType) ([]Item, error) {
	switch contentType {
	case ContentSong:
		return p.songsIn(src)
	case ContentAlbum, ContentArtist, ContentGenre, ContentPlaylist:
		if src.Kind != SourceLibrary {
			return nil, fmt.Errorf("content type %s is only rankable across the whole library", contentType)
		}
		return copyItems(p.aggregates(contentType)), nil
	default:
		return nil, fmt.Errorf("unknown content type %q", contentType)
	}
}

// Lookup implements Provider.
func (p *FileProvider) Lookup(id string) (Item, bool) {
	item, ok := p.byID[id]
	return item, ok
}

// Sources implements Provider.
func (p *FileProvider) Sources(kind SourceKind) []SourceDescriptor {
	var items []Item
	switch kind {
	case SourceAlbum:
		items = p.albums
	case SourceArtist:
		items = p.artists
	case SourceGenre:
		items = p.genres
	case SourcePlaylist:
		items = p.playlists
	case SourceLibrary:
		return []SourceDescriptor{{Kind: SourceLibrary, ID: "library", DisplayName: "Library"}}
	default:
		return nil
	}

	sources := make([]SourceDescriptor, 0, len(items))
	for _, item := range items {
		sources = append(sources, SourceDescriptor{Kind: kind, ID: item.ID, DisplayName: item.Title})
	}
	return sources
}

// Top returns the aggregated items of a content type ordered by play count,
// limited to n entries (n <= 0 means all).
func (p *FileProvider) Top(contentType ContentType, n int) []Item {
	var items []Item
	if contentType == ContentSong {
		items = copyItems(p.songs)
		sortByPlays(items)
	} else {
		items = copyItems(p.aggregates(contentType))
	}
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}

func (p *FileProvider) aggregates(contentType ContentType) []Item {
	switch contentType {
	case ContentAlbum:
		return p.albums
	case ContentArtist:
		return p.artists
	case ContentGenre:
		return p.genres
	case ContentPlaylist:
		return p.playlists
	default:
		return nil
	}
}

func (p *FileProvider) songsIn(src SourceDescriptor) ([]Item, error) {
	switch src.Kind {
	case SourceLibrary:
		return copyItems(p.songs), nil
	case SourceAlbum, SourceArtist, SourceGenre, SourcePlaylist:
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}

	var items []Item
	for i, track := range p.tracks {
		if trackMatchesSource(track, src) {
			items = append(items, p.songs[i])
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no songs found in %s %q", src.Kind, src.DisplayName)
	}
	return items, nil
}

func trackMatchesSource(track Track, src SourceDescriptor) bool {
	switch src.Kind {
	case SourceAlbum:
		return aggregateID(SourceAlbum, track.Album) == src.ID
	case SourceArtist:
		return aggregateID(SourceArtist, track.Artist) == src.ID
	case SourceGenre:
		return aggregateID(SourceGenre, track.Genre) == src.ID
	case SourcePlaylist:
		for _, playlist := range track.Playlists {
			if aggregateID(SourcePlaylist, playlist) == src.ID {
				return true
			}
		}
	}
	return false
}

func copyItems(items []Item) []Item {
	cp := make([]Item, len(items))
	copy(cp, items)
	return cp
}

func sortByPlays(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PlayCount != items[j].PlayCount {
			return items[i].PlayCount > items[j].PlayCount
		}
		return items[i].Title < items[j].Title
	})
}
