package library

import (
	"strings"
	"time"
)

// ContentType identifies which universe of rankable items a collection draws
// from.
type ContentType string

const (
	ContentSong     ContentType = "song"
	ContentAlbum    ContentType = "album"
	ContentArtist   ContentType = "artist"
	ContentGenre    ContentType = "genre"
	ContentPlaylist ContentType = "playlist"
)

var allContentTypes = []ContentType{
	ContentSong,
	ContentAlbum,
	ContentArtist,
	ContentGenre,
	ContentPlaylist,
}

var contentTypeSet = func() map[ContentType]struct{} {
	set := make(map[ContentType]struct{}, len(allContentTypes))
	for _, ct := range allContentTypes {
		set[ct] = struct{}{}
	}
	return set
}()

// AllContentTypes returns the ordered list of known content types.
func AllContentTypes() []ContentType {
	cp := make([]ContentType, len(allContentTypes))
	copy(cp, allContentTypes)
	return cp
}

// ParseContentType converts a string into a known ContentType.
func ParseContentType(value string) (ContentType, bool) {
	normalized := ContentType(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := contentTypeSet[normalized]
	return normalized, ok
}

// SourceKind identifies the collection a candidate set was drawn from.
type SourceKind string

const (
	SourceAlbum    SourceKind = "album"
	SourceArtist   SourceKind = "artist"
	SourceGenre    SourceKind = "genre"
	SourcePlaylist SourceKind = "playlist"
	// SourceLibrary covers rankings over the whole library, e.g. all albums.
	SourceLibrary SourceKind = "library"
)

// ParseSourceKind converts a string into a known SourceKind.
func ParseSourceKind(value string) (SourceKind, bool) {
	switch SourceKind(strings.ToLower(strings.TrimSpace(value))) {
	case SourceAlbum:
		return SourceAlbum, true
	case SourceArtist:
		return SourceArtist, true
	case SourceGenre:
		return SourceGenre, true
	case SourcePlaylist:
		return SourcePlaylist, true
	case SourceLibrary:
		return SourceLibrary, true
	default:
		return "", false
	}
}

// SourceDescriptor names the collection a session ranks.
type SourceDescriptor struct {
	Kind        SourceKind `json:"kind"`
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
}

// Item is one rankable unit: a song or an aggregate (album, artist, genre,
// playlist). Identity, equality, and hashing are by ID alone; ids are opaque
// provider-defined strings and are never parsed numerically.
type Item struct {
	ID         string
	Title      string
	Subtitle   string
	ArtworkRef string
	PlayCount  int64
	Duration   time.Duration
}
