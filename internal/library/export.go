package library

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Track is one flat record in the library export: a single song with its
// grouping keys and counters.
type Track struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	Album       string   `json:"album"`
	Genre       string   `json:"genre"`
	Playlists   []string `json:"playlists,omitempty"`
	PlayCount   int64    `json:"playCount"`
	DurationSec float64  `json:"durationSec"`
	ArtworkRef  string   `json:"artworkRef,omitempty"`
}

// Duration returns the track length as a time.Duration.
func (t Track) Duration() time.Duration {
	return time.Duration(t.DurationSec * float64(time.Second))
}

// LoadExport reads a JSON library export: either a bare track array or an
// object with a "tracks" field. Tracks without an id are dropped; duplicate
// ids keep the first occurrence.
func LoadExport(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library export: %w", err)
	}

	var tracks []Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		var wrapper struct {
			Tracks []Track `json:"tracks"`
		}
		if wrapErr := json.Unmarshal(data, &wrapper); wrapErr != nil {
			return nil, fmt.Errorf("parse library export: %w", err)
		}
		tracks = wrapper.Tracks
	}

	seen := make(map[string]struct{}, len(tracks))
	cleaned := make([]Track, 0, len(tracks))
	for _, track := range tracks {
		track.ID = strings.TrimSpace(track.ID)
		if track.ID == "" {
			continue
		}
		if _, dup := seen[track.ID]; dup {
			continue
		}
		seen[track.ID] = struct{}{}
		cleaned = append(cleaned, track)
	}
	return cleaned, nil
}
