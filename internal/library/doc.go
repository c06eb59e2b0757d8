// Package library loads a flat music-library export and serves rankable
// collections from it.
//
// A Track is one exported song record. Aggregates (albums, artists, genres,
// playlists) are built once at provider construction by accumulating play
// counts and durations into builders and freezing them into immutable, sorted
// item slices. Item ids are opaque strings; aggregate ids are derived from
// the lowercased group name so grouping is case-insensitive.
//
// The ranking core depends only on the Provider interface and never reads or
// writes library fields directly.
package library
