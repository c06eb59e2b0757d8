package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"faceoff/internal/library"
	"faceoff/internal/ranking"
)

// resolveSession finds a session by full id or unique id prefix.
func resolveSession(ctx context.Context, store *ranking.Store, arg string) (*ranking.Session, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("session id is required")
	}

	session, err := store.GetByID(ctx, arg)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	sessions, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*ranking.Session
	for _, candidate := range sessions {
		if strings.HasPrefix(candidate.ID, arg) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("session id prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}

// resolveSource maps a kind and display name to a descriptor known to the
// provider. The whole-library pseudo source needs no name.
func resolveSource(provider *library.FileProvider, kindArg, name string) (library.SourceDescriptor, error) {
	kind, ok := library.ParseSourceKind(kindArg)
	if !ok {
		return library.SourceDescriptor{}, fmt.Errorf("unknown source kind %q (album, artist, genre, playlist, library)", kindArg)
	}
	if kind == library.SourceLibrary {
		return library.SourceDescriptor{Kind: kind, ID: "library", DisplayName: "Library"}, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return library.SourceDescriptor{}, fmt.Errorf("source name is required for kind %s", kind)
	}
	for _, src := range provider.Sources(kind) {
		if strings.EqualFold(src.DisplayName, name) {
			return src, nil
		}
	}
	return library.SourceDescriptor{}, fmt.Errorf("no %s named %q in the library (try `faceoff sources %s`)", kind, name, kind)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusLabel(session *ranking.Session) string {
	if session.IsComplete {
		return "complete"
	}
	return "in progress"
}

func describeProgress(session *ranking.Session) string {
	if session.IsComplete {
		return fmt.Sprintf("%d duels", session.BattleIndex)
	}
	progress := ranking.EstimateProgress(len(session.CandidateIDs), session.BattleIndex)
	return fmt.Sprintf("%d/~%d (%.0f%%)", progress.Battles, progress.Estimated, progress.Fraction*100)
}

func formatClock(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatRelative(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	elapsed := time.Since(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return t.Local().Format("2006-01-02")
	}
}
