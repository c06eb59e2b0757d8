package duelui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"faceoff/internal/library"
	"faceoff/internal/ranking"
)

type nopPersister struct{}

func (nopPersister) SaveAsync(*ranking.Session) error             { return nil }
func (nopPersister) Flush() error                                 { return nil }
func (nopPersister) Delete(context.Context, string) (bool, error) { return true, nil }

func newTestModel(t *testing.T, candidates ...string) Model {
	t.Helper()
	session := &ranking.Session{
		ID:           "test-session",
		Title:        "Test Ranking",
		CandidateIDs: candidates,
	}
	controller := ranking.NewController(session, nopPersister{}, nil)
	lookup := func(id string) (library.Item, bool) {
		return library.Item{ID: id, Title: id, PlayCount: 1, Duration: time.Minute}, true
	}
	return New(controller, lookup)
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDecisionKeyConsumesDuel(t *testing.T) {
	m := newTestModel(t, "a", "b", "c")
	if !m.haveDuel {
		t.Fatal("expected an initial duel")
	}

	m = pressKey(t, m, runeKey('1'))
	session := m.controller.Session()
	if len(session.History) != 1 {
		t.Fatalf("expected one recorded decision, got %d", len(session.History))
	}
	if len(session.RankedIDs) != 1 {
		t.Fatalf("expected one ranked id, got %v", session.RankedIDs)
	}
}

func TestUndoKeyRestoresSameDuel(t *testing.T) {
	m := newTestModel(t, "a", "b", "c")
	first := m.duel

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = pressKey(t, m, runeKey('u'))

	if m.duel != first {
		t.Fatalf("undo must re-serve the same duel: %+v != %+v", m.duel, first)
	}
	if len(m.controller.Session().History) != 0 {
		t.Fatal("undo must pop the history entry")
	}
}

func TestUndoWithoutHistoryShowsNotice(t *testing.T) {
	m := newTestModel(t, "a", "b")
	m = pressKey(t, m, runeKey('u'))
	if m.notice != "nothing to undo" {
		t.Fatalf("unexpected notice %q", m.notice)
	}
}

func TestDiscardRequiresConfirmation(t *testing.T) {
	m := newTestModel(t, "a", "b")

	m = pressKey(t, m, runeKey('x'))
	if !m.confirmDiscard {
		t.Fatal("expected confirmation prompt")
	}
	m = pressKey(t, m, runeKey('n'))
	if m.Discard() || m.quitting {
		t.Fatal("any key but y must cancel the discard")
	}

	m = pressKey(t, m, runeKey('x'))
	m = pressKey(t, m, runeKey('y'))
	if !m.Discard() || !m.quitting {
		t.Fatal("y must confirm the discard and quit")
	}
}

func TestQuitKeepsProgress(t *testing.T) {
	m := newTestModel(t, "a", "b", "c")
	m = pressKey(t, m, runeKey('q'))
	if m.Discard() {
		t.Fatal("plain quit must keep the session")
	}
	if !m.quitting {
		t.Fatal("expected quitting state")
	}
}

func TestFinishedSessionShowsRanking(t *testing.T) {
	m := newTestModel(t, "solo")
	if m.controller.State() != ranking.StateFinished {
		t.Fatal("single candidate must complete immediately")
	}
	view := m.View()
	if view == "" {
		t.Fatal("expected completion view")
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(194 * time.Second); got != "3:14" {
		t.Fatalf("unexpected short format %q", got)
	}
	if got := formatDuration(3*time.Hour + 5*time.Second); got != "3:00:05" {
		t.Fatalf("unexpected long format %q", got)
	}
}

func TestRenderProgressBarWidth(t *testing.T) {
	bar := renderProgressBar(0.5, 10)
	if got := lipgloss.Width(bar); got != 10 {
		t.Fatalf("unexpected bar width %d", got)
	}
}
