package duelui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"faceoff/internal/ranking"
)

// Model is the bubbletea model for one active ranking session.
type Model struct {
	controller *ranking.Controller
	lookup     ranking.Lookup

	duel     ranking.Duel
	haveDuel bool

	notice  string // transient one-line feedback, cleared on the next key
	warning string // sticky persistence warning shown in the footer

	confirmDiscard bool
	discard        bool
	quitting       bool

	width  int
	height int
}

// New builds the initial model and selects the first duel when the session is
// still in progress.
func New(controller *ranking.Controller, lookup ranking.Lookup) Model {
	m := Model{controller: controller, lookup: lookup}
	m.refreshDuel()
	return m
}

// Discard reports whether the user chose to throw the session away on exit.
func (m Model) Discard() bool {
	return m.discard
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirmDiscard {
		m.confirmDiscard = false
		if key == "y" {
			m.discard = true
			m.quitting = true
			return m, tea.Quit
		}
		m.notice = "discard cancelled"
		return m, nil
	}

	if m.controller.State() == ranking.StateFinished {
		switch key {
		case "u":
			return m.applyUndo()
		case "x":
			m.confirmDiscard = true
			return m, nil
		default:
			m.quitting = true
			return m, tea.Quit
		}
	}

	m.notice = ""
	switch key {
	case "left", "1", "h":
		return m.applyDecision(ranking.OutcomeLeftWins)
	case "right", "2", "l":
		return m.applyDecision(ranking.OutcomeRightWins)
	case "t":
		return m.applyDecision(ranking.OutcomeTie)
	case "s":
		return m.applyDecision(ranking.OutcomeSkip)
	case "u":
		return m.applyUndo()
	case "x":
		m.confirmDiscard = true
		return m, nil
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) applyDecision(outcome ranking.Outcome) (tea.Model, tea.Cmd) {
	if !m.haveDuel {
		return m, nil
	}
	if err := m.controller.Decide(outcome); err != nil {
		switch {
		case errors.Is(err, ranking.ErrPersistence):
			m.warning = "progress could not be saved, retrying on the next decision"
		case errors.Is(err, ranking.ErrStaleReference):
			m.notice = "that matchup is no longer valid"
		default:
			m.notice = err.Error()
			return m, nil
		}
	} else {
		m.warning = ""
	}
	m.refreshDuel()
	return m, nil
}

func (m Model) applyUndo() (tea.Model, tea.Cmd) {
	duel, err := m.controller.Undo()
	if err != nil {
		switch {
		case errors.Is(err, ranking.ErrPersistence):
			m.warning = "progress could not be saved, retrying on the next decision"
		case errors.Is(err, ranking.ErrInvalidState):
			m.notice = "nothing to undo"
			return m, nil
		default:
			m.notice = err.Error()
			return m, nil
		}
	}
	m.duel = duel
	m.haveDuel = true
	m.notice = "rewound one duel"
	return m, nil
}

// refreshDuel pulls the pair to display, or marks the screen finished.
func (m *Model) refreshDuel() {
	if m.controller.State() == ranking.StateFinished {
		m.haveDuel = false
		return
	}
	duel, err := m.controller.NextDuel()
	if err != nil {
		m.haveDuel = false
		m.notice = err.Error()
		return
	}
	m.duel = duel
	m.haveDuel = true
}
