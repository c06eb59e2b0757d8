package duelui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"faceoff/internal/library"
	"faceoff/internal/ranking"
)

const progressWidth = 40

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.confirmDiscard {
		return m.viewConfirmDiscard()
	}
	if m.controller.State() == ranking.StateFinished {
		return m.viewFinished()
	}
	return m.viewDuel()
}

func (m Model) viewDuel() string {
	session := m.controller.Session()

	var b strings.Builder
	b.WriteString(headerStyle.Render(session.Title))
	b.WriteString("\n\n")

	if m.haveDuel {
		left := renderCard(m.lookup, m.duel.LeftID)
		right := renderCard(m.lookup, m.duel.RightID)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, versusStyle.Render("vs"), right))
		b.WriteString("\n\n")
	}

	progress := m.controller.Progress()
	b.WriteString(renderProgressBar(progress.Fraction, progressWidth))
	b.WriteString(cardMetaStyle.Render(fmt.Sprintf("  duel %d of ~%d", progress.Battles+1, progress.Estimated)))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.warning != "" {
		b.WriteString(warningStyle.Render("! " + m.warning))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("←/1 left wins • →/2 right wins • t tie • s skip • u undo • q save & quit • x discard"))
	return b.String()
}

func (m Model) viewFinished() string {
	session := m.controller.Session()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Ranking complete: " + session.Title))
	b.WriteString("\n\n")

	items := ranking.Resolve(session, m.lookup)
	limit := min(len(items), 10)
	for i := 0; i < limit; i++ {
		b.WriteString(rankStyle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(cardTitleStyle.Render(items[i].Title))
		if items[i].Subtitle != "" {
			b.WriteString(cardMetaStyle.Render("  " + items[i].Subtitle))
		}
		b.WriteString("\n")
	}
	if len(items) > limit {
		b.WriteString(cardMetaStyle.Render(fmt.Sprintf("     … and %d more\n", len(items)-limit)))
	}

	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(warningStyle.Render("! " + m.warning))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("u undo last duel • x discard • any other key to exit"))
	return b.String()
}

func (m Model) viewConfirmDiscard() string {
	var b strings.Builder
	b.WriteString(warningStyle.Render("Discard this session and all its progress?"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("y discard • any other key to keep playing"))
	return b.String()
}

func renderCard(lookup ranking.Lookup, id string) string {
	item, ok := lookup(id)
	if !ok {
		item = library.Item{Title: id, Subtitle: "(not in library)"}
	}

	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(item.Title))
	b.WriteString("\n")
	if item.Subtitle != "" {
		b.WriteString(cardMetaStyle.Render(item.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(cardMetaStyle.Render(fmt.Sprintf("%d plays", item.PlayCount)))
	if item.Duration > 0 {
		b.WriteString(cardMetaStyle.Render("  " + formatDuration(item.Duration)))
	}
	return cardStyle.Render(b.String())
}

func renderProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return progressFilledStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
