package duelui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"faceoff/internal/ranking"
)

// Run takes over the terminal for one session and blocks until the user
// leaves the screen. On exit the session is either kept resumable or deleted,
// depending on what the user chose.
func Run(ctx context.Context, controller *ranking.Controller, lookup ranking.Lookup) error {
	program := tea.NewProgram(New(controller, lookup), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("duel screen: %w", err)
	}

	model, ok := final.(Model)
	if !ok {
		return fmt.Errorf("duel screen: unexpected final model %T", final)
	}
	return controller.Abandon(ctx, !model.Discard())
}

func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
