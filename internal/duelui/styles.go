package duelui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(34)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true)

	cardMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	versusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Padding(3, 2, 0, 2)

	progressFilledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212"))

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(4).
			Align(lipgloss.Right)
)
