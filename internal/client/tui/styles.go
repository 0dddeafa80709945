package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

// Color palette
var (
	colorGreen  = lipgloss.Color("40")  // resolved, success
	colorYellow = lipgloss.Color("220") // pending
	colorOrange = lipgloss.Color("208") // under review
	colorRed    = lipgloss.Color("196") // errors, bans
	colorCyan   = lipgloss.Color("39")  // selection, hints
	colorGray   = lipgloss.Color("244") // labels
	colorWhite  = lipgloss.Color("255") // values
	colorDim    = lipgloss.Color("240") // secondary text
)

// Text styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelStyle = lipgloss.NewStyle().
			Width(14).
			Foreground(colorGray)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	actionStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	bannedStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusPendingStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	statusUnderReviewStyle = lipgloss.NewStyle().Foreground(colorOrange)
	statusResolvedStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	statusDismissedStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// StatusText returns styled report status text.
func StatusText(status models.ReportStatus) string {
	switch status {
	case models.StatusPending:
		return statusPendingStyle.Render(string(status))
	case models.StatusUnderReview:
		return statusUnderReviewStyle.Render(string(status))
	case models.StatusResolved:
		return statusResolvedStyle.Render(string(status))
	case models.StatusDismissed:
		return statusDismissedStyle.Render(string(status))
	default:
		return valueStyle.Render(string(status))
	}
}
