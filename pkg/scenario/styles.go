package scenario

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	salmonPink = lipgloss.Color("#FFB3BA")
	mintGreen  = lipgloss.Color("#A8E6CF")
	amber      = lipgloss.Color("#FFD580")
	mutedGray  = lipgloss.Color("#6B7280")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(salmonPink)

	passedStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	failedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(salmonPink)

	skippedStyle = lipgloss.NewStyle().
			Foreground(amber)

	detailStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			PaddingLeft(4)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedGray).
			Padding(0, 1)
)

func statusStyle(s Status) lipgloss.Style {
	switch s {
	case StatusPassed:
		return passedStyle
	case StatusFailed:
		return failedStyle
	default:
		return skippedStyle
	}
}

func statusIcon(s Status) string {
	switch s {
	case StatusPassed:
		return "✓"
	case StatusFailed:
		return "✗"
	default:
		return "-"
	}
}
