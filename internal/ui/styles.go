package ui

import "github.com/charmbracelet/lipgloss"

// 配色随终端背景自动切换
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "125", Dark: "205"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "24", Dark: "33"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "22", Dark: "10"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "136", Dark: "11"}
	ColorError     = lipgloss.AdaptiveColor{Light: "160", Dark: "9"}
	ColorTextMuted = lipgloss.AdaptiveColor{Light: "240", Dark: "244"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "248", Dark: "238"}
)

var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleTabActive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorSecondary).
			Bold(true).
			Padding(0, 2)

	StyleTabInactive = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Padding(0, 2)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Width(16)

	StyleLabelFocused = StyleLabel.
				Foreground(ColorPrimary).
				Bold(true)

	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
