package console

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("69")
	muted  = lipgloss.Color("243")
	danger = lipgloss.Color("203")
	green  = lipgloss.Color("78")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	crumbStyle    = lipgloss.NewStyle().Foreground(muted)
	helpStyle     = lipgloss.NewStyle().Foreground(muted)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	selectedStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	focusStyle    = lipgloss.NewStyle().Underline(true)

	noticeStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(green),
		"info":    lipgloss.NewStyle().Foreground(accent),
		"error":   lipgloss.NewStyle().Foreground(danger),
	}
)
