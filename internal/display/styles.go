package display

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#C77700", Dark: "#FFB86C"}

	titleStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(colorDim)
	linkStyle    = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	starStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	noticeStyle  = lipgloss.NewStyle().Foreground(colorWarn)
	headingStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	youStyle     = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	botStyle     = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)
