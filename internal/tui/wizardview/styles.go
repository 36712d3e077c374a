package wizardview

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/augur/internal/tui/theme"
)

var palette = theme.NewCatppuccinMocha()

var (
	colorPrimary   = lipgloss.Color(palette.Primary)
	colorSecondary = lipgloss.Color(palette.Secondary)
	colorText      = lipgloss.Color(palette.FgBright)
	colorBase      = lipgloss.Color(palette.BgBase)
	colorMantle    = lipgloss.Color(palette.BgMantle)
	colorSurface0  = lipgloss.Color(palette.BgSurface0)
	colorSurface2  = lipgloss.Color(palette.BgSurface2)
	colorOverlay0  = lipgloss.Color(palette.FgMuted)
	colorSubtext0  = lipgloss.Color(palette.FgSubtle)
	colorSubtext1  = lipgloss.Color(palette.FgBase)
	colorRed       = lipgloss.Color(palette.Error)
	colorGreen     = lipgloss.Color(palette.Success)
)

var (
	styleModalContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSecondary).
				Background(colorBase).
				Padding(1, 2)

	styleModalTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleStepTitle = lipgloss.NewStyle().
			Foreground(colorSubtext1)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleLabelFocused = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleOption = lipgloss.NewStyle().
			Foreground(colorText)

	styleOptionCursor = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorSecondary)

	styleOptionSelected = lipgloss.NewStyle().
				Foreground(colorGreen)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorOverlay0)
)

// Hint bar styles
var (
	styleHintKey = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Bold(true)

	styleHintDesc = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleHintSeparator = lipgloss.NewStyle().
				Foreground(colorSurface2)
)

// renderHintBar renders key-description pairs.
// Example: renderHintBar("tab", "next field", "esc", "back")
// Returns: "tab next field • esc back"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, styleHintKey.Render(pairs[i])+" "+styleHintDesc.Render(pairs[i+1]))
	}
	return strings.Join(parts, " "+styleHintSeparator.Render("•")+" ")
}
