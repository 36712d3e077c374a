package wizardview

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Enabled
	ButtonDisabled                    // Grayed out
	ButtonFocused                     // Highlighted
)

// Button is one entry of a ButtonBar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar renders a centred row of buttons.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{buttons: buttons, width: 60}
}

// SetWidth updates the width the bar is centred in.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

var (
	buttonBase = lipgloss.NewStyle().
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1)

	buttonNormal = buttonBase.
			Foreground(colorText).
			Background(colorSurface0)

	buttonDisabled = buttonBase.
			Foreground(colorOverlay0).
			Background(colorMantle)

	buttonFocused = buttonBase.
			Foreground(colorBase).
			Background(colorSecondary).
			Bold(true)
)

// Render renders the buttons centred in the bar width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	var rendered []string
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, buttonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, buttonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, buttonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// navButtons returns the Back and Next (or Submit) pair for a step.
func navButtons(backLabel, nextLabel string, backEnabled bool) []Button {
	back := Button{Label: "← " + backLabel, State: ButtonNormal}
	if !backEnabled {
		back.State = ButtonDisabled
	}
	return []Button{back, {Label: nextLabel + " →", State: ButtonFocused}}
}
