package wizardview

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/i18n"
)

// fieldInput edits one field. Text and number fields use a textinput;
// choice, multi-select and yes/no fields use an option cursor.
type fieldInput struct {
	field  form.Field
	input  textinput.Model
	cursor int
	// parseErr holds a local error for text that does not parse as the
	// field's kind. The wizard keeps its previous value meanwhile.
	parseErr string
}

var inputStyles = textinput.Styles{
	Focused: textinput.StyleState{
		Text:        lipgloss.NewStyle().Foreground(colorText),
		Placeholder: lipgloss.NewStyle().Foreground(colorSubtext0),
		Prompt:      lipgloss.NewStyle().Foreground(colorSecondary),
	},
	Blurred: textinput.StyleState{
		Text:        lipgloss.NewStyle().Foreground(colorSubtext0),
		Placeholder: lipgloss.NewStyle().Foreground(colorSubtext0),
		Prompt:      lipgloss.NewStyle().Foreground(colorOverlay0),
	},
	Cursor: textinput.CursorStyle{
		Color: colorPrimary,
		Shape: tea.CursorBar,
		Blink: true,
	},
}

func newFieldInput(f form.Field, current form.Value) *fieldInput {
	fi := &fieldInput{field: f}
	if fi.usesText() {
		fi.input = textinput.New()
		fi.input.Prompt = "› "
		fi.input.SetStyles(inputStyles)
		fi.input.SetWidth(50)
		if f.Kind == form.KindInt {
			fi.input.Placeholder = "0"
		}
		fi.input.SetValue(textOf(current))
	}
	return fi
}

// usesText reports whether the field is edited as free text.
func (fi *fieldInput) usesText() bool {
	switch fi.field.Kind {
	case form.KindString:
		return len(fi.field.Options) == 0
	case form.KindInt:
		return true
	default:
		return false
	}
}

// options returns the values the cursor moves over.
func (fi *fieldInput) options() []string {
	if fi.field.Kind == form.KindBool {
		return []string{"yes", "no"}
	}
	return fi.field.Options
}

func (fi *fieldInput) focus() tea.Cmd {
	if fi.usesText() {
		return fi.input.Focus()
	}
	return nil
}

func (fi *fieldInput) blur() {
	if fi.usesText() {
		fi.input.Blur()
	}
}

func (fi *fieldInput) setWidth(w int) {
	if fi.usesText() {
		fi.input.SetWidth(w)
	}
}

// moveCursor moves the option cursor by delta, clamped to the options.
func (fi *fieldInput) moveCursor(delta int) {
	n := len(fi.options())
	if n == 0 {
		return
	}
	fi.cursor = min(max(fi.cursor+delta, 0), n-1)
}

// choose returns the value produced by pressing space on the cursor.
func (fi *fieldInput) choose(current form.Value) form.Value {
	opts := fi.options()
	if len(opts) == 0 {
		return current
	}
	opt := opts[fi.cursor]
	switch fi.field.Kind {
	case form.KindBool:
		return form.Bool(opt == "yes")
	case form.KindStrings:
		return current.Toggle(opt)
	default:
		return form.String(opt)
	}
}

// sync refreshes the text input when the wizard value changed underneath
// it, e.g. after a normalizer clamped it.
func (fi *fieldInput) sync(current form.Value) {
	if !fi.usesText() {
		return
	}
	if parsed, err := form.Parse(fi.field.Kind, fi.input.Value()); err == nil && parsed.Equal(current) {
		return
	}
	fi.input.SetValue(textOf(current))
	fi.parseErr = ""
}

func textOf(v form.Value) string {
	if v.Kind() == form.KindInt && v.IntVal() == 0 {
		return ""
	}
	return v.Display()
}

// view renders the label, the editor and the error line.
func (fi *fieldInput) view(current form.Value, errMsg string, focused bool, loc *i18n.Localizer) string {
	var b strings.Builder

	label := loc.Text(features.LabelKey(fi.field), fi.field.Label)
	if focused {
		b.WriteString(styleLabelFocused.Render(label))
	} else {
		b.WriteString(styleLabel.Render(label))
	}
	b.WriteString("\n")

	if fi.usesText() {
		b.WriteString(fi.input.View())
		if fi.field.Multiline {
			b.WriteString(" " + styleMuted.Render("(ctrl+e)"))
		}
	} else {
		b.WriteString(fi.renderOptions(current, focused, loc))
	}
	b.WriteString("\n")

	if fi.parseErr != "" {
		errMsg = fi.parseErr
	}
	if errMsg != "" {
		b.WriteString(styleError.Render("✗ " + errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (fi *fieldInput) renderOptions(current form.Value, focused bool, loc *i18n.Localizer) string {
	opts := fi.options()
	parts := make([]string, 0, len(opts))
	for i, opt := range opts {
		var selected bool
		var label string
		switch fi.field.Kind {
		case form.KindBool:
			selected = current.BoolVal() == (opt == "yes")
			label = loc.Text("ui."+opt, opt)
		case form.KindStrings:
			selected = current.Contains(opt)
			label = loc.Text(features.OptionKey(opt), opt)
		default:
			selected = current.Str() == opt
			label = loc.Text(features.OptionKey(opt), opt)
		}

		mark := "○ "
		if fi.field.Kind == form.KindStrings {
			mark = "[ ] "
			if selected {
				mark = "[x] "
			}
		} else if selected {
			mark = "● "
		}

		text := mark + label
		switch {
		case focused && i == fi.cursor:
			parts = append(parts, styleOptionCursor.Render(text))
		case selected:
			parts = append(parts, styleOptionSelected.Render(text))
		default:
			parts = append(parts, styleOption.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}
