package wizardview

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/i18n"
	"github.com/stretchr/testify/require"
)

var errEditor = errors.New("editor exited with status 1")

func newModel(t *testing.T, def *form.Definition, locale string) *Model {
	t.Helper()
	loc := i18n.Default().Localizer(locale)
	w, err := form.New(def, form.WithTranslator(loc))
	require.NoError(t, err)
	m := New(w, loc)
	m.Init()
	return m
}

func tarotModel(t *testing.T) *Model {
	t.Helper()
	def, ok := features.Lookup("tarot")
	require.True(t, ok)
	return newModel(t, def, "en")
}

func press(m *Model, code rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func screen(m *Model) string {
	return ansi.Strip(m.render())
}

func TestModel_InitialRender(t *testing.T) {
	m := tarotModel(t)

	out := screen(m)
	require.Contains(t, out, "Tarot")
	require.Contains(t, out, "Step 1 of 2: Your question")
	require.Contains(t, out, "Question")
	require.Contains(t, out, "ctrl+e")
	require.NotContains(t, out, "✗")
}

func TestModel_NextBlockedUntilValid(t *testing.T) {
	m := tarotModel(t)

	press(m, tea.KeyEnter)
	require.Equal(t, 0, m.wizard.Step())
	require.Contains(t, screen(m), "This field is required")

	// Editing clears the error without re-validating
	typeText(m, "Will")
	require.Equal(t, "Will", m.wizard.Value("question").Str())
	require.NotContains(t, screen(m), "This field is required")

	press(m, tea.KeyEnter)
	require.Equal(t, 0, m.wizard.Step())
	require.Contains(t, screen(m), "Must be at least 5 characters")

	typeText(m, " it rain?")
	press(m, tea.KeyEnter)
	require.Equal(t, 1, m.wizard.Step())
	require.Contains(t, screen(m), "Step 2 of 2: Spread")
}

func TestModel_ChoicesAndSubmit(t *testing.T) {
	m := tarotModel(t)
	typeText(m, "Will it rain?")
	press(m, tea.KeyEnter)
	require.Equal(t, 1, m.wizard.Step())

	// Submitting without a spread fails on the last step
	press(m, tea.KeyEnter)
	require.Nil(t, m.Payload())
	require.Contains(t, screen(m), "This field is required")

	press(m, tea.KeyRight)
	press(m, tea.KeySpace)
	require.Equal(t, "three_card", m.wizard.Value("spread").Str())

	press(m, tea.KeyTab)
	press(m, tea.KeySpace)
	require.True(t, m.wizard.Value("reversed_cards").BoolVal())

	press(m, tea.KeyEnter)
	p := m.Payload()
	require.NotNil(t, p)
	require.Equal(t, "Will it rain?", p.String("question"))
	require.Equal(t, "three_card", p.String("spread"))
	require.True(t, p.Bool("reversed_cards"))
	require.Contains(t, screen(m), "Summary")

	// Any key closes the summary
	cmd := press(m, 'q')
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.False(t, m.Cancelled())
}

func TestModel_EscGoesBackThenCancels(t *testing.T) {
	m := tarotModel(t)
	typeText(m, "Will it rain?")
	press(m, tea.KeyEnter)
	require.Equal(t, 1, m.wizard.Step())

	press(m, tea.KeyEscape)
	require.Equal(t, 0, m.wizard.Step())
	require.False(t, m.Cancelled())
	require.Equal(t, "Will it rain?", m.wizard.Value("question").Str())

	cmd := press(m, tea.KeyEscape)
	require.True(t, m.Cancelled())
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CtrlCCancels(t *testing.T) {
	m := tarotModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.True(t, m.Cancelled())
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_IntParseErrorBlocksNext(t *testing.T) {
	def := form.MustDefinition("age", "Age", []form.Step{
		{Index: 0, Key: "age", Title: "Age", Fields: []form.Field{
			{Name: "age", Label: "Age", Kind: form.KindInt, Rules: []form.Rule{form.Required(), form.IntRange(1, 120)}},
		}},
		{Index: 1, Key: "done", Title: "Done", Fields: []form.Field{
			{Name: "note", Label: "Note", Kind: form.KindString},
		}},
	})
	m := newModel(t, def, "en")

	typeText(m, "4x")
	require.Equal(t, 4, m.wizard.Value("age").IntVal())
	require.Contains(t, screen(m), "Enter a whole number")

	press(m, tea.KeyEnter)
	require.Equal(t, 0, m.wizard.Step())

	press(m, tea.KeyBackspace)
	require.NotContains(t, screen(m), "Enter a whole number")
	typeText(m, "2")
	press(m, tea.KeyEnter)
	require.Equal(t, 1, m.wizard.Step())
	require.Equal(t, 42, m.wizard.Value("age").IntVal())
}

func TestModel_TabWrapsFocus(t *testing.T) {
	m := tarotModel(t)
	typeText(m, "Will it rain?")
	press(m, tea.KeyEnter)

	require.Equal(t, 0, m.focus)
	press(m, tea.KeyTab)
	require.Equal(t, 1, m.focus)
	press(m, tea.KeyTab)
	require.Equal(t, 0, m.focus)
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	require.Equal(t, 1, m.focus)
}

func TestModel_ClampedDayShownInInput(t *testing.T) {
	def, ok := features.Lookup("numerology")
	require.True(t, ok)
	m := newModel(t, def, "en")

	typeText(m, "Lan")
	press(m, tea.KeyEnter)
	require.Equal(t, 1, m.wizard.Step())

	press(m, tea.KeyTab)
	typeText(m, "2")
	press(m, tea.KeyTab)
	typeText(m, "2023")
	press(m, tea.KeyTab)
	require.Equal(t, 0, m.focus)

	typeText(m, "30")
	require.Equal(t, 28, m.wizard.Value("birth_day").IntVal())
	require.Equal(t, "28", m.inputs["birth_day"].input.Value())
	require.Empty(t, m.inputs["birth_day"].parseErr)

	// Editing continues from the clamped text
	press(m, tea.KeyBackspace)
	require.Equal(t, "2", m.inputs["birth_day"].input.Value())
	require.Equal(t, 2, m.wizard.Value("birth_day").IntVal())
}

func TestModel_EditorResult(t *testing.T) {
	m := tarotModel(t)

	m.Update(editedMsg{field: "question", content: "Should I move abroad?\n"})
	require.Equal(t, "Should I move abroad?", m.wizard.Value("question").Str())
	require.Equal(t, "Should I move abroad?", m.inputs["question"].input.Value())

	m.Update(editedMsg{field: "question", err: errEditor})
	require.Contains(t, screen(m), errEditor.Error())
	require.Equal(t, "Should I move abroad?", m.wizard.Value("question").Str())
}

func TestFieldInput_MultiSelect(t *testing.T) {
	def, ok := features.Lookup("birth-chart")
	require.True(t, ok)
	f, ok := def.Field("focus_areas")
	require.True(t, ok)

	fi := newFieldInput(f, f.DefaultValue())
	require.False(t, fi.usesText())

	fi.moveCursor(1)
	v := fi.choose(f.DefaultValue())
	require.Equal(t, []string{"career"}, v.List())

	fi.moveCursor(-5)
	require.Equal(t, 0, fi.cursor)
	v = fi.choose(v)
	require.Equal(t, []string{"career", "love"}, v.List())
	v = fi.choose(v)
	require.Equal(t, []string{"career"}, v.List())

	fi.moveCursor(10)
	require.Equal(t, len(f.Options)-1, fi.cursor)
}

func TestModel_LocalizedLabels(t *testing.T) {
	def, ok := features.Lookup("tarot")
	require.True(t, ok)
	m := newModel(t, def, "vi")

	out := screen(m)
	require.Contains(t, out, "Bước 1 / 2")
}

func TestNavButtons(t *testing.T) {
	buttons := navButtons("Back", "Next", false)
	require.Len(t, buttons, 2)
	require.Equal(t, ButtonDisabled, buttons[0].State)
	require.Equal(t, ButtonFocused, buttons[1].State)

	bar := NewButtonBar(buttons)
	bar.SetWidth(40)
	out := ansi.Strip(bar.Render())
	require.Contains(t, out, "← Back")
	require.Contains(t, out, "Next →")
}

func TestRenderHintBar(t *testing.T) {
	require.Equal(t, "", renderHintBar("odd"))
	require.Equal(t, "tab navigate • esc back", ansi.Strip(renderHintBar("tab", "navigate", "esc", "back")))
}
