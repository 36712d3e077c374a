// Package wizardview drives a form.Wizard from a terminal UI.
package wizardview

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/i18n"
	"github.com/mark3labs/augur/internal/logger"
	"github.com/mark3labs/augur/internal/report"
)

// ErrCancelled is returned by Run when the user leaves before submitting.
var ErrCancelled = errors.New("wizard cancelled by user")

var log = logger.Default.Named("tui")

// Model is the BubbleTea model for one wizard run.
type Model struct {
	wizard *form.Wizard
	loc    *i18n.Localizer

	inputs map[string]*fieldInput
	focus  int // field index within the current step

	width  int
	height int

	cancelled bool
	payload   *form.Payload
	summary   string
	notice    string // transient message, e.g. a failed editor launch
}

// editedMsg carries text written in the external editor.
type editedMsg struct {
	field   string
	content string
	err     error
}

// New creates a model for w. Labels and step titles come from loc.
func New(w *form.Wizard, loc *i18n.Localizer) *Model {
	m := &Model{
		wizard: w,
		loc:    loc,
		inputs: make(map[string]*fieldInput),
		width:  80,
		height: 24,
	}
	for _, step := range w.Definition().Steps {
		for _, f := range step.Fields {
			m.inputs[f.Name] = newFieldInput(f, w.Value(f.Name))
		}
	}
	return m
}

// Run runs the wizard in its own program and returns the submitted payload.
func Run(w *form.Wizard, loc *i18n.Localizer) (*form.Payload, error) {
	m := New(w, loc)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if fm.payload == nil {
		return nil, ErrCancelled
	}
	return fm.payload, nil
}

// Payload returns the submitted payload, or nil.
func (m *Model) Payload() *form.Payload { return m.payload }

// Cancelled reports whether the user quit without submitting.
func (m *Model) Cancelled() bool { return m.cancelled }

// Init focuses the first field.
func (m *Model) Init() tea.Cmd {
	return m.focusField(0)
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, fi := range m.inputs {
			fi.setWidth(m.contentWidth() - 6)
		}
		if m.payload != nil {
			m.summary = report.RenderMarkdown(report.Markdown(m.wizard.Definition(), *m.payload, m.loc), m.contentWidth())
		}
		return m, nil

	case editedMsg:
		return m, m.applyEdit(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, m.forward(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.cancelled = m.payload == nil
		return m, tea.Quit
	}

	// Completion screen: any key closes it.
	if m.payload != nil {
		return m, tea.Quit
	}

	m.notice = ""
	fi := m.focused()

	switch key {
	case "esc":
		if m.wizard.IsFirst() {
			m.cancelled = true
			return m, tea.Quit
		}
		m.wizard.Back()
		return m, m.focusField(0)

	case "tab", "down":
		if key == "down" && fi != nil && !fi.usesText() {
			break
		}
		return m, m.focusField(m.focus + 1)

	case "shift+tab", "up":
		if key == "up" && fi != nil && !fi.usesText() {
			break
		}
		return m, m.focusField(m.focus - 1)

	case "enter":
		return m, m.advance()

	case "ctrl+e":
		if fi != nil && fi.field.Multiline {
			return m, m.openEditor(fi.field)
		}
		return m, nil
	}

	if fi == nil {
		return m, nil
	}

	if !fi.usesText() {
		switch key {
		case "left", "h", "up", "k":
			fi.moveCursor(-1)
		case "right", "l", "down", "j":
			fi.moveCursor(1)
		case "space", "x":
			m.set(fi.field.Name, fi.choose(m.wizard.Value(fi.field.Name)))
		}
		return m, nil
	}

	return m, m.forward(msg)
}

// forward passes a message to the focused text input and stores the
// result in the wizard when the text changed.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	fi := m.focused()
	if fi == nil || !fi.usesText() {
		return nil
	}

	before := fi.input.Value()
	var cmd tea.Cmd
	fi.input, cmd = fi.input.Update(msg)
	if after := fi.input.Value(); after != before {
		m.setText(fi, after)
	}
	return cmd
}

func (m *Model) setText(fi *fieldInput, text string) {
	v, err := form.Parse(fi.field.Kind, text)
	if err != nil {
		fi.parseErr = m.loc.Text("ui.not_a_number", "Enter a whole number")
		m.wizard.OnFieldEdited(fi.field.Name)
		return
	}
	fi.parseErr = ""
	m.set(fi.field.Name, v)
}

// set stores a value and refreshes inputs a normalizer may have changed,
// including the edited one.
func (m *Model) set(name string, v form.Value) {
	if err := m.wizard.Set(name, v); err != nil {
		log.Warn("Set %s: %v", name, err)
		return
	}
	for _, f := range m.wizard.CurrentStep().Fields {
		m.inputs[f.Name].sync(m.wizard.Value(f.Name))
	}
}

// advance moves to the next step, or submits on the last one. Fields with
// unparseable text block both.
func (m *Model) advance() tea.Cmd {
	for i, f := range m.wizard.CurrentStep().Fields {
		if m.inputs[f.Name].parseErr != "" {
			return m.focusField(i)
		}
	}

	if !m.wizard.IsLast() {
		if m.wizard.Next() {
			return m.focusField(0)
		}
		return m.focusFirstError()
	}

	p, err := m.wizard.Submit()
	if err != nil {
		var verr *form.ValidationError
		if !errors.As(err, &verr) {
			m.notice = err.Error()
		}
		return m.focusFirstError()
	}

	m.payload = &p
	m.summary = report.RenderMarkdown(report.Markdown(m.wizard.Definition(), p, m.loc), m.contentWidth())
	return nil
}

func (m *Model) focusFirstError() tea.Cmd {
	for i, f := range m.wizard.CurrentStep().Fields {
		if _, ok := m.wizard.Error(f.Name); ok {
			return m.focusField(i)
		}
	}
	return nil
}

// focusField focuses field i of the current step, wrapping around.
func (m *Model) focusField(i int) tea.Cmd {
	fields := m.wizard.CurrentStep().Fields
	for _, fi := range m.inputs {
		fi.blur()
	}
	if len(fields) == 0 {
		m.focus = 0
		return nil
	}
	m.focus = (i%len(fields) + len(fields)) % len(fields)
	return m.inputs[fields[m.focus].Name].focus()
}

func (m *Model) focused() *fieldInput {
	fields := m.wizard.CurrentStep().Fields
	if m.focus < 0 || m.focus >= len(fields) {
		return nil
	}
	return m.inputs[fields[m.focus].Name]
}

// openEditor launches $EDITOR on a temp file holding the field's text.
func (m *Model) openEditor(f form.Field) tea.Cmd {
	tmpfile, err := os.CreateTemp("", "augur_"+f.Name+"_*.md")
	if err != nil {
		m.notice = err.Error()
		return nil
	}
	if _, err := tmpfile.WriteString(m.wizard.Value(f.Name).Str()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		m.notice = err.Error()
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("augur", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		m.notice = err.Error()
		return nil
	}

	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			return editedMsg{field: f.Name, err: err}
		}
		content, err := os.ReadFile(path)
		return editedMsg{field: f.Name, content: string(content), err: err}
	})
}

func (m *Model) applyEdit(msg editedMsg) tea.Cmd {
	if msg.err != nil {
		m.notice = msg.err.Error()
		return nil
	}
	fi, ok := m.inputs[msg.field]
	if !ok {
		return nil
	}
	text := strings.TrimRight(msg.content, "\n")
	fi.input.SetValue(text)
	m.setText(fi, text)
	return nil
}

func (m *Model) contentWidth() int {
	w := m.width - 10
	if w < 60 {
		w = 60
	}
	if w > 100 {
		w = 100
	}
	return w
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := m.render()
	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render draws the modal for the current step or the completion summary.
func (m *Model) render() string {
	def := m.wizard.Definition()
	title := m.loc.Text(features.TitleKey(def), def.Title)

	var sections []string
	if m.payload != nil {
		sections = append(sections,
			styleModalTitle.Render(title+" · "+m.loc.Text("ui.summary_title", "Summary")),
			"",
			m.summary,
			"",
			renderHintBar("any key", m.loc.Text("ui.hint.quit", "quit")),
		)
	} else {
		step := m.wizard.CurrentStep()
		progress := m.loc.Text("ui.step_of", "Step %d of %d", m.wizard.Step()+1, m.wizard.Steps())
		sections = append(sections,
			styleModalTitle.Render(title),
			styleStepTitle.Render(progress+": "+m.loc.Text(features.StepKey(def, step), step.Title)),
			"",
		)

		for i, f := range step.Fields {
			msg, _ := m.wizard.Error(f.Name)
			sections = append(sections, m.inputs[f.Name].view(m.wizard.Value(f.Name), msg, i == m.focus, m.loc))
		}

		if m.notice != "" {
			sections = append(sections, styleError.Render(m.notice), "")
		}

		next := m.loc.Text("ui.next", "Next")
		if m.wizard.IsLast() {
			next = m.loc.Text("ui.submit", "Submit")
		}
		back := m.loc.Text("ui.back", "Back")
		if m.wizard.IsFirst() {
			back = m.loc.Text("ui.cancel", "Cancel")
		}
		bar := NewButtonBar(navButtons(back, next, true))
		bar.SetWidth(m.contentWidth() - 6)
		sections = append(sections, bar.Render(), "", m.hints())
	}

	modal := styleModalContainer.Width(m.contentWidth()).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) hints() string {
	pairs := []string{"tab", m.loc.Text("ui.hint.navigate", "navigate")}
	if fi := m.focused(); fi != nil {
		if !fi.usesText() {
			pairs = append(pairs, "space", m.loc.Text("ui.hint.toggle", "toggle"))
		}
		if fi.field.Multiline {
			pairs = append(pairs, "ctrl+e", m.loc.Text("ui.hint.editor", "editor"))
		}
	}
	next := m.loc.Text("ui.next", "Next")
	if m.wizard.IsLast() {
		next = m.loc.Text("ui.submit", "Submit")
	}
	pairs = append(pairs, "enter", strings.ToLower(next), "esc", strings.ToLower(m.loc.Text("ui.back", "Back")))
	return renderHintBar(pairs...)
}
