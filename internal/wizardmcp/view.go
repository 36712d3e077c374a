package wizardmcp

import (
	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/i18n"
)

type featureView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       int    `json:"steps"`
}

type optionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type fieldView struct {
	Name      string       `json:"name"`
	Label     string       `json:"label"`
	Kind      string       `json:"kind"`
	Multiline bool         `json:"multiline,omitempty"`
	Options   []optionView `json:"options,omitempty"`
	Value     form.Value   `json:"value"`
	Error     string       `json:"error,omitempty"`
}

type stateView struct {
	Session   string            `json:"session"`
	Feature   string            `json:"feature"`
	Step      int               `json:"step"`
	Steps     int               `json:"steps"`
	StepTitle string            `json:"step_title"`
	Fields    []fieldView       `json:"fields"`
	Errors    map[string]string `json:"errors,omitempty"`
	Submitted bool              `json:"submitted"`
}

func describeFeature(def *form.Definition, loc *i18n.Localizer) featureView {
	return featureView{
		ID:          def.ID,
		Title:       loc.Text(features.TitleKey(def), def.Title),
		Description: loc.Text(features.DescriptionKey(def), def.Description),
		Steps:       def.Len(),
	}
}

// describe renders the current step of a session. Errors for fields of
// other steps are reported too so the agent can see what lingers.
func describe(sess *session) stateView {
	w := sess.wizard
	def := w.Definition()
	step := w.CurrentStep()
	state := w.State()

	fields := make([]fieldView, 0, len(step.Fields))
	for _, f := range step.Fields {
		fv := fieldView{
			Name:      f.Name,
			Label:     sess.localizer.Text(features.LabelKey(f), f.Label),
			Kind:      f.Kind.String(),
			Multiline: f.Multiline,
			Value:     state.Fields[f.Name],
			Error:     state.Errors[f.Name],
		}
		for _, opt := range f.Options {
			fv.Options = append(fv.Options, optionView{
				Value: opt,
				Label: sess.localizer.Text(features.OptionKey(opt), opt),
			})
		}
		fields = append(fields, fv)
	}

	return stateView{
		Session:   sess.id,
		Feature:   def.ID,
		Step:      state.Step,
		Steps:     w.Steps(),
		StepTitle: sess.localizer.Text(features.StepKey(def, step), step.Title),
		Fields:    fields,
		Errors:    state.Errors,
		Submitted: state.Submitted,
	}
}
