package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/i18n"
	"github.com/mark3labs/augur/internal/report"
	"github.com/spf13/cobra"
)

var fillFlags struct {
	set      []string
	markdown bool
}

var fillCmd = &cobra.Command{
	Use:   "fill <feature>",
	Short: "Fill a wizard from flags without the UI",
	Long: `Fill a wizard non-interactively.

Values are given as --set name=value. Multi-select fields take a
comma-separated list. Steps are validated in order; the first invalid step
is reported with its field errors and the command fails.`,
	Example: `  augur fill tarot --set question="Will it rain?" --set spread=single
  augur fill birth-chart --set full_name=Lan --set birth_day=31 --set birth_month=2 ...`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringArrayVar(&fillFlags.set, "set", nil, "Field assignment name=value (repeatable)")
	fillCmd.Flags().BoolVar(&fillFlags.markdown, "markdown", false, "Print a markdown summary instead of JSON")
}

// errInvalidStep reports that a step failed validation. The field errors
// have already been printed.
var errInvalidStep = errors.New("form is incomplete")

func runFill(cmd *cobra.Command, args []string) error {
	def, ok := features.Lookup(args[0])
	if !ok {
		return unknownFeature(args[0])
	}

	opts, cleanup, err := wizardOptions(cmd.Context(), "cli")
	if err != nil {
		return err
	}
	defer cleanup()

	loc := localizer()
	w, err := form.New(def, opts...)
	if err != nil {
		return err
	}

	payload, err := fill(w, fillFlags.set, loc, os.Stderr)
	if err != nil {
		return err
	}

	if fillFlags.markdown {
		fmt.Println(report.RenderMarkdown(report.Markdown(def, payload, loc), 80))
		return nil
	}

	out, err := report.JSON(payload)
	if err != nil {
		return err
	}
	fmt.Println(report.Highlight(out, "payload.json", stdoutProfile()))
	return nil
}

// fill applies assignments, walks every step and submits. Field errors of
// the first invalid step are written to errOut.
func fill(w *form.Wizard, assignments []string, loc *i18n.Localizer, errOut io.Writer) (form.Payload, error) {
	for _, a := range assignments {
		name, value, err := parseAssignment(a)
		if err != nil {
			return form.Payload{}, err
		}
		if err := assign(w, name, value); err != nil {
			return form.Payload{}, err
		}
	}

	for !w.IsLast() {
		if !w.Next() {
			writeStepErrors(w, loc, errOut)
			return form.Payload{}, errInvalidStep
		}
	}

	payload, err := w.Submit()
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			writeStepErrors(w, loc, errOut)
			return form.Payload{}, errInvalidStep
		}
		return form.Payload{}, err
	}
	return payload, nil
}

func parseAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid assignment %q, expected name=value", s)
	}
	return name, value, nil
}

// assign stores one value. Multi-select values are comma-separated.
func assign(w *form.Wizard, name, value string) error {
	if _, ok := w.Definition().Field(name); !ok {
		return fmt.Errorf("%w: %q (fields: %s)", form.ErrUnknownField, name, strings.Join(w.Definition().FieldNames(), ", "))
	}
	return w.SetRaw(name, value)
}

func writeStepErrors(w *form.Wizard, loc *i18n.Localizer, out io.Writer) {
	def := w.Definition()
	step := w.CurrentStep()
	_, _ = fmt.Fprintf(out, "%s: %s\n",
		loc.Text("ui.step_of", "Step %d of %d", step.Index+1, def.Len()),
		loc.Text(features.StepKey(def, step), step.Title))

	errs := w.Errors()
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		label := name
		if f, ok := def.Field(name); ok {
			label = loc.Text(features.LabelKey(f), f.Label)
		}
		_, _ = fmt.Fprintf(out, "  %s: %s\n", label, errs[name])
	}
}
