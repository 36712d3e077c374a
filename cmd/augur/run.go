package main

import (
	"errors"
	"fmt"

	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/report"
	"github.com/mark3labs/augur/internal/tui/wizardview"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <feature>",
	Short: "Fill a wizard in the terminal UI",
	Long: `Open a wizard in a full-screen terminal UI.

Each step is validated when you press enter. Multi-line fields can be
edited in $EDITOR with ctrl+e. The completed form is printed as a summary
and stored unless --no-persist is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	if cfg.Headless {
		return fmt.Errorf("headless mode is enabled, use 'augur fill %s --set name=value' instead", args[0])
	}

	def, ok := features.Lookup(args[0])
	if !ok {
		return unknownFeature(args[0])
	}

	opts, cleanup, err := wizardOptions(cmd.Context(), "tui")
	if err != nil {
		return err
	}
	defer cleanup()

	loc := localizer()
	w, err := form.New(def, opts...)
	if err != nil {
		return err
	}

	payload, err := wizardview.Run(w, loc)
	if errors.Is(err, wizardview.ErrCancelled) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(report.RenderMarkdown(report.Markdown(def, *payload, loc), 80))
	return nil
}

func unknownFeature(id string) error {
	return fmt.Errorf("unknown feature %q (available: %v)", id, features.IDs())
}
