package main

import (
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mark3labs/augur/internal/features"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the available wizards",
	Args:  cobra.NoArgs,
	RunE:  runFeatures,
}

func runFeatures(cmd *cobra.Command, args []string) error {
	loc := localizer()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))).
		Headers("ID", "TITLE", "STEPS", "DESCRIPTION")

	for _, def := range features.All() {
		t.Row(
			def.ID,
			loc.Text(features.TitleKey(def), def.Title),
			strconv.Itoa(def.Len()),
			loc.Text(features.DescriptionKey(def), def.Description),
		)
	}

	lipgloss.Println(t)
	return nil
}
