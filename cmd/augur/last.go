package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/augur/internal/features"
	"github.com/mark3labs/augur/internal/report"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"
)

var lastCmd = &cobra.Command{
	Use:   "last <feature>",
	Short: "Show the most recent stored submissions of a wizard",
	Args:  cobra.ExactArgs(1),
	RunE:  runLast,
}

var lastFlags struct {
	count int
}

func init() {
	lastCmd.Flags().IntVarP(&lastFlags.count, "count", "n", 1, "number of submissions to show, 0 for all")
}

func runLast(cmd *cobra.Command, args []string) error {
	def, ok := features.Lookup(args[0])
	if !ok {
		return unknownFeature(args[0])
	}
	if !cfg.Persist {
		return fmt.Errorf("persistence is disabled, nothing is stored")
	}

	store, cleanup, err := openStore(cmd.Context(), "cli")
	if err != nil {
		return err
	}
	defer cleanup()

	var result any
	if lastFlags.count == 1 {
		rec, err := store.Last(cmd.Context(), def.ID)
		if errors.Is(err, jetstream.ErrMsgNotFound) {
			fmt.Printf("No submissions for %s yet.\n", def.ID)
			return nil
		}
		if err != nil {
			return err
		}
		result = rec
	} else {
		recs, err := store.History(cmd.Context(), def.ID, lastFlags.count)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Printf("No submissions for %s yet.\n", def.ID)
			return nil
		}
		result = recs
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	fmt.Println(report.Highlight(string(out), "record.json", stdoutProfile()))
	return nil
}
