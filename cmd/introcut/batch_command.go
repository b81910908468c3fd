package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"introcut/internal/batch"
	"introcut/internal/history"
	"introcut/internal/subtitles"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		workers    int
		jsonOutput bool
		noSave     bool
	)

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Detect intros for every media file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Batch.Workers = workers
			}

			detector, err := ctx.newDetector()
			if err != nil {
				return err
			}

			var store *history.Store
			if !noSave {
				store, err = history.Open(cfg)
				if err != nil {
					return fmt.Errorf("open history store: %w", err)
				}
				defer store.Close()
			}

			runner := batch.New(cfg, detector, store, ctx.loggerValue())
			outcomes, err := runner.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				reports := make([]detectReport, 0, len(outcomes))
				for _, outcome := range outcomes {
					reports = append(reports, buildDetectReport(outcome.MediaPath, outcome.SubtitlePath, outcome.Result))
				}
				return writeJSON(cmd, reports)
			}

			rows := make([][]string, 0, len(outcomes))
			for _, outcome := range outcomes {
				rows = append(rows, []string{
					outcome.MediaPath,
					subtitles.FormatTimestamp(outcome.Result.IntroEnd),
					strconv.FormatFloat(outcome.Result.Confidence, 'f', 2, 64),
					string(outcome.Result.Method),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Intro End", "Confidence", "Method"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
				isTerminal(out),
			))
			fmt.Fprintf(out, "Processed %d file(s)\n", len(outcomes))
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent workers (defaults to the configured value)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Skip recording results in the history database")
	return cmd
}
