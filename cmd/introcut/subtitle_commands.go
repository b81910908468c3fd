package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"introcut/internal/subtitles"
)

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	subtitlesCmd := &cobra.Command{
		Use:   "subtitles",
		Short: "Subtitle utilities",
	}

	subtitlesCmd.AddCommand(newSubtitlesAdjustCommand())
	subtitlesCmd.AddCommand(newSubtitlesDetectCommand(ctx))

	return subtitlesCmd
}

func newSubtitlesAdjustCommand() *cobra.Command {
	var (
		offset     float64
		outputPath string
	)

	cmd := &cobra.Command{
		Use:         "adjust <srt-file>",
		Short:       "Shift a subtitle timeline earlier after trimming an intro",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if offset <= 0 {
				return fmt.Errorf("offset must be positive, got %v", offset)
			}
			written, err := subtitles.AdjustFile(args[0], outputPath, offset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote adjusted subtitles to %s (shifted %.3fs earlier)\n", written, offset)
			return nil
		},
	}

	cmd.Flags().Float64Var(&offset, "offset", 0, "Seconds removed from the start of the video")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (defaults to rewriting in place)")
	_ = cmd.MarkFlagRequired("offset")
	return cmd
}

func newSubtitlesDetectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "detect <srt-file>",
		Short: "Estimate the intro boundary from a subtitle file alone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detector, err := ctx.newDetector()
			if err != nil {
				return err
			}
			seconds, reason := detector.DetectFromSubtitles(args[0])
			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"subtitle_path":       args[0],
					"intro_end_seconds":   seconds,
					"intro_end_timestamp": subtitles.FormatTimestamp(seconds),
					"reason":              reason,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Intro ends at %s (%.0fs)\n", subtitles.FormatTimestamp(seconds), seconds)
			fmt.Fprintf(out, "Reason: %s\n", reason)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	return cmd
}
