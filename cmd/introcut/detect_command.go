package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"introcut/internal/batch"
	"introcut/internal/detect"
	"introcut/internal/history"
	"introcut/internal/subtitles"
)

type detectReport struct {
	MediaPath    string         `json:"media_path"`
	SubtitlePath string         `json:"subtitle_path,omitempty"`
	IntroEnd     float64        `json:"intro_end_seconds"`
	IntroEndCode string         `json:"intro_end_timestamp"`
	OutroStart   *float64       `json:"outro_start_seconds,omitempty"`
	Confidence   float64        `json:"confidence"`
	Method       string         `json:"method"`
	Details      map[string]any `json:"details,omitempty"`
}

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var (
		subtitlePath  string
		subtitlesOnly bool
		jsonOutput    bool
		save          bool
	)

	cmd := &cobra.Command{
		Use:   "detect <media-file>",
		Short: "Detect the intro boundary of an episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaPath := args[0]
			detector, err := ctx.newDetector()
			if err != nil {
				return err
			}

			if subtitlesOnly {
				srt := strings.TrimSpace(subtitlePath)
				if srt == "" && strings.EqualFold(filepath.Ext(mediaPath), ".srt") {
					srt = mediaPath
				}
				if srt == "" {
					return fmt.Errorf("subtitles-only detection needs a subtitle file (--subtitles)")
				}
				seconds, reason := detector.DetectFromSubtitles(srt)
				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"subtitle_path":       srt,
						"intro_end_seconds":   seconds,
						"intro_end_timestamp": subtitles.FormatTimestamp(seconds),
						"reason":              reason,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Intro ends at %s (%.0fs)\n", subtitles.FormatTimestamp(seconds), seconds)
				fmt.Fprintf(out, "Reason: %s\n", reason)
				return nil
			}

			srt := strings.TrimSpace(subtitlePath)
			if srt == "" {
				srt = batch.SiblingSubtitle(mediaPath)
			}

			result := detector.Detect(cmd.Context(), mediaPath, srt)
			report := buildDetectReport(mediaPath, srt, result)

			if save {
				if err := saveResult(ctx, cmd, report, result); err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}
			printDetectReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subtitlePath, "subtitles", "s", "", "Subtitle file to use as evidence")
	cmd.Flags().BoolVar(&subtitlesOnly, "subtitles-only", false, "Estimate from subtitles alone, without running ffmpeg")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	cmd.Flags().BoolVar(&save, "save", false, "Record the result in the history database")
	return cmd
}

func buildDetectReport(mediaPath, subtitlePath string, result detect.Result) detectReport {
	report := detectReport{
		MediaPath:    mediaPath,
		SubtitlePath: subtitlePath,
		IntroEnd:     result.IntroEnd,
		IntroEndCode: subtitles.FormatTimestamp(result.IntroEnd),
		Confidence:   result.Confidence,
		Method:       string(result.Method),
		Details:      result.Details,
	}
	if result.HasOutro {
		outro := result.OutroStart
		report.OutroStart = &outro
	}
	return report
}

func printDetectReport(cmd *cobra.Command, report detectReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Intro ends at %s (%.0fs)\n", report.IntroEndCode, report.IntroEnd)
	fmt.Fprintf(out, "Method: %s  Confidence: %.2f\n", report.Method, report.Confidence)
	if report.OutroStart != nil {
		fmt.Fprintf(out, "Outro starts at %s\n", subtitles.FormatTimestamp(*report.OutroStart))
	}
}

func saveResult(ctx *commandContext, cmd *cobra.Command, report detectReport, result detect.Result) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	details := "{}"
	if len(result.Details) > 0 {
		encoded, err := json.Marshal(result.Details)
		if err != nil {
			return fmt.Errorf("encode details: %w", err)
		}
		details = string(encoded)
	}

	record := history.Record{
		MediaPath:    report.MediaPath,
		SubtitlePath: report.SubtitlePath,
		IntroEnd:     report.IntroEnd,
		OutroStart:   report.OutroStart,
		Confidence:   report.Confidence,
		Method:       report.Method,
		Details:      details,
	}
	if _, err := store.Save(cmd.Context(), record); err != nil {
		return fmt.Errorf("record detection: %w", err)
	}
	return nil
}
