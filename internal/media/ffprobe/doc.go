// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The detector uses it to confirm a file has the streams an extractor needs
// (no audio stream means no silence scan) and to clamp the analysis window to
// the container duration. Inspect executes ffprobe and returns a parsed
// Result; helper methods expose stream presence and duration.
package ffprobe
