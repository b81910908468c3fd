// Package ffmpeg wraps the ffmpeg filter probes the evidence extractors rely
// on: silencedetect, scene-change select, blackdetect, and per-second frame
// statistics.
//
// ffmpeg prints filter measurements to stderr as free text, so each probe
// pairs a command invocation with a scraper for its line format. The Prober
// restricts every run to the head of the file (-t window) and can cap wall
// time so a corrupt or unseekable input cannot hang a detection run. Tests
// exercise the scrapers against canned output via the commandContext seam.
package ffmpeg
