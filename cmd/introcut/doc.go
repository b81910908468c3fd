// Command introcut detects episode intro boundaries from audio, video, and
// subtitle evidence, and adjusts subtitle timelines after trimming.
package main
