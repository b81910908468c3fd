// Package subtitles parses, serializes, and rewrites SubRip (.srt) caption
// files.
//
// Parsing is tolerant: blocks that do not match the index/timecode/text shape
// are skipped so one corrupt cue never loses the rest of the file. The Adjust
// helpers implement the timeline rewrite used after an intro cut: shift every
// timecode earlier, clamp at zero, drop cues that ended before the cut, and
// renumber sequentially.
package subtitles
