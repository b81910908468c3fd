// Package language provides the per-language caption markers the subtitle
// extractor scores against: credit keywords, lyric annotations, and dialogue
// punctuation.
//
// Tables are keyed by BCP 47 tag and resolved with a golang.org/x/text
// matcher so regional codes ("zh-Hans", "en-GB") land on the right table.
// Unsupported languages fall back to English.
package language
