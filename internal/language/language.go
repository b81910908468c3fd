package language

import (
	"strings"

	"golang.org/x/text/language"
)

// Keywords holds the caption-text markers for one language: substrings that
// indicate production credits and lyric annotations, plus the sentence
// punctuation ordinary dialogue carries.
type Keywords struct {
	Tag         language.Tag
	Credits     []string
	Lyrics      []string
	Punctuation []string
}

// Note glyphs are language-independent lyric markers.
var noteGlyphs = []string{"♪", "♫"}

var tables = []Keywords{
	{
		Tag:         language.English,
		Credits:     []string{"produced", "directed", "written", "starring", "created by"},
		Lyrics:      []string{"[music]", "(music)", "[theme]"},
		Punctuation: []string{".", ",", "?", "!"},
	},
	{
		Tag:         language.Chinese,
		Credits:     []string{"出品", "制作", "导演", "主演", "编剧"},
		Lyrics:      []string{"[音乐]", "（音乐）"},
		Punctuation: []string{"。", "，", "？", "！"},
	},
}

var matcher language.Matcher

func init() {
	tags := make([]language.Tag, len(tables))
	for i, table := range tables {
		tags[i] = table.Tag
	}
	matcher = language.NewMatcher(tags)
}

// For returns the keyword table for a BCP 47 code ("en", "zh-Hans", ...).
// Unknown or unsupported codes fall back to English.
func For(code string) Keywords {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return tables[0]
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return tables[0]
	}
	return tables[index]
}

// IsLyric reports whether caption text looks like song lyrics or a music
// annotation rather than dialogue.
func (k Keywords) IsLyric(text string) bool {
	lowered := strings.ToLower(text)
	for _, glyph := range noteGlyphs {
		if strings.Contains(lowered, glyph) {
			return true
		}
	}
	for _, marker := range k.Lyrics {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// IsCredit reports whether caption text names production credits.
func (k Keywords) IsCredit(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range k.Credits {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// HasSentencePunctuation reports whether text carries the punctuation
// ordinary dialogue uses. All tables are consulted so mixed-language
// captions still qualify.
func HasSentencePunctuation(text string) bool {
	for _, table := range tables {
		for _, mark := range table.Punctuation {
			if strings.Contains(text, mark) {
				return true
			}
		}
	}
	return false
}
