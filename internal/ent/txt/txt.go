// Package txt cleans and normalizes raw social-media text before it is
// passed to the date, location and species matchers.
package txt

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces  = regexp.MustCompile(`\s+`)
	reURL     = regexp.MustCompile(`https?://\S+`)
	reWWW     = regexp.MustCompile(`www\.\S+`)
	reHashtag = regexp.MustCompile(`#(\w+)`)
	reParens  = regexp.MustCompile(`\((.*?)\)`)
	rePunct   = regexp.MustCompile(`[^\w\s]`)
)

// asciiFold decomposes characters to their compatibility forms and drops
// combining marks, so "café" becomes "cafe".
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes raw post text. It folds extended characters to
// their closest ASCII equivalent, drops code points that have none,
// removes zero-width characters, lowercases the result and collapses
// whitespace runs to a single space.
func Normalize(text string) string {
	if folded, _, err := transform.String(asciiFold, text); err == nil {
		text = folded
	}
	text = strings.Map(func(r rune) rune {
		if r >= '\u200b' && r <= '\u200d' || r == '\ufeff' {
			return -1
		}
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, text)
	text = strings.ToLower(text)
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeAll normalizes a slice of texts.
func NormalizeAll(texts []string) []string {
	res := make([]string, len(texts))
	for i := range texts {
		res[i] = Normalize(texts[i])
	}
	return res
}

// RemoveURLs strips http(s) and www links.
func RemoveURLs(text string) string {
	text = reURL.ReplaceAllString(text, "")
	text = reWWW.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// RemoveEmojis strips pictographic characters.
func RemoveEmojis(text string) string {
	text = strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols and pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map symbols
		return true
	case r >= 0x1F1E0 && r <= 0x1F1FF: // flags
		return true
	case r >= 0x2702 && r <= 0x27B0:
		return true
	case r >= 0x24C2 && r <= 0x1F251:
		return true
	}
	return false
}

// NormalizeHashtags replaces "#tag" tokens with "tag".
func NormalizeHashtags(text string) string {
	return strings.TrimSpace(reHashtag.ReplaceAllString(text, "$1"))
}

// RemovePunctuation isolates a parenthesized substring if one exists.
// Posts often carry the scientific name in parentheses after the common
// name, so "Common Jay (Graphium doson)" yields "Graphium doson".
// Without parentheses it strips all non-word, non-space characters.
func RemovePunctuation(text string) string {
	if m := reParens.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strings.TrimSpace(rePunct.ReplaceAllString(text, ""))
}

// CleanConfig selects which optional cleaners CleanFull applies.
type CleanConfig struct {
	URLs        bool
	Emojis      bool
	Hashtags    bool
	Punctuation bool
}

// CleanFull runs the configured cleaners in a fixed order, always
// finishing with Normalize.
func CleanFull(text string, cfg CleanConfig) string {
	if cfg.URLs {
		text = RemoveURLs(text)
	}
	if cfg.Emojis {
		text = RemoveEmojis(text)
	}
	if cfg.Hashtags {
		text = NormalizeHashtags(text)
	}
	if cfg.Punctuation {
		text = RemovePunctuation(text)
	}
	return Normalize(text)
}
