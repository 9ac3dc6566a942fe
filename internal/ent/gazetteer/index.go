package gazetteer

import (
	"strings"
	"unicode/utf8"

	ahocorasick "github.com/BobuSumisu/aho-corasick"

	"github.com/biodivbd/lepiobs/internal/ent/txt"
)

// quoteFold maps Unicode apostrophe variants to the ASCII apostrophe,
// both in alias registration and in scanned text.
var quoteFold = strings.NewReplacer("’", "'", "‘", "'")

// fold canonicalizes aliases and scanned text identically: apostrophe
// variants first, then the full ASCII normalization. Running the same
// transform on both sides keeps match offsets and word-boundary checks
// on one string, even when lowercasing alone would change byte lengths.
func fold(s string) string {
	return txt.Normalize(quoteFold.Replace(s))
}

// Index maps every known place name and alias, case-insensitively, to
// its canonical Place. It is immutable once built: construct it per
// batch, share it read-only, discard it after.
type Index struct {
	trie     *ahocorasick.Trie
	byAlias  map[string]Place
	wordRune func(rune) bool
}

// IndexOption changes construction settings of an Index.
type IndexOption func(*Index)

// OptWordRune sets the predicate deciding which runes are word
// characters. A match is accepted only when the runes adjacent to it are
// not word characters. The default treats ASCII letters and digits as
// word characters, so punctuation neither breaks nor extends a match.
func OptWordRune(f func(rune) bool) IndexOption {
	return func(x *Index) {
		x.wordRune = f
	}
}

func defaultWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9'
}

// NewIndex builds an Index from grouped entries. Names on the excluded
// list are left out: they are common words that match far too often.
// Custom aliases are registered after the base set and map misspellings
// and abbreviations to arbitrary canonical places with equal priority.
// Entries must come pre-sorted by descending name length (see Group) so
// that an alias shared by several entries resolves to the longest
// canonical name.
func NewIndex(
	entries []Entry,
	excluded []string,
	aliases map[string]Place,
	opts ...IndexOption,
) *Index {
	res := &Index{
		byAlias:  make(map[string]Place),
		wordRune: defaultWordRune,
	}
	for _, opt := range opts {
		opt(res)
	}

	skip := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		skip[name] = struct{}{}
	}

	var patterns []string
	for _, e := range entries {
		names := append([]string{e.Name}, e.AltNames...)
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := skip[name]; ok {
				continue
			}
			key := fold(name)
			if key == "" {
				continue
			}
			if _, ok := res.byAlias[key]; ok {
				continue
			}
			res.byAlias[key] = Place{Name: e.Name, Coords: e.Coords}
			patterns = append(patterns, key)
		}
	}

	for alias, place := range aliases {
		key := fold(alias)
		if key == "" {
			continue
		}
		if _, ok := res.byAlias[key]; !ok {
			patterns = append(patterns, key)
		}
		res.byAlias[key] = place
	}

	res.trie = ahocorasick.NewTrieBuilder().AddStrings(patterns).Build()
	return res
}

// Extract returns the canonical place of the first alias found in text,
// scanning left to right. The automaton reports every occurrence of
// every alias, including overlapping ones, so an explicit resolution
// pass keeps only matches on word boundaries and picks the leftmost,
// preferring the longest alias at the same start position.
func (x *Index) Extract(text string) (Place, bool) {
	if text == "" {
		return Place{}, false
	}
	folded := fold(text)

	var best string
	bestStart := -1
	for _, m := range x.trie.MatchString(folded) {
		start := int(m.Pos())
		alias := m.MatchString()
		if !x.onWordBoundary(folded, start, start+len(alias)) {
			continue
		}
		if bestStart == -1 || start < bestStart ||
			(start == bestStart && len(alias) > len(best)) {
			best, bestStart = alias, start
		}
	}
	if bestStart == -1 {
		return Place{}, false
	}
	return x.byAlias[best], true
}

func (x *Index) onWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if r != utf8.RuneError && x.wordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if r != utf8.RuneError && x.wordRune(r) {
			return false
		}
	}
	return true
}

// Size returns the number of registered aliases.
func (x *Index) Size() int {
	return len(x.byAlias)
}
