// Package date extracts observation dates from post text using an
// ordered cascade of strategies. The first strategy that produces a date
// with a year inside the valid window wins.
package date

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

const (
	// MinYear and MaxYear bound the default valid-year window. Posts
	// from the monitored groups cannot predate the groups themselves,
	// and future years are transcription noise.
	MinYear = 2011
	MaxYear = 2025
)

var (
	// numeric forms: 19/07/2025, 06-July-25
	reNumeric = regexp.MustCompile(
		`(?i)\b\d{1,2}[/.\-](?:\d{1,2}|[A-Za-z]{3,9})[/.\-]\d{2,4}\b`)

	// textual forms: "19 July 2025", "March 2025", "July'25",
	// "July 06, 2025", "2k25"
	reTextual = regexp.MustCompile(`(?i)\b(` +
		`\d{1,3}(?:st|nd|rd|th)?\s*[A-Za-z]{3,9}(?:,?\s+\d{2,4})?` +
		`|[A-Za-z]{3,9}\s*,?\.?-?'?\s*\d{2,4}` +
		`|[A-Za-z]{3,9}'\s*\d{2,4}` +
		`|[A-Za-z]{3,9}\s+\d{1,2},?\s+\d{2,4}` +
		`|(?:[A-Za-z]{3,9})?[ ,.]*2k\d{2,4}` +
		`)\b`)

	reStandaloneYear = regexp.MustCompile(`\b(20[1-2][0-9]|2025|201[3-9])\b`)
	re2k             = regexp.MustCompile(`2[kK](\d{2})`)
	reYearToken      = regexp.MustCompile(`\b(20\d{2})\b`)
	reShortYear      = regexp.MustCompile(`['/.\-](\d{2})\s*$`)
)

// Resolver extracts dates with a configurable valid-year window.
type Resolver struct {
	MinYear int
	MaxYear int
}

// NewResolver returns a Resolver with the default year window.
func NewResolver() Resolver {
	return Resolver{MinYear: MinYear, MaxYear: MaxYear}
}

// IsValidYear reports whether a year falls inside the window.
func (r Resolver) IsValidYear(year int) bool {
	return year >= r.MinYear && year <= r.MaxYear
}

// NormalizeYear rewrites shorthand years like "2k25" to "2025".
func NormalizeYear(dateStr string) string {
	return re2k.ReplaceAllString(dateStr, "20$1")
}

// Extract runs the strategy cascade over text. When current already
// holds a valid date it is returned unchanged. On success the returned
// text has the matched substring removed; the free-scan strategy leaves
// the text as is. Returns an empty date when no strategy succeeds.
func (r Resolver) Extract(text, current string) (string, string) {
	if current != "" && r.validDate(current) {
		return current, text
	}

	if m := reNumeric.FindString(text); m != "" && r.validDate(m) {
		return m, cutMatch(text, m)
	}

	if m := reTextual.FindString(text); m != "" && r.validDate(m) {
		return NormalizeYear(m), cutMatch(text, m)
	}

	if m := reStandaloneYear.FindString(text); m != "" {
		year, err := strconv.Atoi(m)
		if err == nil && r.IsValidYear(year) {
			return m, cutMatch(text, m)
		}
	}

	if d, ok := r.scan(text); ok {
		return d, text
	}

	return "", text
}

func cutMatch(text, match string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, match, ""))
}

// validDate reports whether a date string parses to a year inside the
// window. Parsing failures are not errors, just a negative answer.
func (r Resolver) validDate(dateStr string) bool {
	year, ok := r.yearOf(dateStr)
	return ok && r.IsValidYear(year)
}

// yearOf recovers the year of a date string. Strings the general parser
// cannot handle ("July'25", "06-July-25", "19/07/25") fall back to
// year-token heuristics: an explicit 4-digit year, then a trailing
// 2-digit year after an apostrophe or date separator. Anchoring to the
// end keeps the month field of D/M/YY forms from being read as a year.
func (r Resolver) yearOf(dateStr string) (int, bool) {
	dateStr = NormalizeYear(strings.TrimSpace(dateStr))
	if t, err := dateparse.ParseAny(dateStr); err == nil {
		return t.Year(), true
	}
	if m := reYearToken.FindStringSubmatch(dateStr); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			return year, true
		}
	}
	if m := reShortYear.FindStringSubmatch(dateStr); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			return 2000 + year, true
		}
	}
	return 0, false
}

// scan is the last-resort strategy: slide token windows over the whole
// string and try to parse each as a date. The first candidate with an
// in-window year wins, formatted as YYYY-MM-DD. Parser panics on exotic
// input are swallowed and treated as no match.
func (r Resolver) scan(text string) (res string, ok bool) {
	defer func() {
		if recover() != nil {
			res, ok = "", false
		}
	}()

	tokens := strings.Fields(text)
	for i := range tokens {
		max := len(tokens) - i
		if max > 4 {
			max = 4
		}
		for n := max; n > 0; n-- {
			candidate := strings.Trim(
				strings.Join(tokens[i:i+n], " "), ".,;:!?")
			if candidate == "" {
				continue
			}
			t, err := dateparse.ParseAny(candidate)
			if err != nil {
				continue
			}
			if r.IsValidYear(t.Year()) {
				return t.Format("2006-01-02"), true
			}
		}
	}
	return "", false
}
