// Package taxon resolves genus, species and common-name identifications
// in post text by word-wise fuzzy matching against a reference species
// table.
package taxon

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// reMatchClean strips characters that skew token similarity scores.
var reMatchClean = regexp.MustCompile(`[\[\]*().,]`)

// Record is one row of the reference species table.
type Record struct {
	Genus          string
	Species        string
	CommonName     string
	ScientificName string
}

// Thresholds are minimum average scores (0-100) per field. Genus and
// species demand exact-equivalent matches; common names are longer and
// more variable phrases, so their bar is slightly lower.
type Thresholds struct {
	Genus      int
	Species    int
	CommonName int
}

// Match is the per-post identification result. Empty fields mean no
// candidate cleared its threshold.
type Match struct {
	Genus      string
	Species    string
	CommonName string
}

// Table is an immutable reference species table with pre-computed
// candidate pools per field. Build it once per batch and share it
// read-only across workers.
type Table struct {
	records []Record
	genus   []string
	species []string
	common  []string
}

// NewTable deduplicates records and builds the candidate pools. Each
// pool holds the unique non-empty values of its column in first-seen
// order.
func NewTable(records []Record) *Table {
	res := &Table{}
	seen := make(map[Record]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		res.records = append(res.records, r)
	}

	res.genus = uniqueColumn(res.records, func(r Record) string { return r.Genus })
	res.species = uniqueColumn(res.records, func(r Record) string { return r.Species })
	res.common = uniqueColumn(res.records, func(r Record) string { return r.CommonName })
	return res
}

func uniqueColumn(records []Record, field func(Record) string) []string {
	seen := make(map[string]struct{}, len(records))
	var res []string
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}

// Len returns the number of deduplicated records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the deduplicated rows.
func (t *Table) Records() []Record {
	return t.records
}

// Match resolves the three identification fields independently against
// their candidate pools.
func (t *Table) Match(text string, th Thresholds) Match {
	return Match{
		Genus:      MatchWordwise(text, t.genus, th.Genus),
		Species:    MatchWordwise(text, t.species, th.Species),
		CommonName: MatchWordwise(text, t.common, th.CommonName),
	}
}

// CleanForMatch removes brackets, parentheses, asterisks, periods and
// commas that interfere with token comparison.
func CleanForMatch(text string) string {
	return strings.TrimSpace(reMatchClean.ReplaceAllString(text, ""))
}

// MatchWordwise finds the best-scoring choice for a text. Every token of
// a choice gets the maximum similarity ratio against all text tokens;
// the per-token maxima are averaged into the choice's score. The highest
// average at or above the threshold wins, first-encountered on ties.
// Word-wise scoring is more robust than full-string ratios on noisy
// social-media text.
func MatchWordwise(text string, choices []string, threshold int) string {
	words := strings.Fields(CleanForMatch(strings.ToLower(text)))
	if len(words) == 0 {
		return ""
	}

	var best string
	var bestScore float64
	for _, choice := range choices {
		choiceWords := strings.Fields(CleanForMatch(strings.ToLower(choice)))
		if len(choiceWords) == 0 {
			continue
		}

		var sum float64
		for _, cw := range choiceWords {
			top := 0
			for _, w := range words {
				if score := fuzzy.Ratio(cw, w); score > top {
					top = score
				}
			}
			sum += float64(top)
		}
		avg := sum / float64(len(choiceWords))

		if avg > bestScore && avg >= float64(threshold) {
			best, bestScore = choice, avg
		}
	}
	return best
}

// FillFromCandidates enriches a partial match from a ranked candidate
// list of scientific names, usually obtained from an external taxonomy
// lookup by the resolved common name. A candidate's genus (first token)
// or species (second token) is accepted when it occurs verbatim inside
// the post text; the first candidate clearing that bar wins. This is
// advisory only: an empty candidate list leaves the fields as they are.
func FillFromCandidates(text string, candidates []string, m *Match) {
	if len(candidates) == 0 {
		return
	}
	lowered := strings.ToLower(text)

	if m.Genus == "" {
		for _, sci := range candidates {
			parts := strings.Fields(sci)
			if len(parts) < 1 {
				continue
			}
			genus := strings.ToLower(parts[0])
			if fuzzy.PartialRatio(genus, lowered) >= 100 {
				m.Genus = genus
				break
			}
		}
	}

	if m.Species == "" {
		for _, sci := range candidates {
			parts := strings.Fields(sci)
			if len(parts) < 2 {
				continue
			}
			species := strings.ToLower(parts[1])
			if fuzzy.PartialRatio(species, lowered) >= 100 {
				m.Species = species
				break
			}
		}
	}
}
