package taxon

import (
	"regexp"
	"strings"

	"github.com/gnames/gnparser"
)

var (
	reGenus   = regexp.MustCompile(`\b([A-Z][a-z]+)\b`)
	reSpecies = regexp.MustCompile(`\b[A-Z][a-z]+\s+([a-z]+)\b`)
)

// ParseBinomial extracts the genus and species epithets from a
// free-form scientific name, both lowercased. Infraspecific parts are
// ignored, so "Graphium doson doson" yields ("graphium", "doson").
// Names the parser rejects go through a plain binomial-pattern fallback;
// empty or non-matching strings yield empty results.
func ParseBinomial(gnp gnparser.GNparser, sciName string) (string, string) {
	sciName = strings.TrimSpace(sciName)
	if sciName == "" {
		return "", ""
	}

	p := gnp.ParseName(sciName)
	if p.Parsed && p.Canonical != nil {
		if parts := strings.Fields(p.Canonical.Simple); len(parts) > 0 {
			genus := strings.ToLower(parts[0])
			var species string
			if len(parts) > 1 {
				species = strings.ToLower(parts[1])
			}
			return genus, species
		}
	}

	var genus, species string
	if m := reGenus.FindStringSubmatch(sciName); m != nil {
		genus = strings.ToLower(m[1])
	}
	if m := reSpecies.FindStringSubmatch(sciName); m != nil {
		species = strings.ToLower(m[1])
	}
	return genus, species
}
