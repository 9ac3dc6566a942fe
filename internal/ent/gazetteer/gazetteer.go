// Package gazetteer resolves place names and coordinates in post text
// using a keyword index built from a GeoNames-style reference table.
package gazetteer

import (
	"sort"
	"strconv"
	"strings"
)

// Entry is one place record: a canonical name, its alternate names and a
// coordinate string in "lat, lon" form.
type Entry struct {
	Name     string
	AltNames []string
	Coords   string
}

// Place pairs a canonical name with its coordinate string. Alias
// overrides and standardization maps resolve to Places.
type Place struct {
	Name   string
	Coords string
}

// Group merges raw entries by canonical name. The first coordinate pair
// for a name wins and alternate names are unioned. The result is sorted
// by descending name length, so index construction registers longer
// names ahead of names that are substrings of them.
func Group(entries []Entry) []Entry {
	byName := make(map[string]*Entry)
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		grouped, ok := byName[name]
		if !ok {
			grouped = &Entry{Name: name, Coords: e.Coords}
			byName[name] = grouped
			order = append(order, name)
		}
		grouped.AltNames = append(grouped.AltNames, e.AltNames...)
	}

	res := make([]Entry, len(order))
	for i, name := range order {
		e := byName[name]
		e.AltNames = dedupStrings(e.AltNames)
		res[i] = *e
	}
	sort.SliceStable(res, func(i, j int) bool {
		return len(res[i].Name) > len(res[j].Name)
	})
	return res
}

func dedupStrings(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	res := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	sort.Strings(res)
	return res
}

// Standardize rewrites known variant names and their coordinates to a
// single canonical form. Unknown names pass through unchanged.
func Standardize(name, coords string, standards map[string]Place) (string, string) {
	if std, ok := standards[name]; ok {
		return std.Name, std.Coords
	}
	return name, coords
}

// ParseCoords parses a "lat, lon" string into a float pair, tolerating
// stray parentheses. Malformed strings yield ok == false.
func ParseCoords(coords string) (lat, lon float64, ok bool) {
	coords = strings.NewReplacer("(", "", ")", "").Replace(coords)
	parts := strings.Split(coords, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
