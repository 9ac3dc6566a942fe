package config

import (
	"os"
	"path/filepath"
)

// Place pairs a canonical place name with its "lat, lon" coordinate
// string. Alias and standardization maps resolve variants to Places.
type Place struct {
	Name   string
	Coords string
}

// Default deny-lists and override maps, curated for Bangladesh posts.
// Every one of them is replaceable through options.
var (
	// excludedAry holds gazetteer names that collide with common words
	// and drown the output in false positives.
	excludedAry = []string{
		"Aria", "Asia", "Bangladesh", "Dana", "dia",
		"Had", "Indra", "Kayes",
	}

	// unwantedAry holds matches that survive index construction but are
	// known to be ambiguous fragments, dropped from final output.
	unwantedAry = []string{"Bangla", "Dia", "Dina", "Kumar N", "Tara"}

	// aliasMap maps misspellings and abbreviations seen in posts to
	// their canonical places.
	aliasMap = map[string]Place{
		"chattagram":      {"Chittagong", "22.4875, 91.96333"},
		"chapanawabganj":  {"Chapai Nawabganj", "24.59895, 88.28339"},
		"chapainawabganj": {"Chapai Nawabganj", "24.59895, 88.28339"},
		"khagrachori":     {"Khagrachari", "22.66881, 92.38407"},
		"bandorban":       {"Bandarban", "22.19534, 92.21946"},
		"banderban":       {"Bandarban", "22.19534, 92.21946"},
		"coxbazar":        {"Coxs Bazar", "21.44795, 92.10732"},
		"habigonj":        {"Habiganj", "24.38044, 91.41299"},
		"moulavibazar":    {"Maulavi Bazar", "24.48888, 91.77075"},
		"moulovibazar":    {"Maulavi Bazar", "24.48888, 91.77075"},
		"hazarikhil wildlife sanctuary": {
			"Hazarikhil Wildlife Sanctuary", "22.7059, 91.6909"},
		"Sreemongol": {"Sreemangal", "24.3, 91.68"},
	}

	// standardMap rewrites variant names the gazetteer itself carries
	// to one canonical form per place.
	standardMap = map[string]Place{
		"Sundarban":           {"Sundarbans", "22.0, 89.0"},
		"Sylhet Division":     {"Sylhet", "24.89904, 91.87198"},
		"Sreemangal":          {"Srimangal", "24.30652, 91.72955"},
		"Rajshahi University": {"Rajshahi", "24.374, 88.60114"},
		"Lakshmipu":           {"Laxmipur", "25.81429, 88.27485"},
		"Kishorganj":          {"Kishoregonj", "24.41667, 90.95"},
		"Hathazari Upazila":   {"Hathazari", "22.50515, 91.81339"},
		"Chattogram":          {"Chittagong", "22.4875, 91.96333"},
	}
)

// Config is a struct that holds configuration parameters for the package.
type Config struct {
	// InputDir is a directory for temporary files and the lookup cache.
	InputDir string

	// CacheDir is a directory for the taxonomy lookup key-value cache.
	CacheDir string

	// JobsNum is a number of concurrent goroutines.
	JobsNum int

	// PostsFile is the CSV file with raw social-media posts.
	PostsFile string

	// GazetteerFile is the tab-separated GeoNames file.
	GazetteerFile string

	// ReferenceFile is the reference species table CSV.
	ReferenceFile string

	// PhotoGuideFile is an optional photographic-guide supplement CSV.
	PhotoGuideFile string

	// OutputFile is where the enriched table is written.
	OutputFile string

	// TextColumn is the posts column holding the post text.
	TextColumn string

	// DateColumn is an optional posts column with a pre-supplied date.
	DateColumn string

	// MinYear and MaxYear bound the valid observation-year window.
	MinYear int
	MaxYear int

	// GenusThreshold, SpeciesThreshold and CommonNameThreshold are
	// minimum fuzzy-match scores (0-100) per identification field.
	GenusThreshold      int
	SpeciesThreshold    int
	CommonNameThreshold int

	// CleanHashtags and CleanPunctuation toggle the optional cleaning
	// steps; URL and emoji removal are always on.
	CleanHashtags    bool
	CleanPunctuation bool

	// ExcludedNames are gazetteer names excluded at index construction.
	ExcludedNames []string

	// UnwantedLocations are matches dropped from final output.
	UnwantedLocations []string

	// CustomAliases map misspellings and abbreviations to places.
	CustomAliases map[string]Place

	// LocationStandards rewrite variant names to one canonical form.
	LocationStandards map[string]Place

	// AdditionalSpecies maps common names to scientific names that are
	// missing from the reference table.
	AdditionalSpecies map[string]string

	// WithTaxonLookup enables the external taxonomy fallback for rows
	// with a common name but no genus or species.
	WithTaxonLookup bool

	// TaxonAPIURL is the endpoint of the taxonomy lookup service.
	TaxonAPIURL string

	// PgHost is a host name for PostgreSQL.
	PgHost string

	// PgUser is a user name for PostgreSQL.
	PgUser string

	// PgPass is a password for PostgreSQL.
	PgPass string

	// PgDB is a database name for PostgreSQL.
	PgDB string

	// BatchSize is a number of records to be saved in one transaction.
	BatchSize int
}

// Option type allows to change settings for Config.
type Option func(*Config)

// OptInputDir sets a directory for temporary files and caches.
func OptInputDir(d string) Option {
	return func(cfg *Config) {
		cfg.InputDir = d
		cfg.CacheDir = filepath.Join(d, "taxa-cache")
	}
}

// OptJobsNum sets parallelism number for concurrent goroutines.
func OptJobsNum(j int) Option {
	return func(cfg *Config) {
		cfg.JobsNum = j
	}
}

// OptPostsFile sets the raw posts CSV file.
func OptPostsFile(p string) Option {
	return func(cfg *Config) {
		cfg.PostsFile = p
	}
}

// OptGazetteerFile sets the GeoNames gazetteer file.
func OptGazetteerFile(p string) Option {
	return func(cfg *Config) {
		cfg.GazetteerFile = p
	}
}

// OptReferenceFile sets the reference species table file.
func OptReferenceFile(p string) Option {
	return func(cfg *Config) {
		cfg.ReferenceFile = p
	}
}

// OptPhotoGuideFile sets the photographic-guide supplement file.
func OptPhotoGuideFile(p string) Option {
	return func(cfg *Config) {
		cfg.PhotoGuideFile = p
	}
}

// OptOutputFile sets the output file for the enriched table.
func OptOutputFile(p string) Option {
	return func(cfg *Config) {
		cfg.OutputFile = p
	}
}

// OptTextColumn sets the posts column holding post text.
func OptTextColumn(c string) Option {
	return func(cfg *Config) {
		cfg.TextColumn = c
	}
}

// OptDateColumn sets the posts column with a pre-supplied date.
func OptDateColumn(c string) Option {
	return func(cfg *Config) {
		cfg.DateColumn = c
	}
}

// OptYearRange sets the valid observation-year window.
func OptYearRange(minYear, maxYear int) Option {
	return func(cfg *Config) {
		cfg.MinYear = minYear
		cfg.MaxYear = maxYear
	}
}

// OptGenusThreshold sets the fuzzy-match threshold for genus.
func OptGenusThreshold(t int) Option {
	return func(cfg *Config) {
		cfg.GenusThreshold = t
	}
}

// OptSpeciesThreshold sets the fuzzy-match threshold for species.
func OptSpeciesThreshold(t int) Option {
	return func(cfg *Config) {
		cfg.SpeciesThreshold = t
	}
}

// OptCommonNameThreshold sets the fuzzy-match threshold for common names.
func OptCommonNameThreshold(t int) Option {
	return func(cfg *Config) {
		cfg.CommonNameThreshold = t
	}
}

// OptCleanHashtags toggles hashtag normalization during cleaning.
func OptCleanHashtags(b bool) Option {
	return func(cfg *Config) {
		cfg.CleanHashtags = b
	}
}

// OptCleanPunctuation toggles punctuation removal during cleaning.
func OptCleanPunctuation(b bool) Option {
	return func(cfg *Config) {
		cfg.CleanPunctuation = b
	}
}

// OptExcludedNames replaces the gazetteer exclusion list.
func OptExcludedNames(names []string) Option {
	return func(cfg *Config) {
		cfg.ExcludedNames = names
	}
}

// OptUnwantedLocations replaces the unwanted-match list.
func OptUnwantedLocations(names []string) Option {
	return func(cfg *Config) {
		cfg.UnwantedLocations = names
	}
}

// OptCustomAliases replaces the custom alias map.
func OptCustomAliases(aliases map[string]Place) Option {
	return func(cfg *Config) {
		cfg.CustomAliases = aliases
	}
}

// OptLocationStandards replaces the standardization map.
func OptLocationStandards(standards map[string]Place) Option {
	return func(cfg *Config) {
		cfg.LocationStandards = standards
	}
}

// OptAdditionalSpecies replaces the manual species additions map.
func OptAdditionalSpecies(additions map[string]string) Option {
	return func(cfg *Config) {
		cfg.AdditionalSpecies = additions
	}
}

// OptWithTaxonLookup toggles the external taxonomy fallback.
func OptWithTaxonLookup(b bool) Option {
	return func(cfg *Config) {
		cfg.WithTaxonLookup = b
	}
}

// OptTaxonAPIURL sets the taxonomy lookup endpoint.
func OptTaxonAPIURL(u string) Option {
	return func(cfg *Config) {
		cfg.TaxonAPIURL = u
	}
}

// OptPgHost sets host name for PostgreSQL.
func OptPgHost(h string) Option {
	return func(cfg *Config) {
		cfg.PgHost = h
	}
}

// OptPgUser sets user for PostgreSQL.
func OptPgUser(u string) Option {
	return func(cfg *Config) {
		cfg.PgUser = u
	}
}

// OptPgPass sets password for PostgreSQL.
func OptPgPass(p string) Option {
	return func(cfg *Config) {
		cfg.PgPass = p
	}
}

// OptPgDB sets database name for PostgreSQL.
func OptPgDB(d string) Option {
	return func(cfg *Config) {
		cfg.PgDB = d
	}
}

func New(opts ...Option) Config {
	inpDir, err := os.UserCacheDir()
	if err != nil {
		inpDir = os.TempDir()
	}
	inpDir = filepath.Join(inpDir, "lepiobs")

	res := Config{
		InputDir:            inpDir,
		CacheDir:            filepath.Join(inpDir, "taxa-cache"),
		JobsNum:             4,
		OutputFile:          "observations.csv",
		TextColumn:          "post_text",
		MinYear:             2011,
		MaxYear:             2025,
		GenusThreshold:      100,
		SpeciesThreshold:    100,
		CommonNameThreshold: 95,
		ExcludedNames:       excludedAry,
		UnwantedLocations:   unwantedAry,
		CustomAliases:       aliasMap,
		LocationStandards:   standardMap,
		WithTaxonLookup:     true,
		TaxonAPIURL:         "https://api.inaturalist.org/v1",
		PgHost:              "0.0.0.0",
		PgUser:              "postgres",
		PgPass:              "postgres",
		PgDB:                "lepiobs",
		BatchSize:           50_000,
	}

	for _, opt := range opts {
		opt(&res)
	}

	return res
}
