package procio

import (
	"context"
	"log/slog"

	"github.com/biodivbd/lepiobs/internal/ent/gazetteer"
	"github.com/biodivbd/lepiobs/internal/ent/taxon"
	"github.com/biodivbd/lepiobs/internal/io/gazio"
	"github.com/biodivbd/lepiobs/internal/io/refio"
	"github.com/biodivbd/lepiobs/pkg/ent/record"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnparser"
	"golang.org/x/sync/errgroup"
)

// ProcessDates runs the date cascade on every record. A date supplied
// with the input acts as the pre-validated candidate; the matched
// substring is removed from the record text. Rows without a valid date
// are dropped.
func (p *procio) ProcessDates(recs []record.Observation) []record.Observation {
	res := make([]record.Observation, 0, len(recs))
	for _, rec := range recs {
		extracted, rest := p.resolver.Extract(rec.Text, rec.Date)
		if extracted == "" {
			continue
		}
		rec.Date = extracted
		rec.Text = rest
		res = append(res, rec)
	}
	slog.Info("Extracted dates",
		"kept", humanize.Comma(int64(len(res))),
		"dropped", humanize.Comma(int64(len(recs)-len(res))))
	return res
}

// ProcessLocations builds the keyword index from the gazetteer file and
// resolves one place per record. Matches on the unwanted list, and rows
// whose coordinate string does not parse, are dropped.
func (p *procio) ProcessLocations(
	recs []record.Observation,
) ([]record.Observation, error) {
	entries, err := gazio.Read(p.cfg.GazetteerFile)
	if err != nil {
		return nil, err
	}

	aliases := make(map[string]gazetteer.Place, len(p.cfg.CustomAliases))
	for alias, place := range p.cfg.CustomAliases {
		aliases[alias] = gazetteer.Place{Name: place.Name, Coords: place.Coords}
	}
	standards := make(map[string]gazetteer.Place, len(p.cfg.LocationStandards))
	for variant, place := range p.cfg.LocationStandards {
		standards[variant] = gazetteer.Place{Name: place.Name, Coords: place.Coords}
	}
	unwanted := make(map[string]struct{}, len(p.cfg.UnwantedLocations))
	for _, name := range p.cfg.UnwantedLocations {
		unwanted[name] = struct{}{}
	}

	idx := gazetteer.NewIndex(
		gazetteer.Group(entries), p.cfg.ExcludedNames, aliases)
	slog.Info("Built keyword index", "aliases", idx.Size())

	res := make([]record.Observation, 0, len(recs))
	for _, rec := range recs {
		place, ok := idx.Extract(rec.Text)
		if !ok {
			continue
		}
		if _, bad := unwanted[place.Name]; bad {
			continue
		}
		name, coords := gazetteer.Standardize(place.Name, place.Coords, standards)
		lat, lon, ok := gazetteer.ParseCoords(coords)
		if !ok {
			continue
		}
		rec.Location = name
		rec.Lat, rec.Lon, rec.HasCoords = lat, lon, true
		res = append(res, rec)
	}
	slog.Info("Extracted locations",
		"kept", humanize.Comma(int64(len(res))),
		"dropped", humanize.Comma(int64(len(recs)-len(res))))
	return res, nil
}

// ProcessSpecies matches the three identification fields per record
// against the reference table, then tries the taxonomy fallback for
// rows that found a common name but no genus or species. Fuzzy scoring
// against the full candidate pools is the hot loop of the pipeline, so
// records are spread over JobsNum workers; each row only reads the
// shared table, so no locking is needed.
func (p *procio) ProcessSpecies(
	ctx context.Context,
	recs []record.Observation,
) ([]record.Observation, error) {
	table, err := p.refTable()
	if err != nil {
		return nil, err
	}

	th := taxon.Thresholds{
		Genus:      p.cfg.GenusThreshold,
		Species:    p.cfg.SpeciesThreshold,
		CommonName: p.cfg.CommonNameThreshold,
	}

	type item struct {
		idx int
		rec record.Observation
	}

	out := make([]record.Observation, len(recs))
	chIn := make(chan item)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(chIn)
		for i := range recs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- item{idx: i, rec: recs[i]}:
			}
		}
		return nil
	})

	for i := 0; i < p.cfg.JobsNum; i++ {
		g.Go(func() error {
			for it := range chIn {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				rec := it.rec
				m := table.Match(rec.Text, th)
				p.fillFromLookup(ctx, rec.Text, &m)
				rec.Genus = m.Genus
				rec.Species = m.Species
				rec.CommonName = m.CommonName
				out[it.idx] = rec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("error in goroutines", "error", err)
		return nil, err
	}

	slog.Info("Matched species",
		"rows", humanize.Comma(int64(len(out))),
		"reference_records", table.Len())
	return out, nil
}

// fillFromLookup queries the external taxonomy service for rows with a
// common name but incomplete identification. Lookup failures mean an
// empty candidate list, never an aborted batch.
func (p *procio) fillFromLookup(ctx context.Context, text string, m *taxon.Match) {
	if p.lookup == nil || m.CommonName == "" {
		return
	}
	if m.Genus != "" && m.Species != "" {
		return
	}
	candidates, err := p.lookup.TaxaByName(ctx, m.CommonName)
	if err != nil {
		slog.Debug("Taxa lookup failed",
			"error", err, "common_name", m.CommonName)
		return
	}
	taxon.FillFromCandidates(text, candidates, m)
}

// refTable loads the reference table and merges the optional
// photographic guide and manual additions into it.
func (p *procio) refTable() (*taxon.Table, error) {
	base, err := refio.ReadTable(p.cfg.ReferenceFile)
	if err != nil {
		return nil, err
	}

	sets := [][]taxon.Record{base}
	gnp := gnparser.New(gnparser.NewConfig())

	if p.cfg.PhotoGuideFile != "" {
		photo, err := refio.ReadPhotoGuide(p.cfg.PhotoGuideFile, gnp)
		if err != nil {
			return nil, err
		}
		sets = append(sets, photo)
	}
	if len(p.cfg.AdditionalSpecies) > 0 {
		sets = append(sets, refio.RecordsFromAdditions(p.cfg.AdditionalSpecies, gnp))
	}

	return taxon.NewTable(refio.Merge(sets...)), nil
}
