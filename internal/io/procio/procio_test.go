package procio_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/biodivbd/lepiobs/internal/ent/proc"
	. "github.com/biodivbd/lepiobs/internal/io/procio"
	"github.com/biodivbd/lepiobs/pkg/config"
	"github.com/biodivbd/lepiobs/pkg/ent/record"
)

var _ = Describe("Procio", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "procio-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	obs := func(text string) record.Observation {
		rec := record.New(text)
		rec.Text = text
		return rec
	}

	Describe("ProcessDates", func() {
		It("keeps dated rows and drops the rest", func() {
			p := New(config.New(), nil)
			recs := []record.Observation{
				obs("spotted on 19/07/2025 at dawn"),
				obs("a butterfly on a flower"),
			}
			res := p.ProcessDates(recs)
			Expect(res).To(HaveLen(1))
			Expect(res[0].Date).To(Equal("19/07/2025"))
			Expect(res[0].Text).NotTo(ContainSubstring("19/07/2025"))
		})

		It("prefers a valid pre-supplied date", func() {
			p := New(config.New(), nil)
			rec := obs("some sighting in 2019")
			rec.Date = "2021-05-04"
			res := p.ProcessDates([]record.Observation{rec})
			Expect(res).To(HaveLen(1))
			Expect(res[0].Date).To(Equal("2021-05-04"))
		})
	})

	Describe("ProcessLocations", func() {
		// GeoNames dump rows: id, ascii name, name, alt names, lat, lon.
		gazetteer := "1\tx\tSrimangal\tSreemongol\t24.30652\t91.72955\n" +
			"2\tx\tSundarban\t\t21.9\t89.1\n" +
			"3\tx\tTara\t\t23.0\t90.5\n" +
			"4\tx\tFogland\t\tn/a\t90.0\n"

		var p proc.Processor

		BeforeEach(func() {
			path := filepath.Join(dir, "gazetteer.tsv")
			err := os.WriteFile(path, []byte(gazetteer), 0644)
			Expect(err).NotTo(HaveOccurred())
			p = New(config.New(config.OptGazetteerFile(path)), nil)
		})

		It("resolves places with coordinates", func() {
			res, err := p.ProcessLocations([]record.Observation{
				obs("butterflies in srimangal today"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(1))
			Expect(res[0].Location).To(Equal("Srimangal"))
			Expect(res[0].HasCoords).To(BeTrue())
			Expect(res[0].Lat).To(BeNumerically("~", 24.30652, 1e-9))
		})

		It("drops matches on the unwanted list", func() {
			res, err := p.ProcessLocations([]record.Observation{
				obs("met tara at the park"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeEmpty())
		})

		It("standardizes variant names after matching", func() {
			res, err := p.ProcessLocations([]record.Observation{
				obs("camping in sundarban last weekend"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(1))
			Expect(res[0].Location).To(Equal("Sundarbans"))
			Expect(res[0].Lat).To(BeNumerically("~", 22.0, 1e-9))
			Expect(res[0].Lon).To(BeNumerically("~", 89.0, 1e-9))
		})

		It("drops rows with unparsable coordinates", func() {
			res, err := p.ProcessLocations([]record.Observation{
				obs("walking through fogland"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeEmpty())
		})

		It("drops rows without a place match", func() {
			res, err := p.ProcessLocations([]record.Observation{
				obs("no place mentioned at all"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeEmpty())
		})
	})
})
