package taxon_test

import (
	"github.com/gnames/gnparser"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/biodivbd/lepiobs/internal/ent/taxon"
)

var _ = Describe("Taxon", func() {
	Describe("CleanForMatch", func() {
		It("removes characters that skew scores", func() {
			Expect(CleanForMatch("[Common] Jay (rare), yes.")).
				To(Equal("Common Jay rare yes"))
		})
	})

	Describe("MatchWordwise", func() {
		choices := []string{"papilio", "graphium", "danaus"}

		It("finds an exact token", func() {
			Expect(MatchWordwise("saw a papilio today", choices, 100)).
				To(Equal("papilio"))
		})

		It("rejects close misses at a strict threshold", func() {
			Expect(MatchWordwise("saw papilios today", choices, 100)).
				To(Equal(""))
		})

		It("accepts close misses at a relaxed threshold", func() {
			Expect(MatchWordwise("saw papilios today", choices, 90)).
				To(Equal("papilio"))
		})

		It("scores multi-word choices per token", func() {
			common := []string{"Common Jay", "Common Tiger"}
			Expect(MatchWordwise("a common jay on a flower", common, 95)).
				To(Equal("Common Jay"))
		})

		It("returns empty on empty text", func() {
			Expect(MatchWordwise("", choices, 100)).To(Equal(""))
		})
	})

	Describe("Table", func() {
		records := []Record{
			{Genus: "graphium", Species: "doson", CommonName: "Common Jay"},
			{Genus: "graphium", Species: "doson", CommonName: "Common Jay"},
			{Genus: "danaus", Species: "genutia", CommonName: "Common Tiger"},
		}

		It("deduplicates records", func() {
			t := NewTable(records)
			Expect(t.Len()).To(Equal(2))
		})

		It("matches all three fields", func() {
			t := NewTable(records)
			th := Thresholds{Genus: 100, Species: 100, CommonName: 95}
			m := t.Match("spotted a common jay graphium doson", th)
			Expect(m.Genus).To(Equal("graphium"))
			Expect(m.Species).To(Equal("doson"))
			Expect(m.CommonName).To(Equal("Common Jay"))
		})

		It("leaves fields empty when nothing clears the bar", func() {
			t := NewTable(records)
			th := Thresholds{Genus: 100, Species: 100, CommonName: 95}
			m := t.Match("an unidentified brown butterfly", th)
			Expect(m.Genus).To(Equal(""))
			Expect(m.Species).To(Equal(""))
			Expect(m.CommonName).To(Equal(""))
		})
	})

	Describe("FillFromCandidates", func() {
		candidates := []string{"Graphium doson", "Graphium agamemnon"}

		It("fills empty fields from text-confirmed candidates", func() {
			m := Match{}
			FillFromCandidates("saw a graphium doson butterfly", candidates, &m)
			Expect(m.Genus).To(Equal("graphium"))
			Expect(m.Species).To(Equal("doson"))
		})

		It("keeps already resolved fields", func() {
			m := Match{Genus: "danaus"}
			FillFromCandidates("saw a graphium doson butterfly", candidates, &m)
			Expect(m.Genus).To(Equal("danaus"))
			Expect(m.Species).To(Equal("doson"))
		})

		It("does nothing without candidates", func() {
			m := Match{}
			FillFromCandidates("saw a graphium doson butterfly", nil, &m)
			Expect(m.Genus).To(Equal(""))
		})
	})

	Describe("ParseBinomial", func() {
		var gnp gnparser.GNparser

		BeforeEach(func() {
			gnp = gnparser.New(gnparser.NewConfig())
		})

		It("parses a binomial", func() {
			genus, species := ParseBinomial(gnp, "Graphium doson")
			Expect(genus).To(Equal("graphium"))
			Expect(species).To(Equal("doson"))
		})

		It("ignores infraspecific parts", func() {
			genus, species := ParseBinomial(gnp, "Graphium doson doson")
			Expect(genus).To(Equal("graphium"))
			Expect(species).To(Equal("doson"))
		})

		It("handles a bare genus", func() {
			genus, species := ParseBinomial(gnp, "Graphium")
			Expect(genus).To(Equal("graphium"))
			Expect(species).To(Equal(""))
		})

		It("returns empty on empty input", func() {
			genus, species := ParseBinomial(gnp, "  ")
			Expect(genus).To(Equal(""))
			Expect(species).To(Equal(""))
		})
	})
})
