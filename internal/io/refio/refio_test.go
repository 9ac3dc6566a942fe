package refio_test

import (
	"os"
	"path/filepath"

	"github.com/gnames/gnparser"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/biodivbd/lepiobs/internal/ent/taxon"
	. "github.com/biodivbd/lepiobs/internal/io/refio"
)

var _ = Describe("Refio", func() {
	var dir string
	var gnp gnparser.GNparser

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "refio-test")
		Expect(err).NotTo(HaveOccurred())
		gnp = gnparser.New(gnparser.NewConfig())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		err := os.WriteFile(path, []byte(content), 0644)
		Expect(err).NotTo(HaveOccurred())
		return path
	}

	Describe("ReadTable", func() {
		It("loads records from the reference table", func() {
			path := writeFile("ref.csv",
				"Genus,Species,Common_Name,Scientific_Name\n"+
					"graphium,doson,Common Jay,Graphium doson\n"+
					"danaus,genutia,Common Tiger,Danaus genutia\n")
			recs, err := ReadTable(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(recs).To(HaveLen(2))
			Expect(recs[0].Genus).To(Equal("graphium"))
			Expect(recs[0].ScientificName).To(Equal("Graphium doson"))
		})

		It("fails on a missing required column", func() {
			path := writeFile("bad.csv",
				"Genus,Species\ngraphium,doson\n")
			_, err := ReadTable(path)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Common_Name"))
		})

		It("fails on a missing file", func() {
			_, err := ReadTable(filepath.Join(dir, "nope.csv"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ReadPhotoGuide", func() {
		It("parses genus and species out of scientific names", func() {
			path := writeFile("guide.csv",
				"Scientific Name,Common Name\n"+
					"Graphium doson,Common Jay\n"+
					",No Name\n")
			recs, err := ReadPhotoGuide(path, gnp)
			Expect(err).NotTo(HaveOccurred())
			Expect(recs).To(HaveLen(1))
			Expect(recs[0].Genus).To(Equal("graphium"))
			Expect(recs[0].Species).To(Equal("doson"))
			Expect(recs[0].CommonName).To(Equal("Common Jay"))
		})
	})

	Describe("RecordsFromAdditions", func() {
		It("converts additions deterministically", func() {
			additions := map[string]string{
				"Common Tiger": "Danaus genutia",
				"Common Jay":   "Graphium doson",
			}
			recs := RecordsFromAdditions(additions, gnp)
			Expect(recs).To(HaveLen(2))
			Expect(recs[0].CommonName).To(Equal("Common Jay"))
			Expect(recs[1].CommonName).To(Equal("Common Tiger"))
		})

		It("drops additions that do not parse", func() {
			recs := RecordsFromAdditions(map[string]string{"Odd": "???"}, gnp)
			Expect(recs).To(BeEmpty())
		})
	})

	Describe("Merge", func() {
		It("concatenates record sets", func() {
			a := []taxon.Record{{Genus: "graphium"}}
			b := []taxon.Record{{Genus: "danaus"}}
			Expect(Merge(a, b)).To(HaveLen(2))
		})
	})
})
