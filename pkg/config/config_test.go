package config_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/biodivbd/lepiobs/pkg/config"
)

var _ = Describe("Config", func() {
	Describe("New", func() {
		It("generates a config with default values", func() {
			cfg := New()
			Expect(cfg.JobsNum).To(Equal(4))
			Expect(cfg.TextColumn).To(Equal("post_text"))
			Expect(cfg.MinYear).To(Equal(2011))
			Expect(cfg.MaxYear).To(Equal(2025))
			Expect(cfg.GenusThreshold).To(Equal(100))
			Expect(cfg.SpeciesThreshold).To(Equal(100))
			Expect(cfg.CommonNameThreshold).To(Equal(95))
			Expect(cfg.WithTaxonLookup).To(BeTrue())
			Expect(cfg.PgDB).To(Equal("lepiobs"))
			Expect(cfg.BatchSize).To(Equal(50_000))
			Expect(cfg.ExcludedNames).NotTo(BeEmpty())
			Expect(cfg.CustomAliases).NotTo(BeEmpty())
		})

		It("uses options for setup", func() {
			cfg := New(getOpts()...)
			Expect(cfg.JobsNum).To(Equal(8))
			Expect(cfg.InputDir).To(Equal("/tmp/lepiobs"))
			Expect(cfg.CacheDir).To(Equal(filepath.Join("/tmp/lepiobs", "taxa-cache")))
			Expect(cfg.PostsFile).To(Equal("posts.csv"))
			Expect(cfg.MinYear).To(Equal(2015))
			Expect(cfg.MaxYear).To(Equal(2020))
			Expect(cfg.CommonNameThreshold).To(Equal(90))
			Expect(cfg.WithTaxonLookup).To(BeFalse())
			Expect(cfg.PgHost).To(Equal("localhost"))
		})
	})
})

func getOpts() []Option {
	var opts []Option
	opts = append(opts, OptInputDir("/tmp/lepiobs"))
	opts = append(opts, OptJobsNum(8))
	opts = append(opts, OptPostsFile("posts.csv"))
	opts = append(opts, OptYearRange(2015, 2020))
	opts = append(opts, OptCommonNameThreshold(90))
	opts = append(opts, OptWithTaxonLookup(false))
	opts = append(opts, OptPgHost("localhost"))
	opts = append(opts, OptPgUser("postgres"))
	opts = append(opts, OptPgPass(""))
	opts = append(opts, OptPgDB("lepiobs"))
	return opts
}
