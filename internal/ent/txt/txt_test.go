package txt_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/biodivbd/lepiobs/internal/ent/txt"
)

var _ = Describe("Txt", func() {
	Describe("Normalize", func() {
		It("lowercases and collapses whitespace", func() {
			Expect(Normalize("  Saw a   Butterfly Today ")).
				To(Equal("saw a butterfly today"))
		})

		It("folds accented characters to ASCII", func() {
			Expect(Normalize("Café près du lac")).
				To(Equal("cafe pres du lac"))
		})

		It("removes zero-width characters", func() {
			Expect(Normalize("butter\u200bfly\ufeff")).
				To(Equal("butterfly"))
		})

		It("drops characters without an ASCII equivalent", func() {
			Expect(Normalize("প্রজাপতি butterfly")).
				To(Equal("butterfly"))
		})
	})

	Describe("NormalizeAll", func() {
		It("normalizes every element", func() {
			res := NormalizeAll([]string{"  One ", "TWO"})
			Expect(res).To(Equal([]string{"one", "two"}))
		})
	})

	Describe("RemoveURLs", func() {
		It("strips http links", func() {
			Expect(RemoveURLs("photo at https://example.com/p/1")).
				To(Equal("photo at"))
		})

		It("strips www links", func() {
			Expect(RemoveURLs("see www.example.com")).
				To(Equal("see"))
		})
	})

	Describe("RemoveEmojis", func() {
		It("strips pictographic characters", func() {
			Expect(RemoveEmojis("what a find 😍")).
				To(Equal("what a find"))
		})

		It("keeps plain text intact", func() {
			Expect(RemoveEmojis("Common Jay at rest")).
				To(Equal("Common Jay at rest"))
		})
	})

	Describe("NormalizeHashtags", func() {
		It("converts hashtags to plain words", func() {
			Expect(NormalizeHashtags("#butterfly of #Bangladesh")).
				To(Equal("butterfly of Bangladesh"))
		})
	})

	Describe("RemovePunctuation", func() {
		It("keeps a parenthesized scientific name", func() {
			Expect(RemovePunctuation("Common Jay (Graphium doson)")).
				To(Equal("Graphium doson"))
		})

		It("removes punctuation when no parentheses exist", func() {
			Expect(RemovePunctuation("Beautiful butterfly!!!")).
				To(Equal("Beautiful butterfly"))
		})
	})

	Describe("CleanFull", func() {
		It("applies configured cleaners and normalizes", func() {
			cfg := CleanConfig{URLs: true, Emojis: true, Hashtags: true}
			res := CleanFull("Common Jay 😍 #butterflies https://t.co/x", cfg)
			Expect(res).To(Equal("common jay butterflies"))
		})

		It("always normalizes even with cleaners off", func() {
			res := CleanFull("  Common   JAY ", CleanConfig{})
			Expect(res).To(Equal("common jay"))
		})
	})
})
