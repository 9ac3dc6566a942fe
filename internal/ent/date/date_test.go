package date_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/biodivbd/lepiobs/internal/ent/date"
)

var _ = Describe("Date", func() {
	var r Resolver

	BeforeEach(func() {
		r = NewResolver()
	})

	Describe("IsValidYear", func() {
		It("accepts years inside the window", func() {
			Expect(r.IsValidYear(2011)).To(BeTrue())
			Expect(r.IsValidYear(2025)).To(BeTrue())
		})

		It("rejects years outside the window", func() {
			Expect(r.IsValidYear(2010)).To(BeFalse())
			Expect(r.IsValidYear(2026)).To(BeFalse())
		})
	})

	Describe("NormalizeYear", func() {
		It("rewrites 2k shorthand", func() {
			Expect(NormalizeYear("2k25")).To(Equal("2025"))
			Expect(NormalizeYear("trip 2k19")).To(Equal("trip 2019"))
		})
	})

	Describe("Extract", func() {
		It("keeps a valid pre-supplied date", func() {
			d, text := r.Extract("some post", "19/07/2025")
			Expect(d).To(Equal("19/07/2025"))
			Expect(text).To(Equal("some post"))
		})

		It("ignores a pre-supplied date outside the window", func() {
			d, _ := r.Extract("nothing dated here", "19/07/2009")
			Expect(d).To(Equal(""))
		})

		It("finds numeric dates and removes them from text", func() {
			d, text := r.Extract("Spotted on 19/07/2025 at dawn", "")
			Expect(d).To(Equal("19/07/2025"))
			Expect(text).NotTo(ContainSubstring("19/07/2025"))
		})

		It("reads the trailing field of two-digit-year dates as the year", func() {
			d, _ := r.Extract("seen on 19/07/25 morning", "")
			Expect(d).To(Equal("19/07/25"))
		})

		It("rejects two-digit-year dates outside the window", func() {
			d, _ := r.Extract("old photo from 19/11/55 album", "")
			Expect(d).To(Equal(""))
		})

		It("finds textual dates", func() {
			d, _ := r.Extract("Seen on 19 July 2025 in Srimangal", "")
			Expect(d).To(Equal("19 July 2025"))
		})

		It("finds month-apostrophe-year forms", func() {
			d, _ := r.Extract("saw blues on July'25 trip", "")
			Expect(d).To(Equal("July'25"))
		})

		It("expands 2k shorthand in matches", func() {
			d, _ := r.Extract("butterfly trip 2k25", "")
			Expect(d).To(Equal("trip 2025"))
		})

		It("falls back to a standalone year", func() {
			d, _ := r.Extract("Seen in 2019 near Sylhet", "")
			Expect(d).To(Equal("2019"))
		})

		It("rejects standalone years outside the window", func() {
			d, _ := r.Extract("archive photo from 2031", "")
			Expect(d).To(Equal(""))
		})

		It("returns empty date and original text on no match", func() {
			d, text := r.Extract("a butterfly on a flower", "")
			Expect(d).To(Equal(""))
			Expect(text).To(Equal("a butterfly on a flower"))
		})
	})

	Describe("custom year window", func() {
		It("respects narrower bounds", func() {
			narrow := Resolver{MinYear: 2020, MaxYear: 2021}
			d, _ := narrow.Extract("Seen in 2019 near Sylhet", "")
			Expect(d).To(Equal(""))
		})
	})
})
