package slip

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractDate", func() {
	var (
		text string
		date *string
	)

	JustBeforeEach(func() {
		date = ExtractDate(text)
	})

	DescribeTable("numeric dates",
		func(input, expected string) {
			Expect(ExtractDate(input)).To(HaveValue(Equal(expected)))
		},
		Entry("two-digit Buddhist year", "วันที่ 15/03/68", "2025-03-15"),
		Entry("four-digit Buddhist year", "1/2/2567", "2024-02-01"),
		Entry("Gregorian year", "09-11-2024", "2024-11-09"),
		Entry("dash separators and short year", "5-6-67", "2024-06-05"),
		Entry("Thai numerals", "๑๕/๐๓/๒๕๖๘", "2025-03-15"),
	)

	DescribeTable("Thai month names",
		func(input, expected string) {
			Expect(ExtractDate(input)).To(HaveValue(Equal(expected)))
		},
		Entry("full name with Buddhist year", "15 มกราคม 2567", "2024-01-15"),
		Entry("abbreviation with short year", "3 ต.ค. 68", "2025-10-03"),
		Entry("no spaces", "28ก.พ.2567", "2024-02-28"),
		Entry("December abbreviation", "วันที่ 31 ธ.ค. 2566 เวลา 23:59", "2023-12-31"),
		Entry("full September", "1 กันยายน 2025", "2025-09-01"),
	)

	When("both formats appear", func() {
		BeforeEach(func() {
			text = "1 มกราคม 2567 ref 02/03/2567"
		})

		It("should prefer the numeric date", func() {
			Expect(date).To(HaveValue(Equal("2024-03-02")))
		})
	})

	When("the numeric date is not a real calendar date", func() {
		BeforeEach(func() {
			text = "31/02/2567"
		})

		It("should return nil", func() {
			Expect(date).To(BeNil())
		})
	})

	When("an impossible numeric date precedes a month-name date", func() {
		BeforeEach(func() {
			text = "35/13/68 และ 2 มี.ค. 68"
		})

		It("should fall back to the month-name date", func() {
			Expect(date).To(HaveValue(Equal("2025-03-02")))
		})
	})

	When("a digit group that is not a date comes first", func() {
		BeforeEach(func() {
			text = "บัญชี 12-34-56 วันที่ 15/03/68"
		})

		It("should use the later real date", func() {
			Expect(date).To(HaveValue(Equal("2025-03-15")))
		})
	})

	When("two numeric dates are separated by a single space", func() {
		BeforeEach(func() {
			text = "31/02/68 01/03/68"
		})

		It("should use the second one", func() {
			Expect(date).To(HaveValue(Equal("2025-03-01")))
		})
	})

	When("the date is part of an ISO timestamp", func() {
		BeforeEach(func() {
			text = "2024-01-15"
		})

		It("should not read a date out of the middle of the digits", func() {
			Expect(date).To(BeNil())
		})
	})

	When("no date is present", func() {
		BeforeEach(func() {
			text = "โอนเงินสำเร็จ"
		})

		It("should return nil", func() {
			Expect(date).To(BeNil())
		})
	})
})

var _ = Describe("toGregorianYear", func() {
	It("should subtract 543 from Buddhist Era years", func() {
		Expect(toGregorianYear(2567)).To(Equal(2024))
	})

	It("should keep Gregorian years", func() {
		Expect(toGregorianYear(2024)).To(Equal(2024))
	})

	It("should keep 2500 itself", func() {
		Expect(toGregorianYear(2500)).To(Equal(2500))
	})
})
