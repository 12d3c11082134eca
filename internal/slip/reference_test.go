package slip

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractRefNumber", func() {
	DescribeTable("reference codes",
		func(input, expected string) {
			Expect(ExtractRefNumber(input)).To(HaveValue(Equal(expected)))
		},
		Entry("English label", "Ref: ABC1234567890", "ABC1234567890"),
		Entry("upper-case long label", "REFERENCE NO. 2024011512345", "2024011512345"),
		Entry("Thai reference label", "เลขที่อ้างอิง: 0156789AB", "0156789AB"),
		Entry("Thai number label", "เลขที่ 987654321", "987654321"),
		Entry("transaction label", "Transaction ID: TX90001234", "TX90001234"),
		Entry("Thai transaction label", "รายการ 5566778899", "5566778899"),
		Entry("unlabelled bank code", "ผู้รับ ... BAYM20240115123456", "BAYM20240115123456"),
	)

	It("should prefer a labelled code over an unlabelled one", func() {
		Expect(ExtractRefNumber("KB00000000001 ref 778899AA")).To(HaveValue(Equal("778899AA")))
	})

	It("should not return the label word itself", func() {
		Expect(ExtractRefNumber("REFERENCE: pending")).To(BeNil())
	})

	It("should not return lower-case tokens", func() {
		Expect(ExtractRefNumber("ref: abc1234567")).To(BeNil())
	})

	It("should return nil without a code", func() {
		Expect(ExtractRefNumber("โอนเงินสำเร็จ")).To(BeNil())
	})
})
