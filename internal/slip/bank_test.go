package slip

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IdentifyBank", func() {
	DescribeTable("bank branding",
		func(input string, expected Bank) {
			Expect(IdentifyBank(input)).To(HaveValue(Equal(expected)))
		},
		Entry("PromptPay in Thai", "โอนผ่านพร้อมเพย์", PromptPay),
		Entry("PromptPay in English", "PROMPT PAY transfer", PromptPay),
		Entry("Kasikorn in Thai", "ธนาคารกสิกรไทย", KBank),
		Entry("KBank ticker", "kbank", KBank),
		Entry("K-Bank with hyphen", "K-Bank", KBank),
		Entry("SCB ticker", "SCB easy", SCB),
		Entry("SCB in Thai", "ไทยพาณิชย์", SCB),
		Entry("Bangkok Bank in Thai", "ธนาคารกรุงเทพ", BangkokBank),
		Entry("Bangkok Bank ticker", "BBL", BangkokBank),
		Entry("Krungthai in Thai", "กรุงไทย", Krungthai),
		Entry("Krungthai ticker", "KTB netbank", Krungthai),
		Entry("TMB in Thai", "ทหารไทยธนชาต", TTB),
		Entry("TTB ticker", "ttb touch", TTB),
		Entry("Krungsri in Thai", "กรุงศรีอยุธยา", Krungsri),
		Entry("Krungsri ticker", "BAY", Krungsri),
		Entry("GSB in Thai", "ธนาคารออมสิน", GSB),
		Entry("GSB ticker", "GSB", GSB),
	)

	It("should return the first bank in table order when several match", func() {
		Expect(IdentifyBank("SCB → พร้อมเพย์")).To(HaveValue(Equal(PromptPay)))
	})

	It("should not take the Bangkok city name for Bangkok Bank", func() {
		Expect(IdentifyBank("ธนาคารกรุงไทย สาขา กรุงเทพมหานคร")).To(HaveValue(Equal(Krungthai)))
	})

	It("should not match tickers inside other words", func() {
		Expect(IdentifyBank("ebay order")).To(BeNil())
	})

	It("should return nil without branding", func() {
		Expect(IdentifyBank("cash")).To(BeNil())
	})

	It("should list the eight recognized banks", func() {
		Expect(Banks()).To(Equal([]Bank{PromptPay, KBank, SCB, BangkokBank, Krungthai, TTB, Krungsri, GSB}))
	})
})
