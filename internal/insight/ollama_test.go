package insight

import (
	"context"
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/zombor/slip-tracker/internal/ledger"
)

var _ = Describe("Ollama", func() {
	var (
		server    *ghttp.Server
		generator *Ollama
		text      string
		err       error
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		generator = NewOllama(server.URL()+"/", "")
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		text, err = generator.Generate(context.Background(), &ledger.Summary{Totals: totals("100", "40", 2)})
	})

	When("the model answers", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/api/generate"),
				ghttp.VerifyContentType("application/json"),
				func(w http.ResponseWriter, r *http.Request) {
					var req generateRequest
					Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
					Expect(req.Model).To(Equal("qwen2.5"))
					Expect(req.Stream).To(BeFalse())
					Expect(req.Prompt).To(ContainSubstring("Net: 60.00"))
				},
				ghttp.RespondWithJSONEncoded(http.StatusOK, generateResponse{
					Response: "\nIncome exceeded expenses by 60 THB.\n",
					Done:     true,
				}),
			))
		})

		It("returns the trimmed text", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("Income exceeded expenses by 60 THB."))
		})
	})

	When("the model returns nothing", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, generateResponse{Done: true}))
		})

		It("returns an error", func() {
			Expect(err).To(MatchError(ContainSubstring("empty response")))
		})
	})

	When("the API fails", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, "model not found"))
		})

		It("returns an error with the status", func() {
			Expect(err).To(MatchError(ContainSubstring("status 500")))
			Expect(err).To(MatchError(ContainSubstring("model not found")))
		})
	})
})
