package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func sampleTransaction(id string) *Transaction {
	created := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	return &Transaction{
		ID:          id,
		Kind:        Expense,
		Amount:      mustDecimal("1500.50"),
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Time:        "14:30",
		Description: "K-Bank Ref: ABC1234567890",
		Category:    "supplies",
		BankName:    "K-Bank",
		RefNumber:   "ABC1234567890",
		SlipFile:    id + "_slip.jpg",
		ContentType: "image/jpeg",
		RawText:     "จำนวน 1,500.50 บาท",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

// describeDB runs the behaviour every DB backend must share
func describeDB(open func(path string) (DB, error)) {
	var db DB

	BeforeEach(func() {
		var err error
		db, err = open(filepath.Join(GinkgoT().TempDir(), "test.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveTransaction", func() {
		It("should round trip every field", func() {
			Expect(db.SaveTransaction(sampleTransaction("tx1"))).To(Succeed())

			saved, err := db.GetTransaction("tx1")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Kind).To(Equal(Expense))
			Expect(saved.Amount.Equal(mustDecimal("1500.50"))).To(BeTrue())
			Expect(saved.Date).To(BeTemporally("==", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
			Expect(saved.Time).To(Equal("14:30"))
			Expect(saved.Description).To(Equal("K-Bank Ref: ABC1234567890"))
			Expect(saved.Category).To(Equal("supplies"))
			Expect(saved.BankName).To(Equal("K-Bank"))
			Expect(saved.RefNumber).To(Equal("ABC1234567890"))
			Expect(saved.SlipFile).To(Equal("tx1_slip.jpg"))
			Expect(saved.RawText).To(Equal("จำนวน 1,500.50 บาท"))
		})

		It("should overwrite an existing transaction", func() {
			tx := sampleTransaction("tx1")
			Expect(db.SaveTransaction(tx)).To(Succeed())

			tx.Category = "rent"
			Expect(db.SaveTransaction(tx)).To(Succeed())

			saved, err := db.GetTransaction("tx1")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Category).To(Equal("rent"))

			all, err := db.ListTransactions()
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
		})
	})

	Describe("GetTransaction", func() {
		When("the transaction does not exist", func() {
			It("returns ErrNotFound", func() {
				_, err := db.GetTransaction("missing")
				Expect(err).To(MatchError(ErrNotFound))
			})
		})
	})

	Describe("ListTransactions", func() {
		When("the database is empty", func() {
			It("returns an empty list", func() {
				all, err := db.ListTransactions()
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(BeEmpty())
			})
		})

		When("there are transactions", func() {
			BeforeEach(func() {
				Expect(db.SaveTransaction(sampleTransaction("tx1"))).To(Succeed())
				Expect(db.SaveTransaction(sampleTransaction("tx2"))).To(Succeed())
			})

			It("returns all of them", func() {
				all, err := db.ListTransactions()
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(HaveLen(2))
			})
		})
	})

	Describe("DeleteTransaction", func() {
		It("should remove the transaction", func() {
			Expect(db.SaveTransaction(sampleTransaction("tx1"))).To(Succeed())
			Expect(db.DeleteTransaction("tx1")).To(Succeed())

			_, err := db.GetTransaction("tx1")
			Expect(err).To(MatchError(ErrNotFound))
		})

		When("the transaction does not exist", func() {
			It("returns ErrNotFound", func() {
				Expect(db.DeleteTransaction("missing")).To(MatchError(ErrNotFound))
			})
		})
	})
}

var _ = Describe("BoltDB", func() {
	describeDB(func(path string) (DB, error) {
		return NewBoltDB(path)
	})
})

var _ = Describe("SQLDB", func() {
	describeDB(func(path string) (DB, error) {
		return NewSQLiteDB(path)
	})

	When("the file is not a SQLite database", func() {
		var path string

		BeforeEach(func() {
			path = filepath.Join(GinkgoT().TempDir(), "notes.db")
			Expect(os.WriteFile(path, []byte(strings.Repeat("not a database\n", 64)), 0644)).To(Succeed())
		})

		It("returns an error", func() {
			db, err := NewSQLiteDB(path)
			Expect(err).To(HaveOccurred())
			Expect(db).To(BeNil())
		})
	})
})
