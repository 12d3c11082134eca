package ledger

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(filepath.Join(tmpDir, "slips"))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		var (
			filename  string
			savedName string
			err       error
		)

		BeforeEach(func() {
			filename = "abc_slip.jpg"
		})

		JustBeforeEach(func() {
			savedName, err = storage.Save(filename, []byte("slip image"))
		})

		When("saving succeeds", func() {
			It("should return the name", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(savedName).To(Equal(filename))
			})

			It("should write the file into the base directory", func() {
				Expect(filepath.Join(tmpDir, "slips", filename)).To(BeAnExistingFile())
			})
		})

		When("the name escapes the base directory", func() {
			BeforeEach(func() {
				filename = "../escape.jpg"
			})

			It("returns an error", func() {
				Expect(err).To(MatchError(ContainSubstring("invalid file name")))
				Expect(filepath.Join(tmpDir, "escape.jpg")).NotTo(BeAnExistingFile())
			})
		})
	})

	Describe("Get", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				Expect(os.WriteFile(filepath.Join(tmpDir, "slips", "a.png"), []byte("png"), 0644)).To(Succeed())
			})

			It("returns its contents", func() {
				data, err := storage.Get("a.png")
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(Equal([]byte("png")))
			})
		})

		When("the file does not exist", func() {
			It("returns an error", func() {
				_, err := storage.Get("missing.png")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Delete", func() {
		It("removes the file", func() {
			_, err := storage.Save("gone.jpg", []byte("x"))
			Expect(err).NotTo(HaveOccurred())

			Expect(storage.Delete("gone.jpg")).To(Succeed())
			Expect(filepath.Join(tmpDir, "slips", "gone.jpg")).NotTo(BeAnExistingFile())
		})

		When("the file does not exist", func() {
			It("returns an error", func() {
				Expect(storage.Delete("missing.jpg")).To(HaveOccurred())
			})
		})
	})
})
