package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func sampleImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func encodeSample(encode func(*bytes.Buffer, image.Image) error) []byte {
	var buf bytes.Buffer
	Expect(encode(&buf, sampleImage())).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("image conversion", func() {
	var (
		pngData  []byte
		jpegData []byte
	)

	BeforeEach(func() {
		pngData = encodeSample(func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })
		jpegData = encodeSample(func(b *bytes.Buffer, img image.Image) error { return jpeg.Encode(b, img, nil) })
	})

	Describe("prepareImageData", func() {
		When("the image is already PNG", func() {
			It("should return it unchanged", func() {
				data, mimeType, converted, err := prepareImageData(pngData, "image/png")
				Expect(err).NotTo(HaveOccurred())
				Expect(converted).To(BeFalse())
				Expect(mimeType).To(Equal("image/png"))
				Expect(data).To(Equal(pngData))
			})
		})

		When("the image is JPEG", func() {
			It("should convert it to PNG", func() {
				data, mimeType, converted, err := prepareImageData(jpegData, "image/jpeg")
				Expect(err).NotTo(HaveOccurred())
				Expect(converted).To(BeTrue())
				Expect(mimeType).To(Equal("image/png"))

				_, format, err := image.Decode(bytes.NewReader(data))
				Expect(err).NotTo(HaveOccurred())
				Expect(format).To(Equal("png"))
			})
		})

		When("no content type is declared", func() {
			It("should sniff the content", func() {
				_, _, converted, err := prepareImageData(jpegData, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(converted).To(BeTrue())
			})
		})

		When("the data is not an image", func() {
			It("returns the error", func() {
				_, _, _, err := prepareImageData([]byte("definitely not an image"), "image/jpeg")
				Expect(err).To(HaveOccurred())
			})
		})

		When("the data is empty", func() {
			It("returns the error", func() {
				_, _, _, err := prepareImageData(nil, "image/png")
				Expect(err).To(MatchError(ContainSubstring("empty")))
			})
		})
	})

	Describe("detectMimeType", func() {
		It("should strip parameters from the declared type", func() {
			Expect(detectMimeType(pngData, "Image/PNG; charset=binary")).To(Equal("image/png"))
		})

		It("should sniff octet-stream uploads", func() {
			Expect(detectMimeType(jpegData, "application/octet-stream")).To(Equal("image/jpeg"))
		})

		It("should recognize HEIC by its magic bytes", func() {
			heicHeader := []byte("\x00\x00\x00\x18ftypheic\x00\x00\x00\x00")
			Expect(detectMimeType(heicHeader, "")).To(Equal("image/heic"))
		})
	})

	Describe("isHEICFormat", func() {
		It("should reject short data", func() {
			Expect(isHEICFormat([]byte("ftyp"))).To(BeFalse())
		})

		It("should accept the mif1 brand", func() {
			Expect(isHEICFormat([]byte("\x00\x00\x00\x18ftypmif1"))).To(BeTrue())
		})

		It("should reject other ftyp brands", func() {
			Expect(isHEICFormat([]byte("\x00\x00\x00\x18ftypisom"))).To(BeFalse())
		})
	})

	Describe("isHEICMimeType", func() {
		It("should match HEIF types case-insensitively", func() {
			Expect(isHEICMimeType(" IMAGE/HEIF ")).To(BeTrue())
			Expect(isHEICMimeType("image/jpeg")).To(BeFalse())
		})
	})
})
