package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"net/http"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

const pngMimeType = "image/png"

// pdfToImage renders the first page of a PDF. Slips exported from banking
// apps are single page.
func pdfToImage(pdfData []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return img, nil
}

// decodeImage decodes HEIC/HEIF (common on iPhones) and the formats the
// standard library registers
func decodeImage(imageData []byte, mimeType string) (image.Image, error) {
	if isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		img, err := heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		if strings.Contains(err.Error(), "unknown format") {
			return nil, fmt.Errorf("unsupported image format. Supported formats: JPEG, PNG, GIF, HEIC, HEIF, PDF: %w", err)
		}
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEICFormat checks for an ftyp box with a HEIC/HEIF brand at offset 4
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// detectMimeType sniffs the content when the client did not declare a type
func detectMimeType(imageData []byte, contentType string) string {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if mimeType != "" && mimeType != "application/octet-stream" {
		return mimeType
	}
	if isHEICFormat(imageData) {
		return "image/heic"
	}
	return strings.Split(http.DetectContentType(imageData), ";")[0]
}

// convertToPNG converts PDFs and non-PNG images to PNG.
// Returns the PNG data and whether a conversion happened.
func convertToPNG(imageData []byte, mimeType string) ([]byte, bool, error) {
	var (
		img image.Image
		err error
	)
	switch {
	case mimeType == "application/pdf":
		img, err = pdfToImage(imageData)
		if err != nil {
			return nil, false, fmt.Errorf("converting PDF to image: %w", err)
		}
	case mimeType == pngMimeType && !isHEICFormat(imageData):
		return imageData, false, nil
	default:
		img, err = decodeImage(imageData, mimeType)
		if err != nil {
			return nil, false, fmt.Errorf("converting image to PNG: %w", err)
		}
	}

	pngData, err := encodePNG(img)
	if err != nil {
		return nil, false, err
	}
	return pngData, true, nil
}

// prepareImageData normalizes the MIME type and converts the image to PNG.
// Returns the image data, its MIME type and whether a conversion happened.
func prepareImageData(imageData []byte, contentType string) ([]byte, string, bool, error) {
	if len(imageData) == 0 {
		return nil, "", false, fmt.Errorf("image is empty")
	}

	finalImageData, converted, err := convertToPNG(imageData, detectMimeType(imageData, contentType))
	if err != nil {
		return nil, "", false, err
	}
	return finalImageData, pngMimeType, converted, nil
}
