package ocr

import (
	"fmt"
	"strings"
)

// DefaultLanguages are the language hints used when none are configured.
var DefaultLanguages = []string{"th", "en"}

// Recognizer turns an image of a document into the text printed on it.
type Recognizer interface {
	// Recognize returns the text found in the image. Languages are BCP 47
	// hints for the scripts expected on the document.
	Recognize(imageData []byte, contentType string, languages []string) (string, error)
	// Close releases any resources held by the recognizer
	Close() error
}

var languageNames = map[string]string{
	"th": "Thai",
	"en": "English",
}

// transcriptionPrompt builds the instruction shared by all vision model providers
func transcriptionPrompt(languages []string) string {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	names := make([]string, 0, len(languages))
	for _, lang := range languages {
		if name, ok := languageNames[strings.ToLower(lang)]; ok {
			names = append(names, name)
		} else {
			names = append(names, lang)
		}
	}

	return fmt.Sprintf(`You are an OCR engine reading a bank transfer slip or payment receipt.
The document may contain text in: %s.

Transcribe ALL text visible in the image exactly as printed:
- Keep the original script; do not translate.
- Keep numbers, punctuation, dates and times exactly as shown (e.g. "1,500.00", "15 ม.ค. 68", "14:30 น.").
- Put each printed line on its own line, top to bottom.
- Do not summarize, explain or add anything that is not printed.
- Do not use markdown code blocks.`, strings.Join(names, ", "))
}

// cleanTranscript strips markdown fences and surrounding whitespace that
// vision models sometimes wrap around their output.
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence along with any language tag on the same line.
	if idx := strings.Index(text, "\n"); idx != -1 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
