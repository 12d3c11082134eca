// Command slipparse extracts transaction fields from slip text or a slip image
// and prints them as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/slip-tracker/internal/logging"
	"github.com/zombor/slip-tracker/internal/ocr"
	"github.com/zombor/slip-tracker/internal/slip"
)

func main() {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("slipparse")
	var (
		textPath    = fs.StringLong("text", "-", "File with OCR text, '-' for stdin")
		imagePath   = fs.StringLong("image", "", "Slip image to run OCR on instead of reading text")
		ocrType     = fs.StringLong("ocr", "gemini", "OCR engine for --image: 'gemini' or 'ollama'")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "qwen2.5vl", "Ollama vision model name")
		logLevel    = fs.StringLong("log-level", "warn", "Log level: debug, info, warn or error")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SLIP_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(os.Stderr, *logLevel, false)

	var text string
	var err error
	if *imagePath != "" {
		text, err = recognize(*imagePath, *ocrType, *geminiKey, *geminiModel, *ollamaURL, *ollamaModel)
	} else {
		text, err = readText(*textPath)
	}
	if err != nil {
		slog.Error("Failed to read slip", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(slip.Parse(text)); err != nil {
		slog.Error("Failed to encode result", "error", err)
		os.Exit(1)
	}
}

func readText(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("opening text file: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return string(data), nil
}

func recognize(path, ocrType, geminiKey, geminiModel, ollamaURL, ollamaModel string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	var recognizer ocr.Recognizer
	switch ocrType {
	case "gemini":
		if geminiKey == "" {
			geminiKey = os.Getenv("GEMINI_API_KEY")
		}
		recognizer, err = ocr.NewGemini(geminiKey, geminiModel)
	case "ollama":
		recognizer, err = ocr.NewOllama(ollamaURL, ollamaModel)
	default:
		return "", fmt.Errorf("invalid OCR type %q", ocrType)
	}
	if err != nil {
		return "", err
	}
	defer recognizer.Close()

	contentType := http.DetectContentType(data)
	if strings.HasSuffix(strings.ToLower(path), ".heic") {
		contentType = "image/heic"
	}
	return recognizer.Recognize(data, contentType, ocr.DefaultLanguages)
}
