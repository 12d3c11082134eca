package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/slip-tracker/internal/insight"
	"github.com/zombor/slip-tracker/internal/ledger"
	"github.com/zombor/slip-tracker/internal/logging"
	"github.com/zombor/slip-tracker/internal/ocr"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	fs := ff.NewFlagSet("slip-tracker")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		store         = fs.StringLong("store", "bolt", "Database backend: 'bolt' or 'sqlite'")
		dbPath        = fs.StringLong("db", "slip-tracker.db", "Database file path")
		storagePath   = fs.StringLong("storage", "./slips", "Slip image directory path")
		ocrType       = fs.StringLong("ocr", "gemini", "OCR engine: 'gemini' or 'ollama'")
		ocrLanguages  = fs.StringLong("ocr-languages", "th,en", "Comma separated language hints for OCR")
		insightsType  = fs.StringLong("insights", "", "Insight generator: 'gemini', 'ollama' or empty to disable")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "qwen2.5vl", "Ollama vision model name (e.g., qwen2.5vl, llama3.2-vision)")
		insightsModel = fs.StringLong("insights-model", "", "Model name for insights (defaults per generator)")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		logLevel      = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		logJSON       = fs.BoolLong("log-json", "Write logs as JSON")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SLIP_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	logging.Setup(os.Stderr, *logLevel, *logJSON)

	apiKey := *geminiKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	// Initialize database
	slog.Info("Initializing database...", "store", *store, "path", *dbPath)
	var db ledger.DB
	var err error
	switch *store {
	case "bolt":
		db, err = ledger.NewBoltDB(*dbPath)
	case "sqlite":
		db, err = ledger.NewSQLiteDB(*dbPath)
	default:
		slog.Error("Invalid store type", "type", *store, "valid", "bolt or sqlite")
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize recognizer based on type
	var recognizer ocr.Recognizer
	switch *ocrType {
	case "gemini":
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini OCR...", "model", *geminiModel)
		recognizer, err = ocr.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama OCR...", "url", *ollamaURL, "model", *ollamaModel)
		recognizer, err = ocr.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid OCR type", "type", *ocrType, "valid", "gemini or ollama")
		os.Exit(1)
	}
	defer recognizer.Close()

	// Initialize insight generator, if any
	var insights ledger.InsightGenerator
	switch *insightsType {
	case "":
		slog.Info("Insights disabled")
	case "gemini":
		if apiKey == "" {
			slog.Error("Gemini API key is required for insights")
			os.Exit(1)
		}
		generator, err := insight.NewGemini(apiKey, *insightsModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini insights", "error", err)
			os.Exit(1)
		}
		defer generator.Close()
		insights = generator
	case "ollama":
		insights = insight.NewOllama(*ollamaURL, *insightsModel)
	default:
		slog.Error("Invalid insights type", "type", *insightsType, "valid", "gemini, ollama or empty")
		os.Exit(1)
	}

	// Initialize storage
	slog.Info("Initializing storage...", "path", *storagePath)
	files, err := ledger.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	service := ledger.NewServiceWithOptions(db, recognizer, files, ledger.Options{
		Insights:  insights,
		Languages: splitLanguages(*ocrLanguages),
	})

	basicAuth := ledger.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := ledger.NewServer(service, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

func splitLanguages(s string) []string {
	var languages []string
	for _, lang := range strings.Split(s, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			languages = append(languages, lang)
		}
	}
	return languages
}
