package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/zombor/slip-tracker/internal/ocr"
	"github.com/zombor/slip-tracker/internal/slip"
)

const dateLayout = "2006-01-02"

// ErrInsightsDisabled is returned when no insight generator is configured
var ErrInsightsDisabled = errors.New("insights are not configured")

// ValidationError reports invalid user input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IDGenerator generates unique IDs for transactions
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// InsightGenerator turns a financial summary into advice text
type InsightGenerator interface {
	Generate(ctx context.Context, summary *Summary) (string, error)
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Options configures optional collaborators of a Service
type Options struct {
	IDGenerator IDGenerator
	TimeSource  TimeSource
	Insights    InsightGenerator
	Languages   []string // OCR language hints
}

// Service handles slip scanning and transaction bookkeeping
type Service struct {
	db          DB
	recognizer  ocr.Recognizer
	storage     Storage
	insights    InsightGenerator
	languages   []string
	idGenerator IDGenerator
	timeSource  TimeSource
	summaries   *cache.Cache
	generation  atomic.Uint64 // counts writes; part of every summary cache key
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, recognizer ocr.Recognizer, storage Storage) *Service {
	return NewServiceWithOptions(db, recognizer, storage, Options{})
}

// NewServiceWithOptions creates a new Service, filling unset options with defaults
func NewServiceWithOptions(db DB, recognizer ocr.Recognizer, storage Storage, opts Options) *Service {
	s := &Service{
		db:          db,
		recognizer:  recognizer,
		storage:     storage,
		insights:    opts.Insights,
		languages:   opts.Languages,
		idGenerator: opts.IDGenerator,
		timeSource:  opts.TimeSource,
		summaries:   cache.New(10*time.Minute, 30*time.Minute),
	}
	if s.idGenerator == nil {
		s.idGenerator = &uuidGenerator{}
	}
	if s.timeSource == nil {
		s.timeSource = &defaultTimeSource{}
	}
	if len(s.languages) == 0 {
		s.languages = ocr.DefaultLanguages
	}
	return s
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	repeatedSpaces      = regexp.MustCompile(`\s+`)
)

// sanitizeFilename trims phone-generated names down to a short safe form
func sanitizeFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if unsafeFilenameChars.MatchString(strings.TrimPrefix(ext, ".")) {
		ext = ""
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = strings.TrimSpace(repeatedSpaces.ReplaceAllString(base, " "))
	base = strings.ReplaceAll(base, " ", "_")

	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "slip"
	}
	return base + ext
}

// Draft is the form pre-fill built from a parsed slip. Every field stays
// editable before the transaction is created.
type Draft struct {
	Kind        Kind   `json:"kind"`
	Amount      string `json:"amount,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	RefNumber   string `json:"ref_number,omitempty"`
	SlipFile    string `json:"slip_file"`
	ContentType string `json:"content_type"`
	RawText     string `json:"raw_text"`
}

// Complete reports whether the slip yielded both an amount and a date. When
// it did not, the user has to fill the form in by hand.
func (d *Draft) Complete() bool {
	return d.Amount != "" && d.Date != ""
}

// SlipScan is the result of uploading a slip
type SlipScan struct {
	Slip     slip.Data `json:"slip"`
	Draft    Draft     `json:"draft"`
	Complete bool      `json:"complete"`
}

func newDraft(data slip.Data, slipFile, contentType string) Draft {
	d := Draft{
		Kind:        Expense,
		Description: data.Description(),
		SlipFile:    slipFile,
		ContentType: contentType,
		RawText:     data.RawText,
	}
	if data.Amount != nil {
		d.Amount = data.Amount.StringFixed(2)
	}
	if data.Date != nil {
		d.Date = *data.Date
	}
	if data.Time != nil {
		d.Time = *data.Time
	}
	if data.BankName != nil {
		d.BankName = string(*data.BankName)
	}
	if data.RefNumber != nil {
		d.RefNumber = *data.RefNumber
	}
	return d
}

// ScanSlip stores a slip image, reads its text and parses it into a draft.
// A failed OCR call is not an error: the draft comes back empty and the user
// fills it in manually.
func (s *Service) ScanSlip(filename string, data []byte, contentType string) (*SlipScan, error) {
	savedName, err := s.storage.Save(fmt.Sprintf("%s_%s", s.idGenerator.Generate(), sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	text, err := s.recognizer.Recognize(data, contentType, s.languages)
	if err != nil {
		slog.Warn("Failed to recognize slip text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		text = ""
	}

	parsed := slip.Parse(text)
	draft := newDraft(parsed, savedName, contentType)
	slog.Debug("Parsed slip",
		"slip_file", savedName,
		"amount", draft.Amount,
		"date", draft.Date,
		"bank", draft.BankName,
	)

	return &SlipScan{
		Slip:     parsed,
		Draft:    draft,
		Complete: draft.Complete(),
	}, nil
}

// ParseText parses OCR text that was obtained elsewhere
func (s *Service) ParseText(text string) slip.Data {
	return slip.Parse(text)
}

// CreateTransaction validates the input and records a new transaction
func (s *Service) CreateTransaction(in TransactionInput) (*Transaction, error) {
	if !in.Kind.Valid() {
		return nil, &ValidationError{Field: "kind", Message: "must be income or expense"}
	}
	if !in.Amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if in.Time != "" {
		if _, err := time.Parse("15:04", in.Time); err != nil {
			return nil, &ValidationError{Field: "time", Message: "must be HH:MM"}
		}
	}

	now := s.timeSource.Now()
	t := &Transaction{
		ID:          s.idGenerator.Generate(),
		Kind:        in.Kind,
		Amount:      in.Amount,
		Date:        date,
		Time:        in.Time,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		BankName:    in.BankName,
		RefNumber:   in.RefNumber,
		SlipFile:    in.SlipFile,
		ContentType: in.ContentType,
		RawText:     in.RawText,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveTransaction(t); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}
	s.invalidateSummaries()
	return t, nil
}

// GetTransaction retrieves a transaction by ID
func (s *Service) GetTransaction(id string) (*Transaction, error) {
	t, err := s.db.GetTransaction(id)
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return t, nil
}

// ListTransactions returns all transactions, newest first
func (s *Service) ListTransactions() ([]*Transaction, error) {
	transactions, err := s.db.ListTransactions()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		a, b := transactions[i], transactions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Time != b.Time {
			return a.Time > b.Time
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return transactions, nil
}

// DeleteTransaction removes a transaction and its slip file
func (s *Service) DeleteTransaction(id string) error {
	t, err := s.db.GetTransaction(id)
	if err != nil {
		return fmt.Errorf("getting transaction for deletion: %w", err)
	}

	if t.SlipFile != "" {
		if err := s.storage.Delete(t.SlipFile); err != nil {
			slog.Warn("Failed to delete slip file", "slip_file", t.SlipFile, "error", err)
		}
	}

	if err := s.db.DeleteTransaction(id); err != nil {
		return fmt.Errorf("deleting transaction from database: %w", err)
	}
	s.invalidateSummaries()
	return nil
}

// GetSlipFile retrieves the slip image attached to a transaction
func (s *Service) GetSlipFile(id string) ([]byte, string, error) {
	t, err := s.db.GetTransaction(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting transaction: %w", err)
	}
	if t.SlipFile == "" {
		return nil, "", fmt.Errorf("transaction %s has no slip: %w", id, ErrNotFound)
	}

	data, err := s.storage.Get(t.SlipFile)
	if err != nil {
		return nil, "", fmt.Errorf("getting slip file: %w", err)
	}
	return data, t.ContentType, nil
}

// Summary returns the totals for transactions dated within [from, to].
// A zero from or to leaves that side of the range open.
func (s *Service) Summary(from, to time.Time) (*Summary, error) {
	// Read before listing: a write during the list moves later reads to a new key.
	key := fmt.Sprintf("%d|%s|%s", s.generation.Load(), from.Format(dateLayout), to.Format(dateLayout))
	if cached, ok := s.summaries.Get(key); ok {
		return cached.(*Summary), nil
	}

	transactions, err := s.db.ListTransactions()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	summary := summarize(transactions, from, to)
	s.summaries.SetDefault(key, summary)
	return summary, nil
}

// invalidateSummaries retires every cached summary after a write
func (s *Service) invalidateSummaries() {
	s.generation.Add(1)
	s.summaries.Flush()
}

// Insights asks the configured generator for advice on the summary of [from, to]
func (s *Service) Insights(ctx context.Context, from, to time.Time) (string, error) {
	if s.insights == nil {
		return "", ErrInsightsDisabled
	}

	summary, err := s.Summary(from, to)
	if err != nil {
		return "", err
	}

	text, err := s.insights.Generate(ctx, summary)
	if err != nil {
		return "", fmt.Errorf("generating insights: %w", err)
	}
	return text, nil
}
