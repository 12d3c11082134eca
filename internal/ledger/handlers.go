package ledger

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/zombor/slip-tracker/internal/slip"
)

const (
	maxUploadSize = int64(20 << 20) // 20MB
	maxTextSize   = int64(1 << 20)  // 1MB of OCR text
)

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes a JSON error body with CORS headers set
func writeError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	writeJSON(w, code, map[string]string{"error": message})
}

// writeServiceError maps service errors to status codes
func writeServiceError(w http.ResponseWriter, err error, notFound string) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		writeError(w, notFound, http.StatusNotFound)
	case errors.Is(err, ErrInsightsDisabled):
		writeError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		slog.Error("Request failed", "error", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// contentTypeFromFilename guesses the MIME type when the client sent none
func contentTypeFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleUploadSlip stores, reads and parses an uploaded slip image
func (s *Server) handleUploadSlip(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, "File is too large. Maximum size is 20MB.", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeError(w, "No file was selected. Please choose a slip to upload.", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if contentType == "" {
		contentType = contentTypeFromFilename(header.Filename)
	}

	scan, err := s.service.ScanSlip(header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error scanning slip", "filename", header.Filename, "error", err)
		writeError(w, "Error storing slip. Please try again.", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, scan)
}

// handleParseSlip parses OCR text posted as JSON
func (s *Server) handleParseSlip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxTextSize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, "Text is too large. Maximum size is 1MB.", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.service.ParseText(req.Text))
}

// handleListTransactions returns all transactions
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.service.ListTransactions()
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// handleCreateTransaction records a transaction
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := s.service.CreateTransaction(in)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// handleGetTransaction returns a single transaction
func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.service.GetTransaction(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleGetSlipFile returns the slip image of a transaction
func (s *Server) handleGetSlipFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.GetSlipFile(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Slip not found")
		return
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteTransaction deletes a transaction
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteTransaction(r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Transaction not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseRange reads the optional from/to query parameters
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.Parse(dateLayout, v); err != nil {
			return from, to, &ValidationError{Field: "from", Message: "must be YYYY-MM-DD"}
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.Parse(dateLayout, v); err != nil {
			return from, to, &ValidationError{Field: "to", Message: "must be YYYY-MM-DD"}
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, &ValidationError{Field: "to", Message: "must not be before from"}
	}
	return from, to, nil
}

// handleSummary returns the aggregated totals
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}

	summary, err := s.service.Summary(from, to)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleInsights returns generated advice for the summary of the range
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}

	text, err := s.service.Insights(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insight": text})
}

// handleListBanks returns the banks recognized on slips
func (s *Server) handleListBanks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, slip.Banks())
}
