package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind tells whether money came in or went out
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Transaction represents a recorded income or expense
type Transaction struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Time        string          `json:"time,omitempty"` // HH:MM
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	BankName    string          `json:"bank_name,omitempty"`
	RefNumber   string          `json:"ref_number,omitempty"`
	SlipFile    string          `json:"slip_file,omitempty"` // stored slip image, if any
	ContentType string          `json:"content_type,omitempty"`
	RawText     string          `json:"raw_text,omitempty"` // OCR text kept for manual correction
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionInput holds the user-editable fields of a new transaction
type TransactionInput struct {
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Time        string          `json:"time,omitempty"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	BankName    string          `json:"bank_name,omitempty"`
	RefNumber   string          `json:"ref_number,omitempty"`
	SlipFile    string          `json:"slip_file,omitempty"`
	ContentType string          `json:"content_type,omitempty"`
	RawText     string          `json:"raw_text,omitempty"`
}
