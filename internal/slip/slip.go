package slip

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Data contains the fields extracted from the OCR text of a transfer slip.
// Every field except RawText is nil when no confident match was found.
type Data struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Date      *string          `json:"date,omitempty"` // YYYY-MM-DD, Gregorian
	Time      *string          `json:"time,omitempty"` // HH:MM, 24-hour
	BankName  *Bank            `json:"bank_name,omitempty"`
	RefNumber *string          `json:"ref_number,omitempty"`
	RawText   string           `json:"raw_text"`
}

// Description builds a transaction description from the bank and reference.
// Returns an empty string when neither was found.
func (d Data) Description() string {
	var parts []string
	if d.BankName != nil {
		parts = append(parts, string(*d.BankName))
	}
	if d.RefNumber != nil {
		parts = append(parts, "Ref: "+*d.RefNumber)
	}
	return strings.Join(parts, " ")
}

var thaiDigits = strings.NewReplacer(
	"๐", "0", "๑", "1", "๒", "2", "๓", "3", "๔", "4",
	"๕", "5", "๖", "6", "๗", "7", "๘", "8", "๙", "9",
)

// normalizeDigits rewrites Thai numerals as ASCII digits
func normalizeDigits(text string) string {
	return thaiDigits.Replace(text)
}

func ptr[T any](v T) *T {
	return &v
}
