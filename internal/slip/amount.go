package slip

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	number   = `(\d[\d,]*(?:\.\d{1,2})?)`
	currency = `(?:฿|(?i:thb)|บาท)`
	// A marker only owns a number on its own line.
	hspace = `[ \t]*`
)

var (
	currencyBeforeRe = regexp.MustCompile(currency + hspace + number)
	currencyAfterRe  = regexp.MustCompile(number + hspace + currency)
	labelAmountRe    = regexp.MustCompile(`(?:จำนวน(?:เงิน)?|ยอดเงิน|โอน(?:เงิน)?|(?i:amount))\s*:?\s*` + number)
	decimalAmountRe  = regexp.MustCompile(`(\d[\d,]*\.\d{2})(?:\D|$)`)

	maxAmount = decimal.NewFromInt(100_000_000)
)

// ExtractAmount finds the transaction amount in the text.
//
// Numbers next to a currency marker take precedence over numbers after an
// amount label, which take precedence over any two-decimal number. Within the
// first two tiers the first valid match wins; in the last tier the largest
// valid value wins.
func ExtractAmount(text string) *decimal.Decimal {
	text = normalizeDigits(text)

	for _, candidates := range [][]string{
		captures(text, currencyBeforeRe, currencyAfterRe),
		captures(text, labelAmountRe),
	} {
		for _, c := range candidates {
			if amount, ok := parseAmount(c); ok {
				return &amount
			}
		}
	}

	var best *decimal.Decimal
	for _, c := range captures(text, decimalAmountRe) {
		amount, ok := parseAmount(c)
		if !ok {
			continue
		}
		if best == nil || amount.GreaterThan(*best) {
			best = ptr(amount)
		}
	}
	return best
}

// captures returns the first capture group of every match of the given
// patterns, ordered by where the capture starts in the text.
func captures(text string, patterns ...*regexp.Regexp) []string {
	type capture struct {
		start int
		value string
	}
	var found []capture
	for _, re := range patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			found = append(found, capture{start: loc[2], value: text[loc[2]:loc[3]]})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].start < found[j].start
	})

	values := make([]string, 0, len(found))
	for _, c := range found {
		values = append(values, c.value)
	}
	return values
}

// parseAmount strips thousands separators and rejects values outside (0, 100,000,000)
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.Trim(strings.ReplaceAll(s, ",", ""), ".")
	if s == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if !amount.IsPositive() || !amount.LessThan(maxAmount) {
		return decimal.Zero, false
	}
	return amount, true
}
