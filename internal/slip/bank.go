package slip

import "regexp"

// Bank identifies the bank or payment rail that issued a slip.
type Bank string

const (
	PromptPay   Bank = "PromptPay"
	KBank       Bank = "K-Bank"
	SCB         Bank = "SCB"
	BangkokBank Bank = "Bangkok Bank"
	Krungthai   Bank = "Krungthai"
	TTB         Bank = "TTB"
	Krungsri    Bank = "Krungsri"
	GSB         Bank = "GSB"
)

// bankPatterns is scanned in order; the first bank whose branding appears wins.
var bankPatterns = []struct {
	bank Bank
	re   *regexp.Regexp
}{
	{PromptPay, regexp.MustCompile(`(?i)พร้อมเพย์|prompt\s?pay`)},
	{KBank, regexp.MustCompile(`(?i)กสิกร|k-?bank|kasikorn|k\s?plus`)},
	{SCB, regexp.MustCompile(`(?i)ไทยพาณิชย์|\bscb\b|siam commercial`)},
	{BangkokBank, regexp.MustCompile(`(?i)ธนาคารกรุงเทพ|\bbbl\b|bangkok bank|bualuang`)},
	{Krungthai, regexp.MustCompile(`(?i)กรุงไทย|\bktb\b|krung\s?thai`)},
	{TTB, regexp.MustCompile(`(?i)ทหารไทย|ทีทีบี|\bttb\b|\btmb\b`)},
	{Krungsri, regexp.MustCompile(`(?i)กรุงศรี|\bbay\b|krungsri`)},
	{GSB, regexp.MustCompile(`(?i)ออมสิน|\bgsb\b|government savings`)},
}

// Banks returns every recognized bank in table order.
func Banks() []Bank {
	banks := make([]Bank, 0, len(bankPatterns))
	for _, p := range bankPatterns {
		banks = append(banks, p.bank)
	}
	return banks
}

// IdentifyBank returns the first bank whose name, abbreviation or ticker
// appears in the text.
func IdentifyBank(text string) *Bank {
	for _, p := range bankPatterns {
		if p.re.MatchString(text) {
			return ptr(p.bank)
		}
	}
	return nil
}
