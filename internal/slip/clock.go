package slip

import (
	"fmt"
	"regexp"
	"strconv"
)

// OCR often reads ':' as '.', so both separate the fields.
var timeRe = regexp.MustCompile(`(?:^|[^\d.,])(\d{1,2})[:.](\d{2})(?:[:.]\d{2})?\s*(?:น\.?)?(?:\D|$)`)

// A candidate written next to a currency marker is a small amount, not a time.
var (
	currencyBeforeTimeRe = regexp.MustCompile(currency + hspace + `$`)
	currencyAfterTimeRe  = regexp.MustCompile(`^` + hspace + currency)
)

// ExtractTime finds the transaction time and returns it as HH:MM.
// Seconds are dropped. Candidates that are not a valid time of day, or that
// sit next to a currency marker, are skipped.
func ExtractTime(text string) *string {
	text = normalizeDigits(text)

	for start := 0; start < len(text); {
		loc := timeRe.FindStringSubmatchIndex(text[start:])
		if loc == nil {
			break
		}
		hh := text[start+loc[2] : start+loc[3]]
		mm := text[start+loc[4] : start+loc[5]]
		before, after := text[:start+loc[2]], text[start+loc[5]:]
		// Resume after the minutes so the boundary characters can be reused.
		start += loc[5]

		if currencyBeforeTimeRe.MatchString(before) || currencyAfterTimeRe.MatchString(after) {
			continue
		}

		hour, _ := strconv.Atoi(hh)
		minute, _ := strconv.Atoi(mm)
		if hour > 23 || minute > 59 {
			continue
		}
		return ptr(fmt.Sprintf("%02d:%s", hour, mm))
	}
	return nil
}
