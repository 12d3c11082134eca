package slip

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	buddhistEraOffset    = 543
	buddhistEraThreshold = 2500
)

var numericDateRe = regexp.MustCompile(`(?:^|\D)(\d{1,2})[/-](\d{1,2})[/-](\d{4}|\d{2})(?:\D|$)`)

// thaiMonth pairs a spelling of a Thai month name with its month number.
type thaiMonth struct {
	month int
	re    *regexp.Regexp
}

var thaiMonths = buildThaiMonths([]struct {
	name  string
	month int
}{
	{"ม.ค.", 1}, {"ก.พ.", 2}, {"มี.ค.", 3}, {"เม.ย.", 4},
	{"พ.ค.", 5}, {"มิ.ย.", 6}, {"ก.ค.", 7}, {"ส.ค.", 8},
	{"ก.ย.", 9}, {"ต.ค.", 10}, {"พ.ย.", 11}, {"ธ.ค.", 12},
	{"มกราคม", 1}, {"กุมภาพันธ์", 2}, {"มีนาคม", 3}, {"เมษายน", 4},
	{"พฤษภาคม", 5}, {"มิถุนายน", 6}, {"กรกฎาคม", 7}, {"สิงหาคม", 8},
	{"กันยายน", 9}, {"ตุลาคม", 10}, {"พฤศจิกายน", 11}, {"ธันวาคม", 12},
})

func buildThaiMonths(names []struct {
	name  string
	month int
}) []thaiMonth {
	months := make([]thaiMonth, 0, len(names))
	for _, n := range names {
		months = append(months, thaiMonth{
			month: n.month,
			re:    regexp.MustCompile(`(?:^|\D)(\d{1,2})\s*` + regexp.QuoteMeta(n.name) + `\s*(\d{4}|\d{2})(?:\D|$)`),
		})
	}
	return months
}

// ExtractDate finds the transaction date and returns it as YYYY-MM-DD.
//
// Numeric day/month/year dates are tried first, the first real calendar date
// winning, then dates written with a Thai month name. Buddhist Era years are
// converted to Gregorian.
func ExtractDate(text string) *string {
	text = normalizeDigits(text)

	for start := 0; start < len(text); {
		loc := numericDateRe.FindStringSubmatchIndex(text[start:])
		if loc == nil {
			break
		}
		day := text[start+loc[2] : start+loc[3]]
		month, _ := strconv.Atoi(text[start+loc[4] : start+loc[5]])
		year := text[start+loc[6] : start+loc[7]]
		// Resume after the year so its trailing boundary can start the next date.
		start += loc[7]

		if date, ok := formatDate(year, month, day); ok {
			return &date
		}
	}

	for _, tm := range thaiMonths {
		m := tm.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if date, ok := formatDate(m[2], tm.month, m[1]); ok {
			return &date
		}
		break
	}

	return nil
}

// formatDate expands and converts the year, then renders a real calendar date
func formatDate(rawYear string, month int, rawDay string) (string, bool) {
	year, err := expandYear(rawYear)
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(rawDay)
	if err != nil {
		return "", false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// expandYear treats two-digit years as short Buddhist Era years ("68" is 2568)
// and converts the result to a Gregorian year.
func expandYear(raw string) (int, error) {
	if len(raw) == 2 {
		raw = "25" + raw
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing year %q: %w", raw, err)
	}
	return toGregorianYear(year), nil
}

// toGregorianYear converts Buddhist Era years (anything after 2500) to Gregorian.
func toGregorianYear(year int) int {
	if year > buddhistEraThreshold {
		return year - buddhistEraOffset
	}
	return year
}
