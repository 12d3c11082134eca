package slip

import (
	"regexp"
	"strings"
)

const refToken = `[\s:#.]*([A-Z0-9]{6,})`

var refPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:(?i:ref(?:erence)?(?:\s*no\.?)?)|อ้างอิง|เลขที่(?:อ้างอิง)?)` + refToken),
	regexp.MustCompile(`(?:(?i:transaction(?:\s*(?:id|no\.?))?)|รายการ)` + refToken),
	regexp.MustCompile(`([A-Z]{2,}\d{10,})`),
}

// ExtractRefNumber finds the bank reference code of the transfer. Labelled
// codes are preferred; otherwise any run of capital letters followed by ten
// or more digits is taken. The code is returned as printed.
func ExtractRefNumber(text string) *string {
	text = normalizeDigits(text)

	for _, re := range refPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if strings.ContainsAny(m[1], "0123456789") {
				return ptr(m[1])
			}
		}
	}
	return nil
}
