package slip

// Parse extracts every known field from the OCR text of a slip. Extractors
// run independently, so a miss in one never affects the others. Parse never
// fails; unrecognized text yields a Data with only RawText set.
func Parse(rawText string) Data {
	return Data{
		Amount:    ExtractAmount(rawText),
		Date:      ExtractDate(rawText),
		Time:      ExtractTime(rawText),
		BankName:  IdentifyBank(rawText),
		RefNumber: ExtractRefNumber(rawText),
		RawText:   rawText,
	}
}
