package matching

// MissingKeywords lists job tokens absent from the CV, in job-text order, at most limit entries.
// A non-positive limit means no cap.
func MissingKeywords(cvText, jobText string, limit int) []string {
	cv := Tokenize(cvText)

	missing := make([]string, 0)
	for _, tok := range OrderedTokens(jobText) {
		if cv.Has(tok) {
			continue
		}
		missing = append(missing, tok)
		if limit > 0 && len(missing) == limit {
			break
		}
	}
	return missing
}
