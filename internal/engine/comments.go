package engine

// ExtractComments projects the non-empty comments out of a record sequence,
// removing exact duplicates while preserving first-seen order. Pure; the
// input slice is not touched.
func ExtractComments(records []SurveyRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		if r.Comment == "" {
			continue
		}
		if _, dup := seen[r.Comment]; dup {
			continue
		}
		seen[r.Comment] = struct{}{}
		out = append(out, r.Comment)
	}
	return out
}
