package engine

import "regexp"

var reCRLF = regexp.MustCompile(`\r\n`)

// Normalize rewrites Windows-style line terminators to Unix ones. Nothing
// else is touched; block splitting and anchor search rely on consistent
// newline semantics. Idempotent.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	return reCRLF.ReplaceAllString(s, "\n")
}
