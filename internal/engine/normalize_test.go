package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRewritesCRLF(t *testing.T) {
	assert.Equal(t, "a\nb\nc", Normalize("a\r\nb\r\nc"))
}

func TestNormalizeLeavesUnixTextAlone(t *testing.T) {
	in := "line one\nline two\n"
	assert.Equal(t, in, Normalize(in))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a\r\nb",
		"a\r\nb\r\n\r\nc\nd",
		"\r\n\r\n",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
