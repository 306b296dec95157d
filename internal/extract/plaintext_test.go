package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextExtractorReadsFileVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	content := "page one\ftext on page two"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	res, err := NewPlainTextExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, res.Text)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "plain-text", res.Method)
}

func TestPlainTextExtractorMissingFile(t *testing.T) {
	_, err := NewPlainTextExtractor().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
