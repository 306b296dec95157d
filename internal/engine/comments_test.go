package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCommentsDedupesPreservingFirstSeenOrder(t *testing.T) {
	records := []SurveyRecord{
		{ID: "1", UnitCode: "SBRSPA1", Comment: "great service"},
		{ID: "2", UnitCode: "SBRSPA1", Comment: ""},
		{ID: "3", UnitCode: "SBRSPB2", Comment: "too slow"},
		{ID: "4", UnitCode: "SBRSPB2", Comment: "great service"},
		{ID: "5", UnitCode: "SBRSPC3", Comment: "friendly staff"},
	}

	comments := ExtractComments(records)
	assert.Equal(t, []string{"great service", "too slow", "friendly staff"}, comments)
}

func TestExtractCommentsEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractComments(nil))
	assert.Empty(t, ExtractComments([]SurveyRecord{{ID: "1", Comment: ""}}))
}
