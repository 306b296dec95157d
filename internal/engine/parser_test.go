package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(DefaultConfig(), nil)
}

func TestParseFullRecordWithFeedback(t *testing.T) {
	p := newTestParser(t)
	text := "#12345 SBRSPX1Z Score header 8 Comment: Great service Feedback 1: Thanks! " +
		"#12346 SBRSPX1Z Score header 7 Comment: Sem contato foi feito"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Skipped)

	first := result.Records[0]
	assert.Equal(t, "12345", first.ID)
	assert.Equal(t, "SBRSPX1Z", first.UnitCode)
	require.NotNil(t, first.Score)
	assert.Equal(t, 8, *first.Score)
	assert.Equal(t, "Great service", first.Comment)
	assert.Equal(t, "Thanks!", first.LeaderFeedback)
}

func TestParseNeutersBoilerplateCommentButKeepsRecord(t *testing.T) {
	p := newTestParser(t)
	text := "#12346 SBRSPX1Z Score header 7 Comment: Sem contato foi feito com o cliente"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "12346", rec.ID)
	assert.Equal(t, "SBRSPX1Z", rec.UnitCode)
	require.NotNil(t, rec.Score)
	assert.Equal(t, 7, *rec.Score)
	assert.Empty(t, rec.Comment)
}

func TestParseNeutersTooShortComment(t *testing.T) {
	p := newTestParser(t)
	text := "#12347 SBRSPX1Z Score header region text 6 Comment: ok"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)
	assert.Empty(t, result.Records[0].Comment)
}

func TestParseRejectsShortBlock(t *testing.T) {
	p := newTestParser(t)
	result := p.Parse(context.Background(), "#55555 SBRSP1A Comment: ok")
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Skipped)
}

func TestParseCommentWithoutFeedbackMarkerRunsToBlockEnd(t *testing.T) {
	p := newTestParser(t)
	text := "#22222 SBRSPAB12 visit notes here Comment: Everything was great and the staff was kind"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "Everything was great and the staff was kind", rec.Comment)
	assert.Empty(t, rec.LeaderFeedback)
	// Header region has no standalone 0..10 numeral.
	assert.Nil(t, rec.Score)
}

func TestParseScoreIsLastQualifyingHeaderToken(t *testing.T) {
	p := newTestParser(t)
	text := "#44444 SBRSPZZ9 visited 3 2026 9 Comment: Staff was very friendly during the visit"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)
	require.NotNil(t, result.Records[0].Score)
	assert.Equal(t, 9, *result.Records[0].Score)
}

func TestParseNoCommentMarkerMeansNoScoreAndEmptyComment(t *testing.T) {
	p := newTestParser(t)
	text := "#88888 SBRSPQQ1 long header text with numbers 5 and 7 but no marker anywhere 2024"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Nil(t, rec.Score)
	assert.Empty(t, rec.Comment)
	assert.Empty(t, rec.LeaderFeedback)
}

func TestParseCollapsesLineBreaksInCommentAndFeedback(t *testing.T) {
	p := newTestParser(t)
	text := "#77777 SBRSPAA1 header 10 Comment: first line\nsecond line Feedback: acknowledged\nby leader"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	require.NotNil(t, rec.Score)
	assert.Equal(t, 10, *rec.Score)
	assert.Equal(t, "first line second line", rec.Comment)
	assert.Equal(t, "acknowledged by leader", rec.LeaderFeedback)
	assert.NotContains(t, rec.Comment, "\n")
	assert.NotContains(t, rec.LeaderFeedback, "\n")
}

func TestParseDropsLeadingFurnitureAndBlocksWithoutID(t *testing.T) {
	p := newTestParser(t)
	text := "Customer Satisfaction report for unit SBRSPX1Z generated 2026-08-01 page 1 of 3\n" +
		"#12345 SBRSPX1Z Score header 8 Comment: Great service Feedback 1: Thanks!"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "12345", result.Records[0].ID)
}

func TestParseReturnsEmptyWhenNoUnitCodes(t *testing.T) {
	p := newTestParser(t)
	text := "#66666 OTHER1X header text long enough to pass the length gate Comment: nice"

	result := p.Parse(context.Background(), text)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Skipped)
}

func TestParseWindowsLineEndings(t *testing.T) {
	p := newTestParser(t)
	text := "#12345 SBRSPX1Z Score header 8 Comment: Great\r\nservice Feedback 1: Thanks!"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Great service", result.Records[0].Comment)
}

func TestParsePreservesDocumentOrderAcrossWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 8
	p := NewParser(cfg, nil)

	var b strings.Builder
	const n = 40
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "#%05d SBRSPX%02d some header padding text %d Comment: comment number %d ",
			10000+i, i%5, i%11, i)
	}

	result := p.Parse(context.Background(), b.String())
	require.Len(t, result.Records, n)
	for i, rec := range result.Records {
		assert.Equal(t, fmt.Sprintf("%05d", 10000+i), rec.ID)
		require.NotNil(t, rec.Score)
		assert.GreaterOrEqual(t, *rec.Score, 0)
		assert.LessOrEqual(t, *rec.Score, 10)
		assert.NotContains(t, rec.Comment, "\n")
	}
}

func TestParseFeedbackMarkerNotMatchedInsideLongerWords(t *testing.T) {
	p := newTestParser(t)
	text := "#12348 SBRSPX1Z Score header 8 Comment: Feedbacks were collected quickly by the team"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "Feedbacks were collected quickly by the team", rec.Comment)
	assert.Empty(t, rec.LeaderFeedback)
	require.NotNil(t, rec.Score)
	assert.Equal(t, 8, *rec.Score)
}

func TestParseContinuesPastFailingBlockAndReportsIt(t *testing.T) {
	p := newTestParser(t)
	p.blockHook = func(idx int, _ string) {
		if idx == 1 {
			panic("corrupted block")
		}
	}
	text := "#11111 SBRSPA1 survey header filler text 9 Comment: All good here thanks " +
		"#22222 SBRSPB2 survey header filler text 8 Comment: Quick and friendly visit " +
		"#33333 SBRSPC3 survey header filler text 7 Comment: Clean rooms and kind staff"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "11111", result.Records[0].ID)
	assert.Equal(t, "33333", result.Records[1].ID)

	require.Len(t, result.Skipped, 1)
	diag := result.Skipped[0]
	assert.Equal(t, 1, diag.Index)
	assert.Contains(t, diag.Snippet, "#22222")
	assert.Contains(t, diag.Reason, "corrupted block")
}

func TestParseWithCustomHeuristics(t *testing.T) {
	cfg := Config{
		UnitCodePrefix: "UNIT",
		CommentMarker:  "Comentario",
		FeedbackMarker: "Resposta",
		MinBlockLength: 30,
		IgnoredPhrases: []string{"sem contato"},
	}
	p := NewParser(cfg, nil)
	text := "#90001 UNITAB1 nota 10 Comentario: Atendimento excelente Resposta 2: Obrigado"

	result := p.Parse(context.Background(), text)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "90001", rec.ID)
	assert.Equal(t, "UNITAB1", rec.UnitCode)
	require.NotNil(t, rec.Score)
	assert.Equal(t, 10, *rec.Score)
	assert.Equal(t, "Atendimento excelente", rec.Comment)
	assert.Equal(t, "Obrigado", rec.LeaderFeedback)
}
