package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mfcarvalho/survey-reports/internal/engine"
)

func TestExportXLSXWritesOneRowPerRecord(t *testing.T) {
	score := 8
	records := []engine.SurveyRecord{
		{ID: "12345", UnitCode: "SBRSPX1Z", Score: &score, Comment: "Great service", LeaderFeedback: "Thanks!"},
		{ID: "12346", UnitCode: "SBRSPA1", Comment: ""},
	}

	data, err := ExportXLSX(records, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	const sheet = "Survey Records"

	v, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Record ID", v)

	v, _ = f.GetCellValue(sheet, "A2")
	assert.Equal(t, "12345", v)
	v, _ = f.GetCellValue(sheet, "B2")
	assert.Equal(t, "SBRSPX1Z", v)
	v, _ = f.GetCellValue(sheet, "C2")
	assert.Equal(t, "8", v)
	v, _ = f.GetCellValue(sheet, "D2")
	assert.Equal(t, "Great service", v)
	v, _ = f.GetCellValue(sheet, "E2")
	assert.Equal(t, "Thanks!", v)

	// Absent score exports as an empty cell.
	v, _ = f.GetCellValue(sheet, "C3")
	assert.Empty(t, v)
	v, _ = f.GetCellValue(sheet, "D3")
	assert.Empty(t, v)
}

func TestExportXLSXEmptyRecordSet(t *testing.T) {
	data, err := ExportXLSX(nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
