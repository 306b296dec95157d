package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcarvalho/survey-reports/internal/engine"
)

func TestGroupByUnitOrdersByFirstAppearance(t *testing.T) {
	records := []engine.SurveyRecord{
		{ID: "1", UnitCode: "SBRSPB2"},
		{ID: "2", UnitCode: "SBRSPA1"},
		{ID: "3", UnitCode: "SBRSPB2"},
		{ID: "4", UnitCode: "SBRSPC3"},
		{ID: "5", UnitCode: "SBRSPA1"},
	}

	groups := GroupByUnit(records)
	require.Len(t, groups, 3)
	assert.Equal(t, "SBRSPB2", groups[0].UnitCode)
	assert.Equal(t, "SBRSPA1", groups[1].UnitCode)
	assert.Equal(t, "SBRSPC3", groups[2].UnitCode)

	// Records keep document order inside their group.
	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, "1", groups[0].Records[0].ID)
	assert.Equal(t, "3", groups[0].Records[1].ID)
}

func TestGroupByUnitEmpty(t *testing.T) {
	assert.Empty(t, GroupByUnit(nil))
}
