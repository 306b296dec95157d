package report

import "github.com/mfcarvalho/survey-reports/internal/engine"

// UnitGroup collects one business unit's records, in document order.
type UnitGroup struct {
	UnitCode string                `json:"unit_code"`
	Records  []engine.SurveyRecord `json:"records"`
}

// GroupByUnit folds a flat record sequence into per-unit groups. Groups are
// ordered by each unit's first appearance; records inside a group keep
// document order. The lookup map lives and dies inside this call.
func GroupByUnit(records []engine.SurveyRecord) []UnitGroup {
	index := make(map[string]int, len(records))
	groups := make([]UnitGroup, 0, len(records))
	for _, rec := range records {
		i, ok := index[rec.UnitCode]
		if !ok {
			i = len(groups)
			index[rec.UnitCode] = i
			groups = append(groups, UnitGroup{UnitCode: rec.UnitCode})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}
