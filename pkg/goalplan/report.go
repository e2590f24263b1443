package goalplan

import "encoding/json"

// IsDegraded reports whether the evaluation failed and the report carries no figures
func (r *FeasibilityReport) IsDegraded() bool {
	return r.BaseScenario == nil && r.Status == StatusNotAchievable && r.Message == degradedMessage
}

// MarshalJSON writes scenarios in their tagged record form
func (r FeasibilityReport) MarshalJSON() ([]byte, error) {
	type plain FeasibilityReport
	return json.Marshal(struct {
		plain
		StatusLabel         string           `json:"statusLabel"`
		BaseScenario        *ScenarioRecord  `json:"baseScenario,omitempty"`
		AllScenarios        []ScenarioRecord `json:"allScenarios"`
		RecommendedScenario *ScenarioRecord  `json:"recommendedScenario"`
		Alternatives        []ScenarioRecord `json:"alternatives"`
	}{
		plain:               plain(r),
		StatusLabel:         r.Status.String(),
		BaseScenario:        Describe(r.BaseScenario),
		AllScenarios:        DescribeAll(r.AllScenarios),
		RecommendedScenario: Describe(r.RecommendedScenario),
		Alternatives:        DescribeAll(r.Alternatives),
	})
}
