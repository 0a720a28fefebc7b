// internal/workers/visa/classify-eligibility/models.go
package classifyeligibility

type Input struct {
	Nationality         string `json:"nationality"`
	Destination         string `json:"destination"`
	Purpose             string `json:"purpose"`
	PlannedDurationDays int    `json:"plannedDurationDays"`
}

type Output struct {
	Outcome     string `json:"outcome"` // "visa_required", "no_visa_required", "unsupported_destination"
	VisaType    string `json:"visaType,omitempty"`
	MatchedRule string `json:"matchedRule,omitempty"`
}
