// internal/models/application.go
package models

// Application is the persisted visa application record.
type Application struct {
	ID              string                 `json:"id"`
	ApplicantID     string                 `json:"applicantId"`
	Destination     string                 `json:"destination"`
	VisaType        string                 `json:"visaType"`
	ServiceTier     string                 `json:"serviceTier"`
	ApplicationData map[string]interface{} `json:"applicationData"`
	QuotedTotal     string                 `json:"quotedTotal"`
	QuotedCurrency  string                 `json:"quotedCurrency"`
	Status          string                 `json:"status"`
	CreatedAt       string                 `json:"createdAt"`
	UpdatedAt       string                 `json:"updatedAt"`
}

// Application statuses as stored in Postgres.
const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusInReview  = "in_review"
	ApplicationStatusLodged    = "lodged"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusAbandoned = "abandoned"
)

// EligibilityResult is the classifier output as carried through the process.
type EligibilityResult struct {
	Outcome     string `json:"outcome"`
	VisaType    string `json:"visaType,omitempty"`
	MatchedRule string `json:"matchedRule,omitempty"`
	Destination string `json:"destination"`
	Nationality string `json:"nationality"`
}

// TripDetails captures the travel parameters the eligibility questionnaire
// collects.
type TripDetails struct {
	Nationality         string `json:"nationality"`
	Destination         string `json:"destination"`
	Purpose             string `json:"purpose"`
	PlannedDurationDays int    `json:"plannedDurationDays"`
}
