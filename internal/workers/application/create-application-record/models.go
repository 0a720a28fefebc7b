// internal/workers/application/create-application-record/models.go
package createapplicationrecord

type Input struct {
	ApplicantID    string                 `json:"applicantId"`
	Destination    string                 `json:"destination"`
	VisaType       string                 `json:"visaType"`
	ServiceTier    string                 `json:"serviceTier"`
	ValidatedData  map[string]interface{} `json:"validatedData"`
	QuotedTotal    string                 `json:"totalPrice"`
	QuotedCurrency string                 `json:"currency"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`
	CreatedAt         string `json:"createdAt"` // ISO 8601
}
