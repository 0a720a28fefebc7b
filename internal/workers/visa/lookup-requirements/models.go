// internal/workers/visa/lookup-requirements/models.go
package lookuprequirements

import "visa-workers/internal/visa/catalog"

type Input struct {
	Destination  string `json:"destination"`
	VisaCategory string `json:"visaCategory"`
}

type Output struct {
	Destination  string                       `json:"destination"`
	VisaCategory string                       `json:"visaCategory"`
	Requirements catalog.CategoryRequirements `json:"requirements"`
	FromCache    bool                         `json:"fromCache"`
}
