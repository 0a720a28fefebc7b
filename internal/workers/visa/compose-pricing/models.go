// internal/workers/visa/compose-pricing/models.go
package composepricing

import "visa-workers/internal/visa/pricing"

type Input struct {
	VisaType    string `json:"visaType"`
	ServiceTier string `json:"serviceTier"`
}

type Output struct {
	VisaType    string `json:"visaType"`
	ServiceTier string `json:"serviceTier"`
	pricing.PriceBreakdown
}
