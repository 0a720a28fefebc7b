// internal/workers/application/validate-application/models.go
package validateapplication

import "visa-workers/internal/visa/application"

type Input struct {
	Application *application.Payload `json:"application"`
}

type Output struct {
	IsValid          bool                           `json:"isValid"`
	ValidatedData    *application.NormalizedPayload `json:"validatedData,omitempty"`
	ValidationErrors []application.FieldError       `json:"validationErrors,omitempty"`
}
