// Package application validates visa application payloads against the
// cross-field business rules. All rules run against the full payload and
// errors are accumulated so the form can surface every violation at once.
package application

// EmploymentStatus is the discriminant that decides which employment fields
// become mandatory.
type EmploymentStatus string

const (
	StatusEmployed     EmploymentStatus = "employed"
	StatusSelfEmployed EmploymentStatus = "self-employed"
	StatusStudent      EmploymentStatus = "student"
	StatusRetired      EmploymentStatus = "retired"
)

// EmployerDetails carries the fields activated by the employed branch.
type EmployerDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// SchoolDetails carries the fields activated by the student branch.
type SchoolDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Employment models the discriminated branch: only the variant the status
// activates is populated. Self-employed and retired carry no extra fields in
// the base rule set.
type Employment struct {
	Status   EmploymentStatus `json:"status"`
	Employer *EmployerDetails `json:"employer,omitempty"`
	School   *SchoolDetails   `json:"school,omitempty"`
}

// Residency is the residency-permit branch; the permit fields are mandatory
// only when ResidesInOtherCountry is set.
type Residency struct {
	ResidesInOtherCountry bool   `json:"residesInOtherCountry"`
	PermitNumber          string `json:"permitNumber,omitempty"`
	PermitExpiryDate      string `json:"permitExpiryDate,omitempty"`
}

// Passport holds the travel document data. Dates arrive as ISO calendar dates
// (2006-01-02) from the form collaborator.
type Passport struct {
	Number           string `json:"number"`
	IssueDate        string `json:"issueDate"`
	ExpiryDate       string `json:"expiryDate"`
	IssuingAuthority string `json:"issuingAuthority,omitempty"`
}

// Payload is the application as submitted. It is created by the form
// collaborator, validated once, and discarded after hand-off.
type Payload struct {
	Nationality    string      `json:"nationality"`
	CityOfBirth    string      `json:"cityOfBirth"`
	CountryOfBirth string      `json:"countryOfBirth"`
	Passport       Passport    `json:"passport"`
	DepartureDate  string      `json:"departureDate"`
	ReturnDate     string      `json:"returnDate,omitempty"`
	Residency      Residency   `json:"residency"`
	Employment     *Employment `json:"employment"`
}

// NormalizedPayload is the validated payload handed to persistence: strings
// trimmed, passport number upper-cased. Same shape as Payload on the wire.
type NormalizedPayload Payload

// FieldError is one user-correctable rule violation, keyed by the dotted
// field path the form uses.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Field error codes.
const (
	CodeMissingRequired      = "MISSING_REQUIRED"
	CodeInvalidFormat        = "INVALID_FORMAT"
	CodeInvalidValue         = "INVALID_VALUE"
	CodeExpired              = "EXPIRED"
	CodeTooSoon              = "TOO_SOON"
	CodeInsufficientValidity = "INSUFFICIENT_VALIDITY"
	CodeDocumentTooOld       = "DOCUMENT_TOO_OLD"
	CodeDateConflict         = "DATE_CONFLICT"
)
