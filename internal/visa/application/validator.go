package application

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar-date format the form collaborator submits.
const DateLayout = "2006-01-02"

// ErrMalformedPayload marks structurally invalid input: a caller/integration
// bug, not a user data-entry problem. It propagates as an error instead of a
// field error because no user-facing recovery is possible at this layer.
var ErrMalformedPayload = errors.New("malformed application payload")

var passportNumberRegex = regexp.MustCompile(`^[a-zA-Z0-9]{3,15}$`)

// Validator runs the application rule set. Now is injectable so date-boundary
// rules are deterministic under test; the zero value is not usable, construct
// with NewValidator.
type Validator struct {
	Now func() time.Time
}

// NewValidator returns a wall-clock validator.
func NewValidator() *Validator {
	return &Validator{Now: time.Now}
}

// parsedDates carries the date fields that parsed successfully. Rules that
// need a date skip silently when it failed to parse; the format error has
// already been reported and cascading errors on the same field help no one.
type parsedDates struct {
	issue        *time.Time
	expiry       *time.Time
	departure    *time.Time
	returnDate   *time.Time
	permitExpiry *time.Time
}

// Validate runs every rule against the full payload and accumulates the
// violations. On success it returns the normalized payload; the error return
// is reserved for ErrMalformedPayload.
func (v *Validator) Validate(p *Payload) (*NormalizedPayload, []FieldError, error) {
	if p == nil {
		return nil, nil, fmt.Errorf("%w: payload is nil", ErrMalformedPayload)
	}
	if p.Employment == nil {
		return nil, nil, fmt.Errorf("%w: employment block missing", ErrMalformedPayload)
	}

	now := v.Now()
	norm := normalize(p)
	var errs []FieldError

	dates := parseDates(norm, &errs)

	errs = append(errs, checkRequiredFields(norm)...)
	errs = append(errs, checkPassportNumber(norm)...)
	errs = append(errs, checkPassportDates(dates, now)...)
	errs = append(errs, checkTravelDates(dates, now)...)
	errs = append(errs, checkPassportWindow(dates)...)
	errs = append(errs, checkResidency(norm, dates, now)...)

	empErrs, err := checkEmployment(norm)
	if err != nil {
		return nil, nil, err
	}
	errs = append(errs, empErrs...)

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return norm, nil, nil
}

func normalize(p *Payload) *NormalizedPayload {
	n := NormalizedPayload(*p)
	n.Nationality = strings.TrimSpace(p.Nationality)
	n.CityOfBirth = strings.TrimSpace(p.CityOfBirth)
	n.CountryOfBirth = strings.TrimSpace(p.CountryOfBirth)
	n.Passport.Number = strings.ToUpper(strings.TrimSpace(p.Passport.Number))
	n.Passport.IssueDate = strings.TrimSpace(p.Passport.IssueDate)
	n.Passport.ExpiryDate = strings.TrimSpace(p.Passport.ExpiryDate)
	n.Passport.IssuingAuthority = strings.TrimSpace(p.Passport.IssuingAuthority)
	n.DepartureDate = strings.TrimSpace(p.DepartureDate)
	n.ReturnDate = strings.TrimSpace(p.ReturnDate)
	n.Residency.PermitNumber = strings.TrimSpace(p.Residency.PermitNumber)
	n.Residency.PermitExpiryDate = strings.TrimSpace(p.Residency.PermitExpiryDate)

	if p.Employment != nil {
		emp := *p.Employment
		if p.Employment.Employer != nil {
			e := *p.Employment.Employer
			e.Name = strings.TrimSpace(e.Name)
			e.Address = strings.TrimSpace(e.Address)
			e.Phone = strings.TrimSpace(e.Phone)
			emp.Employer = &e
		}
		if p.Employment.School != nil {
			s := *p.Employment.School
			s.Name = strings.TrimSpace(s.Name)
			s.Address = strings.TrimSpace(s.Address)
			emp.School = &s
		}
		n.Employment = &emp
	}
	return &n
}

func parseDates(p *NormalizedPayload, errs *[]FieldError) parsedDates {
	var d parsedDates
	d.issue = parseDateField(p.Passport.IssueDate, "passport.issueDate", true, errs)
	d.expiry = parseDateField(p.Passport.ExpiryDate, "passport.expiryDate", true, errs)
	d.departure = parseDateField(p.DepartureDate, "departureDate", true, errs)
	d.returnDate = parseDateField(p.ReturnDate, "returnDate", false, errs)
	// Permit expiry is conditional; its presence check lives in the residency
	// rule, only the format is reported here.
	d.permitExpiry = parseDateField(p.Residency.PermitExpiryDate, "residency.permitExpiryDate", false, errs)
	return d
}

func parseDateField(value, field string, required bool, errs *[]FieldError) *time.Time {
	if value == "" {
		if required {
			*errs = append(*errs, FieldError{
				Field:   field,
				Code:    CodeMissingRequired,
				Message: fmt.Sprintf("%s is required", field),
			})
		}
		return nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		*errs = append(*errs, FieldError{
			Field:   field,
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%s must be a date in %s format", field, DateLayout),
		})
		return nil
	}
	return &t
}

// Rule 1: required presence.
func checkRequiredFields(p *NormalizedPayload) []FieldError {
	var errs []FieldError
	required := []struct {
		field string
		value string
	}{
		{"nationality", p.Nationality},
		{"cityOfBirth", p.CityOfBirth},
		{"countryOfBirth", p.CountryOfBirth},
		{"passport.number", p.Passport.Number},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, FieldError{
				Field:   r.field,
				Code:    CodeMissingRequired,
				Message: fmt.Sprintf("%s is required", r.field),
			})
		}
	}
	return errs
}

// Rule 2: passport number format, 3-15 alphanumeric characters.
func checkPassportNumber(p *NormalizedPayload) []FieldError {
	if p.Passport.Number == "" {
		return nil // presence already reported
	}
	if !passportNumberRegex.MatchString(p.Passport.Number) {
		return []FieldError{{
			Field:   "passport.number",
			Code:    CodeInvalidFormat,
			Message: "passport number must be 3-15 letters and digits",
		}}
	}
	return nil
}

// Rules 3, 4, 8: passport issue/expiry against the validation clock.
func checkPassportDates(d parsedDates, now time.Time) []FieldError {
	var errs []FieldError
	if d.issue != nil {
		if d.issue.After(now) {
			errs = append(errs, FieldError{
				Field:   "passport.issueDate",
				Code:    CodeInvalidValue,
				Message: "passport issue date cannot be in the future",
			})
		} else if d.issue.Before(now.AddDate(-10, 0, 0)) {
			errs = append(errs, FieldError{
				Field:   "passport.issueDate",
				Code:    CodeDocumentTooOld,
				Message: "passport must have been issued within the last 10 years",
			})
		}
	}
	if d.expiry != nil && !d.expiry.After(now) {
		errs = append(errs, FieldError{
			Field:   "passport.expiryDate",
			Code:    CodeExpired,
			Message: "passport has expired",
		})
	}
	return errs
}

// Rules 5, 6: departure at least a full day out, return after departure.
func checkTravelDates(d parsedDates, now time.Time) []FieldError {
	var errs []FieldError
	if d.departure != nil && d.departure.Before(now.Add(24*time.Hour)) {
		errs = append(errs, FieldError{
			Field:   "departureDate",
			Code:    CodeTooSoon,
			Message: "departure must be at least 24 hours from now",
		})
	}
	if d.departure != nil && d.returnDate != nil && !d.returnDate.After(*d.departure) {
		errs = append(errs, FieldError{
			Field:   "returnDate",
			Code:    CodeDateConflict,
			Message: "return date must be after the departure date",
		})
	}
	return errs
}

// Rule 7: passport must stay valid for three calendar months past departure.
// Calendar-month addition, never a 90-day offset: day-count approximations
// drift by one or two days across month lengths and leap years.
func checkPassportWindow(d parsedDates) []FieldError {
	if d.departure == nil || d.expiry == nil {
		return nil
	}
	threshold := d.departure.AddDate(0, 3, 0)
	if d.expiry.Before(threshold) {
		return []FieldError{{
			Field:   "passport.expiryDate",
			Code:    CodeInsufficientValidity,
			Message: "passport must be valid for at least three months after the departure date",
		}}
	}
	return nil
}

// Rule 9: residency branch. Permit fields are mandatory only when the flag is
// set; a cleared flag ignores whatever was typed into them.
func checkResidency(p *NormalizedPayload, d parsedDates, now time.Time) []FieldError {
	if !p.Residency.ResidesInOtherCountry {
		return nil
	}
	var errs []FieldError
	if p.Residency.PermitNumber == "" {
		errs = append(errs, FieldError{
			Field:   "residency.permitNumber",
			Code:    CodeMissingRequired,
			Message: "residence permit number is required",
		})
	}
	if p.Residency.PermitExpiryDate == "" {
		errs = append(errs, FieldError{
			Field:   "residency.permitExpiryDate",
			Code:    CodeMissingRequired,
			Message: "residence permit expiry date is required",
		})
	} else if d.permitExpiry != nil && !d.permitExpiry.After(now) {
		errs = append(errs, FieldError{
			Field:   "residency.permitExpiryDate",
			Code:    CodeExpired,
			Message: "residence permit has expired",
		})
	}
	return errs
}

// Rule 10: employment branch, keyed by the status discriminant.
func checkEmployment(p *NormalizedPayload) ([]FieldError, error) {
	emp := p.Employment
	switch emp.Status {
	case StatusEmployed:
		return checkEmployed(emp), nil
	case StatusStudent:
		return checkStudent(emp), nil
	case StatusSelfEmployed, StatusRetired:
		// No additional mandatory fields in the base rule set.
		return nil, nil
	case "":
		return nil, fmt.Errorf("%w: employment status missing", ErrMalformedPayload)
	default:
		return []FieldError{{
			Field:   "employment.status",
			Code:    CodeInvalidValue,
			Message: fmt.Sprintf("unknown employment status %q", emp.Status),
		}}, nil
	}
}

func checkEmployed(emp *Employment) []FieldError {
	var errs []FieldError
	name, address, phone := "", "", ""
	if emp.Employer != nil {
		name, address, phone = emp.Employer.Name, emp.Employer.Address, emp.Employer.Phone
	}
	if name == "" {
		errs = append(errs, FieldError{Field: "employment.employer.name", Code: CodeMissingRequired, Message: "employer name is required"})
	}
	if address == "" {
		errs = append(errs, FieldError{Field: "employment.employer.address", Code: CodeMissingRequired, Message: "employer address is required"})
	}
	if phone == "" {
		errs = append(errs, FieldError{Field: "employment.employer.phone", Code: CodeMissingRequired, Message: "employer phone is required"})
	}
	return errs
}

func checkStudent(emp *Employment) []FieldError {
	var errs []FieldError
	name, address := "", ""
	if emp.School != nil {
		name, address = emp.School.Name, emp.School.Address
	}
	if name == "" {
		errs = append(errs, FieldError{Field: "employment.school.name", Code: CodeMissingRequired, Message: "school name is required"})
	}
	if address == "" {
		errs = append(errs, FieldError{Field: "employment.school.address", Code: CodeMissingRequired, Message: "school address is required"})
	}
	return errs
}
