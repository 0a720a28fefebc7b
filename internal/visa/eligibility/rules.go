package eligibility

import "visa-workers/internal/visa/catalog"

// Nationality sets used by the shipped tables. ISO 3166-1 alpha-2 codes.
// These lists mirror the product's rule tables, not any government's; a
// corridor is added here together with its catalog entries.

var schengenExempt = map[string]bool{
	// EU/EEA nationals move freely; no short-stay product applies.
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "DE": true, "GR": true,
	"HU": true, "IS": true, "IE": true, "IT": true, "LV": true, "LI": true,
	"LT": true, "LU": true, "MT": true, "NL": true, "NO": true, "PL": true,
	"PT": true, "RO": true, "SK": true, "SI": true, "ES": true, "SE": true,
	"CH": true,
}

var ukExempt = map[string]bool{
	"GB": true, "IE": true,
}

// US Visa Waiver Program nationalities route to the electronic authorization
// for short tourism/business trips.
var usVisaWaiver = map[string]bool{
	"AD": true, "AU": true, "AT": true, "BE": true, "BN": true, "CL": true,
	"HR": true, "CZ": true, "DK": true, "EE": true, "FI": true, "FR": true,
	"DE": true, "GR": true, "HU": true, "IS": true, "IE": true, "IT": true,
	"JP": true, "KR": true, "LV": true, "LI": true, "LT": true, "LU": true,
	"MT": true, "MC": true, "NL": true, "NZ": true, "NO": true, "PL": true,
	"PT": true, "SM": true, "SG": true, "SK": true, "SI": true, "ES": true,
	"SE": true, "CH": true, "TW": true, "GB": true,
}

var gccExempt = map[string]bool{
	"AE": true, "BH": true, "KW": true, "OM": true, "QA": true, "SA": true,
}

// Nationalities eligible for a UAE visa on arrival instead of a pre-arranged
// e-visa.
var uaeOnArrival = map[string]bool{
	"AU": true, "AT": true, "BE": true, "CA": true, "CN": true, "FR": true,
	"DE": true, "IE": true, "IT": true, "JP": true, "NL": true, "NZ": true,
	"RU": true, "SG": true, "KR": true, "ES": true, "SE": true, "CH": true,
	"GB": true, "US": true,
}

// DefaultTables returns the shipped decision tables, one ordered rule list per
// destination group. Order is the precedence artifact and each corridor sets
// its own: nationality exemptions always outrank duration splits (free
// movement is not capped at 90 days), while long-stay purposes outrank both
// wherever the corridor sells a national product for them.
func DefaultTables() map[string][]Rule {
	return map[string][]Rule{
		catalog.DestinationSchengen: {
			{
				Name:    "long-stay-purpose",
				Matches: purposeIn(PurposeWork, PurposeStudy, PurposeFamily, PurposeInvestment),
				Decide:  visaRequired(NationalLongStay),
			},
			{
				Name:    "exempt-nationality",
				Matches: nationalityIn(schengenExempt),
				Decide:  noVisaRequired,
			},
			{
				Name:    "over-90-days",
				Matches: longerThan(90),
				Decide:  visaRequired(NationalLongStay),
			},
			{
				Name:    "short-stay-default",
				Matches: always,
				Decide:  visaRequired(ShortStayUniform),
			},
		},
		catalog.DestinationUnitedKingdom: {
			{
				Name:    "exempt-nationality",
				Matches: nationalityIn(ukExempt),
				Decide:  noVisaRequired,
			},
			{
				Name:    "long-stay-purpose",
				Matches: purposeIn(PurposeWork, PurposeStudy, PurposeFamily, PurposeInvestment),
				Decide:  visaRequired(NationalLongStay),
			},
			{
				Name:    "over-180-days",
				Matches: longerThan(180),
				Decide:  visaRequired(NationalLongStay),
			},
			{
				Name:    "visitor-default",
				Matches: always,
				Decide:  visaRequired(StandardVisitor),
			},
		},
		catalog.DestinationUnitedStates: {
			{
				Name:    "long-stay-purpose",
				Matches: purposeIn(PurposeWork, PurposeStudy, PurposeFamily, PurposeInvestment),
				Decide:  visaRequired(NationalLongStay),
			},
			{
				Name: "visa-waiver-esta",
				Matches: and(
					nationalityIn(usVisaWaiver),
					purposeIn(PurposeTourism, PurposeBusiness),
					func(in Input) bool { return in.PlannedDurationDays <= 90 },
				),
				Decide: visaRequired(ElectronicTravelAuth),
			},
			{
				Name:    "visitor-default",
				Matches: always,
				Decide:  visaRequired(StandardVisitor),
			},
		},
		catalog.DestinationUAE: {
			{
				Name:    "gcc-exempt",
				Matches: nationalityIn(gccExempt),
				Decide:  noVisaRequired,
			},
			{
				Name:    "long-stay-purpose",
				Matches: purposeIn(PurposeWork, PurposeStudy, PurposeFamily, PurposeInvestment),
				Decide:  visaRequired(NationalLongStay),
			},
			{
				Name:    "on-arrival-nationality",
				Matches: nationalityIn(uaeOnArrival),
				Decide:  visaRequired(VisaOnArrival),
			},
			{
				Name:    "e-visa-default",
				Matches: always,
				Decide:  visaRequired(EVisa),
			},
		},
	}
}
