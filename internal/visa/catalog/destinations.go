package catalog

import "fmt"

// Destination group identifiers shared with the eligibility tables and the
// lookup worker. These are the corridors the product currently sells.
const (
	DestinationSchengen      = "schengen"
	DestinationUnitedKingdom = "united-kingdom"
	DestinationUnitedStates  = "united-states"
	DestinationUAE           = "uae"
)

// Each destination is independently authored. Requirements repeat across
// destinations on purpose; consular checklists differ in wording even when
// they overlap, so items are not deduplicated globally.

func schengenCatalog() *DestinationCatalog {
	common := []RequirementItem{
		{
			Title:       "Valid Passport",
			Description: "Passport issued within the last 10 years with at least two blank pages.",
			Mandatory:   true,
			Details: []string{
				"Must be valid for at least three months beyond the intended departure from the Schengen area",
				"Older travel documents are accepted only with a formal extension sticker",
			},
		},
		{
			Title:       "Biometric Photos",
			Description: "Two identical photos, 35x45mm, light background, taken within the last six months.",
			Mandatory:   true,
		},
		{
			Title:       "Travel Medical Insurance",
			Description: "Coverage of at least EUR 30,000 valid in all Schengen member states.",
			Mandatory:   true,
			Details: []string{
				"Must cover emergency medical treatment and repatriation",
				"Annual multi-trip policies are accepted for multiple-entry applications",
			},
		},
		{
			Title:       "Proof of Accommodation",
			Description: "Hotel bookings, rental contract, or a formal invitation letter covering the full stay.",
			Mandatory:   true,
		},
		{
			Title:       "Proof of Financial Means",
			Description: "Bank statements for the last three months.",
			Mandatory:   true,
		},
	}

	return MustNew(DestinationSchengen, "Work", common, []Category{
		{
			Name:           "Work",
			ProcessingTime: "15-60 calendar days",
			StayDuration:   "Up to duration of contract, renewable",
			Fee:            "EUR 75",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Employment Contract",
					Description: "Signed contract or binding job offer from an employer in the destination member state.",
					Mandatory:   true,
				},
				{
					Title:       "Work Permit Approval",
					Description: "Labor market authorization issued by the destination state, where applicable.",
					Mandatory:   true,
					Details: []string{
						"EU Blue Card applicants submit the salary threshold confirmation instead",
					},
				},
				{
					Title:       "Professional Qualifications",
					Description: "Diplomas or certificates recognized for regulated professions.",
					Mandatory:   false,
				},
			},
		},
		{
			Name:           "Study",
			ProcessingTime: "15-45 calendar days",
			StayDuration:   "Duration of study program",
			Fee:            "EUR 75",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "University Admission Letter",
					Description: "Unconditional admission from a recognized institution in the destination state.",
					Mandatory:   true,
				},
				{
					Title:       "Proof of Tuition Payment",
					Description: "Receipt of first-year tuition or scholarship award letter.",
					Mandatory:   true,
				},
				{
					Title:       "Blocked Account or Sponsorship",
					Description: "Evidence of funds meeting the national monthly subsistence rate.",
					Mandatory:   true,
				},
			},
		},
		{
			Name:           "Family",
			ProcessingTime: "30-90 calendar days",
			StayDuration:   "Aligned with sponsor's residence permit",
			Fee:            "EUR 75",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Proof of Family Relationship",
					Description: "Marriage or birth certificates, legalized and translated.",
					Mandatory:   true,
				},
				{
					Title:       "Sponsor's Residence Evidence",
					Description: "Residence permit and proof of adequate housing of the sponsoring family member.",
					Mandatory:   true,
				},
				{
					Title:       "Basic Language Certificate",
					Description: "A1-level certificate for spouses where the member state requires it.",
					Mandatory:   false,
				},
			},
		},
		{
			Name:           "Investment",
			ProcessingTime: "60-120 calendar days",
			StayDuration:   "1-2 years, renewable",
			Fee:            "EUR 80",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Business Plan",
					Description: "Detailed plan demonstrating economic benefit to the destination state.",
					Mandatory:   true,
				},
				{
					Title:       "Proof of Investment Funds",
					Description: "Audited statements showing the origin and availability of capital.",
					Mandatory:   true,
				},
				{
					Title:       "Company Registration Documents",
					Description: "Incorporation papers for an existing or planned entity.",
					Mandatory:   false,
				},
			},
		},
	})
}

func unitedKingdomCatalog() *DestinationCatalog {
	common := []RequirementItem{
		{
			Title:       "Valid Passport",
			Description: "Passport valid for the whole of the stay with a blank page for the vignette.",
			Mandatory:   true,
		},
		{
			Title:       "Tuberculosis Test Certificate",
			Description: "Required for stays over six months when applying from a listed country.",
			Mandatory:   false,
		},
		{
			Title:       "Proof of Financial Means",
			Description: "Bank statements covering the 28 days before the application date.",
			Mandatory:   true,
			Details: []string{
				"Funds must be held for 28 consecutive days ending within 31 days of applying",
			},
		},
		{
			Title:       "Biometric Information",
			Description: "Fingerprints and photo taken at a visa application centre.",
			Mandatory:   true,
		},
	}

	return MustNew(DestinationUnitedKingdom, "Work", common, []Category{
		{
			Name:           "Work",
			ProcessingTime: "3 weeks",
			StayDuration:   "Up to 5 years",
			Fee:            "GBP 719",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Certificate of Sponsorship",
					Description: "Reference number issued by a licensed UK sponsor.",
					Mandatory:   true,
				},
				{
					Title:       "English Language Evidence",
					Description: "Approved test at B1 or degree taught in English.",
					Mandatory:   true,
				},
				{
					Title:       "Criminal Record Certificate",
					Description: "Required for roles working with vulnerable groups.",
					Mandatory:   false,
				},
			},
		},
		{
			Name:           "Study",
			ProcessingTime: "3 weeks",
			StayDuration:   "Course length plus wrap-up period",
			Fee:            "GBP 490",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Confirmation of Acceptance for Studies",
					Description: "CAS reference from a licensed student sponsor.",
					Mandatory:   true,
				},
				{
					Title:       "Proof of Maintenance Funds",
					Description: "Course fees plus monthly living costs per the published rates.",
					Mandatory:   true,
				},
				{
					Title:       "Academic Transcripts",
					Description: "Certificates listed on the CAS.",
					Mandatory:   false,
				},
			},
		},
		{
			Name:           "Family",
			ProcessingTime: "12 weeks",
			StayDuration:   "2 years 9 months, extendable",
			Fee:            "GBP 1846",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Relationship Evidence",
					Description: "Marriage certificate or proof of two years' cohabitation.",
					Mandatory:   true,
				},
				{
					Title:       "Sponsor Income Evidence",
					Description: "Payslips and employer letter meeting the minimum income requirement.",
					Mandatory:   true,
				},
				{
					Title:       "English Language Certificate",
					Description: "A1 level from an approved provider.",
					Mandatory:   true,
				},
			},
		},
		{
			Name:           "Investment",
			ProcessingTime: "3-8 weeks",
			StayDuration:   "3 years 4 months",
			Fee:            "GBP 1891",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Endorsement Letter",
					Description: "Endorsement from an approved UK endorsing body for the venture.",
					Mandatory:   true,
				},
				{
					Title:       "Business Plan",
					Description: "Innovative, viable and scalable business proposal.",
					Mandatory:   true,
				},
			},
		},
	})
}

func unitedStatesCatalog() *DestinationCatalog {
	common := []RequirementItem{
		{
			Title:       "Valid Passport",
			Description: "Passport valid for at least six months beyond the intended period of stay.",
			Mandatory:   true,
		},
		{
			Title:       "DS-160 Confirmation Page",
			Description: "Online nonimmigrant visa application confirmation with barcode.",
			Mandatory:   true,
		},
		{
			Title:       "Visa Photo",
			Description: "5x5cm photo meeting Department of State specifications, taken within six months.",
			Mandatory:   true,
		},
		{
			Title:       "Interview Appointment Confirmation",
			Description: "Scheduled embassy or consulate interview slot.",
			Mandatory:   true,
		},
		{
			Title:       "Evidence of Ties to Home Country",
			Description: "Employment letter, property records, or family ties supporting intent to return.",
			Mandatory:   false,
		},
	}

	return MustNew(DestinationUnitedStates, "Work", common, []Category{
		{
			Name:           "Work",
			ProcessingTime: "2-6 months including petition",
			StayDuration:   "Up to 3 years, extendable",
			Fee:            "USD 205",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Approved Petition (I-129)",
					Description: "USCIS petition approval notice from the sponsoring employer.",
					Mandatory:   true,
				},
				{
					Title:       "Labor Condition Application",
					Description: "Certified LCA for specialty occupation roles.",
					Mandatory:   true,
				},
				{
					Title:       "Degree Evaluation",
					Description: "Credential evaluation for foreign degrees.",
					Mandatory:   false,
				},
			},
		},
		{
			Name:           "Study",
			ProcessingTime: "2-8 weeks after I-20 issuance",
			StayDuration:   "Duration of status",
			Fee:            "USD 185",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Form I-20",
					Description: "Certificate of eligibility issued by a SEVP-certified school.",
					Mandatory:   true,
				},
				{
					Title:       "SEVIS Fee Receipt",
					Description: "I-901 fee payment confirmation.",
					Mandatory:   true,
				},
				{
					Title:       "Proof of Funding",
					Description: "Evidence covering first-year tuition and living expenses.",
					Mandatory:   true,
				},
			},
		},
		{
			Name:           "Family",
			ProcessingTime: "12-24 months",
			StayDuration:   "Permanent (immigrant visa)",
			Fee:            "USD 325",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Approved Petition (I-130)",
					Description: "Petition for alien relative approved by USCIS.",
					Mandatory:   true,
				},
				{
					Title:       "Affidavit of Support (I-864)",
					Description: "Sponsor's financial undertaking with supporting tax returns.",
					Mandatory:   true,
				},
				{
					Title:       "Medical Examination Report",
					Description: "Examination by an embassy-approved panel physician.",
					Mandatory:   true,
				},
			},
		},
		{
			Name:           "Investment",
			ProcessingTime: "3-9 months",
			StayDuration:   "2-5 years, renewable",
			Fee:            "USD 205",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Evidence of Substantial Investment",
					Description: "Wire transfers, escrow statements and purchase agreements.",
					Mandatory:   true,
				},
				{
					Title:       "Treaty Country Nationality Evidence",
					Description: "Proof the investor holds nationality of a treaty country.",
					Mandatory:   true,
				},
				{
					Title:       "Business Plan",
					Description: "Five-year plan with hiring projections.",
					Mandatory:   true,
				},
			},
		},
	})
}

func uaeCatalog() *DestinationCatalog {
	common := []RequirementItem{
		{
			Title:       "Valid Passport",
			Description: "Passport valid for at least six months from the date of arrival.",
			Mandatory:   true,
		},
		{
			Title:       "Passport Photo",
			Description: "Recent color photo on white background.",
			Mandatory:   true,
		},
		{
			Title:       "Confirmed Travel Itinerary",
			Description: "Return ticket and accommodation booking inside the UAE.",
			Mandatory:   true,
		},
		{
			Title:       "Health Insurance",
			Description: "Policy valid in the UAE for the full stay.",
			Mandatory:   true,
		},
	}

	return MustNew(DestinationUAE, "Work", common, []Category{
		{
			Name:           "Work",
			ProcessingTime: "5-10 working days",
			StayDuration:   "2 years, renewable",
			Fee:            "AED 1150",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Entry Permit from Sponsor",
					Description: "Work entry permit applied for by the UAE employer.",
					Mandatory:   true,
				},
				{
					Title:       "Attested Education Certificates",
					Description: "Degree attested by the UAE embassy in the issuing country.",
					Mandatory:   true,
				},
				{
					Title:       "Medical Fitness Certificate",
					Description: "Test at an approved UAE medical center after arrival.",
					Mandatory:   true,
				},
			},
		},
		{
			Name:           "Study",
			ProcessingTime: "2-4 weeks",
			StayDuration:   "1 year, renewable per academic year",
			Fee:            "AED 3000",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "University Sponsorship Letter",
					Description: "Admission and sponsorship confirmation from a licensed UAE institution.",
					Mandatory:   true,
				},
				{
					Title:       "Academic Records",
					Description: "Attested transcripts from previous studies.",
					Mandatory:   false,
				},
			},
		},
		{
			Name:           "Family",
			ProcessingTime: "2-3 weeks",
			StayDuration:   "Aligned with sponsor's residence visa",
			Fee:            "AED 1200",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Sponsor Salary Certificate",
					Description: "Proof the resident sponsor meets the minimum salary threshold.",
					Mandatory:   true,
				},
				{
					Title:       "Attested Relationship Certificates",
					Description: "Marriage and birth certificates attested by the UAE embassy.",
					Mandatory:   true,
				},
				{
					Title:       "Tenancy Contract",
					Description: "Registered housing contract in the sponsor's name.",
					Mandatory:   true,
				},
			},
		},
		{
			Name:           "Investment",
			ProcessingTime: "1-2 weeks",
			StayDuration:   "Up to 10 years (golden visa)",
			Fee:            "AED 2800",
			SpecificRequirements: []RequirementItem{
				{
					Title:       "Proof of Qualifying Investment",
					Description: "Title deed or share certificates meeting the minimum value.",
					Mandatory:   true,
				},
				{
					Title:       "No-Objection Letter",
					Description: "From the relevant free zone or mainland authority.",
					Mandatory:   false,
				},
			},
		},
	})
}

// Catalogs builds every shipped destination catalog, keyed by destination
// group. Construction runs the per-catalog integrity checks, so a bad table
// surfaces here, at startup, not at render time.
func Catalogs() map[string]*DestinationCatalog {
	return map[string]*DestinationCatalog{
		DestinationSchengen:      schengenCatalog(),
		DestinationUnitedKingdom: unitedKingdomCatalog(),
		DestinationUnitedStates:  unitedStatesCatalog(),
		DestinationUAE:           uaeCatalog(),
	}
}

// ForDestination resolves a destination group to its catalog. Unlike category
// lookup there is no cross-destination fallback: an unknown destination is an
// unsupported corridor and the caller must say so, not render the wrong country.
func ForDestination(catalogs map[string]*DestinationCatalog, destination string) (*DestinationCatalog, error) {
	c, ok := catalogs[destination]
	if !ok {
		return nil, fmt.Errorf("unsupported destination %q", destination)
	}
	return c, nil
}
