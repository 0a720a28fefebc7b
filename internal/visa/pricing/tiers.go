package pricing

import (
	"github.com/shopspring/decimal"

	"visa-workers/internal/visa/eligibility"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var standardInclusions = []string{
	"Document checklist tailored to your visa category",
	"Application form review before submission",
	"Appointment booking at the application center",
	"Email support during processing",
}

var expressInclusions = []string{
	"Everything in standard",
	"Priority appointment slot where available",
	"Same-day review of corrected documents",
	"Status updates by SMS and email",
}

var premiumInclusions = []string{
	"Everything in express",
	"Dedicated case manager",
	"Form filling done for you",
	"Refund of service fee if the application is not lodged",
}

// DefaultTable builds the shipped pricing table. NewTable enforces the
// component-sum invariant, so an authoring mistake here fails startup.
func DefaultTable() (*Table, error) {
	return NewTable([]TierEntry{
		// Schengen short-stay (EUR)
		{VisaType: eligibility.ShortStayUniform, Tier: TierStandard, Currency: "EUR",
			ConsularFee: d("80.00"), CenterFee: d("35.50"), CenterType: CenterVFSGlobal,
			ServiceFee: d("49.00"), Total: d("164.50"), Included: standardInclusions},
		{VisaType: eligibility.ShortStayUniform, Tier: TierExpress, Currency: "EUR",
			ConsularFee: d("80.00"), CenterFee: d("35.50"), CenterType: CenterVFSGlobal,
			ServiceFee: d("89.00"), Total: d("204.50"), Included: expressInclusions},
		{VisaType: eligibility.ShortStayUniform, Tier: TierPremium, Currency: "EUR",
			ConsularFee: d("80.00"), CenterFee: d("35.50"), CenterType: CenterVFSGlobal,
			ServiceFee: d("149.00"), Total: d("264.50"), Included: premiumInclusions},

		// National long-stay (EUR)
		{VisaType: eligibility.NationalLongStay, Tier: TierStandard, Currency: "EUR",
			ConsularFee: d("99.00"), CenterFee: d("42.00"), CenterType: CenterTLSContact,
			ServiceFee: d("89.00"), Total: d("230.00"), Included: standardInclusions},
		{VisaType: eligibility.NationalLongStay, Tier: TierExpress, Currency: "EUR",
			ConsularFee: d("99.00"), CenterFee: d("42.00"), CenterType: CenterTLSContact,
			ServiceFee: d("139.00"), Total: d("280.00"), Included: expressInclusions},
		{VisaType: eligibility.NationalLongStay, Tier: TierPremium, Currency: "EUR",
			ConsularFee: d("99.00"), CenterFee: d("42.00"), CenterType: CenterTLSContact,
			ServiceFee: d("219.00"), Total: d("360.00"), Included: premiumInclusions},

		// US electronic travel authorization (USD), no biometrics center.
		{VisaType: eligibility.ElectronicTravelAuth, Tier: TierStandard, Currency: "USD",
			ConsularFee: d("21.00"), CenterFee: d("0.00"), CenterType: CenterOnline,
			ServiceFee: d("29.00"), Total: d("50.00"), Included: standardInclusions},
		{VisaType: eligibility.ElectronicTravelAuth, Tier: TierExpress, Currency: "USD",
			ConsularFee: d("21.00"), CenterFee: d("0.00"), CenterType: CenterOnline,
			ServiceFee: d("49.00"), Total: d("70.00"), Included: expressInclusions},

		// UK standard visitor (GBP)
		{VisaType: eligibility.StandardVisitor, Tier: TierStandard, Currency: "GBP",
			ConsularFee: d("115.00"), CenterFee: d("55.00"), CenterType: CenterVFSGlobal,
			ServiceFee: d("59.00"), Total: d("229.00"), Included: standardInclusions},
		{VisaType: eligibility.StandardVisitor, Tier: TierExpress, Currency: "GBP",
			ConsularFee: d("115.00"), CenterFee: d("55.00"), CenterType: CenterVFSGlobal,
			ServiceFee: d("109.00"), Total: d("279.00"), Included: expressInclusions},
		{VisaType: eligibility.StandardVisitor, Tier: TierPremium, Currency: "GBP",
			ConsularFee: d("115.00"), CenterFee: d("55.00"), CenterType: CenterVFSGlobal,
			ServiceFee: d("189.00"), Total: d("359.00"), Included: premiumInclusions},

		// UAE e-visa (USD)
		{VisaType: eligibility.EVisa, Tier: TierStandard, Currency: "USD",
			ConsularFee: d("90.00"), CenterFee: d("10.00"), CenterType: CenterOnline,
			ServiceFee: d("39.00"), Total: d("139.00"), Included: standardInclusions},
		{VisaType: eligibility.EVisa, Tier: TierExpress, Currency: "USD",
			ConsularFee: d("90.00"), CenterFee: d("10.00"), CenterType: CenterOnline,
			ServiceFee: d("69.00"), Total: d("169.00"), Included: expressInclusions},

		// UAE visa on arrival: consular fee collected at the border, we quote
		// preparation assistance only.
		{VisaType: eligibility.VisaOnArrival, Tier: TierStandard, Currency: "USD",
			ConsularFee: d("0.00"), CenterFee: d("0.00"), CenterType: CenterOnline,
			ServiceFee: d("25.00"), Total: d("25.00"), Included: standardInclusions},
	})
}
