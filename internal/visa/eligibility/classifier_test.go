package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visa-workers/internal/visa/catalog"
)

func defaultClassifier() *Classifier {
	return NewClassifier(DefaultTables())
}

func TestClassify_Schengen(t *testing.T) {
	c := defaultClassifier()

	tests := []struct {
		name     string
		input    Input
		outcome  Outcome
		visaType VisaTypeCode
	}{
		{
			name:     "US tourist 20 days gets short-stay uniform visa",
			input:    Input{Nationality: "US", DestinationGroup: catalog.DestinationSchengen, Purpose: PurposeTourism, PlannedDurationDays: 20},
			outcome:  OutcomeVisaRequired,
			visaType: ShortStayUniform,
		},
		{
			name:     "90 days is still short-stay",
			input:    Input{Nationality: "IN", DestinationGroup: catalog.DestinationSchengen, Purpose: PurposeTourism, PlannedDurationDays: 90},
			outcome:  OutcomeVisaRequired,
			visaType: ShortStayUniform,
		},
		{
			name:     "91 days crosses into national long-stay",
			input:    Input{Nationality: "IN", DestinationGroup: catalog.DestinationSchengen, Purpose: PurposeTourism, PlannedDurationDays: 91},
			outcome:  OutcomeVisaRequired,
			visaType: NationalLongStay,
		},
		{
			name:     "study purpose overrides short duration",
			input:    Input{Nationality: "US", DestinationGroup: catalog.DestinationSchengen, Purpose: PurposeStudy, PlannedDurationDays: 30},
			outcome:  OutcomeVisaRequired,
			visaType: NationalLongStay,
		},
		{
			name:     "family purpose overrides exempt nationality",
			input:    Input{Nationality: "DE", DestinationGroup: catalog.DestinationSchengen, Purpose: PurposeFamily, PlannedDurationDays: 10},
			outcome:  OutcomeVisaRequired,
			visaType: NationalLongStay,
		},
		{
			name:    "exempt nationality short tourist stay needs no visa",
			input:   Input{Nationality: "DE", DestinationGroup: catalog.DestinationSchengen, Purpose: PurposeTourism, PlannedDurationDays: 14},
			outcome: OutcomeNoVisaRequired,
		},
		{
			name:    "exempt nationality stays exempt past 90 days",
			input:   Input{Nationality: "DE", DestinationGroup: catalog.DestinationSchengen, Purpose: PurposeTourism, PlannedDurationDays: 100},
			outcome: OutcomeNoVisaRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := c.Classify(tt.input)
			assert.Equal(t, tt.outcome, d.Outcome)
			assert.Equal(t, tt.visaType, d.VisaType)
		})
	}
}

func TestClassify_UnitedStates(t *testing.T) {
	c := defaultClassifier()

	waiver := c.Classify(Input{Nationality: "JP", DestinationGroup: catalog.DestinationUnitedStates, Purpose: PurposeTourism, PlannedDurationDays: 14})
	assert.Equal(t, OutcomeVisaRequired, waiver.Outcome)
	assert.Equal(t, ElectronicTravelAuth, waiver.VisaType)

	// Waiver nationality but stay too long falls through to visitor visa.
	long := c.Classify(Input{Nationality: "JP", DestinationGroup: catalog.DestinationUnitedStates, Purpose: PurposeTourism, PlannedDurationDays: 120})
	assert.Equal(t, StandardVisitor, long.VisaType)

	// Waiver nationality travelling for work routes to long-stay regardless.
	work := c.Classify(Input{Nationality: "JP", DestinationGroup: catalog.DestinationUnitedStates, Purpose: PurposeWork, PlannedDurationDays: 30})
	assert.Equal(t, NationalLongStay, work.VisaType)

	visitor := c.Classify(Input{Nationality: "IN", DestinationGroup: catalog.DestinationUnitedStates, Purpose: PurposeTourism, PlannedDurationDays: 14})
	assert.Equal(t, StandardVisitor, visitor.VisaType)
}

func TestClassify_UAE(t *testing.T) {
	c := defaultClassifier()

	gcc := c.Classify(Input{Nationality: "SA", DestinationGroup: catalog.DestinationUAE, Purpose: PurposeTourism, PlannedDurationDays: 7})
	assert.Equal(t, OutcomeNoVisaRequired, gcc.Outcome)

	onArrival := c.Classify(Input{Nationality: "US", DestinationGroup: catalog.DestinationUAE, Purpose: PurposeTourism, PlannedDurationDays: 7})
	assert.Equal(t, VisaOnArrival, onArrival.VisaType)

	evisa := c.Classify(Input{Nationality: "IN", DestinationGroup: catalog.DestinationUAE, Purpose: PurposeTourism, PlannedDurationDays: 7})
	assert.Equal(t, EVisa, evisa.VisaType)
}

func TestClassify_UnsupportedDestination(t *testing.T) {
	c := defaultClassifier()

	d := c.Classify(Input{Nationality: "US", DestinationGroup: "mars", Purpose: PurposeTourism, PlannedDurationDays: 7})
	assert.Equal(t, OutcomeUnsupportedDestination, d.Outcome)
	assert.Empty(t, d.VisaType)
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Fixture table with overlapping rules: the earlier rule must win.
	tables := map[string][]Rule{
		"fixture": {
			{Name: "first", Matches: always, Decide: visaRequired(EVisa)},
			{Name: "second", Matches: always, Decide: visaRequired(StandardVisitor)},
		},
	}
	c := NewClassifier(tables)

	d := c.Classify(Input{DestinationGroup: "fixture"})
	assert.Equal(t, EVisa, d.VisaType)
	assert.Equal(t, "first", d.MatchedRule)
}

func TestClassify_TotalOverShippedTables(t *testing.T) {
	c := defaultClassifier()

	// Every destination table must produce a terminal decision for arbitrary
	// input, including the zero purpose.
	for _, dest := range c.Destinations() {
		d := c.Classify(Input{Nationality: "ZZ", DestinationGroup: dest, PlannedDurationDays: 1})
		require.NotEqual(t, OutcomeUnsupportedDestination, d.Outcome, "destination %s", dest)
		if d.Outcome == OutcomeVisaRequired {
			require.NotEmpty(t, d.VisaType, "destination %s", dest)
		}
	}
}

func TestDefaultTables_CoverShippedCatalogs(t *testing.T) {
	tables := DefaultTables()
	for dest := range catalog.Catalogs() {
		_, ok := tables[dest]
		assert.True(t, ok, "catalog destination %s has no decision table", dest)
	}
}
