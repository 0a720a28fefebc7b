// Package eligibility classifies which travel authorization a traveler needs
// for a given corridor. Classification is a priority-ordered decision table
// evaluated top to bottom, first match wins; exemptions are expressed as
// higher-priority rules rather than special cases in the evaluator.
package eligibility

// VisaTypeCode identifies the legal instrument a corridor requires.
type VisaTypeCode string

const (
	ShortStayUniform     VisaTypeCode = "short_stay_uniform"
	NationalLongStay     VisaTypeCode = "national_long_stay"
	ElectronicTravelAuth VisaTypeCode = "electronic_travel_authorization"
	EVisa                VisaTypeCode = "e_visa"
	VisaOnArrival        VisaTypeCode = "visa_on_arrival"
	StandardVisitor      VisaTypeCode = "standard_visitor"
)

// Purpose is the declared reason for travel.
type Purpose string

const (
	PurposeTourism    Purpose = "tourism"
	PurposeBusiness   Purpose = "business"
	PurposeWork       Purpose = "work"
	PurposeStudy      Purpose = "study"
	PurposeFamily     Purpose = "family"
	PurposeInvestment Purpose = "investment"
)

// Outcome is the terminal state of a classification. "No visa required" and
// "unsupported destination" are distinct outcomes, not errors: the first means
// the traveler is exempt, the second means we do not serve the corridor yet.
type Outcome string

const (
	OutcomeVisaRequired           Outcome = "visa_required"
	OutcomeNoVisaRequired         Outcome = "no_visa_required"
	OutcomeUnsupportedDestination Outcome = "unsupported_destination"
)

// Input is one classification request.
type Input struct {
	Nationality         string  `json:"nationality"`
	DestinationGroup    string  `json:"destinationGroup"`
	Purpose             Purpose `json:"purpose"`
	PlannedDurationDays int     `json:"plannedDurationDays"`
}

// Decision is the classification result. VisaType is set only when Outcome is
// OutcomeVisaRequired. MatchedRule names the winning table row for logging.
type Decision struct {
	Outcome     Outcome      `json:"outcome"`
	VisaType    VisaTypeCode `json:"visaType,omitempty"`
	MatchedRule string       `json:"matchedRule,omitempty"`
}

// Rule is one row of a destination's decision table.
type Rule struct {
	Name    string
	Matches func(Input) bool
	Decide  func(Input) Decision
}

// Classifier evaluates destination decision tables. Tables are immutable after
// construction, so a single classifier is safe for concurrent use.
type Classifier struct {
	tables map[string][]Rule
}

// NewClassifier builds a classifier over the given tables. Tests substitute
// fixture tables; production callers use DefaultTables.
func NewClassifier(tables map[string][]Rule) *Classifier {
	return &Classifier{tables: tables}
}

// Classify is total over its input domain: every known destination table ends
// in a catch-all default, and an unknown destination yields the unsupported
// outcome rather than an error.
func (c *Classifier) Classify(in Input) Decision {
	rules, ok := c.tables[in.DestinationGroup]
	if !ok {
		return Decision{Outcome: OutcomeUnsupportedDestination}
	}
	for _, r := range rules {
		if r.Matches(in) {
			d := r.Decide(in)
			d.MatchedRule = r.Name
			return d
		}
	}
	// Unreachable with well-formed tables; kept so classification stays total
	// even if a table is authored without a catch-all.
	return Decision{Outcome: OutcomeUnsupportedDestination}
}

// Destinations returns the destination groups this classifier knows about.
func (c *Classifier) Destinations() []string {
	out := make([]string, 0, len(c.tables))
	for k := range c.tables {
		out = append(out, k)
	}
	return out
}

func visaRequired(code VisaTypeCode) func(Input) Decision {
	return func(Input) Decision {
		return Decision{Outcome: OutcomeVisaRequired, VisaType: code}
	}
}

func noVisaRequired(Input) Decision {
	return Decision{Outcome: OutcomeNoVisaRequired}
}

func always(Input) bool { return true }

func nationalityIn(set map[string]bool) func(Input) bool {
	return func(in Input) bool { return set[in.Nationality] }
}

func purposeIn(purposes ...Purpose) func(Input) bool {
	return func(in Input) bool {
		for _, p := range purposes {
			if in.Purpose == p {
				return true
			}
		}
		return false
	}
}

func longerThan(days int) func(Input) bool {
	return func(in Input) bool { return in.PlannedDurationDays > days }
}

func and(preds ...func(Input) bool) func(Input) bool {
	return func(in Input) bool {
		for _, p := range preds {
			if !p(in) {
				return false
			}
		}
		return true
	}
}
