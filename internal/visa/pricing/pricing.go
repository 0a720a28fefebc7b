// Package pricing composes itemized visa quotes from a static service tier
// table. The fee-sum invariant is enforced when the table is built, so a
// data-entry mistake halts startup instead of surfacing on a checkout page.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"visa-workers/internal/visa/eligibility"
)

// Tier is the assistance level the buyer selects.
type Tier string

const (
	TierStandard Tier = "standard"
	TierExpress  Tier = "express"
	TierPremium  Tier = "premium"
)

// CenterType tags the application-center operator that collects biometrics.
type CenterType string

const (
	CenterVFSGlobal  CenterType = "vfs_global"
	CenterTLSContact CenterType = "tlscontact"
	CenterEmbassy    CenterType = "embassy_direct"
	CenterOnline     CenterType = "online_portal"
)

// TierEntry is one authored row of the pricing table. Fees are decimal so the
// component sum holds at the cent level.
type TierEntry struct {
	VisaType    eligibility.VisaTypeCode
	Tier        Tier
	Currency    string
	ConsularFee decimal.Decimal
	CenterFee   decimal.Decimal
	CenterType  CenterType
	ServiceFee  decimal.Decimal
	Total       decimal.Decimal
	Included    []string
}

// PriceBreakdown is the itemized quote shown to the buyer.
type PriceBreakdown struct {
	Total       decimal.Decimal `json:"totalPrice"`
	Currency    string          `json:"currency"`
	ConsularFee decimal.Decimal `json:"consularFee"`
	CenterFee   decimal.Decimal `json:"centerFee"`
	CenterType  CenterType      `json:"centerType"`
	ServiceFee  decimal.Decimal `json:"serviceFee"`
	Included    []string        `json:"included"`
}

type tableKey struct {
	visaType eligibility.VisaTypeCode
	tier     Tier
}

// Table is an immutable pricing table; safe for concurrent lookups.
type Table struct {
	entries []TierEntry
	index   map[tableKey]*TierEntry
}

// NewTable validates and indexes the entries. Every entry's authored total
// must equal the sum of its components; a mismatch is a data-entry error in
// the source table, not a runtime condition, so construction fails.
func NewTable(entries []TierEntry) (*Table, error) {
	t := &Table{
		entries: entries,
		index:   make(map[tableKey]*TierEntry, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		sum := e.ConsularFee.Add(e.CenterFee).Add(e.ServiceFee)
		if !sum.Equal(e.Total) {
			return nil, fmt.Errorf("pricing entry %s/%s: components sum to %s, total authored as %s",
				e.VisaType, e.Tier, sum, e.Total)
		}
		key := tableKey{visaType: e.VisaType, tier: e.Tier}
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("pricing entry %s/%s: duplicate", e.VisaType, e.Tier)
		}
		t.index[key] = e
	}
	return t, nil
}

// Entry resolves a (visa type, tier) pair. Missing tiers fall back to the
// standard tier for the visa type so navigation state cannot break the quote
// page; a fully unknown visa type returns false.
func (t *Table) Entry(visaType eligibility.VisaTypeCode, tier Tier) (*TierEntry, bool) {
	if e, ok := t.index[tableKey{visaType: visaType, tier: tier}]; ok {
		return e, true
	}
	e, ok := t.index[tableKey{visaType: visaType, tier: TierStandard}]
	return e, ok
}

// Entries returns the authored rows, for integrity sweeps and tests.
func (t *Table) Entries() []TierEntry {
	return t.entries
}

// Compose builds the buyer-facing breakdown from a table entry. Pure
// arithmetic over already-validated data.
func Compose(e *TierEntry) PriceBreakdown {
	return PriceBreakdown{
		Total:       e.Total,
		Currency:    e.Currency,
		ConsularFee: e.ConsularFee,
		CenterFee:   e.CenterFee,
		CenterType:  e.CenterType,
		ServiceFee:  e.ServiceFee,
		Included:    e.Included,
	}
}
