package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visa-workers/internal/visa/eligibility"
)

func TestDefaultTable_FeeSumProperty(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)

	for _, e := range table.Entries() {
		sum := e.ConsularFee.Add(e.CenterFee).Add(e.ServiceFee)
		assert.True(t, sum.Equal(e.Total), "entry %s/%s: %s != %s", e.VisaType, e.Tier, sum, e.Total)
		assert.NotEmpty(t, e.Currency, "entry %s/%s", e.VisaType, e.Tier)
		assert.NotEmpty(t, e.Included, "entry %s/%s", e.VisaType, e.Tier)
	}
}

func TestNewTable_RejectsMismatchedTotal(t *testing.T) {
	_, err := NewTable([]TierEntry{{
		VisaType:    eligibility.EVisa,
		Tier:        TierStandard,
		Currency:    "USD",
		ConsularFee: d("90.00"),
		CenterFee:   d("10.00"),
		ServiceFee:  d("39.00"),
		Total:       d("140.00"), // off by one dollar
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "components sum")
}

func TestNewTable_RejectsDuplicateEntry(t *testing.T) {
	entry := TierEntry{
		VisaType: eligibility.EVisa, Tier: TierStandard, Currency: "USD",
		ConsularFee: d("1.00"), CenterFee: d("1.00"), ServiceFee: d("1.00"), Total: d("3.00"),
	}
	_, err := NewTable([]TierEntry{entry, entry})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestEntry_FallsBackToStandardTier(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)

	// Visa on arrival ships only a standard tier; express resolves to it.
	e, ok := table.Entry(eligibility.VisaOnArrival, TierExpress)
	require.True(t, ok)
	assert.Equal(t, TierStandard, e.Tier)

	_, ok = table.Entry(eligibility.VisaTypeCode("unknown"), TierStandard)
	assert.False(t, ok)
}

func TestCompose_ItemizedBreakdown(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)

	e, ok := table.Entry(eligibility.ShortStayUniform, TierStandard)
	require.True(t, ok)

	b := Compose(e)
	assert.True(t, b.Total.Equal(decimal.RequireFromString("164.50")))
	assert.Equal(t, "EUR", b.Currency)
	assert.Equal(t, CenterVFSGlobal, b.CenterType)
	assert.True(t, b.ConsularFee.Add(b.CenterFee).Add(b.ServiceFee).Equal(b.Total))
	assert.Equal(t, e.Included, b.Included)
}
