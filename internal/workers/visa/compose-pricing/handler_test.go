// internal/workers/visa/compose-pricing/handler_test.go
package composepricing

import (
	"context"
	"testing"

	"visa-workers/internal/common/logger"
	"visa-workers/internal/visa/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	table, err := pricing.DefaultTable()
	require.NoError(t, err)
	return NewHandler(LoadConfig(), table, logger.NewTestLogger(t))
}

func TestHandler_Execute_Success(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		VisaType:    "short_stay_uniform",
		ServiceTier: "express",
	})

	require.NoError(t, err)
	assert.Equal(t, "short_stay_uniform", output.VisaType)
	assert.Equal(t, "express", output.ServiceTier)
	assert.Equal(t, "EUR", output.Currency)
	assert.True(t, output.Total.Equal(decimal.RequireFromString("204.50")))
	assert.True(t, output.Total.Equal(output.ConsularFee.Add(output.CenterFee).Add(output.ServiceFee)))
	assert.NotEmpty(t, output.Included)
}

func TestHandler_Execute_MissingTierFallsBackToStandard(t *testing.T) {
	handler := newTestHandler(t)

	// Visa on arrival ships with a standard row only.
	output, err := handler.Execute(context.Background(), &Input{
		VisaType:    "visa_on_arrival",
		ServiceTier: "premium",
	})

	require.NoError(t, err)
	assert.Equal(t, "standard", output.ServiceTier)
	assert.True(t, output.Total.Equal(decimal.RequireFromString("25.00")))
}

func TestHandler_Execute_EmptyTierDefaultsToStandard(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		VisaType: "standard_visitor",
	})

	require.NoError(t, err)
	assert.Equal(t, "standard", output.ServiceTier)
	assert.Equal(t, "GBP", output.Currency)
}

func TestHandler_Execute_InputCasingNormalized(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		VisaType:    " Short_Stay_Uniform ",
		ServiceTier: "Premium",
	})

	require.NoError(t, err)
	assert.Equal(t, "short_stay_uniform", output.VisaType)
	assert.Equal(t, "premium", output.ServiceTier)
}

func TestHandler_Execute_UnknownVisaType(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		VisaType:    "diplomatic_courier",
		ServiceTier: "standard",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestHandler_Execute_MissingVisaType(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{ServiceTier: "standard"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}
