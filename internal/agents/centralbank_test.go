package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areumfire/macrosim-go/internal/config"
)

func taylorConfig() config.TaylorRuleConfig {
	return config.Default().TaylorRule
}

func TestCentralBankInitialState(t *testing.T) {
	cb := NewCentralBank(taylorConfig())
	assert.Equal(t, "central_bank", cb.ID)
	assert.Equal(t, 0.02, cb.PolicyRate)
	assert.Equal(t, 0.02, cb.InflationTarget)
	assert.Equal(t, 0.02, cb.CurrentInflation)
}

// TestTaylorRuleResponse covers scenario S4.
func TestTaylorRuleResponse(t *testing.T) {
	cfg := config.TaylorRuleConfig{
		Active:                true,
		InflationTarget:       0.02,
		InflationCoefficient:  1.5,
		OutputGapCoefficient:  0.5,
		InterestRateSmoothing: 0.8,
		LowerBound:            0.001,
	}
	cb := NewCentralBank(cfg)
	require.Equal(t, 0.02, cb.PolicyRate)

	cb.UpdateObservations(0.05, 0.0)
	cb.Step()

	// target = 0.02 + 1.5*0.03 = 0.065; smoothed = 0.8*0.02 + 0.2*0.065.
	assert.InDelta(t, 0.029, cb.PolicyRate, 1e-12)
}

// TestRateLowerBound covers property 7.
func TestRateLowerBound(t *testing.T) {
	cb := NewCentralBank(taylorConfig())

	// Deep deflation drives the target rate far negative.
	for i := 0; i < 50; i++ {
		cb.UpdateObservations(-0.10, -0.05)
		cb.Step()
		assert.GreaterOrEqual(t, cb.PolicyRate, 0.001)
	}
}

func TestInactiveRuleHoldsRate(t *testing.T) {
	cfg := taylorConfig()
	cfg.Active = false
	cb := NewCentralBank(cfg)

	cb.UpdateObservations(0.10, 0.0)
	cb.Step()
	assert.Equal(t, 0.02, cb.PolicyRate)
}

func TestSmoothingUsesPreviousRate(t *testing.T) {
	cb := NewCentralBank(taylorConfig())

	rates := make([]float64, 0, 5)
	for i := 0; i < 5; i++ {
		cb.UpdateObservations(0.05, 0)
		cb.Step()
		rates = append(rates, cb.PolicyRate)
	}

	// Persistent high inflation keeps pulling the rate toward the 0.065
	// target, but smoothing (against the lagged rate) damps each move.
	assert.Greater(t, rates[4], rates[0])
	for _, r := range rates {
		assert.Less(t, r, 0.065)
	}
}

func TestSupplyReserves(t *testing.T) {
	cb := NewCentralBank(taylorConfig())
	cb.SupplyReserves(100)
	cb.SupplyReserves(50)
	assert.Equal(t, 150.0, cb.ReservesSupplied)
}
