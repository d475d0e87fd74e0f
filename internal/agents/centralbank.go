package agents

import (
	"math"

	"github.com/areumfire/macrosim-go/internal/config"
)

// CentralBank is the monetary-policy singleton. It sets the policy rate
// from a Taylor rule with interest-rate smoothing; the scheduler pushes
// inflation and output-gap observations in between rate decisions.
type CentralBank struct {
	ID string

	PolicyRate       float64
	InflationTarget  float64
	CurrentInflation float64
	OutputGap        float64
	ReservesSupplied float64

	previousRate float64
	cfg          config.TaylorRuleConfig
}

// NewCentralBank creates the central bank. The initial policy rate equals
// the inflation target.
func NewCentralBank(cfg config.TaylorRuleConfig) *CentralBank {
	return &CentralBank{
		ID:               "central_bank",
		PolicyRate:       cfg.InflationTarget,
		InflationTarget:  cfg.InflationTarget,
		CurrentInflation: cfg.InflationTarget,
		previousRate:     cfg.InflationTarget,
		cfg:              cfg,
	}
}

// Step applies the Taylor rule:
//
//	target   = π* + κ_π (π − π*) + κ_y · y_gap
//	smoothed = ρ · previous + (1 − ρ) · target
//	rate     = max(smoothed, lower_bound)
//
// No-op when the rule is inactive.
func (cb *CentralBank) Step() {
	if !cb.cfg.Active {
		return
	}

	target := cb.InflationTarget +
		cb.cfg.InflationCoefficient*(cb.CurrentInflation-cb.InflationTarget) +
		cb.cfg.OutputGapCoefficient*cb.OutputGap

	cb.previousRate = cb.PolicyRate
	smoothed := cb.cfg.InterestRateSmoothing*cb.previousRate +
		(1-cb.cfg.InterestRateSmoothing)*target

	cb.PolicyRate = math.Max(smoothed, cb.cfg.LowerBound)
}

// UpdateObservations records the economy state the next rate decision will
// react to.
func (cb *CentralBank) UpdateObservations(inflation, outputGap float64) {
	cb.CurrentInflation = inflation
	cb.OutputGap = outputGap
}

// SupplyReserves injects reserves into the banking system.
func (cb *CentralBank) SupplyReserves(amount float64) {
	cb.ReservesSupplied += amount
}
