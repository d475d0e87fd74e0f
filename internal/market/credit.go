package market

import (
	"github.com/areumfire/macrosim-go/internal/agents"
	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/rng"
)

// CreditMarket routes firm credit applications to banks and settles
// prior-period defaults. Applications are routed round-robin in application
// order — not by price — which keeps the clearing independent of the
// rate-setting step. Rationing is the interesting failure mode: rejected
// firms stay cash-negative and shocks propagate into the real sector.
type CreditMarket struct {
	TotalLending      float64
	TotalApplications int
	TotalApprovals    int
	TotalRejections   int
	TotalDefaults     int
	AverageRate       float64

	cfg   config.CreditMarketConfig
	firms []*agents.Firm
	banks []*agents.Bank
}

// NewCreditMarket creates the credit market.
func NewCreditMarket(cfg config.CreditMarketConfig) *CreditMarket {
	return &CreditMarket{cfg: cfg}
}

// SetAgents registers the participating populations.
func (m *CreditMarket) SetAgents(firms []*agents.Firm, banks []*agents.Bank) {
	m.firms = firms
	m.banks = banks
}

// Clear runs one round of credit-market clearing: settle defaults left by
// firms that went bankrupt since the last clearing, then process new
// applications. r feeds the banks' noisy credit scores; pass nil for the
// deterministic rule.
func (m *CreditMarket) Clear(r *rng.Rand) {
	m.resetPeriod()
	m.processDefaults()
	m.processApplications(r)
}

func (m *CreditMarket) resetPeriod() {
	m.TotalLending = 0
	m.TotalApplications = 0
	m.TotalApprovals = 0
	m.TotalRejections = 0
	m.TotalDefaults = 0
	m.AverageRate = 0
}

// processDefaults distributes each bankrupt firm's outstanding debt pro
// rata across the banks holding loans, scaled by the base default rate, as
// an addition to non-performing loans. The firm's debt is then written off
// so a bankruptcy is charged exactly once.
func (m *CreditMarket) processDefaults() {
	for _, f := range m.firms {
		if !f.Bankrupt || f.Debt <= 0 {
			continue
		}
		totalLoans := 0.0
		for _, b := range m.banks {
			if b.Loans > 0 {
				totalLoans += b.Loans
			}
		}
		if totalLoans > 0 {
			for _, b := range m.banks {
				if b.Loans > 0 {
					share := f.Debt * b.Loans / totalLoans
					b.RecordDefault(share * m.cfg.DefaultRateBase)
				}
			}
		}
		m.TotalDefaults++
		f.Debt = 0
	}
}

// processApplications matches cash-negative firms with banks round-robin.
func (m *CreditMarket) processApplications(r *rng.Rand) {
	if len(m.banks) == 0 {
		return
	}

	rateSum := 0.0
	rateCount := 0
	bankIdx := 0

	for _, f := range m.firms {
		if f.Bankrupt || f.Cash >= 0 {
			continue
		}

		amount := -f.Cash
		m.TotalApplications++

		b := m.banks[bankIdx%len(m.banks)]
		bankIdx++

		approved := b.EvaluateLoan(amount, f.Equity, f.Turnover, r)
		if approved || !m.cfg.Rationing {
			rate := b.ExtendLoan(amount)
			f.Cash += amount
			f.Debt += amount
			m.TotalApprovals++
			m.TotalLending += amount
			rateSum += rate
			rateCount++
		} else {
			m.TotalRejections++
		}
	}

	if rateCount > 0 {
		m.AverageRate = rateSum / float64(rateCount)
	}
}
