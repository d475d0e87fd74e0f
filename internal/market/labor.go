package market

import (
	"github.com/areumfire/macrosim-go/internal/agents"
	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/rng"
)

// LaborMarket separates and matches workers. Firms post vacancies with
// offered wages; unemployed households search; matching is frictional with
// probability matching_efficiency per candidate.
//
// Firms and seekers are always visited in population order, so a fixed seed
// reproduces the same matches. The order-of-iteration bias is intentional
// and part of the contract.
type LaborMarket struct {
	TotalEmployed    int
	TotalUnemployed  int
	UnemploymentRate float64
	AverageWage      float64
	TotalMatches     int
	TotalSeparations int

	cfg        config.LaborMarketConfig
	firms      []*agents.Firm
	households []*agents.Household

	seekers []*agents.Household // reused each period
}

// NewLaborMarket creates the labour market.
func NewLaborMarket(cfg config.LaborMarketConfig) *LaborMarket {
	return &LaborMarket{cfg: cfg}
}

// SetAgents registers the participating populations.
func (m *LaborMarket) SetAgents(firms []*agents.Firm, households []*agents.Household) {
	m.firms = firms
	m.households = households
}

// Clear runs one round of labour-market clearing: exogenous separations,
// vacancy-seeker matching with sticky wage formation, then employment
// statistics. Separations and match acceptance draw from r; with a nil r
// no separations occur and every candidate is accepted.
func (m *LaborMarket) Clear(r *rng.Rand) {
	m.exogenousSeparations(r)
	m.TotalMatches = m.match(r)
	m.updateStatistics()
}

func (m *LaborMarket) exogenousSeparations(r *rng.Rand) {
	m.TotalSeparations = 0
	if r == nil {
		return
	}
	for _, h := range m.households {
		if !h.Employed {
			continue
		}
		if r.Float64() < m.cfg.SeparationRate {
			m.separate(h)
		}
	}
}

// separate resolves the employer by identity (linear scan over the firm
// population) and dissolves the match from both sides.
func (m *LaborMarket) separate(h *agents.Household) {
	if h.EmployerID != "" {
		for _, f := range m.firms {
			if f.ID == h.EmployerID {
				f.Fire(1)
				break
			}
		}
	}
	h.BecomeUnemployed()
	m.TotalSeparations++
}

func (m *LaborMarket) match(r *rng.Rand) int {
	m.seekers = m.seekers[:0]
	for _, h := range m.households {
		if h.IsSearching(r) {
			m.seekers = append(m.seekers, h)
		}
	}
	if len(m.seekers) == 0 {
		return 0
	}

	matches := 0
	seekerIdx := 0
	for _, f := range m.firms {
		if f.Vacancies == 0 || f.Bankrupt {
			continue
		}
		for f.Vacancies > 0 && seekerIdx < len(m.seekers) {
			// Frictional matching: rejected candidates are skipped past,
			// not returned to the pool.
			if r != nil && r.Float64() > m.cfg.MatchingEfficiency {
				seekerIdx++
				continue
			}

			h := m.seekers[seekerIdx]
			// Sticky wage: blend the going average wage with the firm's
			// posted rate. Before any average wage exists the posted rate
			// stands alone.
			wage := f.WageRate
			if m.AverageWage > 0 {
				wage = m.cfg.WageStickiness*m.AverageWage + (1-m.cfg.WageStickiness)*f.WageRate
			}

			f.Hire(1, wage)
			h.BecomeEmployed(f.ID, wage)
			matches++
			seekerIdx++
		}
	}
	return matches
}

func (m *LaborMarket) updateStatistics() {
	employed := 0
	wageSum := 0.0
	wageCount := 0
	for _, h := range m.households {
		if h.Employed {
			employed++
			if h.Wage > 0 {
				wageSum += h.Wage
				wageCount++
			}
		}
	}
	m.TotalEmployed = employed
	m.TotalUnemployed = len(m.households) - employed

	total := m.TotalEmployed + m.TotalUnemployed
	if total > 0 {
		m.UnemploymentRate = float64(m.TotalUnemployed) / float64(total)
	} else {
		m.UnemploymentRate = 0
	}
	if wageCount > 0 {
		m.AverageWage = wageSum / float64(wageCount)
	} else {
		m.AverageWage = 0
	}
}
