package sim

import (
	"fmt"
	"math"

	"github.com/areumfire/macrosim-go/internal/agents"
)

// Population size caps for the sampled prototype populations.
const (
	maxSampledFirms      = 1000
	maxSampledHouseholds = 5000
)

// InitPopulations samples the initial firm, household and bank populations
// from the configured distributions, assigns initial employment, and wires
// the markets. All draws come from the scheduler's RNG, so a fixed seed
// fixes the population.
func (s *Simulation) InitPopulations() {
	cfg := s.Config
	r := s.rng

	// Firms: sectors round-robin, balance sheets lognormal.
	nFirms := min(cfg.Firms.SampleSize, maxSampledFirms)
	s.Firms = make([]*agents.Firm, 0, nFirms)
	for i := 0; i < nFirms; i++ {
		sector := cfg.Firms.Sectors[i%len(cfg.Firms.Sectors)]
		employees := 1 + r.Intn(49)
		wageRate := r.LogNormal(math.Log(35_000.0/4), 0.3)
		turnover := r.LogNormal(math.Log(100_000.0), 1.0)
		capital := r.LogNormal(math.Log(50_000.0), 1.0)
		cash := r.LogNormal(math.Log(10_000.0), 0.8)

		s.Firms = append(s.Firms, agents.NewFirm(
			fmt.Sprintf("firm_%05d", i),
			agents.FirmSeed{
				Sector:    sector,
				Employees: employees,
				WageBill:  float64(employees) * wageRate,
				Turnover:  turnover,
				Capital:   capital,
				Cash:      cash,
				Debt:      0,
				Equity:    capital + cash,
			},
			cfg.FirmBehavior,
			cfg.Firms.ExitThreshold,
		))
	}

	// Households: lognormal income, pareto wealth, clipped-normal MPC.
	nHouseholds := min(cfg.Households.Count, maxSampledHouseholds)
	s.Households = make([]*agents.Household, 0, nHouseholds)
	for i := 0; i < nHouseholds; i++ {
		income := r.LogNormal(math.Log(cfg.Households.IncomeMean), cfg.Households.IncomeStd/cfg.Households.IncomeMean)
		wealth := r.Pareto(cfg.Households.WealthShape) * income
		mpc := r.ClippedGaussian(cfg.Households.MPCMean, cfg.Households.MPCStd, 0.1, 0.99)

		s.Households = append(s.Households, agents.NewHousehold(
			fmt.Sprintf("hh_%05d", i),
			agents.HouseholdSeed{
				Income: income / 4, // annual draw, quarterly period
				Wealth: wealth,
				MPC:    mpc,
			},
			cfg.HouseholdBehavior,
		))
	}

	// Banks.
	s.Banks = make([]*agents.Bank, 0, cfg.Banks.Count)
	for i := 0; i < cfg.Banks.Count; i++ {
		capital := r.LogNormal(math.Log(1e9), 0.5)
		s.Banks = append(s.Banks, agents.NewBank(
			fmt.Sprintf("bank_%02d", i),
			agents.BankSeed{
				Capital:  capital,
				Reserves: capital * 0.1,
			},
			cfg.Banks,
			cfg.BankBehavior,
		))
	}

	s.assignInitialEmployment()
	s.WireMarkets()
}

// assignInitialEmployment fills firms' sampled head-counts from the
// household population in order, then reconciles each firm's head-count
// with the households actually assigned so that employment parity holds
// from period one.
func (s *Simulation) assignInitialEmployment() {
	hhIdx := 0
	for _, f := range s.Firms {
		assigned := 0
		for j := 0; j < f.Employees && hhIdx < len(s.Households); j++ {
			h := s.Households[hhIdx]
			h.BecomeEmployed(f.ID, f.WageRate)
			hhIdx++
			assigned++
		}
		if assigned != f.Employees {
			f.Employees = assigned
			f.WageBill = float64(assigned) * f.WageRate
		}
	}
}
