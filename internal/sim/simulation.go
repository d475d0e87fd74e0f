// Package sim owns the agent populations and markets and drives the fixed
// within-period schedule. A Simulation is a pure function of its
// configuration and seed: a fixed seed plus fixed population order
// reproduces identical trajectories bit-for-bit.
package sim

import (
	"github.com/areumfire/macrosim-go/internal/agents"
	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/market"
	"github.com/areumfire/macrosim-go/internal/rng"
)

// Simulation is the top-level scheduler. It exclusively owns the
// populations and the two singletons; markets hold borrowed references and
// never construct or destroy agents.
type Simulation struct {
	Config config.Config

	Firms      []*agents.Firm
	Households []*agents.Household
	Banks      []*agents.Bank

	CentralBank *agents.CentralBank
	Government  *agents.Government

	GoodsMarket  *market.GoodsMarket
	LaborMarket  *market.LaborMarket
	CreditMarket *market.CreditMarket

	CurrentPeriod int

	// OutputGap is the hook feeding the Taylor rule's output-gap
	// observation from period GDP. Nil means a constant zero gap.
	OutputGap func(gdp float64) float64

	rng *rng.Rand
}

// New creates a simulation shell with empty populations. Callers either
// append agents by hand (tests, the sector factory) and then WireMarkets,
// or call InitPopulations for the sampled default populations.
func New(cfg config.Config) *Simulation {
	return &Simulation{
		Config:       cfg,
		CentralBank:  agents.NewCentralBank(cfg.TaylorRule),
		Government:   agents.NewGovernment(cfg.FiscalRule, cfg.Transfers),
		GoodsMarket:  market.NewGoodsMarket(cfg.GoodsMarket),
		LaborMarket:  market.NewLaborMarket(cfg.LaborMarket),
		CreditMarket: market.NewCreditMarket(cfg.CreditMarket),
		rng:          rng.New(cfg.Simulation.Seed),
	}
}

// NewFromConfig creates a simulation with the sampled default populations,
// ready to run.
func NewFromConfig(cfg config.Config) *Simulation {
	s := New(cfg)
	s.InitPopulations()
	return s
}

// RNG returns the single per-run random number generator owned by the
// scheduler.
func (s *Simulation) RNG() *rng.Rand { return s.rng }

// WireMarkets hands the markets their borrowed population references. Must
// be called after the populations change shape.
func (s *Simulation) WireMarkets() {
	s.GoodsMarket.SetAgents(s.Firms, s.Households, s.Government)
	s.LaborMarket.SetAgents(s.Firms, s.Households)
	s.CreditMarket.SetAgents(s.Firms, s.Banks)
}

// Run executes the simulation for periods steps. When collectMicro is true
// the result also carries per-period firm and household snapshots.
func (s *Simulation) Run(periods int, collectMicro bool) *Result {
	if periods <= 0 {
		periods = s.Config.Simulation.Periods
	}
	result := &Result{Records: make([]PeriodRecord, 0, periods)}

	for i := 0; i < periods; i++ {
		record := s.Step()
		result.Records = append(result.Records, record)

		if collectMicro {
			firmStates := make([]agents.FirmState, len(s.Firms))
			for j, f := range s.Firms {
				firmStates[j] = f.State()
			}
			hhStates := make([]agents.HouseholdState, len(s.Households))
			for j, h := range s.Households {
				hhStates[j] = h.State()
			}
			result.FirmStates = append(result.FirmStates, firmStates)
			result.HouseholdStates = append(result.HouseholdStates, hhStates)
		}
	}
	return result
}

// Step executes a single period. The within-period order is part of the
// contract — aggregates depend on it:
//
//	 1. government begins the period (flows reset)
//	 2. central bank sets the policy rate from last-period observations
//	 3. banks take the new policy rate
//	 4. credit market clears (prior defaults + new applications)
//	 5. firms step
//	 6. labour market clears
//	 7. unemployment benefits are pooled and shared out
//	 8. households step
//	 9. transfer income is scrubbed
//	10. GDP estimate and government spending
//	11. goods market clears
//	12. corporate tax
//	13. income tax
//	14. fiscal rule, period close
//	15. central bank observes inflation and the output gap
//	16. banks step
//	17. the period record is emitted
func (s *Simulation) Step() PeriodRecord {
	s.CurrentPeriod++

	// 1. Flows reset
	s.Government.BeginPeriod()

	// 2. Monetary policy
	s.CentralBank.Step()

	// 3. Banks reprice
	for _, b := range s.Banks {
		b.SetPolicyRate(s.CentralBank.PolicyRate)
	}

	// 4. Credit
	s.CreditMarket.Clear(s.rng)

	// 5. Firms
	for _, f := range s.Firms {
		f.Step()
	}

	// 6. Labour
	s.LaborMarket.Clear(s.rng)

	// 7. Unemployment benefits: the pool is split equally across the
	// unemployed. Skipped while no average wage exists to index against.
	avgWage := s.LaborMarket.AverageWage
	if avgWage > 0 && s.LaborMarket.TotalUnemployed > 0 {
		unemployed := s.LaborMarket.TotalUnemployed
		benefit := s.Government.PayUnemploymentBenefit(avgWage, unemployed)
		perHousehold := benefit / float64(unemployed)
		for _, h := range s.Households {
			if !h.Employed {
				h.TransferIncome = perHousehold
			}
		}
	}

	// 8. Households
	for _, h := range s.Households {
		h.Step()
	}

	// 9. Scrub transfers
	for _, h := range s.Households {
		h.TransferIncome = 0
	}

	// 10. GDP estimate and public spending
	gdp := 0.0
	for _, f := range s.Firms {
		if !f.Bankrupt {
			gdp += f.Turnover
		}
	}
	s.Government.GDPEstimate = gdp
	s.Government.CalculateSpending()

	// 11. Goods
	s.GoodsMarket.Clear(s.rng)

	// 12. Corporate tax
	for _, f := range s.Firms {
		if !f.Bankrupt && f.Profit > 0 {
			tax := s.Government.CollectCorporateTax(f.Profit)
			f.Cash -= tax
		}
	}

	// 13. Income tax
	for _, h := range s.Households {
		if h.Income > 0 {
			tax := s.Government.CollectIncomeTax(h.Income)
			h.Wealth -= tax
		}
	}

	// 14. Fiscal rule and period close
	s.Government.Step()
	s.Government.EndPeriod()

	// 15. Observations for the next rate decision
	outputGap := 0.0
	if s.OutputGap != nil {
		outputGap = s.OutputGap(gdp)
	}
	s.CentralBank.UpdateObservations(s.GoodsMarket.Inflation, outputGap)

	// 16. Banks
	for _, b := range s.Banks {
		b.Step()
	}

	// 17. Record
	bankruptcies := 0
	for _, f := range s.Firms {
		if f.Bankrupt {
			bankruptcies++
		}
	}

	return PeriodRecord{
		Period:            s.CurrentPeriod,
		GDP:               gdp,
		Inflation:         s.GoodsMarket.Inflation,
		UnemploymentRate:  s.LaborMarket.UnemploymentRate,
		AverageWage:       s.LaborMarket.AverageWage,
		PolicyRate:        s.CentralBank.PolicyRate,
		GovernmentDeficit: s.Government.Deficit,
		GovernmentDebt:    s.Government.Debt,
		TotalLending:      s.CreditMarket.TotalLending,
		FirmBankruptcies:  bankruptcies,
		TotalEmployment:   s.LaborMarket.TotalEmployed,
	}
}
