package sim

import (
	"fmt"
	"math"

	"github.com/areumfire/macrosim-go/internal/agents"
	"github.com/areumfire/macrosim-go/internal/config"
)

// UK macroeconomic calibration constants (ONS, 2023).
const (
	// UKGDPQuarterly is UK quarterly GDP at basic prices (£, 2023).
	UKGDPQuarterly = 600_000_000_000.0
	// UKEmployment is UK total employment (persons, LFS Q1 2023).
	UKEmployment = 31_000_000
	// UKWageQuarterly is the UK mean quarterly wage per employee (£).
	UKWageQuarterly = 7_000.0
	// UKBankCapitalRatio is the UK aggregate bank capital ratio (CET1,
	// approximately).
	UKBankCapitalRatio = 0.15
	// UKBankTotalAssets is total UK bank assets (£, approximate).
	UKBankTotalAssets = 9_000_000_000_000.0
)

// initialUnemploymentRate seeds the sector model's labour market.
const initialUnemploymentRate = 0.045

// SectorProfile is the calibration data for one sector's representative
// firm. GDP and employment shares are fractions of UK totals; they
// intentionally do not sum to exactly 1 because some sectors (mining,
// utilities) are not modelled as separate agents.
type SectorProfile struct {
	Name               string
	GDPShare           float64
	EmploymentShare    float64
	CapitalOutputRatio float64 // capital stock over annual output
	Markup             float64
}

// QuarterlyTurnover is quarterly revenue calibrated to the sector's UK GDP
// share (£).
func (p SectorProfile) QuarterlyTurnover() float64 {
	return p.GDPShare * UKGDPQuarterly
}

// Employees is the head-count calibrated to the sector's UK employment
// share.
func (p SectorProfile) Employees() int {
	return max(1, int(p.EmploymentShare*UKEmployment))
}

// QuarterlyWageBill is employees times the mean quarterly wage (£).
func (p SectorProfile) QuarterlyWageBill() float64 {
	return float64(p.Employees()) * UKWageQuarterly
}

// Capital is the productive capital stock: capital-output ratio times
// annual output (£).
func (p SectorProfile) Capital() float64 {
	return p.CapitalOutputRatio * p.QuarterlyTurnover() * 4
}

// Cash is the initial liquid reserve: one quarter's turnover (£).
func (p SectorProfile) Cash() float64 {
	return p.QuarterlyTurnover()
}

// Equity is the initial net assets: capital plus cash (£).
func (p SectorProfile) Equity() float64 {
	return p.Capital() + p.Cash()
}

// SectorProfiles are the per-sector calibration profiles (ONS Blue Book
// 2023, LFS Q1 2023), in the canonical sector order.
var SectorProfiles = []SectorProfile{
	{Name: "agriculture", GDPShare: 0.007, EmploymentShare: 0.016, CapitalOutputRatio: 3.5, Markup: 0.08},
	{Name: "manufacturing", GDPShare: 0.100, EmploymentShare: 0.097, CapitalOutputRatio: 2.0, Markup: 0.12},
	{Name: "construction", GDPShare: 0.060, EmploymentShare: 0.081, CapitalOutputRatio: 1.5, Markup: 0.10},
	{Name: "wholesale_retail", GDPShare: 0.110, EmploymentShare: 0.129, CapitalOutputRatio: 1.0, Markup: 0.20},
	{Name: "transport", GDPShare: 0.050, EmploymentShare: 0.052, CapitalOutputRatio: 2.5, Markup: 0.12},
	{Name: "hospitality", GDPShare: 0.030, EmploymentShare: 0.065, CapitalOutputRatio: 1.0, Markup: 0.25},
	{Name: "information_communication", GDPShare: 0.060, EmploymentShare: 0.048, CapitalOutputRatio: 1.5, Markup: 0.30},
	{Name: "financial", GDPShare: 0.080, EmploymentShare: 0.039, CapitalOutputRatio: 2.0, Markup: 0.35},
	{Name: "professional_services", GDPShare: 0.120, EmploymentShare: 0.161, CapitalOutputRatio: 1.0, Markup: 0.25},
	{Name: "public_admin", GDPShare: 0.050, EmploymentShare: 0.048, CapitalOutputRatio: 2.0, Markup: 0.05},
	{Name: "education", GDPShare: 0.060, EmploymentShare: 0.081, CapitalOutputRatio: 2.5, Markup: 0.05},
	{Name: "health", GDPShare: 0.070, EmploymentShare: 0.145, CapitalOutputRatio: 2.0, Markup: 0.05},
	{Name: "other_services", GDPShare: 0.060, EmploymentShare: 0.052, CapitalOutputRatio: 1.5, Markup: 0.15},
}

// SectorOptions parameterise the sector-representative factory.
type SectorOptions struct {
	Households int   // number of household agents (default 10,000)
	Banks      int   // number of bank agents (default 5)
	Seed       int64 // RNG seed (default 42)
	Periods    int   // configured run length (default 80)
}

// NewSectorSimulation creates a simulation with exactly one representative
// firm per UK sector. Each firm's balance sheet is derived from the
// sector's share of UK GDP, employment and capital stock so that aggregate
// model output approximates observed UK totals. Households are distributed
// across firms by sectoral employment share; banks are sized to the UK
// banking sector.
func NewSectorSimulation(opts SectorOptions) *Simulation {
	if opts.Households <= 0 {
		opts.Households = 10_000
	}
	if opts.Banks <= 0 {
		opts.Banks = 5
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	if opts.Periods <= 0 {
		opts.Periods = 80
	}

	cfg := config.Default()
	cfg.Simulation.Periods = opts.Periods
	cfg.Simulation.Seed = opts.Seed
	cfg.Firms.SampleSize = len(SectorProfiles)
	sectors := make([]string, len(SectorProfiles))
	for i, p := range SectorProfiles {
		sectors[i] = p.Name
	}
	cfg.Firms.Sectors = sectors
	cfg.Households.Count = opts.Households
	cfg.Banks.Count = opts.Banks

	s := New(cfg)
	r := s.rng

	// One representative firm per sector, sector-specific markup.
	for i, p := range SectorProfiles {
		behavior := cfg.FirmBehavior
		behavior.PriceMarkup = p.Markup
		s.Firms = append(s.Firms, agents.NewFirm(
			fmt.Sprintf("firm_sector_%02d", i),
			agents.FirmSeed{
				Sector:    p.Name,
				Employees: p.Employees(),
				WageBill:  p.QuarterlyWageBill(),
				Turnover:  p.QuarterlyTurnover(),
				Capital:   p.Capital(),
				Cash:      p.Cash(),
				Debt:      0,
				Equity:    p.Equity(),
			},
			behavior,
			cfg.Firms.ExitThreshold,
		))
	}

	// Households, sampled as in the default populations.
	for i := 0; i < opts.Households; i++ {
		income := r.LogNormal(math.Log(cfg.Households.IncomeMean), cfg.Households.IncomeStd/cfg.Households.IncomeMean)
		wealth := r.Pareto(cfg.Households.WealthShape) * income
		mpc := r.ClippedGaussian(cfg.Households.MPCMean, cfg.Households.MPCStd, 0.1, 0.99)
		s.Households = append(s.Households, agents.NewHousehold(
			fmt.Sprintf("hh_%06d", i),
			agents.HouseholdSeed{Income: income / 4, Wealth: wealth, MPC: mpc},
			cfg.HouseholdBehavior,
		))
	}

	// Banks sized to the UK banking sector.
	perBankCapital := UKBankTotalAssets * UKBankCapitalRatio / float64(opts.Banks)
	for i := 0; i < opts.Banks; i++ {
		capital := r.LogNormal(math.Log(perBankCapital), 0.3)
		s.Banks = append(s.Banks, agents.NewBank(
			fmt.Sprintf("bank_%02d", i),
			agents.BankSeed{Capital: capital, Reserves: capital * cfg.Banks.ReserveRequirement},
			cfg.Banks,
			cfg.BankBehavior,
		))
	}

	s.assignSectorEmployment()
	s.WireMarkets()
	return s
}

// assignSectorEmployment distributes the initially-employed households
// across the representative firms in proportion to sectoral employment
// shares, then sets each firm's head-count to the households actually
// assigned.
func (s *Simulation) assignSectorEmployment() {
	totalShare := 0.0
	byName := make(map[string]SectorProfile, len(SectorProfiles))
	for _, p := range SectorProfiles {
		totalShare += p.EmploymentShare
		byName[p.Name] = p
	}

	nEmployed := int(float64(len(s.Households)) * (1 - initialUnemploymentRate))
	pool := s.rng.Perm(len(s.Households))
	assigned := 0

	for _, f := range s.Firms {
		p, ok := byName[f.Sector]
		if !ok {
			continue
		}
		share := p.EmploymentShare / totalShare
		toAssign := min(int(share*float64(nEmployed)), nEmployed-assigned)

		count := 0
		for ; count < toAssign && assigned < len(pool); count++ {
			h := s.Households[pool[assigned]]
			h.BecomeEmployed(f.ID, f.WageRate)
			assigned++
		}
		f.Employees = count
		f.WageBill = float64(count) * f.WageRate
	}
}
