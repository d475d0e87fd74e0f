package agents

import (
	"math"

	"github.com/areumfire/macrosim-go/internal/config"
)

// Government is the fiscal singleton. Tax revenue, direct expenditure and
// transfer spending are per-period flows reset by BeginPeriod; debt is the
// accumulated stock.
type Government struct {
	ID string

	TaxRevenue       float64
	Expenditure      float64
	TransferSpending float64
	Deficit          float64
	Debt             float64
	GDPEstimate      float64

	fiscal    config.FiscalRuleConfig
	transfers config.TransfersConfig
}

// NewGovernment creates the government agent.
func NewGovernment(fiscal config.FiscalRuleConfig, transfers config.TransfersConfig) *Government {
	return &Government{
		ID:        "government",
		fiscal:    fiscal,
		transfers: transfers,
	}
}

// BeginPeriod resets the per-period flow accumulators.
func (g *Government) BeginPeriod() {
	g.TaxRevenue = 0
	g.Expenditure = 0
	g.TransferSpending = 0
}

// CollectCorporateTax levies the corporate rate on positive profits and
// returns the tax due; the scheduler debits the firm.
func (g *Government) CollectCorporateTax(profits float64) float64 {
	tax := math.Max(profits*g.fiscal.TaxRateCorporate, 0)
	g.TaxRevenue += tax
	return tax
}

// CollectIncomeTax levies the base income rate on positive income and
// returns the tax due; the scheduler debits the household.
func (g *Government) CollectIncomeTax(income float64) float64 {
	tax := g.fiscal.TaxRateIncomeBase * math.Max(income, 0)
	g.TaxRevenue += tax
	return tax
}

// PayUnemploymentBenefit returns the total transfer pool for the period:
// replacement ratio times the average wage per unemployed household.
func (g *Government) PayUnemploymentBenefit(averageWage float64, unemployedCount int) float64 {
	total := g.transfers.UnemploymentBenefitRatio * averageWage * float64(unemployedCount)
	g.TransferSpending += total
	return total
}

// CalculateSpending sets direct expenditure as a fixed share of the GDP
// estimate.
func (g *Government) CalculateSpending() float64 {
	g.Expenditure = g.fiscal.SpendingGDPRatio * math.Max(g.GDPEstimate, 0)
	return g.Expenditure
}

// Step applies the fiscal rule: when the deficit ratio overshoots the
// target, expenditure is cut toward it (never below zero). No-op when the
// rule is inactive or there is no GDP estimate.
func (g *Government) Step() {
	if !g.fiscal.Active || g.GDPEstimate <= 0 {
		return
	}
	deficitRatio := math.Abs(g.Deficit) / math.Max(g.GDPEstimate, 1e-9)
	gap := deficitRatio - g.fiscal.DeficitTarget
	if gap <= 0 {
		return
	}
	adjustment := g.fiscal.DeficitAdjustmentSpeed * gap * g.GDPEstimate
	g.Expenditure = math.Max(g.Expenditure-adjustment, 0)
}

// EndPeriod finalises the period: deficit = revenue − (expenditure +
// transfers). A deficit (negative balance) adds to debt; a surplus pays it
// down.
func (g *Government) EndPeriod() {
	g.Deficit = g.TaxRevenue - (g.Expenditure + g.TransferSpending)
	g.Debt -= g.Deficit
}
