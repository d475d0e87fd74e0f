package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/areumfire/macrosim-go/internal/config"
)

func testGovernment() *Government {
	cfg := config.Default()
	return NewGovernment(cfg.FiscalRule, cfg.Transfers)
}

func TestCorporateTax(t *testing.T) {
	g := testGovernment()

	tax := g.CollectCorporateTax(1000)
	assert.InDelta(t, 190, tax, 1e-9) // 19%
	assert.InDelta(t, 190, g.TaxRevenue, 1e-9)

	// Losses are not taxed (and not credited).
	tax = g.CollectCorporateTax(-500)
	assert.Zero(t, tax)
	assert.InDelta(t, 190, g.TaxRevenue, 1e-9)
}

func TestIncomeTax(t *testing.T) {
	g := testGovernment()

	tax := g.CollectIncomeTax(1000)
	assert.InDelta(t, 200, tax, 1e-9) // 20%

	tax = g.CollectIncomeTax(-100)
	assert.Zero(t, tax)
	assert.InDelta(t, 200, g.TaxRevenue, 1e-9)
}

func TestUnemploymentBenefit(t *testing.T) {
	g := testGovernment()

	total := g.PayUnemploymentBenefit(1000, 5)
	assert.InDelta(t, 0.4*1000*5, total, 1e-9)
	assert.InDelta(t, total, g.TransferSpending, 1e-9)
}

func TestCalculateSpending(t *testing.T) {
	g := testGovernment()
	g.GDPEstimate = 10_000

	assert.InDelta(t, 4000, g.CalculateSpending(), 1e-9)
	assert.InDelta(t, 4000, g.Expenditure, 1e-9)

	// No spending against a negative GDP estimate.
	g.GDPEstimate = -10
	assert.Zero(t, g.CalculateSpending())
}

func TestBeginPeriodResetsFlows(t *testing.T) {
	g := testGovernment()
	g.CollectCorporateTax(100)
	g.PayUnemploymentBenefit(100, 1)
	g.CalculateSpending()

	g.BeginPeriod()
	assert.Zero(t, g.TaxRevenue)
	assert.Zero(t, g.Expenditure)
	assert.Zero(t, g.TransferSpending)
}

func TestEndPeriodDebtAccounting(t *testing.T) {
	g := testGovernment()

	// Deficit: revenue 100 against 150 of outlays.
	g.TaxRevenue = 100
	g.Expenditure = 120
	g.TransferSpending = 30
	g.EndPeriod()
	assert.InDelta(t, -50, g.Deficit, 1e-9)
	assert.InDelta(t, 50, g.Debt, 1e-9, "deficit increases debt")

	// Surplus pays debt down.
	g.TaxRevenue = 200
	g.Expenditure = 150
	g.TransferSpending = 0
	g.EndPeriod()
	assert.InDelta(t, 50, g.Deficit, 1e-9)
	assert.InDelta(t, 0, g.Debt, 1e-9)
}

func TestFiscalRuleCutsOverspending(t *testing.T) {
	g := testGovernment()
	g.GDPEstimate = 1000
	g.Expenditure = 400
	g.Deficit = -100 // 10% of GDP, target 3%

	g.Step()

	// adjustment = 0.1 * (0.10 - 0.03) * 1000 = 7.
	assert.InDelta(t, 393, g.Expenditure, 1e-9)
}

func TestFiscalRuleLeavesSpendingWithinTarget(t *testing.T) {
	g := testGovernment()
	g.GDPEstimate = 1000
	g.Expenditure = 400
	g.Deficit = -20 // 2% of GDP, under the 3% target

	g.Step()
	assert.InDelta(t, 400, g.Expenditure, 1e-9, "no cut while the deficit is on target")
}

func TestFiscalRuleFloorsAtZero(t *testing.T) {
	g := testGovernment()
	g.GDPEstimate = 1000
	g.Expenditure = 1
	g.Deficit = -1000

	g.Step()
	assert.Zero(t, g.Expenditure)
}

func TestFiscalRuleInactive(t *testing.T) {
	cfg := config.Default()
	cfg.FiscalRule.Active = false
	g := NewGovernment(cfg.FiscalRule, cfg.Transfers)
	g.GDPEstimate = 1000
	g.Expenditure = 400
	g.Deficit = -100

	g.Step()
	assert.InDelta(t, 400, g.Expenditure, 1e-9)
}

func TestFiscalRuleSkipsWithoutGDP(t *testing.T) {
	g := testGovernment()
	g.Expenditure = 400
	g.Deficit = -100

	g.Step()
	assert.InDelta(t, 400, g.Expenditure, 1e-9)
}
