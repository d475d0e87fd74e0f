package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areumfire/macrosim-go/internal/agents"
	"github.com/areumfire/macrosim-go/internal/config"
)

func marketFirm(price, inventory float64) *agents.Firm {
	cfg := config.Default()
	f := agents.NewFirm("", agents.FirmSeed{Turnover: 0, Capital: 1000, Equity: 1000}, cfg.FirmBehavior, cfg.Firms.ExitThreshold)
	f.Price = price
	f.Inventory = inventory
	return f
}

func marketGovernment(expenditure float64) *agents.Government {
	cfg := config.Default()
	g := agents.NewGovernment(cfg.FiscalRule, cfg.Transfers)
	g.Expenditure = expenditure
	return g
}

// TestAllocationFavoursCheapFirms covers scenario S6: with equal supply
// value, the cheapest firm takes a dominant share of demand and the dearest
// takes essentially none.
func TestAllocationFavoursCheapFirms(t *testing.T) {
	cheap := marketFirm(5, 200)  // inventory x price = 1000
	middle := marketFirm(10, 100)
	dear := marketFirm(20, 50)

	m := NewGoodsMarket(config.Default().GoodsMarket)
	m.SetAgents([]*agents.Firm{cheap, middle, dear}, nil, marketGovernment(900))

	m.Clear(nil)

	// Weights are (p_max - p): 15, 10, ~0 → shares 0.6, 0.4, ~0.
	assert.InDelta(t, 540, cheap.Turnover, 1e-6)
	assert.InDelta(t, 360, middle.Turnover, 1e-6)
	assert.Less(t, dear.Turnover, 1e-6, "dearest firm receives epsilon-share only")
	assert.InDelta(t, 900, m.TotalSales, 1e-6)
}

// TestInventoryNonNegative covers property 5.
func TestInventoryNonNegative(t *testing.T) {
	firms := []*agents.Firm{
		marketFirm(1, 10),   // supply value 10, will sell out
		marketFirm(2, 5),    // supply value 10
		marketFirm(100, 50), // expensive, barely sells
	}
	m := NewGoodsMarket(config.Default().GoodsMarket)
	m.SetAgents(firms, nil, marketGovernment(100_000))

	m.Clear(nil)
	for i, f := range firms {
		require.GreaterOrEqual(t, f.Inventory, 0.0, "firm %d", i)
	}
}

func TestSalesCappedBySupply(t *testing.T) {
	f := marketFirm(2, 10) // supply value 20
	m := NewGoodsMarket(config.Default().GoodsMarket)
	m.SetAgents([]*agents.Firm{f}, nil, marketGovernment(500))

	m.Clear(nil)

	assert.InDelta(t, 20, f.Turnover, 1e-9)
	assert.InDelta(t, 0, f.Inventory, 1e-9)
	assert.InDelta(t, 20, m.TotalSales, 1e-9)
	assert.InDelta(t, 480, m.ExcessDemand, 1e-9)
}

func TestHouseholdDemandCounts(t *testing.T) {
	cfg := config.Default()
	h := agents.NewHousehold("", agents.HouseholdSeed{}, cfg.HouseholdBehavior)
	h.Consumption = 30

	f := marketFirm(1, 100)
	m := NewGoodsMarket(cfg.GoodsMarket)
	m.SetAgents([]*agents.Firm{f}, []*agents.Household{h}, nil)

	m.Clear(nil)
	assert.InDelta(t, 30, f.Turnover, 1e-9)
}

func TestBankruptFirmsExcluded(t *testing.T) {
	alive := marketFirm(1, 100)
	dead := marketFirm(1, 100)
	dead.Bankrupt = true

	m := NewGoodsMarket(config.Default().GoodsMarket)
	m.SetAgents([]*agents.Firm{alive, dead}, nil, marketGovernment(50))

	m.Clear(nil)
	assert.InDelta(t, 50, alive.Turnover, 1e-9)
	assert.Zero(t, dead.Turnover)
	assert.InDelta(t, 100, dead.Inventory, 1e-9)
}

func TestNoActiveFirms(t *testing.T) {
	dead := marketFirm(1, 100)
	dead.Bankrupt = true

	m := NewGoodsMarket(config.Default().GoodsMarket)
	m.SetAgents([]*agents.Firm{dead}, nil, marketGovernment(50))

	m.Clear(nil)
	assert.Zero(t, m.TotalSales)
}

func TestInflationFromAveragePrice(t *testing.T) {
	f := marketFirm(1.1, 100)
	m := NewGoodsMarket(config.Default().GoodsMarket)
	m.SetAgents([]*agents.Firm{f}, nil, marketGovernment(10))

	// Average price starts at 1.0; one firm at 1.1 moves it 10%.
	m.Clear(nil)
	assert.InDelta(t, 1.1, m.AveragePrice, 1e-9)
	assert.InDelta(t, 0.1, m.Inflation, 1e-9)

	// A second clearing at the same price is zero inflation.
	m.Clear(nil)
	assert.InDelta(t, 0.0, m.Inflation, 1e-6)
}

func TestExcessDemandFeedsMarkup(t *testing.T) {
	f := marketFirm(1, 10) // supply value 10 against demand 100
	before := f.Markup

	m := NewGoodsMarket(config.Default().GoodsMarket)
	m.SetAgents([]*agents.Firm{f}, nil, marketGovernment(100))

	m.Clear(nil)
	assert.Greater(t, f.Markup, before, "excess demand raises the markup")
}
