// Package market implements the three clearing protocols: goods, labour and
// credit. Markets hold borrowed references to the scheduler-owned
// populations and mutate agent state only through the agents' own methods.
// Iteration is always in population order; all randomness comes through the
// scheduler's RNG passed into Clear.
package market

import (
	"math"

	"github.com/areumfire/macrosim-go/internal/agents"
	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/rng"
)

const epsilon = 1e-9

// GoodsMarket matches firm supply against household and government demand.
// Demand is allocated across firms in proportion to price competitiveness:
// the cheaper the firm, the larger its share.
type GoodsMarket struct {
	TotalSales   float64
	AveragePrice float64
	ExcessDemand float64
	Inflation    float64

	previousPrice float64

	cfg        config.GoodsMarketConfig
	firms      []*agents.Firm
	households []*agents.Household
	government *agents.Government

	active  []*agents.Firm // reused each period
	weights []float64      // reused each period
}

// NewGoodsMarket creates the goods market.
func NewGoodsMarket(cfg config.GoodsMarketConfig) *GoodsMarket {
	return &GoodsMarket{
		AveragePrice:  1.0,
		previousPrice: 1.0,
		cfg:           cfg,
	}
}

// SetAgents registers the participating populations.
func (m *GoodsMarket) SetAgents(firms []*agents.Firm, households []*agents.Household, government *agents.Government) {
	m.firms = firms
	m.households = households
	m.government = government
}

// Clear runs one round of goods-market clearing:
//
//  1. Sum demand (household consumption + government expenditure) and
//     supply (firm inventory at posted prices).
//  2. Allocate demand across active firms by price-gap weights
//     w = max(p_max − p, ε) + ε.
//  3. Settle each firm's sales, drain inventory, set turnover, and feed the
//     firm its excess-demand signal for markup adaptation.
//  4. Update the average price and period inflation.
//
// r feeds the firms' markup-noise draws; pass nil for the deterministic
// path.
func (m *GoodsMarket) Clear(r *rng.Rand) {
	m.active = m.active[:0]
	for _, f := range m.firms {
		if !f.Bankrupt {
			m.active = append(m.active, f)
		}
	}

	totalDemand := 0.0
	for _, h := range m.households {
		totalDemand += h.Consumption
	}
	if m.government != nil {
		totalDemand += m.government.Expenditure
	}

	totalSupply := 0.0
	for _, f := range m.active {
		totalSupply += f.Inventory * f.Price
	}
	m.ExcessDemand = totalDemand - totalSupply

	if len(m.active) == 0 {
		m.TotalSales = 0
		return
	}

	maxPrice := m.active[0].Price
	for _, f := range m.active[1:] {
		if f.Price > maxPrice {
			maxPrice = f.Price
		}
	}

	if cap(m.weights) < len(m.active) {
		m.weights = make([]float64, len(m.active))
	}
	m.weights = m.weights[:len(m.active)]
	weightSum := 0.0
	for i, f := range m.active {
		w := math.Max(maxPrice-f.Price, epsilon) + epsilon
		m.weights[i] = w
		weightSum += w
	}

	m.TotalSales = 0
	for i, f := range m.active {
		share := m.weights[i] / weightSum
		demandForFirm := totalDemand * share
		available := f.Inventory * f.Price
		actualSales := math.Min(demandForFirm, available)

		quantitySold := actualSales / math.Max(f.Price, epsilon)
		f.Inventory = math.Max(f.Inventory-quantitySold, 0)
		f.Turnover = actualSales
		m.TotalSales += actualSales

		firmExcess := (demandForFirm - available) / math.Max(available, epsilon)
		f.AdaptMarkup(firmExcess, r)
	}

	priceSum := 0.0
	for _, f := range m.active {
		priceSum += f.Price
	}
	m.previousPrice = m.AveragePrice
	m.AveragePrice = priceSum / float64(len(m.active))
	if m.previousPrice > 0 {
		m.Inflation = (m.AveragePrice - m.previousPrice) / m.previousPrice
	}
}
