package agents

import (
	"math"

	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/rng"
)

const epsilon = 1e-9

// profitRateRing is a bounded ring buffer of recent profit rates. The window
// is fixed at construction; pushes past the window overwrite the oldest
// entry.
type profitRateRing struct {
	buf  []float64
	head int
	n    int
}

func newProfitRateRing(window int) profitRateRing {
	if window < 1 {
		window = 1
	}
	return profitRateRing{buf: make([]float64, window)}
}

func (r *profitRateRing) push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

func (r *profitRateRing) full() bool { return r.n == len(r.buf) }

func (r *profitRateRing) mean() float64 {
	if r.n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < r.n; i++ {
		sum += r.buf[i]
	}
	return sum / float64(r.n)
}

// FirmSeed is the calibrated balance sheet a firm starts from.
type FirmSeed struct {
	Sector    string
	Employees int
	WageBill  float64
	Turnover  float64
	Capital   float64
	Cash      float64
	Debt      float64
	Equity    float64
}

// Firm is a productive enterprise. It holds a balance sheet and makes
// pricing, production and employment decisions each period.
type Firm struct {
	ID     string
	Sector string

	// Balance sheet and flows
	Employees int
	WageBill  float64
	Turnover  float64
	Capital   float64
	Cash      float64 // negative cash is a credit need
	Debt      float64
	Equity    float64

	// Derived / mutable state
	Price             float64
	Output            float64
	Inventory         float64
	Profit            float64
	Markup            float64
	Vacancies         int
	WageRate          float64
	DesiredProduction float64
	Bankrupt          bool

	history       profitRateRing
	beh           config.FirmBehaviorConfig
	exitThreshold float64
}

// NewFirm creates a firm from a calibrated balance sheet. exitThreshold is
// the (negative) equity/capital ratio below which the firm exits.
func NewFirm(id string, seed FirmSeed, beh config.FirmBehaviorConfig, exitThreshold float64) *Firm {
	wageRate := 0.0
	if seed.Employees > 0 {
		wageRate = seed.WageBill / float64(seed.Employees)
	}
	sector := seed.Sector
	if sector == "" {
		sector = "other_services"
	}
	return &Firm{
		ID:                orID(id),
		Sector:            sector,
		Employees:         seed.Employees,
		WageBill:          seed.WageBill,
		Turnover:          seed.Turnover,
		Capital:           seed.Capital,
		Cash:              seed.Cash,
		Debt:              seed.Debt,
		Equity:            seed.Equity,
		Price:             1.0,
		Output:            seed.Turnover, // initial output = revenue at p=1
		Markup:            beh.PriceMarkup,
		WageRate:          wageRate,
		DesiredProduction: seed.Turnover,
		history:           newProfitRateRing(beh.SatisficingWindow),
		beh:               beh,
		exitThreshold:     exitThreshold,
	}
}

// Step advances the firm one period: plan production, set price, determine
// labour demand, produce, update financials, check for exit. No-op once
// bankrupt.
func (f *Firm) Step() {
	if f.Bankrupt {
		return
	}
	f.planProduction()
	f.setPrice()
	f.determineLabourDemand()
	f.produce()
	f.updateFinancials()
}

// planProduction targets expected sales plus inventory replenishment.
func (f *Firm) planProduction() {
	expectedSales := f.Turnover / math.Max(f.Price, epsilon)
	desired := expectedSales*(1+f.beh.InventoryTargetRatio) - f.Inventory
	f.DesiredProduction = math.Max(desired, 0)
}

// setPrice marks up unit cost. Price carries over unchanged when there was
// no output to cost.
func (f *Firm) setPrice() {
	if f.Output > 0 {
		unitCost := f.WageBill / math.Max(f.Output, epsilon)
		f.Price = unitCost * (1 + f.Markup)
	}
}

func (f *Firm) labourProductivity() float64 {
	if f.Employees > 0 {
		return f.Output / float64(f.Employees)
	}
	return 1.0
}

func (f *Firm) determineLabourDemand() {
	desired := int(f.DesiredProduction / math.Max(f.labourProductivity(), epsilon))
	f.Vacancies = max(desired-f.Employees, 0)
}

// produce is constrained by labour and by capital capacity.
func (f *Firm) produce() {
	capacity := f.Capital * f.beh.CapacityUtilizationTarget
	labourOutput := float64(f.Employees) * f.labourProductivity()
	f.Output = math.Min(f.DesiredProduction, math.Min(labourOutput, capacity))
	f.Inventory += f.Output
}

func (f *Firm) updateFinancials() {
	soldQuantity := math.Min(f.Inventory, f.Turnover/math.Max(f.Price, epsilon))
	revenue := soldQuantity * f.Price
	f.Inventory -= soldQuantity
	f.Turnover = revenue
	f.WageBill = float64(f.Employees) * f.WageRate
	f.Profit = revenue - f.WageBill
	f.Cash += f.Profit
	f.Equity += f.Profit

	// Exit check: deep negative equity relative to capital is absorbing.
	if f.Equity < 0 && f.Capital > 0 && f.Equity/f.Capital < f.exitThreshold {
		f.Bankrupt = true
	}
}

// AdaptMarkup adjusts the markup in response to this firm's excess-demand
// signal from the goods market.
//
// Satisficing heuristic (Simon 1955): when the rolling profit rate over the
// full window is at or above the aspiration level the firm reacts at one
// tenth of the usual speed. When r is non-nil and markup noise is
// configured, one Gaussian draw perturbs the adjustment. The markup never
// falls below 0.01.
func (f *Firm) AdaptMarkup(excessDemand float64, r *rng.Rand) {
	profitRate := f.Profit / math.Max(math.Abs(f.Turnover), epsilon)
	f.history.push(profitRate)

	adjustment := f.beh.MarkupAdjustmentSpeed * excessDemand
	if f.history.full() && f.history.mean() >= f.beh.SatisficingAspirationRate {
		adjustment *= 0.1
	}
	if r != nil && f.beh.MarkupNoiseStd > 0 {
		adjustment += r.Gaussian(0, f.beh.MarkupNoiseStd)
	}
	f.Markup = math.Max(0.01, f.Markup+adjustment)
}

// AspirationRate is the rolling average profit rate; before any history it
// reports the configured aspiration level.
func (f *Firm) AspirationRate() float64 {
	if f.history.n == 0 {
		return f.beh.SatisficingAspirationRate
	}
	return f.history.mean()
}

// Hire adds count workers at the given wage rate. The wage applies to the
// whole workforce (single posted wage per firm).
func (f *Firm) Hire(count int, wage float64) {
	f.Employees += count
	f.WageRate = wage
	f.WageBill = float64(f.Employees) * f.WageRate
	f.Vacancies = max(f.Vacancies-count, 0)
}

// Fire lays off count workers.
func (f *Firm) Fire(count int) {
	f.Employees = max(f.Employees-count, 0)
	f.WageBill = float64(f.Employees) * f.WageRate
}

// FirmState is a flat snapshot of the firm for inspection.
type FirmState struct {
	ID             string  `json:"id"`
	Sector         string  `json:"sector"`
	Employees      int     `json:"employees"`
	WageBill       float64 `json:"wage_bill"`
	Turnover       float64 `json:"turnover"`
	Price          float64 `json:"price"`
	Output         float64 `json:"output"`
	Inventory      float64 `json:"inventory"`
	Cash           float64 `json:"cash"`
	Debt           float64 `json:"debt"`
	Capital        float64 `json:"capital"`
	Equity         float64 `json:"equity"`
	Profit         float64 `json:"profit"`
	Markup         float64 `json:"markup"`
	AspirationRate float64 `json:"aspiration_rate"`
	Bankrupt       bool    `json:"bankrupt"`
}

// State returns a snapshot of the firm's state.
func (f *Firm) State() FirmState {
	return FirmState{
		ID:             f.ID,
		Sector:         f.Sector,
		Employees:      f.Employees,
		WageBill:       f.WageBill,
		Turnover:       f.Turnover,
		Price:          f.Price,
		Output:         f.Output,
		Inventory:      f.Inventory,
		Cash:           f.Cash,
		Debt:           f.Debt,
		Capital:        f.Capital,
		Equity:         f.Equity,
		Profit:         f.Profit,
		Markup:         f.Markup,
		AspirationRate: f.AspirationRate(),
		Bankrupt:       f.Bankrupt,
	}
}
