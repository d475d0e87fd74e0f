package agents

import (
	"math"

	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/rng"
)

// HouseholdSeed is the sampled initial state a household starts from.
type HouseholdSeed struct {
	Income float64
	Wealth float64
	MPC    float64
}

// Household supplies labour, consumes goods and accumulates savings.
//
// Consumption is planned against adaptively expected income rather than
// realised income (Dosi et al. 2010): a household that loses its job keeps
// consuming out of expectations and wealth, then adapts. With adaptation
// speed 1 this degenerates to current-income consumption; with 0 the
// expectation is frozen.
type Household struct {
	ID string

	Income         float64
	ExpectedIncome float64
	Wealth         float64
	MPC            float64
	Employed       bool
	EmployerID     string // empty iff unemployed
	Wage           float64
	Consumption    float64
	Savings        float64
	TransferIncome float64 // set by the scheduler once per period, then scrubbed

	beh config.HouseholdBehaviorConfig
}

// NewHousehold creates a household from a sampled seed. The initial income
// expectation equals the initial income.
func NewHousehold(id string, seed HouseholdSeed, beh config.HouseholdBehaviorConfig) *Household {
	return &Household{
		ID:             orID(id),
		Income:         seed.Income,
		ExpectedIncome: seed.Income,
		Wealth:         seed.Wealth,
		MPC:            seed.MPC,
		beh:            beh,
	}
}

// Step advances the household one period: receive income, update the income
// expectation, consume, save.
func (h *Household) Step() {
	h.receiveIncome()
	h.consume()
	h.save()
}

func (h *Household) receiveIncome() {
	wageIncome := 0.0
	if h.Employed {
		wageIncome = h.Wage
	}
	h.Income = wageIncome + h.TransferIncome

	alpha := h.beh.ExpectationAdaptationSpeed
	h.ExpectedIncome = alpha*h.Income + (1-alpha)*h.ExpectedIncome
}

// consume spends out of expected income plus a fraction of wealth, clipped
// so the household can never spend more than income plus wealth.
func (h *Household) consume() {
	cIncome := h.MPC * h.ExpectedIncome
	cWealth := (1 - h.beh.ConsumptionSmoothing) * 0.04 * h.Wealth
	desired := cIncome + cWealth
	h.Consumption = math.Max(0, math.Min(desired, h.Income+h.Wealth))
}

func (h *Household) save() {
	h.Savings = h.Income - h.Consumption
	h.Wealth += h.Savings
}

// BecomeEmployed transitions the household into a job at the given firm.
func (h *Household) BecomeEmployed(employerID string, wage float64) {
	h.Employed = true
	h.EmployerID = employerID
	h.Wage = wage
}

// BecomeUnemployed transitions the household out of employment.
func (h *Household) BecomeUnemployed() {
	h.Employed = false
	h.EmployerID = ""
	h.Wage = 0
}

// IsSearching reports whether the household searches for a job this period.
// Employed households never search. With an RNG the unemployed search with
// probability job_search_intensity; without one the decision is
// deterministic (always search).
func (h *Household) IsSearching(r *rng.Rand) bool {
	if h.Employed {
		return false
	}
	if r != nil {
		return r.Float64() < h.beh.JobSearchIntensity
	}
	return true
}

// HouseholdState is a flat snapshot of the household for inspection.
type HouseholdState struct {
	ID             string  `json:"id"`
	Income         float64 `json:"income"`
	ExpectedIncome float64 `json:"expected_income"`
	Wealth         float64 `json:"wealth"`
	Consumption    float64 `json:"consumption"`
	Savings        float64 `json:"savings"`
	Employed       bool    `json:"employed"`
	EmployerID     string  `json:"employer_id,omitempty"`
	Wage           float64 `json:"wage"`
	MPC            float64 `json:"mpc"`
}

// State returns a snapshot of the household's state.
func (h *Household) State() HouseholdState {
	return HouseholdState{
		ID:             h.ID,
		Income:         h.Income,
		ExpectedIncome: h.ExpectedIncome,
		Wealth:         h.Wealth,
		Consumption:    h.Consumption,
		Savings:        h.Savings,
		Employed:       h.Employed,
		EmployerID:     h.EmployerID,
		Wage:           h.Wage,
		MPC:            h.MPC,
	}
}
