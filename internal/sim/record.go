package sim

import "github.com/areumfire/macrosim-go/internal/agents"

// PeriodRecord is the flat aggregate emitted once per period. Period indices
// are 1-based and strictly increasing.
type PeriodRecord struct {
	Period            int     `json:"period"`
	GDP               float64 `json:"gdp"`
	Inflation         float64 `json:"inflation"`
	UnemploymentRate  float64 `json:"unemployment_rate"`
	AverageWage       float64 `json:"average_wage"`
	PolicyRate        float64 `json:"policy_rate"`
	GovernmentDeficit float64 `json:"government_deficit"`
	GovernmentDebt    float64 `json:"government_debt"`
	TotalLending      float64 `json:"total_lending"`
	FirmBankruptcies  int     `json:"firm_bankruptcies"` // stock of ever-bankrupt firms
	TotalEmployment   int     `json:"total_employment"`
}

// Result is the full simulation output: one record per period, plus
// optional per-period agent-level snapshots when micro collection is on.
type Result struct {
	Records         []PeriodRecord            `json:"records"`
	FirmStates      [][]agents.FirmState      `json:"firm_states,omitempty"`
	HouseholdStates [][]agents.HouseholdState `json:"household_states,omitempty"`
}

// GDPSeries returns GDP across all recorded periods.
func (r *Result) GDPSeries() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.GDP
	}
	return out
}

// InflationSeries returns inflation across all recorded periods.
func (r *Result) InflationSeries() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Inflation
	}
	return out
}

// UnemploymentSeries returns the unemployment rate across all recorded
// periods.
func (r *Result) UnemploymentSeries() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.UnemploymentRate
	}
	return out
}
