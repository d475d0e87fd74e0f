package eval

// Statistic names computed by ComputeStats and referenced by calibration
// targets.
const (
	StatGDPGrowthMean     = "gdp_growth_mean"
	StatGDPGrowthStd      = "gdp_growth_std"
	StatUnemploymentMean  = "unemployment_mean"
	StatInflationMean     = "inflation_mean"
	StatInflationStd      = "inflation_std"
	StatGovernmentDebtGDP = "government_debt_gdp"
	StatWageShare         = "wage_share"
)

// Target is a single calibration target: a statistic name, its empirical
// value, the absolute tolerance for a pass, and its weight in the overall
// score.
type Target struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"target_value"`
	Tolerance   float64 `json:"tolerance"`
	Weight      float64 `json:"weight"`
}

// DefaultTargets are the UK calibration targets (OBR/ONS statistical
// releases, 2015-2024).
func DefaultTargets() []Target {
	return []Target{
		{
			Name:        StatGDPGrowthMean,
			Description: "Mean quarterly GDP growth rate (~2% p.a.)",
			Value:       0.005,
			Tolerance:   0.003,
			Weight:      2.0,
		},
		{
			Name:        StatGDPGrowthStd,
			Description: "Std dev of quarterly GDP growth (volatility)",
			Value:       0.010,
			Tolerance:   0.005,
			Weight:      1.0,
		},
		{
			Name:        StatUnemploymentMean,
			Description: "Mean unemployment rate (~4.5%)",
			Value:       0.045,
			Tolerance:   0.010,
			Weight:      2.0,
		},
		{
			Name:        StatInflationMean,
			Description: "Mean quarterly inflation rate (2% p.a. target)",
			Value:       0.005,
			Tolerance:   0.003,
			Weight:      2.0,
		},
		{
			Name:        StatInflationStd,
			Description: "Std dev of quarterly inflation",
			Value:       0.003,
			Tolerance:   0.002,
			Weight:      1.0,
		},
		{
			Name:        StatGovernmentDebtGDP,
			Description: "Government debt as fraction of annual GDP (~85%)",
			Value:       0.85,
			Tolerance:   0.20,
			Weight:      1.0,
		},
		{
			Name:        StatWageShare,
			Description: "Labour income share of GDP (~55%)",
			Value:       0.55,
			Tolerance:   0.10,
			Weight:      1.0,
		},
	}
}
