// Package config holds the immutable parameter record consumed by every
// other component. The record is built once at load time; components take
// only the sub-record they need.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SimulationConfig holds top-level simulation settings.
type SimulationConfig struct {
	Periods       int    `yaml:"periods"`
	TimeStep      string `yaml:"time_step"`
	Seed          int64  `yaml:"seed"`
	WarmUpPeriods int    `yaml:"warm_up_periods"`
}

// FirmConfig holds population settings for firm agents.
type FirmConfig struct {
	SampleSize    int      `yaml:"sample_size"`
	Sectors       []string `yaml:"sectors"`
	EntryRate     float64  `yaml:"entry_rate"`
	ExitThreshold float64  `yaml:"exit_threshold"` // negative equity/capital ratio triggering exit
}

// FirmBehaviorConfig holds behavioral parameters for firms.
type FirmBehaviorConfig struct {
	PriceMarkup               float64 `yaml:"price_markup"`
	MarkupAdjustmentSpeed     float64 `yaml:"markup_adjustment_speed"`
	InventoryTargetRatio      float64 `yaml:"inventory_target_ratio"`
	CapacityUtilizationTarget float64 `yaml:"capacity_utilization_target"`
	InvestmentSensitivity     float64 `yaml:"investment_sensitivity"`
	WageAdjustmentSpeed       float64 `yaml:"wage_adjustment_speed"`
	// Satisficing markup heuristic (Simon 1955)
	SatisficingAspirationRate float64 `yaml:"satisficing_aspiration_rate"`
	SatisficingWindow         int     `yaml:"satisficing_window"`
	MarkupNoiseStd            float64 `yaml:"markup_noise_std"`
}

// HouseholdConfig holds population settings for household agents.
type HouseholdConfig struct {
	Count       int     `yaml:"count"`
	IncomeMean  float64 `yaml:"income_mean"`
	IncomeStd   float64 `yaml:"income_std"`
	WealthShape float64 `yaml:"wealth_shape"`
	MPCMean     float64 `yaml:"mpc_mean"`
	MPCStd      float64 `yaml:"mpc_std"`
}

// HouseholdBehaviorConfig holds behavioral parameters for households.
type HouseholdBehaviorConfig struct {
	JobSearchIntensity   float64 `yaml:"job_search_intensity"`
	ReservationWageRatio float64 `yaml:"reservation_wage_ratio"`
	ConsumptionSmoothing float64 `yaml:"consumption_smoothing"`
	// Adaptive income expectations (Dosi et al. 2010)
	ExpectationAdaptationSpeed float64 `yaml:"expectation_adaptation_speed"`
}

// BankConfig holds population and regulatory settings for bank agents.
type BankConfig struct {
	Count              int     `yaml:"count"`
	CapitalRequirement float64 `yaml:"capital_requirement"`
	ReserveRequirement float64 `yaml:"reserve_requirement"`
	RiskWeight         float64 `yaml:"risk_weight"`
}

// BankBehaviorConfig holds behavioral parameters for banks.
type BankBehaviorConfig struct {
	BaseInterestMarkup     float64 `yaml:"base_interest_markup"`
	RiskPremiumSensitivity float64 `yaml:"risk_premium_sensitivity"`
	LendingThreshold       float64 `yaml:"lending_threshold"`
	CapitalBuffer          float64 `yaml:"capital_buffer"`
	// Noisy composite credit scoring (Gabaix 2014)
	CreditScoreNoiseStd float64 `yaml:"credit_score_noise_std"`
}

// TaylorRuleConfig holds the central bank's monetary policy rule.
type TaylorRuleConfig struct {
	Active                bool    `yaml:"active"`
	InflationTarget       float64 `yaml:"inflation_target"`
	InflationCoefficient  float64 `yaml:"inflation_coefficient"`
	OutputGapCoefficient  float64 `yaml:"output_gap_coefficient"`
	InterestRateSmoothing float64 `yaml:"interest_rate_smoothing"`
	LowerBound            float64 `yaml:"lower_bound"`
}

// FiscalRuleConfig holds the government's fiscal rule.
type FiscalRuleConfig struct {
	Active                bool    `yaml:"active"`
	SpendingGDPRatio      float64 `yaml:"spending_gdp_ratio"`
	TaxRateCorporate      float64 `yaml:"tax_rate_corporate"`
	TaxRateIncomeBase     float64 `yaml:"tax_rate_income_base"`
	TaxProgressivity      float64 `yaml:"tax_progressivity"`
	DeficitTarget         float64 `yaml:"deficit_target"`
	DeficitAdjustmentSpeed float64 `yaml:"deficit_adjustment_speed"`
}

// TransfersConfig holds transfer payment settings.
type TransfersConfig struct {
	UnemploymentBenefitRatio float64 `yaml:"unemployment_benefit_ratio"`
	PensionRatio             float64 `yaml:"pension_ratio"`
}

// GoodsMarketConfig holds goods market settings.
type GoodsMarketConfig struct {
	PriceAdjustmentSpeed    float64 `yaml:"price_adjustment_speed"`
	QuantityAdjustmentSpeed float64 `yaml:"quantity_adjustment_speed"`
	SearchIntensity         float64 `yaml:"search_intensity"`
}

// LaborMarketConfig holds labor market settings.
type LaborMarketConfig struct {
	WageStickiness     float64 `yaml:"wage_stickiness"`
	MatchingEfficiency float64 `yaml:"matching_efficiency"`
	SeparationRate     float64 `yaml:"separation_rate"`
	PhillipsCurveSlope float64 `yaml:"phillips_curve_slope"`
}

// CreditMarketConfig holds credit market settings.
type CreditMarketConfig struct {
	Rationing             bool    `yaml:"rationing"`
	CollateralRequirement float64 `yaml:"collateral_requirement"`
	DefaultRateBase       float64 `yaml:"default_rate_base"`
}

// Config is the complete model configuration.
type Config struct {
	Simulation        SimulationConfig        `yaml:"simulation"`
	Firms             FirmConfig              `yaml:"firms"`
	FirmBehavior      FirmBehaviorConfig      `yaml:"firm_behavior"`
	Households        HouseholdConfig         `yaml:"households"`
	HouseholdBehavior HouseholdBehaviorConfig `yaml:"household_behavior"`
	Banks             BankConfig              `yaml:"banks"`
	BankBehavior      BankBehaviorConfig      `yaml:"bank_behavior"`
	TaylorRule        TaylorRuleConfig        `yaml:"taylor_rule"`
	FiscalRule        FiscalRuleConfig        `yaml:"fiscal_rule"`
	Transfers         TransfersConfig         `yaml:"transfers"`
	GoodsMarket       GoodsMarketConfig       `yaml:"goods_market"`
	LaborMarket       LaborMarketConfig       `yaml:"labor_market"`
	CreditMarket      CreditMarketConfig      `yaml:"credit_market"`
}

// DefaultSectors are the thirteen UK industry sectors used when no sector
// list is configured.
var DefaultSectors = []string{
	"agriculture",
	"manufacturing",
	"construction",
	"wholesale_retail",
	"transport",
	"hospitality",
	"information_communication",
	"financial",
	"professional_services",
	"public_admin",
	"education",
	"health",
	"other_services",
}

// Default returns the fully-populated default configuration (UK quarterly
// calibration).
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			Periods:       400,
			TimeStep:      "quarter",
			Seed:          42,
			WarmUpPeriods: 40,
		},
		Firms: FirmConfig{
			SampleSize:    50_000,
			Sectors:       append([]string(nil), DefaultSectors...),
			EntryRate:     0.02,
			ExitThreshold: -0.5,
		},
		FirmBehavior: FirmBehaviorConfig{
			PriceMarkup:               0.15, // markup over unit cost
			MarkupAdjustmentSpeed:     0.1,
			InventoryTargetRatio:      0.2,  // desired inventory as share of expected sales
			CapacityUtilizationTarget: 0.85,
			InvestmentSensitivity:     2.0,
			WageAdjustmentSpeed:       0.05,
			SatisficingAspirationRate: 0.5, // profit rate at or above which firms react at one tenth speed
			SatisficingWindow:         4,   // quarters of profit-rate history
			MarkupNoiseStd:            0.0, // 0 disables markup noise
		},
		Households: HouseholdConfig{
			Count:       10_000,
			IncomeMean:  35_000.0, // annual, sampled lognormal
			IncomeStd:   15_000.0,
			WealthShape: 1.5, // pareto tail
			MPCMean:     0.8,
			MPCStd:      0.1,
		},
		HouseholdBehavior: HouseholdBehaviorConfig{
			JobSearchIntensity:         0.3,
			ReservationWageRatio:       0.9,
			ConsumptionSmoothing:       0.7,
			ExpectationAdaptationSpeed: 0.3, // alpha in adaptive expectations
		},
		Banks: BankConfig{
			Count:              10,
			CapitalRequirement: 0.10,
			ReserveRequirement: 0.01,
			RiskWeight:         1.0,
		},
		BankBehavior: BankBehaviorConfig{
			BaseInterestMarkup:     0.02,
			RiskPremiumSensitivity: 0.05,
			LendingThreshold:       0.3,
			CapitalBuffer:          0.02,
			CreditScoreNoiseStd:    0.0, // 0 disables noisy credit scoring
		},
		TaylorRule: TaylorRuleConfig{
			Active:                true,
			InflationTarget:       0.02,
			InflationCoefficient:  1.5,
			OutputGapCoefficient:  0.5,
			InterestRateSmoothing: 0.8,
			LowerBound:            0.001,
		},
		FiscalRule: FiscalRuleConfig{
			Active:                 true,
			SpendingGDPRatio:       0.40,
			TaxRateCorporate:       0.19,
			TaxRateIncomeBase:      0.20,
			TaxProgressivity:       0.1,
			DeficitTarget:          0.03,
			DeficitAdjustmentSpeed: 0.1,
		},
		Transfers: TransfersConfig{
			UnemploymentBenefitRatio: 0.4, // replacement rate vs average wage
			PensionRatio:             0.3,
		},
		GoodsMarket: GoodsMarketConfig{
			PriceAdjustmentSpeed:    0.1,
			QuantityAdjustmentSpeed: 0.3,
			SearchIntensity:         0.5,
		},
		LaborMarket: LaborMarketConfig{
			WageStickiness:     0.8,
			MatchingEfficiency: 0.3,
			SeparationRate:     0.05,
			PhillipsCurveSlope: -0.5,
		},
		CreditMarket: CreditMarketConfig{
			Rationing:             true,
			CollateralRequirement: 0.5,
			DefaultRateBase:       0.01,
		},
	}
}

// Load reads a YAML file and overlays it on the defaults. A missing or empty
// path returns the defaults unchanged. The result is validated before being
// returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks parameter ranges. Out-of-range values abort the run at the
// boundary; the core never re-checks them.
func (c Config) Validate() error {
	if c.Simulation.Periods < 1 {
		return fmt.Errorf("simulation.periods must be >= 1, got %d", c.Simulation.Periods)
	}
	if c.Simulation.Seed < 0 {
		return fmt.Errorf("simulation.seed must be non-negative, got %d", c.Simulation.Seed)
	}
	if c.Simulation.WarmUpPeriods < 0 {
		return fmt.Errorf("simulation.warm_up_periods must be >= 0, got %d", c.Simulation.WarmUpPeriods)
	}
	if len(c.Firms.Sectors) == 0 {
		return fmt.Errorf("firms.sectors must not be empty")
	}
	if c.Firms.ExitThreshold >= 0 {
		return fmt.Errorf("firms.exit_threshold must be negative, got %g", c.Firms.ExitThreshold)
	}
	if c.FirmBehavior.SatisficingWindow < 1 {
		return fmt.Errorf("firm_behavior.satisficing_window must be >= 1, got %d", c.FirmBehavior.SatisficingWindow)
	}
	if c.FirmBehavior.MarkupNoiseStd < 0 {
		return fmt.Errorf("firm_behavior.markup_noise_std must be >= 0, got %g", c.FirmBehavior.MarkupNoiseStd)
	}
	if v := c.HouseholdBehavior.JobSearchIntensity; v < 0 || v > 1 {
		return fmt.Errorf("household_behavior.job_search_intensity must be in [0,1], got %g", v)
	}
	if v := c.HouseholdBehavior.ConsumptionSmoothing; v < 0 || v > 1 {
		return fmt.Errorf("household_behavior.consumption_smoothing must be in [0,1], got %g", v)
	}
	if v := c.HouseholdBehavior.ExpectationAdaptationSpeed; v < 0 || v > 1 {
		return fmt.Errorf("household_behavior.expectation_adaptation_speed must be in [0,1], got %g", v)
	}
	if v := c.Banks.CapitalRequirement; v < 0 || v > 1 {
		return fmt.Errorf("banks.capital_requirement must be in [0,1], got %g", v)
	}
	if v := c.Banks.ReserveRequirement; v < 0 || v > 1 {
		return fmt.Errorf("banks.reserve_requirement must be in [0,1], got %g", v)
	}
	if c.BankBehavior.CreditScoreNoiseStd < 0 {
		return fmt.Errorf("bank_behavior.credit_score_noise_std must be >= 0, got %g", c.BankBehavior.CreditScoreNoiseStd)
	}
	if v := c.TaylorRule.InterestRateSmoothing; v < 0 || v >= 1 {
		return fmt.Errorf("taylor_rule.interest_rate_smoothing must be in [0,1), got %g", v)
	}
	if v := c.LaborMarket.MatchingEfficiency; v < 0 || v > 1 {
		return fmt.Errorf("labor_market.matching_efficiency must be in [0,1], got %g", v)
	}
	if v := c.LaborMarket.SeparationRate; v < 0 || v > 1 {
		return fmt.Errorf("labor_market.separation_rate must be in [0,1], got %g", v)
	}
	return nil
}
