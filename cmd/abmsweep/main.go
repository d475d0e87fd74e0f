// abmsweep runs a grid search over model parameters and prints the ranked
// results.
//
// The grid is given as semicolon-separated axes of comma-separated values:
//
//	abmsweep -grid "price_markup=0.10,0.15,0.20;mpc_mean=0.7,0.8"
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/areumfire/macrosim-go/internal/config"
	"github.com/areumfire/macrosim-go/internal/eval"
	"github.com/areumfire/macrosim-go/internal/sim"
)

// paramSetters maps sweepable parameter names onto the config record.
var paramSetters = map[string]func(*config.Config, float64){
	"seed":                    func(c *config.Config, v float64) { c.Simulation.Seed = int64(v) },
	"price_markup":            func(c *config.Config, v float64) { c.FirmBehavior.PriceMarkup = v },
	"markup_adjustment_speed": func(c *config.Config, v float64) { c.FirmBehavior.MarkupAdjustmentSpeed = v },
	"inventory_target_ratio":  func(c *config.Config, v float64) { c.FirmBehavior.InventoryTargetRatio = v },
	"satisficing_aspiration_rate": func(c *config.Config, v float64) {
		c.FirmBehavior.SatisficingAspirationRate = v
	},
	"markup_noise_std":       func(c *config.Config, v float64) { c.FirmBehavior.MarkupNoiseStd = v },
	"mpc_mean":               func(c *config.Config, v float64) { c.Households.MPCMean = v },
	"job_search_intensity":   func(c *config.Config, v float64) { c.HouseholdBehavior.JobSearchIntensity = v },
	"consumption_smoothing":  func(c *config.Config, v float64) { c.HouseholdBehavior.ConsumptionSmoothing = v },
	"expectation_adaptation_speed": func(c *config.Config, v float64) {
		c.HouseholdBehavior.ExpectationAdaptationSpeed = v
	},
	"lending_threshold":      func(c *config.Config, v float64) { c.BankBehavior.LendingThreshold = v },
	"credit_score_noise_std": func(c *config.Config, v float64) { c.BankBehavior.CreditScoreNoiseStd = v },
	"matching_efficiency":    func(c *config.Config, v float64) { c.LaborMarket.MatchingEfficiency = v },
	"separation_rate":        func(c *config.Config, v float64) { c.LaborMarket.SeparationRate = v },
	"wage_stickiness":        func(c *config.Config, v float64) { c.LaborMarket.WageStickiness = v },
	"spending_gdp_ratio":     func(c *config.Config, v float64) { c.FiscalRule.SpendingGDPRatio = v },
	"inflation_target":       func(c *config.Config, v float64) { c.TaylorRule.InflationTarget = v },
}

func parseGrid(spec string) ([]eval.Axis, error) {
	var grid []eval.Axis
	for _, axisSpec := range strings.Split(spec, ";") {
		axisSpec = strings.TrimSpace(axisSpec)
		if axisSpec == "" {
			continue
		}
		name, valueList, ok := strings.Cut(axisSpec, "=")
		if !ok {
			return nil, fmt.Errorf("axis %q: want name=v1,v2,...", axisSpec)
		}
		name = strings.TrimSpace(name)
		if _, known := paramSetters[name]; !known {
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
		var values []any
		for _, raw := range strings.Split(valueList, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("axis %q: %w", name, err)
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("axis %q: no values", name)
		}
		grid = append(grid, eval.Axis{Name: name, Values: values})
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	return grid, nil
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults when empty)")
	gridSpec := flag.String("grid", "seed=0,1,2", "parameter grid, e.g. \"price_markup=0.1,0.15;mpc_mean=0.7,0.8\"")
	periods := flag.Int("periods", 80, "periods per combination")
	warmUp := flag.Int("warmup", 20, "warm-up periods for evaluation")
	workers := flag.Int("workers", 1, "concurrent combinations")
	sector := flag.Bool("sector", false, "use the sector-representative calibration")
	households := flag.Int("households", 500, "households per combination")
	banks := flag.Int("banks", 3, "banks per combination")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	grid, err := parseGrid(*gridSpec)
	if err != nil {
		logger.Fatal("invalid grid", zap.Error(err))
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	baseCfg.Households.Count = *households
	baseCfg.Banks.Count = *banks

	factory := func(params eval.Params) (*sim.Simulation, error) {
		cfg := baseCfg
		for name, value := range params {
			v, ok := value.(float64)
			if !ok {
				return nil, fmt.Errorf("parameter %s: non-numeric value %v", name, value)
			}
			paramSetters[name](&cfg, v)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if *sector {
			return sim.NewSectorSimulation(sim.SectorOptions{
				Households: cfg.Households.Count,
				Banks:      cfg.Banks.Count,
				Seed:       cfg.Simulation.Seed,
				Periods:    *periods,
			}), nil
		}
		return sim.NewFromConfig(cfg), nil
	}

	sweep := &eval.Sweep{
		Grid:    grid,
		Factory: factory,
		Periods: *periods,
		WarmUp:  *warmUp,
		Workers: *workers,
		Log:     logger,
	}
	summary := sweep.Run()

	fmt.Print(summary.Table())
	if best := summary.Best(); best != nil {
		fmt.Printf("\nbest: score=%.4f params=%v\n", best.Score(), best.Params)
	}
}
