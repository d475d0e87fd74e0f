package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 400, cfg.Simulation.Periods)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Len(t, cfg.Firms.Sectors, 13)
	assert.Equal(t, 0.15, cfg.FirmBehavior.PriceMarkup)
	assert.Equal(t, 4, cfg.FirmBehavior.SatisficingWindow)
	assert.True(t, cfg.TaylorRule.Active)
	assert.True(t, cfg.CreditMarket.Rationing)
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero periods", func(c *Config) { c.Simulation.Periods = 0 }},
		{"negative seed", func(c *Config) { c.Simulation.Seed = -1 }},
		{"negative warm-up", func(c *Config) { c.Simulation.WarmUpPeriods = -1 }},
		{"no sectors", func(c *Config) { c.Firms.Sectors = nil }},
		{"positive exit threshold", func(c *Config) { c.Firms.ExitThreshold = 0.5 }},
		{"zero satisficing window", func(c *Config) { c.FirmBehavior.SatisficingWindow = 0 }},
		{"negative markup noise", func(c *Config) { c.FirmBehavior.MarkupNoiseStd = -0.1 }},
		{"search intensity above one", func(c *Config) { c.HouseholdBehavior.JobSearchIntensity = 1.5 }},
		{"adaptation speed above one", func(c *Config) { c.HouseholdBehavior.ExpectationAdaptationSpeed = 2 }},
		{"capital requirement above one", func(c *Config) { c.Banks.CapitalRequirement = 1.2 }},
		{"smoothing at one", func(c *Config) { c.TaylorRule.InterestRateSmoothing = 1.0 }},
		{"matching efficiency negative", func(c *Config) { c.LaborMarket.MatchingEfficiency = -0.1 }},
		{"separation rate above one", func(c *Config) { c.LaborMarket.SeparationRate = 1.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Simulation, cfg.Simulation)
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yml")
	yaml := `
simulation:
  periods: 80
  seed: 7
firm_behavior:
  price_markup: 0.25
labor_market:
  separation_rate: 0.08
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values.
	assert.Equal(t, 80, cfg.Simulation.Periods)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	assert.Equal(t, 0.25, cfg.FirmBehavior.PriceMarkup)
	assert.Equal(t, 0.08, cfg.LaborMarket.SeparationRate)

	// Untouched values keep their defaults.
	assert.Equal(t, 40, cfg.Simulation.WarmUpPeriods)
	assert.Equal(t, 0.1, cfg.FirmBehavior.MarkupAdjustmentSpeed)
	assert.Equal(t, 0.8, cfg.LaborMarket.WageStickiness)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  periods: 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
