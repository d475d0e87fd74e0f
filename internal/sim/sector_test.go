package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectorSimulationShape(t *testing.T) {
	s := NewSectorSimulation(SectorOptions{Households: 1000, Banks: 3, Seed: 42, Periods: 40})

	require.Len(t, s.Firms, len(SectorProfiles))
	assert.Len(t, s.Households, 1000)
	assert.Len(t, s.Banks, 3)

	for i, f := range s.Firms {
		p := SectorProfiles[i]
		assert.Equal(t, p.Name, f.Sector)
		assert.Equal(t, p.Markup, f.Markup, "sector-specific markup")
		assert.InDelta(t, p.QuarterlyTurnover(), f.Turnover, 1e-6)
		assert.InDelta(t, p.Capital()+p.Cash(), f.Equity, 1e-6)
	}
}

func TestSectorEmploymentDistribution(t *testing.T) {
	n := 1000
	s := NewSectorSimulation(SectorOptions{Households: n, Banks: 3, Seed: 42})

	employed := 0
	totalEmployees := 0
	for _, h := range s.Households {
		if h.Employed {
			employed++
		}
	}
	for _, f := range s.Firms {
		totalEmployees += f.Employees
		assert.GreaterOrEqual(t, f.Employees, 0)
	}

	// Head-counts reconcile with assigned households.
	assert.Equal(t, totalEmployees, employed)
	// Roughly 95.5% employment at init, allowing for per-sector rounding.
	assert.InDelta(t, float64(n)*(1-initialUnemploymentRate), float64(employed), float64(len(SectorProfiles)))
}

func TestSectorProfileDerivations(t *testing.T) {
	p := SectorProfile{
		Name:               "manufacturing",
		GDPShare:           0.100,
		EmploymentShare:    0.097,
		CapitalOutputRatio: 2.0,
		Markup:             0.12,
	}

	assert.InDelta(t, 60e9, p.QuarterlyTurnover(), 1)
	assert.Equal(t, 3_007_000, p.Employees())
	assert.InDelta(t, float64(p.Employees())*UKWageQuarterly, p.QuarterlyWageBill(), 1)
	assert.InDelta(t, 2.0*60e9*4, p.Capital(), 1)
	assert.InDelta(t, p.Capital()+p.Cash(), p.Equity(), 1)
}

func TestSectorSimulationDeterminism(t *testing.T) {
	opts := SectorOptions{Households: 300, Banks: 2, Seed: 9, Periods: 10}

	r1 := NewSectorSimulation(opts).Run(10, false)
	r2 := NewSectorSimulation(opts).Run(10, false)
	require.Equal(t, r1.Records, r2.Records)
}

func TestSectorSimulationRuns(t *testing.T) {
	s := NewSectorSimulation(SectorOptions{Households: 200, Banks: 2, Seed: 1})
	result := s.Run(8, false)

	require.Len(t, result.Records, 8)
	for _, rec := range result.Records {
		assert.GreaterOrEqual(t, rec.GDP, 0.0)
		assert.GreaterOrEqual(t, rec.PolicyRate, s.Config.TaylorRule.LowerBound)
	}
}

func TestSectorDefaults(t *testing.T) {
	s := NewSectorSimulation(SectorOptions{})
	assert.Len(t, s.Households, 10_000)
	assert.Len(t, s.Banks, 5)
	assert.Equal(t, int64(42), s.Config.Simulation.Seed)
	assert.Equal(t, 80, s.Config.Simulation.Periods)
}
