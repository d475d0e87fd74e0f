// Package eval computes aggregate moments from a simulation trajectory,
// scores them against calibration targets, and runs parameter sweeps over
// configuration grids.
package eval

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/areumfire/macrosim-go/internal/sim"
)

// StatResult is the evaluation outcome for a single calibration target.
type StatResult struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Simulated   float64 `json:"simulated"`
	Target      float64 `json:"target"`
	Deviation   float64 `json:"deviation"` // (simulated - target) / |target|
	Tolerance   float64 `json:"tolerance"`
	Passed      bool    `json:"passed"`
	Weight      float64 `json:"weight"`
}

// Report is the full evaluation comparing a trajectory to its calibration
// targets.
type Report struct {
	Results []StatResult `json:"targets"`
}

// OverallScore is the weighted root-mean-square relative deviation; lower
// is better. Targets whose deviation is NaN contribute nothing to either
// side of the ratio. Returns +Inf when no valid results exist.
func (r *Report) OverallScore() float64 {
	if len(r.Results) == 0 {
		return math.Inf(1)
	}
	weightedSum := 0.0
	totalWeight := 0.0
	for _, sr := range r.Results {
		if math.IsNaN(sr.Deviation) {
			continue
		}
		weightedSum += sr.Weight * sr.Deviation * sr.Deviation
		totalWeight += sr.Weight
	}
	if totalWeight == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(weightedSum / totalWeight)
}

// NPassed is the number of targets within tolerance.
func (r *Report) NPassed() int {
	n := 0
	for _, sr := range r.Results {
		if sr.Passed {
			n++
		}
	}
	return n
}

// NTotal is the number of evaluated targets.
func (r *Report) NTotal() int { return len(r.Results) }

// Summary renders a human-readable report.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluation Report: %d/%d targets within tolerance\n", r.NPassed(), r.NTotal())
	fmt.Fprintf(&b, "Overall score (WRMS deviation): %.4f\n\n", r.OverallScore())

	maxName := 10
	for _, sr := range r.Results {
		if len(sr.Name) > maxName {
			maxName = len(sr.Name)
		}
	}
	for _, sr := range r.Results {
		status := "FAIL"
		if sr.Passed {
			status = "PASS"
		}
		dev := "  N/A "
		if !math.IsNaN(sr.Deviation) {
			dev = fmt.Sprintf("%+.1f%%", sr.Deviation*100)
		}
		fmt.Fprintf(&b, "  [%s]  %-*s  sim=%8.4f  tgt=%8.4f  dev=%s\n",
			status, maxName, sr.Name, sr.Simulated, sr.Target, dev)
	}
	return b.String()
}

// popStd is the population standard deviation (divide by n). gonum's
// stat.StdDev is the sample estimator; the quarterly-moment convention here
// divides by n.
func popStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := stat.Mean(xs, nil)
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// ComputeStats computes the aggregate moments of a trajectory after
// dropping the first warmUp records. GDP growth mean, debt/GDP and wage
// share come back as NaN when no period qualifies (e.g. no period with
// positive GDP); GDP growth std is then 0.
func ComputeStats(result *sim.Result, warmUp int) map[string]float64 {
	if warmUp < 0 {
		warmUp = 0
	}
	if warmUp >= len(result.Records) {
		return map[string]float64{}
	}
	records := result.Records[warmUp:]
	n := len(records)

	// GDP growth: period-over-period, only where the base is positive.
	var gdpGrowths []float64
	for i := 1; i < n; i++ {
		prev := records[i-1].GDP
		if prev > 0 {
			gdpGrowths = append(gdpGrowths, (records[i].GDP-prev)/prev)
		}
	}
	gdpGrowthMean := math.NaN()
	gdpGrowthStd := 0.0
	if len(gdpGrowths) > 0 {
		gdpGrowthMean = stat.Mean(gdpGrowths, nil)
		gdpGrowthStd = popStd(gdpGrowths)
	}

	// Inflation.
	inflations := make([]float64, n)
	for i, rec := range records {
		inflations[i] = rec.Inflation
	}
	inflationMean := stat.Mean(inflations, nil)
	inflationStd := popStd(inflations)

	// Unemployment.
	unemployment := make([]float64, n)
	for i, rec := range records {
		unemployment[i] = rec.UnemploymentRate
	}
	unemploymentMean := stat.Mean(unemployment, nil)

	// Government debt / GDP, only where GDP is positive.
	var debtGDP []float64
	for _, rec := range records {
		if rec.GDP > 0 {
			debtGDP = append(debtGDP, rec.GovernmentDebt/rec.GDP)
		}
	}
	debtGDPMean := math.NaN()
	if len(debtGDP) > 0 {
		debtGDPMean = stat.Mean(debtGDP, nil)
	}

	// Wage share of GDP.
	var wageShares []float64
	for _, rec := range records {
		if rec.GDP > 0 && rec.TotalEmployment > 0 {
			wageShares = append(wageShares, rec.AverageWage*float64(rec.TotalEmployment)/rec.GDP)
		}
	}
	wageShareMean := math.NaN()
	if len(wageShares) > 0 {
		wageShareMean = stat.Mean(wageShares, nil)
	}

	return map[string]float64{
		StatGDPGrowthMean:     gdpGrowthMean,
		StatGDPGrowthStd:      gdpGrowthStd,
		StatUnemploymentMean:  unemploymentMean,
		StatInflationMean:     inflationMean,
		StatInflationStd:      inflationStd,
		StatGovernmentDebtGDP: debtGDPMean,
		StatWageShare:         wageShareMean,
	}
}

// Evaluate scores a trajectory against calibration targets, skipping the
// first warmUp periods. Nil targets means the default UK set.
func Evaluate(result *sim.Result, targets []Target, warmUp int) *Report {
	if targets == nil {
		targets = DefaultTargets()
	}
	stats := ComputeStats(result, warmUp)

	report := &Report{Results: make([]StatResult, 0, len(targets))}
	for _, t := range targets {
		simulated, ok := stats[t.Name]
		if !ok {
			simulated = math.NaN()
		}

		deviation := math.NaN()
		passed := false
		if !math.IsNaN(simulated) && t.Value != 0 {
			deviation = (simulated - t.Value) / math.Abs(t.Value)
			passed = math.Abs(simulated-t.Value) <= t.Tolerance
		}

		report.Results = append(report.Results, StatResult{
			Name:        t.Name,
			Description: t.Description,
			Simulated:   simulated,
			Target:      t.Value,
			Deviation:   deviation,
			Tolerance:   t.Tolerance,
			Passed:      passed,
			Weight:      t.Weight,
		})
	}
	return report
}
