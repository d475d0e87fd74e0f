package eval

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/areumfire/macrosim-go/internal/sim"
)

// Axis is one dimension of a parameter grid: a name and the values to
// explore. Grid enumeration follows axis order, so a grid is a slice, not a
// map.
type Axis struct {
	Name   string
	Values []any
}

// Params is one point of the grid, passed to the factory.
type Params map[string]any

// SweepResult is the outcome of one parameter combination.
type SweepResult struct {
	Params Params  `json:"params"`
	Report *Report `json:"report"`
}

// Score is the combination's weighted-RMS evaluation score (lower is
// better).
func (r SweepResult) Score() float64 { return r.Report.OverallScore() }

// Summary holds one SweepResult per combination that completed.
type Summary struct {
	Results []SweepResult `json:"results"`
	axes    []Axis
}

// Best returns the combination with the lowest score, or nil when the
// summary is empty.
func (s *Summary) Best() *SweepResult {
	var best *SweepResult
	for i := range s.Results {
		if best == nil || s.Results[i].Score() < best.Score() {
			best = &s.Results[i]
		}
	}
	return best
}

// Worst returns the combination with the highest score, or nil when the
// summary is empty.
func (s *Summary) Worst() *SweepResult {
	var worst *SweepResult
	for i := range s.Results {
		if worst == nil || s.Results[i].Score() > worst.Score() {
			worst = &s.Results[i]
		}
	}
	return worst
}

// Ranked returns the results sorted by ascending score. The sort is stable,
// so equal scores keep grid order.
func (s *Summary) Ranked() []SweepResult {
	ranked := make([]SweepResult, len(s.Results))
	copy(ranked, s.Results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() < ranked[j].Score()
	})
	return ranked
}

// Table renders a rank/score/params table sorted by score.
func (s *Summary) Table() string {
	if len(s.Results) == 0 {
		return "No results."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%4s  %8s", "Rank", "Score")
	for _, a := range s.axes {
		fmt.Fprintf(&b, "  %-12s", a.Name)
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", 14+14*len(s.axes)))
	b.WriteByte('\n')
	for i, r := range s.Ranked() {
		fmt.Fprintf(&b, "%4d  %8.4f", i+1, r.Score())
		for _, a := range s.axes {
			fmt.Fprintf(&b, "  %-12v", r.Params[a.Name])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Sweep is a grid search over parameter combinations. For every point of
// the Cartesian product it builds a simulation via Factory, runs it for
// Periods, and evaluates the trajectory against Targets with WarmUp periods
// dropped. Combination failures are logged at Warn and skipped; they never
// abort the sweep.
//
// Simulations are pure functions of (config, seed), so with Workers > 1 the
// combinations run on a concurrent worker pool with identical results.
type Sweep struct {
	Grid    []Axis
	Factory func(Params) (*sim.Simulation, error)
	Periods int
	WarmUp  int
	Targets []Target // nil means the default UK set
	Workers int      // <=1 runs serially
	Log     *zap.Logger
}

// Run executes the sweep and returns the per-combination summary. Results
// keep grid enumeration order regardless of worker scheduling.
func (s *Sweep) Run() *Summary {
	logger := s.Log
	if logger == nil {
		logger = zap.NewNop()
	}

	combos := s.enumerate()
	slots := make([]*SweepResult, len(combos))

	run := func(i int) {
		params := combos[i]
		report, err := s.runOne(params)
		if err != nil {
			logger.Warn("sweep combination failed",
				zap.Any("params", params),
				zap.Error(err))
			return
		}
		slots[i] = &SweepResult{Params: params, Report: report}
		logger.Info("sweep combination evaluated",
			zap.Int("combination", i+1),
			zap.Int("total", len(combos)),
			zap.Float64("score", report.OverallScore()),
			zap.Int("passed", report.NPassed()),
			zap.Int("targets", report.NTotal()))
	}

	if s.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(s.Workers)
		for i := range combos {
			i := i
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range combos {
			run(i)
		}
	}

	summary := &Summary{axes: s.Grid}
	for _, slot := range slots {
		if slot != nil {
			summary.Results = append(summary.Results, *slot)
		}
	}
	return summary
}

// runOne builds, runs and evaluates a single combination, converting both
// errors and panics into a skippable failure.
func (s *Sweep) runOne(params Params) (report *Report, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			report = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	simulation, err := s.Factory(params)
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}
	result := simulation.Run(s.Periods, false)
	return Evaluate(result, s.Targets, s.WarmUp), nil
}

// enumerate expands the grid into the Cartesian product of the axis values,
// axes varying slowest-first in declaration order.
func (s *Sweep) enumerate() []Params {
	total := 1
	for _, a := range s.Grid {
		total *= len(a.Values)
	}
	if len(s.Grid) == 0 || total == 0 {
		return nil
	}

	combos := make([]Params, 0, total)
	idx := make([]int, len(s.Grid))
	for {
		p := make(Params, len(s.Grid))
		for i, a := range s.Grid {
			p[a.Name] = a.Values[idx[i]]
		}
		combos = append(combos, p)

		// Odometer increment, last axis fastest.
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(s.Grid[i].Values) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return combos
		}
	}
}

// Sensitivity varies a single parameter while holding everything else at
// factory defaults — a one-axis convenience wrapper over Sweep.
func Sensitivity(name string, values []any, factory func(Params) (*sim.Simulation, error), periods, warmUp int, targets []Target, log *zap.Logger) *Summary {
	s := &Sweep{
		Grid:    []Axis{{Name: name, Values: values}},
		Factory: factory,
		Periods: periods,
		WarmUp:  warmUp,
		Targets: targets,
		Log:     log,
	}
	return s.Run()
}
