package scheduler

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

// SolveStatus describes the outcome of an optimal solve.
type SolveStatus string

const (
	SolveOptimal    SolveStatus = "optimal"
	SolveInfeasible SolveStatus = "infeasible"
	SolveError      SolveStatus = "error"
	SolveTimeout    SolveStatus = "timeout"
)

// ErrInfeasible indicates the model has no legal assignment.
var ErrInfeasible = errors.New("model infeasible")

// Optimal formulates scheduling as a linear program over one start-day
// variable per submission plus a makespan variable: deadlines, earliest
// starts, dependency ordering and soft-block bounds become linear rows, and
// the objective minimizes the weighted combination of the makespan and the
// priority-weighted sum of start days. The relaxed solution is decoded back
// through the placement oracle, which restores the discrete constraints the
// relaxation cannot express (daily concurrency caps, blackout dates). Any
// solver failure or undecodable solution yields an empty schedule.
type Optimal struct {
	// Timeout bounds the solver call. Zero means no bound.
	Timeout time.Duration

	status SolveStatus
}

// NewOptimal returns the LP-backed strategy with no solver time bound.
func NewOptimal() *Optimal {
	return &Optimal{}
}

// Name implements Scheduler.
func (o *Optimal) Name() Strategy { return StrategyOptimal }

// Status reports the outcome of the last Schedule call.
func (o *Optimal) Status() SolveStatus { return o.status }

// makespanWeight balances the schedule span against the priority-weighted
// start days in the objective.
const makespanWeight = 1.0

// lpModel holds the inequality-form program. Variables are one start-day
// offset per submission followed by the makespan variable.
type lpModel struct {
	ids  []string
	c    []float64
	g    *mat.Dense
	h    []float64
	durs map[string]int
}

// solveLP runs the simplex algorithm on the inequality-form model. The rows
// G x <= h are brought to standard form by appending one slack variable per
// row: [G I] y = h with y >= 0.
func solveLP(m lpModel) ([]float64, error) {
	vars := len(m.c)
	rows, _ := m.g.Dims()

	cStd := make([]float64, vars+rows)
	copy(cStd, m.c)

	aStd := mat.NewDense(rows, vars+rows, nil)
	for r := 0; r < rows; r++ {
		for col := 0; col < vars; col++ {
			aStd.Set(r, col, m.g.At(r, col))
		}
		aStd.Set(r, vars+r, 1)
	}

	_, sol, err := lp.Simplex(cStd, aStd, m.h, 1e-7, nil)
	if err != nil {
		return nil, err
	}
	return sol[:len(m.ids)], nil
}

// lpSolve points to the function used to solve the LP. Tests override it to
// simulate solver failures.
var lpSolve = solveLP

// Schedule implements Scheduler.
func (o *Optimal) Schedule(cfg *model.Config) model.Schedule {
	o.status = SolveOptimal
	if len(cfg.Submissions) == 0 {
		return model.Schedule{}
	}
	assignVenues(cfg)

	m, err := o.buildModel(cfg)
	if err != nil {
		o.status = SolveInfeasible
		return model.Schedule{}
	}

	sol, err := o.solveBounded(m)
	switch {
	case errors.Is(err, errSolveTimeout):
		o.status = SolveTimeout
		return model.Schedule{}
	case err != nil:
		o.status = SolveError
		return model.Schedule{}
	}

	s, ok := o.decode(m, sol, cfg)
	if !ok {
		o.status = SolveInfeasible
		return model.Schedule{}
	}
	return s
}

var errSolveTimeout = errors.New("solver timed out")

// solveBounded applies the wall-clock budget at the solver boundary. The
// solver goroutine is left to finish on its own after a timeout; its result
// is discarded.
func (o *Optimal) solveBounded(m lpModel) ([]float64, error) {
	if o.Timeout <= 0 {
		return lpSolve(m)
	}

	type result struct {
		sol []float64
		err error
	}
	ch := make(chan result, 1)
	go func() {
		sol, err := lpSolve(m)
		ch <- result{sol, err}
	}()

	select {
	case r := <-ch:
		return r.sol, r.err
	case <-time.After(o.Timeout):
		return nil, errSolveTimeout
	}
}

// buildModel translates the config into inequality rows over start-day
// offsets from the window start. A submission whose bounds already conflict
// makes the model infeasible before the solver runs.
func (o *Optimal) buildModel(cfg *model.Config) (lpModel, error) {
	origin := cfg.WindowStart()
	horizon := model.DaysBetween(origin, cfg.WindowEnd())

	n := len(cfg.Submissions)
	m := lpModel{
		ids:  make([]string, n),
		c:    make([]float64, n+1),
		durs: make(map[string]int, n),
	}
	index := make(map[string]int, n)
	for i, sub := range cfg.Submissions {
		m.ids[i] = sub.ID
		index[sub.ID] = i
		m.durs[sub.ID] = sub.DurationDays(cfg)
		m.c[i] = sub.PriorityScore(cfg)
	}
	makespan := n
	m.c[makespan] = makespanWeight

	type row struct {
		coeffs map[int]float64
		bound  float64
	}
	var rows []row
	add := func(coeffs map[int]float64, bound float64) {
		rows = append(rows, row{coeffs: coeffs, bound: bound})
	}

	for i, sub := range cfg.Submissions {
		dur := m.durs[sub.ID]

		// Horizon and deadline upper bounds.
		upper := float64(horizon - dur)
		if deadline, ok := submissionDeadline(sub, cfg); ok {
			byDeadline := float64(model.DaysBetween(origin, deadline) - dur)
			if byDeadline < upper {
				upper = byDeadline
			}
		}
		lower := 0.0
		if !sub.EarliestStart.IsZero() {
			lower = float64(model.DaysBetween(origin, sub.EarliestStart))
		}
		if cfg.Options.EnforceSoftBlocks && !sub.EarliestStart.IsZero() {
			anchor := float64(model.DaysBetween(origin, sub.EarliestStart))
			if b := anchor + model.SoftBlockDays; b < upper {
				upper = b
			}
			if b := anchor - model.SoftBlockDays; b > lower {
				lower = b
			}
		}
		if upper < lower {
			return lpModel{}, ErrInfeasible
		}
		add(map[int]float64{i: 1}, upper)
		add(map[int]float64{i: -1}, -lower)

		// Every submission finishes within the makespan: start_i + dur_i <= T.
		add(map[int]float64{i: 1, makespan: -1}, -float64(dur))

		// Dependency ordering: the parent must end before the child may
		// start, minus the child's allowed lead.
		for _, depID := range sub.DependsOn {
			j, ok := index[depID]
			if !ok {
				continue
			}
			add(map[int]float64{j: 1, i: -1}, float64(sub.LeadTimeFromParents-m.durs[depID]))
		}
	}

	m.g = mat.NewDense(len(rows), n+1, nil)
	m.h = make([]float64, len(rows))
	for r, rw := range rows {
		for col, v := range rw.coeffs {
			m.g.Set(r, col, v)
		}
		m.h[r] = rw.bound
	}
	return m, nil
}

// decode maps the relaxed solution back onto calendar days. Each submission
// is offered its rounded LP day first; the oracle then walks forward to the
// nearest day that also satisfies the discrete constraints. A submission
// with no such day invalidates the whole solve.
func (o *Optimal) decode(m lpModel, sol []float64, cfg *model.Config) (model.Schedule, bool) {
	origin := cfg.WindowStart()
	wanted := make(map[string]time.Time, len(m.ids))
	for i, id := range m.ids {
		offset := int(math.Round(sol[i]))
		if offset < 0 {
			offset = 0
		}
		wanted[id] = origin.AddDate(0, 0, offset)
	}

	s := make(model.Schedule, len(m.ids))
	for _, sub := range priorityOrder(cfg) {
		day := wanted[sub.ID]
		if !validate.CanPlace(sub, day, s, cfg) {
			found, ok := scanForward(sub, day, s, cfg)
			if !ok {
				return nil, false
			}
			day = found
		}
		s.Place(sub, day, cfg)
	}
	return s, true
}
