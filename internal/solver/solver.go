// Package solver builds a linear program from a list of domain.Entity
// values plus a domain.SchedulerConfig, solves it, and extracts a
// domain.ScheduleResult. See DESIGN.md for the lexicographic two-phase
// objective this package implements and why.
package solver

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/example/daysched/internal/domain"
	"github.com/example/daysched/internal/timecodec"
)

// Solve is the package's one public entry point. It mutates no shared
// state, and its only I/O is the debug dump written through the standard
// log package when debug is true; otherwise it is a pure function of its
// arguments.
func Solve(entities []domain.Entity, cfg domain.SchedulerConfig, debug bool) (domain.ScheduleResult, error) {
	if err := cfg.Validate(); err != nil {
		return domain.ScheduleResult{}, err
	}
	if err := checkUniqueNames(entities); err != nil {
		return domain.ScheduleResult{}, err
	}

	ctx := newBuildContext(entities, cfg)
	span := cfg.DayEndMinutes - cfg.DayStartMinutes

	dVarIndex, numD := ctx.dVarLayout()
	numStructural := ctx.numInstances() + numD

	brs := ctx.branches()

	var best *branchResult
	sawUnbounded := false
	for _, br := range brs {
		res, status := ctx.solveBranch(br, dVarIndex, numStructural, span)
		if status == lpUnbounded {
			sawUnbounded = true
			continue
		}
		if status != lpOptimal {
			continue
		}
		if best == nil || res.less(best) {
			best = res
		}
	}

	if debug {
		logDebugDump(ctx, numStructural, len(brs), best)
	}

	if best == nil {
		if sawUnbounded {
			return domain.ScheduleResult{}, &domain.SolverError{Msg: "linear program reported unbounded; every clock variable should be bounded by day_end_minutes"}
		}
		return domain.ScheduleResult{}, domain.ErrInfeasible
	}

	return ctx.extractResult(best, dVarIndex), nil
}

func checkUniqueNames(entities []domain.Entity) error {
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		if seen[e.Name] {
			return &domain.BadConfigError{Reason: fmt.Sprintf("duplicate entity name %q", e.Name)}
		}
		seen[e.Name] = true
	}
	return nil
}

// dVarLayout assigns a stable structural-variable index (after the u
// variables) to every instance that participates in some window group, in
// ascending instanceVar order, so every branch shares one numbering.
func (ctx *buildContext) dVarLayout() (index map[int]int, count int) {
	var vars []int
	for _, g := range ctx.windowGroups {
		vars = append(vars, g.instanceVars...)
	}
	sort.Ints(vars)
	index = make(map[int]int, len(vars))
	for i, v := range vars {
		index[v] = ctx.numInstances() + i
	}
	return index, len(vars)
}

// branchResult is one branch's outcome: the minimal total window deviation
// D*, the (signed, strategy-adjusted) phase-2 objective value, and the
// variable assignment that achieved it.
type branchResult struct {
	deviation float64
	objective float64
	x         []float64
	branch    branch
}

// less implements the lexicographic comparison: minimal total deviation
// first, minimal/maximal Σt second.
func (r *branchResult) less(other *branchResult) bool {
	if math.Abs(r.deviation-other.deviation) > eps {
		return r.deviation < other.deviation
	}
	return r.objective < other.objective
}

func (ctx *buildContext) solveBranch(br branch, dVarIndex map[int]int, numStructural, span int) (*branchResult, lpStatus) {
	hard := ctx.hardLPRows(br, numStructural, span)

	if ctx.cfg.PenaltyWeight == 0 {
		prob := lpProblem{numVars: numStructural, obj: ctx.strategyObjective(numStructural), rows: hard}
		sol := prob.solve()
		if sol.status != lpOptimal {
			return nil, sol.status
		}
		return &branchResult{deviation: 0, objective: sol.value, x: sol.x, branch: br}, lpOptimal
	}

	windowRows := ctx.windowLPRows(br, dVarIndex, numStructural)
	rows1 := append(append([]lpRow(nil), hard...), windowRows...)

	phase1 := lpProblem{numVars: numStructural, obj: penaltyObjective(numStructural, dVarIndex), rows: rows1}
	sol1 := phase1.solve()
	if sol1.status != lpOptimal {
		return nil, sol1.status
	}
	dStar := sol1.value

	capRow := lpRow{coef: penaltyObjective(numStructural, dVarIndex), rel: relLE, rhs: dStar + 1e-6}
	rows2 := append(append([]lpRow(nil), rows1...), capRow)
	phase2 := lpProblem{numVars: numStructural, obj: ctx.strategyObjective(numStructural), rows: rows2}
	sol2 := phase2.solve()
	if sol2.status != lpOptimal {
		return nil, sol2.status
	}

	return &branchResult{deviation: dStar, objective: sol2.value, x: sol2.x, branch: br}, lpOptimal
}

// hardLPRows converts ctx.hardRows and the branch's resolved ApartFrom
// directions into lpRows over the shifted (u = t - day_start) variables,
// plus the upper-bound row u <= span for every instance.
func (ctx *buildContext) hardLPRows(br branch, numStructural, span int) []lpRow {
	rows := make([]lpRow, 0, len(ctx.hardRows)+len(ctx.apartFromPrs)+ctx.numInstances())

	addDiff := func(lhs, rhs, minutes int) {
		coef := make([]float64, numStructural)
		coef[lhs] = 1
		coef[rhs] = -1
		rows = append(rows, lpRow{coef: coef, rel: relGE, rhs: float64(minutes)})
	}

	for _, d := range ctx.hardRows {
		addDiff(d.lhsVar, d.rhsVar, d.minutes)
	}
	for i, p := range ctx.apartFromPrs {
		minutes := int(p.hours) * 60
		if br.apartFromDir[i] {
			addDiff(p.b, p.a, minutes) // a before b: b - a >= minutes
		} else {
			addDiff(p.a, p.b, minutes) // b before a: a - b >= minutes
		}
	}
	for _, inst := range ctx.instances {
		coef := make([]float64, numStructural)
		coef[inst.varIdx] = 1
		rows = append(rows, lpRow{coef: coef, rel: relLE, rhs: float64(span)})
	}
	return rows
}

// windowLPRows builds the soft-window constraints for a Range(a,b) (an
// Anchor is the degenerate Range(a,a), so one formula covers both, per
// domain.WindowSpec's doc comment):
//
//	u + d >= (lo - day_start)
//	u - d <= (hi - day_start)
func (ctx *buildContext) windowLPRows(br branch, dVarIndex map[int]int, numStructural int) []lpRow {
	rows := make([]lpRow, 0, 2*len(dVarIndex))
	dayStart := ctx.cfg.DayStartMinutes
	for uVar, dVar := range dVarIndex {
		w, ok := br.windowOf[uVar]
		if !ok {
			continue
		}
		lower := make([]float64, numStructural)
		lower[uVar] = 1
		lower[dVar] = 1
		rows = append(rows, lpRow{coef: lower, rel: relGE, rhs: float64(w.Lo - dayStart)})

		upper := make([]float64, numStructural)
		upper[uVar] = 1
		upper[dVar] = -1
		rows = append(rows, lpRow{coef: upper, rel: relLE, rhs: float64(w.Hi - dayStart)})
	}
	return rows
}

func penaltyObjective(numStructural int, dVarIndex map[int]int) []float64 {
	obj := make([]float64, numStructural)
	for _, dVar := range dVarIndex {
		obj[dVar] = 1
	}
	return obj
}

func (ctx *buildContext) strategyObjective(numStructural int) []float64 {
	obj := make([]float64, numStructural)
	sign := 1.0
	if ctx.cfg.Strategy == domain.Latest {
		sign = -1.0
	}
	for _, inst := range ctx.instances {
		obj[inst.varIdx] = sign
	}
	return obj
}

// extractResult rounds each clock variable to the nearest minute, clamps it
// into [day_start, day_end] (invariant 1), and assembles the
// ScheduleResult: events sorted by time then (entity, instance), window
// usage grouped by (entity, window label), and total_penalty =
// penalty_weight * D* (invariant 5).
func (ctx *buildContext) extractResult(best *branchResult, dVarIndex map[int]int) domain.ScheduleResult {
	dayStart, dayEnd := ctx.cfg.DayStartMinutes, ctx.cfg.DayEndMinutes

	events := make([]domain.ScheduledEvent, 0, len(ctx.instances))
	for _, inst := range ctx.instances {
		t := dayStart + int(math.Round(best.x[inst.varIdx]))
		if t < dayStart {
			t = dayStart
		}
		if t > dayEnd {
			t = dayEnd
		}
		events = append(events, domain.ScheduledEvent{
			EntityName:  ctx.entities[inst.entity].Name,
			Instance:    inst.instance,
			TimeMinutes: t,
		})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].TimeMinutes != events[j].TimeMinutes {
			return events[i].TimeMinutes < events[j].TimeMinutes
		}
		if events[i].EntityName != events[j].EntityName {
			return events[i].EntityName < events[j].EntityName
		}
		return events[i].Instance < events[j].Instance
	})

	return domain.ScheduleResult{
		ScheduledEvents: events,
		TotalPenalty:    ctx.cfg.PenaltyWeight * best.deviation,
		WindowUsage:     ctx.windowUsageFromBranch(best.branch),
	}
}

// windowUsageFromBranch groups the branch's chosen window per instance by
// (entity, window label). It reflects which window each instance was
// assigned, independent of whether that instance landed inside it with
// zero deviation.
func (ctx *buildContext) windowUsageFromBranch(br branch) []domain.WindowUsage {
	type key struct{ entity, label string }
	grouped := map[key][]int{}
	var order []key

	for _, inst := range ctx.instances {
		w, ok := br.windowOf[inst.varIdx]
		if !ok {
			continue
		}
		k := key{entity: ctx.entities[inst.entity].Name, label: w.Label(timecodec.FormatHHMM)}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], inst.instance)
	}

	out := make([]domain.WindowUsage, 0, len(order))
	for _, k := range order {
		instances := grouped[k]
		sort.Ints(instances)
		out = append(out, domain.WindowUsage{EntityName: k.entity, WindowLabel: k.label, Instances: instances})
	}
	return out
}

func logDebugDump(ctx *buildContext, numStructural, branchCount int, best *branchResult) {
	log.Printf("[solver] variables=%d hard-constraints=%d apart-from-pairs=%d window-groups=%d branches=%d",
		numStructural, len(ctx.hardRows), len(ctx.apartFromPrs), len(ctx.windowGroups), branchCount)
	for _, d := range ctx.diagnostics {
		log.Printf("[solver] %s", d)
	}
	if best == nil {
		log.Printf("[solver] no feasible branch found")
		return
	}
	log.Printf("[solver] chosen branch: total deviation=%.2f strategy-objective=%.2f", best.deviation, best.objective)
	for _, inst := range ctx.instances {
		t := ctx.cfg.DayStartMinutes + int(math.Round(best.x[inst.varIdx]))
		if w, ok := best.branch.windowOf[inst.varIdx]; ok {
			log.Printf("[solver] %s#%d -> %s window=%s penalty=%.2f", ctx.entities[inst.entity].Name, inst.instance,
				timecodec.FormatHHMM(t), w.Label(timecodec.FormatHHMM), ctx.cfg.PenaltyWeight*float64(w.Deviation(t)))
			continue
		}
		log.Printf("[solver] %s#%d -> %s", ctx.entities[inst.entity].Name, inst.instance, timecodec.FormatHHMM(t))
	}
}
