package solver

import "github.com/example/daysched/internal/domain"

// instanceRef names one (entity, instance) pair by its flat clock-variable
// index (the "u" variables, shifted so u = t - day_start).
type instanceRef struct {
	entity   int
	instance int // 1-based
	varIdx   int
}

// diffRow is a hard difference constraint "lhs - rhs >= minutes", the
// common shape taken by ordering, Apart, Before, After, and a resolved
// ApartFrom direction.
type diffRow struct {
	lhsVar, rhsVar int
	minutes        int
}

// apartFromPair is one (source instance, target instance) pair needing a
// disjunctive ≥h-apart constraint: exactly one of the two diffRow
// directions must hold.
type apartFromPair struct {
	a, b  int // var indices
	hours uint32
}

// windowGroup is the set of instances sharing one window candidate list;
// in practice, every instance of a single entity shares its window list.
type windowGroup struct {
	instanceVars  []int
	windows       []domain.WindowSpec
	wantsDistinct bool // when len(windows) >= instance count, prefer one window per instance
}

// buildContext is everything about an (entities, config) pair that doesn't
// depend on a branch's discrete choices.
type buildContext struct {
	entities     []domain.Entity
	cfg          domain.SchedulerConfig
	instances    []instanceRef     // flat, in entity order then instance order
	hardRows     []diffRow         // ordering + Apart + Before + After
	apartFromPrs []apartFromPair   // disjunctive, one branch dimension each
	windowGroups []windowGroup     // one branch dimension each (when weight > 0)
	diagnostics  []string          // debug dump: target resolutions, drops
}

func newBuildContext(entities []domain.Entity, cfg domain.SchedulerConfig) *buildContext {
	ctx := &buildContext{entities: entities, cfg: cfg}

	varIdx := 0
	// instanceOf[entityIdx][instance-1] = varIdx
	instanceOf := make([][]int, len(entities))
	for ei, e := range entities {
		n := e.Frequency.InstancesPerDay()
		instanceOf[ei] = make([]int, n)
		for j := 0; j < n; j++ {
			instanceOf[ei][j] = varIdx
			ctx.instances = append(ctx.instances, instanceRef{entity: ei, instance: j + 1, varIdx: varIdx})
			varIdx++
		}
	}

	// Ordering (symmetry-breaking: instance j precedes instance j+1) plus
	// any intra-entity Apart spacing.
	for ei, e := range entities {
		n := len(instanceOf[ei])
		if n < 2 {
			continue
		}
		apartHours := uint32(0)
		for _, c := range e.Constraints {
			if c.Type == domain.Apart && c.Ref.WithinGroup && c.Hours > apartHours {
				apartHours = c.Hours
			}
		}
		for j := 0; j < n-1; j++ {
			lo, hi := instanceOf[ei][j], instanceOf[ei][j+1]
			ctx.hardRows = append(ctx.hardRows, diffRow{lhsVar: hi, rhsVar: lo, minutes: int(apartHours) * 60})
		}
	}

	// Cross-entity Before/After/ApartFrom, via target resolution.
	for ei, e := range entities {
		for _, c := range e.Constraints {
			if c.Type == domain.Apart {
				continue // already handled above
			}
			targets, note := resolveTarget(entities, ei, c.Ref.Word)
			ctx.diagnostics = append(ctx.diagnostics, c.String()+" on "+e.Name+": "+note)
			if len(targets) == 0 {
				continue
			}
			for _, srcVar := range instanceOf[ei] {
				for _, ti := range targets {
					for _, tgtVar := range instanceOf[ti] {
						switch c.Type {
						case domain.Before:
							ctx.hardRows = append(ctx.hardRows, diffRow{lhsVar: tgtVar, rhsVar: srcVar, minutes: int(c.Hours) * 60})
						case domain.After:
							ctx.hardRows = append(ctx.hardRows, diffRow{lhsVar: srcVar, rhsVar: tgtVar, minutes: int(c.Hours) * 60})
						case domain.ApartFrom:
							ctx.apartFromPrs = append(ctx.apartFromPrs, apartFromPair{a: srcVar, b: tgtVar, hours: c.Hours})
						}
					}
				}
			}
		}
	}

	// Window groups (soft window adherence), only meaningful when
	// PenaltyWeight > 0 (boundary case: weight 0 disables windows
	// entirely).
	if cfg.PenaltyWeight > 0 {
		for ei, e := range entities {
			w := e.Windows
			if len(w) == 0 {
				w = cfg.GlobalWindows
			}
			if len(w) == 0 {
				continue
			}
			ctx.windowGroups = append(ctx.windowGroups, windowGroup{
				instanceVars:  append([]int(nil), instanceOf[ei]...),
				windows:       w,
				wantsDistinct: len(w) >= len(instanceOf[ei]),
			})
		}
	}

	return ctx
}

func (ctx *buildContext) numInstances() int { return len(ctx.instances) }
