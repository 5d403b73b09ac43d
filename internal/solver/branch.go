package solver

import "github.com/example/daysched/internal/domain"

// maxBranches caps the combinatorial enumeration of ApartFrom directions
// and window assignments. Realistic daily schedules (a handful of
// medications/meals, one or two windows each) stay well under this.
// Above the cap, Solve falls back to one deterministic heuristic branch
// instead of enumerating.
const maxBranches = 20000

// branch is one full set of discrete choices: a direction for every
// ApartFrom pair, and a window assignment for every instance that has
// candidate windows.
type branch struct {
	apartFromDir []bool               // len(ctx.apartFromPrs); true => a before b
	windowOf     map[int]domain.WindowSpec // instanceVar -> chosen window
}

// branches enumerates every combination of apartFromDir and windowOf, or
// falls back to a single heuristic branch if the product would exceed
// maxBranches.
func (ctx *buildContext) branches() []branch {
	apartCount := 1 << len(ctx.apartFromPrs)
	windowCombos := windowAssignments(ctx.windowGroups)

	total := apartCount * len(windowCombos)
	if len(ctx.apartFromPrs) > 20 || total <= 0 || total > maxBranches {
		return []branch{ctx.heuristicBranch()}
	}

	out := make([]branch, 0, total)
	for mask := 0; mask < apartCount; mask++ {
		dirs := make([]bool, len(ctx.apartFromPrs))
		for i := range dirs {
			dirs[i] = mask&(1<<i) != 0
		}
		for _, wc := range windowCombos {
			out = append(out, branch{apartFromDir: dirs, windowOf: wc})
		}
	}
	return out
}

// heuristicBranch is the fallback used when exhaustive enumeration would be
// too large: every ApartFrom pair keeps its declared (source, target)
// order, and the k-th instance of each group (0-based) is assigned window
// k modulo the window count, round-robin, which spreads instances across
// distinct windows when there are enough of them.
func (ctx *buildContext) heuristicBranch() branch {
	dirs := make([]bool, len(ctx.apartFromPrs))
	for i := range dirs {
		dirs[i] = true
	}
	assignment := map[int]domain.WindowSpec{}
	for _, g := range ctx.windowGroups {
		for i, v := range g.instanceVars {
			assignment[v] = g.windows[i%len(g.windows)]
		}
	}
	return branch{apartFromDir: dirs, windowOf: assignment}
}

// windowAssignments returns every valid combination of per-group window
// assignments, as a slice of (instanceVar -> window) maps, taking the
// Cartesian product across independent groups.
func windowAssignments(groups []windowGroup) []map[int]domain.WindowSpec {
	combos := []map[int]domain.WindowSpec{{}}
	for _, g := range groups {
		groupCombos := assignmentsForGroup(g)
		next := make([]map[int]domain.WindowSpec, 0, len(combos)*len(groupCombos))
		for _, base := range combos {
			for _, gc := range groupCombos {
				merged := make(map[int]domain.WindowSpec, len(base)+len(gc))
				for k, v := range base {
					merged[k] = v
				}
				for k, v := range gc {
					merged[k] = v
				}
				next = append(next, merged)
			}
		}
		combos = next
		if len(combos) > maxBranches {
			break
		}
	}
	return combos
}

// assignmentsForGroup enumerates every assignment of windows to the
// instances in one group. When there are at least as many windows as
// instances, only distinct (injective) assignments are produced.
func assignmentsForGroup(g windowGroup) []map[int]domain.WindowSpec {
	var out []map[int]domain.WindowSpec
	used := make([]bool, len(g.windows))
	current := make(map[int]domain.WindowSpec, len(g.instanceVars))

	var rec func(idx int)
	rec = func(idx int) {
		if idx == len(g.instanceVars) {
			snapshot := make(map[int]domain.WindowSpec, len(current))
			for k, v := range current {
				snapshot[k] = v
			}
			out = append(out, snapshot)
			return
		}
		v := g.instanceVars[idx]
		for wi, w := range g.windows {
			if g.wantsDistinct && used[wi] {
				continue
			}
			used[wi] = true
			current[v] = w
			rec(idx + 1)
			delete(current, v)
			used[wi] = false
		}
	}
	rec(0)
	return out
}
