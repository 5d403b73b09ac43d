package solver

import "github.com/example/daysched/internal/domain"

// resolveTarget resolves a cross-entity reference word: it matches the
// single entity with that exact name if one exists, else every OTHER
// entity whose category equals the word. Either way the source entity
// itself is excluded from its own target set (self-instance pairs are
// excluded; other entities of the same category are included).
//
// It returns the matched entity indices and a human-readable resolution
// note for the debug dump. An empty slice plus a non-empty diagnostic
// means the word resolved to nothing: unresolved cross-entity names do
// not abort, the constraint is elided and the diagnostic goes into the
// debug dump (logged only when Solve runs with debug set).
func resolveTarget(entities []domain.Entity, selfIdx int, word string) (targets []int, diagnostic string) {
	for i, e := range entities {
		if i != selfIdx && e.Name == word {
			return []int{i}, "entity \"" + word + "\" resolved by name"
		}
	}
	for i, e := range entities {
		if i != selfIdx && e.Category == word {
			targets = append(targets, i)
		}
	}
	if len(targets) > 0 {
		return targets, "\"" + word + "\" resolved as category"
	}
	return nil, "\"" + word + "\" did not resolve to any entity or category; constraint dropped"
}
