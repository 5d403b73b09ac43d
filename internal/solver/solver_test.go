package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/daysched/internal/domain"
)

func baseConfig() domain.SchedulerConfig {
	return domain.SchedulerConfig{
		DayStartMinutes: 8 * 60,
		DayEndMinutes:   22 * 60,
		Strategy:        domain.Earliest,
		PenaltyWeight:   0.3,
	}
}

// One meal with a range window.
func TestSolve_SingleRangeWindow(t *testing.T) {
	entities := []domain.Entity{
		{
			Name:      "Chicken",
			Category:  "food",
			Frequency: domain.TimesPerDay(1),
			Windows:   []domain.WindowSpec{{Lo: 720, Hi: 780}},
		},
	}
	result, err := Solve(entities, baseConfig(), false)
	require.NoError(t, err)
	require.Len(t, result.ScheduledEvents, 1)
	assert.Equal(t, 720, result.ScheduledEvents[0].TimeMinutes)
	assert.InDelta(t, 0, result.TotalPenalty, 1e-6)
}

// Two doses eight hours apart, Earliest strategy.
func TestSolve_ApartEarliest(t *testing.T) {
	entities := []domain.Entity{
		{
			Name:      "Gabapentin",
			Category:  "med",
			Frequency: domain.TimesPerDay(2),
			Constraints: []domain.ConstraintExpr{
				{Hours: 8, Type: domain.Apart, Ref: domain.ConstraintRef{WithinGroup: true}},
			},
		},
	}
	cfg := baseConfig()
	cfg.PenaltyWeight = 0
	result, err := Solve(entities, cfg, false)
	require.NoError(t, err)
	require.Len(t, result.ScheduledEvents, 2)
	assert.Equal(t, 480, result.ScheduledEvents[0].TimeMinutes)
	assert.Equal(t, 960, result.ScheduledEvents[1].TimeMinutes)
}

// Same spacing as above, Latest strategy.
func TestSolve_ApartLatest(t *testing.T) {
	entities := []domain.Entity{
		{
			Name:      "Gabapentin",
			Category:  "med",
			Frequency: domain.TimesPerDay(2),
			Constraints: []domain.ConstraintExpr{
				{Hours: 8, Type: domain.Apart, Ref: domain.ConstraintRef{WithinGroup: true}},
			},
		},
	}
	cfg := baseConfig()
	cfg.PenaltyWeight = 0
	cfg.Strategy = domain.Latest
	result, err := Solve(entities, cfg, false)
	require.NoError(t, err)
	require.Len(t, result.ScheduledEvents, 2)
	assert.Equal(t, 840, result.ScheduledEvents[0].TimeMinutes)
	assert.Equal(t, 1320, result.ScheduledEvents[1].TimeMinutes)
}

// Infeasible: required span exceeds the day.
func TestSolve_Infeasible(t *testing.T) {
	entities := []domain.Entity{
		{
			Name:      "Gabapentin",
			Category:  "med",
			Frequency: domain.TimesPerDay(3),
			Constraints: []domain.ConstraintExpr{
				{Hours: 8, Type: domain.Apart, Ref: domain.ConstraintRef{WithinGroup: true}},
			},
		},
	}
	_, err := Solve(entities, baseConfig(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInfeasible))
}

// Cross-entity "before", with a windowed target entity.
func TestSolve_CrossEntityBefore(t *testing.T) {
	entities := []domain.Entity{
		{
			Name:      "Antepsin",
			Category:  "med",
			Frequency: domain.TimesPerDay(3),
			Constraints: []domain.ConstraintExpr{
				{Hours: 6, Type: domain.Apart, Ref: domain.ConstraintRef{WithinGroup: true}},
				{Hours: 1, Type: domain.Before, Ref: domain.ConstraintRef{Word: "food"}},
			},
		},
		{
			Name:      "Chicken",
			Category:  "food",
			Frequency: domain.TimesPerDay(2),
			Windows:   []domain.WindowSpec{{Lo: 480, Hi: 480}, {Lo: 1080, Hi: 1200}},
		},
	}
	result, err := Solve(entities, baseConfig(), false)
	require.NoError(t, err)

	byName := map[string][]int{}
	for _, ev := range result.ScheduledEvents {
		byName[ev.EntityName] = append(byName[ev.EntityName], ev.TimeMinutes)
	}
	require.Len(t, byName["Antepsin"], 3)
	require.Len(t, byName["Chicken"], 2)

	for _, at := range byName["Antepsin"] {
		for _, ct := range byName["Chicken"] {
			assert.LessOrEqual(t, at+60, ct, "every Antepsin instance must precede every Chicken instance by >= 60 minutes")
		}
	}
}

// Global windows fallback with distinct-window assignment.
func TestSolve_GlobalWindowsFallback(t *testing.T) {
	entities := []domain.Entity{
		{
			Name:      "Vitamin",
			Category:  "supplement",
			Frequency: domain.TimesPerDay(2),
		},
	}
	cfg := baseConfig()
	cfg.GlobalWindows = []domain.WindowSpec{{Lo: 540, Hi: 540}, {Lo: 1020, Hi: 1020}}

	result, err := Solve(entities, cfg, false)
	require.NoError(t, err)
	require.Len(t, result.ScheduledEvents, 2)
	assert.Equal(t, 540, result.ScheduledEvents[0].TimeMinutes)
	assert.Equal(t, 1020, result.ScheduledEvents[1].TimeMinutes)
	assert.InDelta(t, 0, result.TotalPenalty, 1e-6)

	require.Len(t, result.WindowUsage, 2)
	for _, u := range result.WindowUsage {
		assert.Len(t, u.Instances, 1, "each global window should be used by a distinct instance")
	}
}

// Boundary: TimesPerDay(1) with no windows places the single instance at
// day_start under Earliest.
func TestSolve_SingleNoWindowEarliest(t *testing.T) {
	entities := []domain.Entity{
		{Name: "Vitamin", Category: "supplement", Frequency: domain.TimesPerDay(1)},
	}
	result, err := Solve(entities, baseConfig(), false)
	require.NoError(t, err)
	require.Len(t, result.ScheduledEvents, 1)
	assert.Equal(t, 480, result.ScheduledEvents[0].TimeMinutes)
}

// Boundary: Range(a,a) behaves identically to Anchor(a).
func TestSolve_RangeEqualsAnchor(t *testing.T) {
	entities := []domain.Entity{
		{Name: "Vitamin", Category: "supplement", Frequency: domain.TimesPerDay(1), Windows: []domain.WindowSpec{{Lo: 600, Hi: 600}}},
	}
	result, err := Solve(entities, baseConfig(), false)
	require.NoError(t, err)
	assert.Equal(t, 600, result.ScheduledEvents[0].TimeMinutes)
	assert.InDelta(t, 0, result.TotalPenalty, 1e-6)
}

// Boundary: penalty_weight = 0 disables window influence entirely.
func TestSolve_ZeroPenaltyWeightIgnoresWindows(t *testing.T) {
	entities := []domain.Entity{
		{Name: "Vitamin", Category: "supplement", Frequency: domain.TimesPerDay(1), Windows: []domain.WindowSpec{{Lo: 600, Hi: 600}}},
	}
	cfg := baseConfig()
	cfg.PenaltyWeight = 0
	result, err := Solve(entities, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, 480, result.ScheduledEvents[0].TimeMinutes)
	assert.InDelta(t, 0, result.TotalPenalty, 1e-6)
}

func TestSolve_DuplicateEntityNameRejected(t *testing.T) {
	entities := []domain.Entity{
		{Name: "Vitamin", Frequency: domain.TimesPerDay(1)},
		{Name: "Vitamin", Frequency: domain.TimesPerDay(1)},
	}
	_, err := Solve(entities, baseConfig(), false)
	require.Error(t, err)
	var badConfig *domain.BadConfigError
	assert.ErrorAs(t, err, &badConfig)
}

func TestSolve_InvalidConfigRejected(t *testing.T) {
	cfg := baseConfig()
	cfg.DayEndMinutes = cfg.DayStartMinutes - 1
	_, err := Solve(nil, cfg, false)
	require.Error(t, err)
	var badConfig *domain.BadConfigError
	assert.ErrorAs(t, err, &badConfig)
}
