package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplexMinimize(t *testing.T) {
	// minimize x0 + x1 subject to x0 + 2x1 >= 10, x0 >= 2
	prob := lpProblem{
		numVars: 2,
		obj:     []float64{1, 1},
		rows: []lpRow{
			{coef: []float64{1, 2}, rel: relGE, rhs: 10},
			{coef: []float64{1, 0}, rel: relGE, rhs: 2},
		},
	}
	sol := prob.solve()
	assert.Equal(t, lpOptimal, sol.status)
	assert.InDelta(t, 6, sol.value, 1e-4)
}

func TestSimplexInfeasible(t *testing.T) {
	// x0 >= 10 and x0 <= 1 can never both hold.
	prob := lpProblem{
		numVars: 1,
		obj:     []float64{1},
		rows: []lpRow{
			{coef: []float64{1}, rel: relGE, rhs: 10},
			{coef: []float64{1}, rel: relLE, rhs: 1},
		},
	}
	sol := prob.solve()
	assert.Equal(t, lpInfeasible, sol.status)
}

func TestSimplexEquality(t *testing.T) {
	// x0 + x1 = 8, minimize x0 - x1 => push x0 to 0, x1 to 8.
	prob := lpProblem{
		numVars: 2,
		obj:     []float64{1, -1},
		rows: []lpRow{
			{coef: []float64{1, 1}, rel: relEQ, rhs: 8},
		},
	}
	sol := prob.solve()
	assert.Equal(t, lpOptimal, sol.status)
	assert.InDelta(t, -8, sol.value, 1e-4)
	assert.InDelta(t, 0, sol.x[0], 1e-4)
	assert.InDelta(t, 8, sol.x[1], 1e-4)
}
