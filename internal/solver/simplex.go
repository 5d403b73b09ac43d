package solver

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

type relation int

const (
	relLE relation = iota
	relGE
	relEQ
)

// lpRow is one linear constraint: sum(coef[j]*x[j]) REL rhs.
type lpRow struct {
	coef []float64
	rel  relation
	rhs  float64
}

// lpProblem is a minimization problem: minimize sum(obj[j]*x[j]) subject to
// rows, x >= 0.
type lpProblem struct {
	numVars int
	obj     []float64
	rows    []lpRow
}

type lpStatus int

const (
	lpOptimal lpStatus = iota
	lpInfeasible
	lpUnbounded
)

type lpSolution struct {
	x      []float64 // length numVars
	value  float64
	status lpStatus
}

const eps = 1e-7

// solve hands the problem to gonum's lp.Simplex, which wants standard
// equality form (A x = b, x >= 0). LE rows get a slack column, GE rows a
// surplus column; EQ rows pass through unchanged. Rows with a negative
// rhs are negated first (flipping LE/GE) so every b entry is >= 0.
func (p *lpProblem) solve() lpSolution {
	numStructural := p.numVars
	numRows := len(p.rows)

	rows := make([]lpRow, numRows)
	for i, r := range p.rows {
		if r.rhs < 0 {
			coef := make([]float64, len(r.coef))
			for j, c := range r.coef {
				coef[j] = -c
			}
			rel := r.rel
			switch rel {
			case relLE:
				rel = relGE
			case relGE:
				rel = relLE
			}
			rows[i] = lpRow{coef: coef, rel: rel, rhs: -r.rhs}
		} else {
			rows[i] = r
		}
	}

	extraCol := make([]int, numRows) // -1 if the row needs no slack/surplus column
	col := numStructural
	for i, r := range rows {
		switch r.rel {
		case relLE, relGE:
			extraCol[i] = col
			col++
		case relEQ:
			extraCol[i] = -1
		}
	}
	numCols := col

	a := mat.NewDense(numRows, numCols, nil)
	b := make([]float64, numRows)
	for i, r := range rows {
		for j, c := range r.coef {
			a.Set(i, j, c)
		}
		switch r.rel {
		case relLE:
			a.Set(i, extraCol[i], 1)
		case relGE:
			a.Set(i, extraCol[i], -1)
		}
		b[i] = r.rhs
	}

	c := make([]float64, numCols)
	copy(c, p.obj)

	optF, optX, err := lp.Simplex(c, a, b, eps, nil)
	switch {
	case err == nil:
		return lpSolution{x: optX[:numStructural], value: optF, status: lpOptimal}
	case errors.Is(err, lp.ErrInfeasible):
		return lpSolution{status: lpInfeasible}
	case errors.Is(err, lp.ErrUnbounded):
		return lpSolution{status: lpUnbounded}
	default:
		// A singular or degenerate A matrix would be a modeling bug in
		// build.go/branch.go, not a legitimate infeasible branch; treat
		// it the same as infeasible so Solve tries the next branch
		// rather than reporting a false Unbounded/SolverError.
		return lpSolution{status: lpInfeasible}
	}
}
