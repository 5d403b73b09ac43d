package domain

import (
	"errors"
	"fmt"
)

// BadTimeError is returned when a "HH:MM" string is malformed or out of range.
type BadTimeError struct{ Input string }

func (e *BadTimeError) Error() string {
	return fmt.Sprintf("bad time %q: expected H{1,2}:M{2}, hours 0-23, minutes 0-59", e.Input)
}

// BadConstraintError is returned when a constraint string matches none of
// the recognized "apart"/"apart from"/"before"/"after" forms.
type BadConstraintError struct{ Input string }

func (e *BadConstraintError) Error() string {
	return fmt.Sprintf("bad constraint %q", e.Input)
}

// BadWindowError is returned when a window string is malformed, or a range
// has its end before its start.
type BadWindowError struct{ Input string }

func (e *BadWindowError) Error() string {
	return fmt.Sprintf("bad window %q", e.Input)
}

// BadFrequencyError is returned when a frequency string isn't "N x daily".
type BadFrequencyError struct{ Input string }

func (e *BadFrequencyError) Error() string {
	return fmt.Sprintf("bad frequency %q: expected 'N x daily'", e.Input)
}

// BadTableError is returned by the table ingester, pinpointing the row and
// column at fault.
type BadTableError struct {
	Row    int
	Column string
	Reason string
}

func (e *BadTableError) Error() string {
	return fmt.Sprintf("bad table row %d, column %q: %s", e.Row, e.Column, e.Reason)
}

// BadConfigError is returned when a SchedulerConfig fails validation.
type BadConfigError struct{ Reason string }

func (e *BadConfigError) Error() string {
	return fmt.Sprintf("bad config: %s", e.Reason)
}

// SolverError wraps an underlying LP/MILP backend fault that isn't a
// legitimate Infeasible result (e.g. an unbounded report, which should never
// happen given bounded clock variables and indicates a modeling bug).
type SolverError struct{ Msg string }

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver error: %s", e.Msg)
}

// ErrInfeasible is returned when no assignment of clock variables satisfies
// every hard constraint.
var ErrInfeasible = errors.New("infeasible: no schedule satisfies the hard constraints")
