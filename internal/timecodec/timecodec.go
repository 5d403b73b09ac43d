// Package timecodec converts between "HH:MM" strings and minutes-from-
// midnight integers. It is pure and never touches the solver: a small
// regex-driven pair of parse/format helpers with strict validation
// (reject hours >23, minutes >59, and malformed strings outright
// instead of clamping).
package timecodec

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/example/daysched/internal/domain"
)

var reHHMM = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseHHMM accepts exactly H{1,2}:M{2}, rejecting hours >23, minutes >59,
// and malformed strings.
func ParseHHMM(s string) (int, error) {
	m := reHHMM.FindStringSubmatch(s)
	if m == nil {
		return 0, &domain.BadTimeError{Input: s}
	}
	h, err := strconv.Atoi(m[1])
	if err != nil || h > 23 {
		return 0, &domain.BadTimeError{Input: s}
	}
	mins, err := strconv.Atoi(m[2])
	if err != nil || mins > 59 {
		return 0, &domain.BadTimeError{Input: s}
	}
	return h*60 + mins, nil
}

// FormatHHMM renders minutes-from-midnight as "HH:MM" with two-digit
// zero-padding. Values outside [0,1440) are formatted as-is for debug
// output; Solve never produces them in a result (invariant 1).
func FormatHHMM(m int) string {
	h := m / 60
	mm := m % 60
	if mm < 0 {
		mm += 60
		h--
	}
	return fmt.Sprintf("%02d:%02d", h, mm)
}
