// Package exprparser parses two small textual sub-languages: constraint
// expressions ("≥6h apart", "≥1h before food") and window expressions
// ("08:00", "12:00-13:00"). Both parsers are pure, case-insensitive
// after trimming, and never touch the solver.
//
// The approach, a handful of package-level compiled regexps, one per
// recognized form, tried in turn inside a single entry function, mirrors
// a small job-block grammar parser (reJobStart, reKV, reRetry, ...) that
// recognizes its own forms the same way.
package exprparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/example/daysched/internal/domain"
	"github.com/example/daysched/internal/timecodec"
)

var (
	reApart      = regexp.MustCompile(`(?i)^(?:>=|≥)\s*(\d+)\s*h\s*apart$`)
	reApartFrom  = regexp.MustCompile(`(?i)^(?:>=|≥)\s*(\d+)\s*h\s*apart\s+from\s+(\S.*)$`)
	reBefore     = regexp.MustCompile(`(?i)^(?:>=|≥)\s*(\d+)\s*h\s*before\s+(\S.*)$`)
	reAfter      = regexp.MustCompile(`(?i)^(?:>=|≥)\s*(\d+)\s*h\s*after\s+(\S.*)$`)
	reWindowSpan = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})$`)
)

// normalize trims whitespace; each expression is parsed independently
// and case-insensitively after trimming. The regexps above carry the
// (?i) flag for the keyword portions; the <word> capture is deliberately
// left in its original case since entity names are case-sensitive and
// target resolution (targets.go) must match them exactly.
func normalize(s string) string {
	return strings.TrimSpace(s)
}

// ParseConstraint recognizes the four constraint forms (apart, apart
// from, before, after). Unrecognized strings yield BadConstraintError.
func ParseConstraint(s string) (domain.ConstraintExpr, error) {
	input := normalize(s)

	if m := reApartFrom.FindStringSubmatch(input); m != nil {
		hours, ok := parseHours(m[1])
		if !ok {
			return domain.ConstraintExpr{}, &domain.BadConstraintError{Input: s}
		}
		return domain.ConstraintExpr{
			Hours: hours,
			Type:  domain.ApartFrom,
			Ref:   domain.ConstraintRef{Word: strings.TrimSpace(m[2])},
		}, nil
	}
	if m := reApart.FindStringSubmatch(input); m != nil {
		hours, ok := parseHours(m[1])
		if !ok {
			return domain.ConstraintExpr{}, &domain.BadConstraintError{Input: s}
		}
		return domain.ConstraintExpr{
			Hours: hours,
			Type:  domain.Apart,
			Ref:   domain.ConstraintRef{WithinGroup: true},
		}, nil
	}
	if m := reBefore.FindStringSubmatch(input); m != nil {
		hours, ok := parseHours(m[1])
		if !ok {
			return domain.ConstraintExpr{}, &domain.BadConstraintError{Input: s}
		}
		return domain.ConstraintExpr{
			Hours: hours,
			Type:  domain.Before,
			Ref:   domain.ConstraintRef{Word: strings.TrimSpace(m[2])},
		}, nil
	}
	if m := reAfter.FindStringSubmatch(input); m != nil {
		hours, ok := parseHours(m[1])
		if !ok {
			return domain.ConstraintExpr{}, &domain.BadConstraintError{Input: s}
		}
		return domain.ConstraintExpr{
			Hours: hours,
			Type:  domain.After,
			Ref:   domain.ConstraintRef{Word: strings.TrimSpace(m[2])},
		}, nil
	}
	return domain.ConstraintExpr{}, &domain.BadConstraintError{Input: s}
}

func parseHours(s string) (uint32, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// ParseWindow recognizes "HH:MM" (an Anchor) or "HH:MM-HH:MM" (a Range,
// requiring start <= end). Everything else, including an inverted range,
// yields BadWindowError.
func ParseWindow(s string) (domain.WindowSpec, error) {
	trimmed := strings.TrimSpace(s)

	if m := reWindowSpan.FindStringSubmatch(trimmed); m != nil {
		start, err := timecodec.ParseHHMM(m[1])
		if err != nil {
			return domain.WindowSpec{}, &domain.BadWindowError{Input: s}
		}
		end, err := timecodec.ParseHHMM(m[2])
		if err != nil {
			return domain.WindowSpec{}, &domain.BadWindowError{Input: s}
		}
		if end < start {
			return domain.WindowSpec{}, &domain.BadWindowError{Input: s}
		}
		return domain.WindowSpec{Lo: start, Hi: end}, nil
	}

	if anchor, err := timecodec.ParseHHMM(trimmed); err == nil {
		return domain.WindowSpec{Lo: anchor, Hi: anchor}, nil
	}

	return domain.WindowSpec{}, &domain.BadWindowError{Input: s}
}
