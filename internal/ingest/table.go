// Package ingest maps a row-oriented table (first row a header) into a
// list of domain.Entity values. Callers own how the table got built (CSV
// file, hand-written slice, whatever); the table's shape is still part
// of the core's contract, so it lives here rather than in cmd/.
package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/daysched/internal/domain"
	"github.com/example/daysched/internal/exprparser"
)

const (
	colEvent       = "event"
	colEntity      = "entity"
	colCategory    = "category"
	colFrequency   = "frequency"
	colConstraints = "constraints"
	colWindows     = "windows"
)

// FromTable consumes rows[0] as a header and rows[1:] as data, producing
// one domain.Entity per data row. Required columns: Event (or Entity),
// Category, Frequency. Optional: Constraints, Windows, holding JSON arrays
// of quoted strings (e.g. ["≥6h apart", "≥1h before food"]); a missing
// optional column is equivalent to an empty list.
func FromTable(rows [][]string) ([]domain.Entity, error) {
	if len(rows) == 0 {
		return nil, &domain.BadTableError{Row: 0, Column: "", Reason: "table has no header row"}
	}
	header := indexHeader(rows[0])

	nameCol, ok := header[colEvent]
	if !ok {
		nameCol, ok = header[colEntity]
	}
	if !ok {
		return nil, &domain.BadTableError{Row: 0, Column: "Event/Entity", Reason: "required column missing"}
	}
	categoryCol, ok := header[colCategory]
	if !ok {
		return nil, &domain.BadTableError{Row: 0, Column: "Category", Reason: "required column missing"}
	}
	frequencyCol, ok := header[colFrequency]
	if !ok {
		return nil, &domain.BadTableError{Row: 0, Column: "Frequency", Reason: "required column missing"}
	}
	constraintsCol, hasConstraints := header[colConstraints]
	windowsCol, hasWindows := header[colWindows]

	entities := make([]domain.Entity, 0, len(rows)-1)
	seen := make(map[string]bool, len(rows)-1)

	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]

		name, err := cell(row, nameCol, rowIdx, "Event")
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &domain.BadTableError{Row: rowIdx, Column: "Event", Reason: "empty name"}
		}
		if seen[name] {
			return nil, &domain.BadTableError{Row: rowIdx, Column: "Event", Reason: fmt.Sprintf("duplicate entity name %q", name)}
		}
		seen[name] = true

		category, err := cell(row, categoryCol, rowIdx, "Category")
		if err != nil {
			return nil, err
		}

		freqStr, err := cell(row, frequencyCol, rowIdx, "Frequency")
		if err != nil {
			return nil, err
		}
		freq, err := domain.ParseFrequency(freqStr)
		if err != nil {
			return nil, &domain.BadTableError{Row: rowIdx, Column: "Frequency", Reason: err.Error()}
		}

		var constraints []domain.ConstraintExpr
		if hasConstraints {
			raw := optionalCell(row, constraintsCol)
			items, err := parseBracketedStrings(raw)
			if err != nil {
				return nil, &domain.BadTableError{Row: rowIdx, Column: "Constraints", Reason: err.Error()}
			}
			for _, item := range items {
				c, err := exprparser.ParseConstraint(item)
				if err != nil {
					return nil, &domain.BadTableError{Row: rowIdx, Column: "Constraints", Reason: err.Error()}
				}
				constraints = append(constraints, c)
			}
		}

		var windows []domain.WindowSpec
		if hasWindows {
			raw := optionalCell(row, windowsCol)
			items, err := parseBracketedStrings(raw)
			if err != nil {
				return nil, &domain.BadTableError{Row: rowIdx, Column: "Windows", Reason: err.Error()}
			}
			for _, item := range items {
				w, err := exprparser.ParseWindow(item)
				if err != nil {
					return nil, &domain.BadTableError{Row: rowIdx, Column: "Windows", Reason: err.Error()}
				}
				windows = append(windows, w)
			}
		}

		entities = append(entities, domain.Entity{
			Name:        name,
			Category:    strings.TrimSpace(category),
			Frequency:   freq,
			Constraints: constraints,
			Windows:     windows,
		})
	}

	return entities, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(row []string, col, rowIdx int, colName string) (string, error) {
	if col >= len(row) {
		return "", &domain.BadTableError{Row: rowIdx, Column: colName, Reason: "row too short"}
	}
	return row[col], nil
}

func optionalCell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

// parseBracketedStrings parses a cell like `["≥6h apart", "≥1h before food"]`
// or `[]` or `null` or empty. The bracketed form is valid JSON, so
// encoding/json does the real work; this just normalizes the "no value"
// spellings ("null", "[]", "") a table cell might use.
func parseBracketedStrings(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("invalid list %q: %w", raw, err)
	}
	return items, nil
}
