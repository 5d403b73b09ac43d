package exprparser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/daysched/internal/domain"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.ConstraintExpr
		wantErr bool
	}{
		{
			name:  "apart",
			input: "≥6h apart",
			want:  domain.ConstraintExpr{Hours: 6, Type: domain.Apart, Ref: domain.ConstraintRef{WithinGroup: true}},
		},
		{
			name:  "ascii gte apart",
			input: ">=6h apart",
			want:  domain.ConstraintExpr{Hours: 6, Type: domain.Apart, Ref: domain.ConstraintRef{WithinGroup: true}},
		},
		{
			name:  "apart from preserves target case",
			input: "≥4h apart from Gabapentin",
			want:  domain.ConstraintExpr{Hours: 4, Type: domain.ApartFrom, Ref: domain.ConstraintRef{Word: "Gabapentin"}},
		},
		{
			name:  "before",
			input: "≥1h before food",
			want:  domain.ConstraintExpr{Hours: 1, Type: domain.Before, Ref: domain.ConstraintRef{Word: "food"}},
		},
		{
			name:  "after",
			input: "≥2h after food",
			want:  domain.ConstraintExpr{Hours: 2, Type: domain.After, Ref: domain.ConstraintRef{Word: "food"}},
		},
		{
			name:  "keyword case insensitive",
			input: "≥2H AFTER Food",
			want:  domain.ConstraintExpr{Hours: 2, Type: domain.After, Ref: domain.ConstraintRef{Word: "Food"}},
		},
		{
			name:    "unrecognized form",
			input:   "sometime later",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConstraint(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.WindowSpec
		wantErr bool
	}{
		{name: "anchor", input: "08:00", want: domain.WindowSpec{Lo: 480, Hi: 480}},
		{name: "range", input: "12:00-13:00", want: domain.WindowSpec{Lo: 720, Hi: 780}},
		{name: "range with spaces", input: "12:00 - 13:00", want: domain.WindowSpec{Lo: 720, Hi: 780}},
		{name: "inverted range rejected", input: "13:00-12:00", wantErr: true},
		{name: "garbage", input: "whenever", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
