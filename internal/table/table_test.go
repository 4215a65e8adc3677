package table

import (
	"reflect"
	"testing"
)

func TestModelValid(t *testing.T) {
	tests := []struct {
		name string
		m    Model
		want bool
	}{
		{
			name: "empty model is not valid",
			m:    Model{},
			want: false,
		},
		{
			name: "headers with matching alignments",
			m:    Model{Headers: []string{"A", "B"}, Alignments: []Alignment{AlignLeft, AlignRight}},
			want: true,
		},
		{
			name: "alignment count mismatch",
			m:    Model{Headers: []string{"A", "B"}, Alignments: []Alignment{AlignLeft}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelClone(t *testing.T) {
	orig := Model{
		Headers:    []string{"A", "B"},
		Alignments: []Alignment{AlignLeft, AlignCenter},
		Rows:       [][]string{{"1", "2"}, {"3", "4"}},
	}

	clone := orig.Clone()
	if !reflect.DeepEqual(orig, clone) {
		t.Fatalf("clone differs from original: %+v vs %+v", clone, orig)
	}

	clone.Headers[0] = "changed"
	clone.Alignments[1] = AlignRight
	clone.Rows[0][0] = "changed"

	if orig.Headers[0] != "A" {
		t.Error("mutating clone headers changed the original")
	}
	if orig.Alignments[1] != AlignCenter {
		t.Error("mutating clone alignments changed the original")
	}
	if orig.Rows[0][0] != "1" {
		t.Error("mutating clone rows changed the original")
	}
}

func TestFitRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want int
		out  []string
	}{
		{name: "exact fit untouched", row: []string{"a", "b"}, want: 2, out: []string{"a", "b"}},
		{name: "short row padded", row: []string{"a"}, want: 3, out: []string{"a", "", ""}},
		{name: "long row truncated", row: []string{"a", "b", "c"}, want: 2, out: []string{"a", "b"}},
		{name: "empty row padded", row: []string{}, want: 2, out: []string{"", ""}},
		{name: "truncate to zero", row: []string{"a"}, want: 0, out: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitRow(tt.row, tt.want)
			if len(got) != tt.want {
				t.Fatalf("FitRow returned %d cells, want %d", len(got), tt.want)
			}
			for i := range got {
				if got[i] != tt.out[i] {
					t.Errorf("cell %d = %q, want %q", i, got[i], tt.out[i])
				}
			}
		})
	}
}

func TestNormalizeRows(t *testing.T) {
	m := Model{
		Headers:    []string{"A", "B", "C"},
		Alignments: []Alignment{AlignLeft, AlignLeft, AlignLeft},
		Rows: [][]string{
			{"1"},
			{"1", "2", "3", "4"},
			{"1", "2", "3"},
		},
	}
	m.NormalizeRows()

	want := [][]string{
		{"1", "", ""},
		{"1", "2", "3"},
		{"1", "2", "3"},
	}
	if !reflect.DeepEqual(m.Rows, want) {
		t.Errorf("NormalizeRows() rows = %v, want %v", m.Rows, want)
	}
}
