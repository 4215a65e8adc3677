package convert

import (
	"reflect"
	"testing"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
	"github.com/salmonumbrella/tbl-cli/internal/table"
)

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "outer pipes dropped",
			line: "| a | b |",
			want: []string{"a", "b"},
		},
		{
			name: "no outer pipes",
			line: "a | b",
			want: []string{"a", "b"},
		},
		{
			name: "interior empty cell preserved",
			line: "| a | | b |",
			want: []string{"a", "", "b"},
		},
		{
			name: "leading empty cell after outer pipe preserved",
			line: "| | a |",
			want: []string{"", "a"},
		},
		{
			name: "cells are trimmed",
			line: "|  a  |  b  |",
			want: []string{"a", "b"},
		},
		{
			name: "single cell",
			line: "| only |",
			want: []string{"only"},
		},
		{
			name: "lone pipe",
			line: "|",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitRow(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("splitRow(%q) = %v (%d cells), want %v (%d cells)",
					tt.line, got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cell %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseMarkdown(t *testing.T) {
	input := "| A | B |\n|---|---|\n| 1 | yes |"

	m, err := ParseMarkdown(input)
	if err != nil {
		t.Fatalf("ParseMarkdown() error: %v", err)
	}

	want := table.Model{
		Headers:    []string{"A", "B"},
		Alignments: []table.Alignment{table.AlignLeft, table.AlignLeft},
		Rows:       [][]string{{"1", "✅"}},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("ParseMarkdown() = %+v, want %+v", m, want)
	}
}

func TestParseMarkdownAlignments(t *testing.T) {
	input := "| L | C | R | D |\n| :--- | :---: | ---: | --- |\n| 1 | 2 | 3 | 4 |"

	m, err := ParseMarkdown(input)
	if err != nil {
		t.Fatalf("ParseMarkdown() error: %v", err)
	}

	want := []table.Alignment{table.AlignLeft, table.AlignCenter, table.AlignRight, table.AlignLeft}
	if !reflect.DeepEqual(m.Alignments, want) {
		t.Errorf("alignments = %v, want %v", m.Alignments, want)
	}
}

func TestParseMarkdownRowNormalization(t *testing.T) {
	input := "| A | B | C |\n|---|---|---|\n| 1 |\n| 1 | 2 | 3 | 4 | 5 |\n| 1 | 2 | 3 |"

	m, err := ParseMarkdown(input)
	if err != nil {
		t.Fatalf("ParseMarkdown() error: %v", err)
	}

	want := [][]string{
		{"1", "", ""},
		{"1", "2", "3"},
		{"1", "2", "3"},
	}
	if !reflect.DeepEqual(m.Rows, want) {
		t.Errorf("rows = %v, want %v", m.Rows, want)
	}
}

func TestParseMarkdownBlankLinesIgnored(t *testing.T) {
	input := "\n\n| A |\n\n|---|\n\n| 1 |\n\n"

	m, err := ParseMarkdown(input)
	if err != nil {
		t.Fatalf("ParseMarkdown() error: %v", err)
	}
	if len(m.Headers) != 1 || m.Headers[0] != "A" {
		t.Errorf("headers = %v, want [A]", m.Headers)
	}
	if len(m.Rows) != 1 {
		t.Errorf("rows = %v, want one row", m.Rows)
	}
}

func TestParseMarkdownCellsSanitized(t *testing.T) {
	input := "| Name |\n|---|\n| <script>alert(1)</script> |"

	m, err := ParseMarkdown(input)
	if err != nil {
		t.Fatalf("ParseMarkdown() error: %v", err)
	}
	if got := m.Rows[0][0]; got != "&lt;script&gt;alert(1)&lt;/script&gt;" {
		t.Errorf("cell = %q, want escaped markup", got)
	}
}

func TestParseMarkdownErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  clierrors.ParseKind
	}{
		{
			name:  "header only",
			input: "| A | B |",
			want:  clierrors.ParseMalformedTable,
		},
		{
			name:  "blank lines only",
			input: "\n \n",
			want:  clierrors.ParseMalformedTable,
		},
		{
			name:  "separator count differs",
			input: "| A | B | C |\n|---|---|",
			want:  clierrors.ParseColumnCountMismatch,
		},
		{
			name:  "no header cells",
			input: "|\n|",
			want:  clierrors.ParseMalformedTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarkdown(tt.input)
			if err == nil {
				t.Fatal("ParseMarkdown() should have failed")
			}
			kind, ok := clierrors.ParseKindOf(err)
			if !ok || kind != tt.want {
				t.Errorf("kind = %v, want %v", kind, tt.want)
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	m := table.Model{
		Headers:    []string{"Name", "Done"},
		Alignments: []table.Alignment{table.AlignLeft, table.AlignCenter},
		Rows: [][]string{
			{"Task1", "yes"},
			{"Task2", "❌"},
		},
	}

	want := "| Name | Done |\n" +
		"| :--- | :---: |\n" +
		"| Task1 | ✅ |\n" +
		"| Task2 | ❌ |"
	if got := RenderMarkdown(m); got != want {
		t.Errorf("RenderMarkdown() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderMarkdownAlignmentTokens(t *testing.T) {
	m := table.Model{
		Headers:    []string{"L", "C", "R"},
		Alignments: []table.Alignment{table.AlignLeft, table.AlignCenter, table.AlignRight},
	}

	want := "| L | C | R |\n| :--- | :---: | ---: |"
	if got := RenderMarkdown(m); got != want {
		t.Errorf("RenderMarkdown() = %q, want %q", got, want)
	}
}

func TestRenderMarkdownEmptyModel(t *testing.T) {
	if got := RenderMarkdown(table.Model{}); got != "" {
		t.Errorf("RenderMarkdown(empty) = %q, want empty string", got)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	inputs := []string{
		"| A | B |\n|---|---|\n| 1 | yes |",
		"| L | C | R |\n| :--- | :---: | ---: |\n| a | b | c |\n| d | | f |",
		"| Single |\n|---|",
		"| Task | Done |\n|---|---|\n| write &amp; ship | no |",
	}

	for _, input := range inputs {
		first, err := ParseMarkdown(input)
		if err != nil {
			t.Fatalf("first parse of %q: %v", input, err)
		}
		rendered := RenderMarkdown(first)
		second, err := ParseMarkdown(rendered)
		if err != nil {
			t.Fatalf("second parse of %q: %v", rendered, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("round trip drifted for %q:\nfirst  %+v\nsecond %+v", input, first, second)
		}
	}
}
