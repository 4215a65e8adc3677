package output

import (
	"context"
	"testing"
)

func TestFormatContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := FormatFromContext(ctx); got != FormatText {
		t.Errorf("default format = %v, want %v", got, FormatText)
	}

	ctx = WithFormat(ctx, FormatYAML)
	if got := FormatFromContext(ctx); got != FormatYAML {
		t.Errorf("format = %v, want %v", got, FormatYAML)
	}
}

func TestQueryContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := QueryFromContext(ctx); got != "" {
		t.Errorf("default query = %q, want empty", got)
	}

	ctx = WithQuery(ctx, ".column")
	if got := QueryFromContext(ctx); got != ".column" {
		t.Errorf("query = %q", got)
	}
}

func TestBoolContextDefaults(t *testing.T) {
	ctx := context.Background()
	if QuietFromContext(ctx) {
		t.Error("quiet should default to false")
	}
	if CompactJSONFromContext(ctx) {
		t.Error("compact JSON should default to false")
	}
	if JSONPathFromContext(ctx) != "" {
		t.Error("jsonpath should default to empty")
	}

	ctx = WithQuiet(ctx, true)
	ctx = WithCompactJSON(ctx, true)
	ctx = WithJSONPath(ctx, "$.x")
	if !QuietFromContext(ctx) || !CompactJSONFromContext(ctx) || JSONPathFromContext(ctx) != "$.x" {
		t.Error("context round trip lost a value")
	}
}
