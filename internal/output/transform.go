package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

// normalizeToInterface converts arbitrary data to the map/slice form that
// gojq and jsonpath evaluate over, via a JSON round trip.
func normalizeToInterface(data interface{}) (interface{}, error) {
	switch data.(type) {
	case map[string]interface{}, []interface{}:
		return data, nil
	}
	buf, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	return out, nil
}

// applyJSONPath extracts a value from data using a JSONPath expression.
func applyJSONPath(raw string, data interface{}) (interface{}, error) {
	normalized := normalizeJSONPath(raw)
	if normalized == "" {
		return nil, clierrors.NewUserError("invalid --jsonpath value", "Example: --jsonpath '$.column'")
	}
	normalizedData, err := normalizeToInterface(data)
	if err != nil {
		return nil, err
	}
	value, err := jsonpath.Get(normalized, normalizedData)
	if err != nil {
		return nil, clierrors.WrapUserError(err, "invalid --jsonpath value", "Example: --jsonpath '$.column'")
	}
	return value, nil
}

// normalizeJSONPath accepts the relaxed spellings users actually type
// (".column", "[0]", "column") and anchors them at the root.
func normalizeJSONPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(trimmed, "$"), strings.HasPrefix(trimmed, "@"):
		// keep as-is
	case strings.HasPrefix(trimmed, "."), strings.HasPrefix(trimmed, "["):
		trimmed = "$" + trimmed
	default:
		trimmed = "$." + trimmed
	}
	return trimmed
}
