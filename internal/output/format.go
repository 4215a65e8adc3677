package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is human-readable key-value format (default).
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON format.
	FormatNDJSON Format = "ndjson"
	// FormatTable is tabular format for lists.
	FormatTable Format = "table"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
// Returns error if the format is invalid.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON, "jsonl":
		return FormatNDJSON, nil
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|ndjson|jsonl|table|yaml)")
	}
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a new Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// Print outputs data in the configured format.
// For single objects: JSON or text key-value display.
// For slices: JSON array or table with headers.
func (p *Printer) Print(ctx context.Context, data interface{}) error {
	if data == nil {
		return nil
	}

	if path := JSONPathFromContext(ctx); path != "" {
		extracted, err := applyJSONPath(path, data)
		if err != nil {
			return err
		}
		data = extracted
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(ctx, data)
	case FormatNDJSON:
		return p.printNDJSON(ctx, data)
	case FormatYAML:
		return p.printYAML(data)
	case FormatTable:
		return p.printTable(data)
	case FormatText:
		return p.printText(ctx, data)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printYAML outputs data as YAML.
func (p *Printer) printYAML(data interface{}) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

// printText outputs data as human-readable text.
// If a --query jq filter is present, it applies the filter first, then
// renders the filtered result. Structs and maps become key-value pairs
// with indented nesting, slices of structs/maps become aligned tables,
// scalar slices print one item per line, primitives print directly.
func (p *Printer) printText(ctx context.Context, data interface{}) error {
	if query := QueryFromContext(ctx); query != "" {
		results, err := runQueryRaw(query, data)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		if len(results) == 1 {
			data = results[0]
		} else {
			data = results
		}
	}

	v := derefValue(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Map:
		return p.printTextMap(v, "")
	case reflect.Struct:
		return p.printTextStruct(v, "")
	case reflect.Slice, reflect.Array:
		return p.printTextSlice(v)
	default:
		_, err := fmt.Fprintf(p.w, "%v\n", v)
		return err
	}
}

// printTextMap outputs a map as key-value pairs sorted by key, recursing
// into nested maps and structs with two-space indentation.
func (p *Printer) printTextMap(v reflect.Value, indent string) error {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprintf("%v", keys[i]) < fmt.Sprintf("%v", keys[j])
	})

	for _, key := range keys {
		val := derefValue(v.MapIndex(key))
		if val.IsValid() && (val.Kind() == reflect.Map || val.Kind() == reflect.Struct) {
			if _, err := fmt.Fprintf(p.w, "%s%v:\n", indent, key); err != nil {
				return err
			}
			var err error
			if val.Kind() == reflect.Map {
				err = p.printTextMap(val, indent+"  ")
			} else {
				err = p.printTextStruct(val, indent+"  ")
			}
			if err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(p.w, "%s%v: %s\n", indent, key, p.formatValue(val)); err != nil {
			return err
		}
	}
	return nil
}

// printTextStruct outputs a struct as key-value pairs with indented nested
// values. Field names honor json tags.
func (p *Printer) printTextStruct(v reflect.Value, indent string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldJSONName(field)
		if name == "-" {
			continue
		}

		value := derefValue(v.Field(i))
		if !value.IsValid() {
			if _, err := fmt.Fprintf(p.w, "%s%s: <nil>\n", indent, name); err != nil {
				return err
			}
			continue
		}

		switch value.Kind() {
		case reflect.Struct:
			if _, err := fmt.Fprintf(p.w, "%s%s:\n", indent, name); err != nil {
				return err
			}
			if err := p.printTextStruct(value, indent+"  "); err != nil {
				return err
			}
		case reflect.Map:
			if value.Len() == 0 {
				if _, err := fmt.Fprintf(p.w, "%s%s: {}\n", indent, name); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(p.w, "%s%s:\n", indent, name); err != nil {
				return err
			}
			if err := p.printTextMap(value, indent+"  "); err != nil {
				return err
			}
		case reflect.Slice, reflect.Array:
			if _, err := fmt.Fprintf(p.w, "%s%s: %s\n", indent, name, p.formatValue(value)); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(p.w, "%s%s: %v\n", indent, name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// printTextSlice outputs a slice as a table when items are structs/maps,
// or one item per line for scalars.
func (p *Printer) printTextSlice(v reflect.Value) error {
	if v.Len() == 0 {
		return nil
	}

	first := derefValue(v.Index(0))
	switch first.Kind() {
	case reflect.Struct:
		return p.printTableFromStructs(v)
	case reflect.Map:
		return p.printTableFromMaps(v)
	}

	for i := 0; i < v.Len(); i++ {
		if _, err := fmt.Fprintf(p.w, "%s\n", p.formatValue(v.Index(i))); err != nil {
			return err
		}
	}
	return nil
}

// printTable outputs data in tabular format using text/tabwriter.
// Accepts a pre-rendered Table or a slice of maps or structs.
func (p *Printer) printTable(data interface{}) error {
	switch v := data.(type) {
	case Table:
		return p.printTableFromTable(v)
	case *Table:
		if v == nil {
			return nil
		}
		return p.printTableFromTable(*v)
	}

	v := derefValue(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return errors.New("table format requires a slice or array")
	}
	if v.Len() == 0 {
		return nil
	}

	first := derefValue(v.Index(0))
	switch first.Kind() {
	case reflect.Map:
		return p.printTableFromMaps(v)
	case reflect.Struct:
		return p.printTableFromStructs(v)
	default:
		return errors.New("table format requires slice of maps or structs")
	}
}

// printTableFromMaps outputs a table from a slice of maps. Columns are the
// union of keys across all items, sorted for a stable order.
func (p *Printer) printTableFromMaps(v reflect.Value) error {
	keysMap := make(map[string]bool)
	for i := 0; i < v.Len(); i++ {
		m := derefValue(v.Index(i))
		if m.Kind() != reflect.Map {
			continue
		}
		iter := m.MapRange()
		for iter.Next() {
			keysMap[fmt.Sprintf("%v", iter.Key())] = true
		}
	}

	keys := make([]string, 0, len(keysMap))
	for k := range keysMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	for i, key := range keys {
		if i > 0 {
			_, _ = fmt.Fprint(tw, "\t")
		}
		_, _ = fmt.Fprint(tw, strings.ToUpper(key))
	}
	_, _ = fmt.Fprintln(tw)

	for i := 0; i < v.Len(); i++ {
		m := derefValue(v.Index(i))
		if m.Kind() != reflect.Map {
			continue
		}
		for j, key := range keys {
			if j > 0 {
				_, _ = fmt.Fprint(tw, "\t")
			}
			val := m.MapIndex(reflect.ValueOf(key))
			if val.IsValid() {
				_, _ = fmt.Fprint(tw, p.formatValue(val))
			} else {
				_, _ = fmt.Fprint(tw, "-")
			}
		}
		_, _ = fmt.Fprintln(tw)
	}

	return nil
}

// printTableFromStructs outputs a table from a slice of structs. Column
// names come from json tags when present.
func (p *Printer) printTableFromStructs(v reflect.Value) error {
	first := derefValue(v.Index(0))
	t := first.Type()

	type fieldInfo struct {
		index int
		name  string
	}
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldJSONName(field)
		if name == "-" {
			continue
		}
		fields = append(fields, fieldInfo{index: i, name: name})
	}
	if len(fields) == 0 {
		return errors.New("no exported fields in struct")
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	for i, fi := range fields {
		if i > 0 {
			_, _ = fmt.Fprint(tw, "\t")
		}
		_, _ = fmt.Fprint(tw, strings.ToUpper(fi.name))
	}
	_, _ = fmt.Fprintln(tw)

	for i := 0; i < v.Len(); i++ {
		item := derefValue(v.Index(i))
		if item.Kind() != reflect.Struct {
			continue
		}
		for j, fi := range fields {
			if j > 0 {
				_, _ = fmt.Fprint(tw, "\t")
			}
			_, _ = fmt.Fprint(tw, p.formatValue(item.Field(fi.index)))
		}
		_, _ = fmt.Fprintln(tw)
	}

	return nil
}

// derefValue dereferences pointers and interfaces to the underlying value.
func derefValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// fieldJSONName returns the json tag name for a struct field, or the field
// name. A "-" tag stays "-" so callers can skip the field.
func fieldJSONName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "-"
	}
	if tag != "" {
		if idx := strings.Index(tag, ","); idx > 0 {
			return tag[:idx]
		}
		return tag
	}
	return f.Name
}

// formatValue recursively formats a reflect.Value into a human-readable
// string. Handles pointers, interfaces, slices, maps, and structs instead
// of falling through to Go's default %v.
func (p *Printer) formatValue(v reflect.Value) string {
	v = derefValue(v)
	if !v.IsValid() {
		return "<nil>"
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		var parts []string
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := fieldJSONName(field)
			if name == "-" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s %s", name, p.formatValue(v.Field(i))))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprintf("%v", keys[i]) < fmt.Sprintf("%v", keys[j])
		})
		var parts []string
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%v:%v", key, p.formatValue(v.MapIndex(key))))
		}
		return "map[" + strings.Join(parts, " ") + "]"
	case reflect.Slice, reflect.Array:
		var parts []string
		for i := 0; i < v.Len(); i++ {
			parts = append(parts, p.formatValue(v.Index(i)))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
