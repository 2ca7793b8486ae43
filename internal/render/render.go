// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

const (
	// JSON renders indented JSON.
	JSON Format = "json"
	// YAML renders a YAML document.
	YAML Format = "yaml"
	// Table renders lists of objects as a table and objects as key/value rows.
	Table Format = "table"
	// Text renders scalars bare, lists of scalars one per line and everything
	// else as JSON.
	Text Format = "text"

	// metadataField is attached to every SDK response and carries nothing
	// worth printing.
	metadataField = "ResultMetadata"
)

var (
	// ErrUnknownFormat is returned for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrInvalidQuery is returned when a JMESPath expression does not compile
	// or cannot be evaluated.
	ErrInvalidQuery = errors.New("invalid query")
)

// Format selects the output encoding.
type Format string

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{JSON, YAML, Table, Text}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats(), f) {
		return f, nil
	}
	return "", fmt.Errorf("%w %q (expected json, yaml, table or text)", ErrUnknownFormat, s)
}

// Normalize converts v to plain JSON data (maps, slices, strings, float64,
// bool and nil), dropping SDK response metadata.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	if m, ok := out.(map[string]any); ok {
		delete(m, metadataField)
	}
	return out, nil
}

// Query evaluates a JMESPath expression against the normalized value.
func Query(v any, expr string) (any, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	normalized, err := Normalize(v)
	if err != nil {
		return nil, err
	}
	out, err := compiled.Search(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return out, nil
}

// Write prints v to w in the requested format.
func Write(w io.Writer, format Format, v any) error {
	normalized, err := Normalize(v)
	if err != nil {
		return err
	}

	switch format {
	case JSON, "":
		return writeJSON(w, normalized)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(normalized); err != nil {
			return fmt.Errorf("failed to write YAML: %w", err)
		}
		return enc.Close()
	case Table:
		return writeTable(w, normalized)
	case Text:
		return writeText(w, normalized)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func writeText(w io.Writer, v any) error {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		if !slices.ContainsFunc(val, isComposite) {
			for _, item := range val {
				if _, err := fmt.Fprintln(w, scalar(item)); err != nil {
					return err
				}
			}
			return nil
		}
	case map[string]any:
	default:
		_, err := fmt.Fprintln(w, scalar(val))
		return err
	}
	return writeJSON(w, v)
}

// writeTable renders a list of objects with one column per key, an object
// as KEY/VALUE rows, and anything else as text.
func writeTable(w io.Writer, v any) error {
	table := tablewriter.NewWriter(w)

	switch val := v.(type) {
	case []any:
		if len(val) == 0 {
			return nil
		}
		rows := make([]map[string]any, 0, len(val))
		for _, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return writeText(w, v)
			}
			rows = append(rows, m)
		}
		columns := columnsOf(rows)
		table.Header(columns)
		for _, row := range rows {
			cells := make([]string, 0, len(columns))
			for _, col := range columns {
				cells = append(cells, cell(row[col]))
			}
			if err := table.Append(cells); err != nil {
				return fmt.Errorf("failed to build table: %w", err)
			}
		}
	case map[string]any:
		keys := slices.Sorted(maps.Keys(val))
		table.Header([]string{"Key", "Value"})
		for _, k := range keys {
			if val[k] == nil {
				continue
			}
			if err := table.Append([]string{k, cell(val[k])}); err != nil {
				return fmt.Errorf("failed to build table: %w", err)
			}
		}
	default:
		return writeText(w, v)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// columnsOf returns the union of keys holding non-null scalars, in sorted
// order. Nested values are left to the JSON and YAML formats.
func columnsOf(rows []map[string]any) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k, v := range row {
			if v != nil && !isComposite(v) {
				seen[k] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func cell(v any) string {
	if !isComposite(v) {
		return scalar(v)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(buf.String())
}

func isComposite(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
