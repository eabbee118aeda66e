package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ID identifies a row by content. Rows with equal content share an ID, so
// bookmarking one of them bookmarks all of them.
type ID string

// Row is one loaded record: column names in source order plus their values.
// Values are the generic JSON forms (string, json.Number, bool, nil,
// map[string]any, []any). A Row is never modified after construction.
type Row struct {
	keys   []string
	fields map[string]any
	id     ID
}

// NewRow builds a row from fields, ordering columns by keys. Fields missing
// from keys are appended in sorted order; keys without a field are dropped.
func NewRow(keys []string, fields map[string]any) (Row, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	ordered := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, k := range keys {
		if _, ok := fields[k]; !ok || seen[k] {
			continue
		}
		seen[k] = true
		ordered = append(ordered, k)
	}
	if len(ordered) < len(fields) {
		rest := make([]string, 0, len(fields)-len(ordered))
		for k := range fields {
			if !seen[k] {
				rest = append(rest, k)
			}
		}
		sort.Strings(rest)
		ordered = append(ordered, rest...)
	}

	canonical, err := json.MarshalWithOption(fields, json.DisableHTMLEscape())
	if err != nil {
		return Row{}, fmt.Errorf("canonical row encoding: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return Row{
		keys:   ordered,
		fields: fields,
		id:     ID(hex.EncodeToString(sum[:])),
	}, nil
}

// Identify returns the content identity of r. It does not depend on key
// order and is stable for equal content.
func Identify(r Row) ID { return r.id }

func (r Row) ID() ID { return r.id }

// Keys returns the column names of the row in source order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the raw value of a column.
func (r Row) Get(col string) (any, bool) {
	v, ok := r.fields[col]
	return v, ok
}

// Value returns the display string of a column; a missing column is "".
func (r Row) Value(col string) string {
	v, ok := r.fields[col]
	if !ok {
		return ""
	}
	return Stringify(v)
}

// PrettyJSON renders the row as indented JSON keeping the source key order
// at the top level. Nested objects are rendered with sorted keys.
func (r Row) PrettyJSON() (string, error) {
	if len(r.keys) == 0 {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, k := range r.keys {
		key, err := json.MarshalWithOption(k, json.DisableHTMLEscape())
		if err != nil {
			return "", fmt.Errorf("encode key %q: %w", k, err)
		}
		val, err := json.MarshalIndentWithOption(r.fields[k], "  ", "  ", json.DisableHTMLEscape())
		if err != nil {
			return "", fmt.Errorf("encode value of %q: %w", k, err)
		}
		b.WriteString("  ")
		b.Write(key)
		b.WriteString(": ")
		b.Write(val)
		if i < len(r.keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

// Stringify renders a JSON value for display, filtering and export.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	default:
		b, err := json.MarshalWithOption(t, json.DisableHTMLEscape())
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
