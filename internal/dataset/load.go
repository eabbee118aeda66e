package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ParseError reports input that is neither a JSON object, a JSON array of
// objects, nor line-delimited JSON objects.
type ParseError struct {
	Path string
	// Line is the 1-based line of a line-delimited record, 0 for whole-document errors.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", where, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errNotObject    = errors.New("record is not a JSON object")
	errTopLevelType = errors.New("top-level value must be an object or an array of objects")
)

// Load reads and parses the file at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return ds, nil
}

// Parse reads a whole JSON document (an object or an array of objects) or,
// when the input is not a single JSON value, line-delimited JSON objects.
// Blank lines are skipped. Empty input yields an empty dataset.
func Parse(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if json.Valid(data) {
		rows, err := parseDocument(data)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		return New(rows), nil
	}

	rows, err := parseLines(data)
	if err != nil {
		return nil, err
	}
	return New(rows), nil
}

func parseDocument(data []byte) ([]Row, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch trimmed[0] {
	case '{':
		row, err := parseObject(trimmed)
		if err != nil {
			return nil, err
		}
		return []Row{row}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(items))
		for i, item := range items {
			row, err := parseObject(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			rows = append(rows, row)
		}
		return rows, nil
	default:
		return nil, errTopLevelType
	}
}

func parseLines(data []byte) ([]Row, error) {
	var rows []Row
	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return nil, &ParseError{Line: i + 1, Err: errors.New("invalid JSON")}
		}
		row, err := parseObject(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseObject decodes one JSON object, keeping its key order. Numbers stay
// json.Number with their source text, including values outside float64
// range.
func parseObject(raw []byte) (Row, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Row{}, errNotObject
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return Row{}, err
	}

	keys, err := objectKeys(raw)
	if err != nil {
		return Row{}, err
	}
	return NewRow(keys, fields)
}

// objectKeys lists the top-level keys of a JSON object in source order.
func objectKeys(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
