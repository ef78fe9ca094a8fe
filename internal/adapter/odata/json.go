package odata

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Version tags which envelope a JSON list came in.
type Version int

const (
	VersionUnknown Version = iota
	VersionV4              // {"value": [...]}
	VersionV2              // {"d": {"results": [...]}} or {"d": {...}}
)

func (v Version) String() string {
	switch v {
	case VersionV4:
		return "v4"
	case VersionV2:
		return "v2"
	default:
		return "unknown"
	}
}

// Row is one decoded entity. Lookups ignore key case.
type Row map[string]any

// Get returns the first present, non-null value among names.
func (r Row) Get(names ...string) (any, bool) {
	for _, name := range names {
		if v, ok := r[name]; ok && v != nil {
			return v, true
		}
		for k, v := range r {
			if v != nil && strings.EqualFold(k, name) {
				return v, true
			}
		}
	}
	return nil, false
}

// String returns the first non-empty scalar among names, or "".
func (r Row) String(names ...string) string {
	for _, name := range names {
		v, ok := r.Get(name)
		if !ok {
			continue
		}
		if s := scalar(v); s != "" {
			return s
		}
	}
	return ""
}

// Has reports whether name is present with a non-null value.
func (r Row) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Rows reads a nested collection, either a bare array or a V2 {"results": [...]}.
func (r Row) Rows(name string) []Row {
	v, ok := r.Get(name)
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		v = Row(m)["results"]
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Row, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, Row(m))
		}
	}
	return out
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	}
	return ""
}

// Page is a decoded JSON collection.
type Page struct {
	Version Version
	Rows    []Row
}

// DecodeList reads either envelope, preferring "value". Anything else,
// including malformed JSON, is an empty Unknown page.
func DecodeList(data string) Page {
	var env struct {
		Value json.RawMessage `json:"value"`
		D     json.RawMessage `json:"d"`
	}
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return Page{}
	}

	if rows, ok := decodeRows(env.Value); ok {
		return Page{Version: VersionV4, Rows: rows}
	}

	if isNull(env.D) {
		return Page{}
	}
	var d map[string]json.RawMessage
	if err := json.Unmarshal(env.D, &d); err != nil {
		return Page{}
	}
	if results, ok := d["results"]; ok {
		if rows, ok := decodeRows(results); ok {
			return Page{Version: VersionV2, Rows: rows}
		}
		return Page{}
	}
	var single Row
	if err := json.Unmarshal(env.D, &single); err != nil || len(single) == 0 {
		return Page{}
	}
	return Page{Version: VersionV2, Rows: []Row{single}}
}

func decodeRows(raw json.RawMessage) ([]Row, bool) {
	if isNull(raw) {
		return nil, false
	}
	var rows []Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, true
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
