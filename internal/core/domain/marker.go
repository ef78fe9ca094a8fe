package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ResentMarker records that a message was resent. ResentAt is Unix millis.
// Writes for the same MessageGUID overwrite, last write wins.
type ResentMarker struct {
	MessageGUID         string `json:"messageGuid"`
	IntegrationFlowName string `json:"integrationFlowName"`
	ResentAt            int64  `json:"resentAt"`
}

// UnmarshalJSON also accepts the "iFlowName" key used by older exports.
func (m *ResentMarker) UnmarshalJSON(data []byte) error {
	var raw struct {
		MessageGUID         string `json:"messageGuid"`
		IntegrationFlowName string `json:"integrationFlowName"`
		IFlowName           string `json:"iFlowName"`
		ResentAt            int64  `json:"resentAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.MessageGUID = raw.MessageGUID
	m.IntegrationFlowName = raw.IntegrationFlowName
	if m.IntegrationFlowName == "" {
		m.IntegrationFlowName = raw.IFlowName
	}
	m.ResentAt = raw.ResentAt
	return nil
}

// Valid reports whether all three fields are present.
func (m ResentMarker) Valid() bool {
	return strings.TrimSpace(m.MessageGUID) != "" &&
		strings.TrimSpace(m.IntegrationFlowName) != "" &&
		m.ResentAt > 0
}

func (m ResentMarker) ResentTime() time.Time {
	return time.UnixMilli(m.ResentAt).UTC()
}

// MarkerExportVersion is the only export format version in use.
const MarkerExportVersion = 1

// ExportDocument is the portable form of the resent-marker audit log.
// Undecodable counts records that were dropped while decoding.
type ExportDocument struct {
	Version      int            `json:"version"`
	ExportedAt   string         `json:"exportedAt"`
	ExportedBy   string         `json:"exportedBy,omitempty"`
	TotalRecords int            `json:"totalRecords"`
	Records      []ResentMarker `json:"records"`
	Undecodable  int            `json:"-"`
}

// UnmarshalJSON accepts exportedAt as Unix millis or as text, and decodes
// records one at a time so a malformed record does not fail the document.
func (d *ExportDocument) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version      int               `json:"version"`
		ExportedAt   json.RawMessage   `json:"exportedAt"`
		ExportedBy   string            `json:"exportedBy"`
		TotalRecords int               `json:"totalRecords"`
		Records      []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	at, err := ParseExportedAt(raw.ExportedAt)
	if err != nil {
		return err
	}
	*d = ExportDocument{
		Version:      raw.Version,
		ExportedAt:   at,
		ExportedBy:   raw.ExportedBy,
		TotalRecords: raw.TotalRecords,
	}
	d.Records, d.Undecodable = DecodeMarkers(raw.Records)
	return nil
}

// ParseExportedAt normalizes an exportedAt value. Numbers are Unix millis
// and come back as RFC 3339; text is kept as is.
func ParseExportedAt(raw json.RawMessage) (string, error) {
	v := strings.TrimSpace(string(raw))
	if v == "" || v == "null" {
		return "", nil
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("exportedAt must be a number or a string")
	}
	ms, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return "", fmt.Errorf("exportedAt %s is not a timestamp", v)
		}
		ms = int64(f)
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339), nil
}

// DecodeMarkers decodes each record on its own and returns how many could
// not be decoded.
func DecodeMarkers(raw []json.RawMessage) ([]ResentMarker, int) {
	out := make([]ResentMarker, 0, len(raw))
	bad := 0
	for _, r := range raw {
		var m ResentMarker
		if err := json.Unmarshal(r, &m); err != nil {
			bad++
			continue
		}
		out = append(out, m)
	}
	return out, bad
}

// ImportMode selects how an ExportDocument is applied.
type ImportMode string

const (
	ImportMerge   ImportMode = "merge"
	ImportReplace ImportMode = "replace"
)

// ParseImportMode defaults an empty mode to merge.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ImportMerge:
		return ImportMerge, nil
	case ImportReplace:
		return ImportReplace, nil
	}
	return "", fmt.Errorf("unknown import mode %q", s)
}

// ImportSummary counts what an import did.
type ImportSummary struct {
	Imported int        `json:"imported"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Total    int        `json:"total"`
	Mode     ImportMode `json:"mode"`
}

// AuditRecord mirrors a marker to the remote audit table.
type AuditRecord struct {
	CompanyCode string
	MessageGUID string
	IFlowName   string
	Status      string
	ResentAt    time.Time
	ResentBy    string
}
