package domain

import (
	"regexp"
	"strconv"
	"time"
)

// MessageStatus is the processing state of a message processing log.
type MessageStatus string

const (
	MessageStatusCompleted  MessageStatus = "COMPLETED"
	MessageStatusFailed     MessageStatus = "FAILED"
	MessageStatusEscalated  MessageStatus = "ESCALATED"
	MessageStatusDiscarded  MessageStatus = "DISCARDED"
	MessageStatusRetry      MessageStatus = "RETRY"
	MessageStatusProcessing MessageStatus = "PROCESSING"
)

// IntegrationFlow is a deployed flow as listed by the tenant.
type IntegrationFlow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SymbolicName string `json:"symbolic_name"`
}

// RuntimeLocation is a Cloud Foundry worker location hosting flows.
type RuntimeLocation struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// FlowCounts aggregates message counts for one flow. DISCARDED messages
// count toward neither field.
type FlowCounts struct {
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Failed    int    `json:"failed"`
}

// FailedCount is one row of the failed-messages overview.
type FailedCount struct {
	Name   string `json:"name"`
	Failed int    `json:"failed"`
}

// MessageLogEntry is one processing attempt of one business message.
type MessageLogEntry struct {
	MessageGUID          string        `json:"message_guid"`
	IntegrationFlowName  string        `json:"integration_flow_name"`
	Status               MessageStatus `json:"status"`
	LogStart             time.Time     `json:"log_start"`
	ErrorText            string        `json:"error_text,omitempty"`
	ErrorDetails         string        `json:"error_details,omitempty"`
	CorrelationID        string        `json:"correlation_id,omitempty"`
	ApplicationMessageID string        `json:"application_message_id,omitempty"`
}

// Attachment is the metadata of one MPL attachment.
type Attachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
}

var legacyDateRe = regexp.MustCompile(`^/Date\((-?\d+)([+-]\d{4})?\)/$`)

var odataTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// ParseODataTime reads both the V2 "/Date(ms)/" form and ISO timestamps.
// Unparseable input yields the zero time.
func ParseODataTime(s string) time.Time {
	if m := legacyDateRe.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}
		}
		return time.UnixMilli(ms).UTC()
	}
	for _, layout := range odataTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ShortGUID is the 8-character prefix used in progress output.
func ShortGUID(guid string) string {
	if len(guid) <= 8 {
		return guid
	}
	return guid[:8]
}
