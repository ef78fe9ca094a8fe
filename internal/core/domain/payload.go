package domain

import "time"

// CachedPayload is one entry of a flow's locally cached bundle.
type CachedPayload struct {
	MessageGUID         string        `json:"message_guid"`
	IntegrationFlowName string        `json:"integration_flow_name"`
	Status              MessageStatus `json:"status"`
	ErrorText           string        `json:"error_text,omitempty"`
	ErrorDetails        string        `json:"error_details,omitempty"`
	LogStart            time.Time     `json:"log_start"`
	// Payload is the first attachment's body. Nil means the message had no
	// attachment or its fetch failed; such entries cannot be resent.
	Payload     *string      `json:"payload"`
	Attachments []Attachment `json:"attachments"`
	Error       string       `json:"error,omitempty"`
	FetchedAt   time.Time    `json:"fetched_at"`
}

func (p CachedPayload) HasPayload() bool {
	return p.Payload != nil
}

// CachedFlow summarises one bundle in the local cache.
type CachedFlow struct {
	IntegrationFlowName string `json:"integration_flow_name"`
	Entries             int    `json:"entries"`
	WithPayload         int    `json:"with_payload"`
}

// ProgressStage names the phase a ProgressEvent belongs to.
type ProgressStage string

const (
	StageFetch   ProgressStage = "fetch"
	StageResend  ProgressStage = "resend"
	StageCleanup ProgressStage = "cleanup"
)

// ProgressEvent reports one finished unit of a long-running operation.
type ProgressEvent struct {
	Stage       ProgressStage `json:"stage"`
	Current     int           `json:"current"`
	Total       int           `json:"total"`
	MessageGUID string        `json:"message_guid,omitempty"`
	Message     string        `json:"message,omitempty"`
}
