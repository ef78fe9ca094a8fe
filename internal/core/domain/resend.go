package domain

// ResendItem is one operator-selected message.
type ResendItem struct {
	MessageGUID         string `json:"message_guid"`
	IntegrationFlowName string `json:"integration_flow_name"`
	// EntryID is the remote data store entry of the message. It defaults to
	// the message guid.
	EntryID string `json:"entry_id,omitempty"`
}

// DataStoreEntryID returns the id sent to the marker-delete endpoint.
func (i ResendItem) DataStoreEntryID() string {
	if i.EntryID != "" {
		return i.EntryID
	}
	return i.MessageGUID
}

// ResendResult is the outcome of one ResendItem. Index is the item's
// position in the request.
type ResendResult struct {
	Index               int         `json:"index"`
	MessageGUID         string      `json:"message_guid"`
	IntegrationFlowName string      `json:"integration_flow_name"`
	Success             bool        `json:"success"`
	Error               string      `json:"error,omitempty"`
	EndpointURL         string      `json:"endpoint_url,omitempty"`
	AdapterType         AdapterType `json:"adapter_type,omitempty"`
}

// ResendReport aggregates a resend run. CleanupWarning is set when the
// post-resend cleanup failed; the successes stand regardless.
type ResendReport struct {
	SuccessCount   int            `json:"success_count"`
	FailedCount    int            `json:"failed_count"`
	Total          int            `json:"total"`
	Results        []ResendResult `json:"results"`
	DeletedEntries int            `json:"deleted_entries"`
	CleanupWarning string         `json:"cleanup_warning,omitempty"`
}
