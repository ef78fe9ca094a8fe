package dto

import (
	"encoding/json"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
)

// MessagesQuery is the query of GET /flows/:flow/messages.
type MessagesQuery struct {
	Top int `form:"top" binding:"omitempty,min=1,max=1000"`
}

// DeleteEntriesRequest is the body of POST /flows/:flow/payloads/delete.
type DeleteEntriesRequest struct {
	MessageGUIDs []string `json:"message_guids" binding:"required,min=1,dive,required,safe_id"`
}

// DeleteEntriesResponse reports how many cached entries were removed.
type DeleteEntriesResponse struct {
	Deleted int `json:"deleted"`
}

// StatusResponse is returned by operations without a payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// PayloadBundleResponse is one flow's cached payload bundle.
type PayloadBundleResponse struct {
	IntegrationFlowName string                 `json:"integration_flow_name"`
	Total               int                    `json:"total"`
	WithPayload         int                    `json:"with_payload"`
	Entries             []domain.CachedPayload `json:"entries"`
}

// NewPayloadBundleResponse counts the entries of a bundle.
func NewPayloadBundleResponse(flow string, entries []domain.CachedPayload) PayloadBundleResponse {
	resp := PayloadBundleResponse{IntegrationFlowName: flow, Total: len(entries), Entries: entries}
	for _, e := range entries {
		if e.HasPayload() {
			resp.WithPayload++
		}
	}
	return resp
}

// ResendItemRequest selects one cached message.
type ResendItemRequest struct {
	MessageGUID         string `json:"message_guid" binding:"required,safe_id"`
	IntegrationFlowName string `json:"integration_flow_name" binding:"required,flow_name"`
	EntryID             string `json:"entry_id" binding:"omitempty,max=200"`
}

// ResendRequest is the body of POST /resend.
type ResendRequest struct {
	Messages []ResendItemRequest `json:"messages" binding:"required,min=1,max=500,dive"`
}

func (r ResendRequest) Items() []domain.ResendItem {
	items := make([]domain.ResendItem, 0, len(r.Messages))
	for _, m := range r.Messages {
		items = append(items, domain.ResendItem{
			MessageGUID:         m.MessageGUID,
			IntegrationFlowName: m.IntegrationFlowName,
			EntryID:             m.EntryID,
		})
	}
	return items
}

// MarkersQuery is the query of GET /resent.
type MarkersQuery struct {
	Flow string `form:"flow" binding:"omitempty,flow_name"`
}

// ImportQuery is the query of POST /resent/import.
type ImportQuery struct {
	Mode string `form:"mode" binding:"omitempty,oneof=merge replace"`
}

// ImportRequest is an export document plus the count the caller expects.
// exportedAt may be Unix millis or text; records are decoded one by one.
type ImportRequest struct {
	Version      int               `json:"version" binding:"required"`
	ExportedAt   json.RawMessage   `json:"exportedAt"`
	ExportedBy   string            `json:"exportedBy"`
	TotalRecords int               `json:"totalRecords"`
	Records      []json.RawMessage `json:"records" binding:"required"`
}

func (r ImportRequest) Document() (domain.ExportDocument, error) {
	at, err := domain.ParseExportedAt(r.ExportedAt)
	if err != nil {
		return domain.ExportDocument{}, err
	}
	records, bad := domain.DecodeMarkers(r.Records)
	return domain.ExportDocument{
		Version:      r.Version,
		ExportedAt:   at,
		ExportedBy:   r.ExportedBy,
		TotalRecords: r.TotalRecords,
		Records:      records,
		Undecodable:  bad,
	}, nil
}

// RelayRequest is the body of POST /relay.
type RelayRequest struct {
	Type     string `json:"type" binding:"required"`
	Method   string `json:"method" binding:"omitempty,oneof=GET POST PUT PATCH DELETE HEAD"`
	URL      string `json:"url" binding:"required,safe_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Body     string `json:"body"`
	Accept   string `json:"accept"`
}

func (r RelayRequest) ToPort() ports.RelayRequest {
	return ports.RelayRequest{
		Type:     r.Type,
		Method:   r.Method,
		URL:      r.URL,
		Username: r.Username,
		Password: r.Password,
		Body:     r.Body,
		Accept:   r.Accept,
	}
}
