package domain

import (
	"sort"
	"strings"
)

const unknownFlow = "Unknown iFlow"

// ResenderMessage is one message held by the resender flow's data store.
type ResenderMessage struct {
	ID          string        `json:"id,omitempty"`
	EntryID     string        `json:"entry_id"`
	IFlowID     string        `json:"iflow_id,omitempty"`
	IFlowName   string        `json:"iflow_name"`
	MessageGUID string        `json:"message_guid"`
	Status      MessageStatus `json:"status"`
}

// FlowOverview groups resender messages of one flow.
type FlowOverview struct {
	IFlowName string            `json:"iflow_name"`
	Total     int               `json:"total"`
	Completed int               `json:"completed"`
	Failed    int               `json:"failed"`
	Messages  []ResenderMessage `json:"messages"`
}

// SummarizeResender groups messages by flow name, sorted by name.
func SummarizeResender(msgs []ResenderMessage) []FlowOverview {
	byFlow := map[string]*FlowOverview{}
	for _, m := range msgs {
		name := strings.TrimSpace(m.IFlowName)
		if name == "" {
			name = unknownFlow
		}
		ov, ok := byFlow[name]
		if !ok {
			ov = &FlowOverview{IFlowName: name}
			byFlow[name] = ov
		}
		ov.Total++
		ov.Messages = append(ov.Messages, m)
		switch MessageStatus(strings.ToUpper(strings.TrimSpace(string(m.Status)))) {
		case MessageStatusCompleted:
			ov.Completed++
		case MessageStatusFailed:
			ov.Failed++
		}
	}

	out := make([]FlowOverview, 0, len(byFlow))
	for _, ov := range byFlow {
		out = append(out, *ov)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IFlowName < out[j].IFlowName })
	return out
}
