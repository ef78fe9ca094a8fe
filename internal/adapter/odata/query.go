package odata

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cpi-resender/internal/core/domain"
)

// DefaultTop is the page size used when a caller asks for no limit.
const DefaultTop = 200

// EscapeLiteral doubles every single quote, as OData string literals require.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Encode percent-encodes a query value the way encodeURIComponent does for
// the characters that matter here (spaces become %20, not +).
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FlowStatusFilter builds the MessageProcessingLogs filter for one flow and status.
func FlowStatusFilter(flow string, status domain.MessageStatus) string {
	return fmt.Sprintf("IntegrationFlowName eq '%s' and Status eq '%s' and Status ne '%s'",
		EscapeLiteral(flow), EscapeLiteral(string(status)), domain.MessageStatusDiscarded)
}

// NameFilter matches a directory entry by its exact name.
func NameFilter(name string) string {
	return fmt.Sprintf("Name eq '%s'", EscapeLiteral(strings.TrimSpace(name)))
}

// key quotes and encodes an entity key.
func key(id string) string {
	return "'" + url.PathEscape(EscapeLiteral(id)) + "'"
}

func CountURL(odataBase, flow string, status domain.MessageStatus) string {
	return odataBase + "MessageProcessingLogs/$count?$filter=" + Encode(FlowStatusFilter(flow, status))
}

// ListURL lists newest-first; asJSON adds $format=json.
func ListURL(odataBase, flow string, status domain.MessageStatus, top int, asJSON bool) string {
	if top <= 0 {
		top = DefaultTop
	}
	u := odataBase + "MessageProcessingLogs?$filter=" + Encode(FlowStatusFilter(flow, status)) +
		"&$orderby=" + Encode("LogStart desc") +
		"&$top=" + strconv.Itoa(top)
	if asJSON {
		u += "&$format=json"
	}
	return u
}

func RunsURL(odataBase, guid string) string {
	return odataBase + "MessageProcessingLogs(" + key(guid) + ")/Runs?$inlinecount=allpages&$format=json&$top=200"
}

func RunStepsURL(odataBase, runID string) string {
	return odataBase + "MessageProcessingLogRuns(" + key(runID) + ")/RunSteps?$inlinecount=allpages&$format=json"
}

// ErrorInformationURLs returns both key syntaxes, in lookup order.
func ErrorInformationURLs(odataBase, guid string, asJSON bool) []string {
	suffix := "/ErrorInformation"
	if asJSON {
		suffix += "?$format=json"
	}
	return []string{
		odataBase + "MessageProcessingLogs(" + key(guid) + ")" + suffix,
		odataBase + "MessageProcessingLogs(MessageGuid=" + key(guid) + ")" + suffix,
	}
}

func AttachmentsURL(apiBase, guid string) string {
	return apiBase + "MessageProcessingLogs(" + key(guid) + ")/Attachments?$format=json"
}

func AttachmentValueURL(payloadBase, attachmentID string) string {
	return payloadBase + "MessageProcessingLogAttachments(" + key(attachmentID) + ")/$value"
}

func ServiceEndpointsURL(apiBase, name string) string {
	return apiBase + "ServiceEndpoints?$select=EntryPoints/Name,EntryPoints/Url&$expand=EntryPoints&$filter=" + Encode(NameFilter(name))
}

func RuntimeArtifactsURL(apiBase, name string) string {
	return apiBase + "IntegrationRuntimeArtifacts?$filter=" + Encode(NameFilter(name)) + "&$expand=EntryPoints&$format=json"
}

const (
	runtimeLocationsCommand = "com.sap.it.op.srv.web.cf.RuntimeLocationListCommand"
	componentsCommand       = "com.sap.it.op.tmn.commands.dashboard.webui.IntegrationComponentsListCommand"
)

func RuntimeLocationsURL(operationsBase string) string {
	return operationsBase + runtimeLocationsCommand
}

// ComponentsURL lists flows; an empty locationID lists the whole (NEO) tenant.
func ComponentsURL(operationsBase, locationID string) string {
	if locationID == "" {
		return operationsBase + componentsCommand
	}
	return operationsBase + componentsCommand + "?runtimeLocationId=" + Encode(locationID)
}
