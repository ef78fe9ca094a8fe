package odata

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	acceptJSON   = "application/json"
	acceptXML    = "application/xml"
	acceptText   = "text/plain"
	acceptBinary = "application/octet-stream"
)

var (
	guidFields      = []string{"MessageGuid", "MessageID", "MessageId", "Guid", "GUID", "MessageGUID"}
	errorFields     = []string{"ErrorText", "Error", "ErrorMessage"}
	timeFields      = []string{"LogStart", "TimeStamp"}
	errorInfoFields = []string{"ErrorText", "LongText", "Message", "Text", "LogMessage"}
)

// Client implements ports.MonitoringClient on top of a ports.Transport.
// Monitoring and directory reads use the discovery credentials; flow
// invocations use the flow-call credentials.
type Client struct {
	transport ports.Transport
	log       zerolog.Logger
}

func NewClient(transport ports.Transport, log zerolog.Logger) *Client {
	return &Client{transport: transport, log: log}
}

func (c *Client) read(ctx context.Context, sess domain.Session, url, accept string) (string, error) {
	pair, err := sess.Credentials.Discovery()
	if err != nil {
		return "", err
	}
	return c.transport.Do(ctx, ports.HTTPRequest{
		Origin:   sess.Tenant.Origin,
		Method:   http.MethodGet,
		URL:      url,
		Username: pair.Username,
		Password: pair.Password,
		Accept:   accept,
	})
}

func (c *Client) ListRuntimeLocations(ctx context.Context, sess domain.Session) ([]domain.RuntimeLocation, error) {
	body, err := c.read(ctx, sess, RuntimeLocationsURL(sess.Tenant.OperationsBase()), acceptXML)
	if err != nil {
		return nil, err
	}
	return DecodeRuntimeLocations(body)
}

func (c *Client) ListIntegrationComponents(ctx context.Context, sess domain.Session, locationID string) ([]domain.IntegrationFlow, error) {
	if sess.Tenant.IsNEO() {
		locationID = ""
	}
	body, err := c.read(ctx, sess, ComponentsURL(sess.Tenant.OperationsBase(), locationID), acceptXML)
	if err != nil {
		return nil, err
	}
	return DecodeIntegrationComponents(body)
}

// CountByStatus reads a $count. A body that is not a number counts as 0.
func (c *Client) CountByStatus(ctx context.Context, sess domain.Session, flow string, status domain.MessageStatus) (int, error) {
	body, err := c.read(ctx, sess, CountURL(sess.Tenant.ODataBase(), flow, status), acceptText)
	if err != nil {
		return 0, err
	}
	return leadingInt(body), nil
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ListFailed asks for JSON first and retries once as Atom XML when that
// yields no rows. An undecodable XML answer is an empty list.
func (c *Client) ListFailed(ctx context.Context, sess domain.Session, flow string, top int) ([]domain.MessageLogEntry, error) {
	base := sess.Tenant.ODataBase()

	var rows []Row
	body, err := c.read(ctx, sess, ListURL(base, flow, domain.MessageStatusFailed, top, true), acceptJSON)
	if err == nil {
		rows = DecodeList(body).Rows
	} else {
		c.log.Debug().Err(err).Str("flow", flow).Msg("odata: JSON list failed, trying XML")
	}

	if len(rows) == 0 {
		body, err = c.read(ctx, sess, ListURL(base, flow, domain.MessageStatusFailed, top, false), acceptXML)
		if err != nil {
			return nil, err
		}
		rows, err = DecodeFeed(body)
		if err != nil {
			c.log.Warn().Err(err).Str("flow", flow).Msg("odata: XML list unreadable")
			return []domain.MessageLogEntry{}, nil
		}
	}

	out := make([]domain.MessageLogEntry, 0, len(rows))
	for _, r := range rows {
		e := logEntry(r, flow)
		if e.MessageGUID == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func logEntry(r Row, flow string) domain.MessageLogEntry {
	e := domain.MessageLogEntry{
		MessageGUID:          r.String(guidFields...),
		IntegrationFlowName:  r.String("IntegrationFlowName"),
		Status:               domain.MessageStatus(strings.ToUpper(r.String("Status"))),
		LogStart:             domain.ParseODataTime(r.String(timeFields...)),
		ErrorText:            r.String(errorFields...),
		CorrelationID:        r.String("CorrelationId"),
		ApplicationMessageID: r.String("ApplicationMessageId"),
	}
	if e.IntegrationFlowName == "" {
		e.IntegrationFlowName = flow
	}
	if e.Status == "" {
		e.Status = domain.MessageStatusFailed
	}
	return e
}

// ErrorDetails tries the run steps of the message first, then its
// ErrorInformation under both key syntaxes (JSON, then XML).
func (c *Client) ErrorDetails(ctx context.Context, sess domain.Session, messageGUID string) string {
	if messageGUID == "" {
		return ""
	}
	base := sess.Tenant.ODataBase()

	if d := c.runStepErrors(ctx, sess, base, messageGUID); d != "" {
		return d
	}

	for _, u := range ErrorInformationURLs(base, messageGUID, true) {
		body, err := c.read(ctx, sess, u, acceptJSON)
		if err != nil {
			continue
		}
		if d := joinFields(DecodeList(body).Rows, errorInfoFields); d != "" {
			return d
		}
	}

	for _, u := range ErrorInformationURLs(base, messageGUID, false) {
		body, err := c.read(ctx, sess, u, acceptXML)
		if err != nil {
			continue
		}
		rows, err := DecodeFeed(body)
		if err != nil {
			continue
		}
		if d := joinFields(rows, errorInfoFields); d != "" {
			return d
		}
	}

	c.log.Debug().Str("message_guid", messageGUID).Msg("odata: no error details found")
	return ""
}

// runStepErrors follows the second run when the first one did not finish
// in a terminal state.
func (c *Client) runStepErrors(ctx context.Context, sess domain.Session, base, guid string) string {
	body, err := c.read(ctx, sess, RunsURL(base, guid), acceptJSON)
	if err != nil {
		return ""
	}
	runs := DecodeList(body).Rows
	if len(runs) == 0 {
		return ""
	}

	run := runs[0]
	overall := domain.MessageStatus(run.String("OverallState", "Status"))
	if len(runs) > 1 && overall != domain.MessageStatusCompleted && overall != domain.MessageStatusEscalated {
		run = runs[1]
	}
	runID := run.String("Id")
	if runID == "" {
		return ""
	}

	body, err = c.read(ctx, sess, RunStepsURL(base, runID), acceptJSON)
	if err != nil {
		return ""
	}
	var stopped []Row
	for _, s := range DecodeList(body).Rows {
		if s.Has("StepStop") {
			stopped = append(stopped, s)
		}
	}
	return joinFields(stopped, []string{"Error", "LogMessage"})
}

func joinFields(rows []Row, fields []string) string {
	var parts []string
	for _, r := range rows {
		if s := r.String(fields...); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

func (c *Client) ListAttachments(ctx context.Context, sess domain.Session, messageGUID string) ([]domain.Attachment, error) {
	base, err := sess.Tenant.APIBase()
	if err != nil {
		return nil, err
	}
	body, err := c.read(ctx, sess, AttachmentsURL(base, messageGUID), acceptJSON)
	if err != nil {
		return nil, err
	}

	rows := DecodeList(body).Rows
	out := make([]domain.Attachment, 0, len(rows))
	for _, r := range rows {
		a := domain.Attachment{
			ID:          r.String("Id", "ID"),
			Name:        r.String("Name"),
			ContentType: r.String("ContentType"),
		}
		if a.ID == "" {
			continue
		}
		if a.Name == "" {
			a.Name = "payload"
		}
		out = append(out, a)
	}
	return out, nil
}

// FetchAttachment reads an attachment body from the payload base, which has
// the landscape rewrite rules applied.
func (c *Client) FetchAttachment(ctx context.Context, sess domain.Session, attachmentID string) (string, error) {
	base, err := sess.Tenant.PayloadBase()
	if err != nil {
		return "", err
	}
	return c.read(ctx, sess, AttachmentValueURL(base, attachmentID), acceptBinary)
}

// ServiceEndpointURL returns the first entry point URL of the directory
// entry named name.
func (c *Client) ServiceEndpointURL(ctx context.Context, sess domain.Session, name string) (string, error) {
	base, err := sess.Tenant.APIBase()
	if err != nil {
		return "", err
	}
	body, err := c.read(ctx, sess, ServiceEndpointsURL(base, name), acceptXML)
	if err != nil {
		return "", err
	}
	endpoints, err := DecodeServiceEndpoints(body)
	if err != nil {
		return "", err
	}

	// An exact name match wins over whatever the server put first.
	for _, se := range endpoints {
		if strings.EqualFold(se.Name, strings.TrimSpace(name)) {
			if u, ok := se.FirstURL(); ok {
				return u, nil
			}
		}
	}
	for _, se := range endpoints {
		if u, ok := se.FirstURL(); ok {
			return u, nil
		}
	}
	return "", apperror.ErrNotFound(fmt.Sprintf("could not find endpoint URL for %s", name))
}

// RuntimeArtifactEndpoint is the alternate lookup through the deployed
// runtime artifacts, preferring an HTTP entry point.
func (c *Client) RuntimeArtifactEndpoint(ctx context.Context, sess domain.Session, name string) (domain.EntryPoint, error) {
	base, err := sess.Tenant.APIBase()
	if err != nil {
		return domain.EntryPoint{}, err
	}
	body, err := c.read(ctx, sess, RuntimeArtifactsURL(base, name), acceptJSON)
	if err != nil {
		return domain.EntryPoint{}, err
	}

	artifacts := DecodeList(body).Rows
	if len(artifacts) == 0 {
		return domain.EntryPoint{}, apperror.ErrNotFound(fmt.Sprintf("no runtime artifact found for %s", name))
	}

	var eps []domain.EntryPoint
	for _, r := range artifacts[0].Rows("EntryPoints") {
		eps = append(eps, domain.EntryPoint{
			Name: r.String("Name"),
			URL:  r.String("Url"),
			Type: r.String("Type"),
		})
	}
	ep, ok := domain.PreferHTTP(eps)
	if !ok || ep.URL == "" {
		return domain.EntryPoint{}, apperror.ErrNotFound(fmt.Sprintf("no entry points found for %s", name))
	}
	return ep, nil
}

func (c *Client) InvokeFlow(ctx context.Context, sess domain.Session, url, body, contentType string) error {
	pair, err := sess.Credentials.FlowCall(sess.Tenant.Platform)
	if err != nil {
		return err
	}
	_, err = c.transport.Do(ctx, ports.HTTPRequest{
		Origin:   sess.Tenant.Origin,
		Method:   http.MethodPost,
		URL:      url,
		Username: pair.Username,
		Password: pair.Password,
		Body:     body,
		Accept:   contentType,
	})
	return err
}

func (c *Client) ReadResenderMessages(ctx context.Context, sess domain.Session, url string) ([]domain.ResenderMessage, error) {
	pair, err := sess.Credentials.FlowCall(sess.Tenant.Platform)
	if err != nil {
		return nil, err
	}
	body, err := c.transport.Do(ctx, ports.HTTPRequest{
		Origin:   sess.Tenant.Origin,
		Method:   http.MethodGet,
		URL:      url,
		Username: pair.Username,
		Password: pair.Password,
		Accept:   acceptXML,
	})
	if err != nil {
		return nil, err
	}
	return DecodeResenderMessages(body)
}
