package ports

import (
	"context"
	"time"

	"cpi-resender/internal/core/domain"
)

// --- Transport ports ---

// HTTPRequest is one authenticated call against the tenant. Accept sets the
// Content-Type of a POST with a body and the Accept header otherwise.
type HTTPRequest struct {
	// Origin is the calling page origin; other hosts go through the relay.
	Origin   string
	Method   string
	URL      string
	Username string
	Password string
	Body     string
	Accept   string
}

// Transport issues tenant calls and returns the response body text.
type Transport interface {
	Do(ctx context.Context, req HTTPRequest) (string, error)
}

// RelayRequestType is the only message type the relay accepts.
const RelayRequestType = "CROSS_ORIGIN_REQUEST"

// RelaySecretHeader carries the shared secret a remote relay expects.
const RelaySecretHeader = "X-Relay-Secret"

// RelayRequest is the cross-origin relay protocol request.
type RelayRequest struct {
	Type     string `json:"type"`
	Method   string `json:"method"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Body     string `json:"body,omitempty"`
	Accept   string `json:"accept,omitempty"`
}

// RelayResponse is the cross-origin relay protocol answer. Status carries
// the target's HTTP status when the failure was a non-2xx answer.
type RelayResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// Relay performs a request on behalf of a caller restricted to its own origin.
type Relay interface {
	Forward(ctx context.Context, req RelayRequest) (string, error)
}

// MonitoringClient is the OData and operations surface of a tenant.
type MonitoringClient interface {
	ListRuntimeLocations(ctx context.Context, sess domain.Session) ([]domain.RuntimeLocation, error)
	// ListIntegrationComponents lists flows of one runtime location. NEO
	// ignores locationID.
	ListIntegrationComponents(ctx context.Context, sess domain.Session, locationID string) ([]domain.IntegrationFlow, error)
	CountByStatus(ctx context.Context, sess domain.Session, flow string, status domain.MessageStatus) (int, error)
	ListFailed(ctx context.Context, sess domain.Session, flow string, top int) ([]domain.MessageLogEntry, error)
	// ErrorDetails is best-effort and returns "" when nothing could be read.
	ErrorDetails(ctx context.Context, sess domain.Session, messageGUID string) string
	ListAttachments(ctx context.Context, sess domain.Session, messageGUID string) ([]domain.Attachment, error)
	FetchAttachment(ctx context.Context, sess domain.Session, attachmentID string) (string, error)
	ServiceEndpointURL(ctx context.Context, sess domain.Session, name string) (string, error)
	RuntimeArtifactEndpoint(ctx context.Context, sess domain.Session, name string) (domain.EntryPoint, error)
	// InvokeFlow POSTs body to a flow endpoint with the flow-call credentials.
	InvokeFlow(ctx context.Context, sess domain.Session, url, body, contentType string) error
	// ReadResenderMessages GETs the resender flow's message list with the
	// flow-call credentials.
	ReadResenderMessages(ctx context.Context, sess domain.Session, url string) ([]domain.ResenderMessage, error)
}

// PayloadSealer encrypts cache bundles at rest.
type PayloadSealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// TokenService handles operator JWT operations.
type TokenService interface {
	Generate(operator string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Operator string
}

// --- Service Ports (Business Logic) ---

// DiscoveryService lists flows and their failed messages.
type DiscoveryService interface {
	ListIntegrationFlows(ctx context.Context, sess domain.Session) ([]domain.IntegrationFlow, error)
	CountsPerFlow(ctx context.Context, sess domain.Session, flows []domain.IntegrationFlow) ([]domain.FlowCounts, error)
	FailedCountsPerFlow(ctx context.Context, sess domain.Session, flows []domain.IntegrationFlow) ([]domain.FailedCount, error)
	ListFailedMessages(ctx context.Context, sess domain.Session, flow string, top int) ([]domain.MessageLogEntry, error)
}

// PayloadService fetches failed-message payloads and manages the local cache.
type PayloadService interface {
	// FetchAndCache sends one event per message on progress when it is
	// non-nil. The channel is never closed by the service.
	FetchAndCache(ctx context.Context, sess domain.Session, flow string, progress chan<- domain.ProgressEvent) ([]domain.CachedPayload, error)
	GetCached(ctx context.Context, flow string) ([]domain.CachedPayload, error)
	DeleteEntries(ctx context.Context, flow string, guids []string) (int, error)
	DeleteAll(ctx context.Context, flow string) error
	ListCachedFlows(ctx context.Context) ([]domain.CachedFlow, error)
}

// EndpointService resolves flow invocation URLs.
type EndpointService interface {
	DiscoverEndpoint(ctx context.Context, sess domain.Session, flow string) (domain.Endpoint, error)
}

// ResendService replays cached payloads. A run aborted midway returns its
// partial report together with the error.
type ResendService interface {
	Resend(ctx context.Context, sess domain.Session, items []domain.ResendItem, progress chan<- domain.ProgressEvent) (*domain.ResendReport, error)
}

// MarkerService manages the resent-marker audit log.
type MarkerService interface {
	Record(ctx context.Context, sess domain.Session, markers []domain.ResentMarker) error
	List(ctx context.Context) ([]domain.ResentMarker, error)
	ListByFlow(ctx context.Context, flow string) ([]domain.ResentMarker, error)
	WasResent(ctx context.Context, guid string) (bool, error)
	Clear(ctx context.Context) error
	Export(ctx context.Context) (*domain.ExportDocument, error)
	Import(ctx context.Context, doc domain.ExportDocument, mode domain.ImportMode) (*domain.ImportSummary, error)
}

// OverviewService reads the resender flow's message store.
type OverviewService interface {
	Overview(ctx context.Context, sess domain.Session) ([]domain.FlowOverview, error)
}
