package odata

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/internal/core/ports/mocks"
	"cpi-resender/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	uiOrigin = "https://acme.integrationsuite.cfapps.eu10.hana.ondemand.com"
	apiURL   = "https://acme.it-cpi018.cfapps.eu10.hana.ondemand.com"
)

func cfSession() domain.Session {
	return domain.Session{
		Tenant: domain.Tenant{Name: "acme", Platform: domain.PlatformCloudFoundry, Origin: uiOrigin, APIURL: apiURL},
		Credentials: domain.Credentials{
			Username: "user", Password: "secret", ClientID: "sb-client", ClientSecret: "cs",
		},
	}
}

func neoSession() domain.Session {
	return domain.Session{
		Tenant:      domain.Tenant{Name: "acme", Platform: domain.PlatformNEO, Origin: "https://acme-tmn.hci.eu1.hana.ondemand.com"},
		Credentials: domain.Credentials{Username: "user", Password: "secret"},
	}
}

// urlHas matches a request whose URL contains every fragment.
func urlHas(fragments ...string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		req, ok := x.(ports.HTTPRequest)
		if !ok {
			return false
		}
		for _, f := range fragments {
			if !strings.Contains(req.URL, f) {
				return false
			}
		}
		return true
	})
}

func mustCompile(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile(pattern)
	require.NoError(t, err)
	return re
}

func setup(t *testing.T) (*Client, *mocks.MockTransport) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	return NewClient(tr, zerolog.Nop()), tr
}

func TestClient_CountByStatus(t *testing.T) {
	c, tr := setup(t)
	ctx := context.Background()

	tr.EXPECT().Do(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, req ports.HTTPRequest) (string, error) {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "text/plain", req.Accept)
		assert.Equal(t, "user", req.Username)
		assert.Equal(t, uiOrigin, req.Origin)
		assert.True(t, strings.HasPrefix(req.URL, uiOrigin+"/odata/api/v1/MessageProcessingLogs/$count?$filter="))
		return "12\n", nil
	})

	n, err := c.CountByStatus(ctx, cfSession(), "Orders", domain.MessageStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestClient_CountByStatus_GarbageIsZero(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).Return("<html/>", nil)

	n, err := c.CountByStatus(context.Background(), cfSession(), "Orders", domain.MessageStatusFailed)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClient_CountByStatus_MissingCredentials(t *testing.T) {
	c, _ := setup(t)
	sess := cfSession()
	sess.Credentials.Password = ""

	_, err := c.CountByStatus(context.Background(), sess, "Orders", domain.MessageStatusFailed)
	require.Error(t, err)
}

func TestClient_ListFailed_JSON(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), urlHas("$format=json")).Return(
		`{"d":{"results":[
			{"MessageGuid":"g1","Status":"FAILED","LogStart":"/Date(1714979289000)/","CorrelationId":"c1"},
			{"MessageID":"g2"},
			{"Status":"FAILED"}
		]}}`, nil)

	got, err := c.ListFailed(context.Background(), cfSession(), "Orders", 0)
	require.NoError(t, err)
	require.Len(t, got, 2, "rows without a guid are dropped")

	assert.Equal(t, "g1", got[0].MessageGUID)
	assert.Equal(t, "Orders", got[0].IntegrationFlowName)
	assert.Equal(t, "c1", got[0].CorrelationID)
	assert.Equal(t, int64(1714979289000), got[0].LogStart.UnixMilli())
	assert.Equal(t, domain.MessageStatusFailed, got[1].Status)
}

func TestClient_ListFailed_FallsBackToXML(t *testing.T) {
	c, tr := setup(t)
	gomock.InOrder(
		tr.EXPECT().Do(gomock.Any(), urlHas("$format=json")).Return(`{"value":[]}`, nil),
		tr.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req ports.HTTPRequest) (string, error) {
			assert.NotContains(t, req.URL, "$format")
			assert.Equal(t, "application/xml", req.Accept)
			return mplFeed, nil
		}),
	)

	got, err := c.ListFailed(context.Background(), cfSession(), "Orders", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AGYrV1xX", got[0].MessageGUID)
}

func TestClient_ListFailed_JSONErrorThenXMLError(t *testing.T) {
	c, tr := setup(t)
	httpErr := apperror.ErrUpstreamHTTP("GET", "x", 401, "Unauthorized")
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).Return("", httpErr).Times(2)

	_, err := c.ListFailed(context.Background(), cfSession(), "Orders", 10)
	require.ErrorIs(t, err, httpErr)
}

func TestClient_ListFailed_UnreadableXMLIsEmpty(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), urlHas("$format=json")).Return(`oops`, nil)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).Return(`<feed><entry>`, nil)

	got, err := c.ListFailed(context.Background(), cfSession(), "Orders", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_ErrorDetails_RunSteps(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), urlHas("MessageProcessingLogs('g1')/Runs")).Return(
		`{"d":{"results":[{"Id":"r0","OverallState":"FAILED"},{"Id":"r1","OverallState":"FAILED"}]}}`, nil)
	tr.EXPECT().Do(gomock.Any(), urlHas("MessageProcessingLogRuns('r1')/RunSteps")).Return(
		`{"d":{"results":[
			{"StepStop":"2024-01-01","Error":"Mapping failed"},
			{"StepStop":null,"Error":"ignored, still running"},
			{"StepStop":"2024-01-01","LogMessage":"Receiver unknown"},
			{"StepStop":"2024-01-01"}
		]}}`, nil)

	got := c.ErrorDetails(context.Background(), cfSession(), "g1")
	assert.Equal(t, "Mapping failed | Receiver unknown", got)
}

func TestClient_ErrorDetails_CompletedFirstRunIsUsed(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), urlHas("/Runs")).Return(
		`{"value":[{"Id":"r0","OverallState":"COMPLETED"},{"Id":"r1"}]}`, nil)
	tr.EXPECT().Do(gomock.Any(), urlHas("MessageProcessingLogRuns('r0')")).Return(
		`{"value":[{"StepStop":"x","Error":"from r0"}]}`, nil)

	assert.Equal(t, "from r0", c.ErrorDetails(context.Background(), cfSession(), "g1"))
}

func TestClient_ErrorDetails_FallsBackToErrorInformation(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), urlHas("/Runs")).Return("", errors.New("404"))
	tr.EXPECT().Do(gomock.Any(), urlHas("MessageProcessingLogs('g1')/ErrorInformation?$format=json")).Return("", errors.New("404"))
	tr.EXPECT().Do(gomock.Any(), urlHas("(MessageGuid='g1')/ErrorInformation?$format=json")).Return(`{"d":{"LongText":"Connection reset"}}`, nil)

	assert.Equal(t, "Connection reset", c.ErrorDetails(context.Background(), cfSession(), "g1"))
}

func TestClient_ErrorDetails_XMLLastResort(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), urlHas("/Runs")).Return(`{"value":[]}`, nil)
	tr.EXPECT().Do(gomock.Any(), urlHas("?$format=json")).Return(`{}`, nil).Times(2)
	tr.EXPECT().Do(gomock.Any(), urlHas("MessageProcessingLogs('g1')/ErrorInformation")).Return(
		`<entry xmlns:m="m" xmlns:d="d"><content><m:properties><d:Text>XML says no</d:Text></m:properties></content></entry>`, nil)

	assert.Equal(t, "XML says no", c.ErrorDetails(context.Background(), cfSession(), "g1"))
}

func TestClient_ErrorDetails_NeverFails(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).Return("", errors.New("down")).Times(5)

	assert.Empty(t, c.ErrorDetails(context.Background(), cfSession(), "g1"))
	assert.Empty(t, c.ErrorDetails(context.Background(), cfSession(), ""))
}

func TestClient_ListAttachments(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req ports.HTTPRequest) (string, error) {
		assert.Equal(t, apiURL+"/api/v1/MessageProcessingLogs('g1')/Attachments?$format=json", req.URL)
		return `{"d":{"results":[{"Id":"a1","Name":"Original","ContentType":"application/xml"},{"ID":"a2"},{"Name":"no id"}]}}`, nil
	})

	got, err := c.ListAttachments(context.Background(), cfSession(), "g1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Attachment{
		{ID: "a1", Name: "Original", ContentType: "application/xml"},
		{ID: "a2", Name: "payload"},
	}, got)
}

func TestClient_ListAttachments_CFNeedsAPIURL(t *testing.T) {
	c, _ := setup(t)
	sess := cfSession()
	sess.Tenant.APIURL = ""

	_, err := c.ListAttachments(context.Background(), sess, "g1")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CFG_001", appErr.Code)
}

func TestClient_FetchAttachment_AppliesRewrites(t *testing.T) {
	c, tr := setup(t)
	sess := cfSession()
	sess.Tenant.PayloadRewrites = domain.RewriteRules{{
		Pattern: mustCompile(t, `\.it-cpi[^.]*\.`), Replacement: ".integrationsuite-trial.",
	}}

	tr.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req ports.HTTPRequest) (string, error) {
		assert.Equal(t, "https://acme.integrationsuite-trial.cfapps.eu10.hana.ondemand.com/api/v1/MessageProcessingLogAttachments('a1')/$value", req.URL)
		assert.Equal(t, "application/octet-stream", req.Accept)
		return "<Order/>", nil
	})

	body, err := c.FetchAttachment(context.Background(), sess, "a1")
	require.NoError(t, err)
	assert.Equal(t, "<Order/>", body)
}

func TestClient_ServiceEndpointURL(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req ports.HTTPRequest) (string, error) {
		assert.Equal(t, "user", req.Username, "directory lookups use the discovery pair")
		assert.Equal(t, "application/xml", req.Accept)
		assert.Contains(t, req.URL, "/api/v1/ServiceEndpoints?")
		return serviceEndpointsFeed, nil
	})

	u, err := c.ServiceEndpointURL(context.Background(), cfSession(), "Orders")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.it-cpi018-rt.cfapps.eu10.hana.ondemand.com/http/orders", u)
}

func TestClient_ServiceEndpointURL_NotFound(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).Return(`<feed xmlns="http://www.w3.org/2005/Atom"/>`, nil)

	_, err := c.ServiceEndpointURL(context.Background(), cfSession(), "Orders")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "could not find endpoint URL for Orders")
}

func TestClient_RuntimeArtifactEndpoint(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), urlHas("IntegrationRuntimeArtifacts")).Return(
		`{"d":{"results":[{"Name":"Orders","EntryPoints":{"results":[
			{"Name":"pd","Url":"pd://x","Type":"PROCESS_DIRECT"},
			{"Name":"Orders","Url":"https://rt/http/orders","Type":"HTTPS"}
		]}}]}}`, nil)

	ep, err := c.RuntimeArtifactEndpoint(context.Background(), cfSession(), "Orders")
	require.NoError(t, err)
	assert.Equal(t, "https://rt/http/orders", ep.URL)
}

func TestClient_RuntimeArtifactEndpoint_NoArtifact(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).Return(`{"value":[]}`, nil)

	_, err := c.RuntimeArtifactEndpoint(context.Background(), cfSession(), "Orders")
	assert.True(t, apperror.IsNotFound(err))
}

func TestClient_ListIntegrationComponents_NEOIgnoresLocation(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req ports.HTTPRequest) (string, error) {
		assert.Equal(t, "https://acme-tmn.hci.eu1.hana.ondemand.com/itspaces/Operations/com.sap.it.op.tmn.commands.dashboard.webui.IntegrationComponentsListCommand", req.URL)
		return `<r><artifactInformations><symbolicName>Orders</symbolicName></artifactInformations></r>`, nil
	})

	flows, err := c.ListIntegrationComponents(context.Background(), neoSession(), "ignored")
	require.NoError(t, err)
	require.Len(t, flows, 1)
}

func TestClient_InvokeFlow_UsesFlowCallCredentials(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), ports.HTTPRequest{
		Origin:   uiOrigin,
		Method:   http.MethodPost,
		URL:      "https://rt/http/orders",
		Username: "sb-client",
		Password: "cs",
		Body:     "<Order/>",
		Accept:   "application/xml",
	}).Return("", nil)

	require.NoError(t, c.InvokeFlow(context.Background(), cfSession(), "https://rt/http/orders", "<Order/>", "application/xml"))
}

func TestClient_InvokeFlow_CFWithoutClientPair(t *testing.T) {
	c, _ := setup(t)
	sess := cfSession()
	sess.Credentials.ClientSecret = ""

	err := c.InvokeFlow(context.Background(), sess, "https://rt/http/orders", "<Order/>", "application/xml")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CFG_002", appErr.Code)
}

func TestClient_ReadResenderMessages_NEOUsesUserPair(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req ports.HTTPRequest) (string, error) {
		assert.Equal(t, "user", req.Username)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "application/xml", req.Accept)
		return "<messages><message><IFlowName>Orders</IFlowName><MessageGuid>g1</MessageGuid></message></messages>", nil
	})

	msgs, err := c.ReadResenderMessages(context.Background(), neoSession(), "https://x/http/resender")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "g1", msgs[0].MessageGUID)
}

func TestClient_ReadResenderMessages_Malformed(t *testing.T) {
	c, tr := setup(t)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).Return("<messages>", nil)

	_, err := c.ReadResenderMessages(context.Background(), neoSession(), "https://x/http/resender")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeParse, appErr.Code)
}
