package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports/mocks"
	"cpi-resender/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type cliMocks struct {
	discovery *mocks.MockDiscoveryService
	payloads  *mocks.MockPayloadService
	resend    *mocks.MockResendService
	markers   *mocks.MockMarkerService
	overview  *mocks.MockOverviewService
	tokens    *mocks.MockTokenService
}

func setupCLI(t *testing.T) (*cli, *cliMocks) {
	ctrl := gomock.NewController(t)
	m := &cliMocks{
		discovery: mocks.NewMockDiscoveryService(ctrl),
		payloads:  mocks.NewMockPayloadService(ctrl),
		resend:    mocks.NewMockResendService(ctrl),
		markers:   mocks.NewMockMarkerService(ctrl),
		overview:  mocks.NewMockOverviewService(ctrl),
		tokens:    mocks.NewMockTokenService(ctrl),
	}
	c := &cli{
		ready:     true,
		session:   domain.Session{Tenant: domain.Tenant{Name: "acme", Platform: domain.PlatformCloudFoundry}, Operator: "ops"},
		discovery: m.discovery,
		payloads:  m.payloads,
		resend:    m.resend,
		markers:   m.markers,
		overview:  m.overview,
		tokens:    m.tokens,
	}
	return c, m
}

func run(t *testing.T, c *cli, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd(c)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func strPtr(s string) *string { return &s }

func TestFlows(t *testing.T) {
	c, m := setupCLI(t)
	flows := []domain.IntegrationFlow{{ID: "1", Name: "Orders", SymbolicName: "Orders"}}
	m.discovery.EXPECT().ListIntegrationFlows(gomock.Any(), c.session).Return(flows, nil)
	m.discovery.EXPECT().CountsPerFlow(gomock.Any(), c.session, flows).
		Return([]domain.FlowCounts{{Name: "Orders", Completed: 12, Failed: 3}}, nil)

	out, _, err := run(t, c, "flows")
	require.NoError(t, err)
	assert.Contains(t, out, "FLOW")
	assert.Regexp(t, `Orders\s+12\s+3`, out)
}

func TestFailed_None(t *testing.T) {
	c, m := setupCLI(t)
	m.discovery.EXPECT().ListIntegrationFlows(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.discovery.EXPECT().FailedCountsPerFlow(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	out, _, err := run(t, c, "failed")
	require.NoError(t, err)
	assert.Equal(t, "no failed messages\n", out)
}

func TestMessages_PassesTop(t *testing.T) {
	c, m := setupCLI(t)
	m.discovery.EXPECT().ListFailedMessages(gomock.Any(), c.session, "Orders", 25).
		Return([]domain.MessageLogEntry{{MessageGUID: "g1", ErrorText: "Connection\nrefused"}}, nil)

	out, _, err := run(t, c, "messages", "Orders", "--top", "25")
	require.NoError(t, err)
	assert.Regexp(t, `g1\s+-\s+Connection refused`, out)
}

func TestMessages_RequiresFlow(t *testing.T) {
	c, _ := setupCLI(t)
	_, _, err := run(t, c, "messages")
	assert.Error(t, err)
}

func TestFetch_PrintsProgress(t *testing.T) {
	c, m := setupCLI(t)
	m.payloads.EXPECT().FetchAndCache(gomock.Any(), c.session, "Orders", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Session, _ string, progress chan<- domain.ProgressEvent) ([]domain.CachedPayload, error) {
			progress <- domain.ProgressEvent{Stage: domain.StageFetch, Current: 1, Total: 2, MessageGUID: "g1"}
			progress <- domain.ProgressEvent{Stage: domain.StageFetch, Current: 2, Total: 2, MessageGUID: "g2"}
			return []domain.CachedPayload{{MessageGUID: "g1", Payload: strPtr("<a/>")}, {MessageGUID: "g2"}}, nil
		})

	out, errOut, err := run(t, c, "fetch", "Orders")
	require.NoError(t, err)
	assert.Contains(t, errOut, "[fetch 1/2] g1")
	assert.Contains(t, errOut, "[fetch 2/2] g2")
	assert.Equal(t, "cached 2 messages of Orders, 1 with payload\n", out)
}

func TestFetch_Locked(t *testing.T) {
	c, m := setupCLI(t)
	m.payloads.EXPECT().FetchAndCache(gomock.Any(), gomock.Any(), "Orders", gomock.Any()).
		Return(nil, apperror.ErrLockTimeout(errors.New("flow Orders is busy")))

	_, _, err := run(t, c, "fetch", "Orders")
	assert.Error(t, err)
}

func TestCached(t *testing.T) {
	t.Run("all flows", func(t *testing.T) {
		c, m := setupCLI(t)
		m.payloads.EXPECT().ListCachedFlows(gomock.Any()).
			Return([]domain.CachedFlow{{IntegrationFlowName: "Orders", Entries: 4, WithPayload: 3}}, nil)

		out, _, err := run(t, c, "cached")
		require.NoError(t, err)
		assert.Regexp(t, `Orders\s+4\s+3`, out)
	})

	t.Run("one flow", func(t *testing.T) {
		c, m := setupCLI(t)
		m.payloads.EXPECT().GetCached(gomock.Any(), "Orders").Return([]domain.CachedPayload{
			{MessageGUID: "g1", Payload: strPtr("x")},
			{MessageGUID: "g2", Error: "no attachments"},
		}, nil)
		m.markers.EXPECT().WasResent(gomock.Any(), "g1").Return(true, nil)
		m.markers.EXPECT().WasResent(gomock.Any(), "g2").Return(false, nil)

		out, _, err := run(t, c, "cached", "Orders")
		require.NoError(t, err)
		assert.Regexp(t, `g1\s+yes\s+yes`, out)
		assert.Regexp(t, `g2\s+no\s+no\s+no attachments`, out)
	})
}

func TestResend_ExplicitGUIDs(t *testing.T) {
	c, m := setupCLI(t)
	want := []domain.ResendItem{
		{MessageGUID: "g1", IntegrationFlowName: "Orders"},
		{MessageGUID: "g2", IntegrationFlowName: "Orders"},
	}
	m.resend.EXPECT().Resend(gomock.Any(), c.session, want, gomock.Any()).Return(&domain.ResendReport{
		SuccessCount: 2, Total: 2, DeletedEntries: 2,
		Results: []domain.ResendResult{
			{Index: 0, MessageGUID: "g1", Success: true, EndpointURL: "https://rt/http/orders"},
			{Index: 1, MessageGUID: "g2", Success: true, EndpointURL: "https://rt/http/orders"},
		},
	}, nil)

	out, _, err := run(t, c, "resend", "Orders", "g1", "g2")
	require.NoError(t, err)
	assert.Regexp(t, `1\s+g1\s+ok\s+https://rt/http/orders`, out)
	assert.Contains(t, out, "2 sent, 0 failed, 2 data store entries deleted")
}

func TestResend_FromCacheSkipsResentAndEmpty(t *testing.T) {
	c, m := setupCLI(t)
	m.payloads.EXPECT().GetCached(gomock.Any(), "Orders").Return([]domain.CachedPayload{
		{MessageGUID: "g1", Payload: strPtr("a")},
		{MessageGUID: "g2"},
		{MessageGUID: "g3", Payload: strPtr("c")},
	}, nil)
	m.markers.EXPECT().WasResent(gomock.Any(), "g1").Return(true, nil)
	m.markers.EXPECT().WasResent(gomock.Any(), "g3").Return(false, nil)
	m.resend.EXPECT().Resend(gomock.Any(), gomock.Any(), []domain.ResendItem{{MessageGUID: "g3", IntegrationFlowName: "Orders"}}, gomock.Any()).
		Return(&domain.ResendReport{
			FailedCount: 1, Total: 1,
			Results:        []domain.ResendResult{{MessageGUID: "g3", Error: "HTTP 500"}},
			CleanupWarning: "Failed to delete entries: boom",
		}, nil)

	out, _, err := run(t, c, "resend", "Orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 messages failed")
	assert.Regexp(t, `g3\s+FAILED\s+HTTP 500`, out)
	assert.Contains(t, out, "warning: Failed to delete entries: boom")
}

func TestResend_AbortedRunPrintsPartialReport(t *testing.T) {
	c, m := setupCLI(t)
	m.resend.EXPECT().Resend(gomock.Any(), c.session, gomock.Any(), gomock.Any()).Return(&domain.ResendReport{
		SuccessCount: 1, FailedCount: 1, Total: 2, DeletedEntries: 1,
		Results: []domain.ResendResult{
			{Index: 0, MessageGUID: "g1", Success: true, EndpointURL: "https://rt/http/orders"},
			{Index: 1, MessageGUID: "g2", Error: "Not sent: resend aborted"},
		},
	}, apperror.ErrContextInvalidated(nil))

	out, _, err := run(t, c, "resend", "Orders", "g1", "g2")
	require.Error(t, err)
	assert.True(t, apperror.IsContextInvalidated(err))
	assert.Regexp(t, `g2\s+FAILED\s+Not sent: resend aborted`, out)
	assert.Contains(t, out, "1 sent, 1 failed, 1 data store entries deleted")
}

func TestResend_NothingEligible(t *testing.T) {
	c, m := setupCLI(t)
	m.payloads.EXPECT().GetCached(gomock.Any(), "Orders").Return([]domain.CachedPayload{{MessageGUID: "g1"}}, nil)

	out, _, err := run(t, c, "resend", "Orders")
	require.NoError(t, err)
	assert.Equal(t, "nothing to resend\n", out)
}

func TestResend_IncludeResent(t *testing.T) {
	c, m := setupCLI(t)
	m.payloads.EXPECT().GetCached(gomock.Any(), "Orders").Return([]domain.CachedPayload{{MessageGUID: "g1", Payload: strPtr("a")}}, nil)
	m.resend.EXPECT().Resend(gomock.Any(), gomock.Any(), gomock.Len(1), gomock.Any()).
		Return(&domain.ResendReport{SuccessCount: 1, Total: 1}, nil)

	_, _, err := run(t, c, "resend", "Orders", "--include-resent")
	require.NoError(t, err)
}

func TestMarkers(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC).UnixMilli()

	t.Run("by flow", func(t *testing.T) {
		c, m := setupCLI(t)
		m.markers.EXPECT().ListByFlow(gomock.Any(), "Orders").
			Return([]domain.ResentMarker{{MessageGUID: "g1", IntegrationFlowName: "Orders", ResentAt: at}}, nil)

		out, _, err := run(t, c, "markers", "--flow", "Orders")
		require.NoError(t, err)
		assert.Regexp(t, `g1\s+Orders\s+2025-03-01T10:00:00Z`, out)
	})

	t.Run("clear", func(t *testing.T) {
		c, m := setupCLI(t)
		m.markers.EXPECT().Clear(gomock.Any()).Return(nil)

		out, _, err := run(t, c, "markers", "--clear")
		require.NoError(t, err)
		assert.Equal(t, "resent markers cleared\n", out)
	})
}

func TestExportImport(t *testing.T) {
	c, m := setupCLI(t)
	doc := &domain.ExportDocument{
		Version:      domain.MarkerExportVersion,
		ExportedAt:   "2025-03-01T10:00:00Z",
		ExportedBy:   "cpi-resender",
		TotalRecords: 1,
		Records:      []domain.ResentMarker{{MessageGUID: "g1", IntegrationFlowName: "Orders", ResentAt: 1}},
	}
	path := filepath.Join(t.TempDir(), "markers.json")

	m.markers.EXPECT().Export(gomock.Any()).Return(doc, nil)
	out, _, err := run(t, c, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1 markers")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var written map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &written))
	assert.EqualValues(t, 1, written["totalRecords"])

	m.markers.EXPECT().Import(gomock.Any(), *doc, domain.ImportReplace).
		Return(&domain.ImportSummary{Imported: 1, Total: 1, Mode: domain.ImportReplace}, nil)
	out, _, err = run(t, c, "import", path, "--mode", "replace")
	require.NoError(t, err)
	assert.Equal(t, "replace: 1 imported, 0 updated, 0 skipped of 1\n", out)
}

func TestImport_LegacyExport(t *testing.T) {
	c, m := setupCLI(t)
	path := filepath.Join(t.TempDir(), "flowfixer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"exportedAt":1709251200000,"exportedBy":"FlowFixer","totalRecords":2,"records":[
		{"messageGuid":"g1","iFlowName":"Orders","resentAt":1709251100000},
		{"messageGuid":"g2","iFlowName":"Orders","resentAt":"x"}]}`), 0o644))

	m.markers.EXPECT().Import(gomock.Any(), gomock.Any(), domain.ImportMerge).
		DoAndReturn(func(_ context.Context, doc domain.ExportDocument, mode domain.ImportMode) (*domain.ImportSummary, error) {
			assert.Equal(t, "2024-03-01T00:00:00Z", doc.ExportedAt)
			assert.Len(t, doc.Records, 1)
			assert.Equal(t, 1, doc.Undecodable)
			return &domain.ImportSummary{Imported: 1, Skipped: 1, Total: 2, Mode: mode}, nil
		})

	out, _, err := run(t, c, "import", path)
	require.NoError(t, err)
	assert.Equal(t, "merge: 1 imported, 0 updated, 1 skipped of 2\n", out)
}

func TestImport_BadInput(t *testing.T) {
	c, _ := setupCLI(t)
	dir := t.TempDir()

	_, _, err := run(t, c, "import", filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "reading import")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	_, _, err = run(t, c, "import", bad)
	assert.ErrorContains(t, err, "not a marker export")

	_, _, err = run(t, c, "import", bad, "--mode", "upsert")
	assert.ErrorContains(t, err, "unknown import mode")
}

func TestOverview(t *testing.T) {
	c, m := setupCLI(t)
	m.overview.EXPECT().Overview(gomock.Any(), c.session).
		Return([]domain.FlowOverview{{IFlowName: "Orders", Total: 3, Completed: 2, Failed: 1}}, nil)

	out, _, err := run(t, c, "overview")
	require.NoError(t, err)
	assert.Regexp(t, `Orders\s+3\s+2\s+1`, out)
}

func TestToken(t *testing.T) {
	c, m := setupCLI(t)
	exp := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	m.tokens.EXPECT().Generate("alice").Return("tok.en.value", exp, nil)

	out, errOut, err := run(t, c, "token", "alice")
	require.NoError(t, err)
	assert.Equal(t, "tok.en.value\n", out)
	assert.Contains(t, errOut, "2025-03-01T22:00:00Z")
}

func TestToken_NotConfigured(t *testing.T) {
	c, _ := setupCLI(t)
	c.tokens = nil

	_, _, err := run(t, c, "token", "alice")
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("a\n b\t c", 10))
	assert.Equal(t, "abcdefg...", oneLine("abcdefghijklmnop", 10))
}
