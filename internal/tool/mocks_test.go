package tool_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/wrxck/gmail-mcp/internal/attachment"
	"github.com/wrxck/gmail-mcp/internal/format"
	"github.com/wrxck/gmail-mcp/internal/tool"
)

type gmailSvcMock struct {
	ListMessagesFunc       func(ctx context.Context, query string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadataFunc func(ctx context.Context, msgID string) (*gmail.Message, error)
	GetMessageFunc         func(ctx context.Context, msgID string) (*gmail.Message, error)
	GetAttachmentFunc      func(ctx context.Context, msgID, attachmentID string) (*gmail.MessagePartBody, error)
	ListLabelsFunc         func(ctx context.Context) (*gmail.ListLabelsResponse, error)
}

func (m *gmailSvcMock) ListMessages(ctx context.Context, query string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	return m.ListMessagesFunc(ctx, query, maxResults)
}

func (m *gmailSvcMock) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageMetadataFunc(ctx, msgID)
}

func (m *gmailSvcMock) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageFunc(ctx, msgID)
}

func (m *gmailSvcMock) GetAttachment(ctx context.Context, msgID, attachmentID string) (*gmail.MessagePartBody, error) {
	return m.GetAttachmentFunc(ctx, msgID, attachmentID)
}

func (m *gmailSvcMock) ListLabels(ctx context.Context) (*gmail.ListLabelsResponse, error) {
	return m.ListLabelsFunc(ctx)
}

type testSession struct {
	ctx     context.Context
	client  *mcp.ClientSession
	baseDir string
}

func newTestSession(t *testing.T, svc *gmailSvcMock) *testSession {
	t.Helper()

	baseDir := t.TempDir()
	cls := attachment.NewClassifier(attachment.NewStore(baseDir), format.Converter{})
	server := tool.NewServer(svc, cls, format.Converter{})

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientSession.Close() })

	return &testSession{ctx: ctx, client: clientSession, baseDir: baseDir}
}

var boundaryPattern = regexp.MustCompile(`Content boundary token: (----UNTRUSTED_CONTENT_[0-9a-f]{16})`)

// extractBoundary pulls the boundary token out of a security preamble part.
func extractBoundary(t *testing.T, preamble string) string {
	t.Helper()

	m := boundaryPattern.FindStringSubmatch(preamble)
	require.Len(t, m, 2, "preamble should declare the boundary token")

	return m[1]
}

func textPart(t *testing.T, result *mcp.CallToolResult, idx int) string {
	t.Helper()

	require.Greater(t, len(result.Content), idx)
	part, ok := result.Content[idx].(*mcp.TextContent)
	require.True(t, ok, "content part %d should be text", idx)

	return part.Text
}

func parseRecord(t *testing.T, raw string) map[string]any {
	t.Helper()

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	return rec
}

func parseRecordList(t *testing.T, raw string) []map[string]any {
	t.Helper()

	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &recs))

	return recs
}

func wrapped(value, boundary string) string {
	return boundary + "\n" + value + "\n" + boundary
}
