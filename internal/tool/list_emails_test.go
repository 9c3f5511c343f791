package tool_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/wrxck/gmail-mcp/internal/tool"
)

func newListEmailsGmailSvc(queries *[]string, maxResults *[]int64) *gmailSvcMock {
	return &gmailSvcMock{
		ListMessagesFunc: func(_ context.Context, query string, max int64) (*gmail.ListMessagesResponse, error) {
			if queries != nil {
				*queries = append(*queries, query)
			}
			if maxResults != nil {
				*maxResults = append(*maxResults, max)
			}
			if query == "boom" {
				return nil, fmt.Errorf("simulated listing failure")
			}
			return &gmail.ListMessagesResponse{
				Messages: []*gmail.Message{{Id: "m-001"}, {Id: "m-002"}},
			}, nil
		},
		GetMessageMetadataFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			return &gmail.Message{
				Id:       msgID,
				ThreadId: "t-" + msgID,
				Snippet:  "snippet for " + msgID,
				Payload: &gmail.MessagePart{
					Headers: []*gmail.MessagePartHeader{
						{Name: "From", Value: msgID + "@example.com"},
						{Name: "To", Value: "me@example.com"},
						{Name: "Subject", Value: "Subject " + msgID},
						{Name: "Date", Value: "2025-01-15"},
					},
				},
			}, nil
		},
	}
}

func TestListEmails(t *testing.T) {
	session := newTestSession(t, newListEmailsGmailSvc(nil, nil))

	result, err := session.client.CallTool(session.ctx, &mcp.CallToolParams{
		Name:      "list_emails",
		Arguments: tool.ListEmailsRequest{},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 2)

	boundary := extractBoundary(t, textPart(t, result, 0))
	records := parseRecordList(t, textPart(t, result, 1))
	require.Len(t, records, 2)

	// One boundary covers every record in the response.
	assert.Equal(t, wrapped("m-001@example.com", boundary), records[0]["from"])
	assert.Equal(t, wrapped("m-002@example.com", boundary), records[1]["from"])
	assert.Equal(t, wrapped("snippet for m-001", boundary), records[0]["snippet"])
	assert.Equal(t, wrapped("Subject m-002", boundary), records[1]["subject"])

	assert.Equal(t, "m-001", records[0]["id"])
	assert.Equal(t, "t-m-001", records[0]["threadId"])
	assert.Equal(t, "me@example.com", records[0]["to"])
	assert.Equal(t, "2025-01-15", records[0]["date"])
}

func TestListEmailsQueryAndLimit(t *testing.T) {
	cases := []struct {
		name          string
		req           tool.ListEmailsRequest
		expectedQuery string
		expectedMax   int64
	}{
		{name: "defaults", req: tool.ListEmailsRequest{}, expectedQuery: "", expectedMax: 10},
		{name: "label only", req: tool.ListEmailsRequest{Label: "INBOX"}, expectedQuery: "label:INBOX", expectedMax: 10},
		{
			name:          "query and label combined",
			req:           tool.ListEmailsRequest{Query: "from:a@b.c", Label: "SENT", MaxResults: 5},
			expectedQuery: "from:a@b.c label:SENT",
			expectedMax:   5,
		},
		{name: "limit clamped", req: tool.ListEmailsRequest{MaxResults: 500}, expectedQuery: "", expectedMax: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var queries []string
			var maxResults []int64
			session := newTestSession(t, newListEmailsGmailSvc(&queries, &maxResults))

			result, err := session.client.CallTool(session.ctx, &mcp.CallToolParams{
				Name:      "list_emails",
				Arguments: tc.req,
			})
			require.NoError(t, err)
			require.False(t, result.IsError)

			require.Len(t, queries, 1)
			assert.Equal(t, tc.expectedQuery, queries[0])
			require.Len(t, maxResults, 1)
			assert.Equal(t, tc.expectedMax, maxResults[0])
		})
	}
}

func TestListEmailsServiceError(t *testing.T) {
	session := newTestSession(t, newListEmailsGmailSvc(nil, nil))

	result, err := session.client.CallTool(session.ctx, &mcp.CallToolParams{
		Name:      "list_emails",
		Arguments: tool.ListEmailsRequest{Query: "boom"},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, textPart(t, result, 0), "simulated listing failure")
}
