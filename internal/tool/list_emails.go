package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"
)

const (
	defaultMaxResults = 10
	maxResultsLimit   = 100
)

// ListEmailsRequest filters the mailbox listing.
type ListEmailsRequest struct {
	MaxResults int64  `json:"maxResults,omitempty" jsonschema:"maximum number of emails to return (default 10, max 100)"`
	Query      string `json:"query,omitempty" jsonschema:"Gmail search query (e.g. 'from:someone@example.com')"`
	Label      string `json:"label,omitempty" jsonschema:"filter by label (e.g. 'INBOX', 'SENT')"`
}

type listEmailsSvc interface {
	ListMessages(ctx context.Context, query string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewListEmails creates the list_emails tool.
func NewListEmails(svc listEmailsSvc) *ListEmails {
	return &ListEmails{svc: svc}
}

// ListEmails lists recent messages as sanitized summary records.
type ListEmails struct {
	svc listEmailsSvc
}

// ListEmails handles a list_emails invocation.
func (t *ListEmails) ListEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListEmailsRequest,
) (*mcp.CallToolResult, any, error) {
	query := input.Query
	if input.Label != "" {
		labelQuery := "label:" + input.Label
		if query != "" {
			query += " " + labelQuery
		} else {
			query = labelQuery
		}
	}

	records, err := summaryRecords(ctx, t.svc, query, normalizeMaxResults(input.MaxResults))
	if err != nil {
		return nil, nil, fmt.Errorf("error listing emails: %w", err)
	}

	result, err := emailResult(records)

	return result, nil, err
}

// summaryRecords lists matching message ids and fetches summary metadata for
// each, preserving the listing order.
func summaryRecords(ctx context.Context, svc listEmailsSvc, query string, maxResults int64) ([]map[string]any, error) {
	listing, err := svc.ListMessages(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("svc.ListMessages failed: %w", err)
	}

	records := make([]map[string]any, 0, len(listing.Messages))
	for _, m := range listing.Messages {
		msg, err := svc.GetMessageMetadata(ctx, m.Id)
		if err != nil {
			return nil, fmt.Errorf("get message %s failed: %w", m.Id, err)
		}

		records = append(records, buildSummaryRecord(msg))
	}

	return records, nil
}

func normalizeMaxResults(maxResults int64) int64 {
	if maxResults <= 0 {
		return defaultMaxResults
	}
	if maxResults > maxResultsLimit {
		return maxResultsLimit
	}

	return maxResults
}
