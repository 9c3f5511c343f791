package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchEmailsRequest carries a Gmail search query.
type SearchEmailsRequest struct {
	Query      string `json:"query" jsonschema:"Gmail search query (e.g. 'from:john subject:meeting after:2024/01/01')"`
	MaxResults int64  `json:"maxResults,omitempty" jsonschema:"maximum number of results (default 10, max 100)"`
}

// NewSearchEmails creates the search_emails tool.
func NewSearchEmails(svc listEmailsSvc) *SearchEmails {
	return &SearchEmails{svc: svc}
}

// SearchEmails searches messages and returns sanitized summary records.
type SearchEmails struct {
	svc listEmailsSvc
}

// SearchEmails handles a search_emails invocation.
func (t *SearchEmails) SearchEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchEmailsRequest,
) (*mcp.CallToolResult, any, error) {
	if input.Query == "" {
		return nil, nil, errors.New("'query' is required")
	}

	records, err := summaryRecords(ctx, t.svc, input.Query, normalizeMaxResults(input.MaxResults))
	if err != nil {
		return nil, nil, fmt.Errorf("error searching emails: %w", err)
	}

	result, err := emailResult(records)

	return result, nil, err
}
