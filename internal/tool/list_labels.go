package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"
)

// ListLabelsRequest has no parameters.
type ListLabelsRequest struct{}

type listLabelsSvc interface {
	ListLabels(ctx context.Context) (*gmail.ListLabelsResponse, error)
}

// NewListLabels creates the list_labels tool.
func NewListLabels(svc listLabelsSvc) *ListLabels {
	return &ListLabels{svc: svc}
}

// ListLabels lists the mailbox labels. Label records carry no untrusted
// fields, so the response is plain JSON without a security preamble.
type ListLabels struct {
	svc listLabelsSvc
}

// ListLabels handles a list_labels invocation.
func (t *ListLabels) ListLabels(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListLabelsRequest,
) (*mcp.CallToolResult, any, error) {
	listing, err := t.svc.ListLabels(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing labels: %w", err)
	}

	records := make([]map[string]any, 0, len(listing.Labels))
	for _, label := range listing.Labels {
		records = append(records, map[string]any{
			"id":   label.Id,
			"name": label.Name,
			"type": label.Type,
		})
	}

	result, err := plainResult(records)

	return result, nil, err
}
