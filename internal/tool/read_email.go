package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"
)

// ReadEmailRequest identifies the message to read.
type ReadEmailRequest struct {
	ID string `json:"id" jsonschema:"the email message ID"`
}

type readEmailSvc interface {
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewReadEmail creates the read_email tool.
func NewReadEmail(svc readEmailSvc, conv htmlStripper) *ReadEmail {
	return &ReadEmail{svc: svc, conv: conv}
}

// ReadEmail returns one full sanitized message record.
type ReadEmail struct {
	svc  readEmailSvc
	conv htmlStripper
}

// ReadEmail handles a read_email invocation.
func (t *ReadEmail) ReadEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadEmailRequest,
) (*mcp.CallToolResult, any, error) {
	if input.ID == "" {
		return nil, nil, errors.New("'id' is required")
	}

	msg, err := t.svc.GetMessage(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading email: %w", err)
	}

	result, err := emailResult(buildMessageRecord(msg, t.conv))

	return result, nil, err
}
