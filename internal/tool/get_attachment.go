package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/wrxck/gmail-mcp/internal/attachment"
)

// GetAttachmentRequest identifies one attachment by message id and index.
type GetAttachmentRequest struct {
	MessageID       string `json:"messageId" jsonschema:"the email message ID"`
	AttachmentIndex int    `json:"attachmentIndex" jsonschema:"zero-based index of the attachment (from read_email attachments array)"`
}

type getAttachmentSvc interface {
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
	GetAttachment(ctx context.Context, msgID, attachmentID string) (*gmail.MessagePartBody, error)
}

// NewGetAttachment creates the get_attachment tool.
func NewGetAttachment(svc getAttachmentSvc, cls classifier) *GetAttachment {
	return &GetAttachment{svc: svc, cls: cls}
}

// GetAttachment fetches and classifies a single attachment.
type GetAttachment struct {
	svc getAttachmentSvc
	cls classifier
}

// GetAttachment handles a get_attachment invocation.
func (t *GetAttachment) GetAttachment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetAttachmentRequest,
) (*mcp.CallToolResult, any, error) {
	if input.MessageID == "" {
		return nil, nil, errors.New("'messageId' is required")
	}
	// The message id becomes a directory name under the attachment store.
	if strings.ContainsAny(input.MessageID, `/\`) || strings.Contains(input.MessageID, "..") {
		return nil, nil, errors.New("invalid messageId")
	}

	msg, err := t.svc.GetMessage(ctx, input.MessageID)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching attachment: %w", err)
	}

	descriptors := attachment.Collect(msg.Payload)
	if input.AttachmentIndex < 0 || input.AttachmentIndex >= len(descriptors) {
		return nil, nil, fmt.Errorf(
			"attachment index %d out of range (0-%d)", input.AttachmentIndex, len(descriptors)-1)
	}

	d := descriptors[input.AttachmentIndex]

	result, err := t.cls.Classify(ctx, input.MessageID, d, t.fetchFunc(input.MessageID, d))
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching attachment: %w", err)
	}

	res, err := attachmentResult(result)

	return res, nil, err
}

// fetchFunc builds the byte-fetch capability for one attachment: inline part
// data when present, otherwise a secondary fetch by attachment id. A part
// with neither yields nil bytes and classification degrades gracefully.
func (t *GetAttachment) fetchFunc(messageID string, d attachment.Descriptor) attachment.FetchFunc {
	return func(ctx context.Context) ([]byte, error) {
		body := d.Part.Body
		if body == nil {
			return nil, nil
		}

		if body.Data != "" {
			return decodeBase64URLBytes(body.Data)
		}

		if body.AttachmentId != "" {
			fetched, err := t.svc.GetAttachment(ctx, messageID, body.AttachmentId)
			if err != nil {
				return nil, fmt.Errorf("svc.GetAttachment failed: %w", err)
			}
			if fetched.Data != "" {
				return decodeBase64URLBytes(fetched.Data)
			}
		}

		return nil, nil
	}
}
