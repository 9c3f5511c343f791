package tool

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wrxck/gmail-mcp/internal/attachment"
	"github.com/wrxck/gmail-mcp/internal/sanitize"
)

// emailResult assembles the two-part response for records carrying untrusted
// content: the security preamble first, then the sanitized records as JSON.
// One fresh boundary covers the whole response.
func emailResult(data any) (*mcp.CallToolResult, error) {
	boundary := sanitize.NewBoundary()

	var sanitized any
	switch v := data.(type) {
	case map[string]any:
		sanitized = sanitize.Message(v, boundary)
	case []map[string]any:
		sanitized = sanitize.Messages(v, boundary)
	default:
		sanitized = data
	}

	serialized, err := marshalRecord(sanitized)
	if err != nil {
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sanitize.SecurityContext(boundary)},
			&mcp.TextContent{Text: serialized},
		},
	}, nil
}

// plainResult serializes data without a preamble, for responses that contain
// no untrusted content.
func plainResult(data any) (*mcp.CallToolResult, error) {
	serialized, err := marshalRecord(data)
	if err != nil {
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: serialized}},
	}, nil
}

// attachmentResult maps each classification variant onto its response shape.
func attachmentResult(result attachment.Result) (*mcp.CallToolResult, error) {
	switch res := result.(type) {
	case *attachment.Text:
		rec := attachmentMeta(res.Meta)
		rec["content"] = res.Content

		return emailResult(rec)

	case *attachment.Image:
		rec := attachmentMeta(res.Meta)
		rec["savedTo"] = res.SavedPath

		boundary := sanitize.NewBoundary()
		serialized, err := marshalRecord(sanitize.Message(rec, boundary))
		if err != nil {
			return nil, err
		}

		// The image payload is binary and goes out as its own content
		// part; it is not subject to field wrapping.
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: sanitize.SecurityContext(boundary)},
				&mcp.TextContent{Text: serialized},
				&mcp.ImageContent{Data: res.Data, MIMEType: res.MimeType},
			},
		}, nil

	case *attachment.SavedFile:
		rec := attachmentMeta(res.Meta)
		rec["savedTo"] = res.SavedPath
		// The path embeds the attacker-controlled filename, so it goes
		// through the sanitizer like any other untrusted field.
		rec["content"] = "Binary attachment saved to: " + res.SavedPath

		return emailResult(rec)

	default:
		return nil, fmt.Errorf("unknown attachment result type %T", result)
	}
}

func attachmentMeta(meta attachment.Meta) map[string]any {
	return map[string]any{
		"messageId": meta.MessageID,
		"index":     meta.Index,
		"filename":  meta.Filename,
		"mimeType":  meta.MimeType,
		"sizeBytes": meta.SizeBytes,
	}
}

func marshalRecord(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json.MarshalIndent failed: %w", err)
	}

	return string(out), nil
}
