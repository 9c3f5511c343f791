package tool

import (
	"encoding/base64"

	"google.golang.org/api/gmail/v1"

	"github.com/wrxck/gmail-mcp/internal/attachment"
)

// summaryHeaders maps message headers onto summary record fields.
var summaryHeaders = map[string]string{
	"From":    "from",
	"To":      "to",
	"Subject": "subject",
	"Date":    "date",
}

// buildSummaryRecord converts a metadata-format message into a summary
// record. Header fields default to empty strings so the record shape is
// stable regardless of what the message carries.
func buildSummaryRecord(msg *gmail.Message) map[string]any {
	rec := map[string]any{
		"id":       msg.Id,
		"threadId": msg.ThreadId,
		"snippet":  msg.Snippet,
		"from":     "",
		"to":       "",
		"subject":  "",
		"date":     "",
	}

	fillHeaders(msg, rec)

	return rec
}

// buildMessageRecord converts a full-format message into the record returned
// by read_email: summary headers plus body, labels and attachment metadata.
func buildMessageRecord(msg *gmail.Message, conv htmlStripper) map[string]any {
	rec := map[string]any{
		"id":       msg.Id,
		"threadId": msg.ThreadId,
		"from":     "",
		"to":       "",
		"subject":  "",
		"date":     "",
	}

	fillHeaders(msg, rec)

	rec["body"] = extractBody(msg.Payload, conv)

	if msg.LabelIds != nil {
		rec["labels"] = msg.LabelIds
	}

	if descriptors := attachment.Collect(msg.Payload); len(descriptors) > 0 {
		records := make([]map[string]any, 0, len(descriptors))
		for _, d := range descriptors {
			records = append(records, map[string]any{
				"index":     d.Index,
				"filename":  d.Filename,
				"mimeType":  d.MimeType,
				"sizeBytes": d.SizeBytes,
			})
		}
		rec["attachments"] = records
	}

	return rec
}

func fillHeaders(msg *gmail.Message, rec map[string]any) {
	if msg.Payload == nil {
		return
	}

	for _, header := range msg.Payload.Headers {
		if field, ok := summaryHeaders[header.Name]; ok {
			rec[field] = header.Value
		}
	}
}

// extractBody returns the message body as plain text, preferring a text/plain
// part anywhere in the tree and falling back to stripped text/html. Missing
// bodies degrade to an empty string.
func extractBody(payload *gmail.MessagePart, conv htmlStripper) string {
	if plain, ok := findBodyByMimeType(payload, "text/plain"); ok {
		return plain
	}

	if htmlBody, ok := findBodyByMimeType(payload, "text/html"); ok {
		return conv.StripHTML(htmlBody)
	}

	return ""
}

func findBodyByMimeType(part *gmail.MessagePart, target string) (string, bool) {
	if part == nil {
		return "", false
	}

	if part.MimeType == target && part.Body != nil && part.Body.Data != "" {
		return decodeBase64URL(part.Body.Data), true
	}

	for _, child := range part.Parts {
		if body, ok := findBodyByMimeType(child, target); ok {
			return body, true
		}
	}

	return "", false
}

func decodeBase64URL(data string) string {
	decoded, err := decodeBase64URLBytes(data)
	if err != nil {
		return data
	}

	return string(decoded)
}

func decodeBase64URLBytes(data string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return base64.RawURLEncoding.DecodeString(data)
	}

	return decoded, nil
}
