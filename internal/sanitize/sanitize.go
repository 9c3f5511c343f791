package sanitize

// MaxBodyLength is the truncation limit for message bodies, applied before
// the body is wrapped.
const MaxBodyLength = 50_000

// MaxAttachmentLength is the truncation limit for decoded attachment text.
const MaxAttachmentLength = 100_000

const truncatedMarker = "\n[TRUNCATED]"

// untrustedFields is the closed set of record fields whose values originate
// from third-party senders. Everything else (ids, dates, labels, recipient
// display text) passes through unwrapped by contract with the Gmail API.
var untrustedFields = map[string]struct{}{
	"from":     {},
	"subject":  {},
	"snippet":  {},
	"body":     {},
	"filename": {},
	"content":  {},
}

// Wrap delimits a single untrusted value with the given boundary.
func Wrap(value, boundary string) string {
	return boundary + "\n" + value + "\n" + boundary
}

// Truncate clamps s to limit characters, appending a [TRUNCATED] marker when
// anything was cut off.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return s[:limit] + truncatedMarker
}

// Message returns a sanitized copy of one message record. The body is
// truncated to MaxBodyLength before wrapping, every untrusted field with a
// string value is wrapped, and nested attachment metadata records are wrapped
// with the same boundary. The input record is not mutated.
func Message(msg map[string]any, boundary string) map[string]any {
	sanitized := make(map[string]any, len(msg))
	for k, v := range msg {
		sanitized[k] = v
	}

	if body, ok := sanitized["body"].(string); ok {
		sanitized["body"] = Truncate(body, MaxBodyLength)
	}

	wrapUntrusted(sanitized, boundary)

	switch attachments := sanitized["attachments"].(type) {
	case []map[string]any:
		sanitized["attachments"] = wrapRecords(attachments, boundary)
	case []any:
		records := make([]map[string]any, 0, len(attachments))
		for _, item := range attachments {
			if rec, ok := item.(map[string]any); ok {
				records = append(records, rec)
			}
		}
		sanitized["attachments"] = wrapRecords(records, boundary)
	}

	return sanitized
}

// Messages sanitizes every record in the list with one shared boundary, so
// the consumer can trust a single delimiter for the whole response.
func Messages(msgs []map[string]any, boundary string) []map[string]any {
	sanitized := make([]map[string]any, 0, len(msgs))
	for _, msg := range msgs {
		sanitized = append(sanitized, Message(msg, boundary))
	}

	return sanitized
}

func wrapRecords(records []map[string]any, boundary string) []map[string]any {
	wrapped := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		cp := make(map[string]any, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		wrapUntrusted(cp, boundary)
		wrapped = append(wrapped, cp)
	}

	return wrapped
}

func wrapUntrusted(rec map[string]any, boundary string) {
	for field := range untrustedFields {
		if v, ok := rec[field].(string); ok {
			rec[field] = Wrap(v, boundary)
		}
	}
}
