// Package attachment collects attachment metadata from a message part tree
// and classifies attachment content into one of three handling modes: inline
// text, inline image, or a file saved to disk.
package attachment

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/wrxck/gmail-mcp/internal/sanitize"
)

// MaxInlineImageBytes is the ceiling for returning image bytes inline.
// Larger images are saved to disk only.
const MaxInlineImageBytes = 10 * 1024 * 1024

// Descriptor identifies one attachment within a message. Index is assigned in
// depth-first traversal order of the part tree and is the handle callers use
// to request content. Part is an opaque reference used only to fetch bytes.
type Descriptor struct {
	Index     int
	Filename  string
	MimeType  string
	SizeBytes int64
	Part      *gmail.MessagePart
}

// Collect walks the part tree depth-first and returns a descriptor for every
// part that carries a filename. Indexes are stable for a given message.
func Collect(root *gmail.MessagePart) []Descriptor {
	var descriptors []Descriptor
	collectParts(root, &descriptors)

	return descriptors
}

func collectParts(part *gmail.MessagePart, result *[]Descriptor) {
	if part == nil {
		return
	}

	if part.Filename != "" {
		var size int64
		if part.Body != nil {
			size = part.Body.Size
		}
		*result = append(*result, Descriptor{
			Index:     len(*result),
			Filename:  part.Filename,
			MimeType:  part.MimeType,
			SizeBytes: size,
			Part:      part,
		})
	}

	for _, child := range part.Parts {
		collectParts(child, result)
	}
}

// Meta carries the fields shared by every classification result.
type Meta struct {
	MessageID string
	Index     int
	Filename  string
	MimeType  string
	SizeBytes int64
}

// Result is the tagged variant produced by Classify. Exactly one of Text,
// Image or SavedFile is returned per successful classification.
type Result interface {
	isResult()
}

// Text is a text attachment decoded inline; nothing is written to disk.
type Text struct {
	Meta
	Content string
}

// Image is an image small enough to return inline. The bytes are also saved
// to disk so the agent can reference the file later.
type Image struct {
	Meta
	Data      []byte
	SavedPath string
}

// SavedFile is a binary attachment persisted to disk and referenced by path.
type SavedFile struct {
	Meta
	SavedPath string
}

func (*Text) isResult()      {}
func (*Image) isResult()     {}
func (*SavedFile) isResult() {}

// FetchFunc supplies an attachment's raw bytes. Classify invokes it at most
// once. A nil byte slice means the attachment was declared but no data is
// available; classification degrades to an empty payload instead of failing.
type FetchFunc func(ctx context.Context) ([]byte, error)

type htmlStripper interface {
	StripHTML(raw string) string
}

// Classifier decides how to surface attachment content.
type Classifier struct {
	store *Store
	conv  htmlStripper
}

// NewClassifier creates a Classifier persisting non-text attachments through
// store and stripping text/html attachments with conv.
func NewClassifier(store *Store, conv htmlStripper) *Classifier {
	return &Classifier{store: store, conv: conv}
}

// Classify fetches the attachment's bytes and produces the matching result
// variant. Text attachments are decoded and truncated without touching disk;
// everything else is saved under the store's base directory, and images up to
// MaxInlineImageBytes additionally carry their bytes inline.
func (c *Classifier) Classify(ctx context.Context, messageID string, d Descriptor, fetch FetchFunc) (Result, error) {
	meta := Meta{
		MessageID: messageID,
		Index:     d.Index,
		Filename:  d.Filename,
		MimeType:  d.MimeType,
		SizeBytes: d.SizeBytes,
	}

	if strings.HasPrefix(d.MimeType, "text/") {
		data, err := fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch attachment failed: %w", err)
		}

		content := string(data)
		if d.MimeType == "text/html" {
			content = c.conv.StripHTML(content)
		}
		content = sanitize.Truncate(content, sanitize.MaxAttachmentLength)

		return &Text{Meta: meta, Content: content}, nil
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch attachment failed: %w", err)
	}
	if data == nil {
		data = []byte{}
	}

	savedPath, err := c.store.Save(messageID, d.Filename, data)
	if err != nil {
		return nil, fmt.Errorf("store.Save failed: %w", err)
	}

	if strings.HasPrefix(d.MimeType, "image/") && len(data) > 0 && len(data) <= MaxInlineImageBytes {
		return &Image{Meta: meta, Data: data, SavedPath: savedPath}, nil
	}

	return &SavedFile{Meta: meta, SavedPath: savedPath}, nil
}
