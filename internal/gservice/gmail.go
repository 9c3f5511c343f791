// Package gservice wraps the Gmail API service used by the MCP tools.
package gservice

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/wrxck/gmail-mcp/internal/auth"
)

const gmailUserID = "me"

// metadataHeaders are the headers requested for message summaries.
var metadataHeaders = []string{"From", "To", "Subject", "Date"}

// NewGmail creates a Gmail API wrapper authenticated through tok.
func NewGmail(cfg *oauth2.Config, tok *auth.Token) *GMail {
	return &GMail{
		cfg: cfg,
		tok: tok,
	}
}

// GMail provides read-only access to the user's mailbox.
type GMail struct {
	cfg *oauth2.Config
	tok *auth.Token
}

// ListMessages returns message ids matching the query, up to maxResults.
func (m *GMail) ListMessages(ctx context.Context, query string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	call := svc.Users.Messages.List(gmailUserID).MaxResults(maxResults)
	if query != "" {
		call = call.Q(query)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("messages.List failed: %w", err)
	}

	return result, nil
}

// GetMessageMetadata fetches a message's summary headers only.
func (m *GMail) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Messages.Get(gmailUserID, msgID).
		Format("METADATA").
		MetadataHeaders(metadataHeaders...).
		Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Get failed: %w", err)
	}

	return msg, nil
}

// GetMessage fetches a full message including its part tree.
func (m *GMail) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Messages.Get(gmailUserID, msgID).Format("FULL").Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Get failed: %w", err)
	}

	return msg, nil
}

// GetAttachment fetches the body of an attachment part by its attachment id.
func (m *GMail) GetAttachment(ctx context.Context, msgID, attachmentID string) (*gmail.MessagePartBody, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	body, err := svc.Users.Messages.Attachments.Get(gmailUserID, msgID, attachmentID).Do()
	if err != nil {
		return nil, fmt.Errorf("attachments.Get failed: %w", err)
	}

	return body, nil
}

// ListLabels returns all labels defined on the mailbox.
func (m *GMail) ListLabels(ctx context.Context) (*gmail.ListLabelsResponse, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	result, err := svc.Users.Labels.List(gmailUserID).Do()
	if err != nil {
		return nil, fmt.Errorf("labels.List failed: %w", err)
	}

	return result, nil
}

func (m *GMail) newSvc(ctx context.Context) (*gmail.Service, error) {
	t, err := m.tok.OAuthToken()
	if err != nil {
		return nil, fmt.Errorf("tok.OAuthToken failed: %w", err)
	}

	clt := m.cfg.Client(ctx, t)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(clt))
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService failed: %w", err)
	}

	return svc, nil
}
