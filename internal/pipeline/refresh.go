package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/inboxpilot/internal/gmail"
	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/store"
)

// RefreshOptions controls an ingest run.
type RefreshOptions struct {
	// MaxResults bounds the number of messages pulled.
	MaxResults int64

	// UnreadOnly restricts the pull to unread messages.
	UnreadOnly bool

	// MarkRead marks each successfully ingested message as read.
	MarkRead bool
}

// Refresh pulls recent messages from the mail provider and persists
// them. Ingest is idempotent: re-pulling a known message updates its row
// instead of duplicating it. A single message failing to fetch or save
// is logged and skipped so the rest of the batch still lands.
func (p *Pipeline) Refresh(ctx context.Context, opts RefreshOptions) (_ []store.Email, err error) {
	ctx, span := p.begin(ctx, "refresh", "")
	start := time.Now()
	defer func() { p.record(ctx, span, "refresh", start, err) }()

	if err = p.requireMail(); err != nil {
		return nil, err
	}

	listCtx, listSpan := instrumentation.StartCapabilitySpan(ctx, instrumentation.ServiceGmail, instrumentation.OperationList)
	listStart := time.Now()
	ids, err := p.mail.ListRecent(listCtx, opts.MaxResults, opts.UnreadOnly)
	p.capability(listCtx, listSpan, instrumentation.ServiceGmail, instrumentation.OperationList, listStart, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var ingested []store.Email
	for _, id := range ids {
		email, fetchErr := p.mail.Fetch(ctx, id)
		if fetchErr != nil {
			p.log.Warn("skipping message that failed to fetch",
				logging.KeyEmailID, id,
				logging.KeyError, fetchErr.Error(),
			)
			continue
		}

		row := toStoreEmail(email)
		if saveErr := p.records.SaveEmail(ctx, row); saveErr != nil {
			p.log.Error("failed to persist email",
				logging.KeyEmailID, id,
				logging.KeyError, saveErr.Error(),
			)
			continue
		}

		atts := make([]store.Attachment, 0, len(email.Attachments))
		for _, att := range email.Attachments {
			atts = append(atts, store.Attachment{
				EmailID:     email.ID,
				Filename:    att.Filename,
				ContentType: att.ContentType,
				Size:        att.Size,
				Data:        att.Data,
			})
		}
		// Replacing rather than appending keeps re-ingest idempotent.
		if saveErr := p.records.ReplaceAttachments(ctx, email.ID, atts); saveErr != nil {
			p.log.Warn("failed to persist attachments",
				logging.KeyEmailID, id,
				logging.KeyError, saveErr.Error(),
			)
		}

		if opts.MarkRead {
			if markErr := p.mail.MarkRead(ctx, id); markErr != nil {
				p.log.Warn("failed to mark message as read",
					logging.KeyEmailID, id,
					logging.KeyError, markErr.Error(),
				)
			}
		}

		ingested = append(ingested, *row)
	}

	p.log.Info("refresh complete",
		"listed", len(ids),
		"ingested", len(ingested),
	)

	return ingested, nil
}

// ListRecent returns the most recently received stored emails.
func (p *Pipeline) ListRecent(ctx context.Context, limit int) ([]store.Email, error) {
	return p.records.ListRecent(ctx, limit)
}

// ListThread returns the stored emails of a thread in timestamp order.
func (p *Pipeline) ListThread(ctx context.Context, threadID string) ([]store.Email, error) {
	return p.records.ListThread(ctx, threadID)
}

// toStoreEmail converts a fetched message into its persisted form.
func toStoreEmail(email *gmail.Email) *store.Email {
	return &store.Email{
		ID:            email.ID,
		Sender:        email.Sender,
		Recipient:     email.Recipient,
		Subject:       email.Subject,
		Body:          email.Body,
		Timestamp:     email.Timestamp,
		ThreadID:      email.ThreadID,
		HasAttachment: email.HasAttachment,
	}
}
