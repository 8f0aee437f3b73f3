package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/inboxpilot/internal/calendar"
	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/slack"
	"github.com/teemow/inboxpilot/internal/store"
)

// summaryPreviewLength bounds the body excerpt used when no summary is
// available for a notification.
const summaryPreviewLength = 200

// Send replies to the original sender with the operator-approved body
// and records the response. The row is persisted only after the provider
// confirmed the send, so a failed send leaves no record.
func (p *Pipeline) Send(ctx context.Context, emailID, body string) (_ string, err error) {
	ctx, span := p.begin(ctx, "send", emailID)
	start := time.Now()
	defer func() { p.record(ctx, span, "send", start, err) }()

	if err = p.requireMail(); err != nil {
		return "", err
	}
	if body == "" {
		return "", fmt.Errorf("reply body is empty")
	}

	if _, err = p.records.GetEmail(ctx, emailID); err != nil {
		return "", err
	}

	replyCtx, replySpan := instrumentation.StartCapabilitySpan(ctx, instrumentation.ServiceGmail, instrumentation.OperationSend)
	replyStart := time.Now()
	sentID, err := p.mail.Reply(replyCtx, emailID, body)
	p.capability(replyCtx, replySpan, instrumentation.ServiceGmail, instrumentation.OperationSend, replyStart, err)
	if err != nil {
		return "", fmt.Errorf("send failed: %w", err)
	}

	resp := &store.Response{
		EmailID:   emailID,
		Content:   body,
		Timestamp: time.Now(),
		Sent:      true,
	}
	if err = p.records.SaveResponse(ctx, resp); err != nil {
		return sentID, fmt.Errorf("reply sent as %s but failed to record it: %w", sentID, err)
	}

	p.log.Info("reply sent",
		logging.KeyEmailID, emailID,
		"sent_id", sentID,
	)

	return sentID, nil
}

// NotifyEmail posts a new-email notification with a summary. The summary
// is generated best effort; without one a body excerpt is used.
func (p *Pipeline) NotifyEmail(ctx context.Context, emailID string) (err error) {
	ctx, span := p.begin(ctx, "notify", emailID)
	start := time.Now()
	defer func() { p.record(ctx, span, "notify", start, err) }()

	if err = p.requireNotifier(); err != nil {
		return err
	}

	email, err := p.records.GetEmail(ctx, emailID)
	if err != nil {
		return err
	}

	summary := ""
	if p.gen != nil {
		summary, err = p.gen.Summarize(ctx, email.Body)
		if err != nil {
			p.log.Warn("summarization for notification failed",
				logging.KeyEmailID, emailID,
				logging.KeyError, err.Error(),
			)
			err = nil
		}
	}
	if summary == "" {
		summary = truncate(email.Body, summaryPreviewLength)
	}

	return p.notifier.NotifyNewEmail(ctx, slack.EmailNotification{
		ID:        email.ID,
		Sender:    email.Sender,
		Subject:   email.Subject,
		Summary:   summary,
		Timestamp: email.Timestamp.Format("2006-01-02 15:04"),
	})
}

// NotifyDraft posts a draft reply for human review.
func (p *Pipeline) NotifyDraft(ctx context.Context, emailID, draft string) (err error) {
	ctx, span := p.begin(ctx, "notify", emailID)
	start := time.Now()
	defer func() { p.record(ctx, span, "notify", start, err) }()

	if err = p.requireNotifier(); err != nil {
		return err
	}
	if draft == "" {
		return fmt.Errorf("draft is empty")
	}

	if _, err = p.records.GetEmail(ctx, emailID); err != nil {
		return err
	}

	return p.notifier.NotifyDraftPreview(ctx, emailID, draft)
}

// NotifyMeeting posts a meeting-request card for human review.
func (p *Pipeline) NotifyMeeting(ctx context.Context, emailID string, details llm.MeetingDetails) (err error) {
	ctx, span := p.begin(ctx, "notify", emailID)
	start := time.Now()
	defer func() { p.record(ctx, span, "notify", start, err) }()

	if err = p.requireNotifier(); err != nil {
		return err
	}

	return p.notifier.NotifyMeetingRequest(ctx, slack.MeetingNotification{
		Title:        details.Title,
		Date:         details.Date,
		Time:         details.Time,
		Duration:     details.Duration,
		Participants: details.Participants,
		Location:     details.Location,
	}, emailID)
}

// Schedule creates a calendar event from extracted meeting details and
// sends a confirmation reply to the original sender. Details carrying
// neither a date nor a time are rejected with ErrIncompleteMeeting.
func (p *Pipeline) Schedule(ctx context.Context, emailID string, details llm.MeetingDetails) (_ *calendar.EventSummary, err error) {
	ctx, span := p.begin(ctx, "schedule", emailID)
	start := time.Now()
	defer func() { p.record(ctx, span, "schedule", start, err) }()

	if err = p.requireScheduler(); err != nil {
		return nil, err
	}
	if !details.Complete() {
		return nil, ErrIncompleteMeeting
	}

	email, err := p.records.GetEmail(ctx, emailID)
	if err != nil {
		return nil, err
	}

	req := calendar.MeetingRequest{
		Title:        details.Title,
		Date:         details.Date,
		Time:         details.Time,
		Duration:     details.Duration,
		Participants: details.Participants,
		Location:     details.Location,
		Description:  fmt.Sprintf("Scheduled from email %q from %s", email.Subject, email.Sender),
		TimeZone:     p.timezone,
	}

	createCtx, createSpan := instrumentation.StartCapabilitySpan(ctx, instrumentation.ServiceCalendar, instrumentation.OperationCreate)
	createStart := time.Now()
	event, err := p.scheduler.CreateEvent(createCtx, p.calendarID, req.EventInput(time.Now(), p.log))
	p.capability(createCtx, createSpan, instrumentation.ServiceCalendar, instrumentation.OperationCreate, createStart, err)
	if err != nil {
		return nil, fmt.Errorf("event creation failed: %w", err)
	}

	p.log.Info("meeting scheduled",
		logging.KeyEmailID, emailID,
		"event_id", event.ID,
	)

	if p.mail != nil {
		confirmation := fmt.Sprintf(
			"I've scheduled a meeting as requested:\n\nTitle: %s\nDate: %s\nTime: %s\n\nLooking forward to our discussion.",
			orDefault(details.Title, "Meeting"),
			orDefault(details.Date, "Not specified"),
			orDefault(details.Time, "Not specified"),
		)
		if _, sendErr := p.mail.Reply(ctx, emailID, confirmation); sendErr != nil {
			p.log.Warn("confirmation email failed",
				logging.KeyEmailID, emailID,
				logging.KeyError, sendErr.Error(),
			)
		}
	}

	return event, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
