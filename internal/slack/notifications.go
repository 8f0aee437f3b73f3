package slack

import (
	"context"
	"fmt"
)

// notSpecified fills meeting fields the extraction could not resolve.
const notSpecified = "Not specified"

// EmailNotification carries the fields shown in a new-email message.
type EmailNotification struct {
	ID        string
	Sender    string
	Subject   string
	Summary   string
	Timestamp string
}

// MeetingNotification carries the extracted details shown in a
// meeting-request card.
type MeetingNotification struct {
	Title        string
	Date         string
	Time         string
	Duration     string
	Participants string
	Location     string
}

// NotifyNewEmail posts a new-email notification with a View Email button
// carrying the email ID.
func (c *Client) NotifyNewEmail(ctx context.Context, email EmailNotification) error {
	sender := orDefault(email.Sender, "Unknown")
	subject := orDefault(email.Subject, "No Subject")
	summary := orDefault(email.Summary, "No summary available")
	timestamp := orDefault(email.Timestamp, "Unknown time")

	text := fmt.Sprintf("*New Email Received*\n*From:* %s\n*Subject:* %s\n*Summary:* %s\n\n_Received at: %s_",
		sender, subject, summary, timestamp)

	blocks := []Block{
		section(text),
		actions(
			button("View Email", "", email.ID),
		),
	}

	return c.PostMessage(ctx, "", text, blocks)
}

// NotifyMeetingRequest posts a meeting-request card with accept and
// decline buttons. Button values encode the action and the email ID.
func (c *Client) NotifyMeetingRequest(ctx context.Context, meeting MeetingNotification, emailID string) error {
	text := fmt.Sprintf("*Meeting Request*\n*Title:* %s\n*Date:* %s\n*Time:* %s\n*Duration:* %s minutes\n*Participants:* %s\n*Location:* %s\n\n_From email: %s_",
		orDefault(meeting.Title, "Untitled Meeting"),
		orDefault(meeting.Date, notSpecified),
		orDefault(meeting.Time, notSpecified),
		orDefault(meeting.Duration, notSpecified),
		orDefault(meeting.Participants, notSpecified),
		orDefault(meeting.Location, notSpecified),
		emailID)

	blocks := []Block{
		section(text),
		actions(
			button("Accept Meeting", "primary", "accept_"+emailID),
			button("Decline Meeting", "danger", "decline_"+emailID),
		),
	}

	return c.PostMessage(ctx, "", text, blocks)
}

// NotifyDraftPreview posts a draft reply for review with send and edit
// buttons.
func (c *Client) NotifyDraftPreview(ctx context.Context, emailID, draft string) error {
	text := fmt.Sprintf("*Draft Email Response*\n%s\n\n_For email ID: %s_", draft, emailID)

	blocks := []Block{
		section(text),
		actions(
			button("Send Response", "primary", "send_"+emailID),
			button("Edit Response", "", "edit_"+emailID),
		),
	}

	return c.PostMessage(ctx, "", text, blocks)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
