package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/inboxpilot/internal/google"
)

// Client wraps the Gmail Users service for a single account.
type Client struct {
	svc     *gmail.UsersService
	account string
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account.
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Gmail client with OAuth2 authentication
// for a specific account.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := gmail.New(client)
	if err != nil {
		return nil, err
	}

	return &Client{
		svc:     svc.Users,
		account: account,
	}, nil
}

// NewClient creates a new Gmail client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListRecent lists the IDs of the most recent messages in the inbox.
// When unreadOnly is set, only unread messages are returned.
func (c *Client) ListRecent(ctx context.Context, maxResults int64, unreadOnly bool) ([]string, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	labels := []string{"INBOX"}
	if unreadOnly {
		labels = append(labels, "UNREAD")
	}

	var ids []string
	pageToken := ""

	for {
		remaining := maxResults - int64(len(ids))
		if remaining <= 0 {
			break
		}

		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Messages.List("me").LabelIds(labels...).MaxResults(pageSize).Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		for _, m := range res.Messages {
			ids = append(ids, m.Id)
		}

		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(ids)) > maxResults {
		ids = ids[:maxResults]
	}

	return ids, nil
}

// Fetch retrieves a full message and converts it into the local Email
// representation, including attachment content.
func (c *Client) Fetch(ctx context.Context, messageID string) (*Email, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}

	email := &Email{
		ID:        msg.Id,
		ThreadID:  msg.ThreadId,
		Sender:    HeaderValue(msg, "From"),
		Recipient: HeaderValue(msg, "To"),
		Subject:   HeaderValue(msg, "Subject"),
		Body:      ExtractBody(msg.Payload),
		Timestamp: messageTime(msg),
	}

	attachments, err := c.fetchAttachments(ctx, msg)
	if err != nil {
		return nil, err
	}
	email.Attachments = attachments
	email.HasAttachment = len(attachments) > 0

	return email, nil
}

// fetchAttachments collects attachment parts from the message tree and
// downloads their content. Oversized attachments are kept as metadata only.
func (c *Client) fetchAttachments(ctx context.Context, msg *gmail.Message) ([]Attachment, error) {
	var attachments []Attachment

	var walk func(part *gmail.MessagePart, depth int) error
	walk = func(part *gmail.MessagePart, depth int) error {
		if part == nil || depth > maxPartDepth {
			return nil
		}
		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			att := Attachment{
				Filename:    part.Filename,
				ContentType: part.MimeType,
				Size:        part.Body.Size,
			}
			if part.Body.Size <= MaxAttachmentSize {
				body, err := c.svc.Messages.Attachments.Get("me", msg.Id, part.Body.AttachmentId).Context(ctx).Do()
				if err != nil {
					return fmt.Errorf("failed to get attachment %s: %w", part.Filename, err)
				}
				att.Data = body.Data
			}
			attachments = append(attachments, att)
		}
		for _, sub := range part.Parts {
			if err := walk(sub, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(msg.Payload, 0); err != nil {
		return nil, err
	}
	return attachments, nil
}

// MarkRead removes the UNREAD label from a message.
func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to mark message %s as read: %w", messageID, err)
	}
	return nil
}

// Send sends a plain text email through the Gmail API and returns the
// sent message ID.
func (c *Client) Send(ctx context.Context, to, subject, body string) (string, error) {
	if to == "" {
		return "", fmt.Errorf("recipient is required")
	}
	if body == "" {
		return "", fmt.Errorf("body is required")
	}

	raw := buildMessage(to, subject, body, "", "")
	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}

// Reply sends a reply to an existing message, preserving the thread by
// setting In-Reply-To and References from the original headers.
func (c *Client) Reply(ctx context.Context, messageID, body string) (string, error) {
	if messageID == "" {
		return "", fmt.Errorf("messageID is required")
	}
	if body == "" {
		return "", fmt.Errorf("body is required")
	}

	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get original message: %w", err)
	}

	originalFrom := HeaderValue(msg, "From")
	if originalFrom == "" {
		return "", fmt.Errorf("original message has no From header")
	}
	// The From header may carry a display name ("Jane <jane@x>");
	// address the reply to the bare address.
	to := ExtractAddress(originalFrom)

	originalMessageID := HeaderValue(msg, "Message-ID")
	subject := ReplySubject(HeaderValue(msg, "Subject"))
	references := BuildReferences(HeaderValue(msg, "References"), originalMessageID)

	raw := buildReplyMessage(to, subject, body, originalMessageID, references)
	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw:      raw,
		ThreadId: msg.ThreadId,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send reply: %w", err)
	}
	return sent.Id, nil
}

// HeaderValue returns the value of a named header from a message payload.
// Header name matching is case insensitive.
func HeaderValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// messageTime resolves the message timestamp from the Date header,
// falling back to the server internal date, then to now.
func messageTime(msg *gmail.Message) time.Time {
	if date := HeaderValue(msg, "Date"); date != "" {
		if t, err := mail.ParseDate(date); err == nil {
			return t
		}
	}
	if msg.InternalDate > 0 {
		return time.UnixMilli(msg.InternalDate)
	}
	return time.Now()
}

// ReplySubject prefixes a subject with "Re: " unless it already carries a
// reply prefix in any casing.
func ReplySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

// BuildReferences extends an existing References header with the original
// Message-ID per RFC 2822 threading rules.
func BuildReferences(existing, messageID string) string {
	if existing == "" {
		return messageID
	}
	if messageID == "" {
		return existing
	}
	return existing + " " + messageID
}

// encodeRFC2047 encodes a header value when it contains non-ASCII
// characters, per RFC 2047.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

// buildMessage assembles an RFC 2822 plain text message and returns it
// base64url encoded for the Gmail API.
func buildMessage(to, subject, body, inReplyTo, references string) string {
	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(to)
	b.WriteString("\r\n")

	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(subject))
	b.WriteString("\r\n")

	if inReplyTo != "" {
		b.WriteString("In-Reply-To: ")
		b.WriteString(inReplyTo)
		b.WriteString("\r\n")
	}
	if references != "" {
		b.WriteString("References: ")
		b.WriteString(references)
		b.WriteString("\r\n")
	}

	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// buildReplyMessage assembles a reply with threading headers.
func buildReplyMessage(to, subject, body, inReplyTo, references string) string {
	return buildMessage(to, subject, body, inReplyTo, references)
}
