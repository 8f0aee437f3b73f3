package gmail

import (
	"regexp"
	"time"
)

// NoContentSentinel is returned as the body when a message has no textual
// part at all.
const NoContentSentinel = "No content found"

// MaxAttachmentSize defines the maximum attachment size in bytes (25MB).
const MaxAttachmentSize = 25 * 1024 * 1024

// Email is a parsed inbound message.
type Email struct {
	// ID is the provider message id.
	ID            string
	Sender        string
	Recipient     string
	Subject       string
	Body          string
	Timestamp     time.Time
	ThreadID      string
	HasAttachment bool
	Attachments   []Attachment
}

// Attachment is a single attachment part pulled from a message. Data holds
// the provider's base64url-encoded payload verbatim; it is stored opaque
// and only decoded on demand.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Data        string
}

var addressPattern = regexp.MustCompile(`[\w.+-]+@[\w.-]+`)

// ExtractAddress extracts the bare address from a header value such as
// "Jane Doe <jane@example.com>". If no address is found the input is
// returned unchanged.
func ExtractAddress(headerValue string) string {
	if m := addressPattern.FindString(headerValue); m != "" {
		return m
	}
	return headerValue
}
