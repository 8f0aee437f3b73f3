package gmail

import (
	"encoding/base64"
	"html"
	"regexp"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// maxPartDepth caps recursion into nested multipart structures. Real
// messages rarely nest more than three or four levels; anything deeper is
// treated as having no further textual content.
const maxPartDepth = 10

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ExtractBody walks a message payload depth first and returns the best
// textual body per the precedence policy: first text/plain leaf, else first
// text/html leaf with tags stripped, else the no-content sentinel.
func ExtractBody(payload *gmail.MessagePart) string {
	if plain := findLeaf(payload, "text/plain", 0); plain != "" {
		return plain
	}
	if htmlBody := findLeaf(payload, "text/html", 0); htmlBody != "" {
		return StripHTML(htmlBody)
	}
	return NoContentSentinel
}

// findLeaf returns the decoded content of the first leaf with the given
// MIME type, searching depth first.
func findLeaf(part *gmail.MessagePart, mimeType string, depth int) string {
	if part == nil || depth > maxPartDepth {
		return ""
	}

	if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
		if decoded, err := DecodeBody(part.Body.Data); err == nil {
			return decoded
		}
		return ""
	}

	for _, sub := range part.Parts {
		if body := findLeaf(sub, mimeType, depth+1); body != "" {
			return body
		}
	}

	return ""
}

// DecodeBody decodes a base64url-encoded body payload. Gmail uses RFC 4648
// base64url; some providers hand back standard base64, so that is tried as
// a fallback.
func DecodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return "", err
		}
	}
	return string(decoded), nil
}

// StripHTML removes markup from an HTML body: entities are unescaped, tags
// are removed by pattern (not a full parser, by policy), and whitespace is
// collapsed.
func StripHTML(htmlContent string) string {
	text := html.UnescapeString(htmlContent)
	text = tagPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
