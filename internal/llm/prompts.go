package llm

import (
	"context"
	"fmt"
)

// Email categories produced by classification. Classification output is
// free text; these are the labels the prompt asks for.
const (
	CategoryMeetingRequest = "Meeting Request"
	CategoryQuestion       = "Question"
	CategoryTask           = "Task"
	CategoryFYI            = "FYI"
)

const classifyPrompt = `Email: %s

Classify this email into one of the following categories:
1. Meeting Request - Requires scheduling
2. Question - Requires information
3. Task - Requires an action
4. FYI - Just informational

Category and explanation:
`

const summarizePrompt = `Email: %s

Provide a concise summary of this email in 1-2 sentences:
`

const draftPrompt = `Email from %s: %s

%s

Draft a professional and concise response addressing their questions or requests:
`

const extractMeetingPrompt = `Email: %s

Extract the following meeting details from this email:
- Date (YYYY-MM-DD format)
- Time (HH:MM format, specify timezone if mentioned)
- Duration (in minutes)
- Title or Subject
- Participants (comma-separated list)
- Location (physical or virtual)

Format your response as:
Date: [date]
Time: [time]
Duration: [duration]
Title: [title]
Participants: [participants]
Location: [location]
`

const searchQueryPrompt = `Email: %s

Generate a concise search query to find information that would help respond to this email:
`

// Classify determines the category of an email. The result is the raw
// model output, typically a label followed by an explanation.
func (c *Client) Classify(ctx context.Context, emailContent string) (string, error) {
	return c.Complete(ctx, fmt.Sprintf(classifyPrompt, emailContent))
}

// Summarize produces a one to two sentence summary of an email.
func (c *Client) Summarize(ctx context.Context, emailContent string) (string, error) {
	return c.Complete(ctx, fmt.Sprintf(summarizePrompt, emailContent))
}

// Draft generates a reply to an email. Additional context, such as
// formatted search results, is included when non-empty.
func (c *Client) Draft(ctx context.Context, emailContent, sender, extraContext string) (string, error) {
	contextSection := "No additional context provided."
	if extraContext != "" {
		contextSection = "Additional context: " + extraContext
	}
	return c.Complete(ctx, fmt.Sprintf(draftPrompt, sender, emailContent, contextSection))
}

// ExtractMeeting extracts structured meeting details from an email.
func (c *Client) ExtractMeeting(ctx context.Context, emailContent string) (MeetingDetails, error) {
	out, err := c.Complete(ctx, fmt.Sprintf(extractMeetingPrompt, emailContent))
	if err != nil {
		return MeetingDetails{}, err
	}
	return ParseMeetingDetails(out), nil
}

// SearchQuery generates a web search query grounding a reply to the email.
func (c *Client) SearchQuery(ctx context.Context, emailContent string) (string, error) {
	return c.Complete(ctx, fmt.Sprintf(searchQueryPrompt, emailContent))
}
