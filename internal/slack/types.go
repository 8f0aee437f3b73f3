package slack

import "fmt"

// Block is a single Block Kit block of a message.
type Block struct {
	Type     string    `json:"type"`
	Text     *Text     `json:"text,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

// Text is a Block Kit text object.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Element is an interactive element inside an actions block.
type Element struct {
	Type  string `json:"type"`
	Text  *Text  `json:"text,omitempty"`
	Style string `json:"style,omitempty"`
	Value string `json:"value,omitempty"`
}

// OpError represents an error that occurred during a Slack operation.
type OpError struct {
	// Op is the operation that failed (e.g., "postMessage")
	Op string

	// Channel is the channel the operation targeted
	Channel string

	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("slack %s (channel: %s): %v", e.Op, e.Channel, e.Err)
	}
	return fmt.Sprintf("slack %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *OpError) Unwrap() error {
	return e.Err
}

// section builds a mrkdwn section block.
func section(text string) Block {
	return Block{
		Type: "section",
		Text: &Text{Type: "mrkdwn", Text: text},
	}
}

// actions builds an actions block from buttons.
func actions(elements ...Element) Block {
	return Block{
		Type:     "actions",
		Elements: elements,
	}
}

// button builds a plain text button element.
func button(label, style, value string) Element {
	return Element{
		Type:  "button",
		Text:  &Text{Type: "plain_text", Text: label},
		Style: style,
		Value: value,
	}
}
