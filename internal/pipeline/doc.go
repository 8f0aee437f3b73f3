// Package pipeline orchestrates the email processing flow across the
// capability clients.
//
// Processing is operator driven and synchronous. An email moves through
// fetch, classify, optional meeting extraction, optional search
// augmentation, and drafting; the operator then dispatches zero or more
// terminal actions (send, notify, schedule). Drafts stay in operator
// hands until a dispatch action, and a sent reply is recorded only after
// the provider confirmed the send.
package pipeline
