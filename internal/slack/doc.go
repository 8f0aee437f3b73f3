// Package slack posts human-review notifications to a Slack channel via
// the chat.postMessage Web API.
//
// Three message shapes are produced: a new-email notification with a
// summary, a meeting-request card with accept and decline buttons, and a
// draft-reply preview with send and edit buttons. Button values encode
// the action and the email ID so an interaction handler can resolve them
// later.
package slack
