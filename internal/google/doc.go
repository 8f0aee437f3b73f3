// Package google manages OAuth2 authentication for the Google APIs used by
// inboxpilot (Gmail, Calendar).
//
// Tokens are cached per account under the user cache directory
// (~/.cache/inboxpilot/). The TokenProvider interface abstracts the token
// source so clients do not depend on the file-based implementation.
package google
