// Package cmd implements the command-line interface for inboxpilot.
//
// This package provides the following commands:
//   - auth: Authorize Google API access and cache the OAuth token
//   - refresh: Pull recent Gmail messages into the record store
//   - list: List stored emails, newest first or by thread
//   - analyze: Classify and summarize a stored email
//   - draft: Generate a reply draft, optionally grounded with web search
//   - send: Send a reviewed reply and record it
//   - notify: Post a Slack review notification (email, draft, or meeting)
//   - schedule: Create a calendar event from a meeting request email
//   - version: Display version information
//
// Commands construct their capabilities at startup from the YAML config;
// capabilities without credentials are left unconfigured and the
// corresponding commands report them as unavailable.
package cmd
