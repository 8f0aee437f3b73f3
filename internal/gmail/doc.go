// Package gmail provides the mail capability over the Gmail API.
//
// It covers the operations the processing pipeline needs:
//   - listing recent (optionally unread-only) message ids
//   - fetching and parsing a message into a flat Email value, including
//     recursive body extraction from nested MIME parts and attachment
//     retrieval
//   - sending mail, with correct In-Reply-To/References threading when
//     replying
//   - marking messages read
//
// Body extraction walks the part tree depth first: the first text/plain
// leaf wins; failing that, the first text/html leaf is used with tags
// stripped; failing that, a literal no-content sentinel is returned.
//
// Authentication uses the cached Google OAuth token from the google
// package.
package gmail
