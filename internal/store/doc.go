// Package store persists emails, attachments, and drafted responses in a
// local SQLite database.
//
// It is a thin CRUD facade: every operation runs in its own transaction
// scope and there is no cross-call transactional state. Email rows are
// upserted by provider message id so re-ingesting a message never creates a
// duplicate. Attachments and responses carry foreign keys to their email and
// are rejected when the parent row does not exist.
package store
