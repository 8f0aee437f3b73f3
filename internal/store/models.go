package store

import (
	"time"
)

// Email is a stored inbound message. Rows are immutable after ingest; a
// re-fetch of the same provider id replaces the row wholesale (upsert).
type Email struct {
	// ID is the provider message id, globally unique and stable across
	// re-fetch.
	ID            string    `gorm:"primaryKey"`
	Sender        string    `gorm:"not null"`
	Recipient     string    `gorm:"not null"`
	Subject       string    `gorm:"not null"`
	Body          string    `gorm:"type:text"`
	Timestamp     time.Time `gorm:"index"`
	ThreadID      string    `gorm:"index"`
	HasAttachment bool

	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE"`
	Responses   []Response   `gorm:"constraint:OnDelete:CASCADE"`
}

// Attachment is an opaque payload pulled from a message during ingest.
type Attachment struct {
	// ID is generated at ingest time.
	ID          string `gorm:"primaryKey"`
	EmailID     string `gorm:"index;not null"`
	Filename    string `gorm:"not null"`
	ContentType string
	Size        int64
	// Data holds the provider's base64url-encoded payload verbatim.
	Data string `gorm:"type:text"`
}

// Response is an operator-approved reply. Content never mutates after
// creation; an edit produces a new row. Sent is true only for rows recorded
// after a confirmed dispatch.
type Response struct {
	// ID is generated when the response is recorded.
	ID        string `gorm:"primaryKey"`
	EmailID   string `gorm:"index;not null"`
	Content   string `gorm:"type:text"`
	Timestamp time.Time
	Sent      bool
}
