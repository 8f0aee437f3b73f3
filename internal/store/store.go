package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// StorageError wraps a persistence failure. Callers can distinguish it from
// capability errors and must not retry automatically.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store is the record store over a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema. Foreign key enforcement is enabled so attachment and response
// rows always reference an existing email.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, &StorageError{Op: "open", Err: err}
		}
	}

	dsn := fmt.Sprintf("file:%s?_fk=1", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := db.AutoMigrate(&Email{}, &Attachment{}, &Response{}); err != nil {
		return nil, &StorageError{Op: "migrate", Err: err}
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &StorageError{Op: "close", Err: err}
	}
	return sqlDB.Close()
}

// SaveEmail inserts or replaces an email row by provider id. Ingesting the
// same message twice yields exactly one row.
func (s *Store) SaveEmail(ctx context.Context, email *Email) error {
	if email.ID == "" {
		return &StorageError{Op: "save_email", Err: errors.New("email id is required")}
	}
	if email.Timestamp.IsZero() {
		email.Timestamp = time.Now()
	}

	err := s.db.WithContext(ctx).
		Omit("Attachments", "Responses").
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(email).Error
	if err != nil {
		return &StorageError{Op: "save_email", Err: err}
	}
	return nil
}

// GetEmail retrieves an email by provider id. Returns ErrNotFound when no
// such row exists.
func (s *Store) GetEmail(ctx context.Context, id string) (*Email, error) {
	var email Email
	err := s.db.WithContext(ctx).First(&email, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "get_email", Err: err}
	}
	return &email, nil
}

// ListThread returns all emails sharing a thread id, ordered by timestamp
// ascending.
func (s *Store) ListThread(ctx context.Context, threadID string) ([]Email, error) {
	var emails []Email
	err := s.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("timestamp ASC").
		Find(&emails).Error
	if err != nil {
		return nil, &StorageError{Op: "list_thread", Err: err}
	}
	return emails, nil
}

// ListRecent returns up to limit emails ordered by timestamp descending.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Email, error) {
	if limit <= 0 {
		limit = 100
	}
	var emails []Email
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&emails).Error
	if err != nil {
		return nil, &StorageError{Op: "list_recent", Err: err}
	}
	return emails, nil
}

// ReplaceAttachments replaces the attachments recorded for an email with
// the given set, so re-ingesting a message never duplicates its rows.
// Missing ids are generated. Saving against an unknown email fails.
func (s *Store) ReplaceAttachments(ctx context.Context, emailID string, atts []Attachment) error {
	if emailID == "" {
		return &StorageError{Op: "replace_attachments", Err: errors.New("email id is required")}
	}

	if err := s.requireEmail(ctx, "replace_attachments", emailID); err != nil {
		return err
	}

	for i := range atts {
		atts[i].EmailID = emailID
		if atts[i].ID == "" {
			atts[i].ID = uuid.NewString()
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email_id = ?", emailID).Delete(&Attachment{}).Error; err != nil {
			return err
		}
		if len(atts) == 0 {
			return nil
		}
		return tx.Create(&atts).Error
	})
	if err != nil {
		return &StorageError{Op: "replace_attachments", Err: err}
	}
	return nil
}

// SaveResponse records a drafted or sent response for an existing email. A
// missing id or timestamp is filled in.
func (s *Store) SaveResponse(ctx context.Context, resp *Response) error {
	if resp.EmailID == "" {
		return &StorageError{Op: "save_response", Err: errors.New("email id is required")}
	}
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}
	if resp.Timestamp.IsZero() {
		resp.Timestamp = time.Now()
	}

	if err := s.requireEmail(ctx, "save_response", resp.EmailID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(resp).Error; err != nil {
		return &StorageError{Op: "save_response", Err: err}
	}
	return nil
}

// ListResponses returns the responses recorded for an email, newest first.
func (s *Store) ListResponses(ctx context.Context, emailID string) ([]Response, error) {
	var responses []Response
	err := s.db.WithContext(ctx).
		Where("email_id = ?", emailID).
		Order("timestamp DESC").
		Find(&responses).Error
	if err != nil {
		return nil, &StorageError{Op: "list_responses", Err: err}
	}
	return responses, nil
}

// ListAttachments returns the attachments recorded for an email.
func (s *Store) ListAttachments(ctx context.Context, emailID string) ([]Attachment, error) {
	var attachments []Attachment
	err := s.db.WithContext(ctx).
		Where("email_id = ?", emailID).
		Find(&attachments).Error
	if err != nil {
		return nil, &StorageError{Op: "list_attachments", Err: err}
	}
	return attachments, nil
}

func (s *Store) requireEmail(ctx context.Context, op, emailID string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Email{}).Where("id = ?", emailID).Count(&count).Error; err != nil {
		return &StorageError{Op: op, Err: err}
	}
	if count == 0 {
		return &StorageError{Op: op, Err: fmt.Errorf("email %s does not exist", emailID)}
	}
	return nil
}
