package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/inboxpilot/internal/calendar"
	"github.com/teemow/inboxpilot/internal/gmail"
	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/slack"
	"github.com/teemow/inboxpilot/internal/store"
)

// ErrCapabilityUnavailable is returned when an operation needs a
// capability that was not configured.
var ErrCapabilityUnavailable = errors.New("capability unavailable")

// ErrIncompleteMeeting is returned by Schedule when the extracted
// details carry neither a date nor a time.
var ErrIncompleteMeeting = errors.New("meeting details missing both date and time")

// Mail is the mail capability consumed by the pipeline.
type Mail interface {
	ListRecent(ctx context.Context, maxResults int64, unreadOnly bool) ([]string, error)
	Fetch(ctx context.Context, messageID string) (*gmail.Email, error)
	Send(ctx context.Context, to, subject, body string) (string, error)
	Reply(ctx context.Context, messageID, body string) (string, error)
	MarkRead(ctx context.Context, messageID string) error
}

// Generator is the text generation capability consumed by the pipeline.
type Generator interface {
	Classify(ctx context.Context, content string) (string, error)
	Summarize(ctx context.Context, content string) (string, error)
	Draft(ctx context.Context, content, sender, extraContext string) (string, error)
	ExtractMeeting(ctx context.Context, content string) (llm.MeetingDetails, error)
	SearchQuery(ctx context.Context, content string) (string, error)
}

// Searcher is the search capability consumed by the pipeline.
type Searcher interface {
	SearchAndFormat(ctx context.Context, query string, numResults int64) (string, error)
}

// Scheduler is the calendar capability consumed by the pipeline.
type Scheduler interface {
	CreateEvent(ctx context.Context, calendarID string, input calendar.EventInput) (*calendar.EventSummary, error)
	SuggestTimes(ctx context.Context, calendarID string, day time.Time, duration time.Duration, n int) ([]string, error)
}

// Notifier is the chat notification capability consumed by the pipeline.
type Notifier interface {
	NotifyNewEmail(ctx context.Context, email slack.EmailNotification) error
	NotifyMeetingRequest(ctx context.Context, meeting slack.MeetingNotification, emailID string) error
	NotifyDraftPreview(ctx context.Context, emailID, draft string) error
}

// Records is the persistence interface consumed by the pipeline.
type Records interface {
	SaveEmail(ctx context.Context, email *store.Email) error
	GetEmail(ctx context.Context, id string) (*store.Email, error)
	ReplaceAttachments(ctx context.Context, emailID string, atts []store.Attachment) error
	SaveResponse(ctx context.Context, resp *store.Response) error
	ListRecent(ctx context.Context, limit int) ([]store.Email, error)
	ListThread(ctx context.Context, threadID string) ([]store.Email, error)
}

// Deps carries the capabilities the pipeline runs on. Mail, Generator,
// and Records are required; the rest are optional and their absence
// degrades the dependent operations.
type Deps struct {
	Mail      Mail
	Generator Generator
	Records   Records
	Searcher  Searcher
	Scheduler Scheduler
	Notifier  Notifier
	Metrics   *instrumentation.Metrics
	Audit     *instrumentation.AuditLogger
	Logger    logging.Logger
}

// Config tunes pipeline behavior.
type Config struct {
	// Account is the mail account the pipeline operates on. Used for
	// span and audit attribution only.
	Account string

	// CalendarID is the calendar events are created on. Defaults to
	// "primary".
	CalendarID string

	// TimeZone is the IANA zone created events carry.
	TimeZone string

	// SearchResults is the number of search hits used for grounding.
	SearchResults int64

	// Suggestions is the number of slot suggestions attached to an
	// analysis.
	Suggestions int
}

// Pipeline drives emails through the processing flow.
type Pipeline struct {
	mail      Mail
	gen       Generator
	records   Records
	searcher  Searcher
	scheduler Scheduler
	notifier  Notifier
	metrics   *instrumentation.Metrics
	audit     *instrumentation.AuditLogger
	log       logging.Logger

	account       string
	calendarID    string
	timezone      string
	searchResults int64
	suggestions   int
}

// New creates a pipeline from its dependencies.
func New(deps Deps, cfg Config) (*Pipeline, error) {
	if deps.Records == nil {
		return nil, fmt.Errorf("records store is required")
	}
	if deps.Logger == nil {
		deps.Logger = logging.DefaultLogger()
	}
	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}
	if cfg.SearchResults <= 0 {
		cfg.SearchResults = 5
	}
	if cfg.Suggestions <= 0 {
		cfg.Suggestions = 3
	}

	return &Pipeline{
		mail:          deps.Mail,
		gen:           deps.Generator,
		records:       deps.Records,
		searcher:      deps.Searcher,
		scheduler:     deps.Scheduler,
		notifier:      deps.Notifier,
		metrics:       deps.Metrics,
		audit:         deps.Audit,
		log:           deps.Logger,
		account:       cfg.Account,
		calendarID:    cfg.CalendarID,
		timezone:      cfg.TimeZone,
		searchResults: cfg.SearchResults,
		suggestions:   cfg.Suggestions,
	}, nil
}

// begin opens the action span for an operation. The returned context
// carries the span so capability spans nest under it. emailID may be
// empty for operations that act on a batch.
func (p *Pipeline) begin(ctx context.Context, action, emailID string) (context.Context, trace.Span) {
	attrs := instrumentation.NewSpanAttributeBuilder().
		WithAccount(p.account).
		WithResource("email", emailID).
		Build()
	return instrumentation.StartActionSpan(ctx, action, attrs...)
}

// record closes the action span and emits the pipeline action metric
// and audit entry for an operation.
func (p *Pipeline) record(ctx context.Context, span trace.Span, action string, start time.Time, err error) {
	if err != nil {
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	span.End()

	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	p.metrics.RecordPipelineAction(ctx, action, status, time.Since(start))

	if p.audit != nil {
		ai := instrumentation.NewActionInvocation(action).
			WithAccount(p.account).
			WithSpanContext(ctx)
		ai.StartTime = start
		p.audit.LogActionInvocation(ai.Complete(err == nil, err))
	}
}

// capability closes the capability span opened for a provider call and
// emits the matching operation metric.
func (p *Pipeline) capability(ctx context.Context, span trace.Span, service, operation string, start time.Time, err error) {
	if err != nil {
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	span.End()

	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	p.metrics.RecordCapabilityOperation(ctx, service, operation, status, time.Since(start))
}

func (p *Pipeline) requireMail() error {
	if p.mail == nil {
		return fmt.Errorf("%w: mail", ErrCapabilityUnavailable)
	}
	return nil
}

func (p *Pipeline) requireGenerator() error {
	if p.gen == nil {
		return fmt.Errorf("%w: text generation", ErrCapabilityUnavailable)
	}
	return nil
}

func (p *Pipeline) requireScheduler() error {
	if p.scheduler == nil {
		return fmt.Errorf("%w: calendar", ErrCapabilityUnavailable)
	}
	return nil
}

func (p *Pipeline) requireNotifier() error {
	if p.notifier == nil {
		return fmt.Errorf("%w: notifications", ErrCapabilityUnavailable)
	}
	return nil
}

// truncate shortens s to at most n runes for notification previews.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
