package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teemow/inboxpilot/internal/instrumentation"
	"github.com/teemow/inboxpilot/internal/llm"
	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/store"
)

// Analysis is the outcome of classifying a stored email.
type Analysis struct {
	Email          *store.Email
	Classification string
	Summary        string

	// Meeting is set when the classification flagged a meeting request.
	Meeting *llm.MeetingDetails

	// Suggestions are free slot proposals, present when a meeting was
	// extracted with a date and the calendar capability is available.
	Suggestions []string
}

// IsMeetingRequest reports whether the classification flagged the email
// as a meeting request.
func (a *Analysis) IsMeetingRequest() bool {
	return strings.Contains(a.Classification, llm.CategoryMeetingRequest)
}

// Analyze classifies and summarizes a stored email. When the
// classification contains the meeting request marker, meeting details
// are extracted, and if they carry a date, slot suggestions are attached.
func (p *Pipeline) Analyze(ctx context.Context, emailID string) (_ *Analysis, err error) {
	ctx, span := p.begin(ctx, "analyze", emailID)
	start := time.Now()
	defer func() { p.record(ctx, span, "analyze", start, err) }()

	if err = p.requireGenerator(); err != nil {
		return nil, err
	}

	email, err := p.records.GetEmail(ctx, emailID)
	if err != nil {
		return nil, err
	}

	classifyCtx, classifySpan := instrumentation.StartCapabilitySpan(ctx, instrumentation.ServiceLLM, "classify")
	classifyStart := time.Now()
	classification, err := p.gen.Classify(classifyCtx, email.Body)
	p.capability(classifyCtx, classifySpan, instrumentation.ServiceLLM, "classify", classifyStart, err)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	analysis := &Analysis{
		Email:          email,
		Classification: classification,
	}

	summary, err := p.gen.Summarize(ctx, email.Body)
	if err != nil {
		p.log.Warn("summarization failed",
			logging.KeyEmailID, emailID,
			logging.KeyError, err.Error(),
		)
	} else {
		analysis.Summary = summary
	}

	if !analysis.IsMeetingRequest() {
		return analysis, nil
	}

	details, err := p.gen.ExtractMeeting(ctx, email.Body)
	if err != nil {
		return nil, fmt.Errorf("meeting extraction failed: %w", err)
	}
	analysis.Meeting = &details

	if details.Date != "" && p.scheduler != nil {
		day, parseErr := time.Parse("2006-01-02", details.Date)
		if parseErr != nil {
			p.log.Warn("extracted meeting date not parseable, skipping slot suggestions",
				logging.KeyEmailID, emailID,
				"date", details.Date,
			)
			return analysis, nil
		}

		suggestions, slotErr := p.scheduler.SuggestTimes(ctx, p.calendarID, day, meetingDuration(details), p.suggestions)
		if slotErr != nil {
			p.log.Warn("slot suggestion failed",
				logging.KeyEmailID, emailID,
				logging.KeyError, slotErr.Error(),
			)
			return analysis, nil
		}
		analysis.Suggestions = suggestions
	}

	return analysis, nil
}

// meetingDuration resolves the extracted duration as minutes, defaulting
// to an hour.
func meetingDuration(details llm.MeetingDetails) time.Duration {
	var minutes int
	if _, err := fmt.Sscanf(strings.TrimSpace(details.Duration), "%d", &minutes); err != nil || minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}
