package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/teemow/inboxpilot/internal/logging"
)

// MeetingRequest carries the textual meeting details extracted from an
// email. Fields hold whatever the extraction produced, so every parse
// here is lenient.
type MeetingRequest struct {
	Title        string
	Date         string
	Time         string
	Duration     string
	Participants string
	Location     string
	Description  string

	// TimeZone is the IANA zone the event is created in. Empty falls
	// back to the client default.
	TimeZone string
}

// DefaultDurationMinutes applies when a meeting request has no usable
// duration.
const DefaultDurationMinutes = 60

// EventInput converts the request into a concrete event. Missing or
// unparseable date and time fall back to now, which is logged as a
// warning rather than failing the scheduling flow.
func (r MeetingRequest) EventInput(now time.Time, log logging.Logger) EventInput {
	if log == nil {
		log = logging.DefaultLogger()
	}

	start, ok := r.startTime(now)
	if !ok {
		log.Warn("meeting date or time not parseable, falling back to current time",
			"date", r.Date,
			"time", r.Time,
		)
	}

	title := r.Title
	if title == "" {
		title = "Meeting"
	}

	return EventInput{
		Summary:     title,
		Description: r.Description,
		Location:    r.Location,
		Start:       start,
		End:         start.Add(r.duration()),
		TimeZone:    r.TimeZone,
		Attendees:   ParseAttendees(r.Participants),
	}
}

// startTime resolves the start of the meeting. Dates are expected as
// 2006-01-02 and times as 15:04; missing components are taken from now.
// The second return value reports whether the provided fields parsed.
func (r MeetingRequest) startTime(now time.Time) (time.Time, bool) {
	dateStr := strings.TrimSpace(r.Date)
	if dateStr == "" {
		dateStr = now.Format("2006-01-02")
	}

	timeStr := strings.TrimSpace(r.Time)
	if timeStr == "" {
		timeStr = now.Format("15:04")
	}
	// Drop trailing timezone or AM/PM annotations.
	if fields := strings.Fields(timeStr); len(fields) > 0 {
		timeStr = fields[0]
	}

	start, err := time.ParseInLocation("2006-01-02T15:04", dateStr+"T"+timeStr, now.Location())
	if err != nil {
		return now, false
	}
	return start, true
}

// duration parses the duration field as whole minutes, defaulting when
// absent or malformed.
func (r MeetingRequest) duration() time.Duration {
	minutes, err := strconv.Atoi(strings.TrimSpace(r.Duration))
	if err != nil || minutes <= 0 {
		minutes = DefaultDurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// ParseAttendees splits a comma separated participant list into email
// addresses, dropping entries without an @.
func ParseAttendees(participants string) []string {
	if participants == "" {
		return nil
	}

	var attendees []string
	for _, participant := range strings.Split(participants, ",") {
		email := strings.TrimSpace(participant)
		if strings.Contains(email, "@") {
			attendees = append(attendees, email)
		}
	}
	return attendees
}
