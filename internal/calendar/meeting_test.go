package calendar

import (
	"reflect"
	"testing"
	"time"
)

func TestMeetingRequestEventInput(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 22, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       MeetingRequest
		wantStart time.Time
		wantEnd   time.Time
		wantTitle string
	}{
		{
			name: "complete details",
			req: MeetingRequest{
				Title:    "Project sync",
				Date:     "2025-03-12",
				Time:     "10:00",
				Duration: "30",
			},
			wantStart: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC),
			wantTitle: "Project sync",
		},
		{
			name: "missing date uses today",
			req: MeetingRequest{
				Time: "16:00",
			},
			wantStart: time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
			wantTitle: "Meeting",
		},
		{
			name: "missing time uses current time",
			req: MeetingRequest{
				Date: "2025-03-12",
			},
			wantStart: time.Date(2025, 3, 12, 14, 22, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 12, 15, 22, 0, 0, time.UTC),
			wantTitle: "Meeting",
		},
		{
			name: "unparseable date falls back to now",
			req: MeetingRequest{
				Date: "next Tuesday",
				Time: "10:00",
			},
			wantStart: now,
			wantEnd:   now.Add(time.Hour),
			wantTitle: "Meeting",
		},
		{
			name: "timezone annotation stripped from time",
			req: MeetingRequest{
				Date: "2025-03-12",
				Time: "10:00 UTC",
			},
			wantStart: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC),
			wantTitle: "Meeting",
		},
		{
			name: "malformed duration defaults to an hour",
			req: MeetingRequest{
				Date:     "2025-03-12",
				Time:     "10:00",
				Duration: "an hour or so",
			},
			wantStart: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC),
			wantTitle: "Meeting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.req.EventInput(now, nil)

			if !input.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", input.Start, tt.wantStart)
			}
			if !input.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", input.End, tt.wantEnd)
			}
			if input.Summary != tt.wantTitle {
				t.Errorf("Summary = %q, want %q", input.Summary, tt.wantTitle)
			}
		})
	}
}

func TestMeetingRequestTimeZonePassedThrough(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 22, 0, 0, time.UTC)
	req := MeetingRequest{
		Date:     "2025-03-12",
		Time:     "10:00",
		TimeZone: "Europe/Berlin",
	}

	if got := req.EventInput(now, nil).TimeZone; got != "Europe/Berlin" {
		t.Errorf("TimeZone = %q, want Europe/Berlin", got)
	}
}

func TestParseAttendees(t *testing.T) {
	tests := []struct {
		name         string
		participants string
		want         []string
	}{
		{
			name:         "comma separated addresses",
			participants: "alice@example.com, bob@example.com",
			want:         []string{"alice@example.com", "bob@example.com"},
		},
		{
			name:         "names without addresses dropped",
			participants: "Alice, bob@example.com, the whole team",
			want:         []string{"bob@example.com"},
		},
		{
			name:         "empty input",
			participants: "",
			want:         nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAttendees(tt.participants)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAttendees(%q) = %v, want %v", tt.participants, got, tt.want)
			}
		})
	}
}
