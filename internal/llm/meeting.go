package llm

import "strings"

// MeetingDetails holds the labeled fields extracted from a meeting
// request email. Unknown labels the model produced are kept in Extra.
type MeetingDetails struct {
	Date         string
	Time         string
	Duration     string
	Title        string
	Participants string
	Location     string
	Extra        map[string]string
}

// ParseMeetingDetails parses model output of "Label: value" lines. Lines
// without a colon are dropped; only the first colon splits, so values may
// themselves contain colons (times, URLs).
func ParseMeetingDetails(output string) MeetingDetails {
	var details MeetingDetails

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Date":
			details.Date = value
		case "Time":
			details.Time = value
		case "Duration":
			details.Duration = value
		case "Title":
			details.Title = value
		case "Participants":
			details.Participants = value
		case "Location":
			details.Location = value
		default:
			if details.Extra == nil {
				details.Extra = make(map[string]string)
			}
			details.Extra[key] = value
		}
	}

	return details
}

// Complete reports whether enough was extracted to schedule: at least a
// date or a time must be present.
func (d MeetingDetails) Complete() bool {
	return d.Date != "" || d.Time != ""
}
