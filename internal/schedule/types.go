package schedule

import (
	"strings"
	"time"
)

// NA is the sentinel used for fields that could not be extracted or parsed.
const NA = "N/A"

// Event represents one normalized upcoming event. All six fields are always
// present; missing text values carry the NA sentinel so every record has a
// uniform shape regardless of which source produced it.
type Event struct {
	EventName string `json:"event_name"`
	DateText  string `json:"date_text"`
	TimeText  string `json:"time_text"`
	Location  string `json:"location"`
	Promotion string `json:"promotion"`
	SourceURL string `json:"source_url"`
}

// RawCandidate is an extracted-but-not-yet-validated event. It lives only
// within a single adapter invocation.
type RawCandidate struct {
	Name          string
	RawDateTime   string
	LocationParts []string
	SourceURL     string
	Promotion     string
	// Context carries surrounding text near the candidate (promotion link
	// text, href, labels) and is only consulted by the filter rules.
	Context string
}

// NormalizedDateTime is the result of date/time normalization. Instant is nil
// when parsing failed; in that case DateText is the original raw string.
// When Instant is set, DateText is always the canonical rendering of it.
type NormalizedDateTime struct {
	DateText string
	TimeText string
	Instant  *time.Time
}

// NewEvent folds a candidate and its normalized date/time into a final record.
func NewEvent(c RawCandidate, dt NormalizedDateTime) Event {
	name := c.Name
	if name == "" {
		name = NA
	}
	dateText := dt.DateText
	if dateText == "" {
		dateText = NA
	}
	timeText := dt.TimeText
	if timeText == "" {
		timeText = NA
	}
	return Event{
		EventName: name,
		DateText:  dateText,
		TimeText:  timeText,
		Location:  JoinLocation(c.LocationParts),
		Promotion: c.Promotion,
		SourceURL: c.SourceURL,
	}
}

// JoinLocation joins the non-empty location fragments with a comma, the way
// venue and city appear on the source pages. Returns NA when nothing is left.
func JoinLocation(parts []string) string {
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return NA
	}
	return strings.Join(kept, ", ")
}
