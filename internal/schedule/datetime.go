package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// CanonicalDateLayout is the rendering used for every successfully parsed
// date, e.g. "Saturday, February 07".
const CanonicalDateLayout = "Monday, January 02"

// dateLayouts are tried in order against the cleaned date text. Layouts with
// an explicit year come first; the year-less layouts get the reference year
// injected afterwards.
var (
	dateLayoutsWithYear = []string{
		"January 2, 2006",
		"January 2 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
		"2 January 2006",
		"2 Jan 2006",
	}
	dateLayoutsNoYear = []string{
		"January 2",
		"Jan 2",
		"2 January",
		"2 Jan",
	}
)

var (
	weekdayRe = regexp.MustCompile(`(?i)\b(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b,?`)
	ordinalRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)\b`)
	spaceRe   = regexp.MustCompile(`\s+`)

	// clockTimeRe matches "H:MM AM/PM" with an optional trailing timezone
	// abbreviation, e.g. "3:00 AM ET" or "10:00PM".
	clockTimeRe = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*([AaPp][Mm])(\s+[A-Z]{2,5})?\b`)
)

// SplitDateTime partitions a combined "date and time" string into its date
// and time components. It is a pure partition: no characters are invented,
// and applying it again to its own date output is a no-op.
//
// Order of rules:
//  1. the literal separator " at " splits the string there;
//  2. otherwise the first clock-time pattern is the time, everything before
//     it is the date;
//  3. otherwise the whole string is a date and the time is NA.
func SplitDateTime(raw string) (datePart, timePart string) {
	if idx := strings.Index(raw, " at "); idx >= 0 {
		return strings.TrimSpace(raw[:idx]), raw[idx+len(" at "):]
	}
	if loc := clockTimeRe.FindStringIndex(raw); loc != nil {
		return strings.Trim(raw[:loc[0]], " ,\t"), raw[loc[0]:loc[1]]
	}
	return strings.TrimSpace(raw), NA
}

// NormalizeDate parses a raw date string against the known layouts and
// returns the canonical text plus the parsed instant. Weekday names and
// ordinal suffixes are stripped before parsing. Year-less dates get the
// reference year; no cross-year-boundary inference is attempted, so a
// January date scraped in December still lands in the reference year.
//
// A parse failure is data, not an error: the raw string comes back unchanged
// and the instant is nil.
func NormalizeDate(raw string, ref time.Time) (string, *time.Time) {
	cleaned := weekdayRe.ReplaceAllString(raw, "")
	cleaned = ordinalRe.ReplaceAllString(cleaned, "$1")
	cleaned = spaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.Trim(cleaned, " ,")

	if cleaned == "" {
		if strings.TrimSpace(raw) == "" {
			return NA, nil
		}
		return raw, nil
	}

	for _, layout := range dateLayoutsWithYear {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format(CanonicalDateLayout), &t
		}
	}
	for _, layout := range dateLayoutsNoYear {
		if t, err := time.Parse(layout, cleaned); err == nil {
			t = time.Date(ref.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return t.Format(CanonicalDateLayout), &t
		}
	}

	return raw, nil
}

// NormalizeTime renders a time fragment in the canonical "H:MM AM/PM [zone]"
// form, validating it against the clock. Anything unparseable becomes NA.
func NormalizeTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NA {
		return NA
	}

	m := clockTimeRe.FindStringSubmatch(raw)
	if m == nil {
		return NA
	}

	clock := fmt.Sprintf("%s:%s %s", m[1], m[2], strings.ToUpper(m[3]))
	t, err := time.Parse("3:04 PM", clock)
	if err != nil {
		return NA
	}

	out := t.Format("3:04 PM")
	if zone := strings.TrimSpace(m[4]); zone != "" {
		out += " " + zone
	}
	return out
}

// Normalize splits a combined date/time string and normalizes both halves.
func Normalize(raw string, ref time.Time) NormalizedDateTime {
	datePart, timePart := SplitDateTime(raw)
	dateText, instant := NormalizeDate(datePart, ref)
	return NormalizedDateTime{
		DateText: dateText,
		TimeText: NormalizeTime(timePart),
		Instant:  instant,
	}
}
