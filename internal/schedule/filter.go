package schedule

import (
	"strings"
	"time"
)

// Policy names the per-promotion filter rules a source is subject to.
type Policy string

const (
	// PolicyDefault keeps everything that passes the temporal window.
	PolicyDefault Policy = "default"
	// PolicyGenericBoxing is the generic "Boxing" bucket: the excluded brand
	// is dropped and only title fights or streamed cards are kept.
	PolicyGenericBoxing Policy = "generic-boxing"
	// PolicyCatchAll is the "Other" bucket: only streamed cards are kept.
	PolicyCatchAll Policy = "catch-all"
)

// excludedBrandMarker identifies the dedicated boxing brand that has its own
// source and must not also surface in the generic bucket.
const excludedBrandMarker = "zuffa"

var (
	titleFightMarkers = []string{
		"title fight",
		"world title",
		"championship",
	}
	streamingMarkers = []string{
		"netflix",
		"dazn",
		"espn+",
		"prime video",
		"amazon",
		"peacock",
		"ppv.com",
	}
)

// Keep decides whether a candidate survives filtering. The rules form a
// fixed, ordered pipeline; the first rule that fails short-circuits. Rule 3
// depends on rule 2's categorization, so the rules are not independently
// toggleable.
func Keep(c RawCandidate, dt NormalizedDateTime, policy Policy, ref time.Time) bool {
	// Rule 1: temporal window. Unparsed dates are not penalized.
	if dt.Instant != nil && !inWindow(*dt.Instant, ref) {
		return false
	}

	haystack := strings.ToLower(c.Name + " " + c.Context)

	// Rule 2: the generic bucket never carries the dedicated brand.
	if policy == PolicyGenericBoxing && strings.Contains(haystack, excludedBrandMarker) {
		return false
	}

	// Rule 3: generic-boxing and catch-all candidates need a topical marker.
	name := strings.ToLower(c.Name)
	genericBoxing := policy == PolicyGenericBoxing ||
		(strings.Contains(name, "boxing") && !strings.Contains(name, excludedBrandMarker))
	switch {
	case genericBoxing:
		return containsAny(haystack, titleFightMarkers) || containsAny(haystack, streamingMarkers)
	case policy == PolicyCatchAll:
		return containsAny(haystack, streamingMarkers)
	}

	return true
}

// inWindow reports whether the instant is in the reference month-and-year or
// on/after the reference day.
func inWindow(t, ref time.Time) bool {
	if t.Year() == ref.Year() && t.Month() == ref.Month() {
		return true
	}
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return !t.Before(refDay)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
