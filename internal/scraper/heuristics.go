package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// weekdayNames drive the date-span heuristic: a text fragment mentioning a
// weekday is assumed to be the event date. First match wins.
var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// sportTags are category labels that show up between the geography fragments
// and must never be mistaken for a location.
var sportTags = []string{
	"mma", "boxing", "kickboxing", "muay thai", "grappling", "bjj", "bareknuckle",
}

// venueKeywords mark fragments that name the venue rather than the place.
var venueKeywords = []string{
	"arena", "stadium", "center", "centre", "casino", "hall",
	"garden", "dome", "coliseum", "pavilion", "theater", "theatre",
}

// containsWeekday reports whether the text mentions any weekday name.
func containsWeekday(text string) bool {
	for _, day := range weekdayNames {
		if strings.Contains(text, day) {
			return true
		}
	}
	return false
}

func isSportTag(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, tag := range sportTags {
		if lower == tag {
			return true
		}
	}
	return false
}

func hasVenueKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range venueKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isLocationFragment applies the fragment filters: long enough, not a sport
// category tag, not a venue name.
func isLocationFragment(text string) bool {
	if len(text) <= 2 {
		return false
	}
	return !isSportTag(text) && !hasVenueKeyword(text)
}

// locationRules is the ranked heuristic list for locating the event's place
// inside a listing container. The first rule returning a value wins; adding
// a new heuristic is a pure insertion.
var locationRules = []ElementHandler{
	locationFromFragments,
	locationFromBulletSplit,
}

// locationFromFragments scans the geography fragments for the first one that
// passes the fragment filters.
func locationFromFragments(sel *goquery.Selection) string {
	var found string
	sel.Find(listingGeographySpanSelector).EachWithBreak(func(_ int, span *goquery.Selection) bool {
		text := strings.TrimSpace(span.Text())
		if isLocationFragment(text) {
			found = text
			return false
		}
		return true
	})
	return found
}

// locationFromBulletSplit falls back to splitting the raw geography text on
// the literal bullet separator.
func locationFromBulletSplit(sel *goquery.Selection) string {
	raw := sel.Find(listingGeographySelector).Text()
	for _, frag := range strings.Split(raw, "•") {
		frag = strings.TrimSpace(frag)
		if len(frag) > 2 && !isSportTag(frag) {
			return frag
		}
	}
	return ""
}
