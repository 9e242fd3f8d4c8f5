package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func instant(year int, month time.Month, day int) NormalizedDateTime {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return NormalizedDateTime{
		DateText: t.Format(CanonicalDateLayout),
		TimeText: NA,
		Instant:  &t,
	}
}

func TestKeepTemporalWindow(t *testing.T) {
	refDate := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	cand := RawCandidate{Name: "Fighter A vs Fighter B", Promotion: "UFC"}

	// On/after the reference date.
	assert.True(t, Keep(cand, instant(2025, time.March, 20), PolicyDefault, refDate))
	assert.True(t, Keep(cand, instant(2026, time.February, 1), PolicyDefault, refDate))

	// Earlier in the reference month is still kept.
	assert.True(t, Keep(cand, instant(2025, time.March, 2), PolicyDefault, refDate))

	// A prior month is dropped.
	assert.False(t, Keep(cand, instant(2025, time.February, 20), PolicyDefault, refDate))

	// Unparsed dates are not penalized.
	unparsed := NormalizedDateTime{DateText: "TBD", TimeText: NA}
	assert.True(t, Keep(cand, unparsed, PolicyDefault, refDate))
}

func TestKeepExcludedBrandShortCircuits(t *testing.T) {
	refDate := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	dt := NormalizedDateTime{DateText: "TBD", TimeText: NA}

	// The brand exclusion fires before the title-fight rule, so even a title
	// fight under the excluded brand never reaches the generic bucket.
	cand := RawCandidate{
		Name:      "Zuffa Boxing: X vs Y",
		Promotion: "Boxing",
		Context:   "Title Fight on Netflix",
	}
	assert.False(t, Keep(cand, dt, PolicyGenericBoxing, refDate))

	// The marker also counts when it only appears in the link context.
	cand = RawCandidate{
		Name:      "X vs Y",
		Promotion: "Boxing",
		Context:   "href=/promotions/zuffa-boxing Title Fight",
	}
	assert.False(t, Keep(cand, dt, PolicyGenericBoxing, refDate))
}

func TestKeepGenericBoxingNeedsMarker(t *testing.T) {
	refDate := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	dt := NormalizedDateTime{DateText: "TBD", TimeText: NA}

	plain := RawCandidate{Name: "Journeyman vs Prospect", Promotion: "Boxing"}
	assert.False(t, Keep(plain, dt, PolicyGenericBoxing, refDate))

	titled := RawCandidate{
		Name:      "Journeyman vs Prospect",
		Promotion: "Boxing",
		Context:   "WBC Title Fight",
	}
	assert.True(t, Keep(titled, dt, PolicyGenericBoxing, refDate))

	streamed := RawCandidate{
		Name:      "Journeyman vs Prospect",
		Promotion: "Boxing",
		Context:   "Live on Netflix",
	}
	assert.True(t, Keep(streamed, dt, PolicyGenericBoxing, refDate))
}

func TestKeepBoxingNameInOtherBucket(t *testing.T) {
	refDate := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	dt := NormalizedDateTime{DateText: "TBD", TimeText: NA}

	// A name containing "boxing" makes the candidate effectively generic
	// boxing, whatever the bucket, so title-fight markers apply.
	cand := RawCandidate{
		Name:      "Misfits Boxing 21",
		Promotion: "Other",
		Context:   "World Title doubleheader",
	}
	assert.True(t, Keep(cand, dt, PolicyCatchAll, refDate))

	cand.Context = ""
	assert.False(t, Keep(cand, dt, PolicyCatchAll, refDate))
}

func TestKeepCatchAllStreamingOnly(t *testing.T) {
	refDate := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	dt := NormalizedDateTime{DateText: "TBD", TimeText: NA}

	plain := RawCandidate{Name: "Karate Combat 50", Promotion: "Other"}
	assert.False(t, Keep(plain, dt, PolicyCatchAll, refDate))

	streamed := RawCandidate{
		Name:      "Karate Combat 50",
		Promotion: "Other",
		Context:   "streaming on DAZN",
	}
	assert.True(t, Keep(streamed, dt, PolicyCatchAll, refDate))

	// A title fight alone is not enough for the catch-all bucket.
	titled := RawCandidate{
		Name:      "Karate Combat 50",
		Promotion: "Other",
		Context:   "Title Fight",
	}
	assert.False(t, Keep(titled, dt, PolicyCatchAll, refDate))
}

func TestKeepDefaultPolicy(t *testing.T) {
	refDate := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	dt := NormalizedDateTime{DateText: "TBD", TimeText: NA}

	cand := RawCandidate{Name: "UFC 320: A vs B", Promotion: "UFC"}
	assert.True(t, Keep(cand, dt, PolicyDefault, refDate))
}

func TestAggregatePreservesSourceOrder(t *testing.T) {
	perSource := [][]Event{
		{{EventName: "A1"}, {EventName: "A2"}},
		nil,
		{{EventName: "C1"}},
	}

	all := Aggregate(perSource)
	assert.Len(t, all, 3)
	assert.Equal(t, "A1", all[0].EventName)
	assert.Equal(t, "A2", all[1].EventName)
	assert.Equal(t, "C1", all[2].EventName)
}

func TestNewEventSentinels(t *testing.T) {
	event := NewEvent(RawCandidate{Name: "A vs B", Promotion: "UFC"}, NormalizedDateTime{})
	assert.Equal(t, "A vs B", event.EventName)
	assert.Equal(t, NA, event.DateText)
	assert.Equal(t, NA, event.TimeText)
	assert.Equal(t, NA, event.Location)
	assert.Equal(t, "UFC", event.Promotion)
	assert.Equal(t, "", event.SourceURL)

	assert.Equal(t, "T-Mobile Arena, Las Vegas", JoinLocation([]string{"T-Mobile Arena", "", " Las Vegas "}))
	assert.Equal(t, NA, JoinLocation(nil))
}
