package schedule

// Aggregate concatenates per-source results in source-list order. No
// deduplication or cross-source merge is performed; the result is handed
// unchanged to the output collaborators.
func Aggregate(perSource [][]Event) []Event {
	total := 0
	for _, events := range perSource {
		total += len(events)
	}
	all := make([]Event, 0, total)
	for _, events := range perSource {
		all = append(all, events...)
	}
	return all
}
