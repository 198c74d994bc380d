package search

// Speakers returns the distinct non-empty speaker labels in first-seen order
func Speakers(segments []Segment) []string {
	seen := make(map[string]struct{})
	speakers := []string{}
	for _, s := range segments {
		if s.Speaker == "" {
			continue
		}
		if _, ok := seen[s.Speaker]; ok {
			continue
		}
		seen[s.Speaker] = struct{}{}
		speakers = append(speakers, s.Speaker)
	}
	return speakers
}

// Bounds returns the range [0, latest end time] covering every segment
func Bounds(segments []Segment) TimeRange {
	var r TimeRange
	for _, s := range segments {
		if s.EndTime > r.End {
			r.End = s.EndTime
		}
	}
	return r
}
