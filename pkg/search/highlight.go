package search

// Fragment is a piece of segment text, highlighted when it was matched
type Fragment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// Highlight splits text into fragments along spans. Spans must be sorted
// and non-overlapping, as Search produces them; any span that is out of
// range or overlaps an earlier one is skipped.
func Highlight(text string, spans []Span) []Fragment {
	if len(spans) == 0 {
		return []Fragment{{Text: text}}
	}

	runes := []rune(text)
	fragments := make([]Fragment, 0, len(spans)*2+1)
	last := 0
	for _, sp := range spans {
		if sp.Start < last || sp.End <= sp.Start || sp.End > len(runes) {
			continue
		}
		if sp.Start > last {
			fragments = append(fragments, Fragment{Text: string(runes[last:sp.Start])})
		}
		fragments = append(fragments, Fragment{Text: string(runes[sp.Start:sp.End]), Highlighted: true})
		last = sp.End
	}
	if last < len(runes) {
		fragments = append(fragments, Fragment{Text: string(runes[last:])})
	}
	return fragments
}
