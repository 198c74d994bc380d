package search

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultMinConfidence is applied when Filter.MinConfidence is nil.
	DefaultMinConfidence = 0.7

	// MaxResults bounds the number of results returned by Search.
	MaxResults = 50

	// OpenEnd marks a TimeRange with no upper bound. It is finite so
	// stored filters stay JSON encodable.
	OpenEnd = math.MaxFloat64

	exactMatchScore   = 1.0
	tokenMatchFloor   = 0.8
	tokenMatchWeight  = 0.2
	tokenMatchMinimum = 0.5
)

// Segment is one timed span of transcribed speech
type Segment struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
	Speaker   string  `json:"speaker,omitempty"`
}

// TimeRange is an inclusive [Start, End] bound in seconds
type TimeRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Valid reports whether the range is not inverted
func (r TimeRange) Valid() bool {
	return r.Start <= r.End
}

// Contains reports whether the whole segment lies inside the range
func (r TimeRange) Contains(s Segment) bool {
	return s.StartTime >= r.Start && s.EndTime <= r.End
}

// Filter restricts which segments may match. The zero value allows every
// segment and uses DefaultMinConfidence.
type Filter struct {
	Speakers      []string   `json:"speakers,omitempty"`
	TimeRange     *TimeRange `json:"time_range,omitempty"`
	MinConfidence *float64   `json:"min_confidence,omitempty"`
}

// Threshold returns the effective minimum relevance score
func (f Filter) Threshold() float64 {
	if f.MinConfidence == nil {
		return DefaultMinConfidence
	}
	return *f.MinConfidence
}

// Span is a [Start, End) range of character (rune) offsets into a segment's text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Result is one ranked match
type Result struct {
	SegmentIndex   int     `json:"segment_index"`
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	Speaker        string  `json:"speaker,omitempty"`
	Text           string  `json:"text"`
	RelevanceScore float64 `json:"relevance_score"`
	MatchSpans     []Span  `json:"match_spans"`
	ContextBefore  string  `json:"context_before"`
	ContextAfter   string  `json:"context_after"`
}

// Stats describes a single search run
type Stats struct {
	// Total counts every accepted match, including those cut by MaxResults.
	Total    int
	Duration time.Duration
}

// Search ranks segments against query. It never fails: an empty query, no
// segments or an inverted time range all yield an empty slice.
func Search(query string, segments []Segment, filter Filter) []Result {
	return truncate(rank(query, segments, filter))
}

// Timed runs Search and reports how long it took and how many segments
// matched before truncation.
func Timed(query string, segments []Segment, filter Filter) ([]Result, Stats) {
	started := time.Now()
	all := rank(query, segments, filter)
	return truncate(all), Stats{Total: len(all), Duration: time.Since(started)}
}

func truncate(results []Result) []Result {
	if len(results) > MaxResults {
		return results[:MaxResults]
	}
	return results
}

func rank(query string, segments []Segment, filter Filter) []Result {
	results := []Result{}

	m := newMatcher(query)
	if m == nil || len(segments) == 0 {
		return results
	}
	if filter.TimeRange != nil && !filter.TimeRange.Valid() {
		return results
	}

	allowed := make(map[string]struct{}, len(filter.Speakers))
	for _, s := range filter.Speakers {
		allowed[s] = struct{}{}
	}
	threshold := filter.Threshold()

	for i, seg := range segments {
		if len(allowed) > 0 {
			if _, ok := allowed[seg.Speaker]; !ok {
				continue
			}
		}
		if filter.TimeRange != nil && !filter.TimeRange.Contains(seg) {
			continue
		}

		text := fold(seg.Text)
		score := m.score(text)
		if score < threshold {
			continue
		}

		results = append(results, Result{
			SegmentIndex:   i,
			StartTime:      seg.StartTime,
			EndTime:        seg.EndTime,
			Speaker:        seg.Speaker,
			Text:           seg.Text,
			RelevanceScore: score,
			MatchSpans:     m.spans(text),
			ContextBefore:  textAt(segments, i-1),
			ContextAfter:   textAt(segments, i+1),
		})
	}

	// Stable sort keeps source order for identical (score, start) pairs.
	sort.SliceStable(results, func(a, b int) bool {
		if results[a].RelevanceScore != results[b].RelevanceScore {
			return results[a].RelevanceScore > results[b].RelevanceScore
		}
		return results[a].StartTime < results[b].StartTime
	})

	return results
}

func textAt(segments []Segment, i int) string {
	if i < 0 || i >= len(segments) {
		return ""
	}
	return segments[i].Text
}

// matcher holds the query in every form the scoring strategies need
type matcher struct {
	folded string
	runes  []rune
	tokens []string
	words  map[string]struct{}
}

func newMatcher(query string) *matcher {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return &matcher{
		folded: q,
		runes:  []rune(q),
		tokens: Tokens(q),
		words:  wordSet(q),
	}
}

// score expects text already folded
func (m *matcher) score(text string) float64 {
	if strings.Contains(text, m.folded) {
		return exactMatchScore
	}
	if ratio := tokenRatio(m.tokens, text); ratio > tokenMatchMinimum {
		return tokenMatchFloor + ratio*tokenMatchWeight
	}
	return Jaccard(m.words, wordSet(text))
}

// spans finds non-overlapping literal occurrences of the query in folded text
func (m *matcher) spans(text string) []Span {
	spans := []Span{}
	t := []rune(text)
	n := len(m.runes)
	for i := 0; i+n <= len(t); {
		if runesEqual(t[i:i+n], m.runes) {
			spans = append(spans, Span{Start: i, End: i + n})
			i += n
			continue
		}
		i++
	}
	return spans
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
