// Package search ranks transcript segments against a free-text query.
//
// Matching is a single pass over the segments. Each candidate is scored by
// the first strategy that applies:
//   - the whole query occurs in the text (case-insensitive): 1.0
//   - more than half of the query tokens occur in the text: 0.8 + ratio*0.2
//   - otherwise the Jaccard similarity of the two word sets
//
// Results are ordered by score descending then start time ascending and
// capped at MaxResults. Search holds no state and is safe to call from
// multiple goroutines.
package search
