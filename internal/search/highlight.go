package search

// MatchSpan is an inclusive [Start, End] range of rune indexes.
type MatchSpan struct {
	Start int
	End   int
}

// SpansFromPositions collapses sorted match positions into runs.
func SpansFromPositions(positions []int) []MatchSpan {
	if len(positions) == 0 {
		return nil
	}
	spans := make([]MatchSpan, 0, len(positions))
	for _, pos := range positions {
		spans = append(spans, MatchSpan{Start: pos, End: pos})
	}
	return MergeMatchSpans(spans)
}

// MergeMatchSpans joins overlapping and adjacent spans. Input must be sorted
// by Start.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]MatchSpan, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End+1 {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}
