package search

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	fsutil "github.com/kk-code-lab/try/internal/fs"
)

const (
	DefaultHalfLife      = 72 * time.Hour
	DefaultMatchWeight   = 1.0
	DefaultRecencyWeight = 2.0
)

// RankedItem is a catalog entry that survived the query, with its scores.
type RankedItem struct {
	Entry        fsutil.Entry
	MatchScore   float64
	RecencyScore float64
	Score        float64
	Positions    []int
}

// Ranker orders catalog entries by a weighted blend of match quality and
// recency.
type Ranker struct {
	matcher       *FuzzyMatcher
	halfLife      time.Duration
	matchWeight   float64
	recencyWeight float64
}

func NewRanker(matcher *FuzzyMatcher) *Ranker {
	if matcher == nil {
		matcher = NewFuzzyMatcher()
	}
	return &Ranker{
		matcher:       matcher,
		halfLife:      DefaultHalfLife,
		matchWeight:   DefaultMatchWeight,
		recencyWeight: DefaultRecencyWeight,
	}
}

// Recency decays exponentially with the hours since touched. Timestamps in
// the future count as age zero.
func Recency(touched, now time.Time, halfLife time.Duration) float64 {
	age := now.Sub(touched)
	if age < 0 {
		age = 0
	}
	return math.Exp(-age.Hours() / halfLife.Hours())
}

// Rank returns the entries matching query, best first. Equal scores fall
// back to name order, then path, so the result is a total order.
func (r *Ranker) Rank(query string, entries []fsutil.Entry, now time.Time) []RankedItem {
	items := make([]RankedItem, 0, len(entries))
	for _, entry := range entries {
		match, ok := r.matcher.Match(query, entry.Name)
		if !ok {
			continue
		}
		recency := Recency(entry.LastTouched(), now, r.halfLife)
		items = append(items, RankedItem{
			Entry:        entry,
			MatchScore:   match.Score,
			RecencyScore: recency,
			Score:        r.matchWeight*match.Score + r.recencyWeight*recency,
			Positions:    match.Positions,
		})
	}

	slices.SortStableFunc(items, func(a, b RankedItem) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := strings.Compare(a.Entry.Name, b.Entry.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Entry.Path, b.Entry.Path)
	})
	return items
}
