package search

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Match is the outcome of matching a query against one candidate name.
// Positions are rune indexes into the NFC form of the candidate.
type Match struct {
	Score     float64
	Positions []int
}

// FuzzyMatcher performs case-insensitive ordered-subsequence matching.
// Scoring per matched character:
//   - base unit: +1.0
//   - adjacent to the previous match: +1.0
//   - first rune, or right after '-', '_' or ' ': +1.5
//   - each rune skipped since the previous match: -0.2
//
// Runes before the first match are free. The best alignment wins and
// scores never drop below minScore, so any match stays positive.
type FuzzyMatcher struct {
	charScore       float64
	contiguousBonus float64
	boundaryBonus   float64
	gapPenalty      float64
	minScore        float64
	emptyQueryScore float64
}

func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{
		charScore:       1.0,
		contiguousBonus: 1.0,
		boundaryBonus:   1.5,
		gapPenalty:      0.2,
		minScore:        0.1,
		emptyQueryScore: 1.0,
	}
}

// EmptyQueryScore is the neutral score every candidate gets for "".
func (fm *FuzzyMatcher) EmptyQueryScore() float64 {
	return fm.emptyQueryScore
}

// Match scores query against candidate. ok is false when query is not a
// subsequence of candidate; there is no partial credit.
func (fm *FuzzyMatcher) Match(query, candidate string) (Match, bool) {
	if query == "" {
		return Match{Score: fm.emptyQueryScore}, true
	}

	pattern := foldedRunes(query)
	text := []rune(norm.NFC.String(candidate))
	folded := make([]rune, len(text))
	for i, r := range text {
		folded[i] = unicode.ToLower(r)
	}

	if !isSubsequence(pattern, folded) {
		return Match{}, false
	}

	score, positions := fm.align(pattern, folded, text)
	if score < fm.minScore {
		score = fm.minScore
	}
	return Match{Score: score, Positions: positions}, true
}

func foldedRunes(s string) []rune {
	runes := []rune(norm.NFC.String(s))
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func isSubsequence(pattern, text []rune) bool {
	i := 0
	for _, r := range text {
		if i < len(pattern) && pattern[i] == r {
			i++
		}
	}
	return i == len(pattern)
}

func isBoundary(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	switch text[idx-1] {
	case '-', '_', ' ':
		return true
	}
	return false
}

type alignBuffers struct {
	scores []float64
	from   []int
}

var alignPool = sync.Pool{
	New: func() any { return &alignBuffers{} },
}

func acquireAlignBuffers(size int) *alignBuffers {
	buf := alignPool.Get().(*alignBuffers)
	if cap(buf.scores) < size {
		buf.scores = make([]float64, size)
		buf.from = make([]int, size)
	}
	buf.scores = buf.scores[:size]
	buf.from = buf.from[:size]
	return buf
}

// align finds the highest-scoring placement of pattern in text.
// scores[i*m+j] holds the best score with pattern[i] placed at text[j];
// from holds the previous placement for backtracking.
func (fm *FuzzyMatcher) align(pattern, folded, text []rune) (float64, []int) {
	n, m := len(pattern), len(folded)
	buf := acquireAlignBuffers(n * m)
	defer alignPool.Put(buf)

	scores, from := buf.scores, buf.from
	invalid := -1.0e18
	for k := range scores {
		scores[k] = invalid
		from[k] = -1
	}

	gain := func(j int) float64 {
		g := fm.charScore
		if isBoundary(text, j) {
			g += fm.boundaryBonus
		}
		return g
	}

	for j := 0; j < m; j++ {
		if folded[j] == pattern[0] {
			scores[j] = gain(j)
		}
	}

	for i := 1; i < n; i++ {
		prevRow := scores[(i-1)*m : i*m]
		row := scores[i*m : (i+1)*m]
		rowFrom := from[i*m : (i+1)*m]

		// Best of prevRow[k] + gap*k over k <= j-2, so a placement at j
		// with a gap costs best - gap*(j-1).
		bestGapped, bestGappedAt := invalid, -1
		for j := 1; j < m; j++ {
			if j >= 2 && prevRow[j-2] > invalid {
				candidate := prevRow[j-2] + fm.gapPenalty*float64(j-2)
				if candidate > bestGapped {
					bestGapped, bestGappedAt = candidate, j-2
				}
			}
			if folded[j] != pattern[i] {
				continue
			}

			best, bestFrom := invalid, -1
			if prevRow[j-1] > invalid {
				best, bestFrom = prevRow[j-1]+fm.contiguousBonus, j-1
			}
			if bestGappedAt >= 0 {
				if gapped := bestGapped - fm.gapPenalty*float64(j-1); gapped > best {
					best, bestFrom = gapped, bestGappedAt
				}
			}
			if bestFrom < 0 {
				continue
			}
			row[j] = best + gain(j)
			rowFrom[j] = bestFrom
		}
	}

	last := scores[(n-1)*m : n*m]
	end := -1
	for j := 0; j < m; j++ {
		if last[j] > invalid && (end < 0 || last[j] > last[end]) {
			end = j
		}
	}

	positions := make([]int, n)
	for i, j := n-1, end; i >= 0; i-- {
		positions[i] = j
		j = from[i*m+j]
	}
	return last[end], positions
}
