package bench

import (
	"math"
	"sort"
	"strings"
)

// Change describes how one backend operation differs between two result sets.
// A or B is nil when the operation exists on one side only.
type Change struct {
	Backend   string
	Operation string
	A, B      *Score
}

// LatencyDelta returns the relative latency change from A to B.
func (c Change) LatencyDelta() float64 {
	if c.A == nil || c.B == nil || c.A.Latency == 0 {
		return math.NaN()
	}
	return (c.B.Latency - c.A.Latency) / c.A.Latency
}

// Diff compares the per-operation scores of two result sets. Operations present
// on both sides are reported when their mean latency differs by more than
// tolerance (relative).
func Diff(a, b Tables, prefix string, tolerance float64) []Change {
	sa, sb := allScores(a, prefix), allScores(b, prefix)
	var (
		changes []Change
		i, j    int
	)
	for i < len(sa) || j < len(sb) {
		var cmp int
		switch {
		case i == len(sa):
			cmp = 1
		case j == len(sb):
			cmp = -1
		default:
			cmp = strings.Compare(scoreKey(sa[i]), scoreKey(sb[j]))
		}
		switch cmp {
		case -1:
			// only in A
			changes = append(changes, Change{Backend: sa[i].Backend, Operation: sa[i].Operation, A: &sa[i]})
			i++
		case 1:
			// only in B
			changes = append(changes, Change{Backend: sb[j].Backend, Operation: sb[j].Operation, B: &sb[j]})
			j++
		default:
			c := Change{Backend: sa[i].Backend, Operation: sa[i].Operation, A: &sa[i], B: &sb[j]}
			if math.Abs(c.LatencyDelta()) > tolerance {
				changes = append(changes, c)
			}
			i++
			j++
		}
	}
	return changes
}

func scoreKey(s Score) string {
	return s.Backend + "\x00" + s.Operation
}

// allScores returns the score of every backend for every operation, sorted by
// backend and operation.
func allScores(tables Tables, prefix string) []Score {
	var scores []Score
	for _, op := range Operations(tables, prefix) {
		scores = append(scores, Rank(tables, prefix, op)...)
	}
	sort.Slice(scores, func(i, j int) bool {
		return scoreKey(scores[i]) < scoreKey(scores[j])
	})
	return scores
}
