package bench

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Score is the ranking result of one backend for an operation type.
type Score struct {
	Backend    string  `json:"backend"`
	Operation  string  `json:"operation"`
	Samples    int     `json:"samples"`
	Throughput float64 `json:"throughput"` // mean operations
	Latency    float64 `json:"latency"`    // mean ms per operation
	Value      float64 `json:"score"`
}

// score computes throughput per unit latency. Higher is better.
func score(throughput, latency float64) float64 {
	return throughput / latency * 100
}

// Rank scores every backend that has samples of the given operation type.
// The result is ordered best first; equal scores are ordered by backend id.
func Rank(tables Tables, prefix, op string) []Score {
	name := prefix + op
	var scores []Score
	tables.Each(func(t *Table) {
		rows := t.Select(name)
		if len(rows) == 0 {
			return
		}
		ops := make([]float64, len(rows))
		lat := make([]float64, len(rows))
		for i, r := range rows {
			ops[i], lat[i] = r.Operations, r.Latency
		}
		s := Score{
			Backend:    t.Backend,
			Operation:  op,
			Samples:    len(rows),
			Throughput: stat.Mean(ops, nil),
			Latency:    stat.Mean(lat, nil),
		}
		s.Value = score(s.Throughput, s.Latency)
		scores = append(scores, s)
	})
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value > scores[j].Value
		}
		return scores[i].Backend < scores[j].Backend
	})
	return scores
}

// Recommend returns the best backend for the operation type. It reports false
// if no backend has samples of that operation.
func Recommend(tables Tables, prefix, op string) (string, bool) {
	ranking := Rank(tables, prefix, op)
	if len(ranking) == 0 {
		return "", false
	}
	return ranking[0].Backend, true
}

// Operations lists the distinct operation types found in the tables.
func Operations(tables Tables, prefix string) []string {
	seen := make(map[string]bool)
	var ops []string
	tables.Each(func(t *Table) {
		for _, r := range t.Rows {
			if !strings.HasPrefix(r.Name, prefix) {
				continue
			}
			op := r.Operation(prefix)
			if !seen[op] {
				seen[op] = true
				ops = append(ops, op)
			}
		}
	})
	sort.Strings(ops)
	return ops
}
