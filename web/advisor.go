package web

import (
	bench "github.com/fjl/dbbench-advisor"
)

// Advisor answers recommendation queries over tables loaded at startup. It is
// never modified after construction and is safe for concurrent use.
type Advisor struct {
	tables bench.Tables
	prefix string
	ops    []string
}

func NewAdvisor(tables bench.Tables, prefix string) *Advisor {
	return &Advisor{
		tables: tables,
		prefix: prefix,
		ops:    bench.Operations(tables, prefix),
	}
}

// Recommend returns the best backend for op, or "" if there is none.
func (a *Advisor) Recommend(op string) string {
	best, _ := bench.Recommend(a.tables, a.prefix, op)
	return best
}

func (a *Advisor) Rank(op string) []bench.Score {
	return bench.Rank(a.tables, a.prefix, op)
}

// Operations returns the known operation types.
func (a *Advisor) Operations() []string {
	return append([]string(nil), a.ops...)
}

func (a *Advisor) Backends() []string {
	return a.tables.Backends()
}
