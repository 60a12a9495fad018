package bench

import (
	"sort"
	"strings"
	"time"

	"github.com/aristanetworks/goarista/monotime"
)

// DefaultPrefix is the namespace of database operations in benchmark output.
const DefaultPrefix = "/db/"

// Row is one measured benchmark sample.
type Row struct {
	Name       string  `json:"name"`
	Elapsed    float64 `json:"elapsed"`    // total time in seconds
	Operations float64 `json:"operations"` // number of operations performed
	Bytes      float64 `json:"bytes,omitempty"`
	Latency    float64 `json:"latency"` // ms per operation, derived
}

// latency returns the per-operation time in milliseconds.
func latency(elapsed, operations float64) float64 {
	return elapsed / operations * 1000
}

// Operation returns the row name with prefix removed.
func (r Row) Operation(prefix string) string {
	return strings.TrimPrefix(r.Name, prefix)
}

// Table holds the filtered rows of a single backend.
type Table struct {
	Backend string
	Path    string
	Rows    []Row
}

// Select returns the rows whose name equals name.
func (t *Table) Select(name string) []Row {
	var rows []Row
	for _, r := range t.Rows {
		if r.Name == name {
			rows = append(rows, r)
		}
	}
	return rows
}

// Tables is a read-only set of backend tables, ordered by backend id.
type Tables struct {
	list []*Table
}

// NewTables creates a table set. Tables with a duplicate backend id replace
// earlier ones.
func NewTables(tables ...*Table) Tables {
	byID := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byID[t.Backend] = t
	}
	list := make([]*Table, 0, len(byID))
	for _, t := range byID {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Backend < list[j].Backend })
	return Tables{list: list}
}

// Len returns the number of backends.
func (ts Tables) Len() int {
	return len(ts.list)
}

// Backends returns the backend ids in order.
func (ts Tables) Backends() []string {
	ids := make([]string, len(ts.list))
	for i, t := range ts.list {
		ids[i] = t.Backend
	}
	return ids
}

// Get returns the table of a backend.
func (ts Tables) Get(backend string) (*Table, bool) {
	for _, t := range ts.list {
		if t.Backend == backend {
			return t, true
		}
	}
	return nil, false
}

// Each calls fn for every table in backend order.
func (ts Tables) Each(fn func(*Table)) {
	for _, t := range ts.list {
		fn(t)
	}
}

func mononow() time.Duration {
	return time.Duration(monotime.Now())
}
