package bench

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "name,elapsed,operations\n"

func TestRecommend_PicksHighestScore(t *testing.T) {
	tables := NewTables(
		mustTable(t, "a", header+"/db/write,100,50\n"),
		mustTable(t, "b", header+"/db/write,40,50\n"),
	)
	ranking := Rank(tables, DefaultPrefix, "write")
	require.Len(t, ranking, 2)

	assert.Equal(t, "b", ranking[0].Backend)
	assert.InDelta(t, 800.0, ranking[0].Latency, 1e-9)
	assert.InDelta(t, 50.0, ranking[0].Throughput, 1e-9)
	assert.InDelta(t, 6.25, ranking[0].Value, 1e-9)

	assert.Equal(t, "a", ranking[1].Backend)
	assert.InDelta(t, 2000.0, ranking[1].Latency, 1e-9)
	assert.InDelta(t, 2.5, ranking[1].Value, 1e-9)

	best, ok := Recommend(tables, DefaultPrefix, "write")
	require.True(t, ok)
	assert.Equal(t, "b", best)
}

func TestRank_Means(t *testing.T) {
	tables := NewTables(mustTable(t, "pg", header+
		"/db/read,1,100\n"+
		"/db/read,3,300\n"+
		"/db/write,1,1\n"))

	ranking := Rank(tables, DefaultPrefix, "read")
	require.Len(t, ranking, 1)
	s := ranking[0]
	assert.Equal(t, 2, s.Samples)
	assert.Equal(t, "read", s.Operation)
	assert.InDelta(t, 200.0, s.Throughput, 1e-9)
	assert.InDelta(t, 10.0, s.Latency, 1e-9)
	assert.InDelta(t, 2000.0, s.Value, 1e-9)
}

func TestRecommend_NoMatches(t *testing.T) {
	tables := NewTables(
		mustTable(t, "a", header+"/db/read,1,10\n"),
		mustTable(t, "b", header+"/db/read,2,10\n"),
	)
	best, ok := Recommend(tables, DefaultPrefix, "delete")
	assert.False(t, ok)
	assert.Empty(t, best)
	assert.Empty(t, Rank(tables, DefaultPrefix, "delete"))

	_, ok = Recommend(NewTables(), DefaultPrefix, "read")
	assert.False(t, ok)
}

func TestRecommend_OnlyOneBackendMatches(t *testing.T) {
	tables := NewTables(
		mustTable(t, "fast", header+"/db/read,0.001,1000000\n"),
		mustTable(t, "slow", header+"/db/write,1000,1\n"),
	)
	best, ok := Recommend(tables, DefaultPrefix, "write")
	require.True(t, ok)
	assert.Equal(t, "slow", best)
}

func TestRecommend_ExactNameMatch(t *testing.T) {
	tables := NewTables(
		mustTable(t, "a", header+"/db/write-batch,1,1000\n/db/write,10,10\n"),
		mustTable(t, "b", header+"/db/write,5,10\n"),
	)
	ranking := Rank(tables, DefaultPrefix, "write")
	require.Len(t, ranking, 2)
	assert.Equal(t, 1, ranking[0].Samples)
	assert.Equal(t, "b", ranking[0].Backend)
}

func TestRecommend_TieBreakByBackendID(t *testing.T) {
	row := header + "/db/read,1,10\n"
	tables := NewTables(
		mustTable(t, "redis", row),
		mustTable(t, "mysql", row),
		mustTable(t, "postgres", row),
	)
	for i := 0; i < 10; i++ {
		best, ok := Recommend(tables, DefaultPrefix, "read")
		require.True(t, ok)
		assert.Equal(t, "mysql", best)
	}
}

func TestRecommend_ZeroLatency(t *testing.T) {
	tables := NewTables(
		mustTable(t, "a", header+"/db/read,0,10\n"),
		mustTable(t, "b", header+"/db/read,1,10\n"),
	)
	ranking := Rank(tables, DefaultPrefix, "read")
	require.Len(t, ranking, 2)
	assert.True(t, math.IsInf(ranking[0].Value, 1))
	assert.Equal(t, "a", ranking[0].Backend)
}

func TestOperations(t *testing.T) {
	tables := NewTables(
		mustTable(t, "a", header+"/db/write,1,1\n/db/read,1,1\n"),
		mustTable(t, "b", header+"/db/delete,1,1\n/db/read,1,1\n"),
	)
	assert.Equal(t, []string{"delete", "read", "write"}, Operations(tables, DefaultPrefix))
}
