package search

import (
	"testing"

	"github.com/quantumsim/stabsim/analyzer"
	"github.com/quantumsim/stabsim/circuit"
	"github.com/quantumsim/stabsim/dem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainEdges returns the three-edge decoding graph of an open-boundary
// distance-3 repetition code: boundary-D0, D0-D1, D1-boundary, each
// carrying the single logical observable. The only way to XOR-cancel
// every detector while keeping a nonzero mask is to use all three.
func chainEdges() []Edge {
	return []Edge{
		{Detectors: []int{0}, ObsMask: 1},
		{Detectors: []int{0, 1}, ObsMask: 1},
		{Detectors: []int{1}, ObsMask: 1},
	}
}

func TestGraphlikeShortestErrorOnHandBuiltChain(t *testing.T) {
	m, stats, err := GraphlikeShortestError(chainEdges(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumInstructions())
	for i := 0; i < m.NumInstructions(); i++ {
		in := m.At(i)
		assert.Equal(t, dem.KindError, in.Kind)
		assert.Equal(t, 1.0, in.Probability)
	}
	assert.Greater(t, stats.NodesVisited, 0)
}

func TestHyperShortestErrorMatchesGraphlikeOnSameChain(t *testing.T) {
	m, _, err := HyperShortestError(chainEdges(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumInstructions())
}

func TestGraphlikeRejectsUngraphlikeErrorByDefault(t *testing.T) {
	edges := []Edge{
		{Detectors: []int{0, 1, 2}, ObsMask: 1},
	}
	_, _, err := GraphlikeShortestError(edges, Options{})
	assert.Error(t, err)

	_, _, err = GraphlikeShortestError(edges, Options{IgnoreUngraphlikeErrors: true})
	assert.Error(t, err, "the only edge is ungraphlike, so dropping it leaves no logical error to find")
}

func TestHyperRespectsMaxEdgeDegree(t *testing.T) {
	edges := []Edge{
		{Detectors: []int{0, 1, 2}, ObsMask: 1}, // degree 3, excluded
	}
	_, _, err := HyperShortestError(edges, Options{MaxEdgeDegree: 2})
	assert.Error(t, err)
}

func mustParseCircuit(t *testing.T, text string) *circuit.Circuit {
	t.Helper()
	c, err := circuit.ParseCircuit(text)
	require.NoError(t, err)
	return c
}

func TestBuildEdgesAndSearchFromAnalyzedRepetitionCode(t *testing.T) {
	c := mustParseCircuit(t, `
R 0 1 2 3 4
X_ERROR(0.01) 0 1 2 3 4
CX 0 1
CX 2 1
CX 2 3
CX 4 3
M 1 3
DETECTOR rec[-1]
DETECTOR rec[-2]
M 0 2 4
OBSERVABLE_INCLUDE(0) rec[-1]
`)
	model, err := analyzer.Run(c, analyzer.Options{})
	require.NoError(t, err)

	edges, err := BuildEdges(model)
	require.NoError(t, err)
	require.NotEmpty(t, edges)

	result, _, err := GraphlikeShortestError(edges, Options{IgnoreUngraphlikeErrors: true})
	require.NoError(t, err)
	require.Greater(t, result.NumInstructions(), 0)
	for i := 0; i < result.NumInstructions(); i++ {
		assert.Equal(t, 1.0, result.At(i).Probability)
	}
}
