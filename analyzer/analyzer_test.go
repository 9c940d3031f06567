package analyzer

import (
	"testing"

	"github.com/quantumsim/stabsim/circuit"
	"github.com/quantumsim/stabsim/dem"
	"github.com/quantumsim/stabsim/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *circuit.Circuit {
	t.Helper()
	c, err := circuit.ParseCircuit(text)
	require.NoError(t, err)
	return c
}

func repetitionCircuit() string {
	return `
R 0 1 2 3 4
CX 0 1
CX 2 1
CX 2 3
CX 4 3
M 1 3
DETECTOR rec[-1]
DETECTOR rec[-2]
M 0 2 4
OBSERVABLE_INCLUDE(0) rec[-1]
`
}

func TestAnalyzeIdempotent(t *testing.T) {
	c := mustParse(t, repetitionCircuit())
	m1, err := Run(c, Options{GaugeDetectorPolicy: GaugeReject})
	require.NoError(t, err)
	m2, err := Run(c, Options{GaugeDetectorPolicy: GaugeReject})
	require.NoError(t, err)

	require.Equal(t, m1.NumInstructions(), m2.NumInstructions())
	for i := 0; i < m1.NumInstructions(); i++ {
		a1, a2 := m1.At(i), m2.At(i)
		assert.Equal(t, a1.Kind, a2.Kind)
		assert.Equal(t, a1.Probability, a2.Probability)
		assert.Equal(t, a1.Targets, a2.Targets)
	}
}

func TestAnalyzeRepetitionCodeHasTwoDetectorsAndOneObservable(t *testing.T) {
	c := mustParse(t, repetitionCircuit())
	m, err := Run(c, Options{})
	require.NoError(t, err)

	var detectors, observables, errs int
	for i := 0; i < m.NumInstructions(); i++ {
		switch m.At(i).Kind {
		case dem.KindDetector:
			detectors++
		case dem.KindLogicalObservable:
			observables++
		case dem.KindError:
			errs++
		}
	}
	assert.Equal(t, 2, detectors)
	assert.Equal(t, 1, observables)
}

func TestAnalyzerMatchesFrameForSingleErrorChannel(t *testing.T) {
	// A lone X_ERROR before the first CX should flip exactly the second
	// detector (D1 = rec[-2], qubit 1's parity check; D0 = rec[-1] is
	// qubit 3's) and nothing else, matching the
	// error instruction the analyzer attributes to it.
	c := mustParse(t, `
R 0 1 2 3 4
X_ERROR(1) 0
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
	m, err := Run(c, Options{})
	require.NoError(t, err)

	fs, err := frame.New(c, 64, frame.Options{Seed: 5})
	require.NoError(t, err)
	res, err := fs.Run(c)
	require.NoError(t, err)

	for s := 0; s < res.Shots; s++ {
		row := res.Detectors.Row(s)
		assert.True(t, row.At(1).Get(), "shot %d: X_ERROR(1) on qubit 0 must always flip detector 1", s)
		assert.False(t, row.At(0).Get(), "shot %d: X_ERROR(1) on qubit 0 must never flip detector 0", s)
	}

	foundOne := false
	for i := 0; i < m.NumInstructions(); i++ {
		in := m.At(i)
		if in.Kind != dem.KindError {
			continue
		}
		if len(in.Targets) == 1 && in.Targets[0] == dem.DetectorTarget(1) {
			foundOne = true
		}
	}
	assert.True(t, foundOne, "analyzer should emit an error(p) D1 instruction for the injected X error")
}

func TestAnalyzeMPPProductConsistency(t *testing.T) {
	c := mustParse(t, `
R 0 1 2 3
MPP X0*X1*X2*X3
`)
	_, err := Run(c, Options{})
	require.NoError(t, err)
}

func TestAnalyzeHeraldedEraseEmitsHeraldError(t *testing.T) {
	c := mustParse(t, `
R 0
HERALDED_ERASE(0.1) 0
DETECTOR rec[-1]
M 0
`)
	m, err := Run(c, Options{GaugeDetectorPolicy: GaugeReject})
	require.NoError(t, err)

	found := false
	for i := 0; i < m.NumInstructions(); i++ {
		in := m.At(i)
		if in.Kind == dem.KindError && len(in.Targets) == 1 && in.Targets[0] == dem.DetectorTarget(0) {
			assert.InDelta(t, 0.1, in.Probability, 1e-9)
			found = true
		}
	}
	assert.True(t, found, "HERALDED_ERASE's own detector should get a direct error(p) row")
}
