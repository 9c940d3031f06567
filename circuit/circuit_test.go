package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendValidatesArity(t *testing.T) {
	c := New()
	err := c.Append("CX", []Target{QubitTarget(0)}, nil, "")
	assert.Error(t, err)

	err = c.Append("CX", []Target{QubitTarget(0), QubitTarget(1)}, nil, "")
	assert.NoError(t, err)
}

func TestAppendRejectsUnknownGate(t *testing.T) {
	c := New()
	err := c.Append("NOT_A_GATE", nil, nil, "")
	assert.Error(t, err)
}

func TestAppendRepeatBlockRejectsZero(t *testing.T) {
	c := New()
	body := New()
	require.NoError(t, body.Append("H", []Target{QubitTarget(0)}, nil, ""))
	assert.Error(t, c.AppendRepeatBlock(0, body, ""))
	assert.NoError(t, c.AppendRepeatBlock(1, body, ""))
}

func TestFusionMergesAdjacentIdenticalInstructions(t *testing.T) {
	c := New()
	require.NoError(t, c.Append("X", []Target{QubitTarget(0)}, nil, ""))
	require.NoError(t, c.Append("X", []Target{QubitTarget(1)}, nil, ""))
	require.Equal(t, 1, c.NumInstructions())
	in := c.At(0)
	assert.Equal(t, []Target{QubitTarget(0), QubitTarget(1)}, in.Targets)
}

func TestFusionDoesNotMergeDifferentArgs(t *testing.T) {
	c := New()
	require.NoError(t, c.Append("X_ERROR", []Target{QubitTarget(0)}, []float64{0.1}, ""))
	require.NoError(t, c.Append("X_ERROR", []Target{QubitTarget(1)}, []float64{0.2}, ""))
	assert.Equal(t, 2, c.NumInstructions())
}

func TestRepeatBlockIsNeverFused(t *testing.T) {
	c := New()
	body := New()
	require.NoError(t, body.Append("H", []Target{QubitTarget(0)}, nil, ""))
	require.NoError(t, c.AppendRepeatBlock(2, body, ""))
	require.NoError(t, c.AppendRepeatBlock(2, body, ""))
	assert.Equal(t, 2, c.NumInstructions())
}

func TestTextRoundTripModuloFusion(t *testing.T) {
	text := "H 0\nCX 0 1\nM 0 1\nDETECTOR rec[-1] rec[-2]\n"
	c, err := ParseCircuit(text)
	require.NoError(t, err)
	assert.Equal(t, text, c.ToText())

	c2, err := ParseCircuit(c.ToText())
	require.NoError(t, err)
	assert.True(t, c.Equal(c2))
}

func TestTextRoundTripWithArgsAndTag(t *testing.T) {
	text := "X_ERROR(0.1) [noisy] 0 1\n"
	c, err := ParseCircuit(text)
	require.NoError(t, err)
	assert.Equal(t, text, c.ToText())
}

func TestTextRoundTripRepeatBlock(t *testing.T) {
	text := "H 0\nREPEAT 3 {\n    CX 0 1\n    M 1\n}\nDETECTOR rec[-1]\n"
	c, err := ParseCircuit(text)
	require.NoError(t, err)
	assert.Equal(t, text, c.ToText())
	assert.Equal(t, 8, len(flattenToSlice(c))) // H, then 3x(CX,M), then DETECTOR
}

func TestFlattenExpandsRepeatBlocks(t *testing.T) {
	c, err := ParseCircuit("REPEAT 2 {\n    X 0\n}\n")
	require.NoError(t, err)
	flat := c.Flatten()
	assert.Equal(t, 2, flat.NumInstructions())
}

func TestEqualIgnoresRepeatStructure(t *testing.T) {
	a, err := ParseCircuit("REPEAT 2 {\n    X 0\n}\n")
	require.NoError(t, err)
	b, err := ParseCircuit("X 0\nX 0\n")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestConcatCopiesArenasIndependently(t *testing.T) {
	a, err := ParseCircuit("H 0\n")
	require.NoError(t, err)
	b, err := ParseCircuit("X 0\n")
	require.NoError(t, err)
	c := a.Concat(b)
	require.NoError(t, c.Append("Z", []Target{QubitTarget(0)}, nil, ""))
	assert.Equal(t, 1, a.NumInstructions())
	assert.Equal(t, 3, c.NumInstructions())
}

func TestRepeatedKFoldConcatenation(t *testing.T) {
	a, err := ParseCircuit("H 0\n")
	require.NoError(t, err)
	r := a.Repeated(3)
	assert.Equal(t, 3, r.NumInstructions())
}

func TestMPPProductTargetsValidated(t *testing.T) {
	c := New()
	targets := []Target{PauliTarget(0, 'X', false), Combiner, PauliTarget(1, 'Z', false)}
	assert.NoError(t, c.Append("MPP", targets, nil, ""))

	bad := []Target{QubitTarget(0)}
	assert.Error(t, c.Append("MPP", bad, nil, ""))
}

func TestDetectorRejectsNonRecordTargets(t *testing.T) {
	c := New()
	assert.Error(t, c.Append("DETECTOR", []Target{QubitTarget(0)}, nil, ""))
	assert.NoError(t, c.Append("DETECTOR", []Target{RecordTarget(1)}, nil, ""))
}

func TestInvertedAndPauliTargetRendering(t *testing.T) {
	assert.Equal(t, "!3", InvertedQubitTarget(3).String())
	assert.Equal(t, "rec[-2]", RecordTarget(2).String())
	assert.Equal(t, "sweep[1]", SweepTarget(1).String())
	assert.Equal(t, "X5", PauliTarget(5, 'X', false).String())
	assert.Equal(t, "!Y5", PauliTarget(5, 'Y', true).String())
	assert.Equal(t, "*", Combiner.String())
}
