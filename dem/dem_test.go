package dem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddErrorMergesIdenticalTargetSets(t *testing.T) {
	m := New()
	require.NoError(t, m.AddError(0.1, []Target{DetectorTarget(0), DetectorTarget(1)}))
	require.NoError(t, m.AddError(0.2, []Target{DetectorTarget(1), DetectorTarget(0)}))
	require.Equal(t, 1, m.NumInstructions())
	want := 0.1 + 0.2 - 2*0.1*0.2
	assert.InDelta(t, want, m.At(0).Probability, 1e-12)
}

func TestAddErrorXorDedupCancelsRepeatedTarget(t *testing.T) {
	m := New()
	require.NoError(t, m.AddError(0.5, []Target{DetectorTarget(0), DetectorTarget(0)}))
	assert.Equal(t, 0, m.NumInstructions())
}

func TestAddErrorRejectsOutOfRangeProbability(t *testing.T) {
	m := New()
	assert.Error(t, m.AddError(1.5, []Target{DetectorTarget(0)}))
}

func TestAddDetectorRejectsNonDetectorTarget(t *testing.T) {
	m := New()
	assert.Error(t, m.AddDetector(nil, []Target{ObservableTarget(0)}))
	assert.NoError(t, m.AddDetector([]float64{1, 2, 0}, []Target{DetectorTarget(3)}))
}

func TestAddRepeatBlockRejectsZero(t *testing.T) {
	m := New()
	body := New()
	assert.Error(t, m.AddRepeatBlock(0, body))
	assert.NoError(t, m.AddRepeatBlock(1, body))
}

func TestTextRoundTrip(t *testing.T) {
	text := "error(0.1) D0 D1\ndetector(1,2,0) D0\nlogical_observable L0\nshift_detectors(1,0) 2\n"
	m, err := ParseModel(text)
	require.NoError(t, err)
	assert.Equal(t, text, m.ToText())
}

func TestTextRoundTripRepeatBlock(t *testing.T) {
	text := "repeat 3 {\n    error(0.1) D0\n}\n"
	m, err := ParseModel(text)
	require.NoError(t, err)
	assert.Equal(t, text, m.ToText())
}

func TestTextRoundTripWithSeparator(t *testing.T) {
	text := "error(0.01) D0 D1 ^ D2\n"
	m, err := ParseModel(text)
	require.NoError(t, err)
	assert.Equal(t, text, m.ToText())
}

func TestCanonicalizeTargetsSortsAndDedupsPerRun(t *testing.T) {
	in := []Target{DetectorTarget(2), DetectorTarget(1), Separator, DetectorTarget(0), DetectorTarget(0)}
	got := CanonicalizeTargets(in)
	assert.Equal(t, []Target{DetectorTarget(1), DetectorTarget(2)}, got)
}

func TestEachExpandsRepeatBlocks(t *testing.T) {
	m, err := ParseModel("repeat 2 {\n    error(0.1) D0\n}\n")
	require.NoError(t, err)
	count := 0
	require.NoError(t, m.Each(true, func(Instruction) error { count++; return nil }))
	assert.Equal(t, 2, count)
}
