package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesWithinTolerance(t *testing.T) {
	actual := map[string]float64{"00": 0.48, "11": 0.52}
	expected := map[string]float64{"00": 0.5, "11": 0.5}
	assert.True(t, Matches(actual, expected, DefaultTolerance))
}

func TestMatchesOutsideTolerance(t *testing.T) {
	actual := map[string]float64{"00": 0.3, "11": 0.7}
	expected := map[string]float64{"00": 0.5, "11": 0.5}
	assert.False(t, Matches(actual, expected, DefaultTolerance))
}

func TestMatchesExactBoundary(t *testing.T) {
	// Deviation exactly at tolerance still passes.
	actual := map[string]float64{"0": 0.6}
	expected := map[string]float64{"0": 0.5}
	assert.True(t, Matches(actual, expected, 0.1))
}

func TestMatchesMissingActualKeyIsZero(t *testing.T) {
	actual := map[string]float64{"00": 1.0}
	expected := map[string]float64{"11": 0.05}
	assert.True(t, Matches(actual, expected, 0.1))

	expected["11"] = 0.5
	assert.False(t, Matches(actual, expected, 0.1))
}

func TestMatchesIgnoresExtraActualKeys(t *testing.T) {
	actual := map[string]float64{"00": 0.5, "01": 0.3, "10": 0.2}
	expected := map[string]float64{"00": 0.5}
	assert.True(t, Matches(actual, expected, 0.01))
}

func TestMatchesEmptyExpectation(t *testing.T) {
	assert.True(t, Matches(map[string]float64{"0": 1.0}, nil, 0.01))
}

func TestDeltas(t *testing.T) {
	actual := map[string]float64{"00": 0.45, "11": 0.52}
	expected := map[string]float64{"00": 0.5, "11": 0.5, "01": 0.1}
	deltas := Deltas(actual, expected)

	assert.InDelta(t, 0.05, deltas["00"], 1e-9)
	assert.InDelta(t, 0.02, deltas["11"], 1e-9)
	assert.InDelta(t, 0.1, deltas["01"], 1e-9)
	assert.NotContains(t, deltas, "10")
}
