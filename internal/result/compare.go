package result

import "math"

// DefaultTolerance absorbs statistical shot noise when comparing measured
// probabilities against analytic expectations.
const DefaultTolerance = 0.1

// Matches reports whether actual agrees with expected within tolerance.
// Only keys present in expected are inspected: an outcome the expectation
// never mentions cannot fail the comparison, and a key missing from
// actual counts as probability zero rather than an error. An empty
// expectation matches vacuously.
func Matches(actual, expected map[string]float64, tolerance float64) bool {
	for key, want := range expected {
		if math.Abs(actual[key]-want) > tolerance {
			return false
		}
	}
	return true
}

// Deltas returns the absolute difference per expected key, for reporting
// why a comparison failed. Keys only in actual are ignored, mirroring
// Matches.
func Deltas(actual, expected map[string]float64) map[string]float64 {
	deltas := make(map[string]float64, len(expected))
	for key, want := range expected {
		deltas[key] = math.Abs(actual[key] - want)
	}
	return deltas
}
