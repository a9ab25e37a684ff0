package result

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CountsTable is the per-experiment counts shape: a batch of
// bitstring→count maps, one per experiment. Batches normally hold a
// single experiment; only the first is used.
type CountsTable []map[string]int

// LabeledGroups is the named-measurement shape: each key labels one
// measurement event, each value holds that event's bits per shot
// (shots × bits, in the group's declared bit order).
type LabeledGroups map[string][][]int

// NativeCounter is the pre-aggregated counter shape.
type NativeCounter map[string]int

// ShapeError reports a native result that does not have the structure its
// normalizer entry point expects. The caller can retry with a different
// entry point.
type ShapeError struct {
	Expected string
	Found    string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("result shape mismatch: expected %s, found %s", e.Expected, e.Found)
}

// FromCountsTable unwraps the single experiment and copies its counts.
// An empty batch is a legal empty result.
func FromCountsTable(t CountsTable, metadata map[string]string) *Result {
	if len(t) == 0 {
		return New(nil, metadata)
	}
	return New(t[0], metadata)
}

// FromNativeCounter copies already-aggregated counts into a Result.
func FromNativeCounter(c NativeCounter, metadata map[string]string) *Result {
	return New(c, metadata)
}

// FromLabeledGroups tallies per-shot measurement bits into bitstring
// counts. Zero groups is a legal empty result (a circuit with no
// measurement). With several groups, each shot's bits are concatenated
// across groups in deterministic group order before tallying. Groups with
// differing shot counts are malformed, not empty.
func FromLabeledGroups(g LabeledGroups, metadata map[string]string) (*Result, error) {
	if len(g) == 0 {
		return New(nil, metadata), nil
	}

	names := groupOrder(g)

	shots := len(g[names[0]])
	for _, name := range names[1:] {
		if len(g[name]) != shots {
			return nil, &ShapeError{
				Expected: fmt.Sprintf("every measurement group with %d shots", shots),
				Found:    fmt.Sprintf("group %q with %d shots", name, len(g[name])),
			}
		}
	}

	counts := make(map[string]int)
	for shot := 0; shot < shots; shot++ {
		var key strings.Builder
		for _, name := range names {
			for _, bit := range g[name][shot] {
				key.WriteString(strconv.Itoa(bit))
			}
		}
		counts[key.String()]++
	}
	return New(counts, metadata), nil
}

// groupOrder establishes the deterministic concatenation order for
// measurement group names. When every name carries a trailing numeric
// suffix after a final "_" separator, groups sort ascending by that
// integer. If even one name lacks a parseable suffix, the whole set falls
// back to plain lexicographic order. The fallback is all-or-nothing on
// purpose: a mixed ordering would silently interleave two different sort
// keys.
func groupOrder(g LabeledGroups) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}

	suffixes := make(map[string]int, len(names))
	for _, name := range names {
		sep := strings.LastIndex(name, "_")
		if sep < 0 {
			sort.Strings(names)
			return names
		}
		n, err := strconv.Atoi(name[sep+1:])
		if err != nil {
			sort.Strings(names)
			return names
		}
		suffixes[name] = n
	}

	sort.Slice(names, func(i, j int) bool {
		if suffixes[names[i]] != suffixes[names[j]] {
			return suffixes[names[i]] < suffixes[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
