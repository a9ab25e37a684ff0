package result

import "sort"

// Result is a platform-independent measurement outcome: a mapping from
// bitstring to non-negative count, plus opaque metadata about which
// platform produced it. Immutable after construction.
type Result struct {
	counts   map[string]int
	metadata map[string]string
}

// New builds a Result from raw counts. Both maps are copied so later
// caller mutation cannot leak in. A nil metadata map becomes empty.
func New(counts map[string]int, metadata map[string]string) *Result {
	r := &Result{
		counts:   make(map[string]int, len(counts)),
		metadata: make(map[string]string, len(metadata)),
	}
	for k, v := range counts {
		r.counts[k] = v
	}
	for k, v := range metadata {
		r.metadata[k] = v
	}
	return r
}

// Counts returns a copy of the bitstring→count mapping.
func (r *Result) Counts() map[string]int {
	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Metadata returns a copy of the opaque metadata mapping.
func (r *Result) Metadata() map[string]string {
	out := make(map[string]string, len(r.metadata))
	for k, v := range r.metadata {
		out[k] = v
	}
	return out
}

// TotalShots is the sum of all counts.
func (r *Result) TotalShots() int {
	total := 0
	for _, v := range r.counts {
		total += v
	}
	return total
}

// Probabilities derives count/total for each outcome. A zero-shot result
// yields an empty map, not a division error.
func (r *Result) Probabilities() map[string]float64 {
	total := r.TotalShots()
	if total == 0 {
		return map[string]float64{}
	}
	probs := make(map[string]float64, len(r.counts))
	for k, v := range r.counts {
		probs[k] = float64(v) / float64(total)
	}
	return probs
}

// Bitstrings returns the outcome keys sorted for display. Storage order
// is irrelevant; display order is not.
func (r *Result) Bitstrings() []string {
	keys := make([]string, 0, len(r.counts))
	for k := range r.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
