package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// CanonicalJSON serializes the result's counts and metadata as RFC 8785
// canonical JSON: keys sorted by UTF-16 code units, strings NFC
// normalized, no HTML escaping. Probabilities are derived floats and are
// deliberately excluded; canonical output stays integer-exact, so two
// runs with identical counts are byte-identical regardless of platform
// float formatting.
//
// Used wherever byte-stable output matters: run-history storage and
// golden snapshots.
func (r *Result) CanonicalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"counts":`)
	if err := writeCanonicalCounts(&buf, r.counts); err != nil {
		return nil, err
	}
	buf.WriteString(`,"metadata":`)
	if err := writeCanonicalStrings(&buf, r.metadata); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FromCanonicalJSON rebuilds a Result from CanonicalJSON output.
func FromCanonicalJSON(data []byte) (*Result, error) {
	var payload struct {
		Counts   map[string]int    `json:"counts"`
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode canonical result: %w", err)
	}
	return New(payload.Counts, payload.Metadata), nil
}

func writeCanonicalCounts(buf *bytes.Buffer, m map[string]int) error {
	buf.WriteByte('{')
	for i, k := range canonicalKeyOrder(keysOfInts(m)) {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(m[k]))
	}
	buf.WriteByte('}')
	return nil
}

func writeCanonicalStrings(buf *bytes.Buffer, m map[string]string) error {
	buf.WriteByte('{')
	for i, k := range canonicalKeyOrder(keysOfStrings(m)) {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeCanonicalString(buf, m[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeCanonicalString emits a JSON string NFC-normalized at the
// serialization boundary, with HTML escaping disabled (<, >, & must not
// be escaped under RFC 8785).
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return fmt.Errorf("canonical string: %w", err)
	}
	out := tmp.Bytes()
	// json.Encoder appends a trailing newline.
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	buf.Write(out)
	return nil
}

// canonicalKeyOrder sorts keys by UTF-16 code units as RFC 8785 requires.
// Go's sort.Strings compares UTF-8 bytes, which orders supplementary
// characters differently.
func canonicalKeyOrder(keys []string) []string {
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

func keysOfInts(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func keysOfStrings(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
