// Package spans converts between sets of selected line numbers and
// minimal ordered lists of contiguous inclusive line ranges.
package spans

import "sort"

// Span is a contiguous inclusive line range.
type Span struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// FromLines collapses an arbitrary set of positive line numbers into the
// minimal ordered list of contiguous spans. Input is deduplicated and may
// arrive in any order. The output spans are disjoint, ascending, and no
// two adjacent spans can be merged.
func FromLines(lines []int) []Span {
	if len(lines) == 0 {
		return []Span{}
	}

	sorted := make([]int, 0, len(lines))
	seen := make(map[int]struct{}, len(lines))
	for _, n := range lines {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		sorted = append(sorted, n)
	}
	sort.Ints(sorted)

	result := make([]Span, 0, len(sorted))
	cur := Span{StartLine: sorted[0], EndLine: sorted[0]}
	for _, n := range sorted[1:] {
		if n == cur.EndLine+1 {
			cur.EndLine = n
			continue
		}
		result = append(result, cur)
		cur = Span{StartLine: n, EndLine: n}
	}
	return append(result, cur)
}

// Expand returns the set of line numbers covered by the given spans, in
// ascending order. Overlapping spans contribute each line once.
func Expand(spans []Span) []int {
	set := make(map[int]struct{})
	for _, s := range spans {
		for n := s.StartLine; n <= s.EndLine; n++ {
			set[n] = struct{}{}
		}
	}
	lines := make([]int, 0, len(set))
	for n := range set {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}

// CountLines accumulates per-line coverage counts into counts. A span
// covering a line already present increments its counter, so counts built
// across several relations yields each line's relation count.
func CountLines(counts map[int]int, spans []Span) {
	for _, s := range spans {
		for n := s.StartLine; n <= s.EndLine; n++ {
			counts[n]++
		}
	}
}
