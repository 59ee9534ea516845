package jsonview

import (
	"sort"
	"strings"
)

type openBlock struct {
	line   int
	indent int
}

// CollapseCounts maps every matched block-opening line to the number of
// lines strictly between it and its closing line. Line 0 never opens a
// foldable block. Blocks are matched by indentation depth alone, so an
// opener that never returns to its depth gets no entry.
func CollapseCounts(doc Document) map[int]int {
	counts := make(map[int]int)
	var stack []openBlock
	indent := 0

	for idx, raw := range doc {
		trimmed := strings.TrimSpace(raw)
		before := indent

		if closesBlock(trimmed) {
			indent = dedent(indent)
			if n := len(stack); n > 0 && stack[n-1].indent == indent {
				start := stack[n-1].line
				stack = stack[:n-1]
				counts[start] = idx - start - 1
			}
		}

		if opensBlock(trimmed) {
			if idx != 0 {
				stack = append(stack, openBlock{line: idx, indent: before})
			}
			indent++
		}
	}
	return counts
}

// Foldable returns the matched block-opening lines of doc in ascending order.
func Foldable(doc Document) []int {
	counts := CollapseCounts(doc)
	lines := make([]int, 0, len(counts))
	for line := range counts {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}
