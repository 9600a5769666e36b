// Package visualize turns a finished plan into render-ready geometry: a phase
// timeline, an agent dependency graph, a geographic map and message lanes.
//
// Every builder is a pure function of its inputs. The same plan always yields
// the same positions, widths and lane assignment, and a nil plan yields empty
// geometry.
package visualize

import (
	"strconv"
	"strings"
)

func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// firstWords returns the first n whitespace-separated words of s.
func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
