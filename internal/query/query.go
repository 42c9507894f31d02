// Package query prepares user-submitted sequence text for a search run:
// every FASTA entry ends up with a header, and duplicate headers are
// disambiguated so downstream per-query report sections stay addressable.
package query

import (
	"fmt"
	"strings"
	"time"
)

// Normalize rewrites raw submitted text so that it starts with a FASTA
// header and no two header lines are identical.
func Normalize(raw string) string {
	return normalize(raw, time.Now().UnixNano())
}

func normalize(raw string, stamp int64) string {
	text := strings.TrimLeft(raw, " \t\r\n")
	if !strings.HasPrefix(text, ">") {
		text = fmt.Sprintf(">Submitted_%d\n", stamp) + text
	}

	lines := strings.Split(text, "\n")
	counts := make(map[string]int)
	for i, line := range lines {
		if !strings.HasPrefix(line, ">") {
			continue
		}
		counts[line]++
		// First occurrence stays untouched; later duplicates get _1, _2, ...
		// in order of appearance.
		if c := counts[line]; c > 1 {
			lines[i] = fmt.Sprintf("%s_%d", line, c-1)
		}
	}
	return strings.Join(lines, "\n")
}
