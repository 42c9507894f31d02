package report

import (
	"regexp"
	"strconv"
	"strings"
)

// Span is the subject-coordinate range covered by one hit's alignment rows.
type Span struct {
	Min int
	Max int
}

// A hit's alignment body ends at the next local-sequence hit header or at the
// start of the statistics footer, whichever comes first.
var hitBoundary = regexp.MustCompile(`^(>lcl\||Lambda)`)

// ScanCoordinates collects the subject coordinates of the hit whose header
// sits at lines[hitIndex]. Every "Sbjct" row strictly between the header and
// the next boundary contributes its second and last whitespace-separated
// fields; the span is the overall minimum and maximum of those values. When
// no boundary line exists the scan runs to the end of the document instead
// of failing. ok is false when the hit has no Sbjct rows at all.
func ScanCoordinates(lines []string, hitIndex int) (span Span, ok bool) {
	end := len(lines)
	for i := hitIndex + 1; i < len(lines); i++ {
		if hitBoundary.MatchString(lines[i]) {
			end = i
			break
		}
	}

	for _, line := range lines[hitIndex+1 : end] {
		if !strings.HasPrefix(line, "Sbjct") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		start, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		stop, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			continue
		}
		lo, hi := start, stop
		if lo > hi {
			lo, hi = hi, lo
		}
		if !ok {
			span, ok = Span{Min: lo, Max: hi}, true
			continue
		}
		if lo < span.Min {
			span.Min = lo
		}
		if hi > span.Max {
			span.Max = hi
		}
	}
	return span, ok
}
