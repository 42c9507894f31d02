package report

import "regexp"

// BLAST writes hit header lines with an inline anchor whose position depends
// on how the database was formatted. Both shapes are stripped to the same
// canonical "> <id> <rest>" form so re-linking starts from a clean line.
//
//	-parse_seqids:    >id<a name=12345></a> description
//	plain databases:  ><a name=12345></a>id description
var (
	anchorAfterID  = regexp.MustCompile(`^>(\S+)\s*<a\s+name\s*=\s*[^>]*>\s*</a>\s*(.*)$`)
	anchorBeforeID = regexp.MustCompile(`^>\s*<a\s+name\s*=\s*[^>]*>\s*</a>\s*(\S+)\s*(.*)$`)
)

// NormalizeHitLine strips either known inline-anchor shape from a hit header
// line. Lines carrying neither shape pass through unchanged.
func NormalizeHitLine(line string) string {
	m := anchorAfterID.FindStringSubmatch(line)
	if m == nil {
		m = anchorBeforeID.FindStringSubmatch(line)
	}
	if m == nil {
		return line
	}
	if m[2] == "" {
		return "> " + m[1]
	}
	return "> " + m[1] + " " + m[2]
}
