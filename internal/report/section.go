// Package report rewrites the HTML report emitted by the BLAST binaries into
// a browsable fragment: per-query sections, hit hyperlinks and a single
// "fetch all hits" link. The rewrite is one forward pass over the report
// lines driven by an explicit section state machine.
package report

// section tracks where the pass currently is inside the report. Transitions
// are monotonic; body is terminal.
type section int

const (
	sectionBanner section = iota
	sectionReference
	sectionDatabaseSummary
	sectionBody
)

func (s section) String() string {
	switch s {
	case sectionBanner:
		return "banner"
	case sectionReference:
		return "reference"
	case sectionDatabaseSummary:
		return "database-summary"
	case sectionBody:
		return "body"
	}
	return "unknown"
}
