package report

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

const scriptTag = `<script src="blastResult.js"></script>`

var (
	closingTag    = regexp.MustCompile(`(?i)^(</BODY>|</HTML>|</PRE>)`)
	queryMarker   = regexp.MustCompile(`^<b>Query=</b> (.*)$`)
	summaryMarker = regexp.MustCompile(`^  Database: `)
)

// Rewriter drives the single forward pass over one report. Databases holds
// the identifiers of the databases the search ran against, in selection
// order; they end up in every retrieval link.
type Rewriter struct {
	Databases []string
	Resolver  Resolver
}

// rewriteState is the per-invocation working set; nothing here outlives one
// Rewrite call.
type rewriteState struct {
	section      section
	body         strings.Builder
	reference    strings.Builder
	summary      strings.Builder
	queryOpen    bool
	queryOrdinal int
	summaryDone  bool
	ids          []string
	seen         map[string]struct{}
}

// Rewrite consumes the full ordered line sequence of one report and returns
// the final HTML fragment. It never fails: malformed reports degrade (the
// coordinate scanner falls back to end-of-document, an unterminated query
// wrapper is closed at the end of the pass).
func (rw Rewriter) Rewrite(lines []string) string {
	st := &rewriteState{seen: make(map[string]struct{})}

	for i := range lines {
		n := i + 1
		switch st.section {
		case sectionBanner:
			// Lines 1-5 are the fixed tool banner. Line 6 never joins the
			// reference block and takes the generic body path instead; this
			// mirrors long-standing upstream behavior and stays as-is.
			if n < 6 {
				continue
			}
			if n == 6 {
				rw.bodyLine(st, lines, i)
				continue
			}
			st.section = sectionReference
			fallthrough
		case sectionReference:
			st.reference.WriteString(lines[i])
			st.reference.WriteByte('\n')
			if n >= 15 {
				st.section = sectionDatabaseSummary
			}
		case sectionDatabaseSummary:
			st.summary.WriteString(lines[i])
			st.summary.WriteByte('\n')
			if strings.Contains(lines[i], "total letters") {
				st.section = sectionBody
			}
		case sectionBody:
			rw.bodyLine(st, lines, i)
		}
	}

	if st.queryOpen {
		st.body.WriteString("</div>\n")
		st.queryOpen = false
	}
	st.body.WriteString("</pre>\n")

	var out strings.Builder
	out.WriteString("<h2>Results</h2>\n")
	if len(st.ids) > 0 {
		href := "/get_sequence/?id=" + strings.Join(st.ids, " ") + "&db=" + strings.Join(rw.Databases, " ")
		fmt.Fprintf(&out, "<p><a href=%q target=\"_blank\">FASTA of %d retrievable hit(s)</a></p>\n", href, len(st.ids))
	}
	out.WriteString(st.body.String())
	out.WriteString("<pre>")
	out.WriteString(strings.TrimSpace(st.reference.String()))
	out.WriteString("</pre>\n")
	return out.String()
}

// bodyLine applies the generic per-line rules: drop closing tags, strip the
// script include, then dispatch on hit headers, query markers and the
// trailing database summary marker.
func (rw Rewriter) bodyLine(st *rewriteState, lines []string, i int) {
	line := lines[i]
	if closingTag.MatchString(line) {
		return
	}
	line = strings.ReplaceAll(line, scriptTag, "")

	switch {
	case strings.HasPrefix(line, ">"):
		normalized := NormalizeHitLine(line)
		var coords *Span
		if span, ok := ScanCoordinates(lines, i); ok {
			coords = &span
		}
		out, id, linked := rw.Resolver.ResolveHitLine(normalized, rw.Databases, coords)
		if linked {
			if _, dup := st.seen[id]; !dup {
				st.seen[id] = struct{}{}
				st.ids = append(st.ids, id)
			}
		}
		st.body.WriteString(out)
		st.body.WriteByte('\n')

	case queryMarker.MatchString(line):
		label := queryMarker.FindStringSubmatch(line)[1]
		if st.queryOpen {
			st.body.WriteString("</div>\n")
		}
		st.queryOrdinal++
		st.queryOpen = true
		anchor := label
		if strings.TrimSpace(anchor) == "" {
			anchor = fmt.Sprintf("query_%d", st.queryOrdinal)
		}
		fmt.Fprintf(&st.body, "<div class=\"resultn\" id=\"%s\">\n<h3>Query= %s</h3>\n", html.EscapeString(anchor), html.EscapeString(label))

	case summaryMarker.MatchString(line) && !st.summaryDone:
		if st.queryOpen {
			st.body.WriteString("</div>\n")
			st.queryOpen = false
		}
		st.body.WriteString("<pre>")
		st.body.WriteString(st.summary.String())
		st.body.WriteString("</pre>\n")
		st.summaryDone = true
		st.body.WriteString(line)
		st.body.WriteByte('\n')

	default:
		st.body.WriteString(line)
		st.body.WriteByte('\n')
	}
}
