package report

import (
	"fmt"
	"strings"
)

// LinkRequest is what a hyperlink strategy gets to work with: the hit's
// sequence id, the databases the search ran against (in selection order) and
// the subject-coordinate span when the scanner found one.
type LinkRequest struct {
	SequenceID string
	Databases  []string
	Coords     *Span
}

// Resolver turns a normalized hit header line into a hyperlinked one. The
// three tiers run in strict priority order; a nil field is the explicit
// "no such strategy" marker.
type Resolver struct {
	// LineOverride, when set and returning ok, replaces the whole hit line
	// verbatim and stops all further processing.
	LineOverride func(line string, req LinkRequest) (string, bool)
	// LinkOverride, when set and returning ok, supplies the link target.
	LinkOverride func(req LinkRequest) (string, bool)
	// DefaultLink is the built-in fallback strategy.
	DefaultLink func(req LinkRequest) (string, bool)
}

// GetSequenceLink is the standard built-in strategy: a sequence-retrieval
// link into this server.
func GetSequenceLink(req LinkRequest) (string, bool) {
	if req.SequenceID == "" {
		return "", false
	}
	return "/get_sequence/?id=" + req.SequenceID + "&db=" + strings.Join(req.Databases, " "), true
}

// ResolveHitLine renders the (already normalized) hit header line. When a
// link strategy produces a target, the sequence id is wrapped in an anchor
// opening in a new tab, keeping whatever preceded the id on the line. id is
// the extracted sequence id; linked reports whether a link was produced, so
// the caller can collect the id as retrievable. A full-line override
// replaces the line without marking it retrievable.
func (r Resolver) ResolveHitLine(line string, databases []string, coords *Span) (out, id string, linked bool) {
	fields := strings.Fields(strings.TrimPrefix(line, ">"))
	if len(fields) == 0 {
		return line, "", false
	}
	id = fields[0]
	req := LinkRequest{SequenceID: id, Databases: databases, Coords: coords}

	if r.LineOverride != nil {
		if replaced, ok := r.LineOverride(line, req); ok {
			return replaced, id, false
		}
	}

	var link string
	var ok bool
	if r.LinkOverride != nil {
		link, ok = r.LinkOverride(req)
	}
	if !ok && r.DefaultLink != nil {
		link, ok = r.DefaultLink(req)
	}
	if !ok {
		return line, id, false
	}

	at := strings.Index(line, id)
	prefix, rest := line[:at], line[at+len(id):]
	return fmt.Sprintf("%s<a href=%q target=\"_blank\">%s</a>%s", prefix, link, id, rest), id, true
}
