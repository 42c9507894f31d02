// Package retrieval reconciles a batch sequence fetch against what the
// databases actually returned, rendering a diagnostic when the counts
// disagree.
package retrieval

import (
	"context"
	"fmt"
	"strings"
)

// Fetcher is the sequence-fetch collaborator: one call per database, FASTA
// text out (possibly empty when nothing matched).
type Fetcher interface {
	Fetch(ctx context.Context, ids []string, db string) (string, error)
}

// Request names what the user asked for. IDs must be deduplicated and
// order-preserving (see DedupeIDs); Databases keeps duplicates since the same
// id may be sought across several databases.
type Request struct {
	IDs       []string
	Databases []string
}

// Result holds the concatenated FASTA text and the number of header markers
// found in it.
type Result struct {
	Text       string
	FoundCount int
}

// DedupeIDs drops repeated ids while preserving first-appearance order.
func DedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Fetch runs one retrieval attempt per requested database and concatenates
// every non-empty result.
func Fetch(ctx context.Context, f Fetcher, req Request) (Result, error) {
	var b strings.Builder
	for _, db := range req.Databases {
		text, err := f.Fetch(ctx, req.IDs, db)
		if err != nil {
			return Result{}, fmt.Errorf("fetch sequences from %q: %w", db, err)
		}
		b.WriteString(text)
	}
	text := b.String()
	return Result{Text: text, FoundCount: countHeaders(text)}, nil
}

func countHeaders(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, ">") {
			n++
		}
	}
	return n
}

// RenderHTML renders the reconciliation outcome. A count mismatch is not an
// error: it produces a diagnostic block ahead of the sequence text, which is
// always included, pre-wrapped, whatever was found.
func RenderHTML(req Request, res Result) string {
	var out strings.Builder
	requested := len(req.IDs)

	if res.FoundCount != requested {
		direction := "less"
		if res.FoundCount > requested {
			direction = "more"
		}
		out.WriteString("<h2>ERROR: incorrect number of sequences found.</h2>\n")
		fmt.Fprintf(&out, "<p>Found %d %s, which is %s than the %d %s requested.</p>\n",
			res.FoundCount, sequences(res.FoundCount), direction, requested, sequences(requested))
		fmt.Fprintf(&out, "<p>Requested ids: %s.<br>Searched databases: %s.</p>\n",
			strings.Join(req.IDs, ", "), strings.Join(req.Databases, ", "))
	}

	out.WriteString("<pre>")
	out.WriteString(res.Text)
	out.WriteString("</pre>\n")
	return out.String()
}

func sequences(n int) string {
	if n == 1 {
		return "sequence"
	}
	return "sequences"
}
