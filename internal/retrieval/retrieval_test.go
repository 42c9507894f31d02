package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubFetcher returns canned FASTA text per database name.
type stubFetcher map[string]string

func (f stubFetcher) Fetch(_ context.Context, _ []string, db string) (string, error) {
	return f[db], nil
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, []string, string) (string, error) {
	return "", errors.New("blastdbcmd not found")
}

func TestFetchConcatenatesAcrossDatabases(t *testing.T) {
	f := stubFetcher{
		"nt.fa":  ">x\nACGT\n",
		"est.fa": ">z\nTTTT\n",
	}
	req := Request{IDs: []string{"x", "y", "z"}, Databases: []string{"nt.fa", "est.fa", "empty.fa"}}

	res, err := Fetch(context.Background(), f, req)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.Text != ">x\nACGT\n>z\nTTTT\n" {
		t.Fatalf("got text %q", res.Text)
	}
	if res.FoundCount != 2 {
		t.Fatalf("got found count %d, want 2", res.FoundCount)
	}
}

func TestFetchPropagatesCollaboratorFailure(t *testing.T) {
	_, err := Fetch(context.Background(), failingFetcher{}, Request{IDs: []string{"x"}, Databases: []string{"nt.fa"}})
	if err == nil || !strings.Contains(err.Error(), `fetch sequences from "nt.fa"`) {
		t.Fatalf("got %v", err)
	}
}

func TestRenderHTMLReportsShortfall(t *testing.T) {
	req := Request{IDs: []string{"x", "y", "z"}, Databases: []string{"nt.fa", "est.fa"}}
	res := Result{Text: ">x\nACGT\n>z\nTTTT\n", FoundCount: 2}

	out := RenderHTML(req, res)
	if !strings.Contains(out, "ERROR: incorrect number of sequences found.") {
		t.Fatalf("diagnostic heading missing:\n%s", out)
	}
	if !strings.Contains(out, "Found 2 sequences, which is less than the 3 sequences requested.") {
		t.Fatalf("count sentence wrong:\n%s", out)
	}
	if !strings.Contains(out, "Requested ids: x, y, z.") || !strings.Contains(out, "Searched databases: nt.fa, est.fa.") {
		t.Fatalf("request details missing:\n%s", out)
	}
	if pre := strings.Index(out, "<pre>"); pre < strings.Index(out, "ERROR") {
		t.Fatalf("sequence text not after the diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "<pre>>x\nACGT\n>z\nTTTT\n</pre>") {
		t.Fatalf("sequence text missing:\n%s", out)
	}
}

func TestRenderHTMLSingularWording(t *testing.T) {
	out := RenderHTML(Request{IDs: []string{"x", "y"}, Databases: []string{"nt.fa"}}, Result{FoundCount: 1})
	if !strings.Contains(out, "Found 1 sequence, which is less than the 2 sequences requested.") {
		t.Fatalf("singular wording wrong:\n%s", out)
	}
}

func TestRenderHTMLMoreThanRequested(t *testing.T) {
	out := RenderHTML(Request{IDs: []string{"x"}, Databases: []string{"nt.fa"}}, Result{Text: ">x\n>x2\n", FoundCount: 2})
	if !strings.Contains(out, "which is more than the 1 sequence requested") {
		t.Fatalf("direction wording wrong:\n%s", out)
	}
}

func TestRenderHTMLExactMatchHasNoDiagnostic(t *testing.T) {
	out := RenderHTML(Request{IDs: []string{"x"}, Databases: []string{"nt.fa"}}, Result{Text: ">x\nACGT\n", FoundCount: 1})
	if strings.Contains(out, "ERROR") {
		t.Fatalf("unexpected diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "<pre>>x\nACGT\n</pre>") {
		t.Fatalf("sequence text missing:\n%s", out)
	}
}

func TestDedupeIDsPreservesOrder(t *testing.T) {
	got := DedupeIDs([]string{"x", "y", "x", "z", "y"})
	want := []string{"x", "y", "z"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
