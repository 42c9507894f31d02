package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sequenceserver-test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGetSearch(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveSearch(Search{
		Method:     "blastn",
		Databases:  []string{"nt", "est"},
		Options:    []string{"-evalue", "1e-5"},
		QueryText:  ">q1\nACGT",
		ReportHTML: "<h2>Results</h2>",
	})
	if err != nil {
		t.Fatalf("save search: %v", err)
	}

	got, err := s.GetSearch(id)
	if err != nil {
		t.Fatalf("get search: %v", err)
	}
	if got.Method != "blastn" || got.ReportHTML != "<h2>Results</h2>" {
		t.Fatalf("unexpected search: %+v", got)
	}
	if len(got.Databases) != 2 || got.Databases[0] != "nt" {
		t.Fatalf("unexpected databases: %v", got.Databases)
	}
	if got.CreatedUTC.IsZero() {
		t.Fatal("created timestamp not set")
	}
}

func TestGetSearchNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetSearch(12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListSearchesNewestFirst(t *testing.T) {
	s := openTestStore(t)
	for _, m := range []string{"blastn", "blastp", "blastx"} {
		if _, err := s.SaveSearch(Search{Method: m, Databases: []string{"nt"}, QueryText: ">q", ReportHTML: "x"}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := s.ListSearches(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if got[0].Method != "blastx" || got[1].Method != "blastp" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
