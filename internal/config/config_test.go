package config

import (
	"strings"
	"testing"
)

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
version: 1
addr: ":8888"
database_dir: /var/blastdb
num_threads: 4
options:
  blastn: ["-task", "blastn"]
`), "test-valid")
	if err != nil {
		t.Fatalf("parse valid config: %v", err)
	}
	if cfg.Addr != ":8888" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.DatabaseDir != "/var/blastdb" || cfg.NumThreads != 4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := cfg.Options["blastn"]; len(got) != 2 || got[0] != "-task" {
		t.Fatalf("unexpected blastn options: %v", got)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
version: 1
database_dir: /var/blastdb
`), "test-defaults")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != ":4567" || cfg.NumThreads != 1 || cfg.DataDir != "." {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	_, err := Parse([]byte(`
version: 2
database_dir: /var/blastdb
`), "test-version")
	if err == nil || !strings.Contains(err.Error(), "unsupported config version") {
		t.Fatalf("expected unsupported version error, got: %v", err)
	}
}

func TestParseRejectsMissingDatabaseDir(t *testing.T) {
	_, err := Parse([]byte(`
version: 1
`), "test-database-dir")
	if err == nil || !strings.Contains(err.Error(), "database_dir is required") {
		t.Fatalf("expected missing database_dir error, got: %v", err)
	}
}

func TestParseRejectsUnknownMethodOptions(t *testing.T) {
	_, err := Parse([]byte(`
version: 1
database_dir: /var/blastdb
options:
  makeblastdb: ["-parse_seqids"]
`), "test-options")
	if err == nil || !strings.Contains(err.Error(), "not a BLAST method") {
		t.Fatalf("expected invalid options error, got: %v", err)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`
version: 1
database_dir: /var/blastdb
databse_dir: typo
`), "test-unknown-field")
	if err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected parse YAML error, got: %v", err)
	}
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("version: ["), "test-yaml")
	if err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Fatalf("expected parse YAML error, got: %v", err)
	}
}
