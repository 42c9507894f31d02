package version

import "testing"

func TestCurrentFallsBackToDev(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "  "
	if got := Current(); got != "dev" {
		t.Fatalf("got %q, want dev", got)
	}
	Version = "v1.2.3"
	if got := Current(); got != "v1.2.3" {
		t.Fatalf("got %q", got)
	}
}
