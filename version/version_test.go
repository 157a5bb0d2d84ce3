package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	if got := GetFullVersion(); got != "dev" {
		t.Errorf("GetFullVersion failed: expected dev, got %s", got)
	}

	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2026-01-02"
	t.Cleanup(func() { Version, GitCommit, BuildDate = "dev", "unknown", "unknown" })

	want := "1.2.0 (commit abc123, built 2026-01-02)"
	if got := GetFullVersion(); got != want {
		t.Errorf("GetFullVersion failed: expected %s, got %s", want, got)
	}
}
