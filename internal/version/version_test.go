package version

import (
	"strings"
	"testing"
)

func TestVersionContainsSemverParts(t *testing.T) {
	for _, part := range []string{"0", ".", "1", "-dev"} {
		if !strings.Contains(Version, part) {
			t.Fatalf("Version %q missing %q", Version, part)
		}
	}
}

func TestBuildMetadataDefaultsEmpty(t *testing.T) {
	if GitCommit != "" || GitMessage != "" || BuildDate != "" {
		t.Fatalf("build metadata should default to empty, got %q %q %q", GitCommit, GitMessage, BuildDate)
	}
}
