package imfvar

import (
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Fatalf("empty version")
	}
	if version() != Version {
		t.Fatalf("version not stable")
	}
}
