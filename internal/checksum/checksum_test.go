package checksum

import "testing"

func TestSumIsStable(t *testing.T) {
	a := Sum([]byte("hello"))
	b := Sum([]byte("hello"))
	if a != b {
		t.Errorf("Sum not stable: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Sum length = %d, want 64 hex chars", len(a))
	}
}

func TestSumDiffersOnContent(t *testing.T) {
	if Sum([]byte("hello")) == Sum([]byte("hello ")) {
		t.Error("Sum collision on different content")
	}
}

func TestMatches(t *testing.T) {
	digest := Sum([]byte("content"))
	if !Matches([]byte("content"), digest) {
		t.Error("Matches = false for identical content")
	}
	if Matches([]byte("other"), digest) {
		t.Error("Matches = true for different content")
	}
}
