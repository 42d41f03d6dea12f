package util

import "testing"

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("hello"))
	b := ContentHash([]byte("hello"))
	c := ContentHash([]byte("world"))

	if a != b {
		t.Error("Expected identical content to hash identically")
	}
	if a == c {
		t.Error("Expected different content to hash differently")
	}
	if len(a) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(a))
	}
	if ContentHashString("hello") != a {
		t.Error("Expected string variant to match byte variant")
	}
}
