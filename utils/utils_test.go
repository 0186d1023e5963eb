package utils

import "testing"

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(14)
	b := GenerateRandomString(14)
	if len(a) != 14 || len(b) != 14 {
		t.Fatalf("expected length 14, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Fatal("two generated IDs should not collide")
	}
}
