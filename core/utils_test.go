package core

import (
	"strings"
	"testing"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		lower bool
		want  string
	}{
		{name: "empty", s: "", want: ""},
		{name: "spaces only", s: "   ", want: ""},
		{name: "trimmed", s: "  ACME Corp\t", want: "ACME Corp"},
		{name: "lowered", s: " Vendor@Test.CD ", lower: true, want: "vendor@test.cd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanString(tt.s, tt.lower); got != tt.want {
				t.Errorf("CleanString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRandomID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := RandomID(6)
		if len(id) != 6 {
			t.Fatalf("RandomID() length = %d, want 6", len(id))
		}
		for _, c := range id {
			if !strings.ContainsRune(idChars, c) {
				t.Fatalf("RandomID() = %q contains unexpected char %q", id, c)
			}
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Error("RandomID() produced no variation over 50 draws")
	}
}
