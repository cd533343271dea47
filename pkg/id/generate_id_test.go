package id

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestNewID32_IsValidAndDecodes(t *testing.T) {
	got := NewID32()
	if !Valid(got) {
		t.Fatalf("not a valid id: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil || len(b) != 16 {
		t.Fatalf("decode: %d bytes, %v", len(b), err)
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := NewID32()
		if _, ok := seen[v]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, v)
		}
		seen[v] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{strings.Repeat("0", 32), true},
		{strings.Repeat("f", 32), true},
		{"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88", true},
		{"", false},
		{strings.Repeat("a", 31), false},
		{strings.Repeat("a", 33), false},
		{strings.Repeat("A", 32), false},
		{strings.Repeat("g", 32), false},
		{"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
