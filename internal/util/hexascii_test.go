package util

import "testing"

func TestIsLikelyHex(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"133457799bbcdff1", true},
		{"13 34 57 79 9b bc df f1", true},
		{"0123456789ABCDEF", true},
		{"xyz", false},
		{"abc", false}, // odd length
		{"", true},
	}
	for _, tt := range tests {
		if got := IsLikelyHex(tt.in); got != tt.want {
			t.Fatalf("IsLikelyHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToHex(t *testing.T) {
	got, err := ToHex("13 34 57 79 9B BC DF F1")
	if err != nil || got != "133457799bbcdff1" {
		t.Fatalf("hex input: got %q, %v", got, err)
	}
	got, err = ToHex("key!")
	if err != nil || got != "6b657921" {
		t.Fatalf("ascii input: got %q, %v", got, err)
	}
}
