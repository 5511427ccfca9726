package handlers

import (
	"strings"
	"testing"
)

func TestBuildTXT(t *testing.T) {
	enc := []ioRow{{Count: 0, KeyHex: "133457799BBCDFF1", Plaintext: "0123456789ABCDEF", Ciphertext: "85E813540F0AB405"}}
	dec := []ioRow{{Count: 0, KeyHex: "133457799BBCDFF1", Plaintext: "0123456789ABCDEF", Ciphertext: "85E813540F0AB405"}}

	txt := buildTXT("DES", "KAT", enc, dec, true)
	for _, want := range []string{
		"# DES KAT",
		"[ENCRYPT]",
		"[DECRYPT]",
		"COUNT = 0",
		"KEY = 133457799bbcdff1",
		"PLAINTEXT = 0123456789abcdef",
		"CIPHERTEXT = 85e813540f0ab405",
	} {
		if !strings.Contains(txt, want) {
			t.Fatalf("missing %q in:\n%s", want, txt)
		}
	}

	// Without expected values the answer half of each record is omitted.
	blind := buildTXT("DES", "KAT", enc, dec, false)
	if strings.Count(blind, "CIPHERTEXT =") != 1 || strings.Count(blind, "PLAINTEXT =") != 1 {
		t.Fatalf("expected answers stripped:\n%s", blind)
	}
}

func TestContainsFold(t *testing.T) {
	ss := []string{"KAT", "MCT"}
	if !containsFold(ss, "kat") || !containsFold(ss, " mct ") {
		t.Fatal("case/space folding broken")
	}
	if containsFold(ss, "MMT") {
		t.Fatal("unexpected match")
	}
}
