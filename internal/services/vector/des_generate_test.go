package vector

import (
	"strings"
	"testing"

	"descore/internal/des56"
)

func TestGenerateDESKATVariants(t *testing.T) {
	tests := []struct {
		variant string
		count   int
		want    int
	}{
		{"GFSBOX", 5, 5},
		{"KEYSBOX", 7, 7},
		{"VARKEY", 100, 64}, // capped at one record per key bit
		{"VARTXT", 100, 64},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			vec, err := GenerateDESTestVectors("KAT", DESGenParams{
				Count:           tt.count,
				IncludeExpected: true,
				KatVariant:      tt.variant,
			})
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			if vec.Algorithm != "DES" || vec.TestMode != "KAT" || vec.KeyBits != 56 {
				t.Fatalf("bad header: %+v", vec)
			}
			if len(vec.Encrypt) != tt.want || len(vec.Decrypt) != tt.want {
				t.Fatalf("got %d/%d records, want %d", len(vec.Encrypt), len(vec.Decrypt), tt.want)
			}
			for i, r := range vec.Encrypt {
				if len(r.KeyHex) != 16 || len(r.Plaintext) != 16 || len(r.Ciphertext) != 16 {
					t.Fatalf("record %d has short fields: %+v", i, r)
				}
			}
		})
	}
}

func TestGenerateDESRequiresKatVariant(t *testing.T) {
	if _, err := GenerateDESTestVectors("KAT", DESGenParams{Count: 3}); err == nil {
		t.Fatal("expected error for missing KAT variant")
	}
	if _, err := GenerateDESTestVectors("MMT", DESGenParams{Count: 3}); err == nil {
		t.Fatal("expected error for unsupported test mode")
	}
}

func TestGenerateDESOmitsExpectedByDefault(t *testing.T) {
	vec, err := GenerateDESTestVectors("KAT", DESGenParams{Count: 3, KatVariant: "GFSBOX"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, r := range vec.Encrypt {
		if r.Ciphertext != "" {
			t.Fatalf("ciphertext present without IncludeExpected: %+v", r)
		}
	}
	for _, r := range vec.Decrypt {
		if r.Plaintext != "" {
			t.Fatalf("plaintext present without IncludeExpected: %+v", r)
		}
	}
}

func TestGenerateDESMCT(t *testing.T) {
	vec, err := GenerateDESTestVectors("MCT", DESGenParams{Count: 4, IncludeExpected: true})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(vec.Encrypt) != 4 || len(vec.Decrypt) != 4 {
		t.Fatalf("got %d/%d records, want 4", len(vec.Encrypt), len(vec.Decrypt))
	}
	// Key must mutate between outer counts.
	if vec.Encrypt[0].KeyHex == vec.Encrypt[1].KeyHex {
		t.Fatal("MCT key did not change between counts")
	}
}

func TestGFSBoxMarksWeakKey(t *testing.T) {
	// GFSBOX uses the all-zero key, which is the 0101..01 weak key
	// once parity bits are stripped.
	vec, err := GenerateDESTestVectors("KAT", DESGenParams{Count: 2, KatVariant: "GFSBOX"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !vec.Encrypt[0].WeakKey || !vec.Decrypt[0].WeakKey {
		t.Fatalf("expected weak-key flag on zero-key records: %+v", vec.Encrypt[0])
	}
}

func TestRecordsMarkSemiWeakKeys(t *testing.T) {
	for _, pair := range des56.SemiWeakKeyPairs() {
		for _, key := range pair {
			var out DESTestVector
			pt := make([]byte, des56.BlockSize)
			ks := des56.NewSchedule(key)
			ct := encryptOneDES(ks, pt)
			appendDESRecord(&out, 0, key[:], pt, ct, true)
			if !out.Encrypt[0].WeakKey || !out.Decrypt[0].WeakKey {
				t.Fatalf("semi-weak key %x not flagged", key)
			}
		}
	}
}

func TestToTXTHasBothSections(t *testing.T) {
	vec, err := GenerateDESTestVectors("KAT", DESGenParams{Count: 2, IncludeExpected: true, KatVariant: "KEYSBOX"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	txt := vec.ToTXT()
	if !strings.Contains(txt, "[ENCRYPT]") || !strings.Contains(txt, "[DECRYPT]") {
		t.Fatalf("missing section headers:\n%s", txt)
	}
	if !strings.Contains(txt, "COUNT = 0") || !strings.Contains(txt, "KEY = ") {
		t.Fatalf("missing record lines:\n%s", txt)
	}
}
