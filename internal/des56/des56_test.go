package des56

import (
	"bytes"
	"crypto/des"
	"crypto/rand"
	"encoding/hex"
	"io"
	"math/bits"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func block8(b []byte) (out [8]byte) {
	copy(out[:], b)
	return
}

// The classic NBS worked example.
func TestKnownAnswer(t *testing.T) {
	key := block8(mustHex(t, "133457799bbcdff1"))
	pt := block8(mustHex(t, "0123456789abcdef"))
	want := mustHex(t, "85e813540f0ab405")

	ks := NewSchedule(key)
	b := pt
	ks.Transform(&b, Encrypt)
	if !bytes.Equal(b[:], want) {
		t.Fatalf("encrypt: got %x, want %x", b, want)
	}
	ks.Transform(&b, Decrypt)
	if b != pt {
		t.Fatalf("decrypt: got %x, want %x", b, pt)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for i := 0; i < 200; i++ {
		var key, pt [8]byte
		if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
			t.Fatal(err)
		}
		if _, err := io.ReadFull(rand.Reader, pt[:]); err != nil {
			t.Fatal(err)
		}
		ks := NewSchedule(key)
		b := pt
		ks.Transform(&b, Encrypt)
		ks.Transform(&b, Decrypt)
		if b != pt {
			t.Fatalf("round trip failed for key %x block %x", key, pt)
		}
	}
}

// Differential check against the standard library implementation.
func TestMatchesStdlib(t *testing.T) {
	for i := 0; i < 200; i++ {
		var key, pt [8]byte
		if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
			t.Fatal(err)
		}
		if _, err := io.ReadFull(rand.Reader, pt[:]); err != nil {
			t.Fatal(err)
		}

		ref, err := des.NewCipher(key[:])
		if err != nil {
			t.Fatal(err)
		}
		want := make([]byte, 8)
		ref.Encrypt(want, pt[:])

		ks := NewSchedule(key)
		b := pt
		ks.Transform(&b, Encrypt)
		if !bytes.Equal(b[:], want) {
			t.Fatalf("key %x block %x: got %x, stdlib %x", key, pt, b, want)
		}
	}
}

func TestScheduleIgnoresParityBits(t *testing.T) {
	var key [8]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		t.Fatal(err)
	}
	flipped := key
	for i := range flipped {
		flipped[i] ^= 1
	}
	if NewSchedule(key) != NewSchedule(flipped) {
		t.Fatal("schedules differ for keys that differ only in parity bits")
	}
}

func TestScheduleDeterministic(t *testing.T) {
	key := block8(mustHex(t, "0123456789abcdef"))
	a := NewSchedule(key)
	b := NewSchedule(key)
	if a != b {
		t.Fatal("same key produced different schedules")
	}
}

// Under a weak key the schedule is palindromic: encrypting twice with
// the same direction restores the plaintext. Documented property, not
// a defect.
func TestWeakKeysSelfInverse(t *testing.T) {
	for _, key := range WeakKeys() {
		if !IsWeakKey(key) {
			t.Fatalf("catalogue key %x not reported weak", key)
		}
		ks := NewSchedule(key)
		pt := block8([]byte("weakkey!"))
		b := pt
		ks.Transform(&b, Encrypt)
		ks.Transform(&b, Encrypt)
		if b != pt {
			t.Fatalf("key %x: double encryption did not restore plaintext", key)
		}
	}

	var notWeak [8]byte
	copy(notWeak[:], mustHex(t, "133457799bbcdff1"))
	if IsWeakKey(notWeak) {
		t.Fatal("normal key reported weak")
	}
}

// Within a semi-weak pair the schedule of one key is the reverse of
// the other's, so encrypting under both in turn restores the
// plaintext.
func TestSemiWeakKeyPairs(t *testing.T) {
	pairs := SemiWeakKeyPairs()
	if len(pairs) != 6 {
		t.Fatalf("expected 6 semi-weak pairs, got %d", len(pairs))
	}
	pt := block8([]byte("pairprop"))
	for _, pair := range pairs {
		for _, key := range pair {
			if !IsSemiWeakKey(key) {
				t.Fatalf("catalogue key %x not reported semi-weak", key)
			}
			if IsWeakKey(key) {
				t.Fatalf("semi-weak key %x reported weak", key)
			}
		}
		ks1 := NewSchedule(pair[0])
		ks2 := NewSchedule(pair[1])

		// Encrypting under one key is decrypting under its partner.
		enc := pt
		ks1.Transform(&enc, Encrypt)
		dec := pt
		ks2.Transform(&dec, Decrypt)
		if enc != dec {
			t.Fatalf("pair %x/%x: E under first key != D under second", pair[0], pair[1])
		}

		// Consequently encrypting under both keys in turn restores
		// the plaintext.
		b := pt
		ks1.Transform(&b, Encrypt)
		ks2.Transform(&b, Encrypt)
		if b != pt {
			t.Fatalf("pair %x/%x: encrypting under both keys did not restore plaintext", pair[0], pair[1])
		}
	}

	var notSemi [8]byte
	copy(notSemi[:], mustHex(t, "133457799bbcdff1"))
	if IsSemiWeakKey(notSemi) {
		t.Fatal("normal key reported semi-weak")
	}
}

// Flipping one plaintext bit must change a substantial fraction of the
// ciphertext. A sanity guard against a miscomputed table, not a
// cryptographic claim.
func TestAvalanche(t *testing.T) {
	key := block8(mustHex(t, "133457799bbcdff1"))
	ks := NewSchedule(key)

	base := block8(mustHex(t, "0123456789abcdef"))
	ct0 := base
	ks.Transform(&ct0, Encrypt)

	for bit := 0; bit < 64; bit += 7 {
		b := base
		b[bit/8] ^= 1 << (bit % 8)
		ks.Transform(&b, Encrypt)

		diff := 0
		for i := range b {
			diff += bits.OnesCount8(b[i] ^ ct0[i])
		}
		if diff < 10 {
			t.Fatalf("flipping input bit %d changed only %d output bits", bit, diff)
		}
	}
}

func TestTableBuildIdempotent(t *testing.T) {
	ensureTables()
	snapSP := sp
	snapKC4 := keyC4
	snapHi := subHiC4
	snapIP := ipLR

	buildTables()

	if sp != snapSP || keyC4 != snapKC4 || subHiC4 != snapHi || ipLR != snapIP {
		t.Fatal("rebuilding tables changed their contents")
	}
}

func TestCipherBlockAdapter(t *testing.T) {
	key := mustHex(t, "133457799bbcdff1")
	c, err := NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	if c.BlockSize() != BlockSize {
		t.Fatalf("block size %d", c.BlockSize())
	}

	pt := mustHex(t, "0123456789abcdef")
	ct := make([]byte, 8)
	c.Encrypt(ct, pt)
	if got, want := hex.EncodeToString(ct), "85e813540f0ab405"; got != want {
		t.Fatalf("adapter encrypt: got %s, want %s", got, want)
	}
	out := make([]byte, 8)
	c.Decrypt(out, ct)
	if !bytes.Equal(out, pt) {
		t.Fatalf("adapter decrypt: got %x, want %x", out, pt)
	}

	if _, err := NewCipher(key[:7]); err == nil {
		t.Fatal("expected error for short key")
	}
}

func BenchmarkTransform(b *testing.B) {
	key := block8([]byte{0x13, 0x34, 0x57, 0x79, 0x9b, 0xbc, 0xdf, 0xf1})
	ks := NewSchedule(key)
	var blk [8]byte
	b.SetBytes(8)
	for i := 0; i < b.N; i++ {
		ks.Transform(&blk, Encrypt)
	}
}
