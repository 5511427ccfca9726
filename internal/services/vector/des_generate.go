package vector

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"descore/internal/des56"
)

type DESTestMode string

const (
	DES_KAT DESTestMode = "KAT"
	DES_MCT DESTestMode = "MCT"
)

type DESGenParams struct {
	Count           int
	IncludeExpected bool
	// Only used when test_mode == KAT. Allowed: GFSBOX | KEYSBOX | VARKEY | VARTXT
	KatVariant string
}

type DESEncRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	Plaintext  string `json:"plaintext"`
	Ciphertext string `json:"ciphertext,omitempty"`
	WeakKey    bool   `json:"weak_key,omitempty"`
}

type DESDecRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	Ciphertext string `json:"ciphertext"`
	Plaintext  string `json:"plaintext,omitempty"`
	WeakKey    bool   `json:"weak_key,omitempty"`
}

type DESTestVector struct {
	Algorithm string         `json:"algorithm"`
	TestMode  string         `json:"test_mode"`
	KeyBits   int            `json:"key_bits"`
	Encrypt   []DESEncRecord `json:"encrypt"`
	Decrypt   []DESDecRecord `json:"decrypt"`
}

// --- helpers ---

func randBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = io.ReadFull(rand.Reader, b)
	return b
}

func fmtInt(i int) string { return strconv.Itoa(i) }

// setLeftmostBits returns a byte slice of length nBytes whose leftmost "bits" are set to 1.
func setLeftmostBits(nBytes, bits int) []byte {
	if bits <= 0 {
		return make([]byte, nBytes)
	}
	if bits > nBytes*8 {
		bits = nBytes * 8
	}
	b := make([]byte, nBytes)
	full := bits / 8
	rem := bits % 8
	for i := 0; i < full; i++ {
		b[i] = 0xFF
	}
	if rem > 0 {
		b[full] = ^byte(0xFF >> rem)
	}
	return b
}

func key8(b []byte) (out [8]byte) {
	copy(out[:], b)
	return
}

// encryptOneDES runs the engine over a single 64-bit block.
func encryptOneDES(ks des56.Schedule, pt []byte) []byte {
	var b [8]byte
	copy(b[:], pt)
	ks.Transform(&b, des56.Encrypt)
	return b[:]
}

// degenerateKey marks keys from the weak and semi-weak catalogues so
// consumers can tell a degenerate-schedule record from a normal one.
func degenerateKey(key []byte) bool {
	k := key8(key)
	return des56.IsWeakKey(k) || des56.IsSemiWeakKey(k)
}

func appendDESRecord(out *DESTestVector, count int, key, pt, ct []byte, includeExpected bool) {
	weak := degenerateKey(key)
	enc := DESEncRecord{Count: count, KeyHex: hex.EncodeToString(key), Plaintext: hex.EncodeToString(pt), WeakKey: weak}
	dec := DESDecRecord{Count: count, KeyHex: enc.KeyHex, Ciphertext: hex.EncodeToString(ct), WeakKey: weak}
	if includeExpected {
		enc.Ciphertext = hex.EncodeToString(ct)
		dec.Plaintext = hex.EncodeToString(pt)
	}
	out.Encrypt = append(out.Encrypt, enc)
	out.Decrypt = append(out.Decrypt, dec)
}

// GenerateDESTestVectors produces single-block DES vectors. The engine
// is mode-less: every record is one 8-byte block through one cipher
// application, so no IVs appear.
func GenerateDESTestVectors(test string, p DESGenParams) (DESTestVector, error) {
	if p.Count <= 0 {
		p.Count = 10
	}
	test = strings.ToUpper(strings.TrimSpace(test))

	var tmode DESTestMode
	switch test {
	case "KAT":
		tmode = DES_KAT
	case "MCT":
		tmode = DES_MCT
	default:
		return DESTestVector{}, fmt.Errorf("unsupported test_mode %q", test)
	}

	var out DESTestVector
	out.Algorithm = "DES"
	out.TestMode = string(tmode)
	out.KeyBits = 56

	bs := des56.BlockSize

	switch tmode {
	case DES_KAT:
		variant := strings.ToUpper(strings.TrimSpace(p.KatVariant))
		if variant == "" {
			return DESTestVector{}, fmt.Errorf("KatVariant must be specified for KAT (allowed: GFSBOX, KEYSBOX, VARKEY, VARTXT)")
		}

		switch variant {
		case "GFSBOX":
			// random PT, zero key
			key := make([]byte, bs)
			ks := des56.NewSchedule(key8(key))
			for i := 0; i < p.Count; i++ {
				pt := randBytes(bs)
				ct := encryptOneDES(ks, pt)
				appendDESRecord(&out, i, key, pt, ct, p.IncludeExpected)
			}

		case "KEYSBOX":
			// random key, zero PT
			pt := make([]byte, bs)
			for i := 0; i < p.Count; i++ {
				key := randBytes(bs)
				ks := des56.NewSchedule(key8(key))
				ct := encryptOneDES(ks, pt)
				appendDESRecord(&out, i, key, pt, ct, p.IncludeExpected)
			}

		case "VARKEY":
			// PT all-zero, keys with increasing leftmost bits set
			pt := make([]byte, bs)
			limit := min(p.Count, 64)
			for i := 0; i < limit; i++ {
				key := setLeftmostBits(bs, i+1)
				ks := des56.NewSchedule(key8(key))
				ct := encryptOneDES(ks, pt)
				appendDESRecord(&out, i, key, pt, ct, p.IncludeExpected)
			}

		case "VARTXT":
			// Key all-zero, PT with increasing leftmost bits set
			key := make([]byte, bs)
			ks := des56.NewSchedule(key8(key))
			limit := min(p.Count, 64)
			for i := 0; i < limit; i++ {
				pt := setLeftmostBits(bs, i+1)
				ct := encryptOneDES(ks, pt)
				appendDESRecord(&out, i, key, pt, ct, p.IncludeExpected)
			}

		default:
			return DESTestVector{}, fmt.Errorf("unsupported DES KAT variant %q", variant)
		}

	case DES_MCT:
		// CAVP-style Monte Carlo over the bare block function: 10000
		// inner iterations, key XORed with the last ciphertext per
		// outer COUNT.
		const inner = 10000
		key := randBytes(bs)
		pt0 := randBytes(bs)

		for i := 0; i < p.Count; i++ {
			ks := des56.NewSchedule(key8(key))
			keyRec := hex.EncodeToString(key)
			ptRec := hex.EncodeToString(pt0)

			pt := make([]byte, bs)
			copy(pt, pt0)
			lastCT := make([]byte, bs)
			for j := 0; j < inner; j++ {
				ct := encryptOneDES(ks, pt)
				copy(pt, ct)
				copy(lastCT, ct)
			}

			weak := degenerateKey(key)
			enc := DESEncRecord{Count: i, KeyHex: keyRec, Plaintext: ptRec, WeakKey: weak}
			dec := DESDecRecord{Count: i, KeyHex: keyRec, Ciphertext: hex.EncodeToString(lastCT), WeakKey: weak}
			if p.IncludeExpected {
				enc.Ciphertext = hex.EncodeToString(lastCT)
				dec.Plaintext = ptRec
			}
			out.Encrypt = append(out.Encrypt, enc)
			out.Decrypt = append(out.Decrypt, dec)

			for k := 0; k < bs; k++ {
				key[k] ^= lastCT[k]
			}
			copy(pt0, lastCT)
		}
	}

	return out, nil
}

// TXT formatter (rsp-like). The header names the test mode so the
// validator can refuse MCT files, whose records are iterated chains.
func (v DESTestVector) ToTXT() string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(v.Algorithm)
	b.WriteString(" ")
	b.WriteString(v.TestMode)
	b.WriteString(" single-block vectors\n\n")
	b.WriteString("[ENCRYPT]\n\n")
	for _, r := range v.Encrypt {
		b.WriteString("COUNT = ")
		b.WriteString(fmtInt(r.Count))
		b.WriteString("\n")
		b.WriteString("KEY = ")
		b.WriteString(strings.ToLower(r.KeyHex))
		b.WriteString("\n")
		b.WriteString("PLAINTEXT = ")
		b.WriteString(strings.ToLower(r.Plaintext))
		b.WriteString("\n\n")
	}
	b.WriteString("[DECRYPT]\n\n")
	for _, r := range v.Decrypt {
		b.WriteString("COUNT = ")
		b.WriteString(fmtInt(r.Count))
		b.WriteString("\n")
		b.WriteString("KEY = ")
		b.WriteString(strings.ToLower(r.KeyHex))
		b.WriteString("\n")
		b.WriteString("CIPHERTEXT = ")
		b.WriteString(strings.ToLower(r.Ciphertext))
		b.WriteString("\n\n")
	}
	return b.String()
}
