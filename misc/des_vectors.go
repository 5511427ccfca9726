// Stand-alone checker: runs the engine against the published NBS DES
// example and the weak-key catalogue and prints the results as JSON.
//
//	go run ./misc
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"descore/internal/des56"
)

type BlockVector struct {
	Key         string `json:"key"`
	Plaintext   string `json:"plaintext"`
	Ciphertext  string `json:"ciphertext_true"`
	CiphertextG string `json:"ciphertext_computed"`
	OK          bool   `json:"ok"`
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		log.Fatalf("hex decode failed for %q: %v", s, err)
	}
	return b
}

func to8(b []byte) (out [8]byte) {
	copy(out[:], b)
	return
}

func main() {
	// The worked example from the original NBS publication.
	vectors := []struct {
		key, pt, ct string
	}{
		{"133457799BBCDFF1", "0123456789ABCDEF", "85E813540F0AB405"},
	}

	var report []BlockVector
	for _, v := range vectors {
		ks := des56.NewSchedule(to8(mustHex(v.key)))
		b := to8(mustHex(v.pt))
		ks.Transform(&b, des56.Encrypt)
		got := strings.ToUpper(hex.EncodeToString(b[:]))
		report = append(report, BlockVector{
			Key:         v.key,
			Plaintext:   v.pt,
			Ciphertext:  v.ct,
			CiphertextG: got,
			OK:          got == v.ct,
		})
	}

	// Weak keys: double encryption under the same schedule must be the
	// identity.
	for _, key := range des56.WeakKeys() {
		ks := des56.NewSchedule(key)
		pt := to8(mustHex("0123456789ABCDEF"))
		b := pt
		ks.Transform(&b, des56.Encrypt)
		ct := strings.ToUpper(hex.EncodeToString(b[:]))
		ks.Transform(&b, des56.Encrypt)
		report = append(report, BlockVector{
			Key:         strings.ToUpper(hex.EncodeToString(key[:])),
			Plaintext:   "0123456789ABCDEF",
			Ciphertext:  "0123456789ABCDEF",
			CiphertextG: ct + " -> " + strings.ToUpper(hex.EncodeToString(b[:])),
			OK:          b == pt,
		})
	}

	// Semi-weak pairs: encrypting under both keys of a pair in turn
	// must be the identity.
	for _, pair := range des56.SemiWeakKeyPairs() {
		ks1 := des56.NewSchedule(pair[0])
		ks2 := des56.NewSchedule(pair[1])
		pt := to8(mustHex("0123456789ABCDEF"))
		b := pt
		ks1.Transform(&b, des56.Encrypt)
		ct := strings.ToUpper(hex.EncodeToString(b[:]))
		ks2.Transform(&b, des56.Encrypt)
		report = append(report, BlockVector{
			Key:         strings.ToUpper(hex.EncodeToString(pair[0][:]) + "/" + hex.EncodeToString(pair[1][:])),
			Plaintext:   "0123456789ABCDEF",
			Ciphertext:  "0123456789ABCDEF",
			CiphertextG: ct + " -> " + strings.ToUpper(hex.EncodeToString(b[:])),
			OK:          b == pt,
		})
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
	for _, r := range report {
		if !r.OK {
			log.Fatalf("vector failed: %+v", r)
		}
	}
}
