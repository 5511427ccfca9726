package vector

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"descore/internal/des56"
)

type DESRecord struct {
	Count int
	Key   []byte
	PT    []byte
	CT    []byte
	Mode  string // ENCRYPT or DECRYPT
}

type DESMismatch struct {
	Count    int    `json:"count"`
	Mode     string `json:"mode"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

type DESValidationResult struct {
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Failures []DESMismatch `json:"failures,omitempty"`
}

// ParseDESVectorFile reads an rsp-style vector file with [ENCRYPT] and
// [DECRYPT] sections of COUNT/KEY/PLAINTEXT/CIPHERTEXT lines. Monte
// Carlo files are rejected: their records encode iterated chains, which
// record-by-record validation cannot check.
func ParseDESVectorFile(r io.Reader) ([]DESRecord, error) {
	var recs []DESRecord
	sc := bufio.NewScanner(r)
	section := ""
	var cur DESRecord

	flush := func() {
		if cur.Key != nil || cur.PT != nil || cur.CT != nil {
			cur.Mode = strings.ToUpper(section)
			recs = append(recs, cur)
			cur = DESRecord{}
		}
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if strings.Contains(strings.ToUpper(line), "MCT") {
				return nil, fmt.Errorf("monte carlo vector files cannot be validated record by record")
			}
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			section = strings.ToUpper(strings.Trim(line, "[]"))
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.TrimSpace(parts[1])

		switch k {
		case "COUNT":
			flush()
			fmt.Sscanf(v, "%d", &cur.Count)
		case "KEY", "PLAINTEXT", "CIPHERTEXT":
			raw, err := hex.DecodeString(v)
			if err != nil {
				return nil, fmt.Errorf("bad hex on %s line at COUNT=%d: %w", k, cur.Count, err)
			}
			switch k {
			case "KEY":
				cur.Key = raw
			case "PLAINTEXT":
				cur.PT = raw
			case "CIPHERTEXT":
				cur.CT = raw
			}
		}
	}
	flush()
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// ValidateDES recomputes every record through the engine and diffs the
// result against the file's expectation. Records must be single-block
// known-answer pairs; MCT response files do not fit this contract and
// are refused at parse time.
func ValidateDES(recs []DESRecord) (DESValidationResult, error) {
	res := DESValidationResult{Total: len(recs)}
	for _, r := range recs {
		if len(r.Key) != des56.BlockSize {
			return res, fmt.Errorf("bad key size at COUNT=%d", r.Count)
		}
		ks := des56.NewSchedule(key8(r.Key))

		switch strings.ToUpper(r.Mode) {
		case "ENCRYPT":
			if len(r.PT) != des56.BlockSize {
				return res, fmt.Errorf("PT not a single block at COUNT=%d", r.Count)
			}
			var b [8]byte
			copy(b[:], r.PT)
			ks.Transform(&b, des56.Encrypt)
			if bytes.Equal(b[:], r.CT) {
				res.Passed++
			} else {
				res.Failed++
				res.Failures = append(res.Failures, DESMismatch{
					Count:    r.Count,
					Mode:     "ENCRYPT",
					Expected: hex.EncodeToString(r.CT),
					Got:      hex.EncodeToString(b[:]),
				})
			}

		case "DECRYPT":
			if len(r.CT) != des56.BlockSize {
				return res, fmt.Errorf("CT not a single block at COUNT=%d", r.Count)
			}
			var b [8]byte
			copy(b[:], r.CT)
			ks.Transform(&b, des56.Decrypt)
			if bytes.Equal(b[:], r.PT) {
				res.Passed++
			} else {
				res.Failed++
				res.Failures = append(res.Failures, DESMismatch{
					Count:    r.Count,
					Mode:     "DECRYPT",
					Expected: hex.EncodeToString(r.PT),
					Got:      hex.EncodeToString(b[:]),
				})
			}

		default:
			return res, fmt.Errorf("unknown section/mode at COUNT=%d", r.Count)
		}
	}
	return res, nil
}
