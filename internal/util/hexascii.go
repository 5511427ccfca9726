package util

import (
	"encoding/hex"
	"strings"
)

// IsLikelyHex reports whether s (ignoring spaces) decodes as hex.
func IsLikelyHex(s string) bool {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
	if len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// ToHex normalizes s to lowercase hex: hex input is cleaned up, raw
// text is encoded.
func ToHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if IsLikelyHex(s) {
		return strings.ToLower(strings.ReplaceAll(s, " ", "")), nil
	}
	return hex.EncodeToString([]byte(s)), nil
}
