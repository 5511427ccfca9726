package des56

// The four weak keys, written with standard odd parity. Under any of
// these the derived schedule is palindromic, so encryption and
// decryption are the same operation.
var weakKeys = [4][8]byte{
	{0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01},
	{0xFE, 0xFE, 0xFE, 0xFE, 0xFE, 0xFE, 0xFE, 0xFE},
	{0xE0, 0xE0, 0xE0, 0xE0, 0xF1, 0xF1, 0xF1, 0xF1},
	{0x1F, 0x1F, 0x1F, 0x1F, 0x0E, 0x0E, 0x0E, 0x0E},
}

// The six semi-weak key pairs, odd parity. The schedule of one key in
// a pair is the reverse of the other's, so encrypting under one is the
// same as decrypting under its partner.
var semiWeakKeyPairs = [6][2][8]byte{
	{
		{0x01, 0xFE, 0x01, 0xFE, 0x01, 0xFE, 0x01, 0xFE},
		{0xFE, 0x01, 0xFE, 0x01, 0xFE, 0x01, 0xFE, 0x01},
	},
	{
		{0x1F, 0xE0, 0x1F, 0xE0, 0x0E, 0xF1, 0x0E, 0xF1},
		{0xE0, 0x1F, 0xE0, 0x1F, 0xF1, 0x0E, 0xF1, 0x0E},
	},
	{
		{0x01, 0xE0, 0x01, 0xE0, 0x01, 0xF1, 0x01, 0xF1},
		{0xE0, 0x01, 0xE0, 0x01, 0xF1, 0x01, 0xF1, 0x01},
	},
	{
		{0x1F, 0xFE, 0x1F, 0xFE, 0x0E, 0xFE, 0x0E, 0xFE},
		{0xFE, 0x1F, 0xFE, 0x1F, 0xFE, 0x0E, 0xFE, 0x0E},
	},
	{
		{0x01, 0x1F, 0x01, 0x1F, 0x01, 0x0E, 0x01, 0x0E},
		{0x1F, 0x01, 0x1F, 0x01, 0x0E, 0x01, 0x0E, 0x01},
	},
	{
		{0xE0, 0xFE, 0xE0, 0xFE, 0xF1, 0xFE, 0xF1, 0xFE},
		{0xFE, 0xE0, 0xFE, 0xE0, 0xFE, 0xF1, 0xFE, 0xF1},
	},
}

func sameKeyIgnoringParity(a, b [8]byte) bool {
	for i := range a {
		if a[i]>>1 != b[i]>>1 {
			return false
		}
	}
	return true
}

// IsWeakKey reports whether key is one of the four DES weak keys,
// ignoring parity bits. Weak keys are a documented property of the
// algorithm, not an error: scheduling and transforming under them works
// normally.
func IsWeakKey(key [8]byte) bool {
	for _, wk := range weakKeys {
		if sameKeyIgnoringParity(key, wk) {
			return true
		}
	}
	return false
}

// IsSemiWeakKey reports whether key belongs to one of the six DES
// semi-weak key pairs, ignoring parity bits.
func IsSemiWeakKey(key [8]byte) bool {
	for _, pair := range semiWeakKeyPairs {
		if sameKeyIgnoringParity(key, pair[0]) || sameKeyIgnoringParity(key, pair[1]) {
			return true
		}
	}
	return false
}

// WeakKeys returns the weak-key catalogue in odd-parity form.
func WeakKeys() [][8]byte {
	out := make([][8]byte, len(weakKeys))
	copy(out, weakKeys[:])
	return out
}

// SemiWeakKeyPairs returns the semi-weak catalogue as pairs in
// odd-parity form.
func SemiWeakKeyPairs() [][2][8]byte {
	out := make([][2][8]byte, len(semiWeakKeyPairs))
	copy(out, semiWeakKeyPairs[:])
	return out
}
