package des56

import "encoding/binary"

// Direction selects which way Transform runs the round schedule.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

// Transform en/decrypts one 64-bit block in place. The Feistel
// structure is self-inverse under key-schedule reversal, so decryption
// runs the same rounds with the stages in reverse order. The schedule
// must not be mutated while a Transform using it is in flight; the
// block buffer must not be shared between concurrent calls.
func (ks *Schedule) Transform(block *[8]byte, dir Direction) {
	ensureTables()

	// Initial permutation: per input byte, the even-position bits feed
	// L and the odd-position bits feed R, one bit per byte plane.
	var l, r uint32
	for i := 7; i >= 0; i-- {
		v := uint32(block[i])
		l = ipLR[v&0x55] | l<<1
		r = ipLR[v>>1&0x55] | r<<1
	}

	idx, step := 0, 1
	if dir == Decrypt {
		idx, step = 15, -1
	}

	for i := 0; i < 16; i++ {
		k := &ks[idx]
		idx += step

		// tr is R rotated so that its bits line up with the eight
		// overlapping 6-bit groups of the E expansion; no expansion
		// table is needed.
		tr := r>>15 | r<<17

		kw := k.Hi
		l ^= sp[0][(tr>>12^kw>>24)&63] |
			sp[1][(tr>>8^kw>>16)&63] |
			sp[2][(tr>>4^kw>>8)&63] |
			sp[3][(tr^kw)&63]

		kw = k.Lo
		l ^= sp[4][(r>>11^kw>>24)&63] |
			sp[5][(r>>7^kw>>16)&63] |
			sp[6][(r>>3^kw>>8)&63] |
			sp[7][(tr>>16^kw)&63]

		l, r = r, l
	}

	// Final permutation, assembled four output bits at a time from
	// matching L and R nibbles.
	fp := func(k uint) uint32 {
		return fpNib[l>>k&15]<<1 | fpNib[r>>k&15]
	}
	t := fp(0) | (fp(8)|(fp(16)|fp(24)<<2)<<2)<<2
	r = fp(4) | (fp(12)|(fp(20)|fp(28)<<2)<<2)<<2
	l = t

	binary.BigEndian.PutUint32(block[0:4], l)
	binary.BigEndian.PutUint32(block[4:8], r)
}
