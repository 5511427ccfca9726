package des56

// A Subkey holds one round's 48 subkey bits as two 24-bit halves,
// right-justified: bits 1..24 in Hi, bits 25..48 in Lo, each half laid
// out as four 6-bit groups in 8-bit lanes.
type Subkey struct {
	Hi, Lo uint32
}

// A Schedule is the sequence of 16 round subkeys derived from one
// 64-bit key. It retains nothing of the key itself and may be shared
// by any number of concurrent Transform calls.
type Schedule [16]Subkey

// choice2 applies the inverted PC-2 tables to a rotated 28-bit half.
func choice2(t *[7][16]uint32, v uint32) uint32 {
	return t[6][v&15] | t[5][v>>4&15] | t[4][v>>8&15] |
		t[3][v>>12&15] | t[2][v>>16&15] | t[1][v>>20&15] |
		t[0][v>>24&15]
}

// NewSchedule converts a 64-bit key into a round key schedule. The low
// bit of every key byte is the nominal parity bit; it is discarded
// without being checked, so keys differing only in parity bits yield
// identical schedules.
func NewSchedule(key [8]byte) Schedule {
	ensureTables()

	var c, d uint32
	for i := 0; i < 8; i++ {
		v := int(key[i]) >> 1
		c |= keyC4[i][v>>3&15] | keyC3[i][v&7]
		d |= keyD4[i][v>>3&15] | keyD3[i][v&7]
	}

	// c and d now hold the 28 permuted key bits each, right-justified.
	var ks Schedule
	for i := 0; i < 16; i++ {
		// 28-bit left circular shift.
		c <<= preshift[i]
		c = c>>28&3 | c&(1<<28-1)
		ks[i].Hi = choice2(&subHiC4, c)

		d <<= preshift[i]
		d = d>>28&3 | d&(1<<28-1)
		ks[i].Lo = choice2(&subLoD4, d)
	}
	return ks
}
