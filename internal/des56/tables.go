// Package des56 implements the Data Encryption Standard as a fast
// table-driven 64-bit block cipher.
//
// The standard's bit permutations (PC-1, PC-2, the initial and final
// permutations, and the P-box) are not applied bit by bit; instead the
// package derives, once per process, lookup tables mapping small slices
// of the input to their already-permuted contribution to the output.
// S-box substitution and the P permutation are merged into a single
// 32-bit mask lookup per 6-bit group.
//
// Bit numbering follows the NBS convention: bit 1 is the most
// significant bit of byte 0, bit 64 the least significant bit of
// byte 7, for both keys and data blocks. The nominal parity bit of
// each key byte (bits 8, 16, ..., 64) is discarded without being
// checked.
package des56

import "sync"

// Permuted choice 1: pc1C[i] and pc1D[i] give the key bit number
// (1..64) that initializes bit i of the 28-bit C and D halves.
var pc1C = [28]byte{
	57, 49, 41, 33, 25, 17, 9,
	1, 58, 50, 42, 34, 26, 18,
	10, 2, 59, 51, 43, 35, 27,
	19, 11, 3, 60, 52, 44, 36,
}

var pc1D = [28]byte{
	63, 55, 47, 39, 31, 23, 15,
	7, 62, 54, 46, 38, 30, 22,
	14, 6, 61, 53, 45, 37, 29,
	21, 13, 5, 28, 20, 12, 4,
}

// Left-rotation amounts applied to C and D before each round's
// subkey extraction.
var preshift = [16]byte{
	1, 1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1,
}

// Permuted choice 2: indexed by round-subkey bit number, gives the bit
// number in the concatenated CD value (CD1 = MSB of C, CD29 = MSB of D).
// C bits feed only the upper 24 subkey bits, D bits only the lower 24.
var pc2 = [48]byte{
	14, 17, 11, 24, 1, 5,
	3, 28, 15, 6, 21, 10,
	23, 19, 12, 4, 26, 8,
	16, 7, 27, 20, 13, 2,
	41, 52, 31, 37, 47, 55,
	30, 40, 51, 45, 33, 48,
	44, 49, 39, 56, 34, 53,
	46, 42, 50, 36, 29, 32,
}

// The 32-bit permutation applied to the catenated S-box outputs.
var pbox = [32]byte{
	16, 7, 20, 21,
	29, 12, 28, 17,
	1, 15, 23, 26,
	5, 18, 31, 10,
	2, 8, 24, 14,
	32, 27, 3, 9,
	19, 13, 30, 6,
	22, 11, 4, 25,
}

// The eight selection functions, each mapping a 6-bit input to 4 bits.
// Laid out in the NBS row/column order; buildTables reindexes them into
// natural bit order.
var sboxes = [8][64]byte{
	{
		14, 4, 13, 1, 2, 15, 11, 8, 3, 10, 6, 12, 5, 9, 0, 7,
		0, 15, 7, 4, 14, 2, 13, 1, 10, 6, 12, 11, 9, 5, 3, 8,
		4, 1, 14, 8, 13, 6, 2, 11, 15, 12, 9, 7, 3, 10, 5, 0,
		15, 12, 8, 2, 4, 9, 1, 7, 5, 11, 3, 14, 10, 0, 6, 13,
	},
	{
		15, 1, 8, 14, 6, 11, 3, 4, 9, 7, 2, 13, 12, 0, 5, 10,
		3, 13, 4, 7, 15, 2, 8, 14, 12, 0, 1, 10, 6, 9, 11, 5,
		0, 14, 7, 11, 10, 4, 13, 1, 5, 8, 12, 6, 9, 3, 2, 15,
		13, 8, 10, 1, 3, 15, 4, 2, 11, 6, 7, 12, 0, 5, 14, 9,
	},
	{
		10, 0, 9, 14, 6, 3, 15, 5, 1, 13, 12, 7, 11, 4, 2, 8,
		13, 7, 0, 9, 3, 4, 6, 10, 2, 8, 5, 14, 12, 11, 15, 1,
		13, 6, 4, 9, 8, 15, 3, 0, 11, 1, 2, 12, 5, 10, 14, 7,
		1, 10, 13, 0, 6, 9, 8, 7, 4, 15, 14, 3, 11, 5, 2, 12,
	},
	{
		7, 13, 14, 3, 0, 6, 9, 10, 1, 2, 8, 5, 11, 12, 4, 15,
		13, 8, 11, 5, 6, 15, 0, 3, 4, 7, 2, 12, 1, 10, 14, 9,
		10, 6, 9, 0, 12, 11, 7, 13, 15, 1, 3, 14, 5, 2, 8, 4,
		3, 15, 0, 6, 10, 1, 13, 8, 9, 4, 5, 11, 12, 7, 2, 14,
	},
	{
		2, 12, 4, 1, 7, 10, 11, 6, 8, 5, 3, 15, 13, 0, 14, 9,
		14, 11, 2, 12, 4, 7, 13, 1, 5, 0, 15, 10, 3, 9, 8, 6,
		4, 2, 1, 11, 10, 13, 7, 8, 15, 9, 12, 5, 6, 3, 0, 14,
		11, 8, 12, 7, 1, 14, 2, 13, 6, 15, 0, 9, 10, 4, 5, 3,
	},
	{
		12, 1, 10, 15, 9, 2, 6, 8, 0, 13, 3, 4, 14, 7, 5, 11,
		10, 15, 4, 2, 7, 12, 9, 5, 6, 1, 13, 14, 0, 11, 3, 8,
		9, 14, 15, 5, 2, 8, 12, 3, 7, 0, 4, 10, 1, 13, 11, 6,
		4, 3, 2, 12, 9, 5, 15, 10, 11, 14, 1, 7, 6, 0, 8, 13,
	},
	{
		4, 11, 2, 14, 15, 0, 8, 13, 3, 12, 9, 7, 5, 10, 6, 1,
		13, 0, 11, 7, 4, 9, 1, 10, 14, 3, 5, 12, 2, 15, 8, 6,
		1, 4, 11, 13, 12, 3, 7, 14, 10, 15, 6, 8, 0, 5, 9, 2,
		6, 11, 13, 8, 1, 4, 10, 7, 9, 5, 0, 15, 14, 2, 3, 12,
	},
	{
		13, 2, 8, 4, 6, 15, 11, 1, 10, 9, 3, 14, 5, 0, 12, 7,
		1, 15, 13, 8, 10, 3, 7, 4, 12, 5, 6, 11, 0, 14, 9, 2,
		7, 11, 4, 1, 9, 12, 14, 2, 0, 6, 10, 13, 15, 3, 5, 8,
		2, 1, 14, 7, 4, 10, 8, 13, 15, 12, 9, 0, 3, 5, 6, 11,
	},
}

// Derived lookup tables, built once by buildTables and read-only
// afterwards.
//
// keyC4[i][v] / keyC3[i][v] give the C bits contributed by the high
// 4-bit / low 3-bit slice of key byte i after the parity bit is
// dropped; keyD4/keyD3 likewise for D. OR-ing the contributions of
// all 8 bytes reconstructs PC-1.
var (
	keyC4 [8][16]uint32
	keyC3 [8][8]uint32
	keyD4 [8][16]uint32
	keyD3 [8][8]uint32
)

// subHiC4[i][v] gives the bits of the upper subkey word selected by
// 4-bit slice i of the rotated C half; subLoD4 the lower word from D.
// Each subkey word holds four 6-bit groups right-justified in 8-bit
// lanes. OR-ing all seven slices reconstructs PC-2.
var (
	subHiC4 [7][16]uint32
	subLoD4 [7][16]uint32
)

// ipLR[v] spreads the four even-position bits of an input byte into
// bits 0, 8, 16 and 24 of an L or R word; only indexes with bits in
// the 0x55 pattern are ever used. fpNib[v] is the matching nibble
// spread for the final permutation.
var (
	ipLR  [0x55 + 1]uint32
	fpNib [16]uint32
)

// sp[i][j] is S-box i applied to natural-order 6-bit input j, already
// passed through the P permutation: the f-function output is the OR of
// eight such masks.
var sp [8][64]uint32

var tablesOnce sync.Once

func ensureTables() {
	tablesOnce.Do(buildTables)
}

func buildTables() {
	// The slice tables accumulate with OR; clear them so a rebuild
	// reproduces the same state.
	keyC4, keyD4 = [8][16]uint32{}, [8][16]uint32{}
	keyC3, keyD3 = [8][8]uint32{}, [8][8]uint32{}
	subHiC4, subLoD4 = [7][16]uint32{}, [7][16]uint32{}
	sp = [8][64]uint32{}

	// Invert PC-1: single-bit C/D value per source key bit.
	var wCK, wDK [64]uint32
	v := uint32(1)
	for j := 27; j >= 0; j-- {
		wCK[pc1C[j]-1] = v
		wDK[pc1D[j]-1] = v
		v += v
	}

	// Fold the per-bit values into per-slice tables. The index i walks
	// the sequence 0..3, 8..11, ..., 56..59: the four MSBs of each key
	// byte; the 3-bit tables pick up bits 4..6 at offset +3.
	for i := 0; i < 64; i++ {
		t := 8 >> (i & 3)
		for j := 0; j < 16; j++ {
			if j&t != 0 {
				keyC4[i>>3][j] |= wCK[i]
				keyD4[i>>3][j] |= wDK[i]
				if j < 8 {
					keyC3[i>>3][j] |= wCK[i+3]
					keyD3[i>>3][j] |= wDK[i+3]
				}
			}
		}
		if t == 1 {
			i += 4
		}
	}

	// Invert PC-2, keeping each 6-bit group right-justified in an
	// 8-bit lane of the subkey word.
	var hKSC, lKSD [28]uint32
	v = 1
	for i := 18; i >= 0; i -= 6 {
		for j := i + 5; j >= i; j-- {
			hKSC[pc2[j]-1] = v
			lKSD[pc2[j+24]-28-1] = v
			v += v
		}
		v <<= 2
	}
	for i := 0; i < 28; i++ {
		t := 8 >> (i & 3)
		for j := 0; j < 16; j++ {
			if j&t != 0 {
				subHiC4[i>>2][j] |= hKSC[i]
				subLoD4[i>>2][j] |= lKSD[i]
			}
		}
	}

	// Initial permutation: spread every other input bit across the
	// four byte planes of an L/R word.
	for i := 0; i <= 0x55; i++ {
		var w uint32
		if i&64 != 0 {
			w = 1 << 24
		}
		if i&16 != 0 {
			w |= 1 << 16
		}
		if i&4 != 0 {
			w |= 1 << 8
		}
		if i&1 != 0 {
			w |= 1
		}
		ipLR[i] = w
	}

	// Final permutation nibble spread.
	for i := 0; i < 16; i++ {
		var w uint32
		if i&1 != 0 {
			w = 1 << 24
		}
		if i&2 != 0 {
			w |= 1 << 16
		}
		if i&4 != 0 {
			w |= 1 << 8
		}
		if i&8 != 0 {
			w |= 1
		}
		fpNib[i] = w
	}

	// The NBS tabulates S entries with the row bits at the ends of the
	// 6-bit index; smap lets the round loop index in natural bit order.
	var smap [64]int
	for i := 0; i < 64; i++ {
		smap[i] = i&0x20 | (i&1)<<4 | (i&0x1e)>>1
	}

	// Invert P into a mask per f-function output bit.
	var wP [32]uint32
	v = 1
	for i := 31; i >= 0; i-- {
		wP[pbox[i]-1] = v
		v += v
	}

	// Merge S substitution with P: each entry is the already-permuted
	// 32-bit mask for one 6-bit group.
	for i := 0; i < 8; i++ {
		for j := 0; j < 64; j++ {
			t := sboxes[i][smap[j]]
			for k := 0; k < 4; k++ {
				if t&8 != 0 {
					sp[i][j] |= wP[4*i+k]
				}
				t += t
			}
		}
	}
}
