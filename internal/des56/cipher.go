package des56

import (
	"crypto/cipher"
	"strconv"
)

// BlockSize is the DES block size in bytes.
const BlockSize = 8

// KeySizeError reports a key of the wrong length.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "des56: invalid key size " + strconv.Itoa(int(k))
}

type blockCipher struct {
	ks Schedule
}

// NewCipher wraps a key schedule in the crypto/cipher Block interface.
// The key must be exactly 8 bytes; its parity bits are ignored.
func NewCipher(key []byte) (cipher.Block, error) {
	if len(key) != BlockSize {
		return nil, KeySizeError(len(key))
	}
	var k [8]byte
	copy(k[:], key)
	return &blockCipher{ks: NewSchedule(k)}, nil
}

func (c *blockCipher) BlockSize() int { return BlockSize }

func (c *blockCipher) Encrypt(dst, src []byte) { c.crypt(dst, src, Encrypt) }

func (c *blockCipher) Decrypt(dst, src []byte) { c.crypt(dst, src, Decrypt) }

func (c *blockCipher) crypt(dst, src []byte, dir Direction) {
	if len(src) < BlockSize {
		panic("des56: input not full block")
	}
	if len(dst) < BlockSize {
		panic("des56: output not full block")
	}
	var b [8]byte
	copy(b[:], src[:BlockSize])
	c.ks.Transform(&b, dir)
	copy(dst[:BlockSize], b[:])
}
