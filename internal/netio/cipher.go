package netio

import "crypto/cipher"

// Minecraft's "AES/CFB8" encryption is CFB mode with an 8-bit (one byte)
// feedback segment, which the standard library's cipher.NewCFBEncrypter
// does not implement (it always feeds back a full block). Grounded on the
// newCFB8Encrypter/newCFB8Decrypter split used by the pack's Minecraft proxy
// (wrapping a cipher.Block into a cipher.Stream consumed through
// cipher.StreamReader/StreamWriter).

type cfb8 struct {
	block     cipher.Block
	shift     []byte
	tmp       []byte
	decrypt   bool
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) cipher.Stream {
	shift := make([]byte, len(iv))
	copy(shift, iv)
	return &cfb8{
		block:   block,
		shift:   shift,
		tmp:     make([]byte, block.BlockSize()),
		decrypt: decrypt,
	}
}

// newCFB8Encrypter returns a cipher.Stream that encrypts with AES-CFB8
// using iv as the initial shift register.
func newCFB8Encrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

// newCFB8Decrypter is the inverse of newCFB8Encrypter.
func newCFB8Decrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func (x *cfb8) XORKeyStream(dst, src []byte) {
	bs := x.block.BlockSize()
	for i := range src {
		x.block.Encrypt(x.tmp, x.shift)
		b := src[i] ^ x.tmp[0]

		// Slide the shift register left by one byte and append the byte
		// that feeds the next round: the ciphertext byte on encrypt, the
		// already-read ciphertext byte on decrypt.
		copy(x.shift, x.shift[1:bs])
		if x.decrypt {
			x.shift[bs-1] = src[i]
		} else {
			x.shift[bs-1] = b
		}
		dst[i] = b
	}
}
