package dynflate

import (
	"bufio"
	"io"
)

// maxBitsPerRead bounds the n accepted by bitReader.read/peek: DEFLATE's
// longest Huffman code is 15 bits and the longest extra-bits field is 13
// bits (distance code 29), so 16 bits of headroom is always sufficient.
const maxBitsPerRead = 16

// Reader is the minimal input interface bitReader needs. If the io.Reader
// passed to NewReader doesn't already implement io.ByteReader, NewReader
// wraps it in a bufio.Reader.
type Reader interface {
	io.Reader
	io.ByteReader
}

func asByteReader(r io.Reader) Reader {
	if br, ok := r.(Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// bitReader accumulates bytes from an underlying byte source into a 32-bit
// buffer and yields them LSB-first: buf holds the next nbits valid
// low-order bits, and each refill ORs one byte in at position nbits and
// advances nbits by 8.
type bitReader struct {
	r      Reader
	buf    uint32
	nbits  uint
	offset int64 // bytes consumed from r, for error reporting
}

func newBitReader(r io.Reader) *bitReader {
	return &bitReader{r: asByteReader(r)}
}

// ensure refills buf, one byte at a time, until at least n bits are
// buffered.
func (b *bitReader) ensure(n uint) error {
	for b.nbits < n {
		c, err := b.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return ErrUnexpectedEOF
			}
			return err
		}
		b.offset++
		b.buf |= uint32(c) << b.nbits
		b.nbits += 8
	}
	return nil
}

func (b *bitReader) drop(n uint) {
	b.buf >>= n
	b.nbits -= n
}

// read returns the next n bits (1 <= n <= maxBitsPerRead), LSB-first: bit 0
// of the stream becomes bit 0 of the result.
func (b *bitReader) read(n uint) (uint32, error) {
	if err := b.ensure(n); err != nil {
		return 0, err
	}
	v := b.buf & (1<<n - 1)
	b.drop(n)
	return v, nil
}

// peek returns the next n bits without consuming them.
func (b *bitReader) peek(n uint) (uint32, error) {
	if err := b.ensure(n); err != nil {
		return 0, err
	}
	return b.buf & (1<<n - 1), nil
}

// alignToByte discards the currently buffered partial byte. Not reached by
// the dynamic-Huffman-only decode path (no DEFLATE field here is
// byte-aligned); exposed for completeness since a stored block (out of
// scope, BTYPE=0) would need it before reading its LEN/NLEN.
func (b *bitReader) alignToByte() {
	b.drop(b.nbits % 8)
}
