package dynflate

import (
	"bytes"
	"testing"
)

// testBitWriter packs bits LSB-first within each byte, matching bitReader's
// convention, so callers can hand-assemble a compact bit stream for tests.
type testBitWriter struct {
	bytes []byte
	cur   byte
	n     uint
}

func (w *testBitWriter) pushBit(b uint32) {
	if b != 0 {
		w.cur |= 1 << w.n
	}
	w.n++
	if w.n == 8 {
		w.bytes = append(w.bytes, w.cur)
		w.cur, w.n = 0, 0
	}
}

// pushCode writes a Huffman code's bits most-significant-bit first, per RFC
// 1951 §3.2.2, into the LSB-packed stream.
func (w *testBitWriter) pushCode(code, length uint) {
	for i := int(length) - 1; i >= 0; i-- {
		w.pushBit(uint32((code >> uint(i)) & 1))
	}
}

func (w *testBitWriter) finish() []byte {
	if w.n > 0 {
		w.bytes = append(w.bytes, w.cur)
	}
	return w.bytes
}

// TestHuffmanDecodeRoundTrip builds the canonical code for lengths
// {B:1, A:2, C:3, D:3} (symbol indices 0=A,1=B,2=C,3=D) by hand and checks
// decode recovers a hand-packed sequence.
func TestHuffmanDecodeRoundTrip(t *testing.T) {
	lengths := []int{2, 1, 3, 3} // A, B, C, D
	h, err := buildHuffman(lengths)
	if err != nil {
		t.Fatalf("buildHuffman: %v", err)
	}

	// Canonical assignment: B=0 (1 bit), A=10 (2 bits), C=110 (3 bits),
	// D=111 (3 bits).
	codes := map[int]struct {
		code, length uint
	}{
		1: {0x0, 1}, // B
		0: {0x2, 2}, // A
		2: {0x6, 3}, // C
		3: {0x7, 3}, // D
	}

	symbols := []int{1, 0, 2, 3, 3, 1, 0}
	w := &testBitWriter{}
	for _, s := range symbols {
		c := codes[s]
		w.pushCode(c.code, c.length)
	}

	br := newBitReader(bytes.NewReader(w.finish()))
	for i, want := range symbols {
		got, err := h.decode(br)
		if err != nil {
			t.Fatalf("decode[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("decode[%d] = %d, want %d", i, got, want)
		}
	}
}

// TestHuffmanSingleSymbolDegenerate covers the one legal incomplete code:
// a single symbol of length 1, whose sibling bit pattern must still error
// rather than silently decode to something.
func TestHuffmanSingleSymbolDegenerate(t *testing.T) {
	lengths := []int{0, 1} // only symbol 1 is assigned, code "0"
	h, err := buildHuffman(lengths)
	if err != nil {
		t.Fatalf("buildHuffman: %v", err)
	}

	br := newBitReader(bytes.NewReader([]byte{0x00}))
	got, err := h.decode(br)
	if err != nil {
		t.Fatalf("decode symbol: %v", err)
	}
	if got != 1 {
		t.Fatalf("decode = %d, want 1", got)
	}

	br = newBitReader(bytes.NewReader([]byte{0x01}))
	if _, err := h.decode(br); err != ErrInvalidCode {
		t.Fatalf("decode sibling = %v, want ErrInvalidCode", err)
	}
}

func TestHuffmanIncompleteCodeRejected(t *testing.T) {
	// Two symbols of length 2 cannot satisfy the Kraft inequality
	// (2 * 2^-2 = 0.5 left over) and aren't the single-symbol exception.
	lengths := []int{2, 2, 0, 0}
	if _, err := buildHuffman(lengths); err != ErrIncompleteCode {
		t.Fatalf("err = %v, want ErrIncompleteCode", err)
	}
}

func TestHuffmanOverflowTable(t *testing.T) {
	// A "comb" code - symbols of length 1,2,...,9, plus two symbols of
	// length 10 splitting the final 1/512 of the Kraft budget - is
	// complete and forces the two length-10 codes through the overflow
	// link-table path (chunkBits is 9).
	lengths := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10}
	h, err := buildHuffman(lengths)
	if err != nil {
		t.Fatalf("buildHuffman: %v", err)
	}

	codes := canonicalCodes(lengths)
	w := &testBitWriter{}
	want := []int{9, 10, 8, 0}
	for _, sym := range want {
		c := codes[sym]
		w.pushCode(c.code, c.length)
	}

	br := newBitReader(bytes.NewReader(w.finish()))
	for i, sym := range want {
		got, err := h.decode(br)
		if err != nil {
			t.Fatalf("decode[%d]: %v", i, err)
		}
		if got != sym {
			t.Fatalf("decode[%d] = %d, want %d", i, got, sym)
		}
	}
}
