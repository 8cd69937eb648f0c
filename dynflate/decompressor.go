package dynflate

import "io"

// Decompressor reads one DEFLATE member (a BFINAL/BTYPE-delimited sequence
// of dynamic-Huffman blocks) from an underlying bit stream and serves the
// decompressed bytes through Read, the same shape coreos-pkg/zran/flate.Decompressor
// exposes.
type Decompressor struct {
	br        *bitReader
	hist      history
	finalSeen bool
	err       error
}

// NewReader returns a Decompressor reading dynamic-Huffman-only DEFLATE
// data from r. Unlike compress/flate, it does not accept BTYPE 0 (stored)
// or BTYPE 1 (fixed Huffman) blocks: Read reports ErrUnsupportedBlockType
// the first time one is encountered.
func NewReader(r io.Reader) *Decompressor {
	return &Decompressor{br: newBitReader(r)}
}

func (d *Decompressor) Read(p []byte) (int, error) {
	for len(d.hist.toRead) == 0 {
		if d.err != nil {
			return 0, d.err
		}
		if d.finalSeen {
			d.err = io.EOF
			return 0, d.err
		}
		if err := d.nextBlock(); err != nil {
			if err != io.EOF {
				if _, ok := err.(*CorruptInputError); !ok {
					err = &CorruptInputError{Offset: d.br.offset, Err: err}
				}
			}
			d.err = err
			return 0, d.err
		}
	}
	n := copy(p, d.hist.toRead)
	d.hist.toRead = d.hist.toRead[n:]
	return n, nil
}

// nextBlock decodes one block's header and body, appending whatever bytes
// it produces to d.hist.toRead.
func (d *Decompressor) nextBlock() error {
	bfinal, err := d.br.read(1)
	if err != nil {
		return err
	}
	btype, err := d.br.read(2)
	if err != nil {
		return err
	}
	if btype != 2 {
		return ErrUnsupportedBlockType
	}

	litLens, distLens, err := readDynamicHeader(d.br)
	if err != nil {
		return err
	}
	litTable, err := buildHuffman(litLens)
	if err != nil {
		return err
	}
	distTable, err := buildHuffman(distLens)
	if err != nil {
		return err
	}
	err = expandBlock(d.br, litTable, distTable, &d.hist)
	d.hist.flushTail()
	if err != nil {
		return err
	}

	if bfinal == 1 {
		d.finalSeen = true
	}
	return nil
}
