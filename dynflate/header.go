package dynflate

// maxCLRepeat is the largest repeat count any code-length run operator
// (16, 17, or 18) can produce.
const maxCLRepeat = 138

// readDynamicHeader reads the HLIT/HDIST/HCLEN counts, the HCLEN
// code-length-alphabet lengths (in codeLengthOrder), uses
// those to build a throwaway Huffman table, and decodes that table's
// output into the LITLEN and DIST code-length vectors for the block that
// follows. litLens has exactly HLIT+257 entries, distLens exactly HDIST+1.
func readDynamicHeader(br *bitReader) (litLens, distLens []int, err error) {
	hlit, err := br.read(5)
	if err != nil {
		return nil, nil, err
	}
	hdist, err := br.read(5)
	if err != nil {
		return nil, nil, err
	}
	hclen, err := br.read(4)
	if err != nil {
		return nil, nil, err
	}
	nlit := int(hlit) + 257
	ndist := int(hdist) + 1
	nclen := int(hclen) + 4

	var clLens [numCLSymbols]int
	for i := 0; i < nclen; i++ {
		v, err := br.read(3)
		if err != nil {
			return nil, nil, err
		}
		clLens[codeLengthOrder[i]] = int(v)
	}

	clTable, err := buildHuffman(clLens[:])
	if err != nil {
		return nil, nil, err
	}

	total := nlit + ndist
	lens := make([]int, 0, total)
	prevValid := false
	prev := 0
	for len(lens) < total {
		sym, err := clTable.decode(br)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case sym <= 15:
			lens = append(lens, sym)
			prev, prevValid = sym, true
		case sym == 16:
			if !prevValid {
				return nil, nil, ErrInvalidRun
			}
			n, err := br.read(2)
			if err != nil {
				return nil, nil, err
			}
			repeat := int(n) + 3
			if len(lens)+repeat > total {
				return nil, nil, ErrOverrunRun
			}
			for i := 0; i < repeat; i++ {
				lens = append(lens, prev)
			}
		case sym == 17:
			n, err := br.read(3)
			if err != nil {
				return nil, nil, err
			}
			repeat := int(n) + 3
			if len(lens)+repeat > total {
				return nil, nil, ErrOverrunRun
			}
			for i := 0; i < repeat; i++ {
				lens = append(lens, 0)
			}
			prev, prevValid = 0, true
		case sym == 18:
			n, err := br.read(7)
			if err != nil {
				return nil, nil, err
			}
			repeat := int(n) + 11
			if len(lens)+repeat > total {
				return nil, nil, ErrOverrunRun
			}
			for i := 0; i < repeat; i++ {
				lens = append(lens, 0)
			}
			prev, prevValid = 0, true
		default:
			return nil, nil, ErrInvalidCode
		}
	}

	return lens[:nlit], lens[nlit:], nil
}
