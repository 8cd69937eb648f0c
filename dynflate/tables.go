package dynflate

// codeLengthOrder is the fixed permutation RFC 1951 §3.2.7 uses to store
// the 19 code-length-alphabet code lengths compactly: the first HCLEN+4
// lengths read from the stream land at these indices, in this order.
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// Alphabet sizes for the literal/length and distance codes.
const (
	numCLSymbols   = 19
	numLitLenBase  = 257 // symbols 0..255 literal, 256 end-of-block
	maxLitLen      = 286 // largest valid HLIT+257; the 5-bit HLIT field can encode up to 288, which readDynamicHeader does not reject
	maxDistSymbols = 30
)

// lenExtraBits/lenExtraBase give the extra-bits table for LITLEN symbols
// 265..284 (symbols 257..264 and 285 need no extra bits and are handled
// directly).
var (
	lenExtraBits = [21]uint{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0}
	lenExtraBase = [21]int{11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258}
)

// distExtraBits/distExtraBase give the extra-bits table for DIST symbols
// 4..29 (symbols 0..3 need no extra bits).
var (
	distExtraBits = [26]uint{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13}
	distExtraBase = [26]int{5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577}
)
