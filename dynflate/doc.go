// Package dynflate decodes DEFLATE (RFC 1951) streams that use only
// dynamic-Huffman (BTYPE=2) blocks. It is not a general-purpose DEFLATE
// decoder: stored blocks (BTYPE=0) and fixed-Huffman blocks (BTYPE=1) are
// rejected with ErrUnsupportedBlockType, and there is no encoder.
//
// The package is organized around the pipeline behind its main exported
// type, Decompressor: a bitReader pulls bits LSB-first off the
// underlying byte source, headerDecoder builds the two per-block canonical
// Huffman tables (literal/length and distance) from their RFC 1951 encoding,
// and the literal/length/distance symbol loop drives a 32KiB sliding
// history window that back-references read into.
package dynflate
