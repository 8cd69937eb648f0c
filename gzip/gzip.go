// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gzip reads the RFC 1952 gzip container around a dynamic-Huffman
// DEFLATE payload, verifying the trailing CRC-32 and ISIZE fields against
// what dynflate actually produced.
package gzip

import (
	"bufio"
	"errors"
	"hash"
	"hash/crc32"
	"io"
	"time"
	"unicode/utf8"

	"github.com/coreos/gzdyn/digest"
	"github.com/coreos/gzdyn/dynflate"
)

const (
	id1         = 0x1f
	id2         = 0x8b
	deflateMeth = 8
	flagText    = 1 << 0
	flagHdrCrc  = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4
)

var (
	// ErrChecksum is returned when a member's trailing CRC-32 or ISIZE
	// doesn't match the bytes dynflate actually decoded.
	ErrChecksum = errors.New("gzip: invalid checksum")
	// ErrHeader is returned for a malformed member header: bad magic,
	// unsupported compression method, a NUL-terminated field with no NUL in
	// its first 512 bytes, or a header CRC mismatch. A header cut short by
	// the end of input reports the underlying read error instead.
	ErrHeader = errors.New("gzip: invalid header")
)

// Header mirrors the metadata fields RFC 1952 §2.3 defines for a member.
type Header struct {
	Name    string
	Comment string
	Extra   []byte
	ModTime time.Time
	OS      byte
}

func asFlateReader(r io.Reader) dynflate.Reader {
	if rr, ok := r.(dynflate.Reader); ok {
		return rr
	}
	return bufio.NewReader(r)
}

// Reader decompresses a gzip stream, which may be a concatenation of
// multiple members (RFC 1952 §2.2) unless Multistream(false) is called.
// Only the first member's Header is retained.
type Reader struct {
	Header
	r           dynflate.Reader
	decomp      *dynflate.Decompressor
	crc         hash.Hash32
	strong      *digest.Digest
	size        uint32
	buf         [512]byte
	err         error
	multistream bool
}

// NewReader reads and verifies the first member's header, then returns a
// Reader positioned to decompress its body.
func NewReader(r io.Reader) (*Reader, error) {
	z := &Reader{
		r:           asFlateReader(r),
		crc:         crc32.NewIEEE(),
		strong:      digest.New(),
		multistream: true,
	}
	if err := z.readHeader(true); err != nil {
		return nil, err
	}
	return z, nil
}

// Multistream controls whether Read continues into subsequent members once
// the current one ends; see RFC 1952 §2.2. Enabled by default.
func (z *Reader) Multistream(ok bool) { z.multistream = ok }

// StrongDigest returns the BLAKE2b-256 digest of all bytes decompressed so
// far. It is an extension beyond RFC 1952's CRC-32, offered for callers
// that want collision resistance the gzip trailer can't provide.
func (z *Reader) StrongDigest() []byte { return z.strong.Sum(nil) }

func get4(p []byte) uint32 {
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
}

func (z *Reader) read2() (uint32, error) {
	if _, err := io.ReadFull(z.r, z.buf[0:2]); err != nil {
		return 0, err
	}
	return uint32(z.buf[0]) | uint32(z.buf[1])<<8, nil
}

// readString reads a NUL-terminated Latin-1 field (the NAME or COMMENT
// header fields), converting to UTF-8 only if it contains a non-ASCII byte.
func (z *Reader) readString() (string, error) {
	var needConv bool
	for i := 0; ; i++ {
		if i >= len(z.buf) {
			return "", ErrHeader
		}
		b, err := z.r.ReadByte()
		if err != nil {
			return "", err
		}
		z.buf[i] = b
		if b > 0x7f {
			needConv = true
		}
		if b == 0 {
			if !needConv {
				return string(z.buf[0:i]), nil
			}
			runes := make([]rune, i)
			for j, v := range z.buf[0:i] {
				runes[j] = rune(v)
			}
			return string(runes), nil
		}
	}
}

func (z *Reader) readHeader(save bool) error {
	if _, err := io.ReadFull(z.r, z.buf[0:10]); err != nil {
		return err
	}
	if z.buf[0] != id1 || z.buf[1] != id2 || z.buf[2] != deflateMeth {
		return ErrHeader
	}
	flg := z.buf[3]
	if save {
		z.ModTime = time.Unix(int64(get4(z.buf[4:8])), 0)
		// z.buf[8] is XFL, not exposed.
		z.OS = z.buf[9]
	}
	headerCRC := crc32.NewIEEE()
	headerCRC.Write(z.buf[0:10])

	if flg&flagExtra != 0 {
		n, err := z.read2()
		if err != nil {
			return err
		}
		headerCRC.Write(z.buf[0:2])
		extra := make([]byte, n)
		if _, err := io.ReadFull(z.r, extra); err != nil {
			return err
		}
		headerCRC.Write(extra)
		if save {
			z.Extra = extra
		}
	}

	if flg&flagName != 0 {
		s, err := z.readString()
		if err != nil {
			return err
		}
		headerCRC.Write(z.buf[0 : utf8.RuneCountInString(s)+1])
		if save {
			z.Name = s
		}
	}

	if flg&flagComment != 0 {
		s, err := z.readString()
		if err != nil {
			return err
		}
		headerCRC.Write(z.buf[0 : utf8.RuneCountInString(s)+1])
		if save {
			z.Comment = s
		}
	}

	if flg&flagHdrCrc != 0 {
		n, err := z.read2()
		if err != nil {
			return err
		}
		if n != headerCRC.Sum32()&0xffff {
			return ErrHeader
		}
	}

	z.crc = crc32.NewIEEE()
	z.decomp = dynflate.NewReader(z.r)
	return nil
}

func (z *Reader) Read(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := z.decomp.Read(p)
	z.crc.Write(p[0:n])
	z.strong.Write(p[0:n])
	z.size += uint32(n)
	if n != 0 || err != io.EOF {
		z.err = err
		return n, err
	}

	if _, err := io.ReadFull(z.r, z.buf[0:8]); err != nil {
		z.err = err
		return 0, err
	}
	wantCRC, wantSize := get4(z.buf[0:4]), get4(z.buf[4:8])
	if wantCRC != z.crc.Sum32() || wantSize != z.size {
		z.err = ErrChecksum
		return 0, z.err
	}

	if !z.multistream {
		z.err = io.EOF
		return 0, io.EOF
	}

	if err := z.readHeader(false); err != nil {
		z.err = err
		return 0, err
	}
	z.size = 0
	return z.Read(p)
}
