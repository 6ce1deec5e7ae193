// Package tnef2mime is the front-end dispatcher (spec component H):
// it peeks the magic number at the start of an input stream, routes it
// to the TNEF or CFB reader, and hands back whichever result type that
// reader produces.
package tnef2mime

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/RavuAlHemio/tnef2mime/msgfile"
	"github.com/RavuAlHemio/tnef2mime/tnef"
)

// cfbSignature4Bytes is the low 32 bits of the CFB magic number
// 0xE11AB1A1E011CFD0, the only part of it this package needs in order
// to distinguish a ".msg" compound file from a TNEF stream — the first
// four bytes any real compound file starts with (0xD0, 0xCF, 0x11,
// 0xE0 on the wire).
const cfbSignature4Bytes uint32 = 0xE011CFD0

// ErrUnknownFormat is returned when the input starts with neither the
// TNEF nor the CFB magic number.
var ErrUnknownFormat = errors.New("tnef2mime: unknown file format")

// Result holds whichever container a Detect call recognized: exactly
// one of Tnef or Msg is non-nil.
type Result struct {
	Tnef *tnef.File
	Msg  *msgfile.Msg
}

// Detect peeks the first four bytes of r, routes to the TNEF or CFB
// reader accordingly, and returns the decoded result. r must support
// re-reading from the start after the peek; an *io.SectionReader or a
// freshly opened *os.File both qualify, as does anything wrapped so
// that Seek(0, io.SeekStart) rewinds it.
func Detect(r io.ReadSeeker) (Result, error) {
	var magicBuf [4]byte
	if _, err := io.ReadFull(r, magicBuf[:]); err != nil {
		return Result{}, fmt.Errorf("tnef2mime: read magic: %w", err)
	}
	magic := binary.LittleEndian.Uint32(magicBuf[:])

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("tnef2mime: rewind after magic peek: %w", err)
	}

	switch magic {
	case tnef.Signature:
		f, err := tnef.Read(r)
		if err != nil {
			return Result{}, err
		}
		return Result{Tnef: f}, nil
	case cfbSignature4Bytes:
		m, err := msgfile.Read(r)
		if err != nil {
			return Result{}, err
		}
		return Result{Msg: m}, nil
	default:
		return Result{}, fmt.Errorf("%w: 0x%08X", ErrUnknownFormat, magic)
	}
}

// DetectBytes is a convenience wrapper around Detect for callers that
// already hold the whole input in memory.
func DetectBytes(data []byte) (Result, error) {
	return Detect(bytes.NewReader(data))
}
