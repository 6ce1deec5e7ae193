// Package binreader provides typed little- and big-endian primitive
// reads over a byte stream, with EOF-tolerant variants for the places
// callers need to distinguish "nothing left" from "truncated record",
// and the 4-byte alignment padding every variable-length and
// sub-word field in a MAPI property stream is followed by.
package binreader

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader reads typed binary primitives from an underlying io.Reader.
// It carries no buffering of its own; wrap a bufio.Reader if the
// underlying source benefits from one.
type Reader struct {
	r io.Reader
}

// New wraps r for typed reads.
func New(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (br *Reader) fill(buf []byte) error {
	_, err := io.ReadFull(br.r, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// ReadU8 reads a single unsigned byte.
func (br *Reader) ReadU8() (uint8, error) {
	var buf [1]byte
	if err := br.fill(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU8OrEOF reads a single unsigned byte, returning ok=false if the
// stream is exhausted before any byte could be read. A partial read
// (impossible for a single byte, but kept for symmetry with the wider
// *OrEOF variants) is still an error.
func (br *Reader) ReadU8OrEOF() (val uint8, ok bool, err error) {
	var buf [1]byte
	n, err := br.r.Read(buf[:])
	if n == 0 {
		if err == io.EOF || err == nil {
			return 0, false, nil
		}
		return 0, false, err
	}
	return buf[0], true, nil
}

// ReadU16LE reads a little-endian uint16.
func (br *Reader) ReadU16LE() (uint16, error) {
	var buf [2]byte
	if err := br.fill(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadU16BE reads a big-endian uint16.
func (br *Reader) ReadU16BE() (uint16, error) {
	var buf [2]byte
	if err := br.fill(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU16LEOrEOF reads a little-endian uint16, or reports a clean EOF
// if the stream ends before the first byte of it.
func (br *Reader) ReadU16LEOrEOF() (val uint16, ok bool, err error) {
	buf, ok, err := br.readOrEOF(2)
	if !ok || err != nil {
		return 0, ok, err
	}
	return binary.LittleEndian.Uint16(buf), true, nil
}

func (br *Reader) readOrEOF(n int) (buf []byte, ok bool, err error) {
	buf = make([]byte, n)
	read, err := br.r.Read(buf[0:1])
	if read == 0 {
		if err == io.EOF || err == nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	if n > 1 {
		if err := br.fill(buf[1:n]); err != nil {
			return nil, false, err
		}
	}
	return buf, true, nil
}

// ReadU32LE reads a little-endian uint32.
func (br *Reader) ReadU32LE() (uint32, error) {
	var buf [4]byte
	if err := br.fill(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadU32BE reads a big-endian uint32.
func (br *Reader) ReadU32BE() (uint32, error) {
	var buf [4]byte
	if err := br.fill(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadU32LEOrEOF reads a little-endian uint32, or reports a clean EOF
// if the stream ends before the first byte of it.
func (br *Reader) ReadU32LEOrEOF() (val uint32, ok bool, err error) {
	buf, ok, err := br.readOrEOF(4)
	if !ok || err != nil {
		return 0, ok, err
	}
	return binary.LittleEndian.Uint32(buf), true, nil
}

// ReadU64LE reads a little-endian uint64.
func (br *Reader) ReadU64LE() (uint64, error) {
	var buf [8]byte
	if err := br.fill(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadU64BE reads a big-endian uint64.
func (br *Reader) ReadU64BE() (uint64, error) {
	var buf [8]byte
	if err := br.fill(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// ReadI8 reads a signed byte.
func (br *Reader) ReadI8() (int8, error) {
	v, err := br.ReadU8()
	return int8(v), err
}

// ReadI16LE reads a little-endian signed 16-bit integer.
func (br *Reader) ReadI16LE() (int16, error) {
	v, err := br.ReadU16LE()
	return int16(v), err
}

// ReadI16BE reads a big-endian signed 16-bit integer.
func (br *Reader) ReadI16BE() (int16, error) {
	v, err := br.ReadU16BE()
	return int16(v), err
}

// ReadI32LE reads a little-endian signed 32-bit integer.
func (br *Reader) ReadI32LE() (int32, error) {
	v, err := br.ReadU32LE()
	return int32(v), err
}

// ReadI32BE reads a big-endian signed 32-bit integer.
func (br *Reader) ReadI32BE() (int32, error) {
	v, err := br.ReadU32BE()
	return int32(v), err
}

// ReadI64LE reads a little-endian signed 64-bit integer.
func (br *Reader) ReadI64LE() (int64, error) {
	v, err := br.ReadU64LE()
	return int64(v), err
}

// ReadI64BE reads a big-endian signed 64-bit integer.
func (br *Reader) ReadI64BE() (int64, error) {
	v, err := br.ReadU64BE()
	return int64(v), err
}

// ReadF32LE reads a little-endian IEEE-754 single-precision float.
func (br *Reader) ReadF32LE() (float32, error) {
	v, err := br.ReadU32LE()
	return math.Float32frombits(v), err
}

// ReadF64LE reads a little-endian IEEE-754 double-precision float.
func (br *Reader) ReadF64LE() (float64, error) {
	v, err := br.ReadU64LE()
	return math.Float64frombits(v), err
}

// ReadBytes reads exactly n raw bytes.
func (br *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := br.fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// PadTo4 reads and discards (4 - bytesRead%4) % 4 bytes, aligning the
// stream to the next 4-byte boundary relative to the start of the
// value that consumed bytesRead bytes.
func (br *Reader) PadTo4(bytesRead int) error {
	rem := bytesRead % 4
	if rem == 0 {
		return nil
	}
	padCount := 4 - rem
	buf := make([]byte, padCount)
	if err := br.fill(buf); err != nil {
		return fmt.Errorf("binreader: pad-to-4 after %d bytes: %w", bytesRead, err)
	}
	return nil
}
