package rtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(compressionType uint32) []byte {
	h := make([]byte, 16)
	// compressed_size, raw_size, crc are not validated by Decode; only
	// the compression type at [8:12] matters.
	h[8] = byte(compressionType)
	h[9] = byte(compressionType >> 8)
	h[10] = byte(compressionType >> 16)
	h[11] = byte(compressionType >> 24)
	return h
}

func TestDecodeHeaderTooShort(t *testing.T) {
	_, err := Decode(make([]byte, 15))
	assert.ErrorIs(t, err, ErrHeaderTooShort)
}

func TestDecodeUnsupportedCompression(t *testing.T) {
	_, err := Decode(header(0x12345678))
	assert.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestDecodeMelaPassthrough(t *testing.T) {
	data := append(header(magicMELA), []byte("\\par plain rtf")...)
	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []byte("\\par plain rtf"), out)
}

func TestDecodeSelfReferenceIntoInitDictionary(t *testing.T) {
	// control byte 0b00000001: bit 0 is a dictionary reference.
	// ref = 0x000E -> offset=0, length=14 -> actual_length=16, so the
	// first 16 bytes of the preloaded dictionary are emitted.
	data := append(header(magicLZFu), 0b00000001, 0x00, 0x0E)
	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []byte(initDictionary[0:16]), out)
}

func TestDecodeTerminatesWhenOffsetMatchesWriteCursor(t *testing.T) {
	// write_pos starts at len(initDictionary) = 207 = 0xCF. A reference
	// whose offset equals the current write cursor signals "end of
	// stream" and must stop decompression without emitting anything.
	data := append(header(magicLZFu), 0b00000001, 0x0C, 0xF0)
	out, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeLiteralBytes(t *testing.T) {
	// control byte 0x00: all eight bits are literals.
	data := append(header(magicLZFu), 0x00, 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h')
	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdefgh"), out)
}
