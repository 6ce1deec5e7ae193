package binreader

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadU16LE(t *testing.T) {
	r := New(bytes.NewReader([]byte{0x34, 0x12}))
	v, err := r.ReadU16LE()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)
}

func TestReadU16BE(t *testing.T) {
	r := New(bytes.NewReader([]byte{0x12, 0x34}))
	v, err := r.ReadU16BE()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)
}

func TestReadI16LENegative(t *testing.T) {
	r := New(bytes.NewReader([]byte{0xFF, 0xFF}))
	v, err := r.ReadI16LE()
	require.NoError(t, err)
	assert.Equal(t, int16(-1), v)
}

func TestReadU32LEOrEOFCleanEOF(t *testing.T) {
	r := New(bytes.NewReader(nil))
	_, ok, err := r.ReadU32LEOrEOF()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadU32LEOrEOFMidRecordIsError(t *testing.T) {
	r := New(bytes.NewReader([]byte{0x01, 0x02}))
	_, _, err := r.ReadU32LEOrEOF()
	require.Error(t, err)
}

func TestReadU32LEOrEOFValue(t *testing.T) {
	r := New(bytes.NewReader([]byte{0x01, 0x00, 0x00, 0x00}))
	v, ok, err := r.ReadU32LEOrEOF()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(1), v)
}

func TestPadTo4NoPaddingNeeded(t *testing.T) {
	r := New(bytes.NewReader(nil))
	require.NoError(t, r.PadTo4(0))
	require.NoError(t, r.PadTo4(4))
	require.NoError(t, r.PadTo4(8))
}

func TestPadTo4ConsumesRemainder(t *testing.T) {
	r := New(bytes.NewReader([]byte{0xAA, 0xBB, 0xCC}))
	require.NoError(t, r.PadTo4(1))
	// all 3 padding bytes should have been consumed
	_, err := r.ReadU8()
	assert.ErrorIs(t, err, io.EOF)
}

func TestPadTo4TruncatedIsError(t *testing.T) {
	r := New(bytes.NewReader([]byte{0xAA}))
	err := r.PadTo4(1)
	require.Error(t, err)
}

func TestReadF64LE(t *testing.T) {
	buf := new(bytes.Buffer)
	// 1.5 as float64 little-endian
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF8, 0x3F})
	r := New(buf)
	v, err := r.ReadF64LE()
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}
