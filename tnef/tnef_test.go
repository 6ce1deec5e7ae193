package tnef

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RavuAlHemio/tnef2mime/mapiprop"
)

func TestReadEmptyTnef(t *testing.T) {
	data := []byte{0x78, 0x9F, 0x3E, 0x22, 0x00, 0x00}
	f, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, uint16(0), f.LegacyKey)
	assert.Empty(t, f.Attributes)
}

func TestReadBadSignature(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrSignature)
}

func TestReadOneAttribute(t *testing.T) {
	data := []byte{
		0x78, 0x9F, 0x3E, 0x22, 0x00, 0x00, // signature + legacy key
		0x01,                   // level = Message
		0x09, 0x00, 0x06, 0x00, // attribute id = 0x00060009 (not a named TnefAttributeId, unused here)
		0x02, 0x00, 0x00, 0x00, // length = 2
		0x0B, 0x00, // payload (2 bytes, arbitrary)
		0x0B, 0x00, // checksum = 0x0B + 0x00 = 0x0B
	}
	f, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, f.Attributes, 1)
	assert.Equal(t, mapiprop.TnefAttributeLevelMessage, f.Attributes[0].Level)
	assert.Equal(t, []byte{0x0B, 0x00}, f.Attributes[0].Data)
}

func TestReadChecksumMismatch(t *testing.T) {
	data := []byte{
		0x78, 0x9F, 0x3E, 0x22, 0x00, 0x00,
		0x01,
		0x09, 0x00, 0x06, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x0B, 0x00,
		0xFF, 0xFF, // wrong checksum
	}
	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestReadNegativeLength(t *testing.T) {
	data := []byte{
		0x78, 0x9F, 0x3E, 0x22, 0x00, 0x00,
		0x01,
		0x09, 0x00, 0x06, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF, // length = -1
	}
	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrLengthConversion)
}

func TestReadMidRecordEOFIsError(t *testing.T) {
	data := []byte{
		0x78, 0x9F, 0x3E, 0x22, 0x00, 0x00,
		0x01,
		0x09, 0x00, 0x06, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x0B, // truncated: only one of two data bytes present
	}
	_, err := Read(bytes.NewReader(data))
	assert.Error(t, err)
}

func TestAttributeCodepage(t *testing.T) {
	attr := Attribute{
		ID:   mapiprop.TnefAttrOemCodepage,
		Data: []byte{0xE4, 0x04}, // 1252 little-endian
	}
	codepage, ok := attr.Codepage()
	require.True(t, ok)
	assert.Equal(t, uint32(1252), codepage)
}

func TestAttributeDecodeProperties(t *testing.T) {
	var payload bytes.Buffer
	payload.Write([]byte{0x01, 0x00, 0x00, 0x00}) // 1 property
	payload.Write([]byte{0x0B, 0x00, 0x06, 0x0E, 0x01, 0x00, 0x00, 0x00})

	attr := Attribute{ID: mapiprop.TnefAttrMapiProps, Data: payload.Bytes()}
	assert.True(t, attr.IsPropertyList())

	props, err := attr.DecodeProperties(mapiprop.NewStringDecoder())
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, mapiprop.ValueBoolean(true), props[0].Value)
}
