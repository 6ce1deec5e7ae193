package msgfile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RavuAlHemio/tnef2mime/mapiprop"
)

// Building an actual mscfb-compatible compound-file byte stream by hand
// is its own large undertaking unrelated to what this package decodes,
// so these tests drive readProperties/decodeValue directly against a
// hand-built path index — exactly the shape Read() would have produced
// from a real compound file after its one-pass mscfb walk.

func propertyRecord(typeU16, tagU16 uint16, flags uint32, value []byte) []byte {
	rec := make([]byte, 8)
	binary.LittleEndian.PutUint16(rec[0:2], typeU16)
	binary.LittleEndian.PutUint16(rec[2:4], tagU16)
	binary.LittleEndian.PutUint32(rec[4:8], flags)
	return append(rec, value...)
}

func TestReadPropertiesRootHeaderCounts(t *testing.T) {
	header := make([]byte, 32)
	binary.LittleEndian.PutUint32(header[16:20], 2)
	binary.LittleEndian.PutUint32(header[20:24], 1)

	index := map[string][]byte{"/__properties_version1.0": header}
	gotHeader, props, err := readProperties(index, "", rootHeaderLength)
	require.NoError(t, err)
	assert.Empty(t, props)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(gotHeader[16:20]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(gotHeader[20:24]))
}

func TestReadPropertiesMissingStream(t *testing.T) {
	_, _, err := readProperties(map[string][]byte{}, "", rootHeaderLength)
	assert.ErrorIs(t, err, ErrPropertiesStreamMissing)
}

func TestReadPropertiesHeaderTooShort(t *testing.T) {
	index := map[string][]byte{"/__properties_version1.0": make([]byte, 4)}
	_, _, err := readProperties(index, "", rootHeaderLength)
	assert.ErrorIs(t, err, ErrHeaderTooShort)
}

func TestReadPropertiesInlineBoolean(t *testing.T) {
	header := make([]byte, 8)
	record := propertyRecord(0x000B, 0x0E06, 0, []byte{0x01, 0, 0, 0, 0, 0, 0, 0})

	index := map[string][]byte{"/__properties_version1.0": append(header, record...)}
	_, props, err := readProperties(index, "", subHeaderLength)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, mapiprop.ValueBoolean(true), props[0].Value)
	assert.True(t, props[0].PropertyType.Equal(mapiprop.PropTypeBoolean))
}

func TestReadPropertiesInlineInteger32(t *testing.T) {
	header := make([]byte, 8)
	valueBuf := make([]byte, 8)
	binary.LittleEndian.PutUint32(valueBuf[0:4], uint32(int32(-7)))
	record := propertyRecord(0x0003, 0x0017, 0, valueBuf)

	index := map[string][]byte{"/__properties_version1.0": append(header, record...)}
	_, props, err := readProperties(index, "", subHeaderLength)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, mapiprop.ValueInteger32(-7), props[0].Value)
}

func TestReadPropertiesInlineUnspecifiedAborts(t *testing.T) {
	header := make([]byte, 8)
	record := propertyRecord(0x0000, 0x0000, 0, make([]byte, 8))

	index := map[string][]byte{"/__properties_version1.0": append(header, record...)}
	_, _, err := readProperties(index, "", subHeaderLength)
	assert.ErrorIs(t, err, ErrInvalidPropertyType)
}

func TestReadPropertiesExternalString(t *testing.T) {
	header := make([]byte, 8)
	// type=String(0x001F), tag=TagSubject(0x0037), then the u32 length
	// and reserved u32 fields the decoder reads and discards.
	record := propertyRecord(0x001F, 0x0037, 0, []byte{0, 0, 0, 0, 0, 0, 0, 0})

	index := map[string][]byte{
		"/__properties_version1.0":  append(header, record...),
		"/__substg1.0_0037001F": {0x48, 0x00, 0x69, 0x00}, // "Hi" UTF-16LE
	}
	_, props, err := readProperties(index, "", subHeaderLength)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, mapiprop.ValueString("Hi"), props[0].Value)
}

func TestReadPropertiesExternalStreamMissingSkipsProperty(t *testing.T) {
	header := make([]byte, 8)
	record := propertyRecord(0x001F, 0x0037, 0, []byte{0, 0, 0, 0, 0, 0, 0, 0})

	index := map[string][]byte{"/__properties_version1.0": append(header, record...)}
	_, props, err := readProperties(index, "", subHeaderLength)
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestReadPropertiesExternalFixedMultipleInteger32(t *testing.T) {
	header := make([]byte, 8)
	record := propertyRecord(0x1003, 0x0E08, 0, []byte{0, 0, 0, 0, 0, 0, 0, 0})

	valueBuf := make([]byte, 8)
	binary.LittleEndian.PutUint32(valueBuf[0:4], 10)
	binary.LittleEndian.PutUint32(valueBuf[4:8], 20)

	index := map[string][]byte{
		"/__properties_version1.0":  append(header, record...),
		"/__substg1.0_0E081003": valueBuf,
	}
	_, props, err := readProperties(index, "", subHeaderLength)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, mapiprop.ValueMultipleInteger32([]int32{10, 20}), props[0].Value)
}

func TestReadPropertiesExternalVariableMultipleString(t *testing.T) {
	header := make([]byte, 8)
	record := propertyRecord(0x101F, 0x0E04, 0, []byte{0, 0, 0, 0, 0, 0, 0, 0})

	// Two 4-byte length entries: the actual lengths are never consulted
	// by this decoder (it reads per-element streams directly), only
	// their count matters.
	lengths := make([]byte, 8)

	index := map[string][]byte{
		"/__properties_version1.0":      append(header, record...),
		"/__substg1.0_0E04101F":         lengths,
		"/__substg1.0_0E04101F-00000000": {0x41, 0x00}, // "A"
		"/__substg1.0_0E04101F-00000001": {0x42, 0x00}, // "B"
	}
	_, props, err := readProperties(index, "", subHeaderLength)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, mapiprop.ValueMultipleString([]string{"A", "B"}), props[0].Value)
}
