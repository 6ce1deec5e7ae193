package mapiprop

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RavuAlHemio/tnef2mime/binreader"
)

func TestDecodePropertyBoolean(t *testing.T) {
	// type=Boolean(0x000B), tag=0x0E06 (arbitrary), value=0x01, pad 3
	data := []byte{
		0x0B, 0x00, 0x06, 0x0E,
		0x01, 0x00, 0x00, 0x00,
	}
	br := binreader.New(bytes.NewReader(data))
	dec := NewStringDecoder()
	prop, err := DecodeProperty(br, dec)
	require.NoError(t, err)
	assert.True(t, prop.PropertyType.Equal(PropTypeBoolean))
	assert.Equal(t, ValueBoolean(true), prop.Value)
	assert.Nil(t, prop.ID)
}

func TestDecodePropertyInvalidBoolean(t *testing.T) {
	data := []byte{
		0x0B, 0x00, 0x06, 0x0E,
		0x02, 0x00, 0x00, 0x00,
	}
	br := binreader.New(bytes.NewReader(data))
	_, err := DecodeProperty(br, NewStringDecoder())
	assert.ErrorIs(t, err, ErrInvalidBoolean)
}

func TestDecodePropertyInteger32Padding(t *testing.T) {
	// Integer32 is 4 bytes and needs no additional padding.
	data := []byte{
		0x03, 0x00, 0x17, 0x00,
		0x2A, 0x00, 0x00, 0x00,
	}
	br := binreader.New(bytes.NewReader(data))
	prop, err := DecodeProperty(br, NewStringDecoder())
	require.NoError(t, err)
	assert.Equal(t, ValueInteger32(42), prop.Value)
}

func TestDecodePropertyString(t *testing.T) {
	// "Hi" in UTF-16LE = 48 00 69 00, byte count 4, no padding needed.
	data := []byte{
		0x1F, 0x00, 0x37, 0x00, // type=String, tag=TagSubject
		0x01, 0x00, 0x00, 0x00, // value count = 1
		0x04, 0x00, 0x00, 0x00, // byte count = 4
		0x48, 0x00, 0x69, 0x00, // "Hi"
	}
	br := binreader.New(bytes.NewReader(data))
	prop, err := DecodeProperty(br, NewStringDecoder())
	require.NoError(t, err)
	assert.Equal(t, ValueString("Hi"), prop.Value)
}

func TestDecodePropertyStringOddLength(t *testing.T) {
	data := []byte{
		0x1F, 0x00, 0x37, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x03, 0x00, 0x00, 0x00, // odd byte count
		0x48, 0x00, 0x69,
	}
	br := binreader.New(bytes.NewReader(data))
	_, err := DecodeProperty(br, NewStringDecoder())
	assert.ErrorIs(t, err, ErrOddStringLength)
}

func TestDecodePropertyMultipleValuesSingleType(t *testing.T) {
	data := []byte{
		0x1F, 0x00, 0x37, 0x00,
		0x02, 0x00, 0x00, 0x00, // value count = 2, invalid for String
	}
	br := binreader.New(bytes.NewReader(data))
	_, err := DecodeProperty(br, NewStringDecoder())
	assert.ErrorIs(t, err, ErrMultipleValuesSingleType)
}

func TestDecodePropertyNamedNumeric(t *testing.T) {
	var data bytes.Buffer
	data.Write([]byte{0x03, 0x00, 0x00, 0x80}) // type=Integer32, tag=0x8000 (named)
	data.Write(make([]byte, 16))               // GUID, all zero
	data.Write([]byte{0x00, 0x00, 0x00, 0x00}) // id type = Number
	data.Write([]byte{0x05, 0x00, 0x00, 0x00}) // numeric id = 5
	// pad_to_4(4) = no padding
	data.Write([]byte{0x7B, 0x00, 0x00, 0x00}) // Integer32 value = 123

	br := binreader.New(bytes.NewReader(data.Bytes()))
	prop, err := DecodeProperty(br, NewStringDecoder())
	require.NoError(t, err)
	require.NotNil(t, prop.ID)
	assert.Equal(t, PropIdTypeNumber, prop.ID.Kind)
	assert.Equal(t, uint32(5), prop.ID.Number)
	assert.Equal(t, ValueInteger32(123), prop.Value)
}

func TestDecodePropertyNamedInvalidIdType(t *testing.T) {
	var data bytes.Buffer
	data.Write([]byte{0x03, 0x00, 0x00, 0x80})
	data.Write(make([]byte, 16))
	data.Write([]byte{0x02, 0x00, 0x00, 0x00}) // invalid id type

	br := binreader.New(bytes.NewReader(data.Bytes()))
	_, err := DecodeProperty(br, NewStringDecoder())
	assert.ErrorIs(t, err, ErrInvalidIDType)
}

func TestDecodePropertiesCount(t *testing.T) {
	var data bytes.Buffer
	data.Write([]byte{0x02, 0x00, 0x00, 0x00}) // 2 properties
	data.Write([]byte{0x0B, 0x00, 0x06, 0x0E, 0x01, 0x00, 0x00, 0x00})
	data.Write([]byte{0x0B, 0x00, 0x06, 0x0E, 0x00, 0x00, 0x00, 0x00})

	br := binreader.New(bytes.NewReader(data.Bytes()))
	props, err := DecodeProperties(br, NewStringDecoder())
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, ValueBoolean(true), props[0].Value)
	assert.Equal(t, ValueBoolean(false), props[1].Value)
}

func TestDecodePropertyListsCount(t *testing.T) {
	var data bytes.Buffer
	data.Write([]byte{0x01, 0x00, 0x00, 0x00}) // 1 list
	data.Write([]byte{0x01, 0x00, 0x00, 0x00}) // 1 property
	data.Write([]byte{0x0B, 0x00, 0x06, 0x0E, 0x01, 0x00, 0x00, 0x00})

	br := binreader.New(bytes.NewReader(data.Bytes()))
	lists, err := DecodePropertyLists(br, NewStringDecoder())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Len(t, lists[0], 1)
}

func TestDecodeValueOtherFails(t *testing.T) {
	data := []byte{0x99, 0x99, 0x06, 0x0E}
	br := binreader.New(bytes.NewReader(data))
	_, err := DecodeProperty(br, NewStringDecoder())
	assert.ErrorIs(t, err, ErrInvalidPropertyType)
}

func TestDecodeValueMultipleInteger64PadQuirk(t *testing.T) {
	// MultipleInteger64 pads to 4 bytes after each 8-byte element, not
	// to 8 — preserved exactly as the source decoder does it.
	var data bytes.Buffer
	data.Write([]byte{0x14, 0x10, 0x06, 0x0E}) // type=MultipleInteger64
	data.Write([]byte{0x01, 0x00, 0x00, 0x00}) // value count = 1
	data.Write([]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}) // int64 = 1
	// no extra padding bytes at all: 4 % 4 == 0, so PadTo4(4) reads 0 bytes

	br := binreader.New(bytes.NewReader(data.Bytes()))
	prop, err := DecodeProperty(br, NewStringDecoder())
	require.NoError(t, err)
	assert.Equal(t, ValueMultipleInteger64([]int64{1}), prop.Value)
}

func TestUtf16ToStringUnpairedSurrogate(t *testing.T) {
	_, err := utf16ToString([]uint16{0xD800})
	assert.Error(t, err)
}

func TestUtf16ToStringSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE
	s, err := utf16ToString([]uint16{0xD83D, 0xDE00})
	require.NoError(t, err)
	assert.Equal(t, "😀", s)
}
