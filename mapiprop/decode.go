package mapiprop

import (
	"fmt"
	"math"

	"github.com/RavuAlHemio/tnef2mime/binreader"
	"github.com/RavuAlHemio/tnef2mime/guid"
)

// DecodeProperty decodes one property from br: the property's type and
// tag, a named-property GUID/id preamble if the tag is >= 0x8000, and
// the value itself, applying the shared decoder's padding/encoding/
// string rules. dec supplies the active single-byte
// encoding for String8 values; a TNEF AttOemCodepage attribute mutates
// it between calls, so the same *StringDecoder should be threaded
// across an entire TnefFile's attributes.
func DecodeProperty(br *binreader.Reader, dec *StringDecoder) (Property, error) {
	typeU16, err := br.ReadU16LE()
	if err != nil {
		return Property{}, fmt.Errorf("mapiprop: read property type: %w", err)
	}
	propType := PropTypeFromBaseType(typeU16)

	tagU16, err := br.ReadU16LE()
	if err != nil {
		return Property{}, fmt.Errorf("mapiprop: read property tag: %w", err)
	}
	tag := PropTagFromBaseType(tagU16)

	var id *PropID
	if tagU16 >= 0x8000 {
		decodedID, err := decodeNamedPropID(br)
		if err != nil {
			return Property{}, err
		}
		id = decodedID
	}

	value, err := decodeValue(br, typeU16, dec)
	if err != nil {
		return Property{}, err
	}

	return Property{
		Tag:          tag,
		PropertyType: propType,
		ID:           id,
		Value:        value,
	}, nil
}

// DecodeProperties reads a u32 property count followed by that many
// properties.
func DecodeProperties(br *binreader.Reader, dec *StringDecoder) ([]Property, error) {
	count, err := br.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("mapiprop: read property count: %w", err)
	}
	props := make([]Property, 0, count)
	for i := uint32(0); i < count; i++ {
		p, err := DecodeProperty(br, dec)
		if err != nil {
			return nil, fmt.Errorf("mapiprop: property %d/%d: %w", i, count, err)
		}
		props = append(props, p)
	}
	return props, nil
}

// DecodePropertyLists reads a u32 list count followed by that many
// property lists.
func DecodePropertyLists(br *binreader.Reader, dec *StringDecoder) ([][]Property, error) {
	count, err := br.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("mapiprop: read property list count: %w", err)
	}
	lists := make([][]Property, 0, count)
	for i := uint32(0); i < count; i++ {
		props, err := DecodeProperties(br, dec)
		if err != nil {
			return nil, fmt.Errorf("mapiprop: property list %d/%d: %w", i, count, err)
		}
		lists = append(lists, props)
	}
	return lists, nil
}

func decodeNamedPropID(br *binreader.Reader) (*PropID, error) {
	guidBuf, err := br.ReadBytes(guid.Size)
	if err != nil {
		return nil, fmt.Errorf("mapiprop: read named-property guid: %w", err)
	}
	g, err := guid.FromLEBytes(guidBuf)
	if err != nil {
		return nil, fmt.Errorf("mapiprop: %w", err)
	}

	idTypeU32, err := br.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("mapiprop: read named-property id type: %w", err)
	}

	switch PropIdType(idTypeU32) {
	case PropIdTypeNumber:
		number, err := br.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("mapiprop: read named-property numeric id: %w", err)
		}
		if err := br.PadTo4(4); err != nil {
			return nil, err
		}
		return &PropID{Guid: g, Kind: PropIdTypeNumber, Number: number}, nil
	case PropIdTypeString:
		byteCount, err := br.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("mapiprop: read named-property string id length: %w", err)
		}
		// Matches the original decoder: the unit count is byteCount/2,
		// truncating towards zero if byteCount is odd, and the
		// pad-to-4 call below still pads against the declared
		// byteCount rather than the bytes actually consumed.
		charCount := int(byteCount) / 2
		units := make([]uint16, charCount)
		for i := range units {
			u, err := br.ReadU16LE()
			if err != nil {
				return nil, fmt.Errorf("mapiprop: read named-property string id: %w", err)
			}
			units[i] = u
		}
		s, err := utf16ToString(units)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStringID, err)
		}
		if err := br.PadTo4(int(byteCount)); err != nil {
			return nil, err
		}
		return &PropID{Guid: g, Kind: PropIdTypeString, String: s}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidIDType, idTypeU32)
	}
}

func decodeValue(br *binreader.Reader, typeU16 uint16, dec *StringDecoder) (PropValue, error) {
	switch typeU16 {
	case PropTypeUnspecified.ToBaseType():
		return ValueUnspecified{}, nil
	case PropTypeNull.ToBaseType():
		return ValueNull{}, nil
	case PropTypeInteger16.ToBaseType():
		v, err := br.ReadI16LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(2); err != nil {
			return nil, err
		}
		return ValueInteger16(v), nil
	case PropTypeInteger32.ToBaseType():
		v, err := br.ReadI32LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(4); err != nil {
			return nil, err
		}
		return ValueInteger32(v), nil
	case PropTypeFloating32.ToBaseType():
		v, err := br.ReadF32LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(4); err != nil {
			return nil, err
		}
		return ValueFloating32(v), nil
	case PropTypeFloating64.ToBaseType():
		v, err := br.ReadF64LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(8); err != nil {
			return nil, err
		}
		return ValueFloating64(v), nil
	case PropTypeCurrency.ToBaseType():
		v, err := br.ReadI64LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(8); err != nil {
			return nil, err
		}
		return ValueCurrency(v), nil
	case PropTypeFloatingTime.ToBaseType():
		v, err := br.ReadF64LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(8); err != nil {
			return nil, err
		}
		return ValueFloatingTime(v), nil
	case PropTypeErrorCode.ToBaseType():
		// ErrorCode is read as 32 bits, matching the original
		// decoder's width; one historical source path reads it as
		// 64 bits instead.
		v, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(4); err != nil {
			return nil, err
		}
		return ValueErrorCode(v), nil
	case PropTypeBoolean.ToBaseType():
		b, err := br.ReadU8()
		if err != nil {
			return nil, err
		}
		var v bool
		switch b {
		case 0x00:
			v = false
		case 0x01:
			v = true
		default:
			return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidBoolean, b)
		}
		if err := br.PadTo4(1); err != nil {
			return nil, err
		}
		return ValueBoolean(v), nil
	case PropTypeObject.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		if count != 1 {
			return nil, &MultipleValuesError{PropType: PropTypeObject, Count: count}
		}
		byteCount, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		data, err := br.ReadBytes(int(byteCount))
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(int(byteCount)); err != nil {
			return nil, err
		}
		return ValueObject(data), nil
	case PropTypeInteger64.ToBaseType():
		v, err := br.ReadI64LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(8); err != nil {
			return nil, err
		}
		return ValueInteger64(v), nil
	case PropTypeTime.ToBaseType():
		v, err := br.ReadI64LE()
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(8); err != nil {
			return nil, err
		}
		return ValueTime(v), nil
	case PropTypeGuid.ToBaseType():
		buf, err := br.ReadBytes(guid.Size)
		if err != nil {
			return nil, err
		}
		g, err := guid.FromLEBytes(buf)
		if err != nil {
			return nil, err
		}
		return ValueGuid(g), nil
	case PropTypeMultipleInteger16.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]int16, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := br.ReadI16LE()
			if err != nil {
				return nil, err
			}
			if err := br.PadTo4(2); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ValueMultipleInteger16(vals), nil
	case PropTypeMultipleInteger32.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]int32, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := br.ReadI32LE()
			if err != nil {
				return nil, err
			}
			if err := br.PadTo4(4); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ValueMultipleInteger32(vals), nil
	case PropTypeMultipleFloating32.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]float32, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := br.ReadF32LE()
			if err != nil {
				return nil, err
			}
			if err := br.PadTo4(4); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ValueMultipleFloating32(vals), nil
	case PropTypeMultipleFloating64.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]float64, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := br.ReadF64LE()
			if err != nil {
				return nil, err
			}
			if err := br.PadTo4(8); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ValueMultipleFloating64(vals), nil
	case PropTypeMultipleCurrency.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]int64, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := br.ReadI64LE()
			if err != nil {
				return nil, err
			}
			if err := br.PadTo4(8); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ValueMultipleCurrency(vals), nil
	case PropTypeMultipleFloatingTime.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]float64, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := br.ReadF64LE()
			if err != nil {
				return nil, err
			}
			if err := br.PadTo4(8); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ValueMultipleFloatingTime(vals), nil
	case PropTypeMultipleInteger64.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]int64, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := br.ReadI64LE()
			if err != nil {
				return nil, err
			}
			// Pads to 4 bytes, not 8, after each element: matches
			// the original decoder's MultipleInteger64 arm exactly,
			// even though the element itself is 8 bytes wide.
			if err := br.PadTo4(4); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ValueMultipleInteger64(vals), nil
	case PropTypeMultipleTime.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]int64, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := br.ReadI64LE()
			if err != nil {
				return nil, err
			}
			// Same pad_to_4(4) quirk as MultipleInteger64 above.
			if err := br.PadTo4(4); err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ValueMultipleTime(vals), nil
	case PropTypeMultipleGuid.ToBaseType():
		count, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		vals := make([]guid.GUID, 0, count)
		for i := uint32(0); i < count; i++ {
			buf, err := br.ReadBytes(guid.Size)
			if err != nil {
				return nil, err
			}
			g, err := guid.FromLEBytes(buf)
			if err != nil {
				return nil, err
			}
			vals = append(vals, g)
		}
		return ValueMultipleGuid(vals), nil
	case PropTypeString8.ToBaseType(), PropTypeMultipleString8.ToBaseType():
		return decodeStrings8(br, typeU16, dec)
	case PropTypeString.ToBaseType(), PropTypeMultipleString.ToBaseType():
		return decodeStringsUnicode(br, typeU16)
	case PropTypeBinary.ToBaseType(), PropTypeMultipleBinary.ToBaseType():
		return decodeBinaries(br, typeU16)
	default:
		// Other(code): a handful of legacy TNEF streams reuse this
		// escape to mean "a string in codepage code&0x7FFF", but the
		// original decoder never implements that path either (it
		// aborts); this decoder fails loudly instead of guessing.
		return nil, fmt.Errorf("%w: 0x%04X", ErrInvalidPropertyType, typeU16)
	}
}

func decodeStrings8(br *binreader.Reader, typeU16 uint16, dec *StringDecoder) (PropValue, error) {
	count, err := br.ReadU32LE()
	if err != nil {
		return nil, err
	}
	single := typeU16 == PropTypeString8.ToBaseType()
	if single && count != 1 {
		return nil, &MultipleValuesError{PropType: PropTypeString8, Count: count}
	}

	values := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		byteCount, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		raw, err := br.ReadBytes(int(byteCount))
		if err != nil {
			return nil, err
		}
		s, err := dec.DecodeString8(raw)
		if err != nil {
			return nil, fmt.Errorf("mapiprop: decode string8: %w", err)
		}
		if err := br.PadTo4(int(byteCount)); err != nil {
			return nil, err
		}
		values = append(values, s)
	}

	if single {
		return ValueString8(values[0]), nil
	}
	return ValueMultipleString8(values), nil
}

func decodeStringsUnicode(br *binreader.Reader, typeU16 uint16) (PropValue, error) {
	count, err := br.ReadU32LE()
	if err != nil {
		return nil, err
	}
	single := typeU16 == PropTypeString.ToBaseType()
	if single && count != 1 {
		return nil, &MultipleValuesError{PropType: PropTypeString, Count: count}
	}

	values := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		byteCount, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		if byteCount%2 != 0 {
			return nil, fmt.Errorf("%w: %d", ErrOddStringLength, byteCount)
		}
		charCount := int(byteCount) / 2
		units := make([]uint16, charCount)
		for i := range units {
			u, err := br.ReadU16LE()
			if err != nil {
				return nil, err
			}
			units[i] = u
		}
		s, err := utf16ToString(units)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidString, err)
		}
		if err := br.PadTo4(charCount * 2); err != nil {
			return nil, err
		}
		values = append(values, s)
	}

	if single {
		return ValueString(values[0]), nil
	}
	return ValueMultipleString(values), nil
}

func decodeBinaries(br *binreader.Reader, typeU16 uint16) (PropValue, error) {
	count, err := br.ReadU32LE()
	if err != nil {
		return nil, err
	}
	single := typeU16 == PropTypeBinary.ToBaseType()
	if single && count != 1 {
		return nil, &MultipleValuesError{PropType: PropTypeBinary, Count: count}
	}

	values := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		byteCount, err := br.ReadU32LE()
		if err != nil {
			return nil, err
		}
		data, err := br.ReadBytes(int(byteCount))
		if err != nil {
			return nil, err
		}
		if err := br.PadTo4(int(byteCount)); err != nil {
			return nil, err
		}
		values = append(values, data)
	}

	if single {
		return ValueBinary(values[0]), nil
	}
	return ValueMultipleBinary(values), nil
}

// DecodeUTF16 decodes a little-endian UTF-16 byte buffer strictly,
// erroring on an odd byte count or an unpaired surrogate. It is exposed
// for other container readers (msgfile) that need the same string
// decoding rules this package uses internally.
func DecodeUTF16(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("%w: %d", ErrOddStringLength, len(data))
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[i*2]) | uint16(data[i*2+1])<<8
	}
	return utf16ToString(units)
}

// Float32FromBits and Float64FromBits expose math.Float*frombits under
// this package so callers decoding MAPI floating-point values don't
// need their own import of "math" just for this one conversion.
func Float32FromBits(bits uint32) float32 { return math.Float32frombits(bits) }
func Float64FromBits(bits uint64) float64 { return math.Float64frombits(bits) }

// utf16ToString decodes units strictly: an unpaired surrogate is an
// ill-formed UTF-16 sequence and reported as an error, rather than
// silently replaced with a placeholder character.
func utf16ToString(units []uint16) (string, error) {
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < 0xD800 || u > 0xDFFF:
			runes = append(runes, rune(u))
		case u <= 0xDBFF:
			if i+1 >= len(units) {
				return "", fmt.Errorf("unpaired high surrogate 0x%04X", u)
			}
			lo := units[i+1]
			if lo < 0xDC00 || lo > 0xDFFF {
				return "", fmt.Errorf("unpaired high surrogate 0x%04X", u)
			}
			r := ((rune(u) - 0xD800) << 10) | (rune(lo) - 0xDC00)
			runes = append(runes, r+0x10000)
			i++
		default:
			return "", fmt.Errorf("unpaired low surrogate 0x%04X", u)
		}
	}
	return string(runes), nil
}
