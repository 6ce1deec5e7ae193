// Package guid implements the 16-byte Microsoft GUID value used to
// qualify named MAPI properties and to back the PT_CLSID property type.
package guid

import (
	"encoding/binary"
	"fmt"
)

// Size is the on-disk width of a GUID in bytes.
const Size = 16

// GUID is a 16-byte globally unique identifier laid out the way
// Microsoft's wire formats encode it: a little-endian Data1/Data2/Data3
// followed by 8 raw bytes of Data4.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// FromLEBytes decodes a GUID whose Data1/Data2/Data3 fields are
// little-endian, which is how a GUID is laid out inside a TNEF or CFB
// property value.
func FromLEBytes(b []byte) (GUID, error) {
	if len(b) != Size {
		return GUID{}, fmt.Errorf("guid: need %d bytes, got %d", Size, len(b))
	}
	var g GUID
	g.Data1 = binary.LittleEndian.Uint32(b[0:4])
	g.Data2 = binary.LittleEndian.Uint16(b[4:6])
	g.Data3 = binary.LittleEndian.Uint16(b[6:8])
	copy(g.Data4[:], b[8:16])
	return g, nil
}

// FromBEBytes decodes a GUID whose Data1/Data2/Data3 fields are
// big-endian. Some TNEF attribute payloads (and the canonical textual
// GUID form) use this layout instead.
func FromBEBytes(b []byte) (GUID, error) {
	if len(b) != Size {
		return GUID{}, fmt.Errorf("guid: need %d bytes, got %d", Size, len(b))
	}
	var g GUID
	g.Data1 = binary.BigEndian.Uint32(b[0:4])
	g.Data2 = binary.BigEndian.Uint16(b[4:6])
	g.Data3 = binary.BigEndian.Uint16(b[6:8])
	copy(g.Data4[:], b[8:16])
	return g, nil
}

// String renders the canonical 8-4-4-4-12 hyphenated hex form.
func (g GUID) String() string {
	return fmt.Sprintf(
		"%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X",
		g.Data1, g.Data2, g.Data3,
		g.Data4[0], g.Data4[1],
		g.Data4[2], g.Data4[3], g.Data4[4], g.Data4[5], g.Data4[6], g.Data4[7],
	)
}
