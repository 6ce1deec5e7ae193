// Package mapiprop implements the MAPI property type/value decoder
// shared by the TNEF and CFB container readers: the closed PropType,
// PropTag, TnefAttributeId, TnefAttributeLevel, and PropIdType
// enumerations, the PropValue tagged union, and the DecodeProperty
// family of functions that turn a (PropType, stream, encoding) triple
// into a decoded value.
package mapiprop

import "fmt"

// PropType identifies the storage/decoding shape of a property value.
// It is a closed enumeration: every 16-bit code maps to exactly one
// named variant, or to Other for anything this module does not know
// about. Equality compares the underlying code, so Other(x) compares
// equal to the named variant whose code is x.
type PropType struct {
	code  uint16
	other bool
}

// Named PropType values. The zero value of PropType is Unspecified.
var (
	PropTypeUnspecified          = PropType{code: 0x0000}
	PropTypeNull                 = PropType{code: 0x0001}
	PropTypeInteger16            = PropType{code: 0x0002}
	PropTypeInteger32            = PropType{code: 0x0003}
	PropTypeFloating32           = PropType{code: 0x0004}
	PropTypeFloating64           = PropType{code: 0x0005}
	PropTypeCurrency             = PropType{code: 0x0006}
	PropTypeFloatingTime         = PropType{code: 0x0007}
	PropTypeErrorCode            = PropType{code: 0x000A}
	PropTypeBoolean              = PropType{code: 0x000B}
	PropTypeObject               = PropType{code: 0x000D}
	PropTypeInteger64            = PropType{code: 0x0014}
	PropTypeString8              = PropType{code: 0x001E}
	PropTypeString               = PropType{code: 0x001F}
	PropTypeTime                 = PropType{code: 0x0040}
	PropTypeGuid                 = PropType{code: 0x0048}
	PropTypeBinary               = PropType{code: 0x0102}
	PropTypeMultipleInteger16    = PropType{code: 0x1002}
	PropTypeMultipleInteger32    = PropType{code: 0x1003}
	PropTypeMultipleFloating32   = PropType{code: 0x1004}
	PropTypeMultipleFloating64   = PropType{code: 0x1005}
	PropTypeMultipleCurrency     = PropType{code: 0x1006}
	PropTypeMultipleFloatingTime = PropType{code: 0x1007}
	PropTypeMultipleInteger64    = PropType{code: 0x1014}
	PropTypeMultipleString8      = PropType{code: 0x101E}
	PropTypeMultipleString       = PropType{code: 0x101F}
	PropTypeMultipleTime         = PropType{code: 0x1040}
	PropTypeMultipleGuid         = PropType{code: 0x1048}
	PropTypeMultipleBinary       = PropType{code: 0x1102}
)

var propTypeNames = map[uint16]string{
	PropTypeUnspecified.code:          "Unspecified",
	PropTypeNull.code:                 "Null",
	PropTypeInteger16.code:            "Integer16",
	PropTypeInteger32.code:            "Integer32",
	PropTypeFloating32.code:           "Floating32",
	PropTypeFloating64.code:           "Floating64",
	PropTypeCurrency.code:             "Currency",
	PropTypeFloatingTime.code:         "FloatingTime",
	PropTypeErrorCode.code:            "ErrorCode",
	PropTypeBoolean.code:              "Boolean",
	PropTypeObject.code:               "Object",
	PropTypeInteger64.code:            "Integer64",
	PropTypeString8.code:              "String8",
	PropTypeString.code:               "String",
	PropTypeTime.code:                 "Time",
	PropTypeGuid.code:                 "Guid",
	PropTypeBinary.code:               "Binary",
	PropTypeMultipleInteger16.code:    "MultipleInteger16",
	PropTypeMultipleInteger32.code:    "MultipleInteger32",
	PropTypeMultipleFloating32.code:   "MultipleFloating32",
	PropTypeMultipleFloating64.code:   "MultipleFloating64",
	PropTypeMultipleCurrency.code:     "MultipleCurrency",
	PropTypeMultipleFloatingTime.code: "MultipleFloatingTime",
	PropTypeMultipleInteger64.code:    "MultipleInteger64",
	PropTypeMultipleString8.code:      "MultipleString8",
	PropTypeMultipleString.code:       "MultipleString",
	PropTypeMultipleTime.code:         "MultipleTime",
	PropTypeMultipleGuid.code:         "MultipleGuid",
	PropTypeMultipleBinary.code:       "MultipleBinary",
}

// PropTypeFromBaseType maps a 16-bit wire code to its PropType. Unknown
// codes produce the Other(code) escape variant; the mapping is total.
func PropTypeFromBaseType(code uint16) PropType {
	if _, ok := propTypeNames[code]; ok {
		return PropType{code: code}
	}
	return PropType{code: code, other: true}
}

// ToBaseType returns the 16-bit wire code for pt. Injective on named
// variants.
func (pt PropType) ToBaseType() uint16 {
	return pt.code
}

// IsOther reports whether pt is the Other(code) escape variant, i.e.
// code did not match any named PropType when it was decoded.
func (pt PropType) IsOther() bool {
	return pt.other
}

// IsMultiple reports whether pt is one of the Multiple* array variants
// (wire code has the 0x1000 bit set).
func (pt PropType) IsMultiple() bool {
	return pt.code&0x1000 != 0
}

func (pt PropType) String() string {
	if name, ok := propTypeNames[pt.code]; ok {
		return name
	}
	return fmt.Sprintf("Other(0x%04X)", pt.code)
}

// Equal compares two PropType values by their underlying code, so that
// Other(x) == NamedVariant whenever x equals that variant's code.
func (pt PropType) Equal(other PropType) bool {
	return pt.code == other.code
}
