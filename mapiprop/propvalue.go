package mapiprop

import "github.com/RavuAlHemio/tnef2mime/guid"

// PropValue is the tagged union of decoded property values. Each
// concrete type below implements PropValue and reports the PropType it
// was decoded from; Property's invariant is that Value.Type() equals
// the Property's PropertyType field.
type PropValue interface {
	Type() PropType
	isPropValue()
}

// ValueUnspecified is the decoded value of a PT_UNSPECIFIED property.
type ValueUnspecified struct{}

// ValueNull is the decoded value of a PT_NULL property.
type ValueNull struct{}

// ValueInteger16 is a PT_I2 value.
type ValueInteger16 int16

// ValueInteger32 is a PT_LONG value.
type ValueInteger32 int32

// ValueFloating32 is a PT_R4 value.
type ValueFloating32 float32

// ValueFloating64 is a PT_DOUBLE value.
type ValueFloating64 float64

// ValueCurrency is a PT_CURRENCY value, a fixed-point quantity stored
// as a raw 64-bit integer (unscaled, per MS-OXCDATA).
type ValueCurrency int64

// ValueFloatingTime is a PT_APPTIME value: days since 1899-12-30.
type ValueFloatingTime float64

// ValueErrorCode is a PT_ERROR value.
type ValueErrorCode uint32

// ValueBoolean is a PT_BOOLEAN value.
type ValueBoolean bool

// ValueObject is a PT_OBJECT value's raw bytes.
type ValueObject []byte

// ValueInteger64 is a PT_I8 value.
type ValueInteger64 int64

// ValueString8 is a PT_STRING8 value, decoded with the active
// single-byte encoding.
type ValueString8 string

// ValueString is a PT_UNICODE value, decoded from UTF-16LE.
type ValueString string

// ValueTime is a PT_SYSTIME value: 100ns intervals since 1601-01-01.
type ValueTime int64

// ValueGuid is a PT_CLSID value.
type ValueGuid guid.GUID

// ValueBinary is a PT_BINARY value's raw bytes.
type ValueBinary []byte

// ValueMultipleInteger16 is a PT_MV_I2 value.
type ValueMultipleInteger16 []int16

// ValueMultipleInteger32 is a PT_MV_LONG value.
type ValueMultipleInteger32 []int32

// ValueMultipleFloating32 is a PT_MV_R4 value.
type ValueMultipleFloating32 []float32

// ValueMultipleFloating64 is a PT_MV_DOUBLE value.
type ValueMultipleFloating64 []float64

// ValueMultipleCurrency is a PT_MV_CURRENCY value.
type ValueMultipleCurrency []int64

// ValueMultipleFloatingTime is a PT_MV_APPTIME value.
type ValueMultipleFloatingTime []float64

// ValueMultipleInteger64 is a PT_MV_I8 value.
type ValueMultipleInteger64 []int64

// ValueMultipleString8 is a PT_MV_STRING8 value.
type ValueMultipleString8 []string

// ValueMultipleString is a PT_MV_UNICODE value.
type ValueMultipleString []string

// ValueMultipleTime is a PT_MV_SYSTIME value.
type ValueMultipleTime []int64

// ValueMultipleGuid is a PT_MV_CLSID value.
type ValueMultipleGuid []guid.GUID

// ValueMultipleBinary is a PT_MV_BINARY value.
type ValueMultipleBinary [][]byte

func (ValueUnspecified) isPropValue()          {}
func (ValueNull) isPropValue()                 {}
func (ValueInteger16) isPropValue()            {}
func (ValueInteger32) isPropValue()            {}
func (ValueFloating32) isPropValue()           {}
func (ValueFloating64) isPropValue()           {}
func (ValueCurrency) isPropValue()             {}
func (ValueFloatingTime) isPropValue()         {}
func (ValueErrorCode) isPropValue()            {}
func (ValueBoolean) isPropValue()              {}
func (ValueObject) isPropValue()               {}
func (ValueInteger64) isPropValue()            {}
func (ValueString8) isPropValue()              {}
func (ValueString) isPropValue()               {}
func (ValueTime) isPropValue()                 {}
func (ValueGuid) isPropValue()                 {}
func (ValueBinary) isPropValue()               {}
func (ValueMultipleInteger16) isPropValue()    {}
func (ValueMultipleInteger32) isPropValue()    {}
func (ValueMultipleFloating32) isPropValue()   {}
func (ValueMultipleFloating64) isPropValue()   {}
func (ValueMultipleCurrency) isPropValue()     {}
func (ValueMultipleFloatingTime) isPropValue() {}
func (ValueMultipleInteger64) isPropValue()    {}
func (ValueMultipleString8) isPropValue()      {}
func (ValueMultipleString) isPropValue()       {}
func (ValueMultipleTime) isPropValue()         {}
func (ValueMultipleGuid) isPropValue()         {}
func (ValueMultipleBinary) isPropValue()       {}

func (ValueUnspecified) Type() PropType          { return PropTypeUnspecified }
func (ValueNull) Type() PropType                 { return PropTypeNull }
func (ValueInteger16) Type() PropType            { return PropTypeInteger16 }
func (ValueInteger32) Type() PropType            { return PropTypeInteger32 }
func (ValueFloating32) Type() PropType           { return PropTypeFloating32 }
func (ValueFloating64) Type() PropType           { return PropTypeFloating64 }
func (ValueCurrency) Type() PropType             { return PropTypeCurrency }
func (ValueFloatingTime) Type() PropType         { return PropTypeFloatingTime }
func (ValueErrorCode) Type() PropType            { return PropTypeErrorCode }
func (ValueBoolean) Type() PropType              { return PropTypeBoolean }
func (ValueObject) Type() PropType               { return PropTypeObject }
func (ValueInteger64) Type() PropType            { return PropTypeInteger64 }
func (ValueString8) Type() PropType              { return PropTypeString8 }
func (ValueString) Type() PropType               { return PropTypeString }
func (ValueTime) Type() PropType                 { return PropTypeTime }
func (ValueGuid) Type() PropType                 { return PropTypeGuid }
func (ValueBinary) Type() PropType               { return PropTypeBinary }
func (ValueMultipleInteger16) Type() PropType    { return PropTypeMultipleInteger16 }
func (ValueMultipleInteger32) Type() PropType    { return PropTypeMultipleInteger32 }
func (ValueMultipleFloating32) Type() PropType   { return PropTypeMultipleFloating32 }
func (ValueMultipleFloating64) Type() PropType   { return PropTypeMultipleFloating64 }
func (ValueMultipleCurrency) Type() PropType     { return PropTypeMultipleCurrency }
func (ValueMultipleFloatingTime) Type() PropType { return PropTypeMultipleFloatingTime }
func (ValueMultipleInteger64) Type() PropType    { return PropTypeMultipleInteger64 }
func (ValueMultipleString8) Type() PropType      { return PropTypeMultipleString8 }
func (ValueMultipleString) Type() PropType       { return PropTypeMultipleString }
func (ValueMultipleTime) Type() PropType         { return PropTypeMultipleTime }
func (ValueMultipleGuid) Type() PropType         { return PropTypeMultipleGuid }
func (ValueMultipleBinary) Type() PropType       { return PropTypeMultipleBinary }
