package mapiprop

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fixed set of ways a property decode can
// fail. Wrap with fmt.Errorf and %w to attach context; callers use
// errors.Is against these.
var (
	// ErrInvalidIDType is returned when a named property's id-kind
	// word is neither 0 (number) nor 1 (string).
	ErrInvalidIDType = errors.New("mapiprop: invalid named-property id type")

	// ErrInvalidBoolean is returned when a PT_BOOLEAN byte is neither
	// 0x00 nor 0x01.
	ErrInvalidBoolean = errors.New("mapiprop: invalid boolean value")

	// ErrMultipleValuesSingleType is returned when a singleton
	// PropType's value-count prefix is not 1.
	ErrMultipleValuesSingleType = errors.New("mapiprop: multiple values specified for a singleton type")

	// ErrInvalidString is returned when a UTF-16 string property
	// contains an ill-formed surrogate sequence.
	ErrInvalidString = errors.New("mapiprop: invalid UTF-16 string")

	// ErrInvalidStringID is returned when a named property's string
	// id contains an ill-formed UTF-16 sequence.
	ErrInvalidStringID = errors.New("mapiprop: invalid UTF-16 named-property id")

	// ErrOddStringLength is returned when a UTF-16 string's declared
	// byte count is odd.
	ErrOddStringLength = errors.New("mapiprop: odd UTF-16 string byte length")

	// ErrInvalidPropertyType is returned when a property's type code
	// is Other (matches no named PropType). Unspecified and Null
	// decode to ValueUnspecified and ValueNull without error.
	ErrInvalidPropertyType = errors.New("mapiprop: invalid property type in this context")
)

// MultipleValuesError reports the offending PropType and count
// alongside ErrMultipleValuesSingleType.
type MultipleValuesError struct {
	PropType PropType
	Count    uint32
}

func (e *MultipleValuesError) Error() string {
	return fmt.Sprintf("mapiprop: %d values specified with singleton type %s", e.Count, e.PropType)
}

func (e *MultipleValuesError) Unwrap() error { return ErrMultipleValuesSingleType }
