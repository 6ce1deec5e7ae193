// Package tnef implements the TNEF container reader (spec component
// E): the stream header and the attribute record framing, including
// the per-attribute checksum verification. Attribute payloads are
// handed to the mapiprop package for property decoding; this package
// itself never interprets an attribute's bytes beyond what it needs to
// frame the record.
package tnef

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/RavuAlHemio/tnef2mime/binreader"
	"github.com/RavuAlHemio/tnef2mime/mapiprop"
)

// Signature is the magic 32-bit little-endian word every TNEF stream
// starts with.
const Signature uint32 = 0x223E9F78

var (
	// ErrSignature is returned when a stream does not start with Signature.
	ErrSignature = errors.New("tnef: bad signature")

	// ErrLengthConversion is returned when an attribute's signed length
	// field is negative.
	ErrLengthConversion = errors.New("tnef: negative attribute length")

	// ErrChecksumMismatch is returned when an attribute's trailing
	// checksum does not match the wrapping sum of its payload bytes.
	ErrChecksumMismatch = errors.New("tnef: attribute checksum mismatch")
)

// Attribute is one framed TNEF attribute record: a level, an id, its
// raw payload, and the checksum that payload was verified against.
type Attribute struct {
	Level    mapiprop.TnefAttributeLevel
	ID       mapiprop.TnefAttributeId
	Data     []byte
	Checksum uint16
}

// File is a fully framed TNEF stream: the legacy key from the header
// and every attribute record in input order.
type File struct {
	LegacyKey  uint16
	Attributes []Attribute
}

// Read parses a TNEF stream from r. Framing errors (bad signature,
// negative length, checksum mismatch, a truncated record) abort the
// whole read; a clean EOF at an attribute boundary ends the stream
// normally.
func Read(r io.Reader) (*File, error) {
	br := binreader.New(r)

	signature, err := br.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("tnef: read signature: %w", err)
	}
	if signature != Signature {
		return nil, fmt.Errorf("%w: expected 0x%08X, got 0x%08X", ErrSignature, Signature, signature)
	}

	legacyKey, err := br.ReadU16LE()
	if err != nil {
		return nil, fmt.Errorf("tnef: read legacy key: %w", err)
	}

	var attributes []Attribute
	for {
		levelU8, ok, err := br.ReadU8OrEOF()
		if err != nil {
			return nil, fmt.Errorf("tnef: read attribute level: %w", err)
		}
		if !ok {
			break
		}
		level := mapiprop.TnefAttributeLevel(levelU8)

		idU32, err := br.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("tnef: read attribute id: %w", err)
		}
		id := mapiprop.TnefAttributeIdFromBaseType(idU32)

		lengthI32, err := br.ReadI32LE()
		if err != nil {
			return nil, fmt.Errorf("tnef: read attribute length: %w", err)
		}
		if lengthI32 < 0 {
			return nil, fmt.Errorf("%w: %d", ErrLengthConversion, lengthI32)
		}

		data, err := br.ReadBytes(int(lengthI32))
		if err != nil {
			return nil, fmt.Errorf("tnef: read attribute data: %w", err)
		}

		checksum, err := br.ReadU16LE()
		if err != nil {
			return nil, fmt.Errorf("tnef: read attribute checksum: %w", err)
		}

		var computed uint16
		for _, b := range data {
			computed += uint16(b)
		}
		if checksum != computed {
			return nil, fmt.Errorf("%w: calculated 0x%04X, obtained 0x%04X", ErrChecksumMismatch, computed, checksum)
		}

		attributes = append(attributes, Attribute{
			Level:    level,
			ID:       id,
			Data:     data,
			Checksum: checksum,
		})
	}

	return &File{LegacyKey: legacyKey, Attributes: attributes}, nil
}

// Codepage extracts the 2-byte little-endian Windows codepage number
// carried by an AttOemCodepage attribute. ok is false if a is not that
// attribute or carries too few bytes to hold one.
func (a Attribute) Codepage() (codepage uint32, ok bool) {
	if !a.ID.Equal(mapiprop.TnefAttrOemCodepage) || len(a.Data) < 2 {
		return 0, false
	}
	return uint32(binary.LittleEndian.Uint16(a.Data[0:2])), true
}

// IsPropertyList reports whether a's payload is a MAPI property list
// (the AttMapiProps and AttAttachment attributes carry one),
// decodable with DecodeProperties.
func (a Attribute) IsPropertyList() bool {
	return a.ID.Equal(mapiprop.TnefAttrMapiProps) || a.ID.Equal(mapiprop.TnefAttrAttachment)
}

// DecodeProperties decodes a's payload as a MAPI property list using
// dec's currently active single-byte encoding. Callers should update
// dec via Codepage before decoding any attribute that follows an
// AttOemCodepage attribute in stream order.
func (a Attribute) DecodeProperties(dec *mapiprop.StringDecoder) ([]mapiprop.Property, error) {
	br := binreader.New(bytes.NewReader(a.Data))
	return mapiprop.DecodeProperties(br, dec)
}
