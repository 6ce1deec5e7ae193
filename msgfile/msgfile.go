// Package msgfile implements the Compound File Binary ".msg" reader
// (spec component F): it walks the CFB storage tree with mscfb,
// reassembles the MAPI property streams for the message itself, its
// recipients and its attachments, and decodes each property's value.
//
// Unlike the TNEF reader, a malformed individual property here does not
// abort the whole message: it is logged and skipped, so that one bad
// attachment property doesn't cost the caller the rest of the message.
package msgfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/richardlehane/mscfb"

	"github.com/RavuAlHemio/tnef2mime/binreader"
	"github.com/RavuAlHemio/tnef2mime/guid"
	"github.com/RavuAlHemio/tnef2mime/mapiprop"
)

const (
	propertiesStreamName = "__properties_version1.0"
	rootHeaderLength     = 32
	subHeaderLength      = 8
)

var (
	// ErrOpenCompoundFile is returned when mscfb fails to recognize r as
	// a compound file.
	ErrOpenCompoundFile = errors.New("msgfile: failed to open compound file")

	// ErrPropertiesStreamMissing is returned when a storage (the root
	// message, a recipient, or an attachment) has no
	// __properties_version1.0 stream.
	ErrPropertiesStreamMissing = errors.New("msgfile: properties stream missing")

	// ErrHeaderTooShort is returned when a properties stream is shorter
	// than the fixed header its storage kind requires.
	ErrHeaderTooShort = errors.New("msgfile: properties stream header too short")

	// ErrInvalidPropertyType is returned for the Unspecified, Null, and
	// Other(code) property types, none of which CFB storage is ever
	// supposed to carry; unlike a bad individual value, this aborts the
	// whole properties stream.
	ErrInvalidPropertyType = errors.New("msgfile: invalid property type")
)

// Property is one decoded MAPI property, container-local to a single
// storage (the message, a recipient, or an attachment).
type Property struct {
	Tag          mapiprop.PropTag
	PropertyType mapiprop.PropType
	Flags        uint32
	Value        mapiprop.PropValue
}

// Recipient is the recipient-local property set found under one
// __recip_version1.0_#######-numbered storage.
type Recipient struct {
	Properties []Property
}

// Attachment is the attachment-local property set found under one
// __attach_version1.0_#######-numbered storage.
type Attachment struct {
	Properties []Property
}

// Msg is a fully decoded ".msg" compound file: the top-level message
// properties plus every recipient and attachment storage.
type Msg struct {
	Properties  []Property
	Recipients  []Recipient
	Attachments []Attachment
}

// Read parses a ".msg" compound file from r in one pass, indexing every
// stream by its absolute path, then decodes the root message, its
// recipients and its attachments from that index. mscfb only exposes a
// sequential Next()-based iterator, not random-access open-by-path, so
// this index is what lets readProperties "open" a stream by name.
func Read(r io.Reader) (*Msg, error) {
	doc, err := mscfb.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenCompoundFile, err)
	}

	index := make(map[string][]byte)
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		data := make([]byte, entry.Size)
		if entry.Size > 0 {
			if _, err := io.ReadFull(entry, data); err != nil {
				return nil, fmt.Errorf("msgfile: read stream %s: %w", entryPath(entry), err)
			}
		}
		index[entryPath(entry)] = data
	}

	header, properties, err := readProperties(index, "", rootHeaderLength)
	if err != nil {
		return nil, err
	}

	// header layout: 0..8 reserved, 8..12 next_recipient_id,
	// 12..16 next_attachment_id, 16..20 recipient_count,
	// 20..24 attachment_count, 24..32 reserved.
	recipientCount := binary.LittleEndian.Uint32(header[16:20])
	attachmentCount := binary.LittleEndian.Uint32(header[20:24])

	recipients := make([]Recipient, 0, recipientCount)
	for i := uint32(0); i < recipientCount; i++ {
		prefix := fmt.Sprintf("/__recip_version1.0_#%08X", i)
		_, props, err := readProperties(index, prefix, subHeaderLength)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, Recipient{Properties: props})
	}

	attachments := make([]Attachment, 0, attachmentCount)
	for i := uint32(0); i < attachmentCount; i++ {
		prefix := fmt.Sprintf("/__attach_version1.0_#%08X", i)
		_, props, err := readProperties(index, prefix, subHeaderLength)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, Attachment{Properties: props})
	}

	return &Msg{Properties: properties, Recipients: recipients, Attachments: attachments}, nil
}

func entryPath(entry *mscfb.File) string {
	var b strings.Builder
	for _, seg := range entry.Path {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	b.WriteByte('/')
	b.WriteString(entry.Name)
	return b.String()
}

// readProperties decodes one storage's property stream: prefix is the
// absolute path to that storage ("" for the root message), and
// headerLength is the fixed non-property header every properties
// stream starts with (32 bytes for the message, 8 for a recipient or
// attachment). It returns that raw header alongside the decoded
// properties so the caller can pull the recipient/attachment counts out
// of the root header.
func readProperties(index map[string][]byte, prefix string, headerLength int) ([]byte, []Property, error) {
	propPath := prefix + "/" + propertiesStreamName
	data, ok := index[propPath]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrPropertiesStreamMissing, propPath)
	}
	if len(data) < headerLength {
		return nil, nil, fmt.Errorf("%w: %s has %d bytes, need %d", ErrHeaderTooShort, propPath, len(data), headerLength)
	}
	header := data[:headerLength]

	br := binreader.New(bytes.NewReader(data[headerLength:]))
	var properties []Property
	for {
		typeU16, ok, err := br.ReadU16LEOrEOF()
		if err != nil {
			return nil, nil, fmt.Errorf("msgfile: read property type: %w", err)
		}
		if !ok {
			break
		}
		propType := mapiprop.PropTypeFromBaseType(typeU16)

		tagU16, err := br.ReadU16LE()
		if err != nil {
			return nil, nil, fmt.Errorf("msgfile: read property tag: %w", err)
		}
		tag := mapiprop.PropTagFromBaseType(tagU16)

		flags, err := br.ReadU32LE()
		if err != nil {
			return nil, nil, fmt.Errorf("msgfile: read property flags: %w", err)
		}

		value, skip, err := decodeValue(index, prefix, br, typeU16, tagU16)
		if err != nil {
			return nil, nil, err
		}
		if skip {
			continue
		}

		properties = append(properties, Property{
			Tag:          tag,
			PropertyType: propType,
			Flags:        flags,
			Value:        value,
		})
	}
	return header, properties, nil
}

func substgPath(prefix string, tagU16, typeU16 uint16) string {
	return fmt.Sprintf("%s/__substg1.0_%04X%04X", prefix, tagU16, typeU16)
}

func substgValuePath(prefix string, tagU16, typeU16 uint16, index int) string {
	return fmt.Sprintf("%s/__substg1.0_%04X%04X-%08X", prefix, tagU16, typeU16, index)
}

// decodeValue decodes one property's value out of br (for
// fixed-size-inline types) or the stream index (for externally-stored
// types), following the CFB property stream's storage-class rules.
// skip is true when this single property could not be decoded and
// should be dropped without aborting the rest of the properties
// stream — mirroring the original decoder's log-and-continue behavior
// for per-property faults.
func decodeValue(index map[string][]byte, prefix string, br *binreader.Reader, typeU16, tagU16 uint16) (value mapiprop.PropValue, skip bool, err error) {
	switch typeU16 {
	case mapiprop.PropTypeUnspecified.ToBaseType(), mapiprop.PropTypeNull.ToBaseType():
		return nil, false, fmt.Errorf("%w: 0x%04X", ErrInvalidPropertyType, typeU16)

	case mapiprop.PropTypeInteger16.ToBaseType(),
		mapiprop.PropTypeInteger32.ToBaseType(),
		mapiprop.PropTypeFloating32.ToBaseType(),
		mapiprop.PropTypeFloating64.ToBaseType(),
		mapiprop.PropTypeBoolean.ToBaseType(),
		mapiprop.PropTypeCurrency.ToBaseType(),
		mapiprop.PropTypeFloatingTime.ToBaseType(),
		mapiprop.PropTypeTime.ToBaseType(),
		mapiprop.PropTypeInteger64.ToBaseType(),
		mapiprop.PropTypeErrorCode.ToBaseType():
		return decodeInline(br, typeU16, tagU16)

	case mapiprop.PropTypeString.ToBaseType(),
		mapiprop.PropTypeBinary.ToBaseType(),
		mapiprop.PropTypeString8.ToBaseType(),
		mapiprop.PropTypeGuid.ToBaseType(),
		mapiprop.PropTypeObject.ToBaseType():
		return decodeExternalSingle(index, prefix, br, typeU16, tagU16)

	case mapiprop.PropTypeMultipleInteger16.ToBaseType(),
		mapiprop.PropTypeMultipleInteger32.ToBaseType(),
		mapiprop.PropTypeMultipleFloating32.ToBaseType(),
		mapiprop.PropTypeMultipleFloating64.ToBaseType(),
		mapiprop.PropTypeMultipleCurrency.ToBaseType(),
		mapiprop.PropTypeMultipleFloatingTime.ToBaseType(),
		mapiprop.PropTypeMultipleTime.ToBaseType(),
		mapiprop.PropTypeMultipleGuid.ToBaseType(),
		mapiprop.PropTypeMultipleInteger64.ToBaseType():
		return decodeExternalFixedMultiple(index, prefix, br, typeU16, tagU16)

	case mapiprop.PropTypeMultipleBinary.ToBaseType(),
		mapiprop.PropTypeMultipleString8.ToBaseType(),
		mapiprop.PropTypeMultipleString.ToBaseType():
		return decodeExternalVariableMultiple(index, prefix, br, typeU16, tagU16)

	default:
		return nil, false, fmt.Errorf("%w: 0x%04X", ErrInvalidPropertyType, typeU16)
	}
}

// decodeInline reads the 8-byte inline value slot every fixed-size
// scalar property type occupies in the properties stream itself.
func decodeInline(br *binreader.Reader, typeU16, tagU16 uint16) (mapiprop.PropValue, bool, error) {
	buf, err := br.ReadBytes(8)
	if err != nil {
		return nil, false, fmt.Errorf("msgfile: read inline value for property %04X%04X: %w", tagU16, typeU16, err)
	}

	switch typeU16 {
	case mapiprop.PropTypeInteger16.ToBaseType():
		return mapiprop.ValueInteger16(int16(binary.LittleEndian.Uint16(buf[0:2]))), false, nil
	case mapiprop.PropTypeInteger32.ToBaseType():
		return mapiprop.ValueInteger32(int32(binary.LittleEndian.Uint32(buf[0:4]))), false, nil
	case mapiprop.PropTypeFloating32.ToBaseType():
		return mapiprop.ValueFloating32(mapiprop.Float32FromBits(binary.LittleEndian.Uint32(buf[0:4]))), false, nil
	case mapiprop.PropTypeFloating64.ToBaseType():
		return mapiprop.ValueFloating64(mapiprop.Float64FromBits(binary.LittleEndian.Uint64(buf[0:8]))), false, nil
	case mapiprop.PropTypeBoolean.ToBaseType():
		return mapiprop.ValueBoolean(buf[0] != 0x00), false, nil
	case mapiprop.PropTypeCurrency.ToBaseType():
		return mapiprop.ValueCurrency(int64(binary.LittleEndian.Uint64(buf[0:8]))), false, nil
	case mapiprop.PropTypeFloatingTime.ToBaseType():
		return mapiprop.ValueFloatingTime(mapiprop.Float64FromBits(binary.LittleEndian.Uint64(buf[0:8]))), false, nil
	case mapiprop.PropTypeTime.ToBaseType():
		return mapiprop.ValueTime(int64(binary.LittleEndian.Uint64(buf[0:8]))), false, nil
	case mapiprop.PropTypeInteger64.ToBaseType():
		return mapiprop.ValueInteger64(int64(binary.LittleEndian.Uint64(buf[0:8]))), false, nil
	case mapiprop.PropTypeErrorCode.ToBaseType():
		return mapiprop.ValueErrorCode(binary.LittleEndian.Uint32(buf[0:4])), false, nil
	default:
		return nil, false, fmt.Errorf("%w: 0x%04X", ErrInvalidPropertyType, typeU16)
	}
}

// decodeExternalSingle handles the property types stored in their own
// __substg1.0_TTTTTTTT stream rather than inline: a u32 length (unused)
// and a reserved u32 take the value slot in the properties stream
// itself, then the full value lives in the sibling stream.
func decodeExternalSingle(index map[string][]byte, prefix string, br *binreader.Reader, typeU16, tagU16 uint16) (mapiprop.PropValue, bool, error) {
	if _, err := br.ReadU32LE(); err != nil { // length, unused: the stream's own size is authoritative
		return nil, false, err
	}
	if _, err := br.ReadU32LE(); err != nil { // reserved2
		return nil, false, err
	}

	path := substgPath(prefix, tagU16, typeU16)
	valueBuf, ok := index[path]
	if !ok {
		log.Printf("msgfile: failed to open property %04X%04X value stream; skipping", tagU16, typeU16)
		return nil, true, nil
	}

	switch typeU16 {
	case mapiprop.PropTypeString.ToBaseType():
		if len(valueBuf)%2 != 0 {
			log.Printf("msgfile: UTF-16 string property %04X%04X has odd byte count %d; skipping", tagU16, typeU16, len(valueBuf))
			return nil, true, nil
		}
		s, err := mapiprop.DecodeUTF16(valueBuf)
		if err != nil {
			log.Printf("msgfile: UTF-16 string property %04X%04X contains invalid data; skipping", tagU16, typeU16)
			return nil, true, nil
		}
		return mapiprop.ValueString(s), false, nil
	case mapiprop.PropTypeBinary.ToBaseType():
		return mapiprop.ValueBinary(valueBuf), false, nil
	case mapiprop.PropTypeString8.ToBaseType():
		// FIXME: assumes UTF-8, matching the original decoder.
		if !utf8.Valid(valueBuf) {
			log.Printf("msgfile: 8-bit string property %04X%04X contains invalid UTF-8 data; skipping", tagU16, typeU16)
			return nil, true, nil
		}
		return mapiprop.ValueString8(string(valueBuf)), false, nil
	case mapiprop.PropTypeGuid.ToBaseType():
		if len(valueBuf) != guid.Size {
			log.Printf("msgfile: GUID property %04X%04X has %d bytes (expected %d bytes); skipping", tagU16, typeU16, len(valueBuf), guid.Size)
			return nil, true, nil
		}
		g, err := guid.FromLEBytes(valueBuf)
		if err != nil {
			return nil, false, err
		}
		return mapiprop.ValueGuid(g), false, nil
	case mapiprop.PropTypeObject.ToBaseType():
		return mapiprop.ValueObject(valueBuf), false, nil
	default:
		return nil, false, fmt.Errorf("%w: 0x%04X", ErrInvalidPropertyType, typeU16)
	}
}

// decodeExternalFixedMultiple handles the Multiple* array types whose
// elements are all the same fixed width, packed back-to-back in one
// sibling stream with no per-element framing.
func decodeExternalFixedMultiple(index map[string][]byte, prefix string, br *binreader.Reader, typeU16, tagU16 uint16) (mapiprop.PropValue, bool, error) {
	if _, err := br.ReadU32LE(); err != nil {
		return nil, false, err
	}
	if _, err := br.ReadU32LE(); err != nil {
		return nil, false, err
	}

	path := substgPath(prefix, tagU16, typeU16)
	valueBuf, ok := index[path]
	if !ok {
		log.Printf("msgfile: failed to open property %04X%04X value stream; skipping", tagU16, typeU16)
		return nil, true, nil
	}

	chunkSize := map[uint16]int{
		mapiprop.PropTypeMultipleInteger16.ToBaseType():    2,
		mapiprop.PropTypeMultipleInteger32.ToBaseType():    4,
		mapiprop.PropTypeMultipleFloating32.ToBaseType():   4,
		mapiprop.PropTypeMultipleFloating64.ToBaseType():   8,
		mapiprop.PropTypeMultipleCurrency.ToBaseType():     8,
		mapiprop.PropTypeMultipleFloatingTime.ToBaseType(): 8,
		mapiprop.PropTypeMultipleTime.ToBaseType():         8,
		mapiprop.PropTypeMultipleGuid.ToBaseType():         guid.Size,
		mapiprop.PropTypeMultipleInteger64.ToBaseType():    8,
	}[typeU16]

	if len(valueBuf)%chunkSize != 0 {
		log.Printf("msgfile: property %04X%04X has byte count %d not divisible by %d; skipping", tagU16, typeU16, len(valueBuf), chunkSize)
		return nil, true, nil
	}
	count := len(valueBuf) / chunkSize

	switch typeU16 {
	case mapiprop.PropTypeMultipleInteger16.ToBaseType():
		vals := make([]int16, count)
		for i := range vals {
			vals[i] = int16(binary.LittleEndian.Uint16(valueBuf[i*2 : i*2+2]))
		}
		return mapiprop.ValueMultipleInteger16(vals), false, nil
	case mapiprop.PropTypeMultipleInteger32.ToBaseType():
		vals := make([]int32, count)
		for i := range vals {
			vals[i] = int32(binary.LittleEndian.Uint32(valueBuf[i*4 : i*4+4]))
		}
		return mapiprop.ValueMultipleInteger32(vals), false, nil
	case mapiprop.PropTypeMultipleFloating32.ToBaseType():
		vals := make([]float32, count)
		for i := range vals {
			vals[i] = mapiprop.Float32FromBits(binary.LittleEndian.Uint32(valueBuf[i*4 : i*4+4]))
		}
		return mapiprop.ValueMultipleFloating32(vals), false, nil
	case mapiprop.PropTypeMultipleFloating64.ToBaseType():
		vals := make([]float64, count)
		for i := range vals {
			vals[i] = mapiprop.Float64FromBits(binary.LittleEndian.Uint64(valueBuf[i*8 : i*8+8]))
		}
		return mapiprop.ValueMultipleFloating64(vals), false, nil
	case mapiprop.PropTypeMultipleCurrency.ToBaseType():
		vals := make([]int64, count)
		for i := range vals {
			vals[i] = int64(binary.LittleEndian.Uint64(valueBuf[i*8 : i*8+8]))
		}
		return mapiprop.ValueMultipleCurrency(vals), false, nil
	case mapiprop.PropTypeMultipleFloatingTime.ToBaseType():
		vals := make([]float64, count)
		for i := range vals {
			vals[i] = mapiprop.Float64FromBits(binary.LittleEndian.Uint64(valueBuf[i*8 : i*8+8]))
		}
		return mapiprop.ValueMultipleFloatingTime(vals), false, nil
	case mapiprop.PropTypeMultipleTime.ToBaseType():
		vals := make([]int64, count)
		for i := range vals {
			vals[i] = int64(binary.LittleEndian.Uint64(valueBuf[i*8 : i*8+8]))
		}
		return mapiprop.ValueMultipleTime(vals), false, nil
	case mapiprop.PropTypeMultipleInteger64.ToBaseType():
		vals := make([]int64, count)
		for i := range vals {
			vals[i] = int64(binary.LittleEndian.Uint64(valueBuf[i*8 : i*8+8]))
		}
		return mapiprop.ValueMultipleInteger64(vals), false, nil
	case mapiprop.PropTypeMultipleGuid.ToBaseType():
		vals := make([]guid.GUID, count)
		for i := range vals {
			g, err := guid.FromLEBytes(valueBuf[i*guid.Size : i*guid.Size+guid.Size])
			if err != nil {
				return nil, false, err
			}
			vals[i] = g
		}
		return mapiprop.ValueMultipleGuid(vals), false, nil
	default:
		return nil, false, fmt.Errorf("%w: 0x%04X", ErrInvalidPropertyType, typeU16)
	}
}

// decodeExternalVariableMultiple handles the Multiple* array types
// whose elements vary in length: a lengths stream records each
// element's size (or, for MultipleBinary, size plus 4 reserved bytes),
// and each element lives in its own __substg1.0_TTTTTTTT-IIIIIIII
// stream.
func decodeExternalVariableMultiple(index map[string][]byte, prefix string, br *binreader.Reader, typeU16, tagU16 uint16) (mapiprop.PropValue, bool, error) {
	if _, err := br.ReadU32LE(); err != nil {
		return nil, false, err
	}
	if _, err := br.ReadU32LE(); err != nil {
		return nil, false, err
	}

	lengthsPath := substgPath(prefix, tagU16, typeU16)
	lengthsBuf, ok := index[lengthsPath]
	if !ok {
		log.Printf("msgfile: failed to open property %04X%04X length stream; skipping", tagU16, typeU16)
		return nil, true, nil
	}

	var lengthEntrySize int
	switch typeU16 {
	case mapiprop.PropTypeMultipleString.ToBaseType(), mapiprop.PropTypeMultipleString8.ToBaseType():
		lengthEntrySize = 4
	case mapiprop.PropTypeMultipleBinary.ToBaseType():
		lengthEntrySize = 8
	}
	if len(lengthsBuf)%lengthEntrySize != 0 {
		log.Printf("msgfile: property %04X%04X length stream has byte count %d not divisible by %d; skipping", tagU16, typeU16, len(lengthsBuf), lengthEntrySize)
		return nil, true, nil
	}
	valueCount := len(lengthsBuf) / lengthEntrySize

	valueBufs := make([][]byte, 0, valueCount)
	for i := 0; i < valueCount; i++ {
		valuePath := substgValuePath(prefix, tagU16, typeU16, i)
		valueBuf, ok := index[valuePath]
		if !ok {
			log.Printf("msgfile: failed to open property %04X%04X value %d stream; skipping", tagU16, typeU16, i)
			continue
		}
		valueBufs = append(valueBufs, valueBuf)
	}

	switch typeU16 {
	case mapiprop.PropTypeMultipleBinary.ToBaseType():
		return mapiprop.ValueMultipleBinary(valueBufs), false, nil
	case mapiprop.PropTypeMultipleString.ToBaseType():
		values := make([]string, 0, len(valueBufs))
		for i, valueBuf := range valueBufs {
			if len(valueBuf)%2 != 0 {
				log.Printf("msgfile: multiple UTF-16 string property %04X%04X value %d has odd byte count %d; skipping", tagU16, typeU16, i, len(valueBuf))
				continue
			}
			s, err := mapiprop.DecodeUTF16(valueBuf)
			if err != nil {
				log.Printf("msgfile: UTF-16 string property %04X%04X value %d contains invalid data; skipping", tagU16, typeU16, i)
				continue
			}
			values = append(values, s)
		}
		return mapiprop.ValueMultipleString(values), false, nil
	case mapiprop.PropTypeMultipleString8.ToBaseType():
		values := make([]string, 0, len(valueBufs))
		for i, valueBuf := range valueBufs {
			// FIXME: assumes UTF-8, matching the original decoder.
			if !utf8.Valid(valueBuf) {
				log.Printf("msgfile: multiple 8-bit string property %04X%04X value %d contains invalid UTF-8 data; skipping", tagU16, typeU16, i)
				continue
			}
			values = append(values, string(valueBuf))
		}
		return mapiprop.ValueMultipleString8(values), false, nil
	default:
		return nil, false, fmt.Errorf("%w: 0x%04X", ErrInvalidPropertyType, typeU16)
	}
}
