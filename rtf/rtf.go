// Package rtf decodes the compressed-RTF bodies MAPI stores under the
// PidTagRtfCompressed property (spec component G): a 16-byte header
// followed by either a raw passthrough ("MELA") or an LZ77 variant
// ("LZFu") seeded with a fixed dictionary of common RTF boilerplate.
package rtf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/RavuAlHemio/tnef2mime/binreader"
)

const (
	magicMELA uint32 = 0x414C454D
	magicLZFu uint32 = 0x75465A4C

	dictCapacity = 4096
)

var (
	// ErrHeaderTooShort is returned when the input is shorter than the
	// fixed 16-byte compressed-RTF header.
	ErrHeaderTooShort = errors.New("rtf: compressed header too short")

	// ErrUnsupportedCompression is returned when the header's
	// compression type is neither "LZFu" nor "MELA".
	ErrUnsupportedCompression = errors.New("rtf: unsupported compression type")
)

// initDictionary is the 207-byte RTF boilerplate every LZFu stream's
// dictionary starts out preloaded with, letting the compressor
// back-reference common control words without ever having emitted them.
var initDictionary = []byte("{\\rtf1\\ansi\\mac\\deff0\\deftab720{\\fonttbl;}{\\f0\\fnil \\froman \\fswiss \\fmodern \\fscript \\fdecor MS Sans SerifSymbolArialTimes New RomanCourier{\\colortbl\\red0\\green0\\blue0\r\n\\par \\pard\\plain\\f0\\fs20\\b\\i\\u\\tab\\tx")

// ringDict is the 4096-byte sliding window the LZFu decompressor reads
// literals and back-references through.
type ringDict struct {
	data     [dictCapacity]byte
	writePos int
	readPos  int
}

func newRingDict() *ringDict {
	d := &ringDict{}
	copy(d.data[:], initDictionary)
	d.writePos = len(initDictionary)
	return d
}

func (d *ringDict) readAtReadPos() byte {
	b := d.data[d.readPos]
	d.readPos = (d.readPos + 1) % dictCapacity
	return b
}

func (d *ringDict) writeAtWritePos(value byte) {
	d.data[d.writePos] = value
	d.writePos = (d.writePos + 1) % dictCapacity
}

func (d *ringDict) literal(value byte) {
	d.writeAtWritePos(value)
}

func (d *ringDict) isComplete(offset uint16) bool {
	return int(offset) == d.writePos
}

func (d *ringDict) reference(offset, length uint16) []byte {
	actualLength := int(length) + 2
	out := make([]byte, 0, actualLength)
	d.readPos = int(offset)
	for i := 0; i < actualLength; i++ {
		b := d.readAtReadPos()
		out = append(out, b)
		d.writeAtWritePos(b)
	}
	return out
}

// Decode decompresses a PidTagRtfCompressed value into plain RTF source
// bytes. The trailing CRC in the header is present in the wire format
// but, like the original decoder, never validated here.
func Decode(compressed []byte) ([]byte, error) {
	if len(compressed) < 16 {
		return nil, fmt.Errorf("%w: expected at least 16 bytes, obtained %d", ErrHeaderTooShort, len(compressed))
	}

	rawSize := binary.LittleEndian.Uint32(compressed[4:8])
	compressionType := binary.LittleEndian.Uint32(compressed[8:12])

	if compressionType == magicMELA {
		out := make([]byte, len(compressed)-16)
		copy(out, compressed[16:])
		return out, nil
	}
	if compressionType != magicLZFu {
		return nil, fmt.Errorf("%w: 0x%08X", ErrUnsupportedCompression, compressionType)
	}

	br := binreader.New(bytes.NewReader(compressed[16:]))
	dict := newRingDict()
	out := make([]byte, 0, rawSize)

decodeLoop:
	for {
		control, ok, err := br.ReadU8OrEOF()
		if err != nil {
			return nil, fmt.Errorf("rtf: read control byte: %w", err)
		}
		if !ok {
			break
		}

		for bitIndex := 0; bitIndex < 8; bitIndex++ {
			if control&(1<<uint(bitIndex)) == 0 {
				literal, ok, err := br.ReadU8OrEOF()
				if err != nil {
					return nil, fmt.Errorf("rtf: read literal byte: %w", err)
				}
				if !ok {
					break decodeLoop
				}
				out = append(out, literal)
				dict.literal(literal)
				continue
			}

			ref, err := br.ReadU16BE()
			if err != nil {
				return nil, fmt.Errorf("rtf: read dictionary reference: %w", err)
			}
			length := ref & 0x000F
			offset := (ref >> 4) & 0x0FFF

			if dict.isComplete(offset) {
				break decodeLoop
			}

			out = append(out, dict.reference(offset, length)...)
		}
	}

	return out, nil
}
