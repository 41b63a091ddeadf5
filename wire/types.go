package wire

import "fmt"

// ===== WIRE FORMAT TYPES =====

// WireType is the 3-bit tag that says how a field's payload is framed
type WireType uint8

const (
	WireVarint  WireType = 0 // unsigned integers
	WireFixed64 WireType = 1 // 8 bytes, little-endian
	WireBytes   WireType = 2 // varint length followed by UTF-8 text
	WireFixed32 WireType = 5 // 4 bytes, little-endian
)

// Valid reports whether wt is one of the recognized wire types
func (wt WireType) Valid() bool {
	switch wt {
	case WireVarint, WireFixed64, WireBytes, WireFixed32:
		return true
	}
	return false
}

func (wt WireType) String() string {
	switch wt {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "length-delimited"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wiretype(%d)", uint8(wt))
	}
}

// FieldNumber identifies a value's slot within a message
type FieldNumber uint64

// MaxFieldNumber is the largest field number whose tag still fits in 64 bits
const MaxFieldNumber FieldNumber = 1<<61 - 1

// Tag is a field key: field number and wire type packed together
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType&0x7))
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}
