package wire

import (
	"encoding/binary"
	"fmt"
)

// DECODER METHODS

// DecodeFixed32 decodes a 32-bit little-endian value
func (d *Decoder) DecodeFixed32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, outOfBounds("fixed32", 4, len(d.buf)-d.pos)
	}

	value := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return value, nil
}

// DecodeFixed64 decodes a 64-bit little-endian value
func (d *Decoder) DecodeFixed64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, outOfBounds("fixed64", 8, len(d.buf)-d.pos)
	}

	value := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return value, nil
}

// ENCODER METHODS

// EncodeFixed32 encodes a 32-bit little-endian value
func (e *Encoder) EncodeFixed32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

// EncodeFixed64 encodes a 64-bit little-endian value
func (e *Encoder) EncodeFixed64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// encodeFixed32Value writes an integer Value as fixed32, rejecting values that
// would be truncated
func (e *Encoder) encodeFixed32Value(v uint64) error {
	if !fitsFixed32(v) {
		return fmt.Errorf("%w: %d does not fit in fixed32", ErrUnsupportedValueType, v)
	}
	e.EncodeFixed32(uint32(v))
	return nil
}

// UTILITY FUNCTIONS

// Fixed32Size returns the size of a fixed32 value (always 4 bytes)
func Fixed32Size() int {
	return 4
}

// Fixed64Size returns the size of a fixed64 value (always 8 bytes)
func Fixed64Size() int {
	return 8
}
