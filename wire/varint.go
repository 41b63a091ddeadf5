package wire

// MaxVarintLen is the longest varint a 64-bit value can need
const MaxVarintLen = 10

// DECODER METHODS

// DecodeVarint decodes a varint from the current position
func (d *Decoder) DecodeVarint() (uint64, error) {
	v, next, err := DecodeVarint(d.buf, d.pos)
	if err != nil {
		return 0, err
	}
	d.pos = next
	return v, nil
}

// ENCODER METHODS

// EncodeVarint encodes a uint64 as varint
func (e *Encoder) EncodeVarint(v uint64) {
	e.buf = AppendVarint(e.buf, v)
}

// UTILITY FUNCTIONS

// AppendVarint appends the varint encoding of v to buf. Seven bits go into
// each byte, low group first; every byte but the last has its high bit set.
func AppendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// EncodeVarint returns the varint encoding of v. It is never empty.
func EncodeVarint(v uint64) []byte {
	return AppendVarint(make([]byte, 0, VarintSize(v)), v)
}

// DecodeVarint reads a varint from buf starting at start. It returns the
// value and the index just past the last byte consumed.
func DecodeVarint(buf []byte, start int) (uint64, int, error) {
	if start < 0 || start > len(buf) {
		return 0, start, outOfBounds("varint", 1, 0)
	}

	var result uint64
	pos := start
	for i := 0; ; i++ {
		if pos >= len(buf) {
			return 0, start, outOfBounds("varint", i+1, i)
		}

		b := buf[pos]
		pos++

		// The tenth byte may only contribute the 64th bit.
		if i == MaxVarintLen-1 && b > 1 {
			return 0, start, ErrVarintOverflow
		}

		result |= uint64(b&0x7F) << (7 * uint(i))

		if b&0x80 == 0 {
			return result, pos, nil
		}
	}
}

// VarintSize returns the number of bytes needed to encode the given varint
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}
