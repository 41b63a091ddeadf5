package wire

import "fmt"

// Decoder handles low-level wire format decoding
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new wire format decoder
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		buf: data,
		pos: 0,
	}
}

// Pos returns the index of the next unread byte
func (d *Decoder) Pos() int {
	return d.pos
}

// Done reports whether the whole buffer has been consumed
func (d *Decoder) Done() bool {
	return d.pos >= len(d.buf)
}

// DecodeTag decodes a field key
func (d *Decoder) DecodeTag() (FieldNumber, WireType, error) {
	tag, err := d.DecodeVarint()
	if err != nil {
		return 0, 0, err
	}
	fieldNumber, wireType := ParseTag(Tag(tag))
	return fieldNumber, wireType, nil
}

// DecodeField decodes a single field from the current position. Fixed-width
// payloads decode to integer Values. On error the position is left where the
// field started.
func (d *Decoder) DecodeField() (FieldNumber, WireType, Value, error) {
	start := d.pos

	fieldNumber, wireType, err := d.DecodeTag()
	if err != nil {
		return 0, 0, Value{}, fmt.Errorf("decode tag at offset %d: %w", start, err)
	}

	v, err := d.decodeValue(wireType)
	if err != nil {
		d.pos = start
		return 0, 0, Value{}, wrapWithField(err, fieldNumber, start)
	}

	return fieldNumber, wireType, v, nil
}

// decodeValue decodes the payload that follows a key of the given wire type
func (d *Decoder) decodeValue(wireType WireType) (Value, error) {
	switch wireType {
	case WireVarint:
		v, err := d.DecodeVarint()
		if err != nil {
			return Value{}, err
		}
		return Uint(v), nil
	case WireFixed64:
		v, err := d.DecodeFixed64()
		if err != nil {
			return Value{}, err
		}
		return Uint(v), nil
	case WireBytes:
		s, err := d.DecodeString()
		if err != nil {
			return Value{}, err
		}
		return Text(s), nil
	case WireFixed32:
		v, err := d.DecodeFixed32()
		if err != nil {
			return Value{}, err
		}
		return Uint(uint64(v)), nil
	default:
		return Value{}, fmt.Errorf("%w: %d", ErrUnsupportedWireType, wireType)
	}
}

// DecodeField decodes the field that starts at buf[start]. It returns the
// field number, wire type, value and the index just past the field.
func DecodeField(buf []byte, start int) (FieldNumber, WireType, Value, int, error) {
	if start < 0 || start > len(buf) {
		return 0, 0, Value{}, start, outOfBounds("field", 1, 0)
	}
	d := &Decoder{buf: buf, pos: start}
	fieldNumber, wireType, v, err := d.DecodeField()
	if err != nil {
		return 0, 0, Value{}, start, err
	}
	return fieldNumber, wireType, v, d.pos, nil
}
