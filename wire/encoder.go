package wire

import "fmt"

// Encoder handles low-level wire format encoding
type Encoder struct {
	buf []byte
}

// NewEncoder creates a new wire format encoder
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0),
	}
}

// Bytes returns the encoded bytes
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes encoded so far
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset clears the encoder buffer
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// EncodeTag encodes a field key
func (e *Encoder) EncodeTag(fieldNumber FieldNumber, wireType WireType) error {
	if fieldNumber > MaxFieldNumber {
		return fmt.Errorf("%w: %d", ErrFieldNumber, fieldNumber)
	}
	if !wireType.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedWireType, wireType)
	}
	e.EncodeVarint(uint64(MakeTag(fieldNumber, wireType)))
	return nil
}

// EncodeField encodes one field: its key followed by the payload for wireType.
// On error nothing is written.
func (e *Encoder) EncodeField(fieldNumber FieldNumber, wireType WireType, v Value) error {
	start := len(e.buf)
	if err := e.encodeField(fieldNumber, wireType, v); err != nil {
		e.buf = e.buf[:start]
		return wrapWithField(err, fieldNumber, start)
	}
	return nil
}

func (e *Encoder) encodeField(fieldNumber FieldNumber, wireType WireType, v Value) error {
	if err := e.EncodeTag(fieldNumber, wireType); err != nil {
		return err
	}

	switch wireType {
	case WireVarint, WireFixed64, WireFixed32:
		n, ok := v.Uint()
		if !ok {
			return fmt.Errorf("%w: %s value for %s field", ErrUnsupportedValueType, v.Kind(), wireType)
		}
		switch wireType {
		case WireVarint:
			e.EncodeVarint(n)
		case WireFixed64:
			e.EncodeFixed64(n)
		default:
			return e.encodeFixed32Value(n)
		}
		return nil
	case WireBytes:
		s, ok := v.Text()
		if !ok {
			return fmt.Errorf("%w: %s value for %s field", ErrUnsupportedValueType, v.Kind(), wireType)
		}
		return e.EncodeString(s)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedWireType, wireType)
	}
}

// GuessWireType picks the wire type the message encoder uses for v
func GuessWireType(v Value) (WireType, error) {
	switch v.Kind() {
	case KindUint:
		return WireVarint, nil
	case KindText:
		return WireBytes, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedValueType, v.Kind())
	}
}

// AppendField appends the encoding of one field to buf
func AppendField(buf []byte, fieldNumber FieldNumber, wireType WireType, v Value) ([]byte, error) {
	e := &Encoder{buf: buf}
	if err := e.EncodeField(fieldNumber, wireType, v); err != nil {
		return buf, err
	}
	return e.buf, nil
}
