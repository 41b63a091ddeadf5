package wire

import (
	"fmt"
	"strings"
)

// Field is one (field number, value) entry of a Message
type Field struct {
	Number FieldNumber
	Value  Value
}

// Message maps field numbers to values and remembers insertion order, which
// is the order fields are written on the wire. The zero Message is empty and
// ready to use. A Message is not safe for concurrent mutation.
type Message struct {
	fields []Field
	index  map[FieldNumber]int
}

// NewMessage creates a message from fields, applied in order with Set
func NewMessage(fields ...Field) *Message {
	m := &Message{}
	for _, f := range fields {
		m.Set(f.Number, f.Value)
	}
	return m
}

// Set stores v under n. Replacing an existing number keeps its position.
func (m *Message) Set(n FieldNumber, v Value) {
	if m.index == nil {
		m.index = make(map[FieldNumber]int)
	}
	if i, ok := m.index[n]; ok {
		m.fields[i].Value = v
		return
	}
	m.index[n] = len(m.fields)
	m.fields = append(m.fields, Field{Number: n, Value: v})
}

// Get returns the value stored under n
func (m *Message) Get(n FieldNumber) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[n]
	if !ok {
		return Value{}, false
	}
	return m.fields[i].Value, true
}

// Has reports whether n is present
func (m *Message) Has(n FieldNumber) bool {
	_, ok := m.Get(n)
	return ok
}

// Delete removes n, preserving the order of the remaining fields
func (m *Message) Delete(n FieldNumber) {
	if m == nil {
		return
	}
	i, ok := m.index[n]
	if !ok {
		return
	}
	m.fields = append(m.fields[:i], m.fields[i+1:]...)
	delete(m.index, n)
	for j := i; j < len(m.fields); j++ {
		m.index[m.fields[j].Number] = j
	}
}

// Len returns the number of fields
func (m *Message) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}

// Fields returns a copy of the fields in insertion order
func (m *Message) Fields() []Field {
	if m == nil {
		return nil
	}
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Range calls fn for each field in insertion order until fn returns false
func (m *Message) Range(fn func(n FieldNumber, v Value) bool) {
	if m == nil {
		return
	}
	for _, f := range m.fields {
		if !fn(f.Number, f.Value) {
			return
		}
	}
}

// Equal reports whether m and other hold the same (number, value) pairs.
// Order is ignored.
func (m *Message) Equal(other *Message) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Range(func(n FieldNumber, v Value) bool {
		ov, ok := other.Get(n)
		equal = ok && ov == v
		return equal
	})
	return equal
}

func (m *Message) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	m.Range(func(n FieldNumber, v Value) bool {
		if sb.Len() > 1 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d: %s", n, v)
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

// ENCODING

// EncodeMessage encodes every field of m in insertion order, choosing each
// wire type with GuessWireType. A nil or empty message encodes to no bytes.
func EncodeMessage(m *Message) ([]byte, error) {
	encoder := NewEncoder()
	me := NewMessageEncoder(encoder)
	if err := me.EncodeMessage(m); err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

// MessageEncoder writes whole messages into an Encoder
type MessageEncoder struct {
	encoder *Encoder
}

// NewMessageEncoder creates a new message encoder
func NewMessageEncoder(e *Encoder) *MessageEncoder {
	return &MessageEncoder{encoder: e}
}

// EncodeMessage appends the fields of m to the underlying encoder. On error
// the encoder is left as it was before the call.
func (me *MessageEncoder) EncodeMessage(m *Message) error {
	start := me.encoder.Len()
	var err error
	m.Range(func(n FieldNumber, v Value) bool {
		var wireType WireType
		wireType, err = GuessWireType(v)
		if err != nil {
			err = wrapWithField(err, n, me.encoder.Len())
			return false
		}
		err = me.encoder.EncodeField(n, wireType, v)
		return err == nil
	})
	if err != nil {
		me.encoder.buf = me.encoder.buf[:start]
		return err
	}
	return nil
}

// DECODING

// DecodeMessage decodes a buffer with the default Config
func DecodeMessage(data []byte) (*Message, error) {
	return DecodeMessageWithConfig(data, Config{})
}

// DecodeMessageWithConfig decodes fields until the buffer is exhausted.
// Repeated field numbers keep the last value unless cfg rejects them.
func DecodeMessageWithConfig(data []byte, cfg Config) (*Message, error) {
	md := NewMessageDecoder(NewDecoder(data), cfg)
	return md.DecodeMessage()
}

// MessageDecoder reads whole messages from a Decoder
type MessageDecoder struct {
	decoder *Decoder
	config  Config
}

// NewMessageDecoder creates a new message decoder
func NewMessageDecoder(d *Decoder, cfg Config) *MessageDecoder {
	return &MessageDecoder{decoder: d, config: cfg}
}

// DecodeMessage consumes the rest of the decoder's buffer
func (md *MessageDecoder) DecodeMessage() (*Message, error) {
	d := md.decoder
	result := &Message{}

	for !d.Done() {
		start := d.Pos()
		fieldNumber, _, value, err := d.DecodeField()
		if err != nil {
			return nil, err
		}
		if md.config.RejectDuplicateFields && result.Has(fieldNumber) {
			return nil, wrapWithField(ErrDuplicateField, fieldNumber, start)
		}
		result.Set(fieldNumber, value)
	}

	// Bounds checks keep pos from passing the end; anything else means a
	// trailing partial field slipped through.
	if d.Pos() != len(d.buf) {
		return nil, fmt.Errorf("%w: decoder stopped at %d of %d bytes", ErrOutOfBounds, d.Pos(), len(d.buf))
	}

	return result, nil
}
