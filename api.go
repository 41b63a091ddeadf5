// Package easyproto encodes maps of small field numbers to integers or text
// in the protobuf tagged wire format, and optionally wraps the bytes in a
// printable text encoding.
//
// Every function is a pure function of its input: nothing is cached or shared
// between calls, so a Codec may be used from many goroutines at once without
// locking. Messages passed in are only read.
package easyproto

import (
	"fmt"
	"sort"

	"github.com/anirudhraja/easyproto/transport"
	"github.com/anirudhraja/easyproto/wire"
)

// ===== TYPES =====

type (
	Message     = wire.Message
	Field       = wire.Field
	FieldNumber = wire.FieldNumber
	Value       = wire.Value
	FieldError  = wire.FieldError
)

// NewMessage creates a message from fields in order
func NewMessage(fields ...Field) *Message { return wire.NewMessage(fields...) }

// Uint returns an integer Value
func Uint(v uint64) Value { return wire.Uint(v) }

// Text returns a text Value
func Text(s string) Value { return wire.Text(s) }

// Error kinds, for use with errors.Is
var (
	ErrUnsupportedValueType = wire.ErrUnsupportedValueType
	ErrUnsupportedWireType  = wire.ErrUnsupportedWireType
	ErrOutOfBounds          = wire.ErrOutOfBounds
	ErrInvalidUTF8          = wire.ErrInvalidUTF8
	ErrVarintOverflow       = wire.ErrVarintOverflow
	ErrFieldNumber          = wire.ErrFieldNumber
	ErrDuplicateField       = wire.ErrDuplicateField
	ErrInvalidEncoding      = transport.ErrInvalidEncoding
)

// ===== CODEC =====

// Config selects optional behaviors. The zero value reproduces the reference
// format: last write wins on repeated fields, standard alphabet, '=' padding.
type Config struct {
	// RejectDuplicateFields makes Decode fail with ErrDuplicateField when a
	// field number repeats instead of keeping the last value.
	RejectDuplicateFields bool

	// TextAlphabet and TextPadding configure the text transport.
	TextAlphabet transport.Alphabet
	TextPadding  transport.Padding
}

// Codec converts messages to wire bytes or text and back
type Codec interface {
	// Encode writes the fields of m in insertion order
	Encode(m *Message) ([]byte, error)
	// EncodeToText is Encode followed by the text transport
	EncodeToText(m *Message) (string, error)
	// Decode reads fields until data is exhausted
	Decode(data []byte) (*Message, error)
	// DecodeFromText reverses the text transport, then decodes
	DecodeFromText(text string) (*Message, error)
	// Config returns the configuration the codec was built with
	Config() Config
}

type codec struct {
	config Config
	wire   wire.Config
	text   *transport.Encoding
}

// New creates a Codec for cfg
func New(cfg Config) Codec {
	return &codec{
		config: cfg,
		wire:   wire.Config{RejectDuplicateFields: cfg.RejectDuplicateFields},
		text:   transport.NewEncoding(cfg.TextAlphabet, cfg.TextPadding),
	}
}

var defaultCodec = New(Config{})

// Default returns the codec used by the package-level functions
func Default() Codec { return defaultCodec }

func (c *codec) Config() Config { return c.config }

func (c *codec) Encode(m *Message) ([]byte, error) {
	return wire.EncodeMessage(m)
}

func (c *codec) EncodeToText(m *Message) (string, error) {
	data, err := c.Encode(m)
	if err != nil {
		return "", err
	}
	return c.text.EncodeToString(data), nil
}

func (c *codec) Decode(data []byte) (*Message, error) {
	return wire.DecodeMessageWithConfig(data, c.wire)
}

func (c *codec) DecodeFromText(text string) (*Message, error) {
	data, err := c.text.DecodeString(text)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// ===== PACKAGE-LEVEL API =====

// Encode encodes m with the default codec
func Encode(m *Message) ([]byte, error) { return defaultCodec.Encode(m) }

// EncodeToText encodes m and maps the bytes to standard padded text
func EncodeToText(m *Message) (string, error) { return defaultCodec.EncodeToText(m) }

// Decode decodes data with the default codec
func Decode(data []byte) (*Message, error) { return defaultCodec.Decode(data) }

// DecodeFromText maps standard padded text back to bytes and decodes them
func DecodeFromText(text string) (*Message, error) { return defaultCodec.DecodeFromText(text) }

// FromMap builds a message from a dynamically typed map, in ascending field
// number order since Go maps are unordered. Values go through wire.FromAny.
func FromMap(fields map[FieldNumber]any) (*Message, error) {
	numbers := make([]FieldNumber, 0, len(fields))
	for n := range fields {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	m := wire.NewMessage()
	for _, n := range numbers {
		v, err := wire.FromAny(fields[n])
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", n, err)
		}
		m.Set(n, v)
	}
	return m, nil
}
