package wire

import (
	"fmt"
	"unicode/utf8"
)

// DECODER METHODS

// DecodeRawBytes decodes a length-delimited payload without copying; the
// result shares the decoder's buffer
func (d *Decoder) DecodeRawBytes() ([]byte, error) {
	length, err := d.DecodeVarint()
	if err != nil {
		return nil, fmt.Errorf("decode length: %w", err)
	}

	remaining := len(d.buf) - d.pos
	if length > uint64(remaining) {
		return nil, fmt.Errorf("%w: length-delimited payload needs %d bytes, have %d", ErrOutOfBounds, length, remaining)
	}

	data := d.buf[d.pos : d.pos+int(length)]
	d.pos += int(length)
	return data, nil
}

// DecodeString decodes a length-delimited UTF-8 string
func (d *Decoder) DecodeString() (string, error) {
	data, err := d.DecodeRawBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

// ENCODER METHODS

// EncodeString encodes a string as length-delimited bytes
func (e *Encoder) EncodeString(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	e.EncodeVarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
	return nil
}

// UTILITY FUNCTIONS

// StringSize returns the size needed to encode the given string
func StringSize(s string) int {
	return VarintSize(uint64(len(s))) + len(s)
}
