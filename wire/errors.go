package wire

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this package wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrUnsupportedValueType = errors.New("unsupported value type")
	ErrUnsupportedWireType  = errors.New("unsupported wire type")
	ErrOutOfBounds          = errors.New("unexpected end of buffer")
	ErrInvalidUTF8          = errors.New("invalid UTF-8 in length-delimited field")
	ErrVarintOverflow       = errors.New("varint overflows 64 bits")
	ErrFieldNumber          = errors.New("field number out of range")
	ErrDuplicateField       = errors.New("duplicate field number")
)

// FieldError reports which field an encoding/decoding error belongs to.
type FieldError struct {
	Number FieldNumber // field the error occurred in
	Offset int         // byte offset where the field starts
	Err    error       // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %d at offset %d: %v", e.Number, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// wrapWithField attaches field context to err. Errors that already carry it
// are returned as is.
func wrapWithField(err error, number FieldNumber, offset int) error {
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return err
	}

	return &FieldError{
		Number: number,
		Offset: offset,
		Err:    err,
	}
}

// outOfBounds builds an ErrOutOfBounds with the shortfall spelled out
func outOfBounds(what string, need, have int) error {
	return fmt.Errorf("%w: %s needs %d bytes, have %d", ErrOutOfBounds, what, need, have)
}
