package wire

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindInvalid Kind = iota // zero Value, never encodable
	KindUint                // unsigned integer
	KindText                // UTF-8 text
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindText:
		return "text"
	default:
		return "invalid"
	}
}

// Value is a scalar field value: either an unsigned integer or text.
// Values are comparable with ==.
type Value struct {
	kind Kind
	num  uint64
	str  string
}

// Uint returns an integer Value
func Uint(v uint64) Value {
	return Value{kind: KindUint, num: v}
}

// Text returns a text Value
func Text(s string) Value {
	return Value{kind: KindText, str: s}
}

// Kind returns the variant held by v
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was built by Uint or Text
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Uint returns the integer held by v and whether v is an integer
func (v Value) Uint() (uint64, bool) {
	return v.num, v.kind == KindUint
}

// Text returns the string held by v and whether v is text
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindText
}

// Interface returns v as uint64, string or nil
func (v Value) Interface() any {
	switch v.kind {
	case KindUint:
		return v.num
	case KindText:
		return v.str
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindUint:
		return strconv.FormatUint(v.num, 10)
	case KindText:
		return strconv.Quote(v.str)
	default:
		return "<invalid>"
	}
}

// FromAny converts a dynamically typed value into a Value. Only non-negative
// integers, strings and integral json.Numbers are accepted.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		if !t.IsValid() {
			return Value{}, fmt.Errorf("%w: zero Value", ErrUnsupportedValueType)
		}
		return t, nil
	case string:
		return Text(t), nil
	case uint:
		return Uint(uint64(t)), nil
	case uint8:
		return Uint(uint64(t)), nil
	case uint16:
		return Uint(uint64(t)), nil
	case uint32:
		return Uint(uint64(t)), nil
	case uint64:
		return Uint(t), nil
	case int:
		return fromSigned(int64(t))
	case int8:
		return fromSigned(int64(t))
	case int16:
		return fromSigned(int64(t))
	case int32:
		return fromSigned(int64(t))
	case int64:
		return fromSigned(t)
	case json.Number:
		uv, err := strconv.ParseUint(t.String(), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: number %s is not a non-negative integer", ErrUnsupportedValueType, t)
		}
		return Uint(uv), nil
	case nil:
		return Value{}, fmt.Errorf("%w: nil", ErrUnsupportedValueType)
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValueType, x)
	}
}

func fromSigned(v int64) (Value, error) {
	if v < 0 {
		return Value{}, fmt.Errorf("%w: negative integer %d", ErrUnsupportedValueType, v)
	}
	return Uint(uint64(v)), nil
}

// fitsFixed32 reports whether v can be written as a fixed32 payload
func fitsFixed32(v uint64) bool {
	return v <= math.MaxUint32
}
