// Package transport maps wire bytes to printable text and back, so payloads
// can travel through channels that only carry text. The mapping is the
// 64-symbol radix transform: every 3 input bytes become 4 characters.
package transport

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEncoding is returned when text is not a valid encoding: a
// character outside the alphabet, a bad length, or misplaced padding.
var ErrInvalidEncoding = errors.New("invalid text encoding")

// Alphabet selects the 64 symbols used for output
type Alphabet int

const (
	// AlphabetStd is A-Z a-z 0-9 + /
	AlphabetStd Alphabet = iota
	// AlphabetURL is A-Z a-z 0-9 - _
	AlphabetURL
)

func (a Alphabet) String() string {
	switch a {
	case AlphabetStd:
		return "std"
	case AlphabetURL:
		return "url"
	default:
		return fmt.Sprintf("alphabet(%d)", int(a))
	}
}

// ParseAlphabet parses "std" or "url"
func ParseAlphabet(s string) (Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "std", "standard":
		return AlphabetStd, nil
	case "url":
		return AlphabetURL, nil
	default:
		return 0, fmt.Errorf("unknown alphabet %q", s)
	}
}

// Padding controls how the final partial group is written and read
type Padding int

const (
	// PaddingStrict writes '=' and requires it on input
	PaddingStrict Padding = iota
	// PaddingLenient writes '=' but also accepts input without it
	PaddingLenient
	// PaddingNone never writes '=' and rejects it on input
	PaddingNone
)

func (p Padding) String() string {
	switch p {
	case PaddingStrict:
		return "strict"
	case PaddingLenient:
		return "lenient"
	case PaddingNone:
		return "none"
	default:
		return fmt.Sprintf("padding(%d)", int(p))
	}
}

// ParsePadding parses "strict", "lenient" or "none"
func ParsePadding(s string) (Padding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return PaddingStrict, nil
	case "lenient":
		return PaddingLenient, nil
	case "none":
		return PaddingNone, nil
	default:
		return 0, fmt.Errorf("unknown padding mode %q", s)
	}
}

// Encoding is a text mapping. It holds no mutable state and is safe for
// concurrent use.
type Encoding struct {
	alphabet Alphabet
	padding  Padding
	enc      *base64.Encoding
}

// StdEncoding uses the standard alphabet with strict '=' padding
var StdEncoding = NewEncoding(AlphabetStd, PaddingStrict)

// NewEncoding returns an Encoding for the given alphabet and padding mode
func NewEncoding(alphabet Alphabet, padding Padding) *Encoding {
	enc := base64.StdEncoding
	if alphabet == AlphabetURL {
		enc = base64.URLEncoding
	}
	if padding == PaddingNone {
		enc = enc.WithPadding(base64.NoPadding)
	}
	return &Encoding{
		alphabet: alphabet,
		padding:  padding,
		enc:      enc.Strict(),
	}
}

// Alphabet returns the alphabet e writes
func (e *Encoding) Alphabet() Alphabet { return e.alphabet }

// Padding returns the padding mode of e
func (e *Encoding) Padding() Padding { return e.padding }

// EncodeToString returns the text form of data
func (e *Encoding) EncodeToString(data []byte) string {
	return e.enc.EncodeToString(data)
}

// DecodeString returns the bytes represented by s. Every failure wraps
// ErrInvalidEncoding.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	// base64 silently drops line breaks; they are not part of the alphabet.
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return nil, fmt.Errorf("%w: line break at input byte %d", ErrInvalidEncoding, i)
	}

	if e.padding == PaddingLenient {
		s = padToGroup(s)
	}

	data, err := e.enc.DecodeString(s)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, fmt.Errorf("%w: illegal data at input byte %d", ErrInvalidEncoding, int64(corrupt))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return data, nil
}

// padToGroup appends '=' until len(s) is a multiple of 4. Input that
// already ends in padding is left alone so malformed padding still fails.
func padToGroup(s string) string {
	if strings.HasSuffix(s, string(base64.StdPadding)) {
		return s
	}
	if rem := len(s) % 4; rem != 0 {
		return s + strings.Repeat(string(base64.StdPadding), 4-rem)
	}
	return s
}
