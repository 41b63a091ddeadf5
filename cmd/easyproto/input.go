package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/anirudhraja/easyproto/wire"
)

// readInput reads path, or stdin when path is "-"
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// parseAssignments builds a message from N=V and N:=V arguments. N=V stores
// an integer when V parses as one and text otherwise; N:=V always stores text.
func parseAssignments(args []string) (*wire.Message, error) {
	m := wire.NewMessage()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q is not N=VALUE", arg)
		}

		forceText := strings.HasSuffix(key, ":")
		key = strings.TrimSuffix(key, ":")

		n, err := parseFieldNumber(key)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", arg, err)
		}

		if u, err := strconv.ParseUint(value, 10, 64); err == nil && !forceText {
			m.Set(n, wire.Uint(u))
			continue
		}
		m.Set(n, wire.Text(value))
	}
	return m, nil
}

// parseJSONMessage reads a JSON object whose keys are field numbers. Comments
// and trailing commas are allowed, and key order is kept.
func parseJSONMessage(data []byte) (*wire.Message, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("parse input: expected a JSON object")
	}

	m := wire.NewMessage()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse input: %w", err)
		}
		key, _ := tok.(string)
		n, err := parseFieldNumber(key)
		if err != nil {
			return nil, fmt.Errorf("parse input: %w", err)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse input: field %d: %w", n, err)
		}
		v, err := wire.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("parse input: field %d: %w", n, err)
		}
		m.Set(n, v)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("parse input: unexpected data after object")
	}
	return m, nil
}

func parseFieldNumber(s string) (wire.FieldNumber, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid field number %q", s)
	}
	if wire.FieldNumber(n) > wire.MaxFieldNumber {
		return 0, fmt.Errorf("%w: %d", wire.ErrFieldNumber, n)
	}
	return wire.FieldNumber(n), nil
}
