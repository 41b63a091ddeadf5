package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var valueComparer = cmp.Comparer(func(a, b Value) bool { return a == b })

func johnDoe() *Message {
	return NewMessage(
		Field{Number: 1, Value: Uint(150)},
		Field{Number: 2, Value: Text("John Doe")},
		Field{Number: 3, Value: Uint(1)},
	)
}

var johnDoeBytes = []byte{
	0x08, 0x96, 0x01,
	0x12, 0x08, 'J', 'o', 'h', 'n', ' ', 'D', 'o', 'e',
	0x18, 0x01,
}

func TestEncodeMessage_ReferenceScenario(t *testing.T) {
	got, err := EncodeMessage(johnDoe())
	if err != nil {
		t.Fatalf("EncodeMessage failed: %v", err)
	}
	if !bytes.Equal(got, johnDoeBytes) {
		t.Errorf("got % x\nwant % x", got, johnDoeBytes)
	}

	decoded, err := DecodeMessage(got)
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	if diff := cmp.Diff(johnDoe().Fields(), decoded.Fields(), valueComparer); diff != "" {
		t.Errorf("decoded message mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeMessage_InsertionOrder(t *testing.T) {
	m := NewMessage(
		Field{Number: 3, Value: Uint(1)},
		Field{Number: 1, Value: Uint(2)},
	)

	got, err := EncodeMessage(m)
	if err != nil {
		t.Fatalf("EncodeMessage failed: %v", err)
	}
	want := []byte{0x18, 0x01, 0x08, 0x02}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestEncodeMessage_Empty(t *testing.T) {
	for name, m := range map[string]*Message{"nil": nil, "zero": {}, "new": NewMessage()} {
		t.Run(name, func(t *testing.T) {
			got, err := EncodeMessage(m)
			if err != nil {
				t.Fatalf("EncodeMessage failed: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected no bytes, got % x", got)
			}

			decoded, err := DecodeMessage(got)
			if err != nil {
				t.Fatalf("DecodeMessage failed: %v", err)
			}
			if decoded.Len() != 0 {
				t.Errorf("expected empty message, got %s", decoded)
			}
		})
	}
}

func TestEncodeMessage_RejectsInvalidValue(t *testing.T) {
	m := NewMessage(
		Field{Number: 1, Value: Uint(1)},
		Field{Number: 2, Value: Value{}},
	)

	_, err := EncodeMessage(m)
	if !errors.Is(err, ErrUnsupportedValueType) {
		t.Fatalf("expected ErrUnsupportedValueType, got %v", err)
	}

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Number != 2 || fieldErr.Offset != 2 {
		t.Errorf("expected FieldError for field 2 at offset 2, got %v", err)
	}
}

func TestMessageEncoder_LeavesBufferOnError(t *testing.T) {
	e := NewEncoder()
	e.EncodeVarint(7)

	bad := NewMessage(Field{Number: 1, Value: Uint(1)}, Field{Number: 2, Value: Text("\xff")})
	if err := NewMessageEncoder(e).EncodeMessage(bad); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if !bytes.Equal(e.Bytes(), []byte{0x07}) {
		t.Errorf("encoder holds partial output: % x", e.Bytes())
	}
}

func TestDecodeMessage_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
	}{
		{"single integer", NewMessage(Field{Number: 1, Value: Uint(0)})},
		{"single text", NewMessage(Field{Number: 5, Value: Text("")})},
		{"unordered numbers", NewMessage(
			Field{Number: 100, Value: Text("hundred")},
			Field{Number: 2, Value: Uint(1 << 40)},
			Field{Number: 0, Value: Uint(7)},
		)},
		{"large values", NewMessage(
			Field{Number: MaxFieldNumber, Value: Uint(^uint64(0))},
			Field{Number: 1 << 20, Value: Text("日本語テキスト")},
		)},
		{"long text", NewMessage(Field{Number: 9, Value: Text(string(bytes.Repeat([]byte("abc"), 1000)))})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeMessage(tt.msg)
			if err != nil {
				t.Fatalf("EncodeMessage failed: %v", err)
			}

			decoded, err := DecodeMessage(encoded)
			if err != nil {
				t.Fatalf("DecodeMessage failed: %v", err)
			}
			if !decoded.Equal(tt.msg) {
				t.Errorf("round trip mismatch: got %s, want %s", decoded, tt.msg)
			}
			if diff := cmp.Diff(tt.msg.Fields(), decoded.Fields(), valueComparer); diff != "" {
				t.Errorf("field order changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeMessage_DuplicateFields(t *testing.T) {
	// field 1 = 1, field 2 = "a", field 1 = 2
	data := []byte{0x08, 0x01, 0x12, 0x01, 'a', 0x08, 0x02}

	t.Run("last write wins", func(t *testing.T) {
		m, err := DecodeMessage(data)
		if err != nil {
			t.Fatalf("DecodeMessage failed: %v", err)
		}
		want := []Field{{Number: 1, Value: Uint(2)}, {Number: 2, Value: Text("a")}}
		if diff := cmp.Diff(want, m.Fields(), valueComparer); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		_, err := DecodeMessageWithConfig(data, Config{RejectDuplicateFields: true})
		if !errors.Is(err, ErrDuplicateField) {
			t.Fatalf("expected ErrDuplicateField, got %v", err)
		}
		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) || fieldErr.Number != 1 || fieldErr.Offset != 5 {
			t.Errorf("expected FieldError for field 1 at offset 5, got %v", err)
		}
	})
}

func TestDecodeMessage_ConcatenationMerges(t *testing.T) {
	first, err := EncodeMessage(NewMessage(Field{Number: 1, Value: Uint(1)}, Field{Number: 2, Value: Text("x")}))
	if err != nil {
		t.Fatal(err)
	}
	second, err := EncodeMessage(NewMessage(Field{Number: 1, Value: Uint(9)}, Field{Number: 3, Value: Uint(3)}))
	if err != nil {
		t.Fatal(err)
	}

	merged, err := DecodeMessage(append(first, second...))
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	want := NewMessage(
		Field{Number: 1, Value: Uint(9)},
		Field{Number: 2, Value: Text("x")},
		Field{Number: 3, Value: Uint(3)},
	)
	if !merged.Equal(want) {
		t.Errorf("got %s, want %s", merged, want)
	}
}

func TestDecodeMessage_Truncated(t *testing.T) {
	// Every proper prefix of the reference bytes that ends inside a field
	// must fail; prefixes ending on a field boundary decode cleanly.
	boundaries := map[int]bool{0: true, 3: true, 13: true, 15: true}
	for i := 0; i <= len(johnDoeBytes); i++ {
		_, err := DecodeMessage(johnDoeBytes[:i])
		if boundaries[i] {
			if err != nil {
				t.Errorf("prefix of %d bytes: unexpected error %v", i, err)
			}
			continue
		}
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("prefix of %d bytes: expected ErrOutOfBounds, got %v", i, err)
		}
	}
}

func TestDecodeMessage_FixedWidthFields(t *testing.T) {
	data, err := AppendField(nil, 1, WireFixed64, Uint(99))
	if err != nil {
		t.Fatal(err)
	}
	data, err = AppendField(data, 2, WireFixed32, Uint(7))
	if err != nil {
		t.Fatal(err)
	}

	m, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}
	want := NewMessage(Field{Number: 1, Value: Uint(99)}, Field{Number: 2, Value: Uint(7)})
	if !m.Equal(want) {
		t.Errorf("got %s, want %s", m, want)
	}
}

func TestMessage_Operations(t *testing.T) {
	var m Message

	if m.Has(1) {
		t.Fatal("zero message should be empty")
	}

	m.Set(1, Uint(1))
	m.Set(2, Text("two"))
	m.Set(3, Uint(3))
	m.Set(1, Uint(10))

	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}
	if v, ok := m.Get(1); !ok || v != Uint(10) {
		t.Errorf("Get(1) = %s, %v", v, ok)
	}
	if got := m.String(); got != `{1: 10, 2: "two", 3: 3}` {
		t.Errorf("String = %s", got)
	}

	m.Delete(2)
	m.Delete(42)
	if m.Has(2) || m.Len() != 2 {
		t.Errorf("Delete(2) left %s", m.String())
	}
	if v, ok := m.Get(3); !ok || v != Uint(3) {
		t.Errorf("index not rebuilt after Delete: Get(3) = %s, %v", v, ok)
	}

	var visited []FieldNumber
	m.Range(func(n FieldNumber, _ Value) bool {
		visited = append(visited, n)
		return false
	})
	if len(visited) != 1 || visited[0] != 1 {
		t.Errorf("Range did not stop early: %v", visited)
	}
}

func TestMessage_Equal(t *testing.T) {
	a := NewMessage(Field{Number: 1, Value: Uint(1)}, Field{Number: 2, Value: Text("b")})
	b := NewMessage(Field{Number: 2, Value: Text("b")}, Field{Number: 1, Value: Uint(1)})
	c := NewMessage(Field{Number: 1, Value: Text("1")}, Field{Number: 2, Value: Text("b")})

	if !a.Equal(b) {
		t.Error("order should not matter for Equal")
	}
	if a.Equal(c) {
		t.Error("integer 1 and text \"1\" must differ")
	}
	if a.Equal(nil) || !(*Message)(nil).Equal(NewMessage()) {
		t.Error("nil handling in Equal is wrong")
	}
}
