package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/anirudhraja/easyproto/wire"
)

// writeMessage prints m as a JSON or YAML object keyed by field number, in
// wire order
func writeMessage(w io.Writer, m *wire.Message, format string) error {
	switch format {
	case "yaml":
		return writeYAML(w, m)
	case "json", "":
		return writeJSON(w, m)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, m *wire.Message) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := json.Marshal(f.Value.Interface())
		if err != nil {
			return err
		}
		buf.WriteString(strconv.Quote(strconv.FormatUint(uint64(f.Number), 10)))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

func writeYAML(w io.Writer, m *wire.Message) error {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m.Len() == 0 {
		doc.Style = yaml.FlowStyle
	}
	m.Range(func(n wire.FieldNumber, v wire.Value) bool {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(uint64(n), 10)}
		value := &yaml.Node{Kind: yaml.ScalarNode}
		if s, ok := v.Text(); ok {
			value.Tag = "!!str"
			value.Value = s
		} else {
			u, _ := v.Uint()
			value.Tag = "!!int"
			value.Value = strconv.FormatUint(u, 10)
		}
		doc.Content = append(doc.Content, key, value)
		return true
	})

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
