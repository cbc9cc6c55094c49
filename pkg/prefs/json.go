package prefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// JSON is the web-idiomatic Codec used by key-value style storage. It
// walks the tree by hand rather than through an intermediate map so entry
// order survives both directions, and it keeps the int/float distinction
// by writing integral floats with a trailing ".0" and reading numbers
// with json.Number.
type JSON struct{}

func (JSON) Ext() string { return "json" }

func (JSON) Encode(g *Group) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONGroup(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (JSON) Decode(data []byte) (*Group, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("top-level JSON value must be an object, got %v", tok)
	}
	root := NewGroup()
	if err := readJSONObject(dec, root); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON object")
	}
	return root, nil
}

func writeJSONGroup(buf *bytes.Buffer, g *Group) error {
	buf.WriteByte('{')
	for i, name := range g.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		n := g.nodes[name]
		if n.group != nil {
			if err := writeJSONGroup(buf, n.group); err != nil {
				return err
			}
			continue
		}
		if err := writeJSONValue(buf, n.value); err != nil {
			return fmt.Errorf("key %q: %w", name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i[0], 10))
	case KindFloat:
		return writeJSONFloat(buf, v.f[0])
	case KindString:
		s, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(s)
	case KindVec2i, KindVec3i:
		buf.WriteByte('[')
		for i := 0; i < vecLen(v.kind); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatInt(v.i[i], 10))
		}
		buf.WriteByte(']')
	case KindVec2f, KindVec3f:
		buf.WriteByte('[')
		for i := 0; i < vecLen(v.kind); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONFloat(buf, v.f[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unsupported value kind %v", v.kind)
	}
	return nil
}

// writeJSONFloat formats a float so it re-reads as a float: integral
// values get a ".0" suffix, and non-finite values are rejected since JSON
// cannot represent them.
func writeJSONFloat(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("cannot encode non-finite float %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	buf.WriteString(s)
	return nil
}

func vecLen(k Kind) int {
	if k == KindVec2i || k == KindVec2f {
		return 2
	}
	return 3
}

// readJSONObject consumes key/value pairs up to and including the closing
// brace, filling the group in file order.
func readJSONObject(dec *json.Decoder, g *Group) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("object key is not a string: %v", tok)
		}
		if g.Has(name) {
			return fmt.Errorf("duplicate key %q", name)
		}
		if err := readJSONEntry(dec, g, name); err != nil {
			return err
		}
	}
	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func readJSONEntry(dec *json.Decoder, g *Group, name string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			child := NewGroup()
			g.put(name, node{group: child})
			return readJSONObject(dec, child)
		case '[':
			v, err := readJSONVector(dec)
			if err != nil {
				return fmt.Errorf("key %q: %w", name, err)
			}
			g.put(name, node{value: v})
			return nil
		default:
			return fmt.Errorf("key %q: unexpected %v", name, t)
		}
	case bool:
		g.put(name, node{value: Bool(t)})
	case string:
		g.put(name, node{value: String(t)})
	case json.Number:
		v, err := jsonNumber(t)
		if err != nil {
			return fmt.Errorf("key %q: %w", name, err)
		}
		g.put(name, node{value: v})
	default:
		return fmt.Errorf("key %q: unsupported JSON value %v", name, tok)
	}
	return nil
}

// readJSONVector consumes array elements up to and including the closing
// bracket and classifies them as an int or float vector.
func readJSONVector(dec *json.Decoder) (Value, error) {
	var elems []Value
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		num, ok := tok.(json.Number)
		if !ok {
			return Value{}, fmt.Errorf("array element %v is not a number", tok)
		}
		v, err := jsonNumber(num)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	// Closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	ints := make([]int64, 0, len(elems))
	floats := make([]float64, 0, len(elems))
	for _, e := range elems {
		if e.kind == KindInt {
			ints = append(ints, e.i[0])
		} else {
			floats = append(floats, e.f[0])
		}
	}
	switch {
	case len(floats) == 0:
		return intVec(ints)
	case len(ints) == 0:
		return floatVec(floats)
	default:
		return Value{}, fmt.Errorf("mixed int/float array")
	}
}

// jsonNumber maps a literal onto Int or Float by its spelling: a decimal
// point or exponent means float, matching the encoder's convention.
func jsonNumber(n json.Number) (Value, error) {
	if strings.ContainsAny(n.String(), ".eE") {
		f, err := n.Float64()
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	}
	i, err := n.Int64()
	if err != nil {
		return Value{}, err
	}
	return Int(i), nil
}

// Compile-time interface check.
var _ Codec = JSON{}
