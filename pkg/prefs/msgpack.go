package prefs

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Msgpack is a compact binary Codec intended for key-value backends, where
// nobody edits the stored blob by hand. MessagePack tags ints, floats,
// strings, and bools natively and maps preserve entry order, so the walk
// is a direct streaming transcription of the tree.
type Msgpack struct{}

func (Msgpack) Ext() string { return "msgpack" }

func (Msgpack) Encode(g *Group) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := writeMsgpackGroup(enc, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack) Decode(data []byte) (*Group, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	root := NewGroup()
	if err := readMsgpackGroup(dec, root); err != nil {
		return nil, err
	}
	return root, nil
}

func writeMsgpackGroup(enc *msgpack.Encoder, g *Group) error {
	if err := enc.EncodeMapLen(len(g.names)); err != nil {
		return err
	}
	for _, name := range g.names {
		if err := enc.EncodeString(name); err != nil {
			return err
		}
		n := g.nodes[name]
		if n.group != nil {
			if err := writeMsgpackGroup(enc, n.group); err != nil {
				return err
			}
			continue
		}
		if err := writeMsgpackValue(enc, n.value); err != nil {
			return fmt.Errorf("key %q: %w", name, err)
		}
	}
	return nil
}

func writeMsgpackValue(enc *msgpack.Encoder, v Value) error {
	switch v.kind {
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindInt:
		return enc.EncodeInt(v.i[0])
	case KindFloat:
		return enc.EncodeFloat64(v.f[0])
	case KindString:
		return enc.EncodeString(v.s)
	case KindVec2i, KindVec3i:
		if err := enc.EncodeArrayLen(vecLen(v.kind)); err != nil {
			return err
		}
		for i := 0; i < vecLen(v.kind); i++ {
			if err := enc.EncodeInt(v.i[i]); err != nil {
				return err
			}
		}
		return nil
	case KindVec2f, KindVec3f:
		if err := enc.EncodeArrayLen(vecLen(v.kind)); err != nil {
			return err
		}
		for i := 0; i < vecLen(v.kind); i++ {
			if err := enc.EncodeFloat64(v.f[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value kind %v", v.kind)
	}
}

func readMsgpackGroup(dec *msgpack.Decoder, g *Group) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		name, err := dec.DecodeString()
		if err != nil {
			return err
		}
		if g.Has(name) {
			return fmt.Errorf("duplicate key %q", name)
		}
		c, err := dec.PeekCode()
		if err != nil {
			return err
		}
		if isMsgpackMap(c) {
			child := NewGroup()
			g.put(name, node{group: child})
			if err := readMsgpackGroup(dec, child); err != nil {
				return err
			}
			continue
		}
		v, err := readMsgpackValue(dec, c)
		if err != nil {
			return fmt.Errorf("key %q: %w", name, err)
		}
		g.put(name, node{value: v})
	}
	return nil
}

func readMsgpackValue(dec *msgpack.Decoder, c byte) (Value, error) {
	switch {
	case c == msgpcode.True || c == msgpcode.False:
		b, err := dec.DecodeBool()
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case isMsgpackInt(c):
		i, err := dec.DecodeInt64()
		if err != nil {
			return Value{}, err
		}
		return Int(i), nil
	case c == msgpcode.Float || c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case isMsgpackArray(c):
		return readMsgpackVector(dec)
	default:
		return Value{}, fmt.Errorf("unsupported msgpack code 0x%02x", c)
	}
}

func readMsgpackVector(dec *msgpack.Decoder) (Value, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return Value{}, err
	}
	var ints []int64
	var floats []float64
	for i := 0; i < n; i++ {
		c, err := dec.PeekCode()
		if err != nil {
			return Value{}, err
		}
		switch {
		case isMsgpackInt(c):
			v, err := dec.DecodeInt64()
			if err != nil {
				return Value{}, err
			}
			ints = append(ints, v)
		case c == msgpcode.Float || c == msgpcode.Double:
			v, err := dec.DecodeFloat64()
			if err != nil {
				return Value{}, err
			}
			floats = append(floats, v)
		default:
			return Value{}, fmt.Errorf("array element code 0x%02x is not a number", c)
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

func isMsgpackMap(c byte) bool {
	return msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32
}

func isMsgpackArray(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

func isMsgpackInt(c byte) bool {
	if msgpcode.IsFixedNum(c) {
		return true
	}
	switch c {
	case msgpcode.Int8, msgpcode.Int16, msgpcode.Int32, msgpcode.Int64,
		msgpcode.Uint8, msgpcode.Uint16, msgpcode.Uint32, msgpcode.Uint64:
		return true
	}
	return false
}

// Compile-time interface check.
var _ Codec = Msgpack{}
