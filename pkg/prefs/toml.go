package prefs

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOML is the structured-text Codec used by desktop-style storage.
// Encoding goes through an intermediate map, so keys are emitted in
// BurntSushi's sorted order; decoding rebuilds entry order from the file
// via toml.MetaData, so a hand-edited file keeps its shape in memory.
type TOML struct{}

func (TOML) Ext() string { return "toml" }

func (TOML) Encode(g *Group) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlTree(g)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (TOML) Decode(data []byte) (*Group, error) {
	var m map[string]any
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, err
	}
	root := NewGroup()
	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		raw, ok := lookupTOML(m, key)
		if !ok {
			continue
		}
		if _, isTable := raw.(map[string]any); isTable {
			if _, err := tomlGroupPath(root, key); err != nil {
				return nil, err
			}
			continue
		}
		parent, err := tomlGroupPath(root, key[:len(key)-1])
		if err != nil {
			return nil, err
		}
		v, err := tomlValue(raw)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key.String(), err)
		}
		parent.put(key[len(key)-1], node{value: v})
	}
	return root, nil
}

// tomlTree converts a group into the map form the TOML encoder consumes.
func tomlTree(g *Group) map[string]any {
	m := make(map[string]any, len(g.names))
	for _, name := range g.names {
		n := g.nodes[name]
		if n.group != nil {
			m[name] = tomlTree(n.group)
			continue
		}
		switch v := n.value; v.kind {
		case KindBool:
			m[name] = v.b
		case KindInt:
			m[name] = v.i[0]
		case KindFloat:
			m[name] = v.f[0]
		case KindString:
			m[name] = v.s
		case KindVec2i:
			m[name] = []int64{v.i[0], v.i[1]}
		case KindVec3i:
			m[name] = []int64{v.i[0], v.i[1], v.i[2]}
		case KindVec2f:
			m[name] = []float64{v.f[0], v.f[1]}
		case KindVec3f:
			m[name] = []float64{v.f[0], v.f[1], v.f[2]}
		}
	}
	return m
}

// tomlGroupPath walks (and creates) nested groups along a key path.
func tomlGroupPath(root *Group, path []string) (*Group, error) {
	g := root
	for _, seg := range path {
		n, ok := g.nodes[seg]
		if !ok {
			child := NewGroup()
			g.put(seg, node{group: child})
			g = child
			continue
		}
		if n.group == nil {
			return nil, fmt.Errorf("key %q is both a value and a table", seg)
		}
		g = n.group
	}
	return g, nil
}

// lookupTOML fetches the decoded value at a key path.
func lookupTOML(m map[string]any, key []string) (any, bool) {
	cur := any(m)
	for _, seg := range key {
		t, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = t[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// tomlValue maps a decoded TOML scalar or array onto the closed value set.
func tomlValue(raw any) (Value, error) {
	switch t := raw.(type) {
	case bool:
		return Bool(t), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case []int64:
		return intVec(t)
	case []float64:
		return floatVec(t)
	case []any:
		return sliceVec(t)
	default:
		return Value{}, fmt.Errorf("unsupported TOML value %T", raw)
	}
}

// sliceVec classifies a heterogeneously decoded array as an int or float
// vector of length 2 or 3.
func sliceVec(elems []any) (Value, error) {
	ints := make([]int64, 0, len(elems))
	floats := make([]float64, 0, len(elems))
	for _, e := range elems {
		switch n := e.(type) {
		case int64:
			ints = append(ints, n)
		case float64:
			floats = append(floats, n)
		default:
			return Value{}, fmt.Errorf("unsupported array element %T", e)
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

func intVec(v []int64) (Value, error) {
	switch len(v) {
	case 2:
		return Vec2i(v[0], v[1]), nil
	case 3:
		return Vec3i(v[0], v[1], v[2]), nil
	default:
		return Value{}, fmt.Errorf("integer array of length %d is not a vector", len(v))
	}
}

func floatVec(v []float64) (Value, error) {
	switch len(v) {
	case 2:
		return Vec2f(v[0], v[1]), nil
	case 3:
		return Vec3f(v[0], v[1], v[2]), nil
	default:
		return Value{}, fmt.Errorf("float array of length %d is not a vector", len(v))
	}
}

// Compile-time interface check.
var _ Codec = TOML{}
