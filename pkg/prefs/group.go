package prefs

import (
	"math"
	"slices"
)

// Group is an ordered mapping from name to either a Value or a nested
// Group. Names are unique within a group; insertion order is preserved and
// is the order codecs and listings observe.
//
// Typed getters return the zero value and false when the name is absent or
// holds an incompatible type; that is never an error. Setters compare
// against the current value and report whether anything actually changed,
// and every mutation recomputes the owning file's dirty flag. Read-only
// accessors never mutate state.
type Group struct {
	names []string
	nodes map[string]node
	file  *File // owning file; nil for detached trees (snapshots, decoding)
}

// node is one entry: a nested group when group != nil, a value otherwise.
type node struct {
	group *Group
	value Value
}

// NewGroup returns an empty detached group. Codec implementations use it
// to build decoded trees; application code normally obtains groups from a
// File instead.
func NewGroup() *Group {
	return &Group{nodes: make(map[string]node)}
}

// Len returns the number of entries.
func (g *Group) Len() int { return len(g.nodes) }

// Names returns the entry names in insertion order.
func (g *Group) Names() []string { return slices.Clone(g.names) }

// Has reports whether the name is present (as either a value or a group).
func (g *Group) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Value returns the raw tagged value for a name. Nested groups and absent
// names report false.
func (g *Group) Value(name string) (Value, bool) {
	n, ok := g.nodes[name]
	if !ok || n.group != nil {
		return Value{}, false
	}
	return n.value, true
}

// Bool reads a boolean entry.
func (g *Group) Bool(name string) (bool, bool) {
	v, ok := g.value(name, KindBool)
	return v.b, ok
}

// Int reads an integer entry.
func (g *Group) Int(name string) (int64, bool) {
	v, ok := g.value(name, KindInt)
	return v.i[0], ok
}

// Float reads a float entry.
func (g *Group) Float(name string) (float64, bool) {
	v, ok := g.value(name, KindFloat)
	return v.f[0], ok
}

// String reads a string entry.
func (g *Group) String(name string) (string, bool) {
	v, ok := g.value(name, KindString)
	return v.s, ok
}

// IVec2 reads an integer pair whose components fit in int32.
func (g *Group) IVec2(name string) ([2]int32, bool) {
	v, ok := g.value(name, KindVec2i)
	if !ok || !fitsInt32(v.i[0]) || !fitsInt32(v.i[1]) {
		return [2]int32{}, false
	}
	return [2]int32{int32(v.i[0]), int32(v.i[1])}, true
}

// UVec2 reads an integer pair whose components fit in uint32.
func (g *Group) UVec2(name string) ([2]uint32, bool) {
	v, ok := g.value(name, KindVec2i)
	if !ok || !fitsUint32(v.i[0]) || !fitsUint32(v.i[1]) {
		return [2]uint32{}, false
	}
	return [2]uint32{uint32(v.i[0]), uint32(v.i[1])}, true
}

// Vec2 reads a float pair.
func (g *Group) Vec2(name string) ([2]float64, bool) {
	v, ok := g.value(name, KindVec2f)
	if !ok {
		return [2]float64{}, false
	}
	return [2]float64{v.f[0], v.f[1]}, true
}

// IVec3 reads an integer triple whose components fit in int32.
func (g *Group) IVec3(name string) ([3]int32, bool) {
	v, ok := g.value(name, KindVec3i)
	if !ok || !fitsInt32(v.i[0]) || !fitsInt32(v.i[1]) || !fitsInt32(v.i[2]) {
		return [3]int32{}, false
	}
	return [3]int32{int32(v.i[0]), int32(v.i[1]), int32(v.i[2])}, true
}

// UVec3 reads an integer triple whose components fit in uint32.
func (g *Group) UVec3(name string) ([3]uint32, bool) {
	v, ok := g.value(name, KindVec3i)
	if !ok || !fitsUint32(v.i[0]) || !fitsUint32(v.i[1]) || !fitsUint32(v.i[2]) {
		return [3]uint32{}, false
	}
	return [3]uint32{uint32(v.i[0]), uint32(v.i[1]), uint32(v.i[2])}, true
}

// Vec3 reads a float triple.
func (g *Group) Vec3(name string) ([3]float64, bool) {
	v, ok := g.value(name, KindVec3f)
	if !ok {
		return [3]float64{}, false
	}
	return [3]float64{v.f[0], v.f[1], v.f[2]}, true
}

// SetBool writes a boolean entry. It reports whether the stored value
// actually changed.
func (g *Group) SetBool(name string, v bool) bool { return g.set(name, Bool(v)) }

// SetInt writes an integer entry.
func (g *Group) SetInt(name string, v int64) bool { return g.set(name, Int(v)) }

// SetFloat writes a float entry.
func (g *Group) SetFloat(name string, v float64) bool { return g.set(name, Float(v)) }

// SetString writes a string entry.
func (g *Group) SetString(name string, v string) bool { return g.set(name, String(v)) }

// SetIVec2 writes an integer pair entry.
func (g *Group) SetIVec2(name string, v [2]int32) bool {
	return g.set(name, Vec2i(int64(v[0]), int64(v[1])))
}

// SetUVec2 writes an unsigned integer pair entry.
func (g *Group) SetUVec2(name string, v [2]uint32) bool {
	return g.set(name, Vec2i(int64(v[0]), int64(v[1])))
}

// SetVec2 writes a float pair entry.
func (g *Group) SetVec2(name string, v [2]float64) bool {
	return g.set(name, Vec2f(v[0], v[1]))
}

// SetIVec3 writes an integer triple entry.
func (g *Group) SetIVec3(name string, v [3]int32) bool {
	return g.set(name, Vec3i(int64(v[0]), int64(v[1]), int64(v[2])))
}

// SetUVec3 writes an unsigned integer triple entry.
func (g *Group) SetUVec3(name string, v [3]uint32) bool {
	return g.set(name, Vec3i(int64(v[0]), int64(v[1]), int64(v[2])))
}

// SetVec3 writes a float triple entry.
func (g *Group) SetVec3(name string, v [3]float64) bool {
	return g.set(name, Vec3f(v[0], v[1], v[2]))
}

// Group returns the nested group for a name, or nil if the name is absent
// or holds a value. The returned group may be read and mutated; mutation
// marks the owning file dirty.
func (g *Group) Group(name string) *Group {
	return g.nodes[name].group
}

// GroupMut returns the nested group for a name, creating an empty one if
// the name is absent. It returns nil if the name already holds a
// non-group value; use Remove first to replace a value with a group.
//
// Creating an empty group does not by itself mark the file dirty; only
// setting or removing entries does.
func (g *Group) GroupMut(name string) *Group {
	if n, ok := g.nodes[name]; ok {
		return n.group
	}
	child := &Group{nodes: make(map[string]node), file: g.file}
	g.put(name, node{group: child})
	return child
}

// Remove deletes an entry (value or nested group). It reports whether the
// entry existed.
func (g *Group) Remove(name string) bool {
	if _, ok := g.nodes[name]; !ok {
		return false
	}
	delete(g.nodes, name)
	if i := slices.Index(g.names, name); i >= 0 {
		g.names = slices.Delete(g.names, i, i+1)
	}
	g.touch()
	return true
}

// Equal reports whether two trees hold the same entries with structurally
// equal values. Entry order is not significant.
func (g *Group) Equal(o *Group) bool {
	if g == nil || o == nil {
		return g == o
	}
	if len(g.nodes) != len(o.nodes) {
		return false
	}
	for name, n := range g.nodes {
		on, ok := o.nodes[name]
		if !ok {
			return false
		}
		if n.group != nil {
			if on.group == nil || !n.group.Equal(on.group) {
				return false
			}
		} else if on.group != nil || !n.value.Equal(on.value) {
			return false
		}
	}
	return true
}

// Clone returns a detached deep copy of the tree.
func (g *Group) Clone() *Group {
	c := &Group{
		names: slices.Clone(g.names),
		nodes: make(map[string]node, len(g.nodes)),
	}
	for name, n := range g.nodes {
		if n.group != nil {
			c.nodes[name] = node{group: n.group.Clone()}
		} else {
			c.nodes[name] = n
		}
	}
	return c
}

// value looks up a non-group entry of the given kind.
func (g *Group) value(name string, kind Kind) (Value, bool) {
	n, ok := g.nodes[name]
	if !ok || n.group != nil || n.value.kind != kind {
		return Value{}, false
	}
	return n.value, true
}

// set inserts or overwrites a value entry, suppressing no-op writes so an
// unchanged value never dirties the file.
func (g *Group) set(name string, v Value) bool {
	if n, ok := g.nodes[name]; ok && n.group == nil && n.value.Equal(v) {
		return false
	}
	g.put(name, node{value: v})
	g.touch()
	return true
}

// put stores an entry, appending the name on first insertion.
func (g *Group) put(name string, n node) {
	if _, ok := g.nodes[name]; !ok {
		g.names = append(g.names, name)
	}
	g.nodes[name] = n
}

// touch recomputes the owning file's dirty flag after a mutation.
func (g *Group) touch() {
	if g.file != nil {
		g.file.recompute()
	}
}

// attach binds the tree to its owning file so nested mutations propagate.
func (g *Group) attach(f *File) {
	g.file = f
	for _, n := range g.nodes {
		if n.group != nil {
			n.group.attach(f)
		}
	}
}

func fitsInt32(v int64) bool { return v >= math.MinInt32 && v <= math.MaxInt32 }

func fitsUint32(v int64) bool { return v >= 0 && v <= math.MaxUint32 }
