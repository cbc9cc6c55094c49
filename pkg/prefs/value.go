package prefs

import "fmt"

// Kind identifies the type stored in a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindVec2i // pair of integers; signed/unsigned is an accessor-level view
	KindVec3i
	KindVec2f
	KindVec3f
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindVec2i:
		return "vec2i"
	case KindVec3i:
		return "vec3i"
	case KindVec2f:
		return "vec2f"
	case KindVec3f:
		return "vec3f"
	default:
		return "invalid"
	}
}

// Value is a tagged union over the closed set of supported preference types.
// Values are immutable once constructed; Equal compares structurally.
//
// Vectors are stored canonically as int64 or float64 components. The
// signed/unsigned and width distinctions (IVec2 vs UVec2) live in the Group
// accessors as range checks, so a [2]uint32 written through SetUVec2 and a
// [2]int32 written through SetIVec2 share one storage kind.
type Value struct {
	kind Kind
	b    bool
	s    string
	i    [3]int64
	f    [3]float64
}

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: [3]int64{v, 0, 0}} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: [3]float64{v, 0, 0}} }

// String returns a string Value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Vec2i returns an integer pair Value.
func Vec2i(x, y int64) Value { return Value{kind: KindVec2i, i: [3]int64{x, y, 0}} }

// Vec3i returns an integer triple Value.
func Vec3i(x, y, z int64) Value { return Value{kind: KindVec3i, i: [3]int64{x, y, z}} }

// Vec2f returns a float pair Value.
func Vec2f(x, y float64) Value { return Value{kind: KindVec2f, f: [3]float64{x, y, 0}} }

// Vec3f returns a float triple Value.
func Vec3f(x, y, z float64) Value { return Value{kind: KindVec3f, f: [3]float64{x, y, z}} }

// Kind returns the type tag of the value.
func (v Value) Kind() Kind { return v.kind }

// Equal reports structural equality. Constructors zero unused payload
// slots, so comparing the whole struct is exact. Note that NaN floats
// compare unequal to themselves, per IEEE semantics.
func (v Value) Equal(o Value) bool { return v == o }

// Any returns the payload as a plain Go value: bool, int64, float64,
// string, []int64, or []float64. Invalid values yield nil.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i[0]
	case KindFloat:
		return v.f[0]
	case KindString:
		return v.s
	case KindVec2i:
		return []int64{v.i[0], v.i[1]}
	case KindVec3i:
		return []int64{v.i[0], v.i[1], v.i[2]}
	case KindVec2f:
		return []float64{v.f[0], v.f[1]}
	case KindVec3f:
		return []float64{v.f[0], v.f[1], v.f[2]}
	default:
		return nil
	}
}

// String renders the value for display and debugging. It is not a
// serialization format; use a Codec for persistence.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i[0])
	case KindFloat:
		return fmt.Sprintf("%g", v.f[0])
	case KindString:
		return v.s
	case KindVec2i:
		return fmt.Sprintf("[%d, %d]", v.i[0], v.i[1])
	case KindVec3i:
		return fmt.Sprintf("[%d, %d, %d]", v.i[0], v.i[1], v.i[2])
	case KindVec2f:
		return fmt.Sprintf("[%g, %g]", v.f[0], v.f[1])
	case KindVec3f:
		return fmt.Sprintf("[%g, %g, %g]", v.f[0], v.f[1], v.f[2])
	default:
		return "<invalid>"
	}
}
