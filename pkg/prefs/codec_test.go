package prefs

import (
	"slices"
	"testing"
)

// fullTree builds a tree exercising every value kind plus nesting.
func fullTree() *Group {
	g := NewGroup()
	g.SetBool("dark", true)
	g.SetInt("count", -42)
	g.SetFloat("scale", 1.25)
	g.SetFloat("whole", 2.0) // integral float must stay a float
	g.SetString("lang", "en")
	g.SetString("tricky", "a \"quoted\"\nline")
	g.SetIVec2("pos", [2]int32{-10, 20})
	g.SetUVec2("size", [2]uint32{800, 600})
	g.SetVec2("origin", [2]float64{0.5, 1.5})
	g.SetIVec3("offset", [3]int32{-1, 0, 1})
	g.SetVec3("dir", [3]float64{0, 1.5, 2})
	w := g.GroupMut("window")
	w.SetUVec2("size", [2]uint32{1024, 768})
	w.GroupMut("monitor").SetInt("index", 1)
	return g
}

func TestCodecRoundTrip(t *testing.T) {
	for _, codec := range []Codec{TOML{}, JSON{}, Msgpack{}} {
		t.Run(codec.Ext(), func(t *testing.T) {
			want := fullTree()
			data, err := codec.Encode(want)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("round trip mismatch\nencoded:\n%s", data)
			}
		})
	}
}

func TestCodecRoundTripEmpty(t *testing.T) {
	for _, codec := range []Codec{TOML{}, JSON{}, Msgpack{}} {
		t.Run(codec.Ext(), func(t *testing.T) {
			data, err := codec.Encode(NewGroup())
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Len() != 0 {
				t.Errorf("decoded %d entries from empty tree", got.Len())
			}
		})
	}
}

func TestCodecIntFloatDistinction(t *testing.T) {
	for _, codec := range []Codec{TOML{}, JSON{}, Msgpack{}} {
		t.Run(codec.Ext(), func(t *testing.T) {
			g := NewGroup()
			g.SetInt("i", 2)
			g.SetFloat("f", 2)
			g.SetVec2("fv", [2]float64{1, 2})
			g.SetIVec2("iv", [2]int32{1, 2})

			data, err := codec.Encode(g)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if v, ok := got.Int("i"); !ok || v != 2 {
				t.Errorf("Int = %v, %v", v, ok)
			}
			if v, ok := got.Float("f"); !ok || v != 2 {
				t.Errorf("Float = %v, %v", v, ok)
			}
			if v, ok := got.Vec2("fv"); !ok || v != [2]float64{1, 2} {
				t.Errorf("Vec2 = %v, %v", v, ok)
			}
			if v, ok := got.IVec2("iv"); !ok || v != [2]int32{1, 2} {
				t.Errorf("IVec2 = %v, %v", v, ok)
			}
		})
	}
}

// Order-preserving codecs must reproduce entry order exactly; TOML
// re-sorts on encode, so it round-trips file order instead (covered in
// toml_test.go).
func TestCodecOrderPreserved(t *testing.T) {
	for _, codec := range []Codec{JSON{}, Msgpack{}} {
		t.Run(codec.Ext(), func(t *testing.T) {
			g := NewGroup()
			g.SetInt("zeta", 1)
			g.SetInt("alpha", 2)
			g.GroupMut("mid").SetInt("x", 3)
			g.SetInt("beta", 4)

			data, err := codec.Encode(g)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			want := []string{"zeta", "alpha", "mid", "beta"}
			if !slices.Equal(got.Names(), want) {
				t.Errorf("Names = %v, want %v", got.Names(), want)
			}
		})
	}
}

func TestCodecDecodeRejectsGarbage(t *testing.T) {
	garbage := [][]byte{
		[]byte("\x00\xff\xfe"),
		[]byte("key = = broken"),
	}
	for _, codec := range []Codec{TOML{}, JSON{}, Msgpack{}} {
		t.Run(codec.Ext(), func(t *testing.T) {
			for _, data := range garbage {
				if _, err := codec.Decode(data); err == nil {
					t.Errorf("Decode(%q) accepted garbage", data)
				}
			}
		})
	}
}
