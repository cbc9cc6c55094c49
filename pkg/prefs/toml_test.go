package prefs

import (
	"slices"
	"strings"
	"testing"
)

func TestTOMLDecodeHandWritten(t *testing.T) {
	const doc = `
lang = "en"
count = 3
scale = 1.5

[window]
size = [800, 600]
pos = [-10, 20]

[window.monitor]
index = 1
`
	g, err := TOML{}.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v, ok := g.String("lang"); !ok || v != "en" {
		t.Errorf("lang = %v, %v", v, ok)
	}
	if v, ok := g.Int("count"); !ok || v != 3 {
		t.Errorf("count = %v, %v", v, ok)
	}
	if v, ok := g.Float("scale"); !ok || v != 1.5 {
		t.Errorf("scale = %v, %v", v, ok)
	}
	w := g.Group("window")
	if w == nil {
		t.Fatal("window group missing")
	}
	if v, ok := w.UVec2("size"); !ok || v != [2]uint32{800, 600} {
		t.Errorf("size = %v, %v", v, ok)
	}
	if v, ok := w.IVec2("pos"); !ok || v != [2]int32{-10, 20} {
		t.Errorf("pos = %v, %v", v, ok)
	}
	if v, ok := w.Group("monitor").Int("index"); !ok || v != 1 {
		t.Errorf("index = %v, %v", v, ok)
	}

	// Entry order follows the file, not the alphabet.
	if got := g.Names(); !slices.Equal(got, []string{"lang", "count", "scale", "window"}) {
		t.Errorf("Names = %v", got)
	}
}

func TestTOMLEncodeShape(t *testing.T) {
	g := NewGroup()
	g.SetString("lang", "en")
	g.GroupMut("window").SetUVec2("size", [2]uint32{800, 600})

	data, err := TOML{}.Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `lang = "en"`) {
		t.Errorf("missing scalar line:\n%s", out)
	}
	if !strings.Contains(out, "[window]") {
		t.Errorf("missing table header:\n%s", out)
	}
	if !strings.Contains(out, "size = [800, 600]") {
		t.Errorf("missing array line:\n%s", out)
	}
}

func TestTOMLDecodeUnsupportedValues(t *testing.T) {
	docs := []string{
		`when = 2024-01-01T00:00:00Z`,    // datetime is outside the value set
		`arr = [1, 2, 3, 4]`,             // wrong arity
		`mixed = [1, 2.5]`,               // mixed int/float
		`strs = ["a", "b"]`,              // non-numeric array
		`tables = [{ a = 1 }, { a = 2}]`, // array of tables
	}
	for _, doc := range docs {
		if _, err := (TOML{}).Decode([]byte(doc)); err == nil {
			t.Errorf("Decode(%q) succeeded", doc)
		}
	}
}
