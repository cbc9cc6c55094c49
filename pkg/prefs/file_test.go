package prefs

import "testing"

func TestFileDirtyTracking(t *testing.T) {
	f := newFile("app", nil)
	if f.Dirty() {
		t.Error("fresh file is dirty")
	}

	root := f.Root()
	root.SetInt("n", 1)
	if !f.Dirty() {
		t.Error("mutation did not dirty the file")
	}
}

func TestFileDirtyExactness(t *testing.T) {
	root := NewGroup()
	root.SetInt("n", 1)
	f := newFile("app", root)

	// Setting the current value is not a change.
	f.Root().SetInt("n", 1)
	if f.Dirty() {
		t.Error("equal set dirtied the file")
	}

	// Reverting to the persisted value clears dirty again.
	f.Root().SetInt("n", 2)
	if !f.Dirty() {
		t.Error("change did not dirty the file")
	}
	f.Root().SetInt("n", 1)
	if f.Dirty() {
		t.Error("revert did not clear dirty")
	}

	// Remove and re-add round-trips too.
	f.Root().Remove("n")
	if !f.Dirty() {
		t.Error("remove did not dirty the file")
	}
	f.Root().SetInt("n", 1)
	if f.Dirty() {
		t.Error("re-add did not clear dirty")
	}
}

func TestFileNestedMutationPropagates(t *testing.T) {
	f := newFile("app", nil)
	sub := f.Root().GroupMut("window").GroupMut("main")
	if f.Dirty() {
		t.Error("autovivification alone dirtied the file")
	}
	sub.SetUVec2("size", [2]uint32{800, 600})
	if !f.Dirty() {
		t.Error("nested mutation did not dirty the file")
	}
}

func TestFileMarkChanged(t *testing.T) {
	f := newFile("app", nil)
	f.MarkChanged()
	if !f.Dirty() {
		t.Error("MarkChanged did not set dirty")
	}
}
