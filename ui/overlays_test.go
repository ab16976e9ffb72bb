package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	r := NewOverlayRegistry()
	want := map[OverlayID]bool{
		OverlayStars:     true,
		OverlayEffects:   true,
		OverlayLabels:    false,
		OverlayInspector: true,
		OverlayPerf:      false,
		OverlayHelp:      false,
	}
	for id, on := range want {
		if r.IsEnabled(id) != on {
			t.Errorf("%s enabled = %v, want %v", id, r.IsEnabled(id), on)
		}
	}
	if got := r.Categories(); len(got) != 2 || got[0] != CategoryVisual || got[1] != CategoryDebug {
		t.Errorf("categories = %v", got)
	}
}

func TestOverlayExclusive(t *testing.T) {
	r := NewOverlayRegistry()
	r.Toggle(OverlayHelp)
	if !r.IsEnabled(OverlayHelp) {
		t.Fatal("help should be on")
	}
	r.Toggle(OverlayPerf)
	if r.IsEnabled(OverlayHelp) {
		t.Error("enabling perf should turn help off")
	}
	if !r.IsEnabled(OverlayPerf) {
		t.Error("perf should be on")
	}
}

func TestOverlayKeyPress(t *testing.T) {
	r := NewOverlayRegistry()
	id, on, ok := r.HandleKeyPress(rl.KeyL)
	if !ok || id != OverlayLabels || !on {
		t.Errorf("L press = (%s, %v, %v)", id, on, ok)
	}
	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not be handled")
	}
	if _, _, ok := r.HandleKeyPress(0); ok {
		t.Error("zero key should not be handled")
	}
	if r.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}
