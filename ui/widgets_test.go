package ui

import (
	"testing"

	"github.com/pthm-cable/orrery/game"
)

func TestBarFraction(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		rng   FieldRange
		want  float32
	}{
		{"middle", 0.5, DefaultRange(), 0.5},
		{"below", -2, DefaultRange(), 0},
		{"above", 7, FieldRange{Min: 1, Max: 3}, 1},
		{"offset", 2, FieldRange{Min: 1, Max: 3}, 0.5},
		{"empty range", 1, FieldRange{Min: 2, Max: 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := barFraction(tt.value, tt.rng); got != tt.want {
				t.Errorf("barFraction(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSectionHeightFollowsVisibility(t *testing.T) {
	r := NewRenderer()
	lh := r.Theme.LineHeight
	surface := BodyPanelDescriptor().Sections[2]

	plain := &game.BodyView{}
	// header + shape + stretch bar + trailing gap
	want := lh + lh + (lh + 2) + 4
	if got := r.SectionHeight(surface, plain); got != want {
		t.Errorf("plain body height = %d, want %d", got, want)
	}

	glowing := &game.BodyView{EmissiveIntensity: 1.5, Light: 2}
	want += (lh + 2) + lh
	if got := r.SectionHeight(surface, glowing); got != want {
		t.Errorf("glowing body height = %d, want %d", got, want)
	}

	hidden := SectionDescriptor{Visible: func(any) bool { return false }, Title: "x"}
	if got := r.SectionHeight(hidden, plain); got != 0 {
		t.Errorf("hidden section height = %d", got)
	}
}

func TestAnchorOrigin(t *testing.T) {
	x, y := AnchorBottomRight.Origin(800, 600, 200, 100, 10)
	if x != 590 || y != 490 {
		t.Errorf("bottom-right = (%d, %d)", x, y)
	}
	x, y = AnchorTopLeft.Origin(800, 600, 200, 100, 10)
	if x != 10 || y != 10 {
		t.Errorf("top-left = (%d, %d)", x, y)
	}
}
