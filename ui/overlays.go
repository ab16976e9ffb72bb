package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable overlay.
type OverlayID string

const (
	OverlayStars     OverlayID = "stars"
	OverlayEffects   OverlayID = "effects"
	OverlayLabels    OverlayID = "labels"
	OverlayInspector OverlayID = "inspector"
	OverlayPerf      OverlayID = "perf"
	OverlayHelp      OverlayID = "help"
)

// Overlay categories, in display order.
const (
	CategoryVisual = "visual"
	CategoryDebug  = "debug"
)

// OverlayDescriptor describes one overlay and its key binding.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 means no binding
	KeyLabel    string // e.g. "B", "F1"
	Category    string
	// Turned off whenever this overlay is turned on.
	Exclusive []OverlayID
	// Initial state.
	Default bool
}

var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayStars, Name: "Stars", Description: "Background star field", Key: rl.KeyB, KeyLabel: "B", Category: CategoryVisual, Default: true},
	{ID: OverlayEffects, Name: "Effects", Description: "Trails, sparks, debris and flashes", Key: rl.KeyE, KeyLabel: "E", Category: CategoryVisual, Default: true},
	{ID: OverlayLabels, Name: "Labels", Description: "Body names at their screen positions", Key: rl.KeyL, KeyLabel: "L", Category: CategoryVisual},
	{ID: OverlayInspector, Name: "Inspector", Description: "State of the followed body", Key: rl.KeyI, KeyLabel: "I", Category: CategoryDebug, Default: true},
	{ID: OverlayPerf, Name: "Performance", Description: "Per-phase step timings", Key: rl.KeyG, KeyLabel: "G", Category: CategoryDebug, Exclusive: []OverlayID{OverlayHelp}},
	{ID: OverlayHelp, Name: "Help", Description: "Key bindings", Key: rl.KeyF1, KeyLabel: "F1", Category: CategoryDebug, Exclusive: []OverlayID{OverlayPerf}},
}

// OverlayRegistry holds the overlays in registration order with their
// on/off state.
type OverlayRegistry struct {
	list []OverlayDescriptor
	on   map[OverlayID]bool
}

// NewOverlayRegistry returns a registry with the standard overlays in
// their default states.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{on: make(map[OverlayID]bool)}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register appends an overlay. Registering an existing ID replaces its
// descriptor and resets its state.
func (r *OverlayRegistry) Register(d OverlayDescriptor) {
	if i := r.index(d.ID); i >= 0 {
		r.list[i] = d
	} else {
		r.list = append(r.list, d)
	}
	r.on[d.ID] = false
	if d.Default {
		r.SetEnabled(d.ID, true)
	}
}

func (r *OverlayRegistry) index(id OverlayID) int {
	for i := range r.list {
		if r.list[i].ID == id {
			return i
		}
	}
	return -1
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	i := r.index(id)
	if i < 0 {
		return
	}
	r.on[id] = enabled
	if enabled {
		for _, other := range r.list[i].Exclusive {
			r.on[other] = false
		}
	}
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if r.index(id) < 0 {
		return false
	}
	r.SetEnabled(id, !r.on[id])
	return r.on[id]
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool { return r.on[id] }

// Get returns the descriptor for id.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	if i := r.index(id); i >= 0 {
		return r.list[i], true
	}
	return OverlayDescriptor{}, false
}

// All returns the overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor { return r.list }

// ByCategory returns the overlays of one category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, d := range r.list {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns the categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, d := range r.list {
		seen := false
		for _, c := range cats {
			if c == d.Category {
				seen = true
				break
			}
		}
		if !seen {
			cats = append(cats, d.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. handled is false when
// no overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, enabled, handled bool) {
	if key == 0 {
		return "", false, false
	}
	for _, d := range r.list {
		if d.Key == key {
			return d.ID, r.Toggle(d.ID), true
		}
	}
	return "", false, false
}

// Enabled returns the IDs of the overlays that are on.
func (r *OverlayRegistry) Enabled() []OverlayID {
	var out []OverlayID
	for _, d := range r.list {
		if r.on[d.ID] {
			out = append(out, d.ID)
		}
	}
	return out
}
