package ui

import (
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/scenario"
)

const (
	orbitSpeed = 0.005 // radians per pixel of drag
	dollyStep  = 0.9   // distance factor per wheel notch
)

// Actions is one frame of user intent, gathered from the keyboard, the
// mouse and the on-screen buttons.
type Actions struct {
	Next        bool
	Restart     bool
	TogglePause bool
	Home        bool
	CycleFollow bool
	TogglePanel bool
	Control     string // scene control key, "" when none

	Yaw, Pitch float64 // orbit, radians
	Dolly      float64 // distance factor, 1 = none

	Pick   bool
	PickAt rl.Vector2
}

// Merge ORs the button-driven actions of o into a.
func (a *Actions) Merge(o Actions) {
	a.Next = a.Next || o.Next
	a.Restart = a.Restart || o.Restart
	a.TogglePause = a.TogglePause || o.TogglePause
	a.Home = a.Home || o.Home
	a.CycleFollow = a.CycleFollow || o.CycleFollow
	if o.Control != "" {
		a.Control = o.Control
	}
}

// keyCodes maps scene control key names to raylib keys.
var keyCodes = map[string]int32{
	"enter": rl.KeyEnter,
	"space": rl.KeySpace,
}

// KeyCode returns the raylib key for a scene control key name.
func KeyCode(name string) (int32, bool) {
	name = strings.ToLower(name)
	if k, ok := keyCodes[name]; ok {
		return k, true
	}
	if len(name) == 1 && name[0] >= 'a' && name[0] <= 'z' {
		return rl.KeyA + int32(name[0]-'a'), true
	}
	return 0, false
}

// PollInput reads the keyboard and mouse. Scene controls take their
// bound keys; overlay keys toggle overlays.
func PollInput(controls []scenario.Control, overlays *OverlayRegistry, overPanel bool) Actions {
	a := Actions{Dolly: 1}

	for _, c := range controls {
		if k, ok := KeyCode(c.Key); ok && rl.IsKeyPressed(k) {
			a.Control = c.Key
		}
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Next = true
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Restart = true
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.TogglePause = true
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.Home = true
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.CycleFollow = true
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.TogglePanel = true
	}

	if key := rl.GetKeyPressed(); key != 0 && overlays != nil {
		overlays.HandleKeyPress(key)
	}

	if overPanel {
		return a
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		a.Yaw = -float64(d.X) * orbitSpeed
		a.Pitch = -float64(d.Y) * orbitSpeed
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Dolly = math.Pow(dollyStep, float64(wheel))
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.Pick = true
		a.PickAt = rl.GetMousePosition()
	}
	return a
}
