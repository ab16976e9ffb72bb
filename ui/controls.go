package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/game"
	"github.com/pthm-cable/orrery/scenario"
)

const (
	buttonWidth  = 110
	buttonHeight = 24
)

// ControlsPanel is the left-hand panel: overlay toggles on top, scene
// buttons underneath.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel returns a visible panel at x, y.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width, visible: true}
}

// Toggle shows or hides the panel and returns the new state.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

var (
	toggleOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	toggleOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
	keyHint   = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

const categoryGap = 4

// Draw draws the overlay toggles grouped by category and returns the
// panel's bottom edge.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}
	th := c.renderer.Theme

	type group struct {
		label string
		items []OverlayDescriptor
	}
	var groups []group
	rows := 1 // title
	for _, cat := range overlays.Categories() {
		g := group{label: categoryLabel(cat), items: overlays.ByCategory(cat)}
		groups = append(groups, g)
		rows += 1 + len(g.items)
	}
	height := int32(rows)*th.LineHeight + th.Padding*3
	c.renderer.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + th.Padding
	y := c.y + th.Padding
	rl.DrawText("Overlays", x, y, 16, rl.White)
	y += th.LineHeight + categoryGap
	for _, g := range groups {
		rl.DrawText(g.label, x, y, th.HeaderFontSize, th.SectionHeader)
		y += th.LineHeight
		for _, d := range g.items {
			c.drawToggle(x, y, d, overlays.IsEnabled(d.ID), c.width-2*th.Padding)
			y += th.LineHeight
		}
		y += categoryGap
	}
	return y
}

// drawToggle draws one overlay row: state square, name, key hint at the
// right edge.
func (c *ControlsPanel) drawToggle(x, y int32, d OverlayDescriptor, on bool, width int32) {
	th := c.renderer.Theme
	square, name := toggleOff, th.LabelColor
	if on {
		square, name = toggleOn, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, square)
	rl.DrawText(d.Name, x+14, y, th.FontSize, name)
	if d.KeyLabel == "" {
		return
	}
	hint := "[" + d.KeyLabel + "]"
	rl.DrawText(hint, x+width-rl.MeasureText(hint, th.FontSize), y, th.FontSize, keyHint)
}

func categoryLabel(cat string) string {
	switch cat {
	case CategoryVisual:
		return "Visual"
	case CategoryDebug:
		return "Debug"
	}
	return cat
}

// Contains reports whether a screen point lies over the panel, whose
// bottom edge is bottom.
func (c *ControlsPanel) Contains(p rl.Vector2, bottom int32) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(p, rl.Rectangle{
		X: float32(c.x), Y: float32(c.y),
		Width: float32(c.width), Height: float32(bottom - c.y),
	})
}

// DrawButtons renders the scene buttons below y and returns the actions
// clicked this frame plus the new bottom edge.
func (c *ControlsPanel) DrawButtons(y int32, st game.Status, controls []scenario.Control) (Actions, int32) {
	var a Actions
	if !c.visible {
		return a, y
	}
	x := float32(c.x)
	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x, Y: float32(y), Width: buttonWidth, Height: buttonHeight}
		y += buttonHeight + 4
		return r
	}

	y += 6
	if st.Sequence && gui.Button(row(), "Next step") {
		a.Next = true
	}
	if gui.Button(row(), "Restart") {
		a.Restart = true
	}
	pause := "Pause"
	if st.Paused {
		pause = "Resume"
	}
	if gui.Button(row(), pause) {
		a.TogglePause = true
	}
	if gui.Button(row(), "Home camera") {
		a.Home = true
	}
	if gui.Button(row(), "Follow next") {
		a.CycleFollow = true
	}
	for _, ctl := range controls {
		if gui.Button(row(), ctl.Label) {
			a.Control = ctl.Key
		}
	}
	return a, y
}
