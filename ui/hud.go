package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/game"
	"github.com/pthm-cable/orrery/scenario"
	"github.com/pthm-cable/orrery/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Status       game.Status
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the status lines in the bottom-left corner.
func (h *HUD) Draw(data HUDData) {
	st := data.Status
	y := data.ScreenHeight - 90

	rl.DrawText(data.Title, 10, y, 20, rl.White)
	y += 24

	rl.DrawText(
		fmt.Sprintf("Mode: %s | Bodies: %d | Effects: %d | Pending: %d", st.Mode, st.Bodies, st.Effects, st.Pending),
		10, y, 16, rl.LightGray,
	)
	y += 20

	line := fmt.Sprintf("Tick: %d | FPS: %d | Time x%.2f", st.Tick, data.FPS, st.TimeScale)
	if st.Following != "" {
		line += " | Following: " + st.Following
	}
	rl.DrawText(line, 10, y, 16, rl.LightGray)
	y += 20

	if st.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
	}
}

// DrawBanner renders the sequence step caption centred at the top.
func (h *HUD) DrawBanner(screenWidth int32, text string) {
	if text == "" {
		return
	}
	const size = 24
	w := rl.MeasureText(text, size)
	x := (screenWidth - w) / 2
	h.renderer.DrawPanel(x-12, 8, w+24, size+12)
	rl.DrawText(text, x, 14, size, h.renderer.Theme.BannerColor)
}

// DrawLabels writes each body's name at its projected screen position.
func (h *HUD) DrawLabels(cam rl.Camera3D, bodies []game.BodyView) {
	for i := range bodies {
		b := &bodies[i]
		top := rl.NewVector3(float32(b.Position.X), float32(b.Position.Y+b.Radius*1.2), float32(b.Position.Z))
		p := rl.GetWorldToScreen(top, cam)
		w := rl.MeasureText(b.Name, 12)
		rl.DrawText(b.Name, int32(p.X)-w/2, int32(p.Y)-14, 12, rl.LightGray)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls []scenario.Control) {
	parts := []string{"[Space] Next", "[R] Restart", "[P] Pause", "[C] Follow", "[H] Home", "[Tab] Panel", "[RMB] Orbit", "[Wheel] Zoom"}
	for _, c := range controls {
		parts = append(parts, fmt.Sprintf("[%s] %s", keyLabel(c.Key), c.Label))
	}
	text := strings.Join(parts, "  ")
	w := rl.MeasureText(text, 14)
	rl.DrawText(text, screenWidth-w-10, screenHeight-22, 14, rl.Gray)
}

// PerfPanel renders the step phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, slowest phase first.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats.PhaseAvg[names[i]] > stats.PhaseAvg[names[j]]
	})

	const width = 260
	height := int32(56 + 14*len(names))
	p.renderer.DrawPanel(p.x, p.y, width, height)

	x := p.x + p.renderer.Theme.Padding
	y := p.y + p.renderer.Theme.Padding
	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s  (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range names {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// DrawHelp lists every overlay with its key.
func (h *HUD) DrawHelp(x, y int32, overlays *OverlayRegistry) {
	r := h.renderer
	all := overlays.All()
	height := int32(len(all))*r.Theme.LineHeight + r.Theme.Padding*2 + r.Theme.LineHeight
	r.DrawPanel(x, y, 280, height)
	y += r.Theme.Padding
	y = r.DrawSectionHeader(x+r.Theme.Padding, y, "Overlays")
	for _, d := range all {
		y = r.DrawLabelValue(x+r.Theme.Padding, y, "["+d.KeyLabel+"]", d.Description)
	}
}

func keyLabel(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
