package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/game"
)

func body(data any) *game.BodyView { return data.(*game.BodyView) }

func color(c uint32) rl.Color {
	return rl.Color{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 255}
}

// BodyPanelDescriptor lays out the readout for one body.
func BodyPanelDescriptor() PanelDescriptor {
	return PanelDescriptor{
		ID:     "body",
		Width:  230,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID: "identity",
				Fields: []FieldDescriptor{
					{ID: "role", Label: "Role", Widget: WidgetText, TextGetter: func(d any) string { return body(d).Role.String() }},
					{ID: "texture", Label: "Surface", Widget: WidgetText, TextGetter: func(d any) string { return body(d).TextureKey }},
					{ID: "color", Label: "Color", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return color(body(d).Color) }},
				},
			},
			{
				ID:    "motion",
				Title: "Motion",
				Fields: []FieldDescriptor{
					{ID: "mass", Label: "Mass", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 { return float32(body(d).Mass) }},
					{ID: "radius", Label: "Radius", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 { return float32(body(d).Radius) }},
					{ID: "speed", Label: "Speed", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 { return float32(body(d).Speed) }},
					{ID: "pos", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
						p := body(d).Position
						return fmt.Sprintf("%.0f, %.0f, %.0f", p.X, p.Y, p.Z)
					}},
				},
			},
			{
				ID:    "surface",
				Title: "Surface",
				Fields: []FieldDescriptor{
					{ID: "lumpy", Label: "Shape", Widget: WidgetText, TextGetter: func(d any) string {
						if s := body(d).Shape; s != nil && s.Lumpy {
							return fmt.Sprintf("lumpy %dx%d", s.Res, s.Res)
						}
						return "sphere"
					}},
					{ID: "deform", Label: "Stretch", Widget: WidgetBar, Range: DefaultRange(), Getter: func(d any) float32 { return float32(body(d).DeformAmount) }},
					{ID: "glow", Label: "Glow", Widget: WidgetBar, Range: FieldRange{Max: 3}, Getter: func(d any) float32 { return float32(body(d).EmissiveIntensity) },
						Visible: func(d any) bool { return body(d).EmissiveIntensity > 0 }},
					{ID: "light", Label: "Light", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 { return float32(body(d).Light) },
						Visible: func(d any) bool { return body(d).Light > 0 }},
				},
			},
		},
	}
}

// Inspector shows the followed body's state.
type Inspector struct {
	renderer *Renderer
	layout   PanelDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector() *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		layout:   BodyPanelDescriptor(),
	}
}

// Draw renders the panel for b anchored on the screen.
func (ins *Inspector) Draw(b *game.BodyView, screenW, screenH int32) {
	r := ins.renderer
	pad := r.Theme.Padding

	height := pad*2 + r.Theme.LineHeight + 4
	for _, sd := range ins.layout.Sections {
		height += r.SectionHeight(sd, b)
	}
	x, y := ins.layout.Anchor.Origin(screenW, screenH, ins.layout.Width, height, 10)
	r.DrawPanel(x, y, ins.layout.Width, height)

	y += pad
	rl.DrawText(b.Name, x+pad, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	inner := ins.layout.Width - pad*2
	for _, sd := range ins.layout.Sections {
		y = r.DrawSection(x+pad, y, sd, b, inner)
	}
}
