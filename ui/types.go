// Package ui draws the orrery's panels, HUD and buttons. Panels are
// built from field descriptors, so the body readout can grow without
// touching layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType selects how a field is drawn.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Format or TextGetter
	WidgetBar                           // gauge over Range
	WidgetColorSwatch                   // filled square
	WidgetSection                       // sub-header
	WidgetSpacer
)

// FieldRange bounds a bar gauge.
type FieldRange struct {
	Min, Max float32
}

// DefaultRange is [0, 1].
func DefaultRange() FieldRange { return FieldRange{Max: 1} }

// FieldDescriptor reads one value out of the panel data and says how to
// show it. Getters receive the data passed to DrawSection.
type FieldDescriptor struct {
	ID     string
	Label  string
	Widget WidgetType
	Format string // printf verb for Getter values
	Range  FieldRange
	Color  rl.Color // swatch color when ColorGetter is nil

	Visible     func(any) bool // nil shows the field
	Getter      func(any) float32
	TextGetter  func(any) string
	ColorGetter func(any) rl.Color
}

// SectionDescriptor is a titled group of fields.
type SectionDescriptor struct {
	ID      string
	Title   string // empty draws no header
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor is a whole panel: its sections, width and anchor.
type PanelDescriptor struct {
	ID       string
	Sections []SectionDescriptor
	Width    int32
	Anchor   PanelAnchor
}

// PanelAnchor is the screen corner a panel sticks to.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Origin returns the top-left corner of a width x height panel placed in
// this corner of a screenW x screenH screen, margin pixels from the edges.
func (a PanelAnchor) Origin(screenW, screenH, width, height, margin int32) (x, y int32) {
	x, y = margin, margin
	if a == AnchorTopRight || a == AnchorBottomRight {
		x = screenW - width - margin
	}
	if a == AnchorBottomLeft || a == AnchorBottomRight {
		y = screenH - height - margin
	}
	return x, y
}

// Theme is the shared palette and metrics.
type Theme struct {
	PanelBg, PanelBorder   rl.Color
	SectionHeader          rl.Color
	LabelColor, ValueColor rl.Color
	BannerColor            rl.Color
	BarBg                  rl.Color
	BarFill, BarFillHigh   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme is a dark translucent theme with warm accents.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 12, B: 20, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 90, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BannerColor:    rl.Color{R: 255, G: 200, B: 120, A: 255},
		BarBg:          rl.Color{R: 40, G: 40, B: 48, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 220, A: 255},
		BarFillHigh:    rl.Color{R: 255, G: 120, B: 50, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
