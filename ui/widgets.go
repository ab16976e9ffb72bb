package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const spacerHeight = 6

// Renderer draws panel widgets in a shared theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer returns a renderer using DefaultTheme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a bordered panel rectangle.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws title and returns the next line's y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

func (r *Renderer) drawLabel(x, y int32, label string) {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawLabelValue draws "label: value" and returns the next line's y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	r.drawLabel(x, y, label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// barFraction maps value into [0, 1] over rng. An empty range gives 0.
func barFraction(value float32, rng FieldRange) float32 {
	if rng.Max <= rng.Min {
		return 0
	}
	f := (value - rng.Min) / (rng.Max - rng.Min)
	return min(max(f, 0), 1)
}

// DrawBar draws a horizontal gauge with the numeric value after it.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	th := r.Theme
	frac := barFraction(value, rng)
	left := x + th.LabelWidth
	span := width - th.LabelWidth - 50

	r.drawLabel(x, y, label)
	rl.DrawRectangle(left, y+2, span, th.BarHeight, th.BarBg)
	fill := th.BarFill
	if frac > 0.75 {
		fill = th.BarFillHigh
	}
	rl.DrawRectangle(left, y+2, int32(float32(span)*frac), th.BarHeight, fill)
	rl.DrawText(fmt.Sprintf("%.2f", value), left+span+5, y, th.FontSize, th.ValueColor)
	return y + r.fieldHeight(WidgetBar)
}

// DrawColorSwatch draws a small filled square after the label.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color) int32 {
	r.drawLabel(x, y, label)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, 12, 12, color)
	return y + r.Theme.LineHeight
}

func (r *Renderer) fieldHeight(w WidgetType) int32 {
	switch w {
	case WidgetBar:
		return r.Theme.LineHeight + 2
	case WidgetSpacer:
		return spacerHeight
	}
	return r.Theme.LineHeight
}

// DrawField draws one field of data.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		return r.DrawLabelValue(x, y, fd.Label, fd.text(data))
	case WidgetBar:
		var v float32
		if fd.Getter != nil {
			v = fd.Getter(data)
		}
		return r.DrawBar(x, y, fd.Label, v, fd.Range, width)
	case WidgetColorSwatch:
		c := fd.Color
		if fd.ColorGetter != nil {
			c = fd.ColorGetter(data)
		}
		return r.DrawColorSwatch(x, y, fd.Label, c)
	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)
	case WidgetSpacer:
		return y + spacerHeight
	}
	return y
}

// text formats a text field's value.
func (fd FieldDescriptor) text(data any) string {
	switch {
	case fd.TextGetter != nil:
		return fd.TextGetter(data)
	case fd.Getter != nil:
		return fmt.Sprintf(fd.Format, fd.Getter(data))
	}
	return ""
}

// visibleFields returns the fields of sd shown for data, or nil when the
// whole section is hidden.
func visibleFields(sd SectionDescriptor, data any) ([]FieldDescriptor, bool) {
	if sd.Visible != nil && !sd.Visible(data) {
		return nil, false
	}
	out := make([]FieldDescriptor, 0, len(sd.Fields))
	for _, fd := range sd.Fields {
		if fd.Visible == nil || fd.Visible(data) {
			out = append(out, fd)
		}
	}
	return out, true
}

// DrawSection draws a section header and its visible fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	fields, ok := visibleFields(sd, data)
	if !ok {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range fields {
		y = r.DrawField(x, y, fd, data, width)
	}
	return y + 4
}

// SectionHeight is the height DrawSection would use.
func (r *Renderer) SectionHeight(sd SectionDescriptor, data any) int32 {
	fields, ok := visibleFields(sd, data)
	if !ok {
		return 0
	}
	var h int32 = 4
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range fields {
		h += r.fieldHeight(fd.Widget)
	}
	return h
}
