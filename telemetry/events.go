// Package telemetry provides window statistics, impact records,
// performance timing and CSV output for a running simulation.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// ImpactKind identifies how a contact was resolved.
type ImpactKind string

const (
	ImpactMerge     ImpactKind = "merge"
	ImpactMolten    ImpactKind = "molten_merge"
	ImpactExplosion ImpactKind = "explosion"
)

// ImpactEvent records one resolved contact between two bodies.
// For explosions the position is the surface impact point and Mass is
// the destroyed impactor's; for merges they describe the merged body.
type ImpactEvent struct {
	Tick  int32      `csv:"tick"`
	Kind  ImpactKind `csv:"kind"`
	BodyA string     `csv:"body_a"`
	BodyB string     `csv:"body_b"`
	X     float64    `csv:"x"`
	Y     float64    `csv:"y"`
	Z     float64    `csv:"z"`
	Mass  float64    `csv:"mass"`
	Speed float64    `csv:"relative_speed"`
}

// NewImpactEvent creates an impact record at pos.
func NewImpactEvent(tick int32, kind ImpactKind, a, b string, pos r3.Vec, mass, speed float64) ImpactEvent {
	return ImpactEvent{
		Tick:  tick,
		Kind:  kind,
		BodyA: a,
		BodyB: b,
		X:     pos.X,
		Y:     pos.Y,
		Z:     pos.Z,
		Mass:  mass,
		Speed: speed,
	}
}

// Position returns the event location.
func (e ImpactEvent) Position() r3.Vec { return r3.Vec{X: e.X, Y: e.Y, Z: e.Z} }

// LogValue implements slog.LogValuer for structured logging.
func (e ImpactEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(e.Tick)),
		slog.String("kind", string(e.Kind)),
		slog.String("body_a", e.BodyA),
		slog.String("body_b", e.BodyB),
		slog.Float64("x", e.X),
		slog.Float64("y", e.Y),
		slog.Float64("z", e.Z),
		slog.Float64("mass", e.Mass),
		slog.Float64("relative_speed", e.Speed),
	)
}
