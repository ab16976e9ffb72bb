// Package effects provides transient visual effects: particle emitters
// for trails, sparks and debris, and the flash and ring shapes spawned
// on impact.
package effects

// Effect is anything the tick loop updates until it reports finished.
// The owner calls Dispose exactly once after Finished returns true.
type Effect interface {
	Update(dt float64)
	Finished() bool
	Dispose()
}

// Kind identifies an effect for rendering and telemetry.
type Kind uint8

const (
	KindTrail Kind = iota
	KindSparks
	KindDebris
	KindFlash
	KindRing
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTrail:
		return "trail"
	case KindSparks:
		return "sparks"
	case KindDebris:
		return "debris"
	case KindFlash:
		return "flash"
	case KindRing:
		return "ring"
	}
	return "unknown"
}

// Kinded is implemented by effects that report their kind.
type Kinded interface {
	Kind() Kind
}

// UpdateAll updates every effect, disposes the finished ones and returns
// the survivors in their original order. The returned slice reuses list.
func UpdateAll(list []Effect, dt float64) (live []Effect, disposed int) {
	live = list[:0]
	for _, e := range list {
		e.Update(dt)
		if e.Finished() {
			e.Dispose()
			disposed++
			continue
		}
		live = append(live, e)
	}
	for i := len(live); i < len(list); i++ {
		list[i] = nil
	}
	return live, disposed
}

// DisposeAll disposes every effect in list.
func DisposeAll(list []Effect) {
	for _, e := range list {
		e.Dispose()
	}
}
