package scenario

import "gonum.org/v1/gonum/spatial/r3"

// Eclipse timing. The moon crosses eclipseTravel units at eclipseSpeed;
// the light is restored once the crossing and the initial fade are over.
const (
	eclipseSpeed   = 0.5
	eclipseTravel  = 6.0
	eclipseDim     = 0.1
	eclipseDimTime = 12.0
	eclipseRestore = 3.0
)

// Fade linearly moves a level toward a target over a duration.
type Fade struct {
	from, to float64
	duration float64
	elapsed  float64
	active   bool
}

// Start begins a fade from the current level.
func (f *Fade) Start(from, to, duration float64) {
	f.from, f.to = from, to
	f.duration = duration
	f.elapsed = 0
	f.active = true
}

// Active reports whether the fade is still running.
func (f *Fade) Active() bool { return f.active }

// Step advances the fade and returns the current level.
func (f *Fade) Step(dt float64) float64 {
	if !f.active {
		return f.to
	}
	f.elapsed += dt
	p := 1.0
	if f.duration > 0 {
		p = f.elapsed / f.duration
	}
	if p >= 1 {
		f.active = false
		return f.to
	}
	return f.from + (f.to-f.from)*p
}

// eclipseScript moves the moon across the line of sight and dims the
// ambient light while it does.
type eclipseScript struct {
	moon      string
	moonStart r3.Vec
	eye       string // camera sits on this body
	lookAt    string

	started   bool
	restored  bool
	elapsed   float64
	restoreAt float64
	fade      Fade
}

// Start places the moon at the start of its transit, frames the camera
// and begins dimming. Starting again restarts the transit.
func (e *eclipseScript) Start(s Scene) {
	if !s.SetBodyState(e.moon, e.moonStart, r3.Vec{X: -eclipseSpeed}) {
		return
	}
	eye, _, okEye := s.BodyState(e.eye)
	target, _, okTarget := s.BodyState(e.lookAt)
	if okEye && okTarget {
		s.FrameCamera(eye, target)
	}

	e.started = true
	e.restored = false
	e.elapsed = 0
	e.restoreAt = eclipseTravel/eclipseSpeed + eclipseDimTime
	e.fade.Start(s.Ambient(), eclipseDim, eclipseDimTime)
}

func (e *eclipseScript) Update(dt float64, s Scene) {
	if !e.started {
		return
	}
	e.elapsed += dt
	if !e.restored && e.elapsed >= e.restoreAt {
		e.restored = true
		e.fade.Start(s.Ambient(), 1, eclipseRestore)
	}
	if e.fade.Active() {
		s.SetAmbient(e.fade.Step(dt))
	}
}
