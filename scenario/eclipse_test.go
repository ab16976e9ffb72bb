package scenario

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

type fakeBody struct{ pos, vel r3.Vec }

type fakeScene struct {
	bodies  map[string]*fakeBody
	ambient float64
	eye     r3.Vec
	target  r3.Vec
}

func newFakeScene(b *Build) *fakeScene {
	s := &fakeScene{bodies: make(map[string]*fakeBody), ambient: 1}
	for _, spec := range b.Bodies {
		s.bodies[spec.Name] = &fakeBody{pos: spec.Position, vel: spec.Velocity}
	}
	return s
}

func (s *fakeScene) BodyState(name string) (r3.Vec, r3.Vec, bool) {
	b, ok := s.bodies[name]
	if !ok {
		return r3.Vec{}, r3.Vec{}, false
	}
	return b.pos, b.vel, true
}

func (s *fakeScene) SetBodyState(name string, pos, vel r3.Vec) bool {
	b, ok := s.bodies[name]
	if ok {
		b.pos, b.vel = pos, vel
	}
	return ok
}

func (s *fakeScene) Ambient() float64           { return s.ambient }
func (s *fakeScene) SetAmbient(level float64)   { s.ambient = level }
func (s *fakeScene) FrameCamera(pos, at r3.Vec) { s.eye, s.target = pos, at }

func TestSolarEclipseControl(t *testing.T) {
	b, err := BuildScene(&Setup{ScenarioType: "solar_eclipse"})
	if err != nil {
		t.Fatal(err)
	}
	if b.Mode.Collisions() {
		t.Error("eclipse scenes should not resolve collisions")
	}
	ctl, ok := b.Control("Enter")
	if !ok {
		t.Fatal("no enter control")
	}
	scene := newFakeScene(b)

	// Nothing happens before the control runs
	b.Script.Update(1, scene)
	if scene.ambient != 1 {
		t.Errorf("ambient changed before start: %v", scene.ambient)
	}

	ctl.Run(scene)
	_, vel, _ := scene.BodyState("Moon")
	if vel != (r3.Vec{X: -eclipseSpeed}) {
		t.Errorf("moon velocity = %v, want (-0.5,0,0)", vel)
	}
	if scene.target != (r3.Vec{Z: -300}) {
		t.Errorf("camera looks at %v, want the sun", scene.target)
	}

	// Dim over twelve seconds
	for i := 0; i < 120; i++ {
		b.Script.Update(0.1, scene)
	}
	if math.Abs(scene.ambient-eclipseDim) > 1e-3 {
		t.Errorf("ambient after dimming = %v, want %v", scene.ambient, eclipseDim)
	}

	// Restored once the transit is over
	for i := 0; i < 180; i++ {
		b.Script.Update(0.1, scene)
	}
	if scene.ambient != 1 {
		t.Errorf("ambient after transit = %v, want 1", scene.ambient)
	}
}

func TestFade(t *testing.T) {
	var f Fade
	f.Start(1, 0, 2)
	if got := f.Step(1); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("halfway = %v, want 0.5", got)
	}
	if got := f.Step(1.5); got != 0 || f.Active() {
		t.Errorf("after end = %v active=%v", got, f.Active())
	}
}

func TestSequence(t *testing.T) {
	raw := "scenarioType: sequence\nsteps:\n  - scenarioType: collision\n  - scenarioType: orbit\n"
	s, err := Parse([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if !IsSequence(s) {
		t.Fatal("expected a sequence")
	}

	q := NewSequence(s.Steps)
	if q.Active() {
		t.Error("sequence active before the first step")
	}
	want := []string{"collision", "orbit"}
	for i, w := range want {
		step, ok := q.Next()
		if !ok || step.ScenarioType != w || q.Index() != i {
			t.Fatalf("step %d = %+v ok=%v", i, step, ok)
		}
	}
	if _, ok := q.Next(); ok {
		t.Error("Next past the last step should end the sequence")
	}
	if q.Active() {
		t.Error("sequence still active after the end")
	}
	if _, ok := q.Next(); ok {
		t.Error("ended sequence restarted")
	}
}
