package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/scenario"
)

// headOn is a stationary planet and a smaller body closing at 2 units/s.
// Contact at 0.9*(1+0.5) = 1.35 gives a first impact near 4.325 s.
func headOn() *scenario.Setup {
	return &scenario.Setup{
		ScenarioType: "collision",
		Objects: []scenario.ObjectSpec{
			{Name: "Planet", Size: 1, Mass: 10},
			{Name: "Moonlet", Size: 0.5, Mass: 1, Position: scenario.Vec3{X: 10}, Velocity: scenario.Vec3{X: -2}},
		},
	}
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	// Undamped, so the closing speed stays constant
	cfg.Physics.LinearDamping = 0
	return cfg
}

func TestRoles(t *testing.T) {
	tests := []struct {
		name         string
		objs         []scenario.ObjectSpec
		imp, primary int
		ok           bool
	}{
		{"too few", []scenario.ObjectSpec{{Name: "A", Size: 1}}, -1, -1, false},
		{"smallest is impactor", []scenario.ObjectSpec{{Name: "A", Size: 3}, {Name: "B", Size: 1}, {Name: "C", Size: 2}}, 1, 0, true},
		{"asteroid by name", []scenario.ObjectSpec{{Name: "Rock", Size: 0.5}, {Name: "Asteroid", Size: 2}, {Name: "Earth", Size: 5}}, 1, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp, prim, ok := Roles(tt.objs)
			if ok != tt.ok || (ok && (imp != tt.imp || prim != tt.primary)) {
				t.Errorf("Roles = (%d, %d, %v), want (%d, %d, %v)", imp, prim, ok, tt.imp, tt.primary, tt.ok)
			}
		})
	}
}

func TestApplyLeavesBaseUntouched(t *testing.T) {
	base := headOn()
	pv := NewParamVector()

	out := pv.Apply(base, []float64{1.5, 0.5})

	if got := out.Objects[1].Velocity.X; math.Abs(got+3) > 1e-9 {
		t.Errorf("scaled velocity = %v, want -3", got)
	}
	if got := out.Objects[1].Position.Y; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("offset = %v, want 0.5 (half the primary radius)", got)
	}
	if base.Objects[1].Velocity.X != -2 || base.Objects[1].Position.Y != 0 {
		t.Error("Apply modified the base scenario")
	}
}

func TestApplyClampsToBounds(t *testing.T) {
	pv := NewParamVector()
	out := pv.Apply(headOn(), []float64{100, -100})

	if got := out.Objects[1].Velocity.X; math.Abs(got+8) > 1e-9 {
		t.Errorf("velocity = %v, want speed scale clamped to 4", got)
	}
	if got := out.Objects[1].Position.Y; math.Abs(got+0.9) > 1e-9 {
		t.Errorf("offset = %v, want -0.9", got)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{2.2, -0.3}
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("param %d = %v, want %v", i, back[i], raw[i])
		}
	}
}

func TestRunFindsFirstImpact(t *testing.T) {
	cfg := loadConfig(t)
	fe := NewFitnessEvaluator(NewParamVector(), headOn(), cfg, 4.325, 1)

	res := fe.Run(headOn())
	if !res.Hit {
		t.Fatalf("no impact, closest gap %v", res.ClosestGap)
	}
	if math.Abs(res.ImpactTime-4.325) > 0.05 {
		t.Errorf("impact at %.3fs, want ~4.325s", res.ImpactTime)
	}
}

func TestEvaluateRanksFasterLaunch(t *testing.T) {
	cfg := loadConfig(t)
	fe := NewFitnessEvaluator(NewParamVector(), headOn(), cfg, 4.325/2, 1)

	slow := fe.Evaluate([]float64{1, 0})
	fast := fe.Evaluate([]float64{2, 0})
	if fast >= slow {
		t.Errorf("fitness at 2x speed = %v, want below 1x = %v", fast, slow)
	}
	if !fe.LastRun().Hit {
		t.Error("2x launch missed")
	}
}

func TestMissScoresWorseThanAnyHit(t *testing.T) {
	cfg := loadConfig(t)
	base := headOn()
	base.Objects[1].Velocity = scenario.Vec3{X: 2} // flying away
	fe := NewFitnessEvaluator(NewParamVector(), base, cfg, 1, 1)

	miss := fe.Evaluate([]float64{1, 0})
	if fe.LastRun().Hit {
		t.Fatal("receding body hit")
	}
	worstHit := (horizon - 1) * (horizon - 1)
	if miss <= worstHit {
		t.Errorf("miss fitness %v, want above worst hit %v", miss, worstHit)
	}
}
