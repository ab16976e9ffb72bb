package effects

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestFlashLifecycle(t *testing.T) {
	cfg := testConfig(t)
	f := NewFlash(cfg.Flash, r3.Vec{}, FlashColor)

	ticks := 0
	prevScale := f.Scale
	for !f.Finished() {
		f.Update(1.0 / 60.0)
		ticks++
		if f.Scale <= prevScale {
			t.Fatalf("flash did not grow: %v -> %v", prevScale, f.Scale)
		}
		prevScale = f.Scale
		if ticks > 100 {
			t.Fatal("flash never finished")
		}
	}
	// 1 - 0.12k <= 0 first holds at k = 9
	if ticks != 9 {
		t.Errorf("flash finished after %d ticks, want 9", ticks)
	}
}

func TestRingLifecycle(t *testing.T) {
	cfg := testConfig(t)
	r := NewRing(cfg.Ring, r3.Vec{})

	ticks := 0
	for !r.Finished() {
		r.Update(1.0 / 60.0)
		ticks++
		if ticks > 200 {
			t.Fatal("ring never finished")
		}
	}
	// 0.85 * 0.9^k <= 0.02 first holds at k = 36
	if ticks != 36 {
		t.Errorf("ring finished after %d ticks, want 36", ticks)
	}
	if r.Scale <= 1 {
		t.Errorf("ring scale = %v, want expanded", r.Scale)
	}
}

func TestFactoryImpact(t *testing.T) {
	cfg := testConfig(t)
	f := NewImpactEffectFactory(cfg, rand.New(rand.NewSource(1)))

	list := f.Impact(r3.Vec{X: 5.88}, r3.Vec{X: 1}, 6)

	kinds := map[Kind]int{}
	for _, e := range list {
		k, ok := e.(Kinded)
		if !ok {
			t.Fatalf("effect %T does not report its kind", e)
		}
		kinds[k.Kind()]++
	}
	if kinds[KindFlash] != 1 || kinds[KindRing] != 1 || kinds[KindDebris] != 1 {
		t.Errorf("impact kinds = %v, want one flash, ring and debris", kinds)
	}
}

func TestFactoryExplosionColor(t *testing.T) {
	cfg := testConfig(t)
	f := NewImpactEffectFactory(cfg, rand.New(rand.NewSource(1)))

	list := f.Explosion(r3.Vec{}, 0x123456)
	if len(list) != 1 {
		t.Fatalf("explosion returned %d effects, want 1", len(list))
	}
	flash, ok := list[0].(*Flash)
	if !ok || flash.Color != 0x123456 {
		t.Errorf("explosion = %#v, want flash colored 0x123456", list[0])
	}
}

func TestUpdateAllPrunes(t *testing.T) {
	cfg := testConfig(t)
	f := NewImpactEffectFactory(cfg, rand.New(rand.NewSource(1)))

	list := append(f.MoltenFlash(r3.Vec{}), f.Impact(r3.Vec{}, r3.Vec{Y: 1}, 1)...)
	total := 0
	for i := 0; i < 500 && len(list) > 0; i++ {
		var n int
		list, n = UpdateAll(list, 1.0/60.0)
		total += n
	}
	if len(list) != 0 {
		t.Errorf("%d effects never finished", len(list))
	}
	if total != 5 {
		t.Errorf("disposed %d effects, want 5", total)
	}
}
