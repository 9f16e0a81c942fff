package vec

import (
	"math"
	"testing"
)

func TestNormalizeZeroVectorStaysZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Fatalf("expected zero vector, got %+v", got)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 12}.Normalize()
	if l := v.Length(); math.Abs(l-1) > 1e-9 {
		t.Fatalf("expected unit length, got %.9f", l)
	}
}

func TestFlatDropsVertical(t *testing.T) {
	v := Vec3{X: 1, Y: 5, Z: 2}.Flat()
	if v.Y != 0 || v.X != 1 || v.Z != 2 {
		t.Fatalf("expected vertical zeroed only, got %+v", v)
	}
}

func TestDistSqMatchesDist(t *testing.T) {
	a := Vec3{X: 1, Z: 2}
	b := Vec3{X: 4, Z: 6}
	if d := a.Dist(b); math.Abs(d-5) > 1e-9 {
		t.Fatalf("expected distance 5, got %.9f", d)
	}
	if dsq := a.DistSq(b); math.Abs(dsq-25) > 1e-9 {
		t.Fatalf("expected squared distance 25, got %.9f", dsq)
	}
}

func TestStepNeverOvershoots(t *testing.T) {
	from := Vec3{}
	to := Vec3{X: 1}
	dir := to.Sub(from).Normalize()
	stepped := from.Add(dir.Scale(0.4))
	if stepped.X != 0.4 {
		t.Fatalf("expected partial step, got %+v", stepped)
	}
}
