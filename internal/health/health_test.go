package health

import "testing"

func TestDamageFloorsAtZeroAndFiresDeathOnce(t *testing.T) {
	h := New(50)
	deaths := 0
	h.OnDeath(func() { deaths++ })

	h.Damage(80)
	if h.Current() != 0 {
		t.Fatalf("expected health floored at 0, got %.1f", h.Current())
	}
	if deaths != 1 {
		t.Fatalf("expected one death callback, got %d", deaths)
	}

	// Further damage on an empty pool is a no-op.
	h.Damage(10)
	if deaths != 1 {
		t.Fatalf("expected no second callback, got %d", deaths)
	}
}

func TestNonPositiveDamageIsIgnored(t *testing.T) {
	h := New(50)
	h.Damage(0)
	h.Damage(-5)
	if h.Current() != 50 {
		t.Fatalf("expected health untouched, got %.1f", h.Current())
	}
}

func TestHealCeilsAtMax(t *testing.T) {
	h := New(50)
	h.Damage(20)
	h.Heal(100)
	if h.Current() != 50 {
		t.Fatalf("expected heal capped at max, got %.1f", h.Current())
	}
}

func TestResetRestoresAndRearmsDeath(t *testing.T) {
	h := New(50)
	deaths := 0
	h.OnDeath(func() { deaths++ })

	h.Damage(50)
	h.Reset()
	if h.Current() != 50 {
		t.Fatalf("expected full health after reset, got %.1f", h.Current())
	}

	h.Damage(50)
	if deaths != 2 {
		t.Fatalf("expected death to fire again after reset, got %d", deaths)
	}
}

func TestFraction(t *testing.T) {
	h := New(200)
	h.Damage(50)
	if f := h.Fraction(); f != 0.75 {
		t.Fatalf("expected fraction 0.75, got %.2f", f)
	}
}
