package main

import (
	"math"
	"math/rand"
	"testing"
)

func TestQubitBasisProbabilities(t *testing.T) {
	zero := QubitZero()
	if zero.Prob0() != 1 || zero.Prob1() != 0 {
		t.Errorf("|0⟩ probabilities: %v, %v", zero.Prob0(), zero.Prob1())
	}

	plus := QubitPlus()
	if !approxEq(plus.Prob0(), 0.5, 1e-12) || !approxEq(plus.Prob1(), 0.5, 1e-12) {
		t.Errorf("|+⟩ probabilities: %v, %v", plus.Prob0(), plus.Prob1())
	}
}

func TestNewQubitNormalizes(t *testing.T) {
	q := NewQubit(3, 4)
	if !q.IsNormalized() {
		t.Errorf("NewQubit(3,4) not normalized: %v", q)
	}
	if !approxEq(q.Prob0(), 9.0/25.0, 1e-12) {
		t.Errorf("Prob0 = %v, want 0.36", q.Prob0())
	}
}

func TestNewQubitZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero amplitudes")
		}
	}()
	NewQubit(0, 0)
}

func TestQubitFromBloch(t *testing.T) {
	// θ=π/2, φ=0 is |+⟩.
	q := QubitFromBloch(math.Pi/2, 0)
	x, y, z := q.Bloch()
	if !approxEq(x, 1, 1e-12) || !approxEq(y, 0, 1e-12) || !approxEq(z, 0, 1e-12) {
		t.Errorf("Bloch(|+⟩) = (%v, %v, %v), want (1,0,0)", x, y, z)
	}

	// θ=π/2, φ=π/2 is |+i⟩.
	qi := QubitFromBloch(math.Pi/2, math.Pi/2)
	x, y, z = qi.Bloch()
	if !approxEq(y, 1, 1e-12) {
		t.Errorf("Bloch(|+i⟩) y = %v, want 1", y)
	}
	_ = x
	_ = z
}

func TestQubitEntropyBoundaries(t *testing.T) {
	if got := QubitZero().Entropy(); !approxEq(got, 0, 1e-12) {
		t.Errorf("entropy(|0⟩) = %v, want 0", got)
	}
	if got := QubitOne().Entropy(); !approxEq(got, 0, 1e-12) {
		t.Errorf("entropy(|1⟩) = %v, want 0", got)
	}
	if got := QubitPlus().Entropy(); !approxEq(got, 1, 1e-12) {
		t.Errorf("entropy(|+⟩) = %v, want 1", got)
	}
}

func TestQubitPurityIsOne(t *testing.T) {
	for _, q := range []Qubit{QubitZero(), QubitPlus(), QubitMinusI(), QubitFromBloch(0.7, 2.1)} {
		if !approxEq(q.Purity(), 1, 1e-10) {
			t.Errorf("purity = %v for %v, want 1", q.Purity(), q)
		}
	}
}

func TestGateRoundTrips(t *testing.T) {
	// H∘H, X∘X, and S†∘S all return to the start state.
	start := QubitFromBloch(1.1, 0.4)

	hh := start.Apply(GateH()).Apply(GateH())
	if !complexApproxEq(hh.A0, start.A0, 1e-10) || !complexApproxEq(hh.A1, start.A1, 1e-10) {
		t.Errorf("H∘H changed state: %v -> %v", start, hh)
	}

	xx := start.Apply(GateX()).Apply(GateX())
	if !complexApproxEq(xx.A0, start.A0, 1e-10) || !complexApproxEq(xx.A1, start.A1, 1e-10) {
		t.Errorf("X∘X changed state: %v -> %v", start, xx)
	}

	ss := start.Apply(GateS()).Apply(GateSdg())
	if !complexApproxEq(ss.A0, start.A0, 1e-10) || !complexApproxEq(ss.A1, start.A1, 1e-10) {
		t.Errorf("S†∘S changed state: %v -> %v", start, ss)
	}
}

func TestTSquaredIsS(t *testing.T) {
	viaT := QubitPlus().Apply(GateT()).Apply(GateT())
	viaS := QubitPlus().Apply(GateS())
	if !complexApproxEq(viaT.A0, viaS.A0, 1e-10) || !complexApproxEq(viaT.A1, viaS.A1, 1e-10) {
		t.Errorf("T² != S: %v vs %v", viaT, viaS)
	}
}

func TestQubitMeasureCollapse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bit, post := QubitPlus().Measure(rng)
	if bit == 0 && post != QubitZero() {
		t.Errorf("measured 0 but post-state is %v", post)
	}
	if bit == 1 && post != QubitOne() {
		t.Errorf("measured 1 but post-state is %v", post)
	}
	// Re-measuring the collapsed state is deterministic.
	again, _ := post.Measure(rng)
	if again != bit {
		t.Errorf("re-measurement gave %d after %d", again, bit)
	}
}

func TestQubitMeasureConvergence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	plus := QubitPlus()
	ones := 0
	const shots = 10000
	for i := 0; i < shots; i++ {
		bit, _ := plus.Measure(rng)
		ones += bit
	}
	frac := float64(ones) / shots
	if math.Abs(frac-0.5) > 0.05 {
		t.Errorf("|+⟩ measured 1 with frequency %v, want ≈0.5", frac)
	}
}

func TestQubitCircuitRun(t *testing.T) {
	c := QubitCircuit{
		Initial: QubitZero(),
		Steps: []QubitStep{
			{Name: "h"},
			{Name: "rz", Params: []float64{math.Pi}},
			{Name: "h"},
		},
	}
	// H·RZ(π)·H = X up to global phase, so |0⟩ ends in |1⟩.
	q := c.Run()
	if !approxEq(q.Prob1(), 1, 1e-10) {
		t.Errorf("H·RZ(π)·H|0⟩: Prob1 = %v, want 1", q.Prob1())
	}
}

func TestQubitCircuitUnknownGatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown gate")
		}
	}()
	c := QubitCircuit{Initial: QubitZero(), Steps: []QubitStep{{Name: "warp"}}}
	c.Run()
}
