package main

import (
	"math"
	"testing"
)

func approxEq(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func complexApproxEq(a, b Complex, tol float64) bool {
	return Magnitude(a-b) < tol
}

func TestMagnitude2(t *testing.T) {
	if got := Magnitude2(complex(3, 4)); !approxEq(got, 25, 1e-12) {
		t.Errorf("Magnitude2(3+4i) = %v, want 25", got)
	}
	if got := Magnitude(complex(3, 4)); !approxEq(got, 5, 1e-12) {
		t.Errorf("Magnitude(3+4i) = %v, want 5", got)
	}
}

func TestVecOps(t *testing.T) {
	a := []Complex{1, 2i}
	b := []Complex{3, -1i}

	sum := VecAdd(a, b)
	if !complexApproxEq(sum[0], 4, 1e-12) || !complexApproxEq(sum[1], 1i, 1e-12) {
		t.Errorf("VecAdd = %v", sum)
	}

	diff := VecSub(a, b)
	if !complexApproxEq(diff[0], -2, 1e-12) || !complexApproxEq(diff[1], 3i, 1e-12) {
		t.Errorf("VecSub = %v", diff)
	}

	scaled := VecScale(a, 2)
	if !complexApproxEq(scaled[1], 4i, 1e-12) {
		t.Errorf("VecScale = %v", scaled)
	}
}

func TestVecAddLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	VecAdd([]Complex{1}, []Complex{1, 2})
}

func TestInnerProductConjugatesLeft(t *testing.T) {
	a := []Complex{1i, 0}
	b := []Complex{1i, 0}
	// ⟨a|a⟩ must be real 1, not -1.
	if got := InnerProduct(a, b); !complexApproxEq(got, 1, 1e-12) {
		t.Errorf("InnerProduct = %v, want 1", got)
	}
}

func TestNormalizeVec(t *testing.T) {
	v := []Complex{3, 4i}
	NormalizeVec(v)
	if !approxEq(Norm(v), 1, 1e-12) {
		t.Errorf("norm after NormalizeVec = %v", Norm(v))
	}

	zero := []Complex{0, 0}
	NormalizeVec(zero)
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector changed by NormalizeVec: %v", zero)
	}
}

func TestStateFidelity(t *testing.T) {
	plus := []Complex{complex(invSqrt2, 0), complex(invSqrt2, 0)}
	minus := []Complex{complex(invSqrt2, 0), complex(-invSqrt2, 0)}
	zero := []Complex{1, 0}

	if got := StateFidelity(plus, plus); !approxEq(got, 1, 1e-12) {
		t.Errorf("fidelity(|+⟩,|+⟩) = %v, want 1", got)
	}
	if got := StateFidelity(plus, minus); !approxEq(got, 0, 1e-12) {
		t.Errorf("fidelity(|+⟩,|−⟩) = %v, want 0", got)
	}
	if got := StateFidelity(plus, zero); !approxEq(got, 0.5, 1e-12) {
		t.Errorf("fidelity(|+⟩,|0⟩) = %v, want 0.5", got)
	}
}

func TestKroneckerVec(t *testing.T) {
	a := []Complex{1, 2}
	b := []Complex{3, 4}
	got := KroneckerVec(a, b)
	want := []Complex{3, 4, 6, 8}
	for i := range want {
		if !complexApproxEq(got[i], want[i], 1e-12) {
			t.Fatalf("KroneckerVec[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMatrixMulVec(t *testing.T) {
	h := GateH()
	out := h.MulVec([]Complex{1, 0})
	if !complexApproxEq(out[0], complex(invSqrt2, 0), 1e-12) ||
		!complexApproxEq(out[1], complex(invSqrt2, 0), 1e-12) {
		t.Errorf("H|0⟩ = %v", out)
	}
}

func TestMatrixAdjointUnitarity(t *testing.T) {
	// U†·U = I for every fixed gate.
	gates := map[string]*Matrix{
		"h": GateH(), "x": GateX(), "y": GateY(), "z": GateZ(),
		"s": GateS(), "sdg": GateSdg(), "t": GateT(), "tdg": GateTdg(),
		"rx": GateRX(0.7), "ry": GateRY(1.3), "rz": GateRZ(-0.4),
		"p": GateP(math.Pi / 5), "u3": GateU3(0.3, 1.1, -0.8),
	}
	for name, g := range gates {
		prod := g.Adjoint().Mul(g)
		for r := 0; r < 2; r++ {
			for c := 0; c < 2; c++ {
				want := Complex(0)
				if r == c {
					want = 1
				}
				if !complexApproxEq(prod.At(r, c), want, 1e-12) {
					t.Errorf("%s: U†U[%d][%d] = %v, want %v", name, r, c, prod.At(r, c), want)
				}
			}
		}
	}
}

func TestKroneckerMatrix(t *testing.T) {
	// I ⊗ X swaps within low-bit pairs.
	ix := IdentityMatrix(2).Kronecker(GateX())
	v := ix.MulVec([]Complex{1, 0, 0, 0})
	if !complexApproxEq(v[1], 1, 1e-12) {
		t.Errorf("(I⊗X)|00⟩ = %v, want |01⟩", v)
	}
}
