package main

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// normTolerance is the slack allowed on the unit-norm invariant.
const normTolerance = 1e-10

// Qubit is a single-qubit state: an ordered pair of complex amplitudes over
// the |0⟩ and |1⟩ basis. It is a small immutable value; gate application
// returns a new Qubit rather than mutating in place.
type Qubit struct {
	A0, A1 Complex
}

// NewQubit builds a qubit from raw amplitudes, normalizing them. Panics when
// both amplitudes are zero.
func NewQubit(a0, a1 Complex) Qubit {
	n := math.Sqrt(Magnitude2(a0) + Magnitude2(a1))
	if n == 0 {
		panic("qubit amplitudes cannot both be zero")
	}
	inv := complex(1/n, 0)
	return Qubit{A0: a0 * inv, A1: a1 * inv}
}

// QubitFromBloch builds the qubit at Bloch angles (θ, φ):
// cos(θ/2)|0⟩ + e^{iφ}·sin(θ/2)|1⟩.
func QubitFromBloch(theta, phi float64) Qubit {
	return Qubit{
		A0: complex(math.Cos(theta/2), 0),
		A1: cmplx.Exp(complex(0, phi)) * complex(math.Sin(theta/2), 0),
	}
}

// Named basis and axis states.
func QubitZero() Qubit  { return Qubit{A0: 1} }
func QubitOne() Qubit   { return Qubit{A1: 1} }
func QubitPlus() Qubit  { return Qubit{A0: complex(invSqrt2, 0), A1: complex(invSqrt2, 0)} }
func QubitMinus() Qubit { return Qubit{A0: complex(invSqrt2, 0), A1: complex(-invSqrt2, 0)} }
func QubitPlusI() Qubit { return Qubit{A0: complex(invSqrt2, 0), A1: complex(0, invSqrt2)} }
func QubitMinusI() Qubit {
	return Qubit{A0: complex(invSqrt2, 0), A1: complex(0, -invSqrt2)}
}

// Prob0 returns the probability of measuring |0⟩.
func (q Qubit) Prob0() float64 {
	return Magnitude2(q.A0)
}

// Prob1 returns the probability of measuring |1⟩.
func (q Qubit) Prob1() float64 {
	return Magnitude2(q.A1)
}

// IsNormalized reports whether |a0|² + |a1|² is 1 within tolerance.
func (q Qubit) IsNormalized() bool {
	return math.Abs(q.Prob0()+q.Prob1()-1) < normTolerance
}

// Bloch returns the (x, y, z) Bloch-sphere coordinates of the state.
func (q Qubit) Bloch() (x, y, z float64) {
	cross := cmplx.Conj(q.A0) * q.A1
	x = 2 * real(cross)
	y = 2 * imag(cross)
	z = q.Prob0() - q.Prob1()
	return
}

// Entropy returns the Shannon entropy in bits of the measurement
// distribution: 0 for basis states, 1 for an equal superposition.
func (q Qubit) Entropy() float64 {
	h := 0.0
	for _, p := range [2]float64{q.Prob0(), q.Prob1()} {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// Purity returns tr(ρ²) = (1 + |r|²)/2 where r is the Bloch vector. Always 1
// for the pure states this type can hold; kept as a derived quantity so
// callers comparing against mixed-state baselines get the right number.
func (q Qubit) Purity() float64 {
	x, y, z := q.Bloch()
	return (1 + x*x + y*y + z*z) / 2
}

// Apply returns m·(a0, a1) as a new Qubit. The input matrix must be 2×2 and
// unitary; unitarity keeps the result normalized without an explicit
// renormalize, and the invariant is checked in tests rather than here.
func (q Qubit) Apply(m *Matrix) Qubit {
	if m.Rows != 2 || m.Cols != 2 {
		panic("single-qubit gate must be 2x2")
	}
	return Qubit{
		A0: m.At(0, 0)*q.A0 + m.At(0, 1)*q.A1,
		A1: m.At(1, 0)*q.A0 + m.At(1, 1)*q.A1,
	}
}

// Measure samples one Born-rule outcome and returns the bit along with the
// collapsed post-measurement state.
func (q Qubit) Measure(rng *rand.Rand) (int, Qubit) {
	if rng.Float64() < q.Prob0() {
		return 0, QubitZero()
	}
	return 1, QubitOne()
}

// ──────────────────────────── Single-qubit circuits ────────────────────────────

// QubitStep is one gate application in a single-qubit circuit.
type QubitStep struct {
	Name   string
	Params []float64
}

// QubitCircuit is an initial qubit plus a replayable ordered list of gates.
type QubitCircuit struct {
	Initial Qubit
	Steps   []QubitStep
}

// Run replays the circuit from the initial state and returns the final state.
// Panics on a step that is not a single-qubit unitary, since a malformed
// program is a caller bug.
func (c *QubitCircuit) Run() Qubit {
	q := c.Initial
	for _, step := range c.Steps {
		m := singleQubitGateMatrix(step.Name, step.Params)
		if m == nil {
			panic("unknown single-qubit gate: " + step.Name)
		}
		q = q.Apply(m)
	}
	return q
}
