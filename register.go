package main

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// maxRegisterQubits bounds state-vector size (2^26 amplitudes ≈ 1 GiB).
const maxRegisterQubits = 26

// Register is an n-qubit state: 2^n amplitudes indexed by the integer
// encoding of the basis state, bit i of the index being qubit i. The register
// owns its amplitude slice exclusively and every gate mutates it in place;
// callers wanting what-if exploration must Clone or Save first.
type Register struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewRegister creates an n-qubit register initialized to |0…0⟩. Qubit counts
// outside [1, maxRegisterQubits] are programmer errors and panic.
func NewRegister(numQubits int) *Register {
	if numQubits < 1 || numQubits > maxRegisterQubits {
		panic(fmt.Sprintf("register size %d outside supported range [1, %d]", numQubits, maxRegisterQubits))
	}
	amps := make([]Complex, 1<<numQubits)
	amps[0] = 1
	return &Register{Amplitudes: amps, NumQubits: numQubits}
}

// Clone returns a deep copy of the register.
func (r *Register) Clone() *Register {
	amps := make([]Complex, len(r.Amplitudes))
	copy(amps, r.Amplitudes)
	return &Register{Amplitudes: amps, NumQubits: r.NumQubits}
}

// Save snapshots the amplitude vector for a later Restore. Used to sample
// many shots from one prepared state, since measurement is destructive.
func (r *Register) Save() []Complex {
	snap := make([]Complex, len(r.Amplitudes))
	copy(snap, r.Amplitudes)
	return snap
}

// Restore copies a snapshot back into the register.
func (r *Register) Restore(snap []Complex) {
	if len(snap) != len(r.Amplitudes) {
		panic("snapshot length mismatch in Restore")
	}
	copy(r.Amplitudes, snap)
}

// NormSquared returns the sum of squared magnitudes (1 for a valid state).
func (r *Register) NormSquared() float64 {
	sum := 0.0
	for _, a := range r.Amplitudes {
		sum += Magnitude2(a)
	}
	return sum
}

// checkQubit panics when q is out of range; an invalid index is a caller bug.
func (r *Register) checkQubit(q int) {
	if q < 0 || q >= r.NumQubits {
		panic(fmt.Sprintf("qubit index %d out of range for %d-qubit register", q, r.NumQubits))
	}
}

// ──────────────────────────── Gate embedding ────────────────────────────

// ApplySingle applies a 2×2 unitary to qubit t in O(2^n) time and O(1) extra
// space. The amplitude indices split into pairs differing only in bit t;
// iterating i over indices with bit t clear visits each pair exactly once,
// and the pair is updated in place exactly as in the single-qubit case.
func (r *Register) ApplySingle(t int, m *Matrix) {
	r.checkQubit(t)
	if m.Rows != 2 || m.Cols != 2 {
		panic("ApplySingle requires a 2x2 matrix")
	}
	m00, m01 := m.At(0, 0), m.At(0, 1)
	m10, m11 := m.At(1, 0), m.At(1, 1)
	n := len(r.Amplitudes)
	bit := 1 << t
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := r.Amplitudes[i], r.Amplitudes[j]
		r.Amplitudes[i] = m00*a0 + m01*a1
		r.Amplitudes[j] = m10*a0 + m11*a1
	}
}

// CX applies CNOT: for every index with the control bit set, swap the
// amplitude with its target-flipped partner. A permutation, so no
// renormalization.
func (r *Register) CX(control, target int) {
	r.checkQubit(control)
	r.checkQubit(target)
	if control == target {
		panic("CX control and target must differ")
	}
	cBit := 1 << control
	tBit := 1 << target
	for i := range r.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			r.Amplitudes[i], r.Amplitudes[j] = r.Amplitudes[j], r.Amplitudes[i]
		}
	}
}

// CZ negates every amplitude whose control and target bits are both set.
func (r *Register) CZ(control, target int) {
	r.checkQubit(control)
	r.checkQubit(target)
	if control == target {
		panic("CZ control and target must differ")
	}
	mask := 1<<control | 1<<target
	for i := range r.Amplitudes {
		if i&mask == mask {
			r.Amplitudes[i] = -r.Amplitudes[i]
		}
	}
}

// SWAP exchanges qubits q1 and q2, visiting each unordered index pair once.
func (r *Register) SWAP(q1, q2 int) {
	r.checkQubit(q1)
	r.checkQubit(q2)
	if q1 == q2 {
		return
	}
	bit1 := 1 << q1
	bit2 := 1 << q2
	for i := range r.Amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i &^ bit1) | bit2
			r.Amplitudes[i], r.Amplitudes[j] = r.Amplitudes[j], r.Amplitudes[i]
		}
	}
}

// CCX applies the Toffoli gate: an X on target gated on both controls.
func (r *Register) CCX(c1, c2, target int) {
	r.checkQubit(c1)
	r.checkQubit(c2)
	r.checkQubit(target)
	if c1 == c2 || c1 == target || c2 == target {
		panic("CCX qubits must be distinct")
	}
	cMask := 1<<c1 | 1<<c2
	tBit := 1 << target
	for i := range r.Amplitudes {
		if i&cMask == cMask && i&tBit == 0 {
			j := i | tBit
			r.Amplitudes[i], r.Amplitudes[j] = r.Amplitudes[j], r.Amplitudes[i]
		}
	}
}

// CP applies a controlled phase shift: amplitudes with both bits set pick up
// e^{iλ}.
func (r *Register) CP(control, target int, lambda float64) {
	r.checkQubit(control)
	r.checkQubit(target)
	if control == target {
		panic("CP control and target must differ")
	}
	phase := CExp(complex(0, lambda))
	mask := 1<<control | 1<<target
	for i := range r.Amplitudes {
		if i&mask == mask {
			r.Amplitudes[i] *= phase
		}
	}
}

// FlipSign negates exactly one amplitude. Grover's oracle and diffusion are
// built from this.
func (r *Register) FlipSign(index int) {
	if index < 0 || index >= len(r.Amplitudes) {
		panic(fmt.Sprintf("basis index %d out of range", index))
	}
	r.Amplitudes[index] = -r.Amplitudes[index]
}

// HAll applies a Hadamard to every qubit.
func (r *Register) HAll() {
	h := GateH()
	for q := 0; q < r.NumQubits; q++ {
		r.ApplySingle(q, h)
	}
}

// ApplyInstruction applies one serialized gate instruction to the register.
// barrier is a no-op and measure is handled by the execution layer, so both
// pass through silently. Unknown names or missing parameters surface as the
// typed serialization errors.
func (r *Register) ApplyInstruction(inst GateInstruction) error {
	switch inst.Name {
	case "barrier", "measure":
		return nil
	case "cx":
		if len(inst.Qubits) != 2 {
			return &UnsupportedGateError{Name: inst.Name}
		}
		r.CX(inst.Qubits[0], inst.Qubits[1])
		return nil
	case "cz":
		if len(inst.Qubits) != 2 {
			return &UnsupportedGateError{Name: inst.Name}
		}
		r.CZ(inst.Qubits[0], inst.Qubits[1])
		return nil
	case "swap":
		if len(inst.Qubits) != 2 {
			return &UnsupportedGateError{Name: inst.Name}
		}
		r.SWAP(inst.Qubits[0], inst.Qubits[1])
		return nil
	case "cp":
		if len(inst.Qubits) != 2 {
			return &UnsupportedGateError{Name: inst.Name}
		}
		if len(inst.Params) < 1 {
			return &MissingParamsError{Name: inst.Name, Want: 1}
		}
		r.CP(inst.Qubits[0], inst.Qubits[1], inst.Params[0])
		return nil
	case "ccx":
		if len(inst.Qubits) != 3 {
			return &UnsupportedGateError{Name: inst.Name}
		}
		r.CCX(inst.Qubits[0], inst.Qubits[1], inst.Qubits[2])
		return nil
	}

	shape, ok := gateShapes[inst.Name]
	if !ok {
		return &UnsupportedGateError{Name: inst.Name}
	}
	if len(inst.Params) < shape.params {
		return &MissingParamsError{Name: inst.Name, Want: shape.params}
	}
	m := singleQubitGateMatrix(inst.Name, inst.Params)
	if m == nil {
		return &UnsupportedGateError{Name: inst.Name}
	}
	if len(inst.Qubits) != 1 {
		return &UnsupportedGateError{Name: inst.Name}
	}
	r.ApplySingle(inst.Qubits[0], m)
	return nil
}

// ──────────────────────────── Probabilities ────────────────────────────

// Probability returns |amp[index]|².
func (r *Register) Probability(index int) float64 {
	return Magnitude2(r.Amplitudes[index])
}

// Probabilities returns the full Born distribution over basis states.
func (r *Register) Probabilities() []float64 {
	out := make([]float64, len(r.Amplitudes))
	for i, a := range r.Amplitudes {
		out[i] = Magnitude2(a)
	}
	return out
}

// QubitProbability returns P(bit q = 1): the sum of |amp[i]|² over indices
// with bit q set.
func (r *Register) QubitProbability(q int) float64 {
	r.checkQubit(q)
	bit := 1 << q
	p := 0.0
	for i, a := range r.Amplitudes {
		if i&bit != 0 {
			p += Magnitude2(a)
		}
	}
	return p
}

// MarginalProbabilities returns P(bit q = 1) for every qubit in one pass.
func (r *Register) MarginalProbabilities() []float64 {
	probs := make([]float64, r.NumQubits)
	for i, a := range r.Amplitudes {
		p := Magnitude2(a)
		if p == 0 {
			continue
		}
		for q := 0; q < r.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q] += p
			}
		}
	}
	return probs
}

// ──────────────────────────── Measurement ────────────────────────────

// Measure samples one full measurement by walking the cumulative probability
// distribution in index order, then collapses the register to the sampled
// basis state. Returns the sampled index.
func (r *Register) Measure(rng *rand.Rand) int {
	target := rng.Float64()
	cum := 0.0
	outcome := len(r.Amplitudes) - 1
	for i, a := range r.Amplitudes {
		cum += Magnitude2(a)
		if cum > target {
			outcome = i
			break
		}
	}
	for i := range r.Amplitudes {
		r.Amplitudes[i] = 0
	}
	r.Amplitudes[outcome] = 1
	return outcome
}

// MeasureQubit samples qubit q alone, projects the state onto the consistent
// subspace, and renormalizes the survivors. Returns the sampled bit.
func (r *Register) MeasureQubit(q int, rng *rand.Rand) int {
	r.checkQubit(q)
	p1 := r.QubitProbability(q)
	bit := 1 << q

	outcome := 0
	pKeep := 1 - p1
	if rng.Float64() < p1 {
		outcome = 1
		pKeep = p1
	}

	inv := complex(1/math.Sqrt(pKeep), 0)
	for i := range r.Amplitudes {
		set := i&bit != 0
		if set == (outcome == 1) {
			r.Amplitudes[i] *= inv
		} else {
			r.Amplitudes[i] = 0
		}
	}
	return outcome
}

// Sample measures the register `shots` times, restoring the pre-measurement
// state around each shot, and returns counts keyed by bitstring.
func (r *Register) Sample(shots int, rng *rand.Rand) map[string]int {
	snap := r.Save()
	counts := make(map[string]int)
	for s := 0; s < shots; s++ {
		outcome := r.Measure(rng)
		counts[FormatBasisState(outcome, r.NumQubits)]++
		r.Restore(snap)
	}
	return counts
}

// FormatBasisState renders a basis index as a bitstring, most significant
// qubit first — qubit 0 is the rightmost character, matching the counts
// convention of the wider tooling ecosystem.
func FormatBasisState(index, numQubits int) string {
	s := strconv.FormatInt(int64(index), 2)
	if len(s) < numQubits {
		s = strings.Repeat("0", numQubits-len(s)) + s
	}
	return s
}

// ParseBasisState is the inverse of FormatBasisState.
func ParseBasisState(bits string) (int, error) {
	v, err := strconv.ParseInt(bits, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bitstring %q: %w", bits, err)
	}
	return int(v), nil
}
