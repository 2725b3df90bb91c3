package main

import (
	"fmt"
	"math"
	"math/rand"
)

// The algorithm library is built purely on the register's gate and
// measurement primitives. Every run takes an explicit *rand.Rand so shots are
// reproducible under a fixed seed.

// ──────────────────────────── Bell states ────────────────────────────

// BellVariant selects which of the four Bell states to prepare.
type BellVariant int

const (
	BellPhiPlus BellVariant = iota // (|00⟩+|11⟩)/√2
	BellPhiMinus
	BellPsiPlus
	BellPsiMinus
)

func (v BellVariant) String() string {
	switch v {
	case BellPhiPlus:
		return "Φ+"
	case BellPhiMinus:
		return "Φ−"
	case BellPsiPlus:
		return "Ψ+"
	case BellPsiMinus:
		return "Ψ−"
	}
	return "?"
}

// BellResult reports the measured distribution of a Bell-state run and the
// correlation coefficient (N00+N11 − N01−N10)/shots.
type BellResult struct {
	Variant     BellVariant
	Counts      map[string]int
	Shots       int
	Correlation float64
}

// RunBell prepares the selected Bell state with H(0) then CNOT(0,1), plus the
// extra X/Z that pick the variant, and samples it.
func RunBell(variant BellVariant, shots int, rng *rand.Rand) *BellResult {
	r := NewRegister(2)
	r.ApplySingle(0, GateH())
	r.CX(0, 1)
	switch variant {
	case BellPhiMinus:
		r.ApplySingle(0, GateZ())
	case BellPsiPlus:
		r.ApplySingle(1, GateX())
	case BellPsiMinus:
		r.ApplySingle(0, GateZ())
		r.ApplySingle(1, GateX())
	}

	counts := r.Sample(shots, rng)
	same := counts["00"] + counts["11"]
	diff := counts["01"] + counts["10"]
	return &BellResult{
		Variant:     variant,
		Counts:      counts,
		Shots:       shots,
		Correlation: float64(same-diff) / float64(shots),
	}
}

// ──────────────────────────── Deutsch–Jozsa ────────────────────────────

// OracleType selects the hidden function for Deutsch–Jozsa.
type OracleType int

const (
	OracleConstantZero OracleType = iota
	OracleConstantOne
	OracleBalanced // f(x) = x₀ ⊕ x₁ ⊕ … ⊕ xₙ₋₁
)

func (o OracleType) String() string {
	switch o {
	case OracleConstantZero:
		return "constant-0"
	case OracleConstantOne:
		return "constant-1"
	case OracleBalanced:
		return "balanced"
	}
	return "?"
}

// DeutschJozsaResult reports the classification and the raw input-register
// measurements that produced it.
type DeutschJozsaResult struct {
	Oracle     OracleType
	Shots      int
	Counts     map[string]int
	IsConstant bool
}

// RunDeutschJozsa distinguishes constant from balanced oracles on n input
// qubits with one ancilla. The oracle is constant iff every shot measures
// all-zero on the inputs. Panics when numQubits is outside [1, 10]; the
// per-shot full re-preparation keeps this path small.
func RunDeutschJozsa(numQubits int, oracle OracleType, shots int, rng *rand.Rand) *DeutschJozsaResult {
	if numQubits < 1 || numQubits > 10 {
		panic(fmt.Sprintf("Deutsch-Jozsa supports 1..10 input qubits, got %d", numQubits))
	}

	ancilla := numQubits
	r := NewRegister(numQubits + 1)
	r.ApplySingle(ancilla, GateX())
	for q := 0; q <= numQubits; q++ {
		r.ApplySingle(q, GateH())
	}
	switch oracle {
	case OracleConstantZero:
		// identity
	case OracleConstantOne:
		r.ApplySingle(ancilla, GateX())
	case OracleBalanced:
		for q := 0; q < numQubits; q++ {
			r.CX(q, ancilla)
		}
	}
	for q := 0; q < numQubits; q++ {
		r.ApplySingle(q, GateH())
	}

	snap := r.Save()
	counts := make(map[string]int)
	inputMask := (1 << numQubits) - 1
	allZero := true
	for s := 0; s < shots; s++ {
		outcome := r.Measure(rng) & inputMask
		counts[FormatBasisState(outcome, numQubits)]++
		if outcome != 0 {
			allZero = false
		}
		r.Restore(snap)
	}

	return &DeutschJozsaResult{
		Oracle:     oracle,
		Shots:      shots,
		Counts:     counts,
		IsConstant: allZero,
	}
}

// ──────────────────────────── Grover search ────────────────────────────

// GroverResult reports the measured distribution, the observed success
// probability for the target, and the theoretical expectation.
type GroverResult struct {
	Target          int
	Iterations      int
	Counts          map[string]int
	Shots           int
	SuccessProb     float64
	TheoreticalProb float64
}

// GroverIterations returns ⌊(π/4)·√N⌋, with a minimum of one iteration.
func GroverIterations(numQubits int) int {
	n := float64(int(1) << numQubits)
	k := int(math.Floor(math.Pi / 4 * math.Sqrt(n)))
	if k < 1 {
		k = 1
	}
	return k
}

// GroverTheoreticalProb is sin²((2k+1)·asin(1/√N)) after k iterations.
func GroverTheoreticalProb(numQubits, iterations int) float64 {
	n := float64(int(1) << numQubits)
	angle := math.Asin(1 / math.Sqrt(n))
	s := math.Sin(float64(2*iterations+1) * angle)
	return s * s
}

// RunGrover searches for the target basis state: uniform superposition, then
// the oracle/diffusion pair repeated the optimal number of times. The oracle
// is a single sign flip on the target; diffusion is H-all, sign flip on every
// index except 0, H-all.
func RunGrover(numQubits, target, shots int, rng *rand.Rand) *GroverResult {
	if numQubits < 1 || numQubits > 12 {
		panic(fmt.Sprintf("Grover supports 1..12 qubits, got %d", numQubits))
	}
	dim := 1 << numQubits
	if target < 0 || target >= dim {
		panic(fmt.Sprintf("Grover target %d out of range for %d qubits", target, numQubits))
	}

	r := NewRegister(numQubits)
	r.HAll()

	iterations := GroverIterations(numQubits)
	for k := 0; k < iterations; k++ {
		r.FlipSign(target)

		r.HAll()
		for i := 1; i < dim; i++ {
			r.FlipSign(i)
		}
		r.HAll()
	}

	counts := r.Sample(shots, rng)
	hits := counts[FormatBasisState(target, numQubits)]
	return &GroverResult{
		Target:          target,
		Iterations:      iterations,
		Counts:          counts,
		Shots:           shots,
		SuccessProb:     float64(hits) / float64(shots),
		TheoreticalProb: GroverTheoreticalProb(numQubits, iterations),
	}
}

// ──────────────────────────── Simon's algorithm ────────────────────────────

// SimonResult reports the recovered secret, or Secret == nil when no
// candidate satisfied enough of the collected vectors. That outcome is a
// normal result, not an error.
type SimonResult struct {
	Secret       *int
	Measurements map[string]int
	Shots        int
	Agreement    float64 // fraction of vectors the best candidate satisfies
}

// RunSimon runs Simon's algorithm for an n-bit secret on 2n qubits: inputs
// 0..n-1, outputs n..2n-1. Each shot prepares fresh, Hadamards the inputs,
// runs the copy oracle plus the secret-masked CNOTs from input 0, Hadamards
// the inputs again, and measures the input register. The secret is recovered
// by brute-force search over nonzero candidates for the one maximizing the
// count of measured vectors y with y·s ≡ 0 (mod 2) — a deliberately
// heuristic solver rather than a GF(2) elimination.
func RunSimon(numQubits, secret, shots int, rng *rand.Rand) *SimonResult {
	if numQubits < 1 || numQubits > 8 {
		panic(fmt.Sprintf("Simon supports 1..8 input qubits, got %d", numQubits))
	}
	dim := 1 << numQubits
	if secret <= 0 || secret >= dim {
		panic(fmt.Sprintf("Simon secret %d out of range for %d qubits", secret, numQubits))
	}

	inputMask := dim - 1
	var collected []int
	measurements := make(map[string]int)

	for s := 0; s < shots; s++ {
		r := NewRegister(2 * numQubits)
		for q := 0; q < numQubits; q++ {
			r.ApplySingle(q, GateH())
		}
		// Copy oracle: |x⟩|0⟩ → |x⟩|x⟩, then fold the secret in through
		// input 0 so that f(x) = f(x ⊕ s).
		for q := 0; q < numQubits; q++ {
			r.CX(q, numQubits+q)
		}
		for j := 0; j < numQubits; j++ {
			if secret&(1<<j) != 0 {
				r.CX(0, numQubits+j)
			}
		}
		for q := 0; q < numQubits; q++ {
			r.ApplySingle(q, GateH())
		}

		y := r.Measure(rng) & inputMask
		collected = append(collected, y)
		measurements[FormatBasisState(y, numQubits)]++
	}

	bestCand, bestCount := 0, -1
	for cand := 1; cand < dim; cand++ {
		count := 0
		for _, y := range collected {
			if parity(y&cand) == 0 {
				count++
			}
		}
		if count > bestCount {
			bestCand, bestCount = cand, count
		}
	}

	result := &SimonResult{
		Measurements: measurements,
		Shots:        shots,
		Agreement:    float64(bestCount) / float64(len(collected)),
	}
	if bestCount*2 >= len(collected) {
		result.Secret = &bestCand
	}
	return result
}

// parity returns the XOR of all bits of x.
func parity(x int) int {
	p := 0
	for x > 0 {
		p ^= x & 1
		x >>= 1
	}
	return p
}
