package main

import (
	"math"
	"math/rand"
)

// NoiseModel is an immutable bundle of error rates approximating decoherence,
// loss, and (simplified) surface-code correction. It is a demonstration
// model, not a physically calibrated one: each knob maps to one perturbation
// step in Apply.
type NoiseModel struct {
	Name                 string
	SingleQubitGateError float64 // per-gate depolarizing-style error
	TwoQubitGateError    float64
	MeasurementError     float64 // readout bit-flip probability
	AtomLossRate         float64 // per-gate amplitude-damping rate
	DephasingT2          float64 // dephasing time constant in gate units
	CodeDistance         int     // surface-code distance when EC is on
	ErrorCorrection      bool
}

// surfaceCodeThreshold is the physical error rate below which increasing the
// code distance suppresses logical errors.
const surfaceCodeThreshold = 0.01

// Named presets. Ideal carries a huge T2 rather than Inf so the closed-form
// fidelity stays finite.
var (
	NoiseIdeal = NoiseModel{
		Name:        "ideal",
		DephasingT2: 1e12,
	}
	NoiseRealistic2025 = NoiseModel{
		Name:                 "realistic-2025",
		SingleQubitGateError: 0.001,
		TwoQubitGateError:    0.01,
		MeasurementError:     0.02,
		AtomLossRate:         0.002,
		DephasingT2:          1000,
		CodeDistance:         3,
	}
	NoiseHighFidelity = NoiseModel{
		Name:                 "high-fidelity",
		SingleQubitGateError: 0.0001,
		TwoQubitGateError:    0.001,
		MeasurementError:     0.005,
		AtomLossRate:         0.0005,
		DephasingT2:          5000,
		CodeDistance:         5,
		ErrorCorrection:      true,
	}
	NoiseNISQ = NoiseModel{
		Name:                 "nisq-realistic",
		SingleQubitGateError: 0.005,
		TwoQubitGateError:    0.02,
		MeasurementError:     0.03,
		AtomLossRate:         0.005,
		DephasingT2:          300,
	}
)

// NoisePreset resolves a preset by name. The bool is false for unknown names.
func NoisePreset(name string) (NoiseModel, bool) {
	for _, m := range []NoiseModel{NoiseIdeal, NoiseRealistic2025, NoiseHighFidelity, NoiseNISQ} {
		if m.Name == name {
			return m, true
		}
	}
	return NoiseModel{}, false
}

// IsIdeal reports whether the model perturbs nothing.
func (m NoiseModel) IsIdeal() bool {
	return m.SingleQubitGateError == 0 && m.TwoQubitGateError == 0 &&
		m.AtomLossRate == 0 && m.MeasurementError == 0
}

// Apply perturbs the register's amplitudes for a circuit of the given gate
// depth. Steps run in order: dephasing, amplitude damping, stochastic gate
// error, optional error-correction rescale, then a final renormalize.
func (m NoiseModel) Apply(r *Register, depth int, rng *rand.Rand) {
	if depth <= 0 || m.IsIdeal() {
		return
	}

	// (a) Dephasing: index 0 keeps its amplitude; every other amplitude is
	// scaled toward zero and phase-jittered by an angle that grows as the
	// dephasing factor decays.
	deph := math.Exp(-float64(depth) / m.DephasingT2)
	for i := 1; i < len(r.Amplitudes); i++ {
		jitter := (rng.Float64() - 0.5) * (1 - deph) * math.Pi / 4
		r.Amplitudes[i] *= complex(deph, 0) * CExp(complex(0, jitter))
	}

	// (b) Amplitude damping: uniform shrink by √(1 − loss·depth), clamped.
	damp := 1 - m.AtomLossRate*float64(depth)
	if damp < 0 {
		damp = 0
	}
	scale := complex(math.Sqrt(damp), 0)
	for i := range r.Amplitudes {
		r.Amplitudes[i] *= scale
	}

	// (c) Gate error: independent real/imaginary perturbations scaled by
	// √(1 − fidelity) of the accumulated gate error.
	clean := r.Save()
	gateFid := math.Pow(1-m.SingleQubitGateError, float64(depth))
	sigma := math.Sqrt(1-gateFid) * 0.1
	if sigma > 0 {
		for i := range r.Amplitudes {
			r.Amplitudes[i] += complex(rng.NormFloat64()*sigma, rng.NormFloat64()*sigma)
		}
	}

	// (d) Error correction: blend back toward the pre-perturbation state by
	// the surface-code suppression ratio.
	if m.ErrorCorrection && m.CodeDistance > 0 {
		sc := SurfaceCode{Distance: m.CodeDistance}
		physical := 1 - gateFid
		if physical > 0 {
			logical := sc.LogicalErrorRate(physical, surfaceCodeThreshold)
			w := 1 - logical/physical
			if w < 0 {
				w = 0
			} else if w > 1 {
				w = 1
			}
			cw := complex(w, 0)
			for i := range r.Amplitudes {
				r.Amplitudes[i] = clean[i]*cw + r.Amplitudes[i]*(1-cw)
			}
		}
	}

	NormalizeVec(r.Amplitudes)
}

// ExpectedFidelity is the closed-form fidelity estimate for a circuit of the
// given depth: gate-error, dephasing, and loss factors multiplied together,
// optionally passed through the surface-code suppression formula. It never
// touches amplitudes and is independent of the stochastic path.
func (m NoiseModel) ExpectedFidelity(depth int) float64 {
	if depth <= 0 {
		return 1
	}
	d := float64(depth)
	gate := math.Pow(1-m.SingleQubitGateError, d)
	deph := math.Exp(-d / m.DephasingT2)
	loss := 1 - m.AtomLossRate*d
	if loss < 0 {
		loss = 0
	}
	f := gate * deph * loss

	if m.ErrorCorrection && m.CodeDistance > 0 {
		sc := SurfaceCode{Distance: m.CodeDistance}
		logical := sc.LogicalErrorRate(1-f, surfaceCodeThreshold)
		f = 1 - logical
	}

	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ──────────────────────────── Error-correction values ────────────────────────────

// SurfaceCode models logical-error suppression at a given code distance.
type SurfaceCode struct {
	Distance int
}

// LogicalErrorRate returns (physical/threshold)^distance, clamped to [0, 1].
// Above threshold the code makes things worse; the clamp keeps the value a
// probability.
func (sc SurfaceCode) LogicalErrorRate(physicalError, threshold float64) float64 {
	if physicalError <= 0 {
		return 0
	}
	logical := math.Pow(physicalError/threshold, float64(sc.Distance))
	if logical > 1 {
		return 1
	}
	return logical
}

// DecodingSuccessProbability is the complement of the logical error rate.
func (sc SurfaceCode) DecodingSuccessProbability(physicalError, threshold float64) float64 {
	return 1 - sc.LogicalErrorRate(physicalError, threshold)
}

// MagicStateDistillation models repeated 15-to-1 distillation rounds, where
// each round maps the error rate e to 35·e³.
type MagicStateDistillation struct {
	InputFidelity float64
	Level         int
}

// OutputFidelity returns the fidelity after Level distillation rounds.
func (d MagicStateDistillation) OutputFidelity() float64 {
	err := 1 - d.InputFidelity
	for i := 0; i < d.Level; i++ {
		err = 35 * err * err * err
	}
	if err < 0 {
		err = 0
	} else if err > 1 {
		err = 1
	}
	return 1 - err
}
