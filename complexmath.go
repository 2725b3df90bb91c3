package main

import (
	"math"
	"math/cmplx"
)

// Complex is the amplitude scalar used throughout the simulator.
type Complex = complex128

// Magnitude returns |z|.
func Magnitude(z Complex) float64 {
	return cmplx.Abs(z)
}

// Magnitude2 returns |z|² without the square root. This is the Born-rule
// probability weight of an amplitude.
func Magnitude2(z Complex) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// PhaseOf returns the argument of z in (-π, π].
func PhaseOf(z Complex) float64 {
	return cmplx.Phase(z)
}

// CExp returns e^z = e^Re(z)·(cos Im(z) + i·sin Im(z)).
func CExp(z Complex) Complex {
	return cmplx.Exp(z)
}

// ──────────────────────────── Vector operations ────────────────────────────

// Division by a zero-magnitude divisor is not special-cased anywhere in this
// file: it propagates NaN/Inf per IEEE-754, and callers own that check.

// VecAdd returns a + b element-wise. Panics on length mismatch.
func VecAdd(a, b []Complex) []Complex {
	if len(a) != len(b) {
		panic("vector length mismatch in VecAdd")
	}
	out := make([]Complex, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// VecSub returns a - b element-wise. Panics on length mismatch.
func VecSub(a, b []Complex) []Complex {
	if len(a) != len(b) {
		panic("vector length mismatch in VecSub")
	}
	out := make([]Complex, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// VecScale returns s·a for a real scale factor.
func VecScale(a []Complex, s float64) []Complex {
	out := make([]Complex, len(a))
	for i := range a {
		out[i] = a[i] * complex(s, 0)
	}
	return out
}

// InnerProduct returns ⟨a|b⟩ = Σ conj(aᵢ)·bᵢ. Panics on length mismatch.
func InnerProduct(a, b []Complex) Complex {
	if len(a) != len(b) {
		panic("vector length mismatch in InnerProduct")
	}
	var sum Complex
	for i := range a {
		sum += cmplx.Conj(a[i]) * b[i]
	}
	return sum
}

// Norm returns the L2 norm of a.
func Norm(a []Complex) float64 {
	sum := 0.0
	for _, z := range a {
		sum += Magnitude2(z)
	}
	return math.Sqrt(sum)
}

// NormalizeVec rescales a in place to unit L2 norm. A zero vector is left
// untouched.
func NormalizeVec(a []Complex) {
	n := Norm(a)
	if n == 0 {
		return
	}
	inv := complex(1/n, 0)
	for i := range a {
		a[i] *= inv
	}
}

// StateFidelity returns |⟨a|b⟩|², the 0–1 overlap between two states.
func StateFidelity(a, b []Complex) float64 {
	return Magnitude2(InnerProduct(a, b))
}

// KroneckerVec returns the tensor product a ⊗ b of two state vectors.
func KroneckerVec(a, b []Complex) []Complex {
	out := make([]Complex, len(a)*len(b))
	for i, ai := range a {
		for j, bj := range b {
			out[i*len(b)+j] = ai * bj
		}
	}
	return out
}

// ──────────────────────────── Dense matrices ────────────────────────────

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	Rows, Cols int
	Data       []Complex
}

// NewMatrix creates a zero matrix of the given shape.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]Complex, rows*cols)}
}

// MatrixFrom creates a matrix from row-major elements. Panics if the element
// count does not match the shape.
func MatrixFrom(rows, cols int, elems ...Complex) *Matrix {
	if len(elems) != rows*cols {
		panic("element count mismatch in MatrixFrom")
	}
	data := make([]Complex, len(elems))
	copy(data, elems)
	return &Matrix{Rows: rows, Cols: cols, Data: data}
}

// At returns the element at (r, c).
func (m *Matrix) At(r, c int) Complex {
	return m.Data[r*m.Cols+c]
}

// Set stores v at (r, c).
func (m *Matrix) Set(r, c int, v Complex) {
	m.Data[r*m.Cols+c] = v
}

// IdentityMatrix returns the n×n identity.
func IdentityMatrix(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Adjoint returns the Hermitian adjoint (conjugate transpose).
func (m *Matrix) Adjoint() *Matrix {
	out := NewMatrix(m.Cols, m.Rows)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			out.Set(c, r, cmplx.Conj(m.At(r, c)))
		}
	}
	return out
}

// MulVec returns m·v. Panics when v's length does not match m's column count.
func (m *Matrix) MulVec(v []Complex) []Complex {
	if len(v) != m.Cols {
		panic("dimension mismatch in MulVec")
	}
	out := make([]Complex, m.Rows)
	for r := 0; r < m.Rows; r++ {
		var sum Complex
		row := m.Data[r*m.Cols : (r+1)*m.Cols]
		for c, mv := range row {
			sum += mv * v[c]
		}
		out[r] = sum
	}
	return out
}

// Mul returns m·other. Panics on inner-dimension mismatch.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.Cols != other.Rows {
		panic("dimension mismatch in Mul")
	}
	out := NewMatrix(m.Rows, other.Cols)
	for r := 0; r < m.Rows; r++ {
		for k := 0; k < m.Cols; k++ {
			mv := m.At(r, k)
			if mv == 0 {
				continue
			}
			for c := 0; c < other.Cols; c++ {
				out.Data[r*out.Cols+c] += mv * other.At(k, c)
			}
		}
	}
	return out
}

// Kronecker returns the tensor product m ⊗ other. Used to build multi-qubit
// operators for reference checks; the register's gate path never goes through
// here (see register.go).
func (m *Matrix) Kronecker(other *Matrix) *Matrix {
	out := NewMatrix(m.Rows*other.Rows, m.Cols*other.Cols)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			mv := m.At(r, c)
			if mv == 0 {
				continue
			}
			for or := 0; or < other.Rows; or++ {
				for oc := 0; oc < other.Cols; oc++ {
					out.Set(r*other.Rows+or, c*other.Cols+oc, mv*other.At(or, oc))
				}
			}
		}
	}
	return out
}
